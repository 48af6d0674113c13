package generate

import (
	"github.com/teranos/tsguard/errors"
	"github.com/teranos/tsguard/exports"
	"github.com/teranos/tsguard/guardian"
	"github.com/teranos/tsguard/typeexpr"
)

// resolve checks every guard reference against the module. A guard that
// calls the guard of a type which will not be emitted (a local type, or an
// exported type that was skipped) is dropped, and so is every guard that
// depends on it. References to names the module neither declares nor
// imports only produce a warning.
func (r *run) resolve(guardians []guardian.Guardian, collected *exports.Result, imports []string) []guardian.Guardian {
	spans := make(map[string]typeexpr.Span, len(collected.Declarations))
	for _, d := range collected.Declarations {
		if _, ok := spans[d.Name]; !ok {
			spans[d.Name] = d.Span
		}
	}

	emitted := make(map[string]bool, len(guardians))
	for _, g := range guardians {
		emitted[g.Typename] = true
	}

	missing := make(map[string]string)
	for _, name := range collected.Locals {
		missing[name] = "local type"
	}
	for _, d := range collected.Declarations {
		if !emitted[d.Name] {
			missing[d.Name] = "skipped declaration"
		}
	}
	for _, s := range collected.Skipped {
		if s.Type && s.Name != "" {
			missing[s.Name] = "skipped declaration"
		}
	}
	// An emitted guard always wins over a local or skipped duplicate.
	for name := range emitted {
		delete(missing, name)
	}

	imported := make(map[string]bool, len(imports))
	for _, name := range imports {
		imported[name] = true
	}

	for changed := true; changed; {
		changed = false
		kept := guardians[:0]
		for _, g := range guardians {
			ref, reason := firstMissing(g.References, missing)
			if ref == "" {
				kept = append(kept, g)
				continue
			}
			changed = true
			missing[g.Typename] = "skipped declaration"

			span := spans[g.Typename]
			err := errors.Mark(
				errors.Newf("%s references %s %q, which has no guard", g.Typename, reason, ref),
				errors.ErrUnresolvedReference)
			r.report(g.Typename, "", span.Line, span.Column, guardian.SeverityError, err)
		}
		guardians = kept
	}

	for _, g := range guardians {
		for _, ref := range g.References {
			if ref == g.Typename || emitted[ref] || imported[ref] {
				continue
			}
			span := spans[g.Typename]
			err := errors.Mark(
				errors.Newf("%s references %q, which is not declared in this module", g.Typename, ref),
				errors.ErrUnresolvedReference)
			r.report(g.Typename, "", span.Line, span.Column, guardian.SeverityWarning, err)
		}
	}
	return guardians
}

func firstMissing(refs []string, missing map[string]string) (string, string) {
	for _, ref := range refs {
		if reason, ok := missing[ref]; ok {
			return ref, reason
		}
	}
	return "", ""
}
