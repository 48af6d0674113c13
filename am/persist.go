package am

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	gotoml "github.com/pelletier/go-toml/v2"

	"github.com/teranos/tsguard/errors"
)

const configHeader = "# tsguard configuration\n"

// Marshal renders cfg as TOML, with a header comment.
func Marshal(cfg *Config) ([]byte, error) {
	data, err := gotoml.Marshal(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal config")
	}
	return append([]byte(configHeader), data...), nil
}

// WriteDefault writes a config file holding every default to path. An
// existing file is kept as path.back1 when force is set, and is an error
// otherwise.
func WriteDefault(path string, force bool) error {
	if _, err := os.Stat(path); err == nil {
		if !force {
			return errors.WithHint(
				errors.Newf("%s already exists", path),
				"pass --force to overwrite it")
		}
		if err := createBackup(path); err != nil {
			return errors.Wrap(err, "failed to create backup")
		}
	}

	data, err := Marshal(Default())
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, DefaultDirPermissions); err != nil {
			return errors.Wrapf(err, "failed to create %s", dir)
		}
	}
	if err := os.WriteFile(path, data, DefaultFilePermissions); err != nil {
		return errors.Wrapf(err, "failed to write %s", path)
	}
	return nil
}

// UnknownKeys returns the keys of the TOML file at path that no Config
// field reads, in file order. Viper ignores them silently, so a misspelled
// key would otherwise fall back to its default without notice.
func UnknownKeys(path string) ([]string, error) {
	var cfg Config
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to decode %s", path)
	}

	undecoded := md.Undecoded()
	keys := make([]string, 0, len(undecoded))
	for _, key := range undecoded {
		keys = append(keys, key.String())
	}
	return keys, nil
}

// createBackup copies the current file to path.back1, replacing any older
// backup
func createBackup(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "failed to read config for backup")
	}
	if err := os.WriteFile(path+".back1", content, DefaultFilePermissions); err != nil {
		return errors.Wrap(err, "failed to create .back1")
	}
	return nil
}
