package main

import (
	"os"

	"github.com/teranos/tsguard/cmd/tsguard/commands"
)

func main() {
	os.Exit(commands.Execute(os.Args[1:], os.Stdout, os.Stderr))
}
