// Package main is the entry point for the bankctl CLI.
package main

import (
	"os"

	"github.com/shunichi-ikebuchi/banking-cli/cmd/bankctl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
