// Copyright (c) 2026 Registrar Team
// Registrar - school records manager
// This source code is licensed under the MIT license found in the LICENSE file.

// Command-line entrypoint for Registrar.
//
// Usage:
//
//	go run . [flags]
//	./registrar [flags]
//
// This launches the interactive records menu. See --help for subcommands.
package main

import (
	"os"

	"github.com/toeirei/registrar/internal/logging"
	"github.com/toeirei/registrar/ui/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		logging.Errorf("%v", err)
		os.Exit(1)
	}
}
