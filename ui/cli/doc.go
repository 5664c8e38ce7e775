// Copyright (c) 2026 Registrar Team
// Registrar - school records manager
// This source code is licensed under the MIT license found in the LICENSE file.
//
// Package cli implements the command-line interface for Registrar using Cobra.
// The root command runs the interactive records menu; subcommands back up,
// restore and export the records. CLI code stays thin and delegates to the
// records, backup and db packages.
package cli
