// Copyright (c) 2026 Registrar Team
// Registrar - school records manager
// This source code is licensed under the MIT license found in the LICENSE file.

// Package db mirrors a records snapshot into a SQL database.
//
// The CSV files stay the source of truth; the database is a read-only copy
// for reporting tools. Export replaces the contents of the students,
// courses and enrollments tables in one transaction.
//
// Supported types are "sqlite" (modernc.org/sqlite), "postgres" (pgx) and
// "mysql". Tests use Open("sqlite", ":memory:").
package db
