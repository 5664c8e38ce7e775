// Copyright (c) 2026 Registrar Team
// Registrar - school records manager
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"context"
	"fmt"

	"github.com/toeirei/registrar/internal/logging"
	"github.com/toeirei/registrar/internal/model"
	"github.com/uptrace/bun"
)

// ExportResult holds the number of rows written per table.
type ExportResult struct {
	Students    int
	Courses     int
	Enrollments int
}

// tables in dependency order: enrollments reference the other two.
var tables = []any{
	(*StudentRow)(nil),
	(*CourseRow)(nil),
	(*EnrollmentRow)(nil),
}

// EnsureSchema creates the three tables when they do not exist.
func EnsureSchema(ctx context.Context, bdb *bun.DB) error {
	for _, m := range tables {
		if _, err := bdb.NewCreateTable().Model(m).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("failed to create table for %T: %w", m, err)
		}
	}
	return nil
}

// Export replaces the contents of the tables with snap in one transaction.
// Existing rows are deleted first, so repeated exports converge on the
// latest snapshot.
func Export(ctx context.Context, bdb *bun.DB, snap model.Snapshot) (ExportResult, error) {
	if err := EnsureSchema(ctx, bdb); err != nil {
		return ExportResult{}, err
	}

	tx, err := bdb.BeginTx(ctx, nil)
	if err != nil {
		return ExportResult{}, fmt.Errorf("failed to begin export transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	// Delete in reverse dependency order. Bun refuses a DELETE without WHERE.
	for i := len(tables) - 1; i >= 0; i-- {
		if _, err := tx.NewDelete().Model(tables[i]).Where("1 = 1").Exec(ctx); err != nil {
			return ExportResult{}, fmt.Errorf("failed to clear table for %T: %w", tables[i], err)
		}
	}

	students := studentRows(snap.Students)
	courses := courseRows(snap.Courses)
	enrollments := enrollmentRows(snap.Enrollments)

	if err := insertAll(ctx, tx, &students, len(students)); err != nil {
		return ExportResult{}, err
	}
	if err := insertAll(ctx, tx, &courses, len(courses)); err != nil {
		return ExportResult{}, err
	}
	if err := insertAll(ctx, tx, &enrollments, len(enrollments)); err != nil {
		return ExportResult{}, err
	}

	if err := tx.Commit(); err != nil {
		return ExportResult{}, fmt.Errorf("failed to commit export: %w", err)
	}

	res := ExportResult{Students: len(students), Courses: len(courses), Enrollments: len(enrollments)}
	logging.Debugf("db: exported %d students, %d courses, %d enrollments", res.Students, res.Courses, res.Enrollments)
	return res, nil
}

// insertAll bulk-inserts a slice model. Bun rejects empty slices, so those
// are skipped.
func insertAll(ctx context.Context, tx bun.Tx, rows any, n int) error {
	if n == 0 {
		return nil
	}
	if _, err := tx.NewInsert().Model(rows).Exec(ctx); err != nil {
		return fmt.Errorf("failed to insert %T: %w", rows, MapDBError(err))
	}
	return nil
}

// Count returns the number of rows in each table.
func Count(ctx context.Context, bdb bun.IDB) (ExportResult, error) {
	var res ExportResult
	var err error
	if res.Students, err = bdb.NewSelect().Model((*StudentRow)(nil)).Count(ctx); err != nil {
		return res, err
	}
	if res.Courses, err = bdb.NewSelect().Model((*CourseRow)(nil)).Count(ctx); err != nil {
		return res, err
	}
	if res.Enrollments, err = bdb.NewSelect().Model((*EnrollmentRow)(nil)).Count(ctx); err != nil {
		return res, err
	}
	return res, nil
}
