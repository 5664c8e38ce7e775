package db

import (
	"context"
	"errors"
	"testing"

	"github.com/toeirei/registrar/internal/model"
)

func sampleSnapshot() model.Snapshot {
	return model.Snapshot{
		SchemaVersion: model.SnapshotSchemaVersion,
		Students: []model.Student{
			{ID: "1", Name: "Alice", Email: "a@x.com"},
			{ID: "2", Name: "Bob", Email: "b@x.com"},
		},
		Courses: []model.Course{{ID: "C1", Name: "Algebra", Credit: "4"}},
		Enrollments: []model.Enrollment{
			{StudentID: "1", CourseID: "C1", Semester: "Fall2024", Grade: "A"},
			{StudentID: "2", CourseID: "C1", Semester: "Fall2024"},
			{StudentID: "2", CourseID: "C1", Semester: "Spring2025"},
		},
	}
}

func TestExport_SQLiteMemory(t *testing.T) {
	ctx := context.Background()
	bdb, err := Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer func() { _ = bdb.Close() }()

	res, err := Export(ctx, bdb, sampleSnapshot())
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	want := ExportResult{Students: 2, Courses: 1, Enrollments: 3}
	if res != want {
		t.Fatalf("export result = %+v, want %+v", res, want)
	}

	got, err := Count(ctx, bdb)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if got != want {
		t.Fatalf("table counts = %+v, want %+v", got, want)
	}

	// Ungraded enrollments are stored as NULL.
	var nulls int
	if err := bdb.NewRaw("SELECT COUNT(*) FROM enrollments WHERE grade IS NULL").Scan(ctx, &nulls); err != nil {
		t.Fatalf("query nulls: %v", err)
	}
	if nulls != 2 {
		t.Fatalf("expected 2 NULL grades, got %d", nulls)
	}
}

func TestExport_ReplacesPreviousContents(t *testing.T) {
	ctx := context.Background()
	bdb, err := Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer func() { _ = bdb.Close() }()

	if _, err := Export(ctx, bdb, sampleSnapshot()); err != nil {
		t.Fatalf("first export: %v", err)
	}
	smaller := model.Snapshot{
		SchemaVersion: model.SnapshotSchemaVersion,
		Students:      []model.Student{{ID: "9", Name: "Zed", Email: "z@x.com"}},
	}
	if _, err := Export(ctx, bdb, smaller); err != nil {
		t.Fatalf("second export: %v", err)
	}

	got, err := Count(ctx, bdb)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if got != (ExportResult{Students: 1}) {
		t.Fatalf("expected only the second snapshot, got %+v", got)
	}
	var name string
	if err := bdb.NewSelect().Model((*StudentRow)(nil)).Column("name").Where("id = ?", "9").Scan(ctx, &name); err != nil {
		t.Fatalf("select: %v", err)
	}
	if name != "Zed" {
		t.Fatalf("expected Zed, got %q", name)
	}
}

func TestExport_DuplicateKeyRollsBack(t *testing.T) {
	ctx := context.Background()
	bdb, err := Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer func() { _ = bdb.Close() }()

	if _, err := Export(ctx, bdb, sampleSnapshot()); err != nil {
		t.Fatalf("first export: %v", err)
	}

	dup := sampleSnapshot()
	dup.Students = append(dup.Students, model.Student{ID: "1", Name: "Again", Email: "x"})
	_, err = Export(ctx, bdb, dup)
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}

	got, err := Count(ctx, bdb)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if got != (ExportResult{Students: 2, Courses: 1, Enrollments: 3}) {
		t.Fatalf("failed export must leave previous contents, got %+v", got)
	}
}

func TestOpen_UnsupportedType(t *testing.T) {
	if _, err := Open("oracle", "x"); err == nil {
		t.Fatalf("expected error for unsupported database type")
	}
}
