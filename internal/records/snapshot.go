// Copyright (c) 2026 Registrar Team
// Registrar - school records manager
// This source code is licensed under the MIT license found in the LICENSE file.

package records

import "github.com/toeirei/registrar/internal/model"

// WriteSnapshot replaces all three files with the contents of snap. The
// snapshot is checked for referential integrity before anything is written.
// Each file is replaced atomically, but the three replacements are not one
// unit: a crash midway leaves some files old and some new.
func WriteSnapshot(paths Paths, snap model.Snapshot) error {
	students := make(map[string]bool, len(snap.Students))
	for _, st := range snap.Students {
		students[st.ID] = true
	}
	courses := make(map[string]bool, len(snap.Courses))
	for _, c := range snap.Courses {
		courses[c.ID] = true
	}
	for i, e := range snap.Enrollments {
		// Line numbers are those the rows will have in the written file.
		if !students[e.StudentID] {
			return &ReferentialIntegrityError{Path: paths.Enrollments, Line: i + 2, Kind: "student", ID: e.StudentID}
		}
		if !courses[e.CourseID] {
			return &ReferentialIntegrityError{Path: paths.Enrollments, Line: i + 2, Kind: "course", ID: e.CourseID}
		}
	}

	rows := make([][]string, 0, len(snap.Students))
	for _, st := range snap.Students {
		rows = append(rows, []string{st.ID, st.Name, st.Email})
	}
	if err := rewriteTable(paths.Students, studentsHeader, rows); err != nil {
		return err
	}

	rows = make([][]string, 0, len(snap.Courses))
	for _, c := range snap.Courses {
		rows = append(rows, []string{c.ID, c.Name, c.Credit})
	}
	if err := rewriteTable(paths.Courses, coursesHeader, rows); err != nil {
		return err
	}

	rows = make([][]string, 0, len(snap.Enrollments))
	for _, e := range snap.Enrollments {
		rows = append(rows, enrollmentRecord(e))
	}
	return rewriteTable(paths.Enrollments, enrollmentsHeader, rows)
}
