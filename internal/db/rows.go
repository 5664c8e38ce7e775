// Copyright (c) 2026 Registrar Team
// Registrar - school records manager
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"github.com/toeirei/registrar/internal/model"
	"github.com/uptrace/bun"
)

// StudentRow is the bun mapping of the students table.
type StudentRow struct {
	bun.BaseModel `bun:"table:students"`
	ID            string `bun:"id,pk"`
	Name          string `bun:"name,notnull"`
	Email         string `bun:"email,notnull"`
}

// CourseRow is the bun mapping of the courses table.
type CourseRow struct {
	bun.BaseModel `bun:"table:courses"`
	ID            string `bun:"id,pk"`
	Name          string `bun:"name,notnull"`
	Credit        string `bun:"credit,notnull"`
}

// EnrollmentRow is the bun mapping of the enrollments table. An ungraded
// enrollment is stored with a NULL grade.
type EnrollmentRow struct {
	bun.BaseModel `bun:"table:enrollments"`
	StudentID     string `bun:"student_id,pk"`
	CourseID      string `bun:"course_id,pk"`
	Semester      string `bun:"semester,pk"`
	Grade         string `bun:"grade,nullzero"`
}

func studentRows(in []model.Student) []StudentRow {
	out := make([]StudentRow, 0, len(in))
	for _, s := range in {
		out = append(out, StudentRow{ID: s.ID, Name: s.Name, Email: s.Email})
	}
	return out
}

func courseRows(in []model.Course) []CourseRow {
	out := make([]CourseRow, 0, len(in))
	for _, c := range in {
		out = append(out, CourseRow{ID: c.ID, Name: c.Name, Credit: c.Credit})
	}
	return out
}

func enrollmentRows(in []model.Enrollment) []EnrollmentRow {
	out := make([]EnrollmentRow, 0, len(in))
	for _, e := range in {
		out = append(out, EnrollmentRow{StudentID: e.StudentID, CourseID: e.CourseID, Semester: e.Semester, Grade: e.Grade})
	}
	return out
}
