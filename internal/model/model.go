// Copyright (c) 2026 Registrar Team
// Registrar - school records manager
// This source code is licensed under the MIT license found in the LICENSE file.

// package model defines the record types shared by the store, the backup
// format and the SQL export.
package model // import "github.com/toeirei/registrar/internal/model"

import "fmt"

// Student is a person who can be enrolled in courses.
type Student struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// String returns "name (email)".
func (s Student) String() string {
	return fmt.Sprintf("%s (%s)", s.Name, s.Email)
}

// Course is a unit of study worth a number of credits. Credit is kept as
// written in the courses file.
type Course struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Credit string `json:"credit"`
}

// String returns "name (N credits)".
func (c Course) String() string {
	return fmt.Sprintf("%s (%s credits)", c.Name, c.Credit)
}

// EnrollmentKey identifies one enrollment. Semester is part of the key so
// the same student can take the same course in several semesters.
type EnrollmentKey struct {
	StudentID string
	CourseID  string
	Semester  string
}

func (k EnrollmentKey) String() string {
	return fmt.Sprintf("%s/%s/%s", k.StudentID, k.CourseID, k.Semester)
}

// Enrollment links a student to a course for a semester. An empty Grade
// means the enrollment has not been graded yet.
type Enrollment struct {
	StudentID string `json:"student_id"`
	CourseID  string `json:"course_id"`
	Semester  string `json:"semester"`
	Grade     string `json:"grade"`
}

// Key returns the identity of the enrollment.
func (e Enrollment) Key() EnrollmentKey {
	return EnrollmentKey{StudentID: e.StudentID, CourseID: e.CourseID, Semester: e.Semester}
}

// Graded reports whether a grade has been recorded.
func (e Enrollment) Graded() bool {
	return e.Grade != ""
}
