// Copyright (c) 2026 Registrar Team
// Registrar - school records manager
// This source code is licensed under the MIT license found in the LICENSE file.

package model

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestStudentString(t *testing.T) {
	s := Student{ID: "1", Name: "Alice", Email: "alice@example.com"}
	if got := s.String(); got != "Alice (alice@example.com)" {
		t.Errorf("unexpected Student.String(): %q", got)
	}
}

func TestCourseString(t *testing.T) {
	c := Course{ID: "C1", Name: "Algebra", Credit: "4"}
	if got := c.String(); got != "Algebra (4 credits)" {
		t.Errorf("unexpected Course.String(): %q", got)
	}
}

func TestEnrollmentKeyIncludesSemester(t *testing.T) {
	fall := Enrollment{StudentID: "1", CourseID: "C1", Semester: "Fall2024"}
	spring := Enrollment{StudentID: "1", CourseID: "C1", Semester: "Spring2025", Grade: "B"}
	if fall.Key() == spring.Key() {
		t.Fatalf("keys of different semesters must differ: %v", fall.Key())
	}
	if got := spring.Key().String(); got != "1/C1/Spring2025" {
		t.Errorf("unexpected EnrollmentKey.String(): %q", got)
	}
	if fall.Graded() || !spring.Graded() {
		t.Errorf("Graded() wrong: fall=%v spring=%v", fall.Graded(), spring.Graded())
	}
}

func TestSnapshotJSONFieldNames(t *testing.T) {
	snap := Snapshot{
		SchemaVersion: SnapshotSchemaVersion,
		Enrollments:   []Enrollment{{StudentID: "1", CourseID: "C1", Semester: "Fall2024"}},
	}
	b, err := json.Marshal(snap)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	for _, want := range []string{`"schema_version":1`, `"student_id":"1"`, `"course_id":"C1"`} {
		if !strings.Contains(string(b), want) {
			t.Errorf("expected %s in %s", want, b)
		}
	}
}
