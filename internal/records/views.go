// Copyright (c) 2026 Registrar Team
// Registrar - school records manager
// This source code is licensed under the MIT license found in the LICENSE file.

package records

import (
	"fmt"

	"github.com/toeirei/registrar/internal/model"
)

// StudentCourse is one line of a student's transcript.
type StudentCourse struct {
	Course   model.Course
	Semester string
	// Grade is empty when the enrollment is ungraded.
	Grade string
}

// StudentView is a student with every course they are enrolled in.
type StudentView struct {
	Student model.Student
	Courses []StudentCourse
}

// CourseStudent is one line of a course roster.
type CourseStudent struct {
	Student  model.Student
	Semester string
	Grade    string
}

// CourseView is a course with every enrolled student.
type CourseView struct {
	Course   model.Course
	Students []CourseStudent
}

// StudentView builds the transcript of a student in enrollment order. It
// never modifies the store.
func (s *Store) StudentView(studentID string) (StudentView, error) {
	st, ok := s.students[studentID]
	if !ok {
		return StudentView{}, fmt.Errorf("%w: %s", ErrStudentNotFound, studentID)
	}
	v := StudentView{Student: st}
	for _, k := range s.byStudent[studentID] {
		e := s.enrollments[k]
		v.Courses = append(v.Courses, StudentCourse{Course: s.courses[k.CourseID], Semester: e.Semester, Grade: e.Grade})
	}
	return v, nil
}

// CourseView builds the roster of a course in enrollment order. It never
// modifies the store.
func (s *Store) CourseView(courseID string) (CourseView, error) {
	c, ok := s.courses[courseID]
	if !ok {
		return CourseView{}, fmt.Errorf("%w: %s", ErrCourseNotFound, courseID)
	}
	v := CourseView{Course: c}
	for _, k := range s.byCourse[courseID] {
		e := s.enrollments[k]
		v.Students = append(v.Students, CourseStudent{Student: s.students[k.StudentID], Semester: e.Semester, Grade: e.Grade})
	}
	return v, nil
}
