// Copyright (c) 2026 Registrar Team
// Registrar - school records manager
// This source code is licensed under the MIT license found in the LICENSE file.

package records

import (
	"errors"
	"fmt"
)

// ErrNotFound is matched by every lookup failure.
var ErrNotFound = errors.New("not found")

var (
	// ErrStudentNotFound is returned when a student id does not resolve.
	ErrStudentNotFound = fmt.Errorf("student %w", ErrNotFound)
	// ErrCourseNotFound is returned when a course id does not resolve.
	ErrCourseNotFound = fmt.Errorf("course %w", ErrNotFound)
	// ErrAlreadyEnrolled is returned when the exact student/course/semester
	// triple already exists.
	ErrAlreadyEnrolled = errors.New("student already enrolled in course for semester")
)

// IOError reports a failed file operation on one of the backing files.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// ReferentialIntegrityError is returned at load time when an enrollment row
// references a student or course that does not exist.
type ReferentialIntegrityError struct {
	Path string
	Line int
	// Kind is "student" or "course".
	Kind string
	ID   string
}

func (e *ReferentialIntegrityError) Error() string {
	return fmt.Sprintf("%s:%d: enrollment references unknown %s %q", e.Path, e.Line, e.Kind, e.ID)
}

// FormatError reports a row that does not match the file's header width.
type FormatError struct {
	Path string
	Line int
	Err  error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%s:%d: %v", e.Path, e.Line, e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }

func ioErr(op, path string, err error) error {
	if err == nil {
		return nil
	}
	return &IOError{Op: op, Path: path, Err: err}
}
