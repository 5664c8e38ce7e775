// Copyright (c) 2026 Registrar Team
// Registrar - school records manager
// This source code is licensed under the MIT license found in the LICENSE file.

// Package records is the relational store of students, courses and
// enrollments, kept in sync with three comma-delimited files.
//
// Enrollment rows are the single source of truth. A student's courses and a
// course's roster are derived from them through indices that are only ever
// updated by Store.index.
package records // import "github.com/toeirei/registrar/internal/records"

import (
	"cmp"
	"fmt"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/toeirei/registrar/internal/logging"
	"github.com/toeirei/registrar/internal/model"
)

// Default file names inside a data directory.
const (
	StudentsFile    = "students.csv"
	CoursesFile     = "courses.csv"
	EnrollmentsFile = "enrollments.csv"
)

// Paths names the three backing files.
type Paths struct {
	Students    string
	Courses     string
	Enrollments string
}

// PathsIn returns the default file names inside dir.
func PathsIn(dir string) Paths {
	return Paths{
		Students:    filepath.Join(dir, StudentsFile),
		Courses:     filepath.Join(dir, CoursesFile),
		Enrollments: filepath.Join(dir, EnrollmentsFile),
	}
}

// Store holds the in-memory records. It is not safe for concurrent use; a
// single writer owns both the store and its files.
type Store struct {
	paths Paths

	students    map[string]model.Student
	courses     map[string]model.Course
	enrollments map[model.EnrollmentKey]model.Enrollment
	// order is enrollment insertion order (file order, then runtime order).
	order []model.EnrollmentKey

	byStudent map[string][]model.EnrollmentKey
	byCourse  map[string][]model.EnrollmentKey

	// studentRows counts data rows of the students file and drives id assignment.
	studentRows int
}

// Open creates a store for paths and loads it.
func Open(paths Paths) (*Store, error) {
	s := &Store{paths: paths}
	if err := s.Load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) reset() {
	s.students = make(map[string]model.Student)
	s.courses = make(map[string]model.Course)
	s.enrollments = make(map[model.EnrollmentKey]model.Enrollment)
	s.order = nil
	s.byStudent = make(map[string][]model.EnrollmentKey)
	s.byCourse = make(map[string][]model.EnrollmentKey)
	s.studentRows = 0
}

// Load (re)reads all three files. Students and courses are read first so
// every enrollment row can be checked against them. On error the store is
// left empty.
func (s *Store) Load() error {
	s.reset()

	rows, err := readTable(s.paths.Students, studentsHeader)
	if err != nil {
		return err
	}
	for _, r := range rows {
		st := model.Student{ID: r.Fields[0], Name: r.Fields[1], Email: r.Fields[2]}
		s.students[st.ID] = st
	}
	s.studentRows = len(rows)

	rows, err = readTable(s.paths.Courses, coursesHeader)
	if err != nil {
		s.reset()
		return err
	}
	for _, r := range rows {
		c := model.Course{ID: r.Fields[0], Name: r.Fields[1], Credit: r.Fields[2]}
		s.courses[c.ID] = c
	}

	rows, err = readTable(s.paths.Enrollments, enrollmentsHeader)
	if err != nil {
		s.reset()
		return err
	}
	for _, r := range rows {
		e := model.Enrollment{StudentID: r.Fields[0], CourseID: r.Fields[1], Semester: r.Fields[2], Grade: r.Fields[3]}
		if _, ok := s.students[e.StudentID]; !ok {
			s.reset()
			return &ReferentialIntegrityError{Path: s.paths.Enrollments, Line: r.Line, Kind: "student", ID: e.StudentID}
		}
		if _, ok := s.courses[e.CourseID]; !ok {
			s.reset()
			return &ReferentialIntegrityError{Path: s.paths.Enrollments, Line: r.Line, Kind: "course", ID: e.CourseID}
		}
		s.index(e)
	}

	logging.Debugf("records: loaded %d students, %d courses, %d enrollments", len(s.students), len(s.courses), len(s.enrollments))
	return nil
}

// index inserts or replaces an enrollment and keeps the derived indices
// consistent. It is the only place the indices are written.
func (s *Store) index(e model.Enrollment) {
	k := e.Key()
	if _, exists := s.enrollments[k]; !exists {
		s.order = append(s.order, k)
		s.byStudent[k.StudentID] = append(s.byStudent[k.StudentID], k)
		s.byCourse[k.CourseID] = append(s.byCourse[k.CourseID], k)
	}
	s.enrollments[k] = e
}

// NextStudentID returns the id the next AddStudent call will assign: the
// number of student rows plus one, skipping ids already in use.
func (s *Store) NextStudentID() string {
	n := s.studentRows + 1
	for {
		id := strconv.Itoa(n)
		if _, taken := s.students[id]; !taken {
			return id
		}
		n++
	}
}

// AddStudent creates a student with the next sequential id and appends it
// to the students file.
func (s *Store) AddStudent(name, email string) (model.Student, error) {
	st := model.Student{ID: s.NextStudentID(), Name: name, Email: email}
	if err := appendRow(s.paths.Students, studentsHeader, []string{st.ID, st.Name, st.Email}); err != nil {
		return model.Student{}, err
	}
	s.students[st.ID] = st
	s.studentRows++
	logging.Debugf("records: added student %s", st.ID)
	return st, nil
}

// Enroll creates an ungraded enrollment and appends it to the enrollments
// file. Nothing changes when either id is unknown or the triple exists.
func (s *Store) Enroll(studentID, courseID, semester string) (model.Enrollment, error) {
	if _, ok := s.students[studentID]; !ok {
		return model.Enrollment{}, fmt.Errorf("%w: %s", ErrStudentNotFound, studentID)
	}
	if _, ok := s.courses[courseID]; !ok {
		return model.Enrollment{}, fmt.Errorf("%w: %s", ErrCourseNotFound, courseID)
	}
	e := model.Enrollment{StudentID: studentID, CourseID: courseID, Semester: semester}
	if _, exists := s.enrollments[e.Key()]; exists {
		return model.Enrollment{}, fmt.Errorf("%w: %s", ErrAlreadyEnrolled, e.Key())
	}
	if err := appendRow(s.paths.Enrollments, enrollmentsHeader, enrollmentRecord(e)); err != nil {
		return model.Enrollment{}, err
	}
	s.index(e)
	logging.Debugf("records: enrolled %s", e.Key())
	return e, nil
}

// GradeStatus is the outcome of SetGrade.
type GradeStatus int

const (
	GradeRecorded GradeStatus = iota + 1
	GradeStudentMissing
	GradeCourseMissing
	GradeNotEnrolled
	GradeEmpty
)

func (g GradeStatus) String() string {
	switch g {
	case GradeRecorded:
		return "recorded"
	case GradeStudentMissing:
		return "student missing"
	case GradeCourseMissing:
		return "course missing"
	case GradeNotEnrolled:
		return "not enrolled"
	case GradeEmpty:
		return "empty grade"
	default:
		return "unknown"
	}
}

// GradeResult reports what SetGrade did. Enrollment is only set when the
// grade was recorded.
type GradeResult struct {
	Status     GradeStatus
	Enrollment model.Enrollment
}

// OK reports whether the grade was recorded.
func (r GradeResult) OK() bool { return r.Status == GradeRecorded }

// SetGrade records grade on the enrollment matching the triple. Unknown ids,
// missing enrollments and a blank grade are reported through the result, not
// the error; the error is only set when the enrollments file could not be
// rewritten. A grade can be corrected but never cleared.
//
// The whole enrollments file is read, every matching row is updated and the
// file is replaced atomically. Memory is updated after the file.
func (s *Store) SetGrade(studentID, courseID, semester, grade string) (GradeResult, error) {
	if _, ok := s.students[studentID]; !ok {
		return GradeResult{Status: GradeStudentMissing}, nil
	}
	if _, ok := s.courses[courseID]; !ok {
		return GradeResult{Status: GradeCourseMissing}, nil
	}
	k := model.EnrollmentKey{StudentID: studentID, CourseID: courseID, Semester: semester}
	e, ok := s.enrollments[k]
	if !ok {
		return GradeResult{Status: GradeNotEnrolled}, nil
	}
	grade = strings.TrimSpace(grade)
	if grade == "" {
		return GradeResult{Status: GradeEmpty}, nil
	}

	rows, err := readTable(s.paths.Enrollments, enrollmentsHeader)
	if err != nil {
		return GradeResult{}, err
	}
	out := make([][]string, 0, len(rows))
	matched := false
	for _, r := range rows {
		f := r.Fields
		if f[0] == studentID && f[1] == courseID && f[2] == semester {
			f = []string{f[0], f[1], f[2], grade}
			matched = true
		}
		out = append(out, f)
	}
	if !matched {
		// The file was edited behind our back; put the row back.
		e.Grade = grade
		out = append(out, enrollmentRecord(e))
		logging.Warnf("records: enrollment %s missing from %s, re-adding it", k, s.paths.Enrollments)
	}
	if err := rewriteTable(s.paths.Enrollments, enrollmentsHeader, out); err != nil {
		return GradeResult{}, err
	}

	e.Grade = grade
	s.index(e)
	logging.Debugf("records: graded %s = %s", k, grade)
	return GradeResult{Status: GradeRecorded, Enrollment: e}, nil
}

func enrollmentRecord(e model.Enrollment) []string {
	return []string{e.StudentID, e.CourseID, e.Semester, e.Grade}
}

// Student looks up a student by id.
func (s *Store) Student(id string) (model.Student, bool) {
	st, ok := s.students[id]
	return st, ok
}

// Course looks up a course by id.
func (s *Store) Course(id string) (model.Course, bool) {
	c, ok := s.courses[id]
	return c, ok
}

// Enrollment looks up an enrollment by its full key.
func (s *Store) Enrollment(k model.EnrollmentKey) (model.Enrollment, bool) {
	e, ok := s.enrollments[k]
	return e, ok
}

// Students returns all students ordered by id.
func (s *Store) Students() []model.Student {
	out := make([]model.Student, 0, len(s.students))
	for _, st := range s.students {
		out = append(out, st)
	}
	slices.SortFunc(out, func(a, b model.Student) int { return compareIDs(a.ID, b.ID) })
	return out
}

// Courses returns all courses ordered by id.
func (s *Store) Courses() []model.Course {
	out := make([]model.Course, 0, len(s.courses))
	for _, c := range s.courses {
		out = append(out, c)
	}
	slices.SortFunc(out, func(a, b model.Course) int { return compareIDs(a.ID, b.ID) })
	return out
}

// Enrollments returns all enrollments in insertion order.
func (s *Store) Enrollments() []model.Enrollment {
	out := make([]model.Enrollment, 0, len(s.order))
	for _, k := range s.order {
		out = append(out, s.enrollments[k])
	}
	return out
}

// Counts is the number of records of each kind.
type Counts struct {
	Students    int
	Courses     int
	Enrollments int
}

// Counts returns the size of each entity map.
func (s *Store) Counts() Counts {
	return Counts{Students: len(s.students), Courses: len(s.courses), Enrollments: len(s.enrollments)}
}

// Snapshot copies every record into a model.Snapshot.
func (s *Store) Snapshot() model.Snapshot {
	return model.Snapshot{
		SchemaVersion: model.SnapshotSchemaVersion,
		Students:      s.Students(),
		Courses:       s.Courses(),
		Enrollments:   s.Enrollments(),
	}
}

// compareIDs orders numeric ids numerically and everything else lexically,
// with numeric ids first.
func compareIDs(a, b string) int {
	na, errA := strconv.Atoi(a)
	nb, errB := strconv.Atoi(b)
	switch {
	case errA == nil && errB == nil:
		return cmp.Compare(na, nb)
	case errA == nil:
		return -1
	case errB == nil:
		return 1
	default:
		return cmp.Compare(a, b)
	}
}
