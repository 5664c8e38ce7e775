// Copyright (c) 2026 Registrar Team
// Registrar - school records manager
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/toeirei/registrar/internal/i18n"
	"github.com/toeirei/registrar/internal/logging"
	"github.com/toeirei/registrar/internal/records"
	"golang.org/x/term"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	headingStyle = lipgloss.NewStyle().Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// errQuit ends the menu loop. It is returned when the user picks exit or
// input runs out.
var errQuit = errors.New("quit")

// Menu is the numbered interactive loop over a records store.
type Menu struct {
	store  *records.Store
	in     *bufio.Reader
	out    io.Writer
	styled bool
}

// NewMenu builds a menu reading answers from in and writing to out.
func NewMenu(store *records.Store, in io.Reader, out io.Writer) *Menu {
	return &Menu{
		store:  store,
		in:     bufio.NewReader(in),
		out:    out,
		styled: isTerminal(in) && isTerminal(out),
	}
}

func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Run shows the menu until the user exits or input ends. Errors of single
// operations are printed and the loop continues; only a failure to read
// input is returned.
func (m *Menu) Run() error {
	for {
		m.printMenu()
		choice, err := m.ask("menu.choose")
		if err == nil {
			err = m.dispatch(choice)
		}
		if errors.Is(err, errQuit) {
			m.println(i18n.T("menu.goodbye"))
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func (m *Menu) dispatch(choice string) error {
	switch choice {
	case "1":
		return m.addStudent()
	case "2":
		return m.enroll()
	case "3":
		return m.grade()
	case "4":
		return m.displayStudent()
	case "5":
		return m.displayCourse()
	case "0":
		return errQuit
	default:
		m.println(i18n.T("menu.unknown_option", choice))
		return nil
	}
}

func (m *Menu) printMenu() {
	m.println(m.style(titleStyle, i18n.T("menu.title")))
	for _, id := range []string{"menu.add_student", "menu.enroll", "menu.grade", "menu.display_student", "menu.display_course", "menu.exit"} {
		m.println(i18n.T(id))
	}
}

func (m *Menu) addStudent() error {
	m.println(i18n.T("student.next_id", m.store.NextStudentID()))
	answers, err := m.askAll("prompt.student_name", "prompt.student_email")
	if err != nil {
		return err
	}
	st, err := m.store.AddStudent(answers[0], answers[1])
	if err != nil {
		m.fail(err)
		return nil
	}
	m.println(i18n.T("student.added", st.ID))
	return nil
}

func (m *Menu) enroll() error {
	answers, err := m.askAll("prompt.student_id", "prompt.course_id", "prompt.semester")
	if err != nil {
		return err
	}
	e, err := m.store.Enroll(answers[0], answers[1], answers[2])
	if err != nil {
		m.fail(err)
		return nil
	}
	st, _ := m.store.Student(e.StudentID)
	c, _ := m.store.Course(e.CourseID)
	m.println(i18n.T("enroll.success", st.Name, c.Name, e.Semester))
	return nil
}

func (m *Menu) grade() error {
	answers, err := m.askAll("prompt.student_id", "prompt.course_id", "prompt.semester", "prompt.grade")
	if err != nil {
		return err
	}
	res, err := m.store.SetGrade(answers[0], answers[1], answers[2], answers[3])
	if err != nil {
		m.fail(err)
		return nil
	}
	switch res.Status {
	case records.GradeRecorded:
		m.println(i18n.T("grade.recorded"))
	case records.GradeStudentMissing:
		m.println(i18n.T("error.no_student"))
	case records.GradeCourseMissing:
		m.println(i18n.T("error.no_course"))
	case records.GradeNotEnrolled:
		m.println(i18n.T("error.not_enrolled"))
	case records.GradeEmpty:
		m.println(i18n.T("grade.empty"))
	default:
		m.println(i18n.T("grade.failed"))
	}
	return nil
}

func (m *Menu) displayStudent() error {
	id, err := m.ask("prompt.student_id")
	if err != nil {
		return err
	}
	v, err := m.store.StudentView(id)
	if err != nil {
		m.fail(err)
		return nil
	}
	m.println(m.style(headingStyle, i18n.T("view.student", v.Student.Name, v.Student.Email)))
	m.println(i18n.T("view.courses"))
	if len(v.Courses) == 0 {
		m.println(i18n.T("view.none"))
	}
	for _, c := range v.Courses {
		if c.Grade == "" {
			m.println(i18n.T("view.course_line", c.Course.Name, c.Course.Credit, c.Semester))
			continue
		}
		m.println(i18n.T("view.course_line_graded", c.Course.Name, c.Course.Credit, c.Semester, c.Grade))
	}
	return nil
}

func (m *Menu) displayCourse() error {
	id, err := m.ask("prompt.course_id")
	if err != nil {
		return err
	}
	v, err := m.store.CourseView(id)
	if err != nil {
		m.fail(err)
		return nil
	}
	m.println(m.style(headingStyle, i18n.T("view.course", v.Course.Name, v.Course.Credit)))
	m.println(i18n.T("view.students"))
	if len(v.Students) == 0 {
		m.println(i18n.T("view.none"))
	}
	for _, s := range v.Students {
		if s.Grade == "" {
			m.println(i18n.T("view.student_line", s.Student.Name, s.Student.Email, s.Semester))
			continue
		}
		m.println(i18n.T("view.student_line_graded", s.Student.Name, s.Student.Email, s.Semester, s.Grade))
	}
	return nil
}

// fail prints the user-facing message for a store error.
func (m *Menu) fail(err error) {
	var msg string
	switch {
	case errors.Is(err, records.ErrStudentNotFound):
		msg = i18n.T("error.no_student")
	case errors.Is(err, records.ErrCourseNotFound):
		msg = i18n.T("error.no_course")
	case errors.Is(err, records.ErrAlreadyEnrolled):
		msg = i18n.T("enroll.already")
	default:
		logging.Errorf("%v", err)
		msg = i18n.T("error.io", err)
	}
	m.println(m.style(errorStyle, msg))
}

// ask prints the prompt for id and reads one trimmed line. End of input
// yields errQuit.
func (m *Menu) ask(id string) (string, error) {
	_, _ = fmt.Fprint(m.out, i18n.T(id))
	line, err := m.in.ReadString('\n')
	if errors.Is(err, io.EOF) {
		if line == "" {
			_, _ = fmt.Fprintln(m.out)
			return "", errQuit
		}
		err = nil
	}
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func (m *Menu) askAll(ids ...string) ([]string, error) {
	answers := make([]string, 0, len(ids))
	for _, id := range ids {
		a, err := m.ask(id)
		if err != nil {
			return nil, err
		}
		answers = append(answers, a)
	}
	return answers, nil
}

func (m *Menu) style(s lipgloss.Style, text string) string {
	if !m.styled {
		return text
	}
	return s.Render(text)
}

func (m *Menu) println(s string) {
	_, _ = fmt.Fprintln(m.out, s)
}
