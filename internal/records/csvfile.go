// Copyright (c) 2026 Registrar Team
// Registrar - school records manager
// This source code is licensed under the MIT license found in the LICENSE file.

package records

import (
	"encoding/csv"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// Header rows of the three backing files.
var (
	studentsHeader    = []string{"id", "name", "email"}
	coursesHeader     = []string{"id", "name", "credit"}
	enrollmentsHeader = []string{"student_id", "course_id", "semester", "grade"}
)

// csvRow is one data row together with its 1-based line number in the file.
type csvRow struct {
	Line   int
	Fields []string
}

// readTable reads every data row of a delimited file, skipping the header.
// A missing file is created with just the header and yields no rows.
func readTable(path string, header []string) ([]csvRow, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		if err := rewriteTable(path, header, nil); err != nil {
			return nil, err
		}
		return nil, nil
	}
	if err != nil {
		return nil, ioErr("open", path, err)
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.FieldsPerRecord = len(header)
	r.TrimLeadingSpace = true

	var rows []csvRow
	first := true
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				return nil, &FormatError{Path: path, Line: pe.Line, Err: pe.Err}
			}
			return nil, ioErr("read", path, err)
		}
		if first {
			first = false
			continue
		}
		line, _ := r.FieldPos(0)
		rows = append(rows, csvRow{Line: line, Fields: rec})
	}
	return rows, nil
}

// appendRow appends one record, writing the header first when the file is
// new or empty. A missing trailing newline is repaired before appending.
func appendRow(path string, header, record []string) (err error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_APPEND|os.O_CREATE, 0o644)
	if err != nil {
		return ioErr("open", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = ioErr("close", path, cerr)
		}
	}()

	info, err := f.Stat()
	if err != nil {
		return ioErr("stat", path, err)
	}

	w := csv.NewWriter(f)
	if info.Size() == 0 {
		if err := w.Write(header); err != nil {
			return ioErr("write", path, err)
		}
	} else {
		last := make([]byte, 1)
		if _, err := f.ReadAt(last, info.Size()-1); err != nil {
			return ioErr("read", path, err)
		}
		if last[0] != '\n' {
			if _, err := f.Write([]byte("\n")); err != nil {
				return ioErr("write", path, err)
			}
		}
	}
	if err := w.Write(record); err != nil {
		return ioErr("write", path, err)
	}
	w.Flush()
	return ioErr("write", path, w.Error())
}

// rewriteTable replaces the whole file with header plus rows. The content is
// written to a temporary file in the same directory and renamed over the
// target, so readers see either the old or the new file.
func rewriteTable(path string, header []string, rows [][]string) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return ioErr("mkdir", dir, err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return ioErr("create", path, err)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	w := csv.NewWriter(tmp)
	if err := w.Write(header); err != nil {
		return ioErr("write", tmpName, err)
	}
	if err := w.WriteAll(rows); err != nil {
		return ioErr("write", tmpName, err)
	}
	if err := tmp.Sync(); err != nil {
		return ioErr("sync", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return ioErr("close", tmpName, err)
	}
	// CreateTemp uses 0600; match the mode appendRow creates files with.
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return ioErr("chmod", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return ioErr("rename", path, err)
	}
	return nil
}
