// Copyright (c) 2026 Registrar Team
// Registrar - school records manager
// This source code is licensed under the MIT license found in the LICENSE file.

package main

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestVerbs(t *testing.T) {
	got := verbs("Student %s enrolled in %q, 100%% sure, %5.2f")
	want := []string{"%s", "%q", "%5.2f"}
	if !slices.Equal(got, want) {
		t.Fatalf("verbs = %v, want %v", got, want)
	}
}

func TestLoadLocale_Flattens(t *testing.T) {
	p := filepath.Join(t.TempDir(), "active.en.yaml")
	writeFile(t, p, "menu:\n  title: \"Menu:\"\n  exit: \"0. EXIT\"\nload:\n  error: \"%v\"\n")
	got, err := loadLocale(p)
	if err != nil {
		t.Fatalf("loadLocale failed: %v", err)
	}
	if got["menu.title"] != "Menu:" || got["load.error"] != "%v" || len(got) != 3 {
		t.Fatalf("unexpected flattened locale: %v", got)
	}
}

func TestLint(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "app", "a.go"), `package app
var items = []string{"menu.exit"}
func f() {
	_ = i18n.T("menu.title")
	_ = i18n.T("menu.lost")
	_ = viperKey("data.dir")
}`)
	// Sources under underscore directories are ignored.
	writeFile(t, filepath.Join(root, "_ref", "b.go"), `package ref
func g() { _ = i18n.T("menu.ghost") }`)
	// Test files are ignored.
	writeFile(t, filepath.Join(root, "app", "a_test.go"), `package app
func h() { _ = i18n.T("menu.only_in_tests") }`)

	locales := filepath.Join(root, "locales")
	writeFile(t, filepath.Join(locales, "active.en.yaml"), "menu:\n  title: \"Menu %s:\"\n  exit: \"Exit\"\n  unused: \"x\"\n")
	writeFile(t, filepath.Join(locales, "active.de.yaml"), "menu:\n  title: \"Menü %d:\"\n  unused: \"x\"\n")

	r, err := lint(root, locales)
	if err != nil {
		t.Fatalf("lint failed: %v", err)
	}
	if !slices.Equal(r.Missing["active.en.yaml"], []string{"menu.lost"}) {
		t.Fatalf("unexpected missing in primary: %v", r.Missing["active.en.yaml"])
	}
	if !slices.Equal(r.Missing["active.de.yaml"], []string{"menu.exit"}) {
		t.Fatalf("unexpected missing in de: %v", r.Missing["active.de.yaml"])
	}
	if !slices.Equal(r.Verbs["active.de.yaml"], []string{"menu.title"}) {
		t.Fatalf("unexpected verb mismatches: %v", r.Verbs)
	}
	if !slices.Equal(r.Orphaned, []string{"menu.unused"}) {
		t.Fatalf("unexpected orphaned keys: %v", r.Orphaned)
	}
	if !r.failed() {
		t.Fatalf("expected failure")
	}
}

func TestLint_RepositoryLocales(t *testing.T) {
	root := filepath.Join("..", "..")
	r, err := lint(root, filepath.Join(root, localesDir))
	if err != nil {
		t.Fatalf("lint failed: %v", err)
	}
	if r.failed() {
		t.Fatalf("repository locales are inconsistent: missing=%v verbs=%v", r.Missing, r.Verbs)
	}
}
