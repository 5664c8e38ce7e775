// Copyright (c) 2026 Registrar Team
// Registrar - school records manager
// This source code is licensed under the MIT license found in the LICENSE file.
package cli

import (
	"os"
	"path/filepath"
	"runtime/debug"
	"testing"

	"github.com/spf13/cobra"
	"github.com/toeirei/registrar/internal/config"
)

func TestResolveBuildVersion_WithBuildInfo(t *testing.T) {
	info := &debug.BuildInfo{
		Main: debug.Module{Path: "github.com/toeirei/registrar", Version: "v1.2.3"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "deadbeef"},
			{Key: "vcs.time", Value: "2025-01-01T00:00:00Z"},
		},
	}

	v, c, d := resolveBuildVersion(info)
	if v != "v1.2.3" {
		t.Fatalf("expected version v1.2.3, got %s", v)
	}
	if c != "deadbeef" {
		t.Fatalf("expected commit deadbeef, got %s", c)
	}
	if d != "2025-01-01T00:00:00Z" {
		t.Fatalf("expected date set, got %s", d)
	}
}

func TestCompositeVersion(t *testing.T) {
	if got := compositeVersion("v1.0.0", "dev", ""); got != "v1.0.0" {
		t.Fatalf("expected bare version, got %s", got)
	}
	if got := compositeVersion("v1.0.0", "abc123", "2026-01-01"); got != "v1.0.0 (abc123) built: 2026-01-01" {
		t.Fatalf("unexpected composite version %s", got)
	}
}

func TestAppPaths_Overrides(t *testing.T) {
	a := &app{cfg: config.Config{Data: config.DataConfig{Dir: "/srv/school", Courses: "/etc/courses.csv"}}}
	p := a.paths()
	if p.Students != filepath.Join("/srv/school", "students.csv") {
		t.Fatalf("unexpected students path %s", p.Students)
	}
	if p.Courses != "/etc/courses.csv" {
		t.Fatalf("expected courses override, got %s", p.Courses)
	}
	if p.Enrollments != filepath.Join("/srv/school", "enrollments.csv") {
		t.Fatalf("unexpected enrollments path %s", p.Enrollments)
	}
}

func TestGetConfigPathFromCli_FlagNotSet(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.Flags().String("config", "", "config file")

	p, err := getConfigPathFromCli(cmd)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p != nil {
		t.Fatalf("expected nil path when flag not set, got %v", *p)
	}
}

func TestGetConfigPathFromCli_WithValidFile(t *testing.T) {
	file, err := os.CreateTemp("", "regcfg-*.yaml")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	defer func() { _ = os.Remove(file.Name()) }()
	_ = file.Close()

	cmd := &cobra.Command{}
	cmd.Flags().String("config", "", "config file")
	// Simulate user setting the flag
	if err := cmd.Flags().Set("config", file.Name()); err != nil {
		t.Fatalf("failed to set flag: %v", err)
	}

	p, err := getConfigPathFromCli(cmd)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p == nil || *p != file.Name() {
		t.Fatalf("expected path %s, got %v", file.Name(), p)
	}
}
