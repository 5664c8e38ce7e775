package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	cfg "github.com/toeirei/registrar/internal/config"
)

// isolate points the user and system config lookups at an empty temp dir
// and runs the test from another, so no real registrar.yaml is picked up.
func isolate(t *testing.T) string {
	t.Helper()
	tmp := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmp, "xdg"))
	t.Setenv("HOME", tmp)
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(tmp); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return tmp
}

func TestLoadConfig_Defaults(t *testing.T) {
	isolate(t)

	got, err := cfg.LoadConfig[cfg.Config](&cobra.Command{}, cfg.Defaults(), nil)
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if got.Data.Dir != "./database" {
		t.Fatalf("expected default data dir, got %q", got.Data.Dir)
	}
	if got.Language != "en" {
		t.Fatalf("expected en, got %q", got.Language)
	}
	if got.Log.Level != "warn" {
		t.Fatalf("expected warn, got %q", got.Log.Level)
	}
	if got.DB.Type != "sqlite" || got.DB.DSN != "./registrar.db" {
		t.Fatalf("unexpected db defaults: %+v", got.DB)
	}
}

func TestLoadConfig_ReadsExplicitFile(t *testing.T) {
	tmp := isolate(t)
	yaml := "data:\n  dir: /srv/school\n  students: /srv/people.csv\nlanguage: de\n"
	file := filepath.Join(tmp, "cfg.yaml")
	if err := os.WriteFile(file, []byte(yaml), 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}

	got, err := cfg.LoadConfig[cfg.Config](&cobra.Command{}, cfg.Defaults(), &file)
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if got.Data.Dir != "/srv/school" {
		t.Fatalf("expected /srv/school, got %q", got.Data.Dir)
	}
	if got.Data.Students != "/srv/people.csv" {
		t.Fatalf("expected students override, got %q", got.Data.Students)
	}
	if got.Language != "de" {
		t.Fatalf("expected de, got %q", got.Language)
	}
}

func TestLoadConfig_ReadsCwdFile(t *testing.T) {
	tmp := isolate(t)
	if err := os.WriteFile(filepath.Join(tmp, "registrar.yaml"), []byte("language: de\n"), 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}

	got, err := cfg.LoadConfig[cfg.Config](&cobra.Command{}, cfg.Defaults(), nil)
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if got.Language != "de" {
		t.Fatalf("expected de from ./registrar.yaml, got %q", got.Language)
	}
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	tmp := isolate(t)
	file := filepath.Join(tmp, "cfg.yaml")
	if err := os.WriteFile(file, []byte("data:\n  dir: fromfile\n"), 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}
	t.Setenv("REGISTRAR_DATA_DIR", "fromenv")

	got, err := cfg.LoadConfig[cfg.Config](&cobra.Command{}, cfg.Defaults(), &file)
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if got.Data.Dir != "fromenv" {
		t.Fatalf("expected env to win, got %q", got.Data.Dir)
	}
}

func TestLoadConfig_ChangedFlagWins(t *testing.T) {
	isolate(t)
	t.Setenv("REGISTRAR_LANGUAGE", "de")

	cmd := &cobra.Command{}
	cmd.Flags().String("language", "en", "")
	if err := cmd.Flags().Set("language", "en"); err != nil {
		t.Fatalf("set flag: %v", err)
	}

	got, err := cfg.LoadConfig[cfg.Config](cmd, cfg.Defaults(), nil)
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if got.Language != "en" {
		t.Fatalf("expected flag to win over env, got %q", got.Language)
	}
}

func TestLoadConfig_MalformedFile(t *testing.T) {
	tmp := isolate(t)
	file := filepath.Join(tmp, "bad.yaml")
	if err := os.WriteFile(file, []byte("data: [unterminated\n"), 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}

	if _, err := cfg.LoadConfig[cfg.Config](&cobra.Command{}, cfg.Defaults(), &file); err == nil {
		t.Fatalf("expected parse error for malformed yaml")
	}
}

func TestWriteConfigFileTo_CreatesFile(t *testing.T) {
	isolate(t)

	c := cfg.Config{Language: "en"}
	c.Data.Dir = "./database"

	path, err := cfg.GetConfigPath(false)
	if err != nil {
		t.Fatalf("GetConfigPath failed: %v", err)
	}
	if err := cfg.WriteConfigFileTo(&c, path); err != nil {
		t.Fatalf("WriteConfigFileTo failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected config file at %s, stat error: %v", path, err)
	}

	got, err := cfg.LoadConfig[cfg.Config](&cobra.Command{}, cfg.Defaults(), &path)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if got.Data.Dir != "./database" || got.Language != "en" {
		t.Fatalf("unexpected reloaded config: %+v", got)
	}
}
