// Copyright (c) 2026 Registrar Team
// Registrar - school records manager
// This source code is licensed under the MIT license found in the LICENSE file.

// main.go sets up the command-line interface for Registrar using Cobra. It
// defines the root command, which runs the interactive menu, the shared
// flags and configuration loading.

package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/toeirei/registrar/buildvars"
	"github.com/toeirei/registrar/internal/config"
	"github.com/toeirei/registrar/internal/i18n"
	"github.com/toeirei/registrar/internal/logging"
	"github.com/toeirei/registrar/internal/records"
)

var version = buildvars.VersionOrDefault("dev") // this will be set by the linker
var gitCommit = "dev"                           // set at build time with the short commit SHA
var buildDate = ""                              // set at build time (RFC3339)

// app holds the flag values and the configuration resolved by
// setupDefaultServices. Each NewRootCmd gets its own, so tests stay isolated.
type app struct {
	cfgFile string
	verbose bool
	cfg     config.Config
}

func (a *app) setupDefaultServices(cmd *cobra.Command, args []string) error {
	configPath, err := getConfigPathFromCli(cmd)
	if err != nil {
		return err
	}

	a.cfg, err = config.LoadConfig[config.Config](cmd, config.Defaults(), configPath)
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	// Empty values in a user's file fall back to the defaults.
	defaults := config.Defaults()
	if a.cfg.Data.Dir == "" {
		a.cfg.Data.Dir = defaults["data.dir"].(string)
	}
	if a.cfg.Language == "" {
		a.cfg.Language = defaults["language"].(string)
	}

	if a.verbose {
		logging.SetDebug(true)
	} else if err := logging.SetLevel(a.cfg.Log.Level); err != nil {
		return err
	}

	if !i18n.Supported(a.cfg.Language) {
		logging.Warnf("language %q not available, using en", a.cfg.Language)
		a.cfg.Language = "en"
	}
	i18n.Init(a.cfg.Language)

	logging.Debugf("data files: %+v", a.paths())
	return nil
}

// paths resolves the record files from the data configuration.
func (a *app) paths() records.Paths {
	d := a.cfg.Data
	p := records.PathsIn(d.Dir)
	if d.Students != "" {
		p.Students = d.Students
	}
	if d.Courses != "" {
		p.Courses = d.Courses
	}
	if d.Enrollments != "" {
		p.Enrollments = d.Enrollments
	}
	return p
}

func (a *app) openStore() (*records.Store, error) {
	store, err := records.Open(a.paths())
	if err != nil {
		return nil, errors.New(i18n.T("load.error", err))
	}
	return store, nil
}

// Execute runs the CLI entrypoint. The main package should call this
// function and handle process exit.
func Execute() error {
	return NewRootCmd().Execute()
}

func getConfigPathFromCli(cmd *cobra.Command) (*string, error) {
	// Only proceed if the user has explicitly set the --config flag.
	if !cmd.Flags().Changed("config") {
		return nil, nil
	}
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("could not read --config flag: %w", err)
	}
	if path == "" {
		return nil, nil
	}
	// Make sure the user-provided file exists to avoid unwanted behavior.
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config file specified via --config flag not found or is not accessible: %w", err)
	}
	return &path, nil
}

// NewRootCmd creates and configures a new root cobra command.
// This function is used to create the main application command as well as
// fresh instances for isolated testing.
func NewRootCmd() *cobra.Command {
	a := &app{}
	cmd := &cobra.Command{
		Use:   "registrar",
		Short: "Registrar keeps school records in plain CSV files.",
		Long: `Registrar tracks students, courses, enrollments and grades.
All records live in three comma-delimited files (students.csv, courses.csv
and enrollments.csv) inside the data directory.

Running without a subcommand starts the interactive menu.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setupDefaultServices,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openStore()
			if err != nil {
				return err
			}
			stop := installInterruptHandler(cmd.OutOrStdout())
			defer stop()
			return NewMenu(store, cmd.InOrStdin(), cmd.OutOrStdout()).Run()
		},
	}

	v, c, d := resolveBuildVersion(nil)
	cmd.Version = compositeVersion(v, c, d)
	cmd.SetVersionTemplate("{{.Version}}\n")

	// Define flags. Names match the configuration keys so viper binds them.
	cmd.Flags().BoolP("version", "V", false, "Print version and exit")
	cmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")
	cmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file")
	cmd.PersistentFlags().String("data.dir", "./database", "Directory holding the record files")
	cmd.PersistentFlags().String("data.students", "", "Students file (default <data.dir>/students.csv)")
	cmd.PersistentFlags().String("data.courses", "", "Courses file (default <data.dir>/courses.csv)")
	cmd.PersistentFlags().String("data.enrollments", "", "Enrollments file (default <data.dir>/enrollments.csv)")
	cmd.PersistentFlags().String("language", "en", `Language ("en", "de")`)
	cmd.PersistentFlags().String("log.level", "warn", "Log level (debug, info, warn, error)")

	cmd.AddCommand(
		newBackupCmd(a),
		newRestoreCmd(a),
		newExportCmd(a),
		newConfigCmd(a),
		newVersionCmd(),
	)

	return cmd
}

// installInterruptHandler makes SIGINT and SIGTERM end the process with the
// goodbye line and exit code 0. The returned func removes the handler.
func installInterruptHandler(out io.Writer) func() {
	sigChan := make(chan os.Signal, 1)
	done := make(chan struct{})
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case <-sigChan:
			_, _ = fmt.Fprintf(out, "\n%s\n", i18n.T("menu.goodbye"))
			os.Exit(0)
		case <-done:
		}
	}()

	return func() {
		signal.Stop(sigChan)
		close(done)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		// Version output needs no configuration.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			v, c, d := resolveBuildVersion(nil)
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "version: %s\n", v)
			_, _ = fmt.Fprintf(out, "commit: %s\n", c)
			if d != "" {
				_, _ = fmt.Fprintf(out, "built: %s\n", d)
			}
		},
	}
}

func compositeVersion(v, c, d string) string {
	out := v
	if c != "" && c != "dev" {
		out += " (" + c + ")"
	}
	if d != "" {
		out += " built: " + d
	}
	return out
}

// resolveBuildVersion computes the best-available version, commit and build
// date for the running binary. If `info` is nil, it reads build info from
// the runtime.
func resolveBuildVersion(info *debug.BuildInfo) (versionOut, commitOut, dateOut string) {
	resolvedVersion := version
	resolvedCommit := gitCommit
	resolvedDate := buildDate

	if info == nil {
		if local, ok := debug.ReadBuildInfo(); ok {
			info = local
		}
	}

	if info != nil {
		if info.Main.Version != "" && info.Main.Version != "(devel)" {
			resolvedVersion = info.Main.Version
		}
		// Some build paths only carry our version as a dependency.
		if resolvedVersion == "dev" || resolvedVersion == "(devel)" {
			for _, dep := range info.Deps {
				if dep.Path == "github.com/toeirei/registrar" && dep.Version != "" {
					resolvedVersion = dep.Version
					break
				}
			}
		}

		for _, s := range info.Settings {
			switch s.Key {
			case "vcs.revision":
				if s.Value != "" {
					resolvedCommit = s.Value
				}
			case "vcs.time":
				if s.Value != "" {
					resolvedDate = s.Value
				}
			}
		}
	}

	// As a last resort show the commit passed via ldflags.
	if resolvedVersion == "dev" && gitCommit != "dev" && gitCommit != "" {
		resolvedVersion = gitCommit
	}

	return resolvedVersion, resolvedCommit, resolvedDate
}
