package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/gustavkrist/bookmarks/internal/app"
	"github.com/gustavkrist/bookmarks/internal/bookmarks"
	"github.com/gustavkrist/bookmarks/internal/config"
	"github.com/gustavkrist/bookmarks/internal/logging"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// Runner starts the dashboard with a resolved configuration.
type Runner func(app.Config) (app.Result, error)

// ConfigError reports flags, environment or config file values that could
// not be turned into a runtime configuration.
type ConfigError struct {
	Err error
}

func (e *ConfigError) Error() string { return "configuration error: " + e.Err.Error() }

func (e *ConfigError) Unwrap() error { return e.Err }

// env holds what commands need from the outside world.
type env struct {
	stdout io.Writer
	stderr io.Writer
	fs     afero.Fs
	run    Runner
	cfg    config.Config
}

func (e *env) store() (*bookmarks.Store, error) {
	return bookmarks.NewStore(e.fs, e.cfg.App.BookmarkFile)
}

// NewRootCmd returns the bookmarks command wired to the real terminal and
// filesystem.
func NewRootCmd() *cobra.Command {
	return newRootCmd(&env{
		stdout: os.Stdout,
		stderr: os.Stderr,
		fs:     afero.NewOsFs(),
		run:    app.Run,
	})
}

func newRootCmd(e *env) *cobra.Command {
	var reset bool

	cmd := &cobra.Command{
		Use:   "bookmarks",
		Short: "Browse bookmarked files and directories",
		Long: `Opens a dashboard with your bookmarks on the left, the tree of the open
bookmark below them and a preview of the selected file on the right.

Pressing z quits and prints the selected directory, so a shell function
such as

    bm() { cd "$(bookmarks)"; }

changes into it.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return e.setup(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if reset {
				return e.reset()
			}
			return e.open()
		},
	}
	cmd.SetOut(e.stdout)
	cmd.SetErr(e.stderr)
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &ConfigError{Err: err}
	})
	config.RegisterFlags(cmd.PersistentFlags())
	cmd.Flags().BoolVar(&reset, "reset", false, "replace the bookmark file with an empty one")

	cmd.AddCommand(
		newOpenCmd(e),
		newAddCmd(e),
		newRemoveCmd(e),
		newListCmd(e),
	)
	return cmd
}

func (e *env) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.FromFlags(cmd.Flags(), args)
	if err != nil {
		return &ConfigError{Err: err}
	}
	e.cfg = cfg
	logging.Configure(cfg.Logging.FilePath)
	logging.SetTraceEnabled(cfg.Logging.Trace)
	traceStartup(cfg)
	return nil
}

func (e *env) reset() error {
	store, err := e.store()
	if err != nil {
		return err
	}
	if err := store.Reset(); err != nil {
		return err
	}
	fmt.Fprintf(e.stderr, "Reset %s\n", store.Path())
	return nil
}

// Execute runs the command line and returns the process exit code.
func Execute() int {
	return execute(NewRootCmd(), os.Args[1:], os.Stderr)
}

func execute(cmd *cobra.Command, args []string, stderr io.Writer) int {
	cmd.SetArgs(args)
	err := cmd.Execute()
	if err == nil {
		return 0
	}
	logging.Error(err)
	fmt.Fprintf(stderr, "Error: %v\n", err)
	var cfgErr *ConfigError
	if errors.As(err, &cfgErr) {
		return 2
	}
	return 1
}
