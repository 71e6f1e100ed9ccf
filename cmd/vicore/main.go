// Package main is the entry point of the vicore command, which replays
// key sequences against a file through the editing core.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dshills/vicore/internal/app"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// flags are the options shared by run and export.
type flags struct {
	config    string
	file      string
	keys      string
	logLevel  string
	readOnly  bool
	clipboard bool
	write     bool
}

func (f *flags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.config, "config", "c", "", "options file (TOML)")
	cmd.Flags().StringVarP(&f.file, "file", "f", "", "file to edit")
	cmd.Flags().StringVarP(&f.keys, "keys", "k", "", `keys to replay, e.g. "dwjp" or "ihi<Esc>"`)
	cmd.Flags().StringVar(&f.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	cmd.Flags().BoolVarP(&f.readOnly, "readonly", "R", false, "make the buffer unmodifiable")
	cmd.Flags().BoolVar(&f.clipboard, "clipboard", false, "use the system clipboard for the * and + registers")
}

func (f *flags) options(cmd *cobra.Command) app.Options {
	return app.Options{
		ConfigPath: f.config,
		File:       f.file,
		ReadOnly:   f.readOnly,
		Clipboard:  f.clipboard,
		LogLevel:   f.logLevel,
		LogOutput:  cmd.ErrOrStderr(),
	}
}

// replay starts an application and feeds it the keys. Command errors are
// printed and do not fail the run.
func (f *flags) replay(cmd *cobra.Command) (*app.Application, error) {
	application, err := app.New(f.options(cmd))
	if err != nil {
		return nil, err
	}
	if err := application.RunKeys(cmd.Context(), f.keys); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "vicore: %v\n", err)
	}
	return application, nil
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "vicore",
		Short:         "Vim editing semantics without the editor",
		Long:          "vicore replays Vim key sequences against a buffer and prints the result.",
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(newRunCmd(), newExportCmd(), newVersionCmd())
	return root
}

func newRunCmd() *cobra.Command {
	var f flags
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Replay keys and print the buffer",
		Example: `  vicore run -f notes.txt -k 'ggdd'
  echo 'foo bar' > /tmp/x && vicore run -f /tmp/x -k 'wD' --write`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			application, err := f.replay(cmd)
			if err != nil {
				return err
			}
			defer application.Shutdown(context.Background())

			s := application.Session()
			if f.write {
				return application.Document().Write("", s.Lines())
			}
			fmt.Fprint(cmd.OutOrStdout(), application.Document().Join(s.Lines()))
			return nil
		},
	}
	f.register(cmd)
	cmd.Flags().BoolVarP(&f.write, "write", "w", false, "write the result back to the file instead of printing it")
	return cmd
}

func newExportCmd() *cobra.Command {
	var f flags
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Replay keys and print the session state as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			application, err := f.replay(cmd)
			if err != nil {
				return err
			}
			defer application.Shutdown(context.Background())

			data, err := application.Session().ExportState()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	f.register(cmd)
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "vicore %s\nCommit: %s\nBuilt: %s\n", version, commit, date)
		},
	}
}
