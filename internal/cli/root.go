package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"scriptpad/internal/applog"
	"scriptpad/internal/format"
	"scriptpad/internal/pad"
	"scriptpad/internal/script"
	"scriptpad/internal/store"
	"scriptpad/internal/tui"

	"github.com/spf13/cobra"
)

type App struct {
	Dir        string
	PrettyJSON bool
	Format     string
	LogFile    string

	cfg      *store.GlobalConfig
	log      *slog.Logger
	closeLog func() error
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "scriptpad",
		Short:        "Script pad: write, save and run small scripts (TUI + CLI)",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive screen
  scriptpad

  # Scriptable commands
  scriptpad files list
  echo 'alert("hi")' | scriptpad files save hello.js
  scriptpad run hello.js --press OK

  # Run a saved file directly (shortcut for: scriptpad run hello.js)
  scriptpad hello.js
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive screen.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(cmd, app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := store.LoadConfig()
		if err != nil {
			return writeErr(cmd, fmt.Errorf("load config: %w", err))
		}
		app.cfg = cfg

		path := app.LogFile
		if path == "" {
			path = cfg.LogFile
		}
		if path == "" {
			if p, err := store.DefaultLogPath(); err == nil {
				path = p
			}
		}
		app.log, app.closeLog = applog.Open(path, cmd.ErrOrStderr())
		app.log.Info("command start", slog.String("cmd", cmd.CommandPath()))
		return nil
	}

	cmd.PersistentPostRunE = func(cmd *cobra.Command, args []string) error {
		if app.closeLog != nil {
			return app.closeLog()
		}
		return nil
	}

	cmd.PersistentFlags().StringVar(&app.Dir, "dir", envOr("SCRIPTPAD_DIR", ""), "Path to store dir (default: config storeDir or ~/.scriptpad/store)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("SCRIPTPAD_FORMAT", "json"), "Output format (json|yaml)")
	cmd.PersistentFlags().StringVar(&app.LogFile, "log-file", envOr("SCRIPTPAD_LOG_FILE", ""), "Diagnostic log file (\"off\" disables)")

	cmd.AddCommand(newFilesCmd(app))
	cmd.AddCommand(newRunCmd(app))
	cmd.AddCommand(newStatusCmd(app))
	cmd.AddCommand(newDocsCmd(app))

	return cmd
}

func runTUI(cmd *cobra.Command, app *App) error {
	p, err := newPad(app, app.cfg.RunTimeout())
	if err != nil {
		return writeErr(cmd, err)
	}
	opts := tui.Options{}
	if app.cfg.TUI != nil {
		opts.Theme = app.cfg.TUI.Theme
		opts.Glyphs = app.cfg.TUI.Glyphs
	}
	return tui.Run(cmdContext(cmd), p, opts)
}

// resolveStore picks the store dir: --dir, then the config, then the default.
func resolveStore(app *App) (store.Store, error) {
	dir := app.Dir
	if dir == "" {
		d, err := store.DefaultDir(app.cfg)
		if err != nil {
			return store.Store{}, err
		}
		dir = d
		app.Dir = dir
	}
	return store.Store{Dir: dir, Logger: app.logger()}, nil
}

func newPad(app *App, timeout time.Duration) (*pad.Pad, error) {
	s, err := resolveStore(app)
	if err != nil {
		return nil, err
	}
	r := script.Runner{Timeout: timeout, Logger: app.logger()}
	return pad.New(s, r, app.logger()), nil
}

// openPad opens the store strictly: commands that write must not replace an
// unreadable collection with an empty one.
func openPad(cmd *cobra.Command, app *App) (*pad.Pad, error) {
	p, err := newPad(app, app.cfg.RunTimeout())
	if err != nil {
		return nil, err
	}
	if err := p.Open(cmdContext(cmd)); err != nil {
		return nil, err
	}
	return p, nil
}

func (app *App) logger() *slog.Logger {
	if app.log == nil {
		return applog.Discard()
	}
	return app.log
}

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
