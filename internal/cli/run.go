package cli

import (
	"errors"
	"path/filepath"
	"strings"
	"time"

	"scriptpad/internal/model"
	"scriptpad/internal/script"

	"github.com/spf13/cobra"
)

type alertRecord struct {
	script.Alert `yaml:",inline"`

	Pressed string `json:"pressed,omitempty" yaml:"pressed,omitempty"`
}

type runError struct {
	Kind    script.ErrorKind `json:"kind" yaml:"kind"`
	Message string           `json:"message" yaml:"message"`
}

type runResult struct {
	Run     string         `json:"run" yaml:"run"`
	Name    string         `json:"name" yaml:"name"`
	Output  []string       `json:"output" yaml:"output"`
	Alerts  []alertRecord  `json:"alerts" yaml:"alerts"`
	Pending []script.Alert `json:"pending,omitempty" yaml:"pending,omitempty"`
	Error   *runError      `json:"error,omitempty" yaml:"error,omitempty"`
}

func newRunCmd(app *App) *cobra.Command {
	var from string
	var eval string
	var timeout time.Duration
	var presses []string

	cmd := &cobra.Command{
		Use:   "run [name]",
		Short: "Run a saved file, a path (--from) or inline code (-e)",
		Long: strings.TrimSpace(`
Runs a script the way the screen's Run does. Alerts raised by the script are
reported in order; each --press answers the next alert with the button of that
label, which runs the button's onPress handler.

A script error is reported under "error" and the command exits non-zero.
`),
		Example: strings.TrimSpace(`
  scriptpad run "Alert Example 2.js" --press OK
  scriptpad run -e 'console.log(1 + 1)'
  scriptpad run --from ./hello.js --timeout 2s
`),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sources := 0
			if len(args) == 1 {
				sources++
			}
			if from != "" {
				sources++
			}
			if cmd.Flags().Changed("eval") {
				sources++
			}
			if sources != 1 {
				return writeErr(cmd, errUsage("pass exactly one of <name>, --from or -e"))
			}

			if !cmd.Flags().Changed("timeout") {
				timeout = app.cfg.RunTimeout()
			}
			p, err := newPad(app, timeout)
			if err != nil {
				return writeErr(cmd, err)
			}

			var f model.File
			switch {
			case len(args) == 1:
				if err := p.Open(cmdContext(cmd)); err != nil {
					return writeErr(cmd, err)
				}
				saved, ok := p.Get(args[0])
				if !ok {
					return writeErr(cmd, errNotFound("file", args[0]))
				}
				f = saved
			case from != "":
				b, err := readPathOrStdin(cmd, from)
				if err != nil {
					return writeErr(cmd, err)
				}
				name := filepath.Base(from)
				if from == "-" {
					name = "stdin.js"
				}
				f = model.File{Name: name, Content: string(b)}
			default:
				f = model.File{Name: "eval.js", Content: eval}
			}
			p.SetDraft(f)

			ctx := cmdContext(cmd)
			sess, runErr := p.Run(ctx)
			if sess == nil {
				return writeErr(cmd, runErr)
			}

			res := runResult{Run: sess.ID, Name: f.Name, Alerts: []alertRecord{}}
			for _, text := range presses {
				a, ok := sess.Pending()
				if !ok {
					break
				}
				i := a.ButtonIndex(text)
				if i < 0 {
					return writeErr(cmd, noButtonError{alert: a, text: text})
				}
				res.Alerts = append(res.Alerts, alertRecord{Alert: a, Pressed: a.Buttons[i].Text})
				if err := sess.Press(ctx, a.ID, i); err != nil {
					runErr = errors.Join(runErr, err)
					break
				}
			}
			res.Pending = sess.Alerts()
			res.Output = sess.Output()
			if res.Output == nil {
				res.Output = []string{}
			}

			if runErr != nil {
				res.Error = &runError{Kind: script.ErrorThrown, Message: runErr.Error()}
				var se *script.ScriptError
				if errors.As(runErr, &se) {
					res.Error.Kind = se.Kind
					res.Error.Message = se.Message
				}
			}

			if err := writeOut(cmd, app, map[string]any{"data": res}); err != nil {
				return err
			}
			if runErr != nil {
				return writeErr(cmd, runErr)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Run a script from a path (\"-\" for stdin)")
	cmd.Flags().StringVarP(&eval, "eval", "e", "", "Run inline code")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "Bound each evaluation (default: config runTimeoutMs or 5s; 0 = unbounded)")
	cmd.Flags().StringArrayVar(&presses, "press", nil, "Press the button with this label on the next alert (repeatable)")
	return cmd
}
