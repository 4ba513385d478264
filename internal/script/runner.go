// Package script evaluates user scripts behind a capability boundary.
//
// Each run gets a fresh ECMAScript runtime that can reach only the stubs
// installed here (alert, console and a ReactNative-shaped Alert module).
// There is no module loader and no access to the host process.
package script

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/dop251/goja"
	"github.com/google/uuid"
)

// Capabilities lists the globals a script can reach besides the language builtins.
func Capabilities() []string {
	return []string{"alert", "console.log", "console.error", "ReactNative.Alert.alert", "RN.Alert.alert"}
}

// Runner starts script sessions.
type Runner struct {
	// Timeout bounds each evaluation (the initial run and every button press).
	// Zero means unbounded.
	Timeout time.Duration

	Logger *slog.Logger
}

func (r Runner) logger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Run evaluates src in a new session. The session is returned even when
// evaluation fails so callers can show output produced before the failure;
// it is nil only when ctx is already done.
func (r Runner) Run(ctx context.Context, name, src string) (*Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s := newSession(r, name)

	start := time.Now()
	err := s.eval(ctx, func() error {
		prog, err := goja.Compile(name, src, false)
		if err != nil {
			return err
		}
		_, err = s.vm.RunProgram(prog)
		return err
	})

	attrs := []any{
		slog.String("run", s.ID),
		slog.String("name", name),
		slog.Duration("took", time.Since(start)),
		slog.Int("alerts", len(s.alerts)),
	}
	if err != nil {
		r.logger().Warn("script failed", append(attrs, slog.Any("err", err))...)
	} else {
		r.logger().Info("script ran", attrs...)
	}
	return s, err
}

func newRunID() string {
	return uuid.NewString()
}
