package script

import (
	"errors"
	"fmt"

	"github.com/dop251/goja"
)

type ErrorKind string

const (
	ErrorThrown      ErrorKind = "thrown"
	ErrorSyntax      ErrorKind = "syntax"
	ErrorInterrupted ErrorKind = "interrupted"
)

var ErrUnknownAlert = errors.New("unknown alert")

// ScriptError is any failure raised while evaluating user code.
type ScriptError struct {
	Name    string
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *ScriptError) Error() string {
	if e.Name == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Name, e.Message)
}

func (e *ScriptError) Unwrap() error { return e.Err }

// wrapError converts goja failures into a *ScriptError. nil stays nil.
func wrapError(name string, err error) error {
	if err == nil {
		return nil
	}
	var se *ScriptError
	if errors.As(err, &se) {
		return se
	}

	var interrupted *goja.InterruptedError
	if errors.As(err, &interrupted) {
		msg := "script interrupted"
		if v := interrupted.Value(); v != nil {
			msg = fmt.Sprintf("script interrupted: %v", v)
		}
		return &ScriptError{Name: name, Kind: ErrorInterrupted, Message: msg, Err: err}
	}

	var exc *goja.Exception
	if errors.As(err, &exc) {
		msg := exc.Error()
		if v := exc.Value(); v != nil && !goja.IsUndefined(v) && !goja.IsNull(v) {
			msg = v.String()
		}
		return &ScriptError{Name: name, Kind: ErrorThrown, Message: msg, Err: err}
	}

	var syntax *goja.CompilerSyntaxError
	if errors.As(err, &syntax) {
		return &ScriptError{Name: name, Kind: ErrorSyntax, Message: "SyntaxError: " + syntax.Error(), Err: err}
	}

	return &ScriptError{Name: name, Kind: ErrorThrown, Message: err.Error(), Err: err}
}
