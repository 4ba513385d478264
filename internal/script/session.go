package script

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/dop251/goja"
)

// Button is one choice offered by an alert.
type Button struct {
	Text  string `json:"text" yaml:"text"`
	Style string `json:"style,omitempty" yaml:"style,omitempty"`

	// HasHandler reports whether pressing the button runs script code.
	HasHandler bool `json:"hasHandler,omitempty" yaml:"hasHandler,omitempty"`
}

// Alert is a blocking notification raised by a script.
type Alert struct {
	ID      int      `json:"id" yaml:"id"`
	Title   string   `json:"title,omitempty" yaml:"title,omitempty"`
	Message string   `json:"message" yaml:"message"`
	Buttons []Button `json:"buttons" yaml:"buttons"`
}

// CancelIndex is the index of the button with style "cancel", or -1.
func (a Alert) CancelIndex() int {
	for i, b := range a.Buttons {
		if strings.EqualFold(b.Style, "cancel") {
			return i
		}
	}
	return -1
}

// ButtonIndex finds a button by its label (case-insensitive), or -1.
func (a Alert) ButtonIndex(text string) int {
	for i, b := range a.Buttons {
		if strings.EqualFold(strings.TrimSpace(b.Text), strings.TrimSpace(text)) {
			return i
		}
	}
	return -1
}

// maxButtons bounds how many buttons one alert may offer.
const maxButtons = 64

// Session is the runtime of one Run plus the alerts it is still waiting on.
// A session is not safe for concurrent evaluation; Press calls are serialized.
type Session struct {
	ID   string
	Name string

	runner Runner
	vm     *goja.Runtime

	mu       sync.Mutex
	output   []string
	alerts   []Alert
	handlers map[int][]goja.Callable
	nextID   int
}

func newSession(r Runner, name string) *Session {
	s := &Session{
		ID:       newRunID(),
		Name:     name,
		runner:   r,
		vm:       goja.New(),
		handlers: map[int][]goja.Callable{},
	}
	s.install()
	return s
}

// Output returns console lines in the order they were written.
func (s *Session) Output() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.output))
	copy(out, s.output)
	return out
}

// Alerts returns the alerts still waiting for a button press, oldest first.
func (s *Session) Alerts() []Alert {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Alert, len(s.alerts))
	copy(out, s.alerts)
	return out
}

// Pending reports the oldest unanswered alert.
func (s *Session) Pending() (Alert, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.alerts) == 0 {
		return Alert{}, false
	}
	return s.alerts[0], true
}

// Press answers alert id with the button at index and runs its handler, if any.
// Handlers may raise further alerts.
func (s *Session) Press(ctx context.Context, id int, button int) error {
	s.mu.Lock()
	pos := -1
	for i, a := range s.alerts {
		if a.ID == id {
			pos = i
			break
		}
	}
	if pos < 0 {
		s.mu.Unlock()
		return fmt.Errorf("%w: %d", ErrUnknownAlert, id)
	}
	a := s.alerts[pos]
	if button < 0 || button >= len(a.Buttons) {
		s.mu.Unlock()
		return fmt.Errorf("alert %d has no button %d", id, button)
	}
	s.alerts = append(s.alerts[:pos:pos], s.alerts[pos+1:]...)
	fn := s.handlers[id][button]
	delete(s.handlers, id)
	s.mu.Unlock()

	if fn == nil {
		return nil
	}
	return s.eval(ctx, func() error {
		_, err := fn(goja.Undefined())
		return err
	})
}

// Dismiss answers alert id with its cancel button when it has one; otherwise
// the alert is dropped without running any handler.
func (s *Session) Dismiss(ctx context.Context, id int) error {
	s.mu.Lock()
	var found *Alert
	for i := range s.alerts {
		if s.alerts[i].ID == id {
			a := s.alerts[i]
			found = &a
			break
		}
	}
	s.mu.Unlock()
	if found == nil {
		return fmt.Errorf("%w: %d", ErrUnknownAlert, id)
	}
	if i := found.CancelIndex(); i >= 0 {
		return s.Press(ctx, id, i)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, a := range s.alerts {
		if a.ID == id {
			s.alerts = append(s.alerts[:i:i], s.alerts[i+1:]...)
			break
		}
	}
	delete(s.handlers, id)
	return nil
}

// eval runs fn with the runner's timeout and ctx cancellation wired to the
// runtime's interrupt flag.
func (s *Session) eval(ctx context.Context, fn func() error) error {
	if s.runner.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.runner.Timeout)
		defer cancel()
	}

	done := make(chan struct{})
	exited := make(chan struct{})
	go func() {
		defer close(exited)
		select {
		case <-ctx.Done():
			s.vm.Interrupt(ctx.Err())
		case <-done:
		}
	}()

	err := fn()
	close(done)
	// A deadline racing the end of fn may still interrupt; clear only after.
	<-exited
	s.vm.ClearInterrupt()
	return wrapError(s.Name, err)
}

func (s *Session) install() {
	vm := s.vm

	_ = vm.Set("alert", func(call goja.FunctionCall) goja.Value {
		msg := ""
		if len(call.Arguments) > 0 {
			msg = s.display(call.Argument(0))
		}
		s.pushAlert("", msg, nil, nil)
		return goja.Undefined()
	})

	console := vm.NewObject()
	_ = console.Set("log", func(call goja.FunctionCall) goja.Value {
		s.writeOutput("", call.Arguments)
		return goja.Undefined()
	})
	_ = console.Set("error", func(call goja.FunctionCall) goja.Value {
		s.writeOutput("error: ", call.Arguments)
		return goja.Undefined()
	})
	_ = vm.Set("console", console)

	alertModule := vm.NewObject()
	_ = alertModule.Set("alert", func(call goja.FunctionCall) goja.Value {
		title := jsString(call.Argument(0))
		msg := jsString(call.Argument(1))
		buttons, handlers := s.parseButtons(call.Argument(2))
		s.pushAlert(title, msg, buttons, handlers)
		return goja.Undefined()
	})
	rn := vm.NewObject()
	_ = rn.Set("Alert", alertModule)
	_ = vm.Set("ReactNative", rn)
	_ = vm.Set("RN", rn)
}

func (s *Session) writeOutput(prefix string, args []goja.Value) {
	parts := make([]string, 0, len(args))
	for _, a := range args {
		parts = append(parts, s.display(a))
	}
	s.mu.Lock()
	s.output = append(s.output, prefix+strings.Join(parts, " "))
	s.mu.Unlock()
}

func (s *Session) pushAlert(title, msg string, buttons []Button, handlers []goja.Callable) {
	if len(buttons) == 0 {
		buttons = []Button{{Text: "OK"}}
		handlers = []goja.Callable{nil}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	id := s.nextID
	s.alerts = append(s.alerts, Alert{ID: id, Title: title, Message: msg, Buttons: buttons})
	s.handlers[id] = handlers
}

func (s *Session) parseButtons(v goja.Value) ([]Button, []goja.Callable) {
	if v == nil || goja.IsUndefined(v) || goja.IsNull(v) {
		return nil, nil
	}
	arr, ok := v.(*goja.Object)
	if !ok {
		panic(s.vm.NewTypeError("Alert.alert: buttons must be an array"))
	}
	length := arr.Get("length")
	if length == nil || goja.IsUndefined(length) || goja.IsNull(length) {
		panic(s.vm.NewTypeError("Alert.alert: buttons must be an array"))
	}
	n := length.ToInteger()
	if n < 0 {
		n = 0
	}
	if n > maxButtons {
		n = maxButtons
	}
	buttons := make([]Button, 0, n)
	handlers := make([]goja.Callable, 0, n)
	for i := int64(0); i < n; i++ {
		item := arr.Get(strconv.FormatInt(i, 10))
		if item == nil || goja.IsUndefined(item) || goja.IsNull(item) {
			continue
		}
		obj := item.ToObject(s.vm)
		b := Button{
			Text:  jsString(obj.Get("text")),
			Style: jsString(obj.Get("style")),
		}
		fn, ok := goja.AssertFunction(obj.Get("onPress"))
		if !ok {
			fn = nil
		}
		b.HasHandler = fn != nil
		buttons = append(buttons, b)
		handlers = append(handlers, fn)
	}
	return buttons, handlers
}

// display renders a value the way alert() and console.log() show it. Objects
// that cannot be converted to a string fall back to JSON, then "[object Object]".
func (s *Session) display(v goja.Value) string {
	if v == nil {
		return "undefined"
	}
	if out, ok := tryString(v.String); ok {
		return out
	}
	if obj, ok := v.(*goja.Object); ok {
		var b []byte
		var err error
		if _, ok := tryString(func() string { b, err = obj.MarshalJSON(); return "" }); ok && err == nil {
			return string(b)
		}
	}
	return "[object Object]"
}

// tryString runs a conversion that may throw inside the runtime. Script
// exceptions are swallowed; interrupts keep unwinding.
func tryString(fn func() string) (out string, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			switch r.(type) {
			case *goja.Exception, *goja.Object:
				ok = false
			default:
				panic(r)
			}
		}
	}()
	return fn(), true
}

// jsString reads an optional string property; undefined and null are empty.
func jsString(v goja.Value) string {
	if v == nil || goja.IsUndefined(v) || goja.IsNull(v) {
		return ""
	}
	return v.String()
}
