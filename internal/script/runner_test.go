package script

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestRun_AlertQueuesBlockingNotification(t *testing.T) {
	s, err := Runner{}.Run(context.Background(), "a.js", `alert("Hello, World!");`)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	a, ok := s.Pending()
	if !ok {
		t.Fatalf("expected a pending alert")
	}
	if a.Message != "Hello, World!" || len(a.Buttons) != 1 || a.Buttons[0].Text != "OK" {
		t.Fatalf("unexpected alert %#v", a)
	}
	if err := s.Press(context.Background(), a.ID, 0); err != nil {
		t.Fatalf("Press: %v", err)
	}
	if _, ok := s.Pending(); ok {
		t.Fatalf("expected no pending alerts after press")
	}
}

func TestRun_ReactNativeAlertButtonsRunHandlers(t *testing.T) {
	src := `const { Alert } = this.ReactNative;
Alert.alert(
"Alert Title",
"My Alert Msg",
[
  { text: "Cancel", onPress: () => alert("Cancel Pressed"), style: "cancel" },
  { text: "OK", onPress: () => alert("OK Pressed") }
]);`
	ctx := context.Background()
	s, err := Runner{}.Run(ctx, "b.js", src)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	a, ok := s.Pending()
	if !ok {
		t.Fatalf("expected pending alert")
	}
	if a.Title != "Alert Title" || a.Message != "My Alert Msg" {
		t.Fatalf("unexpected alert %#v", a)
	}
	want := []Button{
		{Text: "Cancel", Style: "cancel", HasHandler: true},
		{Text: "OK", HasHandler: true},
	}
	if !reflect.DeepEqual(a.Buttons, want) {
		t.Fatalf("buttons mismatch:\nwant: %#v\ngot:  %#v", want, a.Buttons)
	}

	if err := s.Press(ctx, a.ID, a.ButtonIndex("ok")); err != nil {
		t.Fatalf("Press: %v", err)
	}
	next, ok := s.Pending()
	if !ok || next.Message != "OK Pressed" {
		t.Fatalf("expected follow-up alert, got %#v ok=%v", next, ok)
	}
}

func TestSession_Dismiss_PressesCancel(t *testing.T) {
	ctx := context.Background()
	s, err := Runner{}.Run(ctx, "c.js", `RN.Alert.alert("t", "m", [
  { text: "OK", onPress: () => console.log("ok") },
  { text: "No", style: "cancel", onPress: () => console.log("cancelled") }
]);`)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	a, _ := s.Pending()
	if err := s.Dismiss(ctx, a.ID); err != nil {
		t.Fatalf("Dismiss: %v", err)
	}
	if got := s.Output(); !reflect.DeepEqual(got, []string{"cancelled"}) {
		t.Fatalf("expected cancel handler output, got %v", got)
	}
	if err := s.Dismiss(ctx, a.ID); !errors.Is(err, ErrUnknownAlert) {
		t.Fatalf("expected unknown alert, got %v", err)
	}
}

func TestRun_ConsoleOutput(t *testing.T) {
	s, err := Runner{}.Run(context.Background(), "log.js", `console.log("a", 1, true, undefined); console.error("bad")`)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	want := []string{"a 1 true undefined", "error: bad"}
	if got := s.Output(); !reflect.DeepEqual(got, want) {
		t.Fatalf("output mismatch:\nwant: %#v\ngot:  %#v", want, got)
	}
}

func TestRun_Errors(t *testing.T) {
	cases := []struct {
		name     string
		src      string
		kind     ErrorKind
		contains string
	}{
		{"thrown", `throw new Error("boom")`, ErrorThrown, "boom"},
		{"reference", `notDefined()`, ErrorThrown, "notDefined"},
		{"syntax", `function (`, ErrorSyntax, "SyntaxError"},
		{"buttons not array", `RN.Alert.alert("t", "m", 5)`, ErrorThrown, "TypeError"},
		{"buttons string", `RN.Alert.alert("t", "m", "OK")`, ErrorThrown, "TypeError"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s, err := Runner{}.Run(context.Background(), "e.js", tc.src)
			if s == nil {
				t.Fatalf("expected a session even on failure")
			}
			var se *ScriptError
			if !errors.As(err, &se) {
				t.Fatalf("expected *ScriptError, got %T %v", err, err)
			}
			if se.Kind != tc.kind {
				t.Fatalf("kind=%s want %s (%v)", se.Kind, tc.kind, se)
			}
			if !strings.Contains(se.Message, tc.contains) {
				t.Fatalf("message %q does not contain %q", se.Message, tc.contains)
			}
		})
	}
}

func TestRun_OutputBeforeFailureIsKept(t *testing.T) {
	s, err := Runner{}.Run(context.Background(), "x.js", `console.log("before"); throw "nope"`)
	if err == nil {
		t.Fatalf("expected error")
	}
	if got := s.Output(); len(got) != 1 || got[0] != "before" {
		t.Fatalf("expected output before failure, got %v", got)
	}
	if !strings.Contains(err.Error(), "nope") {
		t.Fatalf("expected thrown value in message, got %v", err)
	}
}

func TestRun_TimeoutInterruptsInfiniteLoop(t *testing.T) {
	r := Runner{Timeout: 50 * time.Millisecond}
	start := time.Now()
	_, err := r.Run(context.Background(), "loop.js", `for (;;) {}`)
	var se *ScriptError
	if !errors.As(err, &se) || se.Kind != ErrorInterrupted {
		t.Fatalf("expected interrupted error, got %v", err)
	}
	if time.Since(start) > 5*time.Second {
		t.Fatalf("timeout did not stop the script promptly")
	}
}

func TestRun_HandlerTimeout(t *testing.T) {
	ctx := context.Background()
	r := Runner{Timeout: 50 * time.Millisecond}
	s, err := r.Run(ctx, "h.js", `RN.Alert.alert("t", "m", [{ text: "spin", onPress: () => { for (;;) {} } }])`)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	a, _ := s.Pending()
	err = s.Press(ctx, a.ID, 0)
	var se *ScriptError
	if !errors.As(err, &se) || se.Kind != ErrorInterrupted {
		t.Fatalf("expected interrupted handler, got %v", err)
	}
}

func TestRun_CapabilityBoundary(t *testing.T) {
	src := `console.log(typeof require, typeof process, typeof fetch, typeof setTimeout, typeof alert, typeof RN.Alert.alert)`
	s, err := Runner{}.Run(context.Background(), "caps.js", src)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	want := "undefined undefined undefined undefined function function"
	if got := s.Output(); len(got) != 1 || got[0] != want {
		t.Fatalf("unexpected globals: %v", got)
	}
}

func TestRun_FreshRuntimePerRun(t *testing.T) {
	ctx := context.Background()
	if _, err := (Runner{}).Run(ctx, "a.js", `var leaked = 1`); err != nil {
		t.Fatalf("Run: %v", err)
	}
	s, err := Runner{}.Run(ctx, "b.js", `console.log(typeof leaked)`)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := s.Output(); got[0] != "undefined" {
		t.Fatalf("state leaked between runs: %v", got)
	}
}

func TestRun_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s, err := Runner{}.Run(ctx, "a.js", `1`)
	if s != nil || !errors.Is(err, context.Canceled) {
		t.Fatalf("expected canceled, got s=%v err=%v", s, err)
	}
}

func TestRun_ButtonsLengthIsBounded(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want int
	}{
		{"negative", `RN.Alert.alert("t", "m", {length: -1})`, 1},
		{"huge", `RN.Alert.alert("t", "m", {length: 1e15})`, 1},
		{"infinite", `RN.Alert.alert("t", "m", {length: Infinity, 0: {text: "A"}, 1: {text: "B"}})`, 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s, err := Runner{}.Run(context.Background(), "b.js", tc.src)
			if err != nil {
				t.Fatalf("Run: %v", err)
			}
			a, ok := s.Pending()
			if !ok {
				t.Fatalf("expected a pending alert")
			}
			if len(a.Buttons) != tc.want {
				t.Fatalf("buttons=%v, want %d", a.Buttons, tc.want)
			}
		})
	}
}

func TestRun_DisplayUnconvertibleObject(t *testing.T) {
	s, err := Runner{}.Run(context.Background(), "d.js", `console.log(Object.create(null)); alert(Object.create(null))`)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := s.Output(); len(got) != 1 || got[0] != "{}" {
		t.Fatalf("output=%v", got)
	}
	a, _ := s.Pending()
	if a.Message != "{}" {
		t.Fatalf("alert message=%q", a.Message)
	}
}

func TestRun_InterruptClearedBeforeNextPress(t *testing.T) {
	ctx := context.Background()
	r := Runner{Timeout: 50 * time.Millisecond}
	src := `
RN.Alert.alert("one", "m", [{ text: "spin", onPress: () => { for (;;) {} } }]);
RN.Alert.alert("two", "m", [{ text: "ok", onPress: () => console.log("pressed") }]);
`
	s, err := r.Run(ctx, "i.js", src)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	first, _ := s.Pending()
	if err := s.Press(ctx, first.ID, 0); err == nil {
		t.Fatalf("expected the spinning handler to be interrupted")
	}
	second, ok := s.Pending()
	if !ok || second.Title != "two" {
		t.Fatalf("expected second alert, got %+v ok=%v", second, ok)
	}
	if err := s.Press(ctx, second.ID, 0); err != nil {
		t.Fatalf("second Press: %v", err)
	}
	if got := s.Output(); len(got) != 1 || got[0] != "pressed" {
		t.Fatalf("output=%v", got)
	}
}
