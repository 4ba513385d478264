package tui

import (
	"strings"
	"testing"

	"scriptpad/internal/model"
	"scriptpad/internal/script"

	xansi "github.com/charmbracelet/x/ansi"
)

func TestNormalizePane(t *testing.T) {
	got := normalizePane("abcdef\nxy", 4, 3)
	lines := strings.Split(got, "\n")
	if len(lines) != 3 {
		t.Fatalf("lines=%d, want 3", len(lines))
	}
	for i, ln := range lines {
		if w := xansi.StringWidth(ln); w != 4 {
			t.Fatalf("line %d width=%d, want 4 (%q)", i, w, ln)
		}
	}
	if lines[0] != "abc…" {
		t.Fatalf("truncated line=%q", lines[0])
	}
	if lines[1] != "xy  " {
		t.Fatalf("padded line=%q", lines[1])
	}
}

func TestFileItem_Description(t *testing.T) {
	cases := []struct {
		content string
		want    string
	}{
		{"", "0 lines"},
		{"alert(1)", "1 line"},
		{"a\nb\n", "2 lines"},
	}
	for _, tc := range cases {
		it := fileItem{file: model.File{Name: "a.js", Content: tc.content}}
		if got := it.Description(); got != tc.want {
			t.Fatalf("Description(%q)=%q, want %q", tc.content, got, tc.want)
		}
	}
}

func TestFileItems_MarksDraft(t *testing.T) {
	setGlyphs(glyphSetASCII)
	t.Cleanup(func() { setGlyphs(glyphSetUnicode) })

	items := fileItems([]model.File{{Name: "a.js"}, {Name: "b.js"}}, "b.js")
	a := items[0].(fileItem)
	b := items[1].(fileItem)
	if a.current || !b.current || b.index != 1 {
		t.Fatalf("items=%+v %+v", a, b)
	}
	if b.Title() != "b.js *" {
		t.Fatalf("title=%q", b.Title())
	}
}

func TestApplyGlyphPreference(t *testing.T) {
	t.Cleanup(func() { setGlyphs(glyphSetUnicode) })

	t.Setenv("SCRIPTPAD_TUI_GLYPHS", "")
	applyGlyphPreference("ascii")
	if glyphCursor() != ">" {
		t.Fatalf("expected ascii cursor from config")
	}

	t.Setenv("SCRIPTPAD_TUI_GLYPHS", "unicode")
	applyGlyphPreference("ascii")
	if glyphCursor() != "›" {
		t.Fatalf("env should win over config")
	}
}

func TestRenderAlertModal(t *testing.T) {
	a := script.Alert{
		ID:      1,
		Message: "hello",
		Buttons: []script.Button{{Text: "Cancel", Style: "cancel"}, {Text: "OK"}},
	}
	out := renderAlertModal(80, a, 1)
	for _, want := range []string{"Alert", "hello", "Cancel", "OK"} {
		if !strings.Contains(out, want) {
			t.Fatalf("modal missing %q:\n%s", want, out)
		}
	}
}

func TestRenderCodePreview(t *testing.T) {
	if got := renderCodePreview("  \n", 40); got != "" {
		t.Fatalf("blank preview=%q", got)
	}
	out := renderCodePreview("alert('preview')", 40)
	if !strings.Contains(xansi.Strip(out), "preview") {
		t.Fatalf("preview missing source:\n%s", out)
	}
}
