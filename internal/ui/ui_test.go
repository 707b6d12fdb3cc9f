package ui

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
)

func TestStatusLinesWithoutColor(t *testing.T) {
	prev := color.NoColor
	t.Cleanup(func() { color.NoColor = prev })
	SetColor(false)

	var buf bytes.Buffer
	OK(&buf, "added")
	Fail(&buf, "todo file not found")
	Label(&buf, "Title", "Buy milk")

	want := "✔ added\n✖ todo file not found\nTitle: Buy milk\n"
	if got := buf.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestSetTheme(t *testing.T) {
	prev := color.NoColor
	t.Cleanup(func() {
		color.NoColor = prev
		SetTheme("classic")
	})

	SetTheme("MONO")
	if Current().Name != "mono" {
		t.Errorf("theme = %q, want mono", Current().Name)
	}
	if !color.NoColor {
		t.Error("mono theme should disable color")
	}

	SetTheme("does-not-exist")
	if Current().Name != "classic" {
		t.Errorf("theme = %q, want classic fallback", Current().Name)
	}
}
