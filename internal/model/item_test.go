package model

import (
	"errors"
	"testing"
	"time"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name  string
		entry Entry
		want  string
	}{
		{"title only", Entry{Title: "Test"}, "title=Test,due_date="},
		{"with due", Entry{Title: "Buy milk", Due: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)}, "title=Buy milk,due_date=2024-01-15"},
		{"delimiters kept verbatim", Entry{Title: "a=b,c"}, "title=a=b,c,due_date="},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.entry.Format(); got != tt.want {
				t.Errorf("Format() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParse(t *testing.T) {
	e, err := Parse("title=B,due_date=2024-02-01")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if e.Title != "B" || e.DueString() != "2024-02-01" {
		t.Errorf("got %+v", e)
	}

	e, err = Parse("title=Call mom, dad,due_date=\n")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if e.Title != "Call mom, dad" || e.HasDue() {
		t.Errorf("got %+v", e)
	}
}

func TestParseMalformed(t *testing.T) {
	for _, line := range []string{
		"",
		"hello",
		"title=no due field",
		"title=x,due_date=15/01/2024",
	} {
		if _, err := Parse(line); !errors.Is(err, ErrMalformed) {
			t.Errorf("Parse(%q) error = %v, want ErrMalformed", line, err)
		}
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("")
	if err != nil || !d.IsZero() {
		t.Errorf("ParseDate(\"\") = %v, %v", d, err)
	}
	if _, err := ParseDate("2024-13-01"); err == nil {
		t.Error("expected error for month 13")
	}
	d, err = ParseDate(" 2024-02-29 ")
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}
	if d.Format(DateLayout) != "2024-02-29" {
		t.Errorf("got %s", d)
	}
}
