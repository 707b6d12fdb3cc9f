package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the on-disk due date format (yyyy-mm-dd).
const DateLayout = "2006-01-02"

const (
	titleKey = "title="
	dueKey   = ",due_date="
)

// ErrMalformed is returned by Parse for lines that are not title/due_date records.
var ErrMalformed = errors.New("malformed todo line")

// Entry is the domain model for a todo entry.
// A zero Due means the entry has no due date.
type Entry struct {
	Title string
	Due   time.Time
}

// HasDue reports whether the entry carries a due date.
func (e Entry) HasDue() bool { return !e.Due.IsZero() }

// DueString returns the due date as yyyy-mm-dd, or "" when absent.
func (e Entry) DueString() string {
	if !e.HasDue() {
		return ""
	}
	return e.Due.Format(DateLayout)
}

// Format renders the entry as a single line, without the terminator.
// Titles are written verbatim: commas, '=' and newlines are not escaped.
func (e Entry) Format() string {
	return titleKey + e.Title + dueKey + e.DueString()
}

// Parse reads a line produced by Format. The title ends at the last
// ",due_date=" so titles holding plain commas still round-trip.
func Parse(line string) (Entry, error) {
	line = strings.TrimRight(line, "\r\n")
	if !strings.HasPrefix(line, titleKey) {
		return Entry{}, fmt.Errorf("%w: missing %q", ErrMalformed, titleKey)
	}
	rest := line[len(titleKey):]
	i := strings.LastIndex(rest, dueKey)
	if i < 0 {
		return Entry{}, fmt.Errorf("%w: missing %q", ErrMalformed, strings.TrimPrefix(dueKey, ","))
	}
	e := Entry{Title: rest[:i]}
	raw := rest[i+len(dueKey):]
	if raw == "" {
		return e, nil
	}
	due, err := ParseDate(raw)
	if err != nil {
		return Entry{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	e.Due = due
	return e, nil
}

// ParseDate parses a yyyy-mm-dd due date. Empty input yields the zero time.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid due date %q, want yyyy-mm-dd", s)
	}
	return t, nil
}
