// Package prompt asks the user single-line questions for interactive mode.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// ErrAborted is returned when input ends or the user cancels a question.
var ErrAborted = errors.New("prompt aborted")

// Prompter asks one question and returns the answer as typed, without the
// line terminator. Callers trim where whitespace is not significant.
type Prompter interface {
	Ask(question string) (string, error)
}

// Line reads answers line by line from a reader. Used for pipes and tests.
type Line struct {
	r *bufio.Reader
	w io.Writer
}

// NewLine returns a prompter that writes questions to w and reads from r.
func NewLine(r io.Reader, w io.Writer) *Line {
	return &Line{r: bufio.NewReader(r), w: w}
}

func (l *Line) Ask(question string) (string, error) {
	if _, err := io.WriteString(l.w, question); err != nil {
		return "", err
	}
	s, err := l.r.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			if s == "" {
				return "", ErrAborted
			}
		} else {
			return "", fmt.Errorf("read answer: %w", err)
		}
	}
	return strings.TrimRight(s, "\r\n"), nil
}

// ForTerminal picks the TUI prompter when both ends are terminals and the
// line prompter otherwise.
func ForTerminal(in *os.File, out *os.File) Prompter {
	if term.IsTerminal(int(in.Fd())) && term.IsTerminal(int(out.Fd())) {
		return NewTUI(in, out)
	}
	return NewLine(in, out)
}
