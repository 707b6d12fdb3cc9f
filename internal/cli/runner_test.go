package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/idilsaglam/todo/internal/config"
	"github.com/idilsaglam/todo/internal/prompt"
	"github.com/idilsaglam/todo/internal/tui"
	"github.com/idilsaglam/todo/internal/ui"
)

func TestMain(m *testing.M) {
	ui.SetColor(false)
	os.Exit(m.Run())
}

type result struct {
	code     int
	out, err string
}

// env is a todo file in a temp dir plus the options pointing at it.
type env struct {
	t    *testing.T
	path string
	in   string
	opt  Options
}

func newEnv(t *testing.T, content *string) *env {
	t.Helper()
	p := filepath.Join(t.TempDir(), "todos.txt")
	if content != nil {
		if err := os.WriteFile(p, []byte(*content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	cfg := config.Default()
	cfg.Filename = p
	return &env{t: t, path: p, opt: Options{Config: cfg}}
}

func file(s string) *string { return &s }

func (e *env) run(args ...string) result {
	e.t.Helper()
	var out, errb bytes.Buffer
	opt := e.opt
	opt.In = strings.NewReader(e.in)
	opt.Out = &out
	opt.Err = &errb
	code := Run(args, opt)
	return result{code: code, out: out.String(), err: errb.String()}
}

func (e *env) content() string {
	e.t.Helper()
	b, err := os.ReadFile(e.path)
	if err != nil {
		e.t.Fatalf("read todo file: %v", err)
	}
	return string(b)
}

func (e *env) exists() bool {
	_, err := os.Stat(e.path)
	return err == nil
}

func expectFail(t *testing.T, r result, msg string) {
	t.Helper()
	if r.code != 1 {
		t.Errorf("exit code = %d, want 1", r.code)
	}
	if !strings.Contains(r.err, msg) {
		t.Errorf("stderr = %q, want it to contain %q", r.err, msg)
	}
}

func TestArgumentErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		msg  string
	}{
		{"no arguments", nil, "arguments required"},
		{"unknown mode", []string{"--frobnicate"}, "invalid arguments"},
		{"add without title", []string{"--add"}, "missing required arguments"},
		{"add with empty title", []string{"-a", "--title="}, "missing required arguments"},
		{"add bad due", []string{"-a", "--title=x", "--due=15/01/2024"}, "invalid arguments"},
		{"unknown flag", []string{"-a", "--title=x", "--colour"}, "invalid arguments"},
		{"stray argument", []string{"-v", "--all", "extra"}, "invalid arguments"},
		{"view without selector", []string{"-v"}, "missing required arguments"},
		{"view bad line", []string{"-v", "--line=abc"}, "invalid arguments"},
		{"delete without selector", []string{"-d"}, "missing required arguments"},
		{"purge without all", []string{"-d", "--purge"}, "invalid arguments"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEnv(t, file("title=A,due_date=\n"))
			r := e.run(tt.args...)
			expectFail(t, r, tt.msg)
			if got := e.content(); got != "title=A,due_date=\n" {
				t.Errorf("file changed: %q", got)
			}
		})
	}
}

func TestHelp(t *testing.T) {
	for _, args := range [][]string{{"-h"}, {"--help"}, {"--add", "-h"}} {
		e := newEnv(t, nil)
		r := e.run(args...)
		if r.code != 0 {
			t.Errorf("%v: exit code = %d, want 0", args, r.code)
		}
		if !strings.Contains(r.out, "Usage:") || !strings.Contains(r.out, config.EnvFilename) {
			t.Errorf("%v: help output = %q", args, r.out)
		}
	}
}

func TestAdd(t *testing.T) {
	e := newEnv(t, file(""))
	r := e.run("-a", "--title=Buy milk", "--due=2024-01-15")
	if r.code != 0 {
		t.Fatalf("exit code = %d, stderr %q", r.code, r.err)
	}
	if want := "Title: Buy milk\nDate Due: 2024-01-15\n"; r.out != want {
		t.Errorf("stdout = %q, want %q", r.out, want)
	}

	r = e.run("--add", "--title", "Test", "-s")
	if r.code != 0 || r.out != "" {
		t.Errorf("silent add: code %d, stdout %q", r.code, r.out)
	}
	want := "title=Buy milk,due_date=2024-01-15\ntitle=Test,due_date=\n"
	if got := e.content(); got != want {
		t.Errorf("file = %q, want %q", got, want)
	}
}

func TestMissingFile(t *testing.T) {
	for _, args := range [][]string{
		{"-a", "--title=x"},
		{"-v", "--all"},
		{"-v", "--one"},
		{"-v", "--count"},
		{"-d", "--line=1"},
	} {
		e := newEnv(t, nil)
		expectFail(t, e.run(args...), "todo file not found")
		if e.exists() {
			t.Errorf("%v created the todo file", args)
		}
	}
}

func TestView(t *testing.T) {
	e := newEnv(t, file("title=A,due_date=\ntitle=B,due_date=2024-02-01\n"))

	tests := []struct {
		args []string
		want string
	}{
		{[]string{"-v", "--count"}, "2\n"},
		{[]string{"-v", "--all"}, "title=A,due_date=\ntitle=B,due_date=2024-02-01\n"},
		{[]string{"--view", "--one"}, "title=A,due_date=\n"},
		{[]string{"-v", "--one", "--line=2"}, "title=B,due_date=2024-02-01\n"},
		{[]string{"-v", "--line=2"}, "title=B,due_date=2024-02-01\n"},
		{[]string{"-v", "--one", "--line=9"}, ""},
		{[]string{"-v", "--count", "--all"}, "2\ntitle=A,due_date=\ntitle=B,due_date=2024-02-01\n"},
	}
	for _, tt := range tests {
		r := e.run(tt.args...)
		if r.code != 0 {
			t.Errorf("%v: exit code %d, stderr %q", tt.args, r.code, r.err)
			continue
		}
		if r.out != tt.want {
			t.Errorf("%v: stdout = %q, want %q", tt.args, r.out, tt.want)
		}
	}
}

func TestViewBrowse(t *testing.T) {
	e := newEnv(t, file("title=A,due_date=\n"))
	var got tui.Store
	e.opt.Browse = func(s tui.Store) error {
		got = s
		return nil
	}
	if r := e.run("-v", "--browse"); r.code != 0 {
		t.Fatalf("exit code = %d, stderr %q", r.code, r.err)
	}
	if got == nil {
		t.Fatal("browse view not started")
	}

	e.opt.Browse = func(tui.Store) error { return errors.New("terminal gone") }
	expectFail(t, e.run("-v", "--browse"), "terminal gone")
}

func TestDelete(t *testing.T) {
	t.Run("one line", func(t *testing.T) {
		e := newEnv(t, file("title=A,due_date=\ntitle=B,due_date=2024-02-01\n"))
		if r := e.run("-d", "--line=1"); r.code != 0 {
			t.Fatalf("exit code = %d, stderr %q", r.code, r.err)
		}
		if got := e.content(); got != "title=B,due_date=2024-02-01\n" {
			t.Errorf("file = %q", got)
		}
	})

	t.Run("out of range", func(t *testing.T) {
		e := newEnv(t, file("title=A,due_date=\n"))
		if r := e.run("-d", "--one", "--line=3"); r.code != 0 || r.out != "" {
			t.Fatalf("code %d, stdout %q, stderr %q", r.code, r.out, r.err)
		}
		if got := e.content(); got != "title=A,due_date=\n" {
			t.Errorf("file = %q", got)
		}
	})

	t.Run("all recreates", func(t *testing.T) {
		e := newEnv(t, file("title=A,due_date=\n"))
		if r := e.run("-d", "--all"); r.code != 0 {
			t.Fatalf("exit code = %d, stderr %q", r.code, r.err)
		}
		if got := e.content(); got != "" {
			t.Errorf("file = %q, want empty", got)
		}
	})

	t.Run("all creates a missing file", func(t *testing.T) {
		e := newEnv(t, nil)
		if r := e.run("-d", "--all"); r.code != 0 {
			t.Fatalf("exit code = %d, stderr %q", r.code, r.err)
		}
		if !e.exists() {
			t.Error("todo file not created")
		}
	})

	t.Run("purge", func(t *testing.T) {
		e := newEnv(t, file("title=A,due_date=\n"))
		if r := e.run("-d", "--all", "--purge"); r.code != 0 {
			t.Fatalf("exit code = %d, stderr %q", r.code, r.err)
		}
		if e.exists() {
			t.Error("todo file still exists")
		}
		expectFail(t, e.run("-v", "--count"), "todo file not found")
	})
}

func TestDebugFlag(t *testing.T) {
	e := newEnv(t, file(""))
	r := e.run("-a", "--title=x", "-s", "--debug")
	if r.code != 0 {
		t.Fatalf("exit code = %d, stderr %q", r.code, r.err)
	}
	if !strings.Contains(r.err, "appended entry") {
		t.Errorf("stderr = %q, want debug record", r.err)
	}

	r = e.run("-a", "--title=y", "-s")
	if r.err != "" {
		t.Errorf("stderr without --debug = %q", r.err)
	}
}

func TestInteractive(t *testing.T) {
	t.Run("add", func(t *testing.T) {
		e := newEnv(t, file(""))
		e.in = "A\nWrite docs\n2024-03-01\n"
		r := e.run("-i")
		if r.code != 0 {
			t.Fatalf("exit code = %d, stderr %q", r.code, r.err)
		}
		if got := e.content(); got != "title=Write docs,due_date=2024-03-01\n" {
			t.Errorf("file = %q", got)
		}
		if !strings.Contains(r.out, "Title: ") || !strings.Contains(r.out, "added") {
			t.Errorf("stdout = %q", r.out)
		}
	})

	t.Run("add keeps title spaces", func(t *testing.T) {
		e := newEnv(t, file(""))
		e.in = " a \n  padded  \n 2024-03-01 \n"
		if r := e.run("-i"); r.code != 0 {
			t.Fatalf("exit code = %d, stderr %q", r.code, r.err)
		}
		if got := e.content(); got != "title=  padded  ,due_date=2024-03-01\n" {
			t.Errorf("file = %q", got)
		}
	})

	t.Run("add without due date", func(t *testing.T) {
		e := newEnv(t, file(""))
		e.in = "add\nTest\n\n"
		if r := e.run("--interactive"); r.code != 0 {
			t.Fatalf("exit code = %d, stderr %q", r.code, r.err)
		}
		if got := e.content(); got != "title=Test,due_date=\n" {
			t.Errorf("file = %q", got)
		}
	})

	t.Run("read", func(t *testing.T) {
		e := newEnv(t, file("title=A,due_date=\ntitle=B,due_date=\n"))
		cases := map[string]string{
			"r\na\n":          "title=A,due_date=\ntitle=B,due_date=\n",
			"r\no\n2\n":       "title=B,due_date=\n",
			"r\nc\n":          "2\n",
			" R \n o \n 2 \n": "title=B,due_date=\n",
		}
		for in, want := range cases {
			e.in = in
			r := e.run("-i")
			if r.code != 0 {
				t.Errorf("%q: exit code = %d, stderr %q", in, r.code, r.err)
			}
			if !strings.HasSuffix(r.out, want) {
				t.Errorf("%q: stdout = %q, want suffix %q", in, r.out, want)
			}
		}
	})

	t.Run("delete", func(t *testing.T) {
		e := newEnv(t, file("title=A,due_date=\ntitle=B,due_date=\n"))
		e.in = "d\no\n2\n"
		if r := e.run("-i"); r.code != 0 {
			t.Fatalf("exit code = %d, stderr %q", r.code, r.err)
		}
		if got := e.content(); got != "title=A,due_date=\n" {
			t.Errorf("file = %q", got)
		}

		e.in = "d\na\n"
		if r := e.run("-i"); r.code != 0 {
			t.Fatalf("exit code = %d, stderr %q", r.code, r.err)
		}
		if got := e.content(); got != "" {
			t.Errorf("file = %q, want empty", got)
		}
	})

	t.Run("errors", func(t *testing.T) {
		e := newEnv(t, file(""))
		e.in = "x\n"
		expectFail(t, e.run("-i"), "unknown choice")
		e.in = "r\no\nlots\n"
		expectFail(t, e.run("-i"), "not a number")
		e.in = "a\n\n\n"
		expectFail(t, e.run("-i"), "missing required arguments")
	})

	t.Run("end of input aborts quietly", func(t *testing.T) {
		e := newEnv(t, file(""))
		e.in = "a\nhalf"
		// "half" is the title; input ends before the due date answer
		if r := e.run("-i"); r.code != 0 || r.err != "" {
			t.Errorf("code %d, stderr %q", r.code, r.err)
		}
		if got := e.content(); got != "" {
			t.Errorf("file = %q, want nothing appended", got)
		}
	})
}

type scripted []string

func (s *scripted) Ask(string) (string, error) {
	if len(*s) == 0 {
		return "", prompt.ErrAborted
	}
	a := (*s)[0]
	*s = (*s)[1:]
	return a, nil
}

func TestInteractiveCustomPrompter(t *testing.T) {
	e := newEnv(t, file("title=A,due_date=\n"))
	e.opt.Prompter = &scripted{"R", "C"}
	r := e.run("-i")
	if r.code != 0 || r.out != "1\n" {
		t.Errorf("code %d, stdout %q, stderr %q", r.code, r.out, r.err)
	}
}
