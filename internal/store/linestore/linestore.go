package linestore

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"iter"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/idilsaglam/todo/internal/model"
)

// Line-oriented storage. One entry per line, 1-based line number is the id.
// No locking; fine for a local single-user CLI.

const tempSuffix = ".tmp"

// createTemp is swapped out in tests to simulate a failing disk.
var createTemp = os.CreateTemp

// ErrFileNotFound is returned when the todo file does not exist.
var ErrFileNotFound = errors.New("todo file not found")

// Store reads and rewrites a single todo file.
type Store struct {
	path string
	log  *log.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for debug tracing.
func WithLogger(l *log.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

// New returns a Store bound to path. The file is not touched.
func New(path string, opts ...Option) *Store {
	s := &Store{
		path: path,
		log:  log.New(io.Discard),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Path returns the file the store operates on.
func (s *Store) Path() string { return s.path }

// Append writes e as a new last line. The file must already exist.
func (s *Store) Append(e model.Entry) error {
	// no O_CREATE: a missing file is an error, not something to create
	f, err := os.OpenFile(s.path, os.O_WRONLY|os.O_APPEND, 0)
	if err != nil {
		return s.openErr(err)
	}
	defer f.Close()

	if _, err := io.WriteString(f, e.Format()+"\n"); err != nil {
		return fmt.Errorf("append: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close: %w", err)
	}
	s.log.Debug("appended entry", "path", s.path, "title", e.Title, "due", e.DueString())
	return nil
}

// ReadAll returns a lazy single-pass sequence of the raw lines in file order.
// Existence is checked up front; the file is opened when the sequence is
// ranged over and closed however the loop ends.
func (s *Store) ReadAll() (iter.Seq2[string, error], error) {
	if err := s.checkExists(); err != nil {
		return nil, err
	}
	return func(yield func(string, error) bool) {
		f, err := os.Open(s.path)
		if err != nil {
			yield("", s.openErr(err))
			return
		}
		defer f.Close()

		if err := eachLine(f, func(line string) bool {
			return yield(line, nil)
		}); err != nil {
			yield("", fmt.Errorf("read: %w", err))
		}
	}, nil
}

// ReadOne returns the line at 1-based position n. The scan stops as soon as
// the line is reached. ok is false when n is out of range.
func (s *Store) ReadOne(n int) (line string, ok bool, err error) {
	f, err := os.Open(s.path)
	if err != nil {
		return "", false, s.openErr(err)
	}
	defer f.Close()

	if n < 1 {
		return "", false, nil
	}
	pos := 0
	err = eachLine(f, func(l string) bool {
		pos++
		if pos == n {
			line, ok = l, true
			return false
		}
		return true
	})
	if err != nil {
		return "", false, fmt.Errorf("read: %w", err)
	}
	s.log.Debug("read line", "path", s.path, "line", n, "found", ok)
	return line, ok, nil
}

// Count returns the number of lines. An unterminated last line counts.
func (s *Store) Count() (int, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return 0, s.openErr(err)
	}
	defer f.Close()

	n := 0
	if err := eachLine(f, func(string) bool {
		n++
		return true
	}); err != nil {
		return 0, fmt.Errorf("read: %w", err)
	}
	return n, nil
}

// DeleteAll removes the file. A missing file is not an error. When recreate
// is set an empty file is created in its place.
func (s *Store) DeleteAll(recreate bool) error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove: %w", err)
	}
	s.log.Debug("removed todo file", "path", s.path, "recreate", recreate)
	if !recreate {
		return nil
	}
	f, err := os.OpenFile(s.path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("create: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close: %w", err)
	}
	return nil
}

// DeleteOne drops the line at 1-based position n by copying every other line
// to a sibling temp file and swapping it in. The original is only replaced
// once the copy is complete. An out-of-range n leaves the content unchanged.
func (s *Store) DeleteOne(n int) error {
	src, err := os.Open(s.path)
	if err != nil {
		return s.openErr(err)
	}
	defer src.Close()

	info, err := src.Stat()
	if err != nil {
		return fmt.Errorf("stat: %w", err)
	}

	s.removeStaleTemps()

	dir, base := filepath.Split(s.path)
	if dir == "" {
		dir = "."
	}
	tmp, err := createTemp(dir, base+".*"+tempSuffix)
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	swapped := false
	defer func() {
		if !swapped {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	kept, err := copyExcept(src, tmp, n)
	if err != nil {
		return err
	}
	if err := tmp.Chmod(info.Mode().Perm()); err != nil {
		return fmt.Errorf("chmod temp: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("sync temp: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp: %w", err)
	}
	src.Close()

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace: %w", err)
	}
	swapped = true
	s.log.Debug("deleted line", "path", s.path, "line", n, "kept", kept)
	return nil
}

// copyExcept copies every line of r to w except line n, terminating each
// with '\n'. It returns the number of lines written.
func copyExcept(r io.Reader, w io.Writer, n int) (int, error) {
	bw := bufio.NewWriter(w)
	pos, kept := 0, 0
	var werr error
	rerr := eachLine(r, func(line string) bool {
		pos++
		if pos == n {
			return true
		}
		if _, werr = bw.WriteString(line + "\n"); werr != nil {
			return false
		}
		kept++
		return true
	})
	if werr != nil {
		return kept, fmt.Errorf("write temp: %w", werr)
	}
	if rerr != nil {
		return kept, fmt.Errorf("read: %w", rerr)
	}
	if err := bw.Flush(); err != nil {
		return kept, fmt.Errorf("write temp: %w", err)
	}
	return kept, nil
}

// removeStaleTemps clears temp files left behind by interrupted rewrites:
// the legacy "<name>.tmp" and the "<name>.<digits>.tmp" names DeleteOne
// creates. Names are compared literally, never as glob patterns.
func (s *Store) removeStaleTemps() {
	dir, base := filepath.Split(s.path)
	if dir == "" {
		dir = "."
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	for _, e := range entries {
		if e.IsDir() || !isStaleTemp(base, e.Name()) {
			continue
		}
		p := filepath.Join(dir, e.Name())
		if err := os.Remove(p); err == nil {
			s.log.Debug("removed stale temp file", "path", p)
		}
	}
}

func isStaleTemp(base, name string) bool {
	if name == base+tempSuffix {
		return true
	}
	// os.CreateTemp fills the "*" with decimal digits
	mid, ok := strings.CutPrefix(name, base+".")
	if !ok {
		return false
	}
	mid, ok = strings.CutSuffix(mid, tempSuffix)
	if !ok || mid == "" {
		return false
	}
	for _, r := range mid {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func (s *Store) checkExists() error {
	if _, err := os.Stat(s.path); err != nil {
		return s.openErr(err)
	}
	return nil
}

func (s *Store) openErr(err error) error {
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrFileNotFound, s.path)
	}
	return fmt.Errorf("open: %w", err)
}

// eachLine calls fn for every line of r with the trailing '\n' removed,
// until fn returns false. Lines have no length limit.
func eachLine(r io.Reader, fn func(string) bool) error {
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			if !fn(strings.TrimSuffix(line, "\n")) {
				return nil
			}
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
	}
}
