package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/idilsaglam/todo/internal/config"
	"github.com/idilsaglam/todo/internal/logging"
	"github.com/idilsaglam/todo/internal/prompt"
	"github.com/idilsaglam/todo/internal/store/linestore"
	"github.com/idilsaglam/todo/internal/tui"
	"github.com/idilsaglam/todo/internal/ui"
)

var (
	// ErrNoArguments is returned when todo is run without a mode.
	ErrNoArguments = errors.New("arguments required")
	// ErrInvalidArgument covers unknown modes and flags, bad numbers and
	// malformed due dates.
	ErrInvalidArgument = errors.New("invalid arguments")
	// ErrMissingArguments is returned when a mode lacks a required flag,
	// such as add without --title.
	ErrMissingArguments = errors.New("missing required arguments")
)

// Options carry the resolved config and the process streams into Run.
type Options struct {
	Config config.Config
	In     io.Reader
	Out    io.Writer
	Err    io.Writer

	// Prompter answers interactive mode questions. Defaults to a line
	// prompter over In/Out.
	Prompter prompt.Prompter
	// Browse runs the browse view. Defaults to tui.Run over In/Out.
	Browse func(tui.Store) error
}

func (o *Options) setDefaults() {
	if o.Config.Filename == "" {
		o.Config = config.Default()
	}
	if o.In == nil {
		o.In = os.Stdin
	}
	if o.Out == nil {
		o.Out = os.Stdout
	}
	if o.Err == nil {
		o.Err = os.Stderr
	}
	if o.Prompter == nil {
		o.Prompter = prompt.NewLine(o.In, o.Out)
	}
	if o.Browse == nil {
		in, out := o.In, o.Out
		o.Browse = func(s tui.Store) error { return tui.Run(s, in, out) }
	}
}

// app is what every mode runs against once flags are parsed.
type app struct {
	opt   Options
	log   *log.Logger
	store *linestore.Store
}

func newApp(opt Options, debug bool) *app {
	lo := logging.DefaultOptions()
	lo.Debug = debug || opt.Config.Debug
	l := logging.New(opt.Err, lo)
	l.Debug("resolved config", "filename", opt.Config.Filename, "theme", opt.Config.Theme)
	return &app{
		opt:   opt,
		log:   l,
		store: linestore.New(opt.Config.Filename, linestore.WithLogger(l)),
	}
}

// ---------------------------------------------------
// CLI router
// ---------------------------------------------------

// Run dispatches on the first argument and returns the process exit code
// (0 ok, 1 error). It is the only place exit codes are decided.
func Run(args []string, opt Options) int {
	opt.setDefaults()

	if len(args) == 0 {
		return report(opt.Err, ErrNoArguments)
	}
	mode, rest := args[0], args[1:]

	switch mode {
	case "-h", "--help":
		PrintHelp(opt.Out)
		return 0
	case "-i", "--interactive":
		return report(opt.Err, execute(newInteractiveCmd(opt), rest, opt))
	case "-a", "--add":
		return report(opt.Err, execute(newAddCmd(opt), rest, opt))
	case "-v", "--view":
		return report(opt.Err, execute(newViewCmd(opt), rest, opt))
	case "-d", "--delete":
		return report(opt.Err, execute(newDeleteCmd(opt), rest, opt))
	}
	return report(opt.Err, ErrInvalidArgument)
}

// report prints err for the user and maps it to an exit code.
func report(w io.Writer, err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, prompt.ErrAborted):
		// ctrl+d / esc at a prompt is a user abort, not a failure
		return 0
	case errors.Is(err, ErrNoArguments),
		errors.Is(err, ErrInvalidArgument),
		errors.Is(err, ErrMissingArguments):
		ui.Fail(w, err.Error()+". Use --help")
	default:
		ui.Fail(w, err.Error())
	}
	return 1
}

// PrintHelp writes the usage text for every mode and flag to w.
func PrintHelp(w io.Writer) {
	fmt.Fprintf(w, `todo - a plain-text todo list

Usage:
  todo <mode> [flags]

Modes:
  -i, --interactive          open in interactive mode
  -a, --add                  add a todo
        --title="<title>"    the title (required)
        --due="<yyyy-mm-dd>" the due date
        -s, --silent         don't show output on success
  -v, --view                 view todos
        --all                show all todos
        --one                show one todo, use --line to choose which
        --line=<int>         select a specific line (default 1)
        --count              show total count of todos
        --browse             browse and delete todos in a full-screen list
  -d, --delete               remove todos
        --all                remove all, leaving an empty file
        --purge              with --all, remove the file itself
        --one                remove one todo, use --line to choose which
        --line=<int>         remove a specific line
  -h, --help                 show this message

Every mode accepts --debug to log what the store does.

Configure:
  %s   where the todo file will be (default %s)
  %s     path to a .toml or .yaml config file (filename, debug, theme)
  %s      true to enable debug logging
  %s      classic or mono

The todo file must exist before adding; "todo --delete --all" creates an empty one.
`, config.EnvFilename, config.DefaultFilename, config.EnvConfig, config.EnvDebug, config.EnvTheme)
}
