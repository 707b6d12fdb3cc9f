package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/todo/internal/model"
	"github.com/idilsaglam/todo/internal/ui"
)

// execute parses args for one mode. Usage and error printing are left to
// Run so every mode reports the same way.
func execute(cmd *cobra.Command, args []string, opt Options) error {
	if args == nil {
		args = []string{}
	}
	cmd.SetArgs(args)
	cmd.SetIn(opt.In)
	cmd.SetOut(opt.Out)
	cmd.SetErr(opt.Err)
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	cmd.Args = noPositional
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	})
	cmd.SetHelpFunc(func(c *cobra.Command, _ []string) { PrintHelp(c.OutOrStdout()) })
	cmd.Flags().Bool("debug", false, "log store operations to stderr")
	return cmd.Execute()
}

func noPositional(_ *cobra.Command, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("%w: unexpected argument %q", ErrInvalidArgument, args[0])
	}
	return nil
}

func debugFlag(cmd *cobra.Command) bool {
	d, _ := cmd.Flags().GetBool("debug")
	return d
}

// -------------- modes ----------------

func newAddCmd(opt Options) *cobra.Command {
	var (
		title, due string
		silent     bool
	)
	cmd := &cobra.Command{
		Use:   "todo --add",
		Short: "Add a todo",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return newApp(opt, debugFlag(cmd)).add(title, due, silent)
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "the title")
	cmd.Flags().StringVar(&due, "due", "", "the due date (yyyy-mm-dd)")
	cmd.Flags().BoolVarP(&silent, "silent", "s", false, "don't show output on success")
	return cmd
}

func newViewCmd(opt Options) *cobra.Command {
	var (
		all, one, count, browse bool
		line                    int
	)
	cmd := &cobra.Command{
		Use:   "todo --view",
		Short: "View todos",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := newApp(opt, debugFlag(cmd))
			one = one || cmd.Flags().Changed("line")
			if !all && !one && !count && !browse {
				return fmt.Errorf("%w: one of --all, --one, --line, --count, --browse", ErrMissingArguments)
			}
			if browse {
				return a.opt.Browse(a.store)
			}
			if count {
				if err := a.printCount(); err != nil {
					return err
				}
			}
			switch {
			case all:
				return a.printAll()
			case one:
				return a.printOne(line)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "show all todos")
	cmd.Flags().BoolVar(&one, "one", false, "show one todo, use --line to choose which")
	cmd.Flags().IntVar(&line, "line", 1, "select a specific line")
	cmd.Flags().BoolVar(&count, "count", false, "show total count of todos")
	cmd.Flags().BoolVar(&browse, "browse", false, "browse todos in a full-screen list")
	return cmd
}

func newDeleteCmd(opt Options) *cobra.Command {
	var (
		all, purge, one bool
		line            int
	)
	cmd := &cobra.Command{
		Use:   "todo --delete",
		Short: "Remove todos",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := newApp(opt, debugFlag(cmd))
			one = one || cmd.Flags().Changed("line")
			if purge && !all {
				return fmt.Errorf("%w: --purge requires --all", ErrInvalidArgument)
			}
			switch {
			case all:
				return a.deleteAll(!purge)
			case one:
				return a.deleteOne(line)
			}
			return fmt.Errorf("%w: one of --all, --one, --line", ErrMissingArguments)
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "remove all todos")
	cmd.Flags().BoolVar(&purge, "purge", false, "with --all, remove the todo file instead of emptying it")
	cmd.Flags().BoolVar(&one, "one", false, "remove one todo, use --line to choose which")
	cmd.Flags().IntVar(&line, "line", 1, "remove a specific line")
	return cmd
}

func newInteractiveCmd(opt Options) *cobra.Command {
	return &cobra.Command{
		Use:   "todo --interactive",
		Short: "Interactive mode",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return newApp(opt, debugFlag(cmd)).interactive()
		},
	}
}

// -------------- store actions ----------------

func (a *app) add(title, due string, silent bool) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("%w: --title", ErrMissingArguments)
	}
	d, err := model.ParseDate(due)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	e := model.Entry{Title: title, Due: d}
	if err := a.store.Append(e); err != nil {
		return err
	}
	if !silent {
		ui.Label(a.opt.Out, "Title", e.Title)
		ui.Label(a.opt.Out, "Date Due", e.DueString())
	}
	return nil
}

func (a *app) printAll() error {
	seq, err := a.store.ReadAll()
	if err != nil {
		return err
	}
	for line, err := range seq {
		if err != nil {
			return err
		}
		fmt.Fprintln(a.opt.Out, line)
	}
	return nil
}

// printOne prints nothing for an out-of-range line.
func (a *app) printOne(n int) error {
	line, ok, err := a.store.ReadOne(n)
	if err != nil {
		return err
	}
	if ok {
		fmt.Fprintln(a.opt.Out, line)
	}
	return nil
}

func (a *app) printCount() error {
	n, err := a.store.Count()
	if err != nil {
		return err
	}
	fmt.Fprintln(a.opt.Out, n)
	return nil
}

func (a *app) deleteAll(recreate bool) error {
	if err := a.store.DeleteAll(recreate); err != nil {
		return err
	}
	if recreate {
		ui.OK(a.opt.Out, "removed all todos")
	} else {
		ui.OK(a.opt.Out, "removed "+a.store.Path())
	}
	return nil
}

// deleteOne is silent: an out-of-range line is a no-op, not a removal.
func (a *app) deleteOne(n int) error {
	return a.store.DeleteOne(n)
}
