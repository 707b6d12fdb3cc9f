package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/idilsaglam/todo/internal/ui"
)

// interactive walks the user through one add, read or delete action.
// Choices match on their first letter, case-insensitively.
func (a *app) interactive() error {
	choice, err := a.ask("(a)dd, (r)ead, (d)elete: ")
	if err != nil {
		return err
	}
	switch {
	case strings.HasPrefix(choice, "a"):
		return a.interactiveAdd()
	case strings.HasPrefix(choice, "r"):
		return a.interactiveRead()
	case strings.HasPrefix(choice, "d"):
		return a.interactiveDelete()
	}
	return unknownChoice(choice)
}

func (a *app) interactiveAdd() error {
	// the title is stored exactly as typed
	title, err := a.opt.Prompter.Ask("Title: ")
	if err != nil {
		return err
	}
	due, err := a.opt.Prompter.Ask("Due Date: ")
	if err != nil {
		return err
	}
	if err := a.add(title, due, true); err != nil {
		return err
	}
	ui.OK(a.opt.Out, "added")
	return nil
}

func (a *app) interactiveRead() error {
	choice, err := a.ask("(a)ll, (o)ne, (c)ount: ")
	if err != nil {
		return err
	}
	switch {
	case strings.HasPrefix(choice, "a"):
		return a.printAll()
	case strings.HasPrefix(choice, "o"):
		n, err := a.askNumber()
		if err != nil {
			return err
		}
		return a.printOne(n)
	case strings.HasPrefix(choice, "c"):
		return a.printCount()
	}
	return unknownChoice(choice)
}

func (a *app) interactiveDelete() error {
	choice, err := a.ask("(a)ll, (o)ne: ")
	if err != nil {
		return err
	}
	switch {
	case strings.HasPrefix(choice, "a"):
		return a.deleteAll(true)
	case strings.HasPrefix(choice, "o"):
		n, err := a.askNumber()
		if err != nil {
			return err
		}
		return a.deleteOne(n)
	}
	return unknownChoice(choice)
}

// ask returns the trimmed, lower-cased answer to a menu question.
func (a *app) ask(question string) (string, error) {
	s, err := a.opt.Prompter.Ask(question)
	if err != nil {
		return "", err
	}
	return strings.ToLower(strings.TrimSpace(s)), nil
}

func (a *app) askNumber() (int, error) {
	s, err := a.opt.Prompter.Ask("Number: ")
	if err != nil {
		return 0, err
	}
	s = strings.TrimSpace(s)
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: not a number: %q", ErrInvalidArgument, s)
	}
	return n, nil
}

func unknownChoice(choice string) error {
	return fmt.Errorf("%w: unknown choice %q", ErrInvalidArgument, choice)
}
