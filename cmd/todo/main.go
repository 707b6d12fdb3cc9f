package main

import (
	"os"

	"github.com/idilsaglam/todo/internal/cli"
	"github.com/idilsaglam/todo/internal/config"
	"github.com/idilsaglam/todo/internal/prompt"
	"github.com/idilsaglam/todo/internal/ui"
)

func main() {
	// Resolve config once; everything below gets it passed in.
	cfg, err := config.Load(os.Getenv)
	if err != nil {
		ui.Fail(os.Stderr, err.Error())
		os.Exit(1)
	}
	ui.SetTheme(cfg.Theme)

	code := cli.Run(os.Args[1:], cli.Options{
		Config:   cfg,
		In:       os.Stdin,
		Out:      os.Stdout,
		Err:      os.Stderr,
		Prompter: prompt.ForTerminal(os.Stdin, os.Stdout),
	})
	os.Exit(code)
}
