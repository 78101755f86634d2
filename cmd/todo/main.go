package main

import (
	"fmt"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/idilsaglam/todolist/internal/cli"
	"github.com/idilsaglam/todolist/internal/config"
	"github.com/idilsaglam/todolist/internal/logging"
	"github.com/idilsaglam/todolist/internal/store/jsonstore"
	"github.com/idilsaglam/todolist/internal/ui"
)

func main() {
	// Root flags (apply to every subcommand)
	fs := flag.NewFlagSet("todo", flag.ContinueOnError)
	fs.SetInterspersed(false)
	file := fs.StringP("file", "f", "", "data file (default todos.json)")
	configPath := fs.StringP("config", "c", "", "extra TOML config file")
	theme := fs.String("theme", "", "classic | neon | mono")
	logLevel := fs.String("log-level", "", "debug | info | warn | error")
	group := fs.BoolP("group", "g", false, "group output by pending/done")
	color := fs.String("color", "auto", "auto | always | never")
	noColor := fs.Bool("no-color", false, "disable colors (same as --color=never)")
	if err := fs.Parse(os.Args[1:]); err != nil {
		if err == flag.ErrHelp {
			cli.PrintHelp()
			os.Exit(0)
		}
		ui.Fail(err.Error())
		os.Exit(2)
	}

	// Hand the remaining args to the CLI runner.
	args := fs.Args()
	if len(args) == 0 {
		cli.PrintHelp()
		os.Exit(2)
	}

	wd, err := os.Getwd()
	if err != nil {
		ui.Fail("getwd: " + err.Error())
		os.Exit(1)
	}
	cfg, sources, err := config.Load(wd, *configPath, os.Getenv)
	if err != nil {
		ui.Fail("config: " + err.Error())
		os.Exit(1)
	}
	if *file != "" {
		cfg.File = config.ResolveFile(wd, *file)
	}
	if *theme != "" {
		cfg.Theme = *theme
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if fs.Changed("group") {
		cfg.Group = *group
	}

	logger := logging.Setup(cfg.LogLevel)
	logger.Debug("config loaded",
		"file", cfg.File, "theme", cfg.Theme,
		"user", sources.User, "project", sources.Project, "explicit", sources.Explicit)

	ui.SetTheme(cfg.Theme)
	forceColor, disableColor, err := ui.ParseColorMode(*color)
	if err != nil {
		ui.Fail(err.Error())
		os.Exit(2)
	}
	if *noColor || (os.Getenv("NO_COLOR") != "" && !fs.Changed("color")) {
		forceColor, disableColor = false, true
	}
	ui.SetColorForcing(forceColor, disableColor)

	code := cli.Run(args, cli.Options{
		Group:    cfg.Group,
		ListName: cfg.ListName,
		Store:    jsonstore.New(cfg.File, logger),
		Logger:   logger,
	})
	if code != 0 {
		fmt.Fprintln(os.Stderr)
	}
	os.Exit(code)
}
