package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "charm.land/bubbletea/v2"
	"github.com/midbel/cli"

	"github.com/midbel/gridcalc/config"
	"github.com/midbel/gridcalc/shell"
)

var errFail = errors.New("fail")

var (
	summary = "gridcalc"
	help    = "console spreadsheet with references and formulas"
)

func main() {
	var (
		set  = cli.NewFlagSet("gridcalc")
		root = prepare()
	)
	root.SetSummary(summary)
	root.SetHelp(help)
	if err := set.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			root.Help()
			os.Exit(2)
		}
	}
	err := root.Execute(set.Args())
	if err != nil {
		if s, ok := err.(cli.SuggestionError); ok && len(s.Others) > 0 {
			fmt.Fprintln(os.Stderr, "similar command(s)")
			for _, n := range s.Others {
				fmt.Fprintln(os.Stderr, "-", n)
			}
		}
		if !errors.Is(err, errFail) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func prepare() *cli.CommandTrie {
	root := cli.New()
	root.Register([]string{"shell"}, &shellCmd)
	root.Register([]string{"run"}, &runCmd)
	root.Register([]string{"show-config"}, &showConfigCmd)

	return root
}

var shellCmd = cli.Command{
	Name:    "shell",
	Alias:   []string{"repl"},
	Summary: "edit a table interactively",
	Usage:   "shell [-c config] [-plain]",
	Handler: &ShellCommand{},
}

var runCmd = cli.Command{
	Name:    "run",
	Alias:   []string{"exec"},
	Summary: "execute the commands of a script",
	Usage:   "run [-c config] [-q] [-k] <script|->",
	Handler: &RunScriptCommand{},
}

var showConfigCmd = cli.Command{
	Name:    "show-config",
	Alias:   []string{"config"},
	Summary: "print the effective configuration",
	Usage:   "show-config [-c config]",
	Handler: &ShowConfigCommand{},
}

type ShellCommand struct {
	Config string
	Plain  bool
}

func (c ShellCommand) Run(args []string) error {
	set := cli.NewFlagSet("shell")
	set.StringVar(&c.Config, "c", "", "configuration file")
	set.BoolVar(&c.Plain, "plain", false, "read commands line by line")
	if err := set.Parse(args); err != nil {
		return err
	}
	cfg, err := config.Load(c.Config)
	if err != nil {
		return err
	}
	var w io.Writer
	if c.Plain {
		w = os.Stderr
	}
	logger, closer := cfg.Logger(w)
	defer closer.Close()

	session, err := shell.New(cfg, logger)
	if err != nil {
		return err
	}
	if c.Plain {
		return shell.Run(session, os.Stdin, os.Stdout, shell.RunOptions{
			Interactive: true,
		})
	}
	return c.runProgram(session, logger)
}

func (c ShellCommand) runProgram(session *shell.Session, logger *slog.Logger) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	prog := tea.NewProgram(shell.NewModel(session))
	if c.Config != "" {
		go func() {
			err := config.Watch(ctx, c.Config, func(cfg config.Config, err error) {
				prog.Send(shell.ConfigMsg{
					Config: cfg,
					Err:    err,
				})
			})
			if err != nil && !errors.Is(err, context.Canceled) {
				logger.Warn("configuration watcher stopped", "file", c.Config, "err", err)
			}
		}()
	}
	_, err := prog.Run()
	return err
}

type RunScriptCommand struct {
	Config    string
	Quiet     bool
	KeepGoing bool
}

func (c RunScriptCommand) Run(args []string) error {
	set := cli.NewFlagSet("run")
	set.StringVar(&c.Config, "c", "", "configuration file")
	set.BoolVar(&c.Quiet, "q", false, "only print failures and tables")
	set.BoolVar(&c.KeepGoing, "k", false, "keep going after a failed command")
	if err := set.Parse(args); err != nil {
		return err
	}
	if set.NArg() != 1 {
		return fmt.Errorf("missing script file")
	}
	cfg, err := config.Load(c.Config)
	if err != nil {
		return err
	}
	logger, closer := cfg.Logger(os.Stderr)
	defer closer.Close()

	session, err := shell.New(cfg, logger)
	if err != nil {
		return err
	}
	session.SetColor(false)

	var r io.Reader = os.Stdin
	if file := set.Arg(0); file != "-" {
		f, err := os.Open(file)
		if err != nil {
			return err
		}
		defer f.Close()
		r = f
	}
	return shell.Run(session, r, os.Stdout, shell.RunOptions{
		Quiet:     c.Quiet,
		KeepGoing: c.KeepGoing,
	})
}

type ShowConfigCommand struct {
	Config string
}

func (c ShowConfigCommand) Run(args []string) error {
	set := cli.NewFlagSet("show-config")
	set.StringVar(&c.Config, "c", "", "configuration file")
	if err := set.Parse(args); err != nil {
		return err
	}
	cfg, err := config.Load(c.Config)
	if err != nil {
		return err
	}
	if cfg.File != "" {
		fmt.Fprintf(os.Stdout, "# %s\n", cfg.File)
	}
	for _, p := range cfg.Properties() {
		fmt.Fprintln(os.Stdout, p)
	}
	return nil
}
