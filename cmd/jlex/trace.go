// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"fmt"

	"github.com/alecthomas/kingpin/v2"
	"github.com/creachadair/jlex"
	"github.com/creachadair/jlex/diag"
	"github.com/fatih/color"
	"github.com/go-kit/log/level"
)

// traceCommand prints a trace of the lexical structure of each input.
type traceCommand struct {
	*tool
	files []string
}

func addTraceCommand(app *kingpin.Application, t *tool) {
	cmd := &traceCommand{tool: t}
	c := app.Command("trace", "Print the structure of JSON inputs.")
	c.Arg("files", "Input files (default stdin).").StringsVar(&cmd.files)
	c.Action(cmd.run)
}

func (cmd *traceCommand) run(*kingpin.ParseContext) error {
	bold := color.New(color.Bold)
	failed := cmd.open(cmd.files, func(in input) error {
		if len(cmd.files) > 1 {
			bold.Fprintf(cmd.stdout, "%s:\n", in.name)
		}
		p := diag.NewPrinter(cmd.stdout)
		lx := jlex.NewLexer(jlex.NewCursor(in), p)
		lx.LimitDepth(cmd.maxDepth)
		err := lx.Parse()
		if err != nil {
			fmt.Fprintf(cmd.stdout, "error: %v\n", err)
			level.Error(cmd.logger).Log("msg", "invalid input", "input", in.name, "err", err)
		} else if err = p.Err(); err != nil {
			level.Error(cmd.logger).Log("msg", "writing trace", "err", err)
		}
		return err
	})
	if failed != 0 {
		return fmt.Errorf("%d %s failed", failed, plural(failed, "input", "inputs"))
	}
	return nil
}
