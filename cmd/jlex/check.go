// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"fmt"
	"io"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"github.com/creachadair/jlex"
	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/go-kit/log/level"
	"github.com/tailscale/hujson"
)

// checkCommand validates each input and reports the result.
type checkCommand struct {
	*tool
	files  []string
	stream bool
	jwcc   bool
}

func addCheckCommand(app *kingpin.Application, t *tool) {
	cmd := &checkCommand{tool: t}
	c := app.Command("check", "Check that inputs are valid JSON.").Default()
	c.Flag("stream", "Accept any number of concatenated values.").BoolVar(&cmd.stream)
	c.Flag("jwcc", "Accept comments and trailing commas (JWCC).").BoolVar(&cmd.jwcc)
	c.Arg("files", "Input files (default stdin).").StringsVar(&cmd.files)
	c.Action(cmd.run)
}

var (
	okLabel   = color.New(color.FgGreen, color.Bold)
	failLabel = color.New(color.FgRed, color.Bold)
)

func (cmd *checkCommand) run(*kingpin.ParseContext) error {
	failed := cmd.open(cmd.files, func(in input) error {
		start := time.Now()
		nv, size, err := cmd.check(in)
		level.Debug(cmd.logger).Log("msg", "checked input", "input", in.name,
			"values", nv, "bytes", size, "elapsed", time.Since(start))
		if err != nil {
			failLabel.Fprint(cmd.stdout, "FAIL")
			fmt.Fprintf(cmd.stdout, " %s: %v\n", in.name, err)
			return err
		}
		okLabel.Fprint(cmd.stdout, "OK")
		if cmd.stream {
			fmt.Fprintf(cmd.stdout, "   %s: %d values (%s)\n", in.name, nv, humanize.Bytes(uint64(size)))
		} else {
			fmt.Fprintf(cmd.stdout, "   %s (%s)\n", in.name, humanize.Bytes(uint64(size)))
		}
		return nil
	})
	if failed != 0 {
		return fmt.Errorf("%d %s failed", failed, plural(failed, "input", "inputs"))
	}
	return nil
}

// check lexes the values of in, and reports the number of complete values and
// the size of the input in bytes.
func (cmd *checkCommand) check(in input) (nv int, size int64, err error) {
	cr := &countReader{r: in}
	var cur *jlex.Cursor
	if !cmd.jwcc {
		cur = jlex.NewCursor(cr)
	} else {
		data, err := io.ReadAll(cr)
		if err != nil {
			return 0, cr.n, err
		}
		std, err := hujson.Standardize(data)
		if err != nil {
			return 0, cr.n, err
		}
		cur = jlex.NewCursorBytes(std)
	}

	lx := jlex.NewLexer(cur, jlex.NopVisitor{})
	lx.LimitDepth(cmd.maxDepth)
	if !cmd.stream {
		if err := lx.Parse(); err != nil {
			return 0, cr.n, err
		}
		return 1, cr.n, nil
	}
	for {
		err := lx.ParseOne()
		if err == io.EOF {
			return nv, cr.n, nil
		} else if err != nil {
			return nv, cr.n, err
		}
		nv++
	}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
