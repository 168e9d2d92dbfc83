// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Program jlex validates JSON text and prints traces of its structure.
//
// Usage:
//
//	jlex check [--stream] [--jwcc] [file ...]
//	jlex trace [file ...]
//
// With no files, or a file named "-", input is read from stdin.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kingpin/v2"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

func main() {
	t := &tool{
		stdin:  os.Stdin,
		stdout: os.Stdout,
		base:   log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr)),
	}
	if _, err := newApp(t).Parse(os.Args[1:]); err != nil {
		exitWithErr(err)
	}
}

// tool carries the settings and I/O shared by all commands.
type tool struct {
	stdin  io.Reader
	stdout io.Writer
	base   log.Logger // unfiltered
	logger log.Logger // filtered by level, set by setup

	debug    bool
	maxDepth int
}

func newApp(t *tool) *kingpin.Application {
	app := kingpin.New("jlex", "Validate and trace JSON text.")
	app.Flag("debug", "Enable debug logging.").BoolVar(&t.debug)
	app.Flag("max-depth", "Maximum nesting depth of arrays and objects (0 means no limit).").
		Default("0").IntVar(&t.maxDepth)
	app.PreAction(t.setup)

	addCheckCommand(app, t)
	addTraceCommand(app, t)
	return app
}

func (t *tool) setup(*kingpin.ParseContext) error {
	if t.maxDepth < 0 {
		return fmt.Errorf("invalid --max-depth %d", t.maxDepth)
	}
	allow := level.AllowInfo()
	if t.debug {
		allow = level.AllowDebug()
	}
	t.logger = level.NewFilter(log.With(t.base, "ts", log.DefaultTimestampUTC), allow)
	return nil
}

// input is a named source of JSON text.
type input struct {
	name string
	io.ReadCloser
}

// open calls f for each input named by files, or for stdin if files is empty.
// It reports the number of inputs for which f reported an error.
func (t *tool) open(files []string, f func(input) error) (failed int) {
	if len(files) == 0 {
		files = []string{"-"}
	}
	for _, name := range files {
		in := input{name: name}
		if name == "-" || name == "" { // kingpin reports "-" as an empty argument
			in.name = "<stdin>"
			in.ReadCloser = io.NopCloser(t.stdin)
		} else if fd, err := os.Open(name); err != nil {
			level.Error(t.logger).Log("msg", "failed to open input", "err", err)
			failed++
			continue
		} else {
			in.ReadCloser = fd
		}
		err := f(in)
		in.Close()
		if err != nil {
			failed++
		}
	}
	return failed
}

// countReader counts the bytes read through it.
type countReader struct {
	r io.Reader
	n int64
}

func (c *countReader) Read(data []byte) (int, error) {
	nr, err := c.r.Read(data)
	c.n += int64(nr)
	return nr, err
}

func exitWithErr(err error) {
	fmt.Fprintf(os.Stderr, "jlex: %v\n", err)
	os.Exit(1)
}
