package main

import (
	"io"
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/RowanDark/cipherkit/internal/config"
)

// painter highlights the interesting parts of command output.
type painter struct {
	best  *color.Color
	warn  *color.Color
	label *color.Color
}

func newPainter(mode string, out io.Writer) painter {
	p := painter{
		best:  color.New(color.FgGreen, color.Bold),
		warn:  color.New(color.FgYellow),
		label: color.New(color.FgCyan),
	}
	enabled := colorEnabled(mode, out)
	for _, c := range []*color.Color{p.best, p.warn, p.label} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func colorEnabled(mode string, out io.Writer) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}
	f, ok := out.(*os.File)
	return ok && isTerminal(f)
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
