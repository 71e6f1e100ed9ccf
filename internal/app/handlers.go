package app

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dshills/vicore/internal/editor"
	"github.com/dshills/vicore/internal/engine/buffer"
	"github.com/dshills/vicore/internal/operator"
)

// rangeOps are the commands that apply an operator to a line range.
var rangeOps = map[string]operator.Op{
	"d":  operator.Delete,
	"y":  operator.Yank,
	">":  operator.ShiftRight,
	"<":  operator.ShiftLeft,
	"j":  operator.Join,
	"gq": operator.Format,
}

// exCommand runs the few : commands the application provides: an optional
// line range (N, N,M, ., $, % or '<,'>) followed by d y > < j or gq, and
// the file commands w q wq and x.
func (app *Application) exCommand(ctx context.Context, ed editor.Editor, cmdline string) error {
	line := strings.TrimSpace(cmdline)
	reg, rest, hasRange, err := parseRange(ed, line)
	if err != nil {
		return err
	}
	name, arg, _ := strings.Cut(strings.TrimSpace(rest), " ")
	arg = strings.TrimSpace(arg)

	if op, ok := rangeOps[name]; ok {
		return ed.ApplyRange(ctx, op, reg)
	}
	if hasRange {
		return fmt.Errorf("%s: %w", line, ErrUnknownCommand)
	}

	switch name {
	case "w":
		return app.write(ed, arg)
	case "wq", "x":
		if err := app.write(ed, arg); err != nil {
			return err
		}
		return ErrQuit
	case "q":
		if app.session.Modified() {
			return ErrUnsavedChanges
		}
		return ErrQuit
	case "q!":
		return ErrQuit
	}
	return fmt.Errorf("%s: %w", line, ErrUnknownCommand)
}

func (app *Application) write(ed editor.Editor, path string) error {
	app.mu.Lock()
	defer app.mu.Unlock()
	if err := app.document.Write(path, ed.Lines()); err != nil {
		return err
	}
	if path == "" || path == app.document.Path {
		app.session.MarkSaved()
	}
	app.log.Info("written", "file", app.document.Path, "lines", len(ed.Lines()))
	return nil
}

// parseRange reads the line range at the start of line. Without one the
// range is the cursor line.
func parseRange(ed editor.Editor, line string) (buffer.Region, string, bool, error) {
	cur := ed.Cursor().Line
	count := len(ed.Lines())

	switch {
	case strings.HasPrefix(line, "%"):
		return buffer.LineRegion(1, count), line[1:], true, nil
	case strings.HasPrefix(line, "'<,'>"):
		reg, ok := ed.LastSelection()
		if !ok {
			return buffer.Region{}, "", false, fmt.Errorf("'<: %w", editor.ErrNoPreviousSelection)
		}
		return buffer.LineRegion(reg.FirstLine(), reg.LastLine()), line[5:], true, nil
	}

	first, rest, ok := lineAddress(line, cur, count)
	if !ok {
		return buffer.LineRegion(cur, cur), line, false, nil
	}
	last := first
	if after, found := strings.CutPrefix(rest, ","); found {
		if last, rest, ok = lineAddress(after, cur, count); !ok {
			return buffer.Region{}, "", false, fmt.Errorf("%s: %w", line, ErrUnknownCommand)
		}
	}
	if first > last {
		first, last = last, first
	}
	if first < 1 || last > count {
		return buffer.Region{}, "", false, fmt.Errorf("range %d,%d: %w", first, last, buffer.ErrOutOfRange)
	}
	return buffer.LineRegion(first, last), rest, true, nil
}

// lineAddress reads one address: a number, . or $.
func lineAddress(s string, cur, count int) (int, string, bool) {
	switch {
	case strings.HasPrefix(s, "."):
		return cur, s[1:], true
	case strings.HasPrefix(s, "$"):
		return count, s[1:], true
	}
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == 0 {
		return 0, s, false
	}
	n, err := strconv.Atoi(s[:i])
	if err != nil {
		return 0, s, false
	}
	return n, s[i:], true
}
