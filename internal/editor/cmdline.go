package editor

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/dshills/vicore/internal/engine/register"
	"github.com/dshills/vicore/internal/input/key"
	"github.com/dshills/vicore/internal/input/mode"
	"github.com/dshills/vicore/internal/input/vim"
	"github.com/dshills/vicore/internal/motion"
)

// cmdline is a command line being typed: an Ex command after :, a search
// pattern after / or ?, or an expression after "=.
type cmdline struct {
	typ  rune
	text []rune

	// cmd is the command waiting for the text, for / ? and =.
	cmd *vim.Command

	// from is the mode Enter and Esc return to.
	from mode.Mode

	awaitReg bool
}

// openCmdline starts typing a command line of type typ.
func (s *Session) openCmdline(typ rune, cmd *vim.Command, prefill string) error {
	from := s.modes.Current()
	if from.Kind == mode.KindOperatorPending {
		from = mode.Normal
	}
	if err := s.modes.Switch(mode.CommandLine(mode.SubCmdNormal)); err != nil {
		return err
	}
	s.cmd = &cmdline{typ: typ, text: []rune(prefill), cmd: cmd, from: from}
	return nil
}

// openSearch starts typing the pattern of a / or ? command.
func (s *Session) openSearch(cmd *vim.Command) error {
	typ := '/'
	if cmd.Motion.Kind == motion.SearchBackward {
		typ = '?'
	}
	return s.openCmdline(typ, cmd, "")
}

// exCmdline starts typing an Ex command. From Visual mode the line starts
// with the range of the selection and Normal mode follows.
func (s *Session) exCmdline(cmd *vim.Command) error {
	prefill := ""
	if s.sel != nil {
		s.saveSelection()
		prefill = "'<,'>"
	}
	if err := s.openCmdline(':', cmd, prefill); err != nil {
		return err
	}
	s.cmd.from = mode.Normal
	return nil
}

// cmdlineKey handles a key in Command-line mode.
func (s *Session) cmdlineKey(ctx context.Context, e key.Event) error {
	c := s.cmd
	if c == nil {
		return ErrBadState
	}
	if c.awaitReg {
		c.awaitReg = false
		if e.IsChar() {
			rc, err := s.registerValue(e.Rune)
			if err != nil {
				return err
			}
			v := strings.TrimSuffix(rc.String(), "\n")
			c.text = append(c.text, []rune(strings.ReplaceAll(v, "\n", "\r"))...)
		}
		return nil
	}

	switch {
	case e.IsEscape(), e.IsCtrl('c'):
		return s.cancelCmdline()
	case e.Is(key.KeyEnter), e.IsCtrl('m'), e.IsCtrl('j'):
		return s.submitCmdline(ctx)
	case e.Is(key.KeyBackspace), e.IsCtrl('h'):
		if len(c.text) == 0 {
			return s.cancelCmdline()
		}
		c.text = c.text[:len(c.text)-1]
	case e.IsCtrl('u'):
		c.text = c.text[:0]
	case e.IsCtrl('w'):
		c.text = deleteWordBack(c.text)
	case e.IsCtrl('r'):
		c.awaitReg = true
	case e.Is(key.KeyTab):
		c.text = append(c.text, '\t')
	case e.IsChar():
		c.text = append(c.text, e.Rune)
	}
	return nil
}

// deleteWordBack drops trailing blanks and then one word.
func deleteWordBack(text []rune) []rune {
	i := len(text)
	for i > 0 && unicode.IsSpace(text[i-1]) {
		i--
	}
	word := i > 0 && isWordRune(text[i-1])
	for i > 0 && !unicode.IsSpace(text[i-1]) && isWordRune(text[i-1]) == word {
		i--
	}
	return text[:i]
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func (s *Session) cancelCmdline() error {
	c := s.cmd
	s.cmd = nil
	if err := s.modes.Switch(c.from); err != nil {
		return err
	}
	return s.resume(nil)
}

// submitCmdline returns to the mode the command line was opened from and
// runs what was typed there.
func (s *Session) submitCmdline(ctx context.Context) error {
	c := s.cmd
	s.cmd = nil
	line := string(c.text)
	if err := s.modes.Switch(c.from); err != nil {
		return err
	}

	var err error
	switch c.typ {
	case '/', '?':
		err = s.runSearch(ctx, c.cmd, line)
	case '=':
		err = s.evalPut(c.cmd, line)
	default:
		err = s.runEx(ctx, line)
	}
	return s.resume(err)
}

// runSearch completes a / or ? motion with its pattern. An empty pattern
// reuses the last one.
func (s *Session) runSearch(ctx context.Context, cmd *vim.Command, pattern string) error {
	if cmd == nil || cmd.Motion == nil {
		return ErrBadState
	}
	if pattern == "" {
		last, ok := s.motions.LastSearch()
		if !ok {
			return fmt.Errorf("no previous pattern: %w", motion.ErrNoMatch)
		}
		pattern = last.Pattern
	}
	m := *cmd.Motion
	m.Pattern = pattern
	run := *cmd
	run.Motion = &m
	if run.Action == vim.ActOperator {
		return s.operate(ctx, &run)
	}
	return s.move(ctx, &run)
}

// evalPut evaluates an expression and puts the result. An empty line
// evaluates the previous expression again.
func (s *Session) evalPut(cmd *vim.Command, expr string) error {
	if cmd == nil {
		return ErrBadState
	}
	if expr == "" {
		expr = s.regs.Read('=').String()
	}
	content, err := s.regs.Evaluate(expr)
	if err != nil {
		if s.sel != nil {
			s.fallback("leave visual", s.leaveVisual(mode.Normal))
		}
		return err
	}
	return s.put(cmd, &content)
}

// runEx hands an Ex command line to the installed handler.
func (s *Session) runEx(ctx context.Context, line string) error {
	if strings.TrimSpace(line) == "" {
		return nil
	}
	s.regs.Provide(':', register.Chars(line))
	if s.ex == nil {
		return fmt.Errorf("%s: %w", line, ErrNoExHandler)
	}
	s.log.Debug("ex command", "cmdline", line)
	return s.ex(ctx, exEditor{s: s}, line)
}
