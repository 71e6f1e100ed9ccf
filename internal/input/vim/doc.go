// Package vim turns Normal and Visual mode keystrokes into commands.
//
// The grammar is
//
//	[count]["x][count]operator[count](motion|text-object|operator)
//	[count]["x][count]motion
//	[count]["x][count]command
//
// Counts typed in several places multiply: 2d3w deletes six words. A
// doubled operator (dd, g~~, gUgU) acts on count lines.
//
// The Parser is resumable. Feed takes one key and reports whether the
// command is complete, still pending, or invalid:
//
//	p := vim.NewParser()
//	for _, ev := range events {
//		res := p.Feed(ev, visual)
//		switch res.Status {
//		case vim.StatusComplete:
//			run(res.Command)
//		case vim.StatusInvalid:
//			report(res.Err)
//		}
//	}
//
// The parser has no access to the buffer. Whether a motion finds a target
// is decided when the command runs.
package vim
