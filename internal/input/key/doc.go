// Package key defines the key events the editing core consumes.
//
// Events are written in Vim notation: plain characters stand for
// themselves and special keys use angle brackets, as in "<Esc>", "<CR>",
// "<C-r>" or "<BS>". ParseSequence turns a whole typed string such as
// "d2w" or "ihello<Esc>" into events, and FromTcell adapts terminal
// events delivered by tcell.
package key
