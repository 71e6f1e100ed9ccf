// Package register implements the Vim register store: the unnamed
// register, named registers a-z (A-Z append), the yank register 0, the
// delete history 1-9, the small-delete register, the read-only registers
// maintained by the editor (. % # : /), the expression register, the
// clipboard registers and the black hole.
//
// Reading a register never fails. An empty or unknown register reads as
// empty Content.
package register
