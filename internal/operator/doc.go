// Package operator executes Vim operators over resolved regions.
//
// An operator combines with a motion, a text object, a doubled operator
// key (dd, >>) or a Visual selection into a region. Apply then runs the
// whole cycle as one unit: extract the text, write the registers, mutate
// the buffer and commit a single undo node. If any step fails the buffer
// and the register store are rolled back and nothing is committed.
//
// Change leaves its undo group open: the caller enters Insert mode and
// the typed text becomes part of the same node when EndInsert runs. The
// typed text is also what dot-repeat replays.
//
// Operators:
//
//	d  Delete        c  Change        y  Yank
//	>  ShiftRight    <  ShiftLeft     =  Reindent
//	gq Format        g~ ToggleCase    gu Lower
//	gU Upper         g? Rot13         J  Join    gJ JoinRaw
package operator
