// Package cursor models the editing cursor: a buffer position plus the
// virtual-edit overflow (coladd) and the desired column (curswant) that
// keeps vertical motion aligned across lines of different length.
//
// Cursor and Selection are immutable value types. Every move returns a
// new value clamped to the column rule of the active mode:
//
//   - RuleNormal: the cursor rests on a character, never past the last one
//     (column 1 on an empty line). Used by Normal and Visual modes.
//   - RuleInsert: the cursor may sit one byte past the end of the line.
//     Used by Insert and Replace modes.
//
// Under virtualedit=all the column is unconstrained and the distance past
// the end of the line is carried in Coladd.
//
// Columns always snap to the start of a grapheme cluster.
package cursor
