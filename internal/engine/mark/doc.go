// Package mark keeps the named positions of one buffer: the user marks
// a-z and A-Z set with m, and the marks the editor maintains itself, such
// as the position before the latest jump (the ' mark) or the bounds of the last
// change ('[ and ']).
//
// Marks follow line edits. A mark below an edit moves by the number of
// lines added or removed; a user mark on a deleted line is dropped.
package mark
