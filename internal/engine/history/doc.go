// Package history provides the branching undo tree for the editing core.
//
// # Operations
//
// An Operation records one line-range replacement: where it started, the
// lines it removed and the lines it inserted. Operations invert cleanly, so
// a node can be undone and replayed without keeping full snapshots.
//
// # Tree
//
// Every committed change becomes a Node in an arena indexed by its global
// sequence number. Node 0 is the root and stands for the buffer as it was
// when history started. Committing after an undo adds a sibling branch
// rather than discarding the undone change:
//
//	tree := history.New()
//	seq := tree.Commit(ops, before, after)
//
//	pos, err := tree.Undo(buf)  // back to the parent
//	pos, err = tree.Redo(buf)   // forward along the newest branch
//	pos, err = tree.Goto(buf, 3) // time travel to sequence 3
//
// # Grouping
//
// A Recorder collects the buffer changes of one command (for example a
// whole Insert session) so they commit as a single node.
package history
