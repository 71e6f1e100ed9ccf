// Package mode provides the modal state machine of the editing core.
//
// A Mode is a closed tagged value: a Kind plus the sub-variant that goes
// with it (visual shape, command-line sub-mode, terminal sub-mode) and,
// for operator-pending, the operator and count that produced it.
//
// The Manager owns the active mode and enforces the legal transition
// table. Exactly one mode is active at a time.
//
// # Blocking
//
// Command-line and operator-pending states are blocking: work posted with
// Manager.Post while blocking is deferred and runs, in order, once the
// machine returns to a non-blocking state. The editor also marks itself
// blocking while a multi-key command waits for its argument.
//
// # Ctrl-O
//
// Ctrl-O from Insert mode runs a single Normal mode command. The mode is
// Normal while the command runs, reported with the code "niI", and the
// machine returns to Insert when the command completes.
package mode
