// Package editor provides the editing session: the object that owns one
// buffer with its cursor, mode machine, registers, marks, undo tree and
// operator engine, and routes key input through them.
//
// A presentation layer feeds keys and reads state back:
//
//	s := editor.New([]string{"foo bar", "baz"})
//	defer s.Close()
//	_ = s.FeedKeys(ctx, "dw")
//	s.Lines()  // ["bar", "baz"]
//	s.Cursor() // 1:1
//
// Every key runs to completion before Feed returns. A key that cannot be
// executed aborts its command, leaves the buffer and registers as they
// were and is reported by the returned error, by LastError and as a
// Notice on the event sink. No error is fatal to the session.
//
// The session is safe for concurrent use: a mutex serializes Feed and the
// other entry points, so readers on other goroutines see whole commands.
package editor
