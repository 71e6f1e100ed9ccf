// Package macro provides Vim-style keyboard macro recording and playback.
//
// A macro is a key sequence kept in a register. Recording into a register
// stores the typed keys there as text in key notation, so a macro can be
// yanked, edited and put like any other register text, and text typed into
// a register can be played as a macro.
//
// # Recording
//
// Recording is started by calling StartRecording with a register name.
// While recording, key events are captured via the Record method.
// StopRecording writes the keys to the register; an uppercase name
// appends to the macro already there.
//
//	rec := macro.NewRecorder(regs)
//	rec.StartRecording('a')
//	// ... each typed key is passed to Record ...
//	rec.StopRecording()
//
// # Playback
//
// The Player decodes a register back into key events and sends them
// through a handler. Playback stops at the first key the handler rejects,
// as Vim aborts a macro on the first failing command.
//
//	player := macro.NewPlayer(regs)
//	err := player.Play(ctx, 'a', 3, session.FeedKey)
//
// @@ replays the last played register and @: replays the last command
// line. A macro may play another macro, up to MaxDepth levels deep.
//
// # Thread Safety
//
// Recorder and Player are safe for concurrent use.
package macro
