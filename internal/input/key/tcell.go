package key

import "github.com/gdamore/tcell/v2"

var tcellKeys = map[tcell.Key]Key{
	tcell.KeyEscape:     KeyEscape,
	tcell.KeyEnter:      KeyEnter,
	tcell.KeyTab:        KeyTab,
	tcell.KeyBackspace:  KeyBackspace,
	tcell.KeyBackspace2: KeyBackspace,
	tcell.KeyDelete:     KeyDelete,
	tcell.KeyInsert:     KeyInsert,
	tcell.KeyHome:       KeyHome,
	tcell.KeyEnd:        KeyEnd,
	tcell.KeyPgUp:       KeyPageUp,
	tcell.KeyPgDn:       KeyPageDown,
	tcell.KeyUp:         KeyUp,
	tcell.KeyDown:       KeyDown,
	tcell.KeyLeft:       KeyLeft,
	tcell.KeyRight:      KeyRight,
}

// FromTcell converts a terminal key event. Control characters arrive
// from tcell as KeyCtrlA..KeyCtrlZ and become Ctrl plus the letter, except
// the ones that double as Tab, Enter, Backspace and Escape.
func FromTcell(ev *tcell.EventKey) Event {
	mods := fromTcellMods(ev.Modifiers())

	if ev.Key() == tcell.KeyRune {
		r := ev.Rune()
		if mods.Has(ModShift) {
			mods &^= ModShift
		}
		return Event{Key: KeyRune, Rune: r, Modifiers: mods}
	}
	if k, ok := tcellKeys[ev.Key()]; ok {
		return Event{Key: k, Modifiers: mods &^ ModCtrl}
	}
	if ev.Key() >= tcell.KeyCtrlA && ev.Key() <= tcell.KeyCtrlZ {
		r := rune('a' + (ev.Key() - tcell.KeyCtrlA))
		return Event{Key: KeyRune, Rune: r, Modifiers: mods.With(ModCtrl)}
	}
	switch ev.Key() {
	case tcell.KeyCtrlBackslash:
		return Event{Key: KeyRune, Rune: '\\', Modifiers: ModCtrl}
	case tcell.KeyCtrlRightSq:
		return Event{Key: KeyRune, Rune: ']', Modifiers: ModCtrl}
	}
	return Event{}
}

func fromTcellMods(m tcell.ModMask) Modifier {
	var mods Modifier
	if m&tcell.ModShift != 0 {
		mods = mods.With(ModShift)
	}
	if m&tcell.ModCtrl != 0 {
		mods = mods.With(ModCtrl)
	}
	if m&(tcell.ModAlt|tcell.ModMeta) != 0 {
		mods = mods.With(ModAlt)
	}
	return mods
}
