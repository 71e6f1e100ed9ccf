package mode

import (
	"fmt"
	"sync"
)

// ChangeCallback is called when the mode changes.
type ChangeCallback func(from, to Mode)

// Manager tracks the active mode and enforces legal transitions.
type Manager struct {
	mu sync.Mutex

	current  Mode
	previous Mode

	// beforeOp is the mode operator-pending returns to on abort.
	beforeOp Mode

	ctrlO    bool
	blocking bool
	count    int

	deferred  []func()
	callbacks []ChangeCallback
}

// NewManager creates a manager in Normal mode.
func NewManager() *Manager {
	return &Manager{current: Normal, previous: Normal}
}

// Current returns the active mode.
func (m *Manager) Current() Mode {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// Previous returns the mode before the last transition.
func (m *Manager) Previous() Mode {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.previous
}

// Code returns the effective mode code, "niI" during Ctrl-O.
func (m *Manager) Code() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ctrlO {
		return "niI"
	}
	return m.current.Code()
}

// Switch transitions to a new mode.
func (m *Manager) Switch(to Mode) error {
	m.mu.Lock()
	if !CanTransition(m.current, to) {
		from := m.current
		m.mu.Unlock()
		return &TransitionError{From: from, To: to}
	}
	from, cbs, flush := m.switchLocked(to)
	m.mu.Unlock()

	m.notify(from, to, cbs)
	runAll(flush)
	return nil
}

// switchLocked performs the switch (must hold lock). It returns the old
// mode, the callbacks to notify, and deferred work released by leaving a
// blocking state.
func (m *Manager) switchLocked(to Mode) (Mode, []ChangeCallback, []func()) {
	from := m.current
	wasBlocking := m.isBlockingLocked()

	m.previous = from
	m.current = to
	if to.Kind != KindOperatorPending {
		m.count = 0
	}

	var flush []func()
	if wasBlocking && !m.isBlockingLocked() {
		flush = m.deferred
		m.deferred = nil
	}

	if from == to {
		return from, nil, flush
	}
	cbs := make([]ChangeCallback, 0, len(m.callbacks))
	for _, cb := range m.callbacks {
		if cb != nil {
			cbs = append(cbs, cb)
		}
	}
	return from, cbs, flush
}

func (m *Manager) notify(from, to Mode, cbs []ChangeCallback) {
	for _, cb := range cbs {
		cb(from, to)
	}
}

func runAll(fns []func()) {
	for _, fn := range fns {
		fn()
	}
}

// EnterOperatorPending starts waiting for a motion for op. The current mode
// must be Normal or Visual.
func (m *Manager) EnterOperatorPending(op string, count int) error {
	m.mu.Lock()
	cur := m.current
	if cur.Kind != KindNormal && cur.Kind != KindVisual {
		m.mu.Unlock()
		return &TransitionError{From: cur, To: OperatorPending(op, count)}
	}
	m.beforeOp = cur
	to := OperatorPending(op, count)
	from, cbs, flush := m.switchLocked(to)
	m.count = count
	m.mu.Unlock()

	m.notify(from, to, cbs)
	runAll(flush)
	return nil
}

// PendingOperator returns the operator awaiting a motion, if any.
func (m *Manager) PendingOperator() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current.Kind != KindOperatorPending {
		return "", false
	}
	return m.current.Operator, true
}

// ExitOperatorPending leaves operator-pending after the motion completed.
func (m *Manager) ExitOperatorPending() error {
	m.mu.Lock()
	if m.current.Kind != KindOperatorPending {
		m.mu.Unlock()
		return ErrNoPendingOperator
	}
	from, cbs, flush := m.switchLocked(Normal)
	m.mu.Unlock()

	m.notify(from, Normal, cbs)
	runAll(flush)
	return nil
}

// Abort cancels a pending operator and returns to the mode it started
// from. It returns ErrNoPendingOperator so callers can report the abort;
// outside operator-pending it is a no-op returning nil.
func (m *Manager) Abort() error {
	m.mu.Lock()
	if m.current.Kind != KindOperatorPending {
		m.mu.Unlock()
		return nil
	}
	to := m.beforeOp
	if to.Kind != KindNormal && to.Kind != KindVisual {
		to = Normal
	}
	from, cbs, flush := m.switchLocked(to)
	m.mu.Unlock()

	m.notify(from, to, cbs)
	runAll(flush)
	return ErrNoPendingOperator
}

// EnterCtrlO switches from Insert to Normal for one command.
func (m *Manager) EnterCtrlO() error {
	m.mu.Lock()
	if m.current.Kind != KindInsert && m.current.Kind != KindReplace {
		cur := m.current
		m.mu.Unlock()
		return fmt.Errorf("%w: ctrl-o from %s", ErrInvalidTransition, cur)
	}
	m.ctrlO = true
	from, cbs, flush := m.switchLocked(Normal)
	m.mu.Unlock()

	m.notify(from, Normal, cbs)
	runAll(flush)
	return nil
}

// InCtrlO reports whether a Ctrl-O command is pending.
func (m *Manager) InCtrlO() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ctrlO
}

// ExitCtrlO returns to Insert after the Ctrl-O command. It does nothing
// when the command itself left Normal mode (for example by entering
// Visual) or when Ctrl-O is not active.
func (m *Manager) ExitCtrlO() {
	m.mu.Lock()
	if !m.ctrlO {
		m.mu.Unlock()
		return
	}
	m.ctrlO = false
	if m.current.Kind != KindNormal {
		m.mu.Unlock()
		return
	}
	from, cbs, flush := m.switchLocked(Insert)
	m.mu.Unlock()

	m.notify(from, Insert, cbs)
	runAll(flush)
}

// Count returns the pending count, 0 if none.
func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.count
}

// SetCount records the pending count. 0 clears it.
func (m *Manager) SetCount(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.count = n
}

// Blocking

// Blocking reports whether deferred work is held back.
func (m *Manager) Blocking() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.isBlockingLocked()
}

func (m *Manager) isBlockingLocked() bool {
	return m.blocking || m.current.Kind == KindCommandLine || m.current.Kind == KindOperatorPending
}

// SetBlocking marks a multi-key command in progress. Clearing it runs any
// work deferred while blocked.
func (m *Manager) SetBlocking(on bool) {
	m.mu.Lock()
	was := m.isBlockingLocked()
	m.blocking = on
	var flush []func()
	if was && !m.isBlockingLocked() {
		flush = m.deferred
		m.deferred = nil
	}
	m.mu.Unlock()

	runAll(flush)
}

// Post runs fn now, or queues it until the machine stops blocking.
func (m *Manager) Post(fn func()) {
	m.mu.Lock()
	if m.isBlockingLocked() {
		m.deferred = append(m.deferred, fn)
		m.mu.Unlock()
		return
	}
	m.mu.Unlock()
	fn()
}

// Pending returns how many deferred calls are queued.
func (m *Manager) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.deferred)
}

// OnChange registers a callback for mode changes.
// Returns a function to unregister the callback.
func (m *Manager) OnChange(callback ChangeCallback) func() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.callbacks = append(m.callbacks, callback)
	index := len(m.callbacks) - 1

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if index < len(m.callbacks) {
			m.callbacks[index] = nil
		}
	}
}

// IsKind returns true if the current mode has the given kind.
func (m *Manager) IsKind(k Kind) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current.Kind == k
}
