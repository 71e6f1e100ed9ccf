package vim

import (
	"github.com/dshills/vicore/internal/engine/buffer"
	"github.com/dshills/vicore/internal/engine/mark"
	"github.com/dshills/vicore/internal/engine/register"
	"github.com/dshills/vicore/internal/input/key"
	"github.com/dshills/vicore/internal/input/mode"
	"github.com/dshills/vicore/internal/motion"
	"github.com/dshills/vicore/internal/operator"
	"github.com/dshills/vicore/internal/textobject"
)

// Status indicates the result of feeding a key.
type Status uint8

const (
	// StatusPending indicates more input is needed.
	StatusPending Status = iota

	// StatusComplete indicates a complete command was parsed.
	StatusComplete

	// StatusInvalid indicates the sequence names no command. The parser
	// has been reset.
	StatusInvalid
)

// String returns a string representation of the status.
func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusComplete:
		return "complete"
	case StatusInvalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// State is the position of the parser in the grammar.
type State uint8

const (
	// StateStart is waiting for the first key of a command.
	StateStart State = iota

	// StateCount is accumulating a count before the command.
	StateCount

	// StateRegister has received " and waits for the register name.
	StateRegister

	// StateG has received g and waits for the second key.
	StateG

	// StateOperator has an operator and waits for its target.
	StateOperator

	// StateOperatorG has received g after an operator.
	StateOperatorG

	// StateObject has received i or a and waits for the object key.
	StateObject

	// StateChar waits for the character argument of f F t T r m ' or `.
	StateChar

	// StateRegisterArg waits for the register of q or @.
	StateRegisterArg
)

// String returns a string representation of the state.
func (s State) String() string {
	switch s {
	case StateStart:
		return "start"
	case StateCount:
		return "count"
	case StateRegister:
		return "register"
	case StateG:
		return "g"
	case StateOperator:
		return "operator"
	case StateOperatorG:
		return "operatorG"
	case StateObject:
		return "object"
	case StateChar:
		return "char"
	case StateRegisterArg:
		return "registerArg"
	default:
		return "unknown"
	}
}

// Result is the outcome of feeding one key.
type Result struct {
	Status Status

	// Command is set with StatusComplete.
	Command *Command

	// Pending shows the keys typed so far, for the status line.
	Pending string

	// Err is set with StatusInvalid. It is mode.ErrNoPendingOperator
	// when an operator was waiting for its target.
	Err error
}

// Parser parses key sequences into commands. The zero value is not
// usable; call NewParser.
type Parser struct {
	state State

	count CountState
	// mult is the product of the counts already finished, 0 if none.
	mult int

	register rune
	op       operator.Op
	inner    bool

	// await is the key whose argument StateChar or StateRegisterArg
	// waits for.
	await rune

	recording bool

	keys []key.Event
}

// NewParser creates a parser at the start of a command.
func NewParser() *Parser {
	return &Parser{keys: make([]key.Event, 0, 8)}
}

// Reset discards any partial command.
func (p *Parser) Reset() {
	p.state = StateStart
	p.count.Reset()
	p.mult = 0
	p.register = 0
	p.op = operator.None
	p.inner = false
	p.await = 0
	p.keys = p.keys[:0]
}

// State returns the current parser state.
func (p *Parser) State() State {
	return p.state
}

// Pending returns the keys of the partial command.
func (p *Parser) Pending() string {
	return key.FormatSequence(p.keys)
}

// PendingOperator returns the operator waiting for a target and the
// count typed before it.
func (p *Parser) PendingOperator() (operator.Op, int, bool) {
	return p.op, p.mult, p.op != operator.None
}

// SetRecording tells the parser whether a macro is being recorded, when
// a lone q stops the recording.
func (p *Parser) SetRecording(on bool) {
	p.recording = on
}

var specialMotions = map[key.Key]motion.Kind{
	key.KeyLeft:      motion.Left,
	key.KeyRight:     motion.Right,
	key.KeyUp:        motion.Up,
	key.KeyDown:      motion.Down,
	key.KeyHome:      motion.LineStart,
	key.KeyEnd:       motion.LineEnd,
	key.KeyEnter:     motion.NextLine,
	key.KeyBackspace: motion.Left,
}

var ctrlMotions = map[rune]motion.Kind{
	'h': motion.Left,
	'n': motion.Down,
	'j': motion.Down,
	'p': motion.Up,
	'm': motion.NextLine,
}

// Feed processes one key. visual selects the Visual mode meaning of keys
// such as o, u and the operators, which act on the selection at once.
func (p *Parser) Feed(e key.Event, visual bool) Result {
	if e.IsEscape() {
		cmd := &Command{Action: ActEscape, Keys: p.Pending() + e.String()}
		p.Reset()
		return Result{Status: StatusComplete, Command: cmd}
	}
	p.keys = append(p.keys, e)

	switch p.state {
	case StateChar:
		return p.charArg(e)
	case StateStart, StateCount, StateOperator:
		if k, ok := specialMotions[e.Key]; ok && e.Modifiers == key.ModNone {
			p.fold()
			return p.motion(motion.Of(k))
		}
		if e.Is(key.KeyDelete) && p.state != StateOperator {
			p.fold()
			return p.shortcut('x', visual)
		}
		if e.IsRune() && e.IsModified() {
			return p.ctrl(e, visual)
		}
	case StateG:
		if e.IsCtrl('h') {
			return p.complete(&Command{Action: ActSelect, Wise: buffer.Blockwise})
		}
	}
	if !e.IsChar() {
		return p.invalid()
	}

	r := e.Rune
	switch p.state {
	case StateStart, StateCount:
		return p.start(r, visual)
	case StateRegister:
		return p.registerName(r)
	case StateG:
		return p.g(r, visual)
	case StateOperator:
		return p.operatorTarget(r)
	case StateOperatorG:
		return p.operatorG(r)
	case StateObject:
		return p.object(r)
	case StateRegisterArg:
		return p.registerArg(r)
	}
	return p.invalid()
}

// fold closes the count being typed into the running product.
func (p *Parser) fold() {
	if !p.count.Active {
		return
	}
	if p.mult == 0 {
		p.mult = p.count.Value
	} else {
		p.mult = CombineCounts(p.mult, p.count.Value)
	}
	p.count.Reset()
}

func (p *Parser) pending() Result {
	return Result{Status: StatusPending, Pending: p.Pending()}
}

func (p *Parser) invalid() Result {
	err := ErrUnknownCommand
	if p.op != operator.None {
		err = mode.ErrNoPendingOperator
	}
	p.Reset()
	return Result{Status: StatusInvalid, Err: err}
}

// complete finishes cmd with the count, register and keys typed so far.
func (p *Parser) complete(cmd *Command) Result {
	p.fold()
	cmd.Count = p.mult
	if cmd.Register == 0 {
		cmd.Register = p.register
	}
	cmd.Keys = p.Pending()
	p.Reset()
	return Result{Status: StatusComplete, Command: cmd}
}

func (p *Parser) start(r rune, visual bool) Result {
	if IsCountStart(r) || (r == '0' && p.count.Active) {
		p.count.AccumulateDigit(r)
		p.state = StateCount
		return p.pending()
	}
	p.fold()

	switch r {
	case '"':
		p.state = StateRegister
		return p.pending()
	case 'g':
		p.state = StateG
		return p.pending()
	case 'f', 'F', 't', 'T', 'r', 'm', '\'', '`':
		p.await, p.state = r, StateChar
		return p.pending()
	case 'q':
		if p.recording {
			return p.complete(&Command{Action: ActRecord})
		}
		p.await, p.state = r, StateRegisterArg
		return p.pending()
	case '@':
		p.await, p.state = r, StateRegisterArg
		return p.pending()
	case 'i', 'a':
		if visual {
			p.inner, p.state = r == 'i', StateObject
			return p.pending()
		}
	}

	if op, ok := operator.FromKeys(string(r)); ok {
		return p.beginOperator(op, visual)
	}
	if k, ok := motionKey(r); ok {
		return p.motion(motion.Of(k))
	}
	return p.shortcut(r, visual)
}

// shortcut handles the single-key commands.
func (p *Parser) shortcut(r rune, visual bool) Result {
	if visual {
		return p.visualShortcut(r)
	}
	switch r {
	case 'x':
		return p.operatorMotion(operator.Delete, motion.Right)
	case 'X':
		return p.operatorMotion(operator.Delete, motion.Left)
	case 'D':
		return p.operatorMotion(operator.Delete, motion.LineEnd)
	case 'C':
		return p.operatorMotion(operator.Change, motion.LineEnd)
	case 's':
		return p.operatorMotion(operator.Change, motion.Right)
	case 'S':
		return p.complete(&Command{Action: ActOperator, Op: operator.Change, Linewise: true})
	case 'Y':
		return p.complete(&Command{Action: ActOperator, Op: operator.Yank, Linewise: true})
	case 'J':
		return p.complete(&Command{Action: ActOperator, Op: operator.Join, Linewise: true})
	case 'i':
		return p.insert(operator.InsertBefore)
	case 'a':
		return p.insert(operator.InsertAfter)
	case 'I':
		return p.insert(operator.InsertLineStart)
	case 'A':
		return p.insert(operator.InsertLineEnd)
	case 'o':
		return p.insert(operator.OpenBelow)
	case 'O':
		return p.insert(operator.OpenAbove)
	case 'R':
		return p.insert(operator.ReplaceMode)
	case 'p':
		return p.complete(&Command{Action: ActPut})
	case 'P':
		return p.complete(&Command{Action: ActPut, Before: true})
	case '~':
		return p.complete(&Command{Action: ActToggleChar})
	case 'u':
		return p.complete(&Command{Action: ActUndo})
	case '.':
		return p.complete(&Command{Action: ActRepeat})
	case 'v':
		return p.complete(&Command{Action: ActVisual, Wise: buffer.Charwise})
	case 'V':
		return p.complete(&Command{Action: ActVisual, Wise: buffer.Linewise})
	case ':':
		return p.complete(&Command{Action: ActCmdline, Char: ':'})
	}
	return p.invalid()
}

func (p *Parser) visualShortcut(r rune) Result {
	switch r {
	case 'x':
		return p.complete(&Command{Action: ActOperator, Op: operator.Delete})
	case 'X', 'D':
		return p.complete(&Command{Action: ActOperator, Op: operator.Delete, Linewise: true})
	case 's':
		return p.complete(&Command{Action: ActOperator, Op: operator.Change})
	case 'C', 'S', 'R':
		return p.complete(&Command{Action: ActOperator, Op: operator.Change, Linewise: true})
	case 'Y':
		return p.complete(&Command{Action: ActOperator, Op: operator.Yank, Linewise: true})
	case 'J':
		return p.complete(&Command{Action: ActOperator, Op: operator.Join})
	case '~':
		return p.complete(&Command{Action: ActOperator, Op: operator.ToggleCase})
	case 'u':
		return p.complete(&Command{Action: ActOperator, Op: operator.Lower})
	case 'U':
		return p.complete(&Command{Action: ActOperator, Op: operator.Upper})
	case 'I':
		return p.insert(operator.InsertLineStart)
	case 'A':
		return p.insert(operator.InsertLineEnd)
	case 'o', 'O':
		return p.complete(&Command{Action: ActSwapAnchor})
	case 'p':
		return p.complete(&Command{Action: ActPut})
	case 'P':
		return p.complete(&Command{Action: ActPut, Before: true})
	case 'v':
		return p.complete(&Command{Action: ActVisual, Wise: buffer.Charwise})
	case 'V':
		return p.complete(&Command{Action: ActVisual, Wise: buffer.Linewise})
	case ':':
		return p.complete(&Command{Action: ActCmdline, Char: ':'})
	}
	return p.invalid()
}

func (p *Parser) ctrl(e key.Event, visual bool) Result {
	if p.state == StateOperator {
		return p.invalid()
	}
	p.fold()
	if k, ok := ctrlMotions[e.Rune]; ok && e.Modifiers == key.ModCtrl {
		return p.motion(motion.Of(k))
	}
	switch {
	case e.IsCtrl('r') && !visual:
		return p.complete(&Command{Action: ActRedo})
	case e.IsCtrl('v'), e.IsCtrl('q'):
		return p.complete(&Command{Action: ActVisual, Wise: buffer.Blockwise})
	case e.IsCtrl('g') && visual:
		return p.complete(&Command{Action: ActToggleSelect})
	}
	return p.invalid()
}

func (p *Parser) insert(kind operator.InsertKind) Result {
	return p.complete(&Command{Action: ActInsert, Insert: kind})
}

func (p *Parser) registerName(r rune) Result {
	if !register.Valid(r) {
		return p.invalid()
	}
	p.register = r
	p.state = StateStart
	return p.pending()
}

func (p *Parser) g(r rune, visual bool) Result {
	if k, ok := motion.KindFromKeys("g" + string(r)); ok {
		return p.motion(motion.Of(k))
	}
	if op, ok := operator.FromKeys("g" + string(r)); ok {
		return p.beginOperator(op, visual)
	}
	switch r {
	case 'J':
		return p.complete(&Command{Action: ActOperator, Op: operator.JoinRaw, Linewise: !visual})
	case 'p':
		return p.complete(&Command{Action: ActPut, CursorAfter: true})
	case 'P':
		return p.complete(&Command{Action: ActPut, Before: true, CursorAfter: true})
	case 'I':
		if !visual {
			return p.insert(operator.InsertColumnOne)
		}
	case 'v':
		return p.complete(&Command{Action: ActReselect})
	case 'h':
		return p.complete(&Command{Action: ActSelect, Wise: buffer.Charwise})
	case 'H':
		return p.complete(&Command{Action: ActSelect, Wise: buffer.Linewise})
	case '-':
		return p.complete(&Command{Action: ActStepBack})
	case '+':
		return p.complete(&Command{Action: ActStepForward})
	}
	return p.invalid()
}

// beginOperator starts op. In Visual mode the operator applies to the
// selection at once.
func (p *Parser) beginOperator(op operator.Op, visual bool) Result {
	if visual {
		return p.complete(&Command{Action: ActOperator, Op: op})
	}
	p.op = op
	p.state = StateOperator
	return p.pending()
}

// lastKey returns the key that doubles op: d for d, u for gu.
func lastKey(op operator.Op) rune {
	s := op.String()
	if s == "" {
		return 0
	}
	return rune(s[len(s)-1])
}

func (p *Parser) operatorTarget(r rune) Result {
	if IsCountStart(r) || (r == '0' && p.count.Active) {
		p.count.AccumulateDigit(r)
		return p.pending()
	}
	p.fold()

	if r == lastKey(p.op) {
		return p.complete(&Command{Action: ActOperator, Op: p.op, Linewise: true})
	}
	switch r {
	case 'g':
		p.state = StateOperatorG
		return p.pending()
	case 'i', 'a':
		p.inner, p.state = r == 'i', StateObject
		return p.pending()
	case 'f', 'F', 't', 'T', '\'', '`':
		p.await, p.state = r, StateChar
		return p.pending()
	}
	if k, ok := motionKey(r); ok {
		return p.motion(motion.Of(k))
	}
	return p.invalid()
}

// motionKey looks up a one-key motion. <Space> is l.
func motionKey(r rune) (motion.Kind, bool) {
	if r == ' ' {
		return motion.Right, true
	}
	return motion.KindFromKeys(string(r))
}

func (p *Parser) operatorG(r rune) Result {
	keys := p.op.String()
	if len(keys) == 2 && keys[0] == 'g' && rune(keys[1]) == r {
		return p.complete(&Command{Action: ActOperator, Op: p.op, Linewise: true})
	}
	if k, ok := motion.KindFromKeys("g" + string(r)); ok {
		return p.motion(motion.Of(k))
	}
	return p.invalid()
}

func (p *Parser) object(r rune) Result {
	k, ok := textobject.KindFromKey(r)
	if !ok {
		return p.invalid()
	}
	obj := &textobject.Object{Kind: k, Inner: p.inner}
	if p.op == operator.None {
		return p.complete(&Command{Action: ActObject, Object: obj})
	}
	return p.complete(&Command{Action: ActOperator, Op: p.op, Object: obj})
}

func (p *Parser) charArg(e key.Event) Result {
	var c rune
	switch {
	case e.IsChar():
		c = e.Rune
	case e.Is(key.KeyEnter):
		c = '\r'
	case e.Is(key.KeyTab):
		c = '\t'
	default:
		return p.invalid()
	}
	switch p.await {
	case 'r':
		return p.complete(&Command{Action: ActReplaceChar, Char: c})
	case 'm':
		if !mark.Settable(c) {
			return p.invalid()
		}
		return p.complete(&Command{Action: ActSetMark, Char: c})
	case '\'', '`':
		if !mark.Valid(c) {
			return p.invalid()
		}
	}
	k, _ := motion.KindFromKeys(string(p.await))
	return p.motion(motion.Motion{Kind: k, Char: c})
}

func (p *Parser) registerArg(r rune) Result {
	switch p.await {
	case 'q':
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '"' {
			return p.complete(&Command{Action: ActRecord, Char: r})
		}
	case '@':
		if r == '@' || r == ':' || register.Valid(r) {
			return p.complete(&Command{Action: ActPlay, Char: r})
		}
	}
	return p.invalid()
}

// motion completes a motion, or the pending operator's target.
func (p *Parser) motion(m motion.Motion) Result {
	if p.op != operator.None {
		return p.complete(&Command{Action: ActOperator, Op: p.op, Motion: &m})
	}
	return p.complete(&Command{Action: ActMotion, Motion: &m})
}

func (p *Parser) operatorMotion(op operator.Op, k motion.Kind) Result {
	m := motion.Of(k)
	return p.complete(&Command{Action: ActOperator, Op: op, Motion: &m})
}
