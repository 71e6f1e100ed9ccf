package expr

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"
	"time"

	lua "github.com/yuin/gopher-lua"
)

// DefaultTimeout bounds one evaluation.
const DefaultTimeout = 2 * time.Second

// Evaluator runs expressions in one sandboxed Lua state.
// It is safe for concurrent use; evaluations are serialized.
type Evaluator struct {
	mu      sync.Mutex
	L       *lua.LState
	timeout time.Duration
	closed  bool
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithTimeout sets the time limit of one evaluation.
func WithTimeout(d time.Duration) Option {
	return func(e *Evaluator) {
		if d > 0 {
			e.timeout = d
		}
	}
}

// WithGlobal defines a global string variable visible to expressions.
func WithGlobal(name, value string) Option {
	return func(e *Evaluator) {
		e.L.SetGlobal(name, lua.LString(value))
	}
}

// New creates an evaluator.
func New(opts ...Option) *Evaluator {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	openSafeLibraries(L)
	e := &Evaluator{L: L, timeout: DefaultTimeout}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// openSafeLibraries opens only the side-effect free standard libraries
// and removes the loaders that reach the file system.
func openSafeLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require", "print"} {
		L.SetGlobal(name, lua.LNil)
	}
}

// Eval evaluates expr and returns its value as text.
func (e *Evaluator) Eval(expr string) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return "", ErrClosed
	}
	ctx, cancel := context.WithTimeout(context.Background(), e.timeout)
	defer cancel()
	e.L.SetContext(ctx)
	defer e.L.RemoveContext()

	top := e.L.GetTop()
	defer e.L.SetTop(top)

	fn, err := e.L.LoadString("return " + expr)
	if err != nil {
		if fn, err = e.L.LoadString(expr); err != nil {
			return "", fmt.Errorf("compile %q: %w", expr, err)
		}
	}
	e.L.Push(fn)
	if err := e.call(); err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", fmt.Errorf("%w: %q", ErrTimeout, expr)
		}
		return "", fmt.Errorf("evaluate %q: %w", expr, err)
	}
	if e.L.GetTop() == top {
		return "", nil
	}
	return toText(e.L.Get(top + 1))
}

func (e *Evaluator) call() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
	}()
	return e.L.PCall(0, lua.MultRet, nil)
}

// Close releases the Lua state.
func (e *Evaluator) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.closed {
		e.closed = true
		e.L.Close()
	}
}

func toText(v lua.LValue) (string, error) {
	switch v := v.(type) {
	case *lua.LNilType:
		return "", nil
	case lua.LBool:
		if v {
			return "true", nil
		}
		return "false", nil
	case lua.LNumber:
		return formatNumber(float64(v)), nil
	case lua.LString:
		return string(v), nil
	case *lua.LTable:
		n := v.Len()
		lines := make([]string, 0, n)
		for i := 1; i <= n; i++ {
			s, err := toText(v.RawGetInt(i))
			if err != nil {
				return "", err
			}
			lines = append(lines, s)
		}
		if n == 0 {
			return "", nil
		}
		return strings.Join(lines, "\n") + "\n", nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedValue, v.Type().String())
}

func formatNumber(f float64) string {
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}
