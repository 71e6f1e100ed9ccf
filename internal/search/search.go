package search

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/dlclark/regexp2"

	"github.com/dshills/vicore/internal/config"
	"github.com/dshills/vicore/internal/engine/buffer"
	"github.com/dshills/vicore/internal/engine/cursor"
	"github.com/dshills/vicore/internal/motion"
)

// ErrInvalidPattern wraps pattern compile failures.
var ErrInvalidPattern = errors.New("invalid pattern")

// Searcher finds pattern matches in a buffer.
type Searcher struct {
	lines cursor.Lines
	opts  config.Provider

	mu    sync.Mutex
	key   string
	cache *regexp2.Regexp
}

var _ motion.Searcher = (*Searcher)(nil)

// New creates a searcher over lines.
func New(lines cursor.Lines, opts config.Provider) *Searcher {
	if opts == nil {
		opts = config.Static(config.Defaults())
	}
	return &Searcher{lines: lines, opts: opts}
}

// Compile translates and compiles pattern under the current case options.
func (s *Searcher) Compile(pattern string) (*regexp2.Regexp, error) {
	expr, ignore := s.translate(pattern)
	key := expr
	if ignore {
		key = "(?i)" + key
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cache != nil && s.key == key {
		return s.cache, nil
	}
	var opts regexp2.RegexOptions
	if ignore {
		opts |= regexp2.IgnoreCase
	}
	re, err := regexp2.Compile(expr, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidPattern, pattern, err)
	}
	s.key, s.cache = key, re
	return re, nil
}

// translate rewrites a pattern in Vim's default 'magic' syntax into
// regexp2 syntax. Groups, alternation and the multis other than * need a
// backslash (\( \) \| \+ \= \? \{n,m}); their bare forms and { } are
// literal. \< and \> are word edges, \%( opens a group that does not
// capture, and \c or \C force the case mode.
func (s *Searcher) translate(pattern string) (string, bool) {
	ignore := s.opts.IgnoreCase()
	forced := false
	var sb strings.Builder
	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		switch c {
		case '(', ')', '|', '+', '?', '{', '}':
			sb.WriteByte('\\')
			sb.WriteByte(c)
			continue
		case '[':
			if end := classEnd(pattern, i); end > 0 {
				class := pattern[i+1 : end]
				neg := strings.HasPrefix(class, "^")
				class = strings.TrimPrefix(class, "^")
				sb.WriteByte('[')
				if neg {
					sb.WriteByte('^')
				}
				if strings.HasPrefix(class, "]") {
					sb.WriteString(`\]`)
					class = class[1:]
				}
				sb.WriteString(class)
				sb.WriteByte(']')
				i = end
				continue
			}
			sb.WriteString(`\[`)
			continue
		case '\\':
			// escapes are read below
		default:
			sb.WriteByte(c)
			continue
		}

		if i+1 >= len(pattern) {
			sb.WriteString(`\\`)
			break
		}
		i++
		switch e := pattern[i]; e {
		case '<':
			sb.WriteString(`(?<!\w)(?=\w)`)
		case '>':
			sb.WriteString(`(?<=\w)(?!\w)`)
		case '(', ')', '|', '+':
			sb.WriteByte(e)
		case '=', '?':
			sb.WriteByte('?')
		case '%':
			if i+1 < len(pattern) && pattern[i+1] == '(' {
				sb.WriteString("(?:")
				i++
			} else {
				sb.WriteString(`%`)
			}
		case '{':
			end := strings.IndexByte(pattern[i:], '}')
			if end < 0 {
				sb.WriteString(`\{`)
				continue
			}
			sb.WriteString(braceMulti(strings.TrimSuffix(pattern[i+1:i+end], `\`)))
			i += end
		case 'c':
			ignore, forced = true, true
		case 'C':
			ignore, forced = false, true
		case 'a':
			sb.WriteString(`[A-Za-z]`)
		case 'A':
			sb.WriteString(`[^A-Za-z]`)
		case 'h':
			sb.WriteString(`[A-Za-z_]`)
		case 'e':
			sb.WriteString(`\x1b`)
		case 't':
			sb.WriteString(`\t`)
		default:
			sb.WriteByte('\\')
			sb.WriteByte(e)
		}
	}
	if !forced && ignore && s.opts.SmartCase() && hasUpper(pattern) {
		ignore = false
	}
	return sb.String(), ignore
}

// classEnd returns the index of the ] closing the bracket expression that
// starts at i, or -1. A ] right after [ or [^ is literal.
func classEnd(p string, i int) int {
	j := i + 1
	if j < len(p) && p[j] == '^' {
		j++
	}
	if j < len(p) && p[j] == ']' {
		j++
	}
	for ; j < len(p); j++ {
		switch p[j] {
		case '\\':
			j++
		case ']':
			return j
		}
	}
	return -1
}

// braceMulti converts the body of \{...}: n, n,m, ,m, n, and the empty
// form, each optionally led by - for the shortest match.
func braceMulti(body string) string {
	lazy := strings.HasPrefix(body, "-")
	body = strings.TrimPrefix(body, "-")
	var out string
	switch {
	case body == "" || body == ",":
		out = "*"
	case strings.HasPrefix(body, ","):
		out = "{0" + body + "}"
	default:
		out = "{" + body + "}"
	}
	if lazy {
		out += "?"
	}
	return out
}

func hasUpper(s string) bool {
	escaped := false
	for _, r := range s {
		switch {
		case escaped:
			escaped = false
		case r == '\\':
			escaped = true
		case unicode.IsUpper(r):
			return true
		}
	}
	return false
}

// Find returns the start of the first match after from (Forward) or before
// it (Backward). With wrap set the scan continues from the other end of the
// buffer. ctx is checked before each line.
func (s *Searcher) Find(ctx context.Context, pattern string, from buffer.Position, dir motion.Direction, wrap bool) (buffer.Position, bool, error) {
	re, err := s.Compile(pattern)
	if err != nil {
		return buffer.Position{}, false, err
	}
	n := s.lines.LineCount()
	at := from.Index()

	for i := 0; i <= n; i++ {
		if err := ctx.Err(); err != nil {
			return buffer.Position{}, false, err
		}
		line := from.Line + i*int(dir)
		if line < 1 || line > n {
			if !wrap {
				return buffer.Position{}, false, nil
			}
			line = (line-1+n)%n + 1
		}

		starts, err := matchStarts(re, s.lines.Line(line))
		if err != nil {
			return buffer.Position{}, false, err
		}
		var idx int
		var ok bool
		switch {
		case i == 0:
			idx, ok = pick(starts, dir, func(b int) bool {
				if dir == motion.Forward {
					return b > at
				}
				return b < at
			})
		case i == n:
			// wrapped back around to the starting line
			idx, ok = pick(starts, dir, func(b int) bool {
				if dir == motion.Forward {
					return b <= at
				}
				return b >= at
			})
		default:
			idx, ok = pick(starts, dir, func(int) bool { return true })
		}
		if ok {
			return buffer.Pos(line, idx+1), true, nil
		}
	}
	return buffer.Position{}, false, nil
}

func pick(starts []int, dir motion.Direction, keep func(int) bool) (int, bool) {
	if dir == motion.Forward {
		for _, b := range starts {
			if keep(b) {
				return b, true
			}
		}
		return 0, false
	}
	for i := len(starts) - 1; i >= 0; i-- {
		if keep(starts[i]) {
			return starts[i], true
		}
	}
	return 0, false
}

// matchStarts returns the byte offsets of every match in line.
func matchStarts(re *regexp2.Regexp, line string) ([]int, error) {
	var starts []int
	m, err := re.FindStringMatch(line)
	for m != nil && err == nil {
		starts = append(starts, runeOffset(line, m.Index))
		m, err = re.FindNextMatch(m)
	}
	if err != nil {
		return nil, fmt.Errorf("match: %w", err)
	}
	return starts, nil
}

// runeOffset converts a rune index, as regexp2 reports, to a byte offset.
func runeOffset(s string, runes int) int {
	b := 0
	for ; runes > 0 && b < len(s); runes-- {
		_, size := utf8.DecodeRuneInString(s[b:])
		b += size
	}
	return b
}
