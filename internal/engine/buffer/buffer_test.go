package buffer

import (
	"errors"
	"strings"
	"sync"
	"testing"
)

func TestNewBuffer(t *testing.T) {
	b := NewBuffer()

	if !b.IsEmpty() {
		t.Error("new buffer should be empty")
	}
	if b.LineCount() != 1 {
		t.Errorf("expected 1 line, got %d", b.LineCount())
	}
	if b.Tick() != 0 {
		t.Errorf("expected tick 0, got %d", b.Tick())
	}
}

func TestNewBufferFromString(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		lines []string
		le    LineEnding
	}{
		{"empty", "", []string{""}, LineEndingLF},
		{"single", "hello", []string{"hello"}, LineEndingLF},
		{"trailing newline", "a\nb\n", []string{"a", "b"}, LineEndingLF},
		{"crlf", "a\r\nb", []string{"a", "b"}, LineEndingCRLF},
		{"cr", "a\rb\rc", []string{"a", "b", "c"}, LineEndingCR},
		{"blank lines", "a\n\nb", []string{"a", "", "b"}, LineEndingLF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBufferFromString(tt.text)
			got := b.Lines()
			if strings.Join(got, "|") != strings.Join(tt.lines, "|") || len(got) != len(tt.lines) {
				t.Errorf("expected %q, got %q", tt.lines, got)
			}
			if b.LineEnding() != tt.le {
				t.Errorf("expected line ending %s, got %s", tt.le, b.LineEnding())
			}
		})
	}
}

func TestBufferGetLines(t *testing.T) {
	b := NewBufferFromLines([]string{"one", "two", "three"})

	got, err := b.GetLines(2, 3)
	if err != nil {
		t.Fatalf("GetLines failed: %v", err)
	}
	if len(got) != 2 || got[0] != "two" || got[1] != "three" {
		t.Errorf("unexpected lines %q", got)
	}

	got, err = b.GetLines(2, 1)
	if err != nil || len(got) != 0 {
		t.Errorf("empty range should return no lines, got %q, %v", got, err)
	}

	if _, err := b.GetLines(0, 1); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("expected ErrOutOfRange, got %v", err)
	}
	if _, err := b.GetLines(1, 4); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("expected ErrOutOfRange, got %v", err)
	}
}

func TestBufferSetLines(t *testing.T) {
	tests := []struct {
		name       string
		start, end int
		repl       []string
		want       []string
		delta      int
	}{
		{"replace one", 2, 2, []string{"TWO"}, []string{"one", "TWO", "three"}, 0},
		{"replace with more", 1, 1, []string{"a", "b"}, []string{"a", "b", "two", "three"}, 1},
		{"insert before", 2, 1, []string{"x"}, []string{"one", "x", "two", "three"}, 1},
		{"append", 4, 3, []string{"four"}, []string{"one", "two", "three", "four"}, 1},
		{"delete middle", 2, 2, nil, []string{"one", "three"}, -1},
		{"delete all", 1, 3, nil, []string{""}, -2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBufferFromLines([]string{"one", "two", "three"})
			delta, err := b.SetLines(tt.start, tt.end, tt.repl)
			if err != nil {
				t.Fatalf("SetLines failed: %v", err)
			}
			if delta != tt.delta {
				t.Errorf("expected delta %d, got %d", tt.delta, delta)
			}
			got := b.Lines()
			if strings.Join(got, "|") != strings.Join(tt.want, "|") || len(got) != len(tt.want) {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
			if b.Tick() != 1 {
				t.Errorf("expected tick 1, got %d", b.Tick())
			}
		})
	}
}

func TestBufferSetLinesOutOfRange(t *testing.T) {
	b := NewBufferFromLines([]string{"one"})
	rev := b.RevisionID()

	for _, r := range [][2]int{{0, 0}, {3, 2}, {1, 2}, {2, 0}} {
		if _, err := b.SetLines(r[0], r[1], []string{"x"}); !errors.Is(err, ErrOutOfRange) {
			t.Errorf("SetLines(%d,%d) expected ErrOutOfRange, got %v", r[0], r[1], err)
		}
	}
	if b.Tick() != 0 || b.RevisionID() != rev {
		t.Error("failed SetLines must not bump tick or revision")
	}
}

func TestBufferNotModifiable(t *testing.T) {
	b := NewBufferFromLines([]string{"one"}, WithReadOnly())

	if _, err := b.SetLines(1, 1, []string{"two"}); !errors.Is(err, ErrNotModifiable) {
		t.Fatalf("expected ErrNotModifiable, got %v", err)
	}
	b.SetModifiable(true)
	if err := b.SetLine(1, "two"); err != nil {
		t.Fatalf("SetLine failed: %v", err)
	}
	if b.Line(1) != "two" {
		t.Errorf("expected two, got %q", b.Line(1))
	}
}

func TestBufferSubscribe(t *testing.T) {
	b := NewBufferFromLines([]string{"a", "b"})

	var got []Change
	unsub := b.Subscribe(func(c Change) { got = append(got, c) })

	if err := b.SetLine(2, "B"); err != nil {
		t.Fatal(err)
	}
	if err := b.InsertLines(1, []string{"z"}); err != nil {
		t.Fatal(err)
	}
	unsub()
	if _, err := b.DeleteLines(1, 1); err != nil {
		t.Fatal(err)
	}

	if len(got) != 2 {
		t.Fatalf("expected 2 changes, got %d", len(got))
	}
	if got[0].Start != 2 || got[0].End != 2 || got[0].NewLines[0] != "B" || got[0].OldLines[0] != "b" {
		t.Errorf("unexpected first change %+v", got[0])
	}
	if got[1].End != 0 || got[1].Delta() != 1 || got[1].Tick != 2 {
		t.Errorf("unexpected second change %+v", got[1])
	}
}

func TestBufferSnapshotIsolation(t *testing.T) {
	b := NewBufferFromString("hello\nworld")
	snap := b.Snapshot()

	_ = b.SetLine(1, "bye")

	if snap.Line(1) != "hello" {
		t.Errorf("snapshot changed: %q", snap.Line(1))
	}
	if snap.Text() != "hello\nworld" {
		t.Errorf("unexpected snapshot text %q", snap.Text())
	}
	if b.Text() != "bye\nworld" {
		t.Errorf("unexpected buffer text %q", b.Text())
	}
}

func TestBufferConcurrentReads(t *testing.T) {
	b := NewBufferFromString("a\nb\nc")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = b.LineCount()
				_ = b.Line(2)
			}
		}()
	}
	for j := 0; j < 50; j++ {
		_ = b.SetLine(2, "x")
	}
	wg.Wait()
}

func TestRegionNormalize(t *testing.T) {
	r := CharRegion(Pos(3, 5), Pos(1, 2), true).Normalize()
	if r.Start != Pos(1, 2) || r.End != Pos(3, 5) {
		t.Errorf("expected swapped region, got %s", r)
	}

	blk := BlockRegion(Pos(1, 4), Pos(3, 1), 3, 0).Normalize()
	if blk.StartVCol != 0 || blk.EndVCol != 3 {
		t.Errorf("expected ordered block columns, got %d..%d", blk.StartVCol, blk.EndVCol)
	}
	if blk.LineCount() != 3 {
		t.Errorf("expected 3 lines, got %d", blk.LineCount())
	}
}
