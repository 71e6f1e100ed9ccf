package history

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Preview renders the change made by node seq as a line diff, one hunk
// per operation. Lines are prefixed with "-", "+" or " ".
func (t *Tree) Preview(seq int) (string, error) {
	n, ok := t.Node(seq)
	if !ok {
		return "", fmt.Errorf("%w: %d", ErrUnknownChange, seq)
	}

	dmp := diffmatchpatch.New()
	var sb strings.Builder
	for _, op := range n.Ops {
		fmt.Fprintf(&sb, "@@ -%d,%d +%d,%d @@\n", op.Start, len(op.OldLines), op.Start, len(op.NewLines))

		oldText := joinLines(op.OldLines)
		newText := joinLines(op.NewLines)
		a, b, lines := dmp.DiffLinesToChars(oldText, newText)
		diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

		for _, d := range diffs {
			prefix := " "
			switch d.Type {
			case diffmatchpatch.DiffDelete:
				prefix = "-"
			case diffmatchpatch.DiffInsert:
				prefix = "+"
			}
			for _, line := range strings.SplitAfter(d.Text, "\n") {
				if line == "" {
					continue
				}
				sb.WriteString(prefix)
				sb.WriteString(line)
			}
		}
	}
	return sb.String(), nil
}

func joinLines(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}
