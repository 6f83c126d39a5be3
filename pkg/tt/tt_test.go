package tt

import (
	"fmt"
	"strings"
	"testing"
)

// Records the messages passed to Errorf.
type recorder []string

func (r *recorder) Helper() {}

func (r *recorder) Errorf(format string, args ...any) {
	*r = append(*r, fmt.Sprintf(format, args...))
}

func neighbors(alive int) int { return 8 - alive }

func bounds(x, y int) (int, int) { return min(x, y), max(x, y) }

func TestTest(t *testing.T) {
	tests := []struct {
		name       string
		fn         *FnToTest
		table      Table
		wantPrefix string // empty if the table should pass
	}{
		{name: "pass", fn: Fn("bounds", bounds),
			table: Table{Args(3, -2).Rets(-2, 3), Args(1, 1).Rets(1, 1)}},
		{name: "pass with Any", fn: Fn("bounds", bounds),
			table: Table{Args(3, -2).Rets(Any, 3)}},
		{name: "one return", fn: Fn("neighbors", neighbors),
			table:      Table{Args(3).Rets(6)},
			wantPrefix: "neighbors(3) returns (-Wanted +Actual):\n"},
		{name: "several returns", fn: Fn("bounds", bounds),
			table:      Table{Args(3, -2).Rets(3, -2)},
			wantPrefix: "bounds(3, -2) returns (-Wanted +Actual):\n"},
		{name: "custom format",
			fn:         Fn("bounds", bounds).ArgsFmt("x = %d, y = %d").RetsFmt("(lo = %d, hi = %d)"),
			table:      Table{Args(3, -2).Rets(0, 0)},
			wantPrefix: "bounds(x = 3, y = -2) returns (-Wanted +Actual):\n"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var r recorder
			Test(&r, test.fn, test.table)
			switch {
			case test.wantPrefix == "" && len(r) > 0:
				t.Errorf("got errors %q, want none", r)
			case test.wantPrefix != "" && len(r) != 1:
				t.Errorf("got %d errors, want 1", len(r))
			case test.wantPrefix != "" && !strings.HasPrefix(r[0], test.wantPrefix):
				t.Errorf("got message %q, want prefix %q", r[0], test.wantPrefix)
			}
		})
	}
}
