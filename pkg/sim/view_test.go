package sim

import (
	"strings"
	"testing"

	"github.com/245790/gemini/pkg/life"
	"github.com/245790/gemini/pkg/tt"
)

func universe(cells ...[2]int) *life.Universe {
	u := life.New(nil)
	u.InitEmpty(8, 8)
	for _, c := range cells {
		u.SetAlive(c[0], c[1], true)
	}
	return u
}

func TestFrame(t *testing.T) {
	u := universe([2]int{0, 0}, [2]int{1, 0}, [2]int{0, -1})
	tt.Test(t, tt.Fn("frame", frame), tt.Table{
		tt.Args(u, 4, 5, false).Rets("  #\n  ##\n\ngeneration 0, population 3\n"),
		// Clipped at the right edge.
		tt.Args(u, 4, 2, false).Rets(" #\n #\n\ngeneration 0, population 3\n"),
		tt.Args(u, 4, 5, true).Rets(clearScreen + "  #  \n  ## \n     \ngeneration 0, population 3\n"),
		tt.Args(u, 1, 5, false).Rets("generation 0, population 3\n"),
	})
}

func TestFrame_Empty(t *testing.T) {
	got := frame(universe(), 3, 4, false)
	if want := "\n\ngeneration 0, population 0\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if strings.Contains(got, "#") {
		t.Errorf("empty universe drew cells")
	}
}

func TestClip(t *testing.T) {
	tt.Test(t, tt.Fn("clip", clip), tt.Table{
		tt.Args(-2.0, 3.0, 10).Rets(0, 3),
		tt.Args(8.0, 12.0, 10).Rets(8, 10),
		tt.Args(11.0, 12.0, 10).Rets(11, 11),
		tt.Args(2.5, 3.5, 10).Rets(2, 4),
	})
}
