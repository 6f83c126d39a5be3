package diag

import (
	"strings"
	"testing"

	"github.com/245790/gemini/pkg/testutil"
)

func setCulpritMarkers(t *testing.T, start, end string) {
	testutil.Set(t, &culpritStart, start)
	testutil.Set(t, &culpritEnd, end)
}

func setMessageMarkers(t *testing.T, start, end string) {
	testutil.Set(t, &messageStart, start)
	testutil.Set(t, &messageEnd, end)
}

// Returns a Context whose range covers the first occurrence of culprit in
// source.
func contextOf(name, source, culprit string) *Context {
	from := strings.Index(source, culprit)
	return NewContext(name, source, Ranging{from, from + len(culprit)})
}
