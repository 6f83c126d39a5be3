package diag

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Ranger wraps the Range method.
type Ranger interface {
	// Range returns the range associated with the value.
	Range() Ranging
}

// Ranging represents a range [From, To) of byte offsets within a source.
// Structs can embed Ranging to satisfy the [Ranger] interface.
type Ranging struct {
	From int
	To   int
}

// Range returns the Ranging itself.
func (r Ranging) Range() Ranging { return r }

// PointRanging returns a zero-width Ranging at the given point.
func PointRanging(p int) Ranging {
	return Ranging{p, p}
}

// Context is a range of text in a named source.
type Context struct {
	Name   string
	Source string
	Ranging
}

// NewContext creates a new Context.
func NewContext(name, source string, r Ranger) *Context {
	return &Context{name, source, r.Range()}
}

// Position returns the 1-based line and column of the start of the range.
// Columns count code points. Offsets outside the source are clamped.
func (c *Context) Position() (line, col int) {
	from := min(max(c.From, 0), len(c.Source))
	before := c.Source[:from]
	line = strings.Count(before, "\n") + 1
	col = utf8.RuneCountInString(lastLine(before)) + 1
	return line, col
}

// Variables controlling the style of the culprit.
var (
	culpritStart       = "\033[1;4m"
	culpritEnd         = "\033[m"
	culpritPlaceHolder = "^"
)

// ShowCompact shows the position of the range followed by the line it starts
// on, with the culprit highlighted. Only the first line of a culprit spanning
// several lines is shown.
func (c *Context) ShowCompact() string {
	line, col := c.Position()
	from := min(max(c.From, 0), len(c.Source))
	to := min(max(c.To, from), len(c.Source))

	head := lastLine(c.Source[:from])
	culprit := c.Source[from:to]
	var tail string
	if i := strings.IndexByte(culprit, '\n'); i != -1 {
		culprit = culprit[:i]
	} else {
		tail = firstLine(c.Source[to:])
	}
	if culprit == "" {
		culprit = culpritPlaceHolder
	}

	return fmt.Sprintf("%s:%d:%d: %s%s%s%s%s", c.Name, line, col,
		strings.TrimRight(head, "\r"), culpritStart, culprit, culpritEnd,
		strings.TrimRight(tail, "\r"))
}

func firstLine(s string) string {
	i := strings.IndexByte(s, '\n')
	if i == -1 {
		return s
	}
	return s[:i]
}

func lastLine(s string) string {
	// When s does not contain '\n', LastIndexByte returns -1, which happens to
	// be what we want.
	return s[strings.LastIndexByte(s, '\n')+1:]
}
