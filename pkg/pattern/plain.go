package pattern

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/245790/gemini/pkg/diag"
)

const plainError = "plain-text parse error"

// ParsePlain parses a pattern in the plain-text format. Leading lines starting
// with ! are comments; a comment of the form "!Name: ..." names the pattern.
// Each following line is a row, where . is a dead cell and any other character
// is a live cell.
func ParsePlain(name, src string) (*Pattern, error) {
	p := &Pattern{}
	header := true
	y := 0
	for pos := 0; pos < len(src); {
		end := strings.IndexByte(src[pos:], '\n')
		next := pos + end + 1
		if end == -1 {
			end = len(src) - pos
			next = len(src)
		}
		line := strings.TrimSuffix(src[pos:pos+end], "\r")

		if header && strings.HasPrefix(line, "!") {
			if n, ok := strings.CutPrefix(line, "!Name:"); ok {
				p.Name = strings.TrimSpace(n)
			}
			pos = next
			continue
		}
		header = false

		if y == MaxSize {
			return nil, parseError(plainError, name, src, diag.Ranging{From: pos, To: pos + len(line)},
				fmt.Sprintf("more than %d rows", MaxSize), ErrTooLarge)
		}
		x := 0
		for i, r := range line {
			if x == MaxSize {
				return nil, parseError(plainError, name, src, diag.Ranging{From: pos + i, To: pos + len(line)},
					fmt.Sprintf("more than %d columns", MaxSize), ErrTooLarge)
			}
			if r != '.' {
				p.Cells = append(p.Cells, Cell{x, y})
			}
			x++
		}
		p.Width = max(p.Width, x)
		y++
		pos = next
	}
	p.Height = y
	if p.Name == "" {
		p.Name = baseName(name)
	}
	return p, nil
}

// WritePlain writes the pattern in the plain-text format.
func WritePlain(w io.Writer, p *Pattern) error {
	bw := bufio.NewWriter(w)
	if p.Name != "" {
		fmt.Fprintf(bw, "!Name: %s\n", p.Name)
	}
	cells := sortedCells(p)
	row := make([]byte, p.Width)
	for y := 0; y < p.Height; y++ {
		for i := range row {
			row[i] = '.'
		}
		for len(cells) > 0 && cells[0].Y == y {
			row[cells[0].X] = 'O'
			cells = cells[1:]
		}
		bw.Write(row)
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
