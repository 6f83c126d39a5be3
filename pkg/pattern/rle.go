package pattern

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/245790/gemini/pkg/diag"
)

const rleError = "rle parse error"

// Longest line of the body written by WriteRLE.
const rleLineWidth = 70

// ParseRLE parses a pattern in the run-length encoded format.
//
// Lines starting with x are headers, and lines starting with # are comments; a
// "#N" comment names the pattern. The body is a sequence of runs, each an
// optional count followed by b for dead cells, o for live cells, or $ for the
// end of a row. The body ends at ! or at the end of the input. Whitespace
// between runs, or between a count and its tag, is ignored; a count may not be
// split by whitespace.
func ParseRLE(name, src string) (*Pattern, error) {
	p := &Pattern{}
	x, y := 0, 0
	count, countFrom := 0, -1
	// Whether whitespace followed the pending count.
	countDone := false

	errorAt := func(from, to int, msg string, cause error) error {
		return parseError(rleError, name, src, diag.Ranging{From: from, To: to}, msg, cause)
	}

	lineStart := true
body:
	for i := 0; i < len(src); i++ {
		c := src[i]
		if lineStart && (c == 'x' || c == '#') {
			end := strings.IndexByte(src[i:], '\n')
			if end == -1 {
				end = len(src) - i
			}
			line := strings.TrimSuffix(src[i:i+end], "\r")
			if c == 'x' {
				if err := parseHeader(p, line); err != nil {
					return nil, errorAt(i, i+len(line), err.Error(), err)
				}
			} else if n, ok := strings.CutPrefix(line, "#N"); ok {
				p.Name = strings.TrimSpace(n)
			}
			i += end
			continue
		}
		lineStart = c == '\n'

		switch {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			countDone = countFrom != -1
		case '0' <= c && c <= '9':
			if countDone {
				return nil, errorAt(countFrom, i+1, "count split by whitespace", nil)
			}
			if countFrom == -1 {
				countFrom = i
			}
			count = count*10 + int(c-'0')
			if count > MaxSize {
				return nil, errorAt(countFrom, i+1, fmt.Sprintf("run longer than %d cells", MaxSize), ErrTooLarge)
			}
		case c == 'b' || c == 'o' || c == '$':
			n := 1
			if countFrom != -1 {
				n = count
				if n == 0 {
					return nil, errorAt(countFrom, i+1, "run of length 0", nil)
				}
			}
			from := i
			if countFrom != -1 {
				from = countFrom
			}
			count, countFrom, countDone = 0, -1, false
			switch c {
			case '$':
				y += n
				x = 0
				if y >= MaxSize {
					return nil, errorAt(from, i+1, fmt.Sprintf("more than %d rows", MaxSize), ErrTooLarge)
				}
			case 'o':
				if x+n > MaxSize {
					return nil, errorAt(from, i+1, fmt.Sprintf("more than %d columns", MaxSize), ErrTooLarge)
				}
				for j := 0; j < n; j++ {
					p.Cells = append(p.Cells, Cell{x + j, y})
				}
				p.Width = max(p.Width, x+n)
				p.Height = max(p.Height, y+1)
				x += n
			case 'b':
				if x+n > MaxSize {
					return nil, errorAt(from, i+1, fmt.Sprintf("more than %d columns", MaxSize), ErrTooLarge)
				}
				x += n
			}
		case c == '!':
			if countFrom != -1 {
				return nil, errorAt(countFrom, i+1, "count before !", nil)
			}
			break body
		default:
			return nil, errorAt(i, i+1, fmt.Sprintf("unexpected character %q", c), nil)
		}
	}
	if countFrom != -1 {
		return nil, errorAt(countFrom, len(src), "count not followed by a tag", nil)
	}
	if p.Name == "" {
		p.Name = baseName(name)
	}
	return p, nil
}

// Parses a header line like "x = 3, y = 3, rule = B3/S23". The declared size is
// a lower bound on the size of the pattern.
func parseHeader(p *Pattern, line string) error {
	for _, field := range strings.Split(line, ",") {
		key, value, ok := strings.Cut(field, "=")
		if !ok {
			return fmt.Errorf("malformed header field %q", strings.TrimSpace(field))
		}
		key, value = strings.TrimSpace(key), strings.TrimSpace(value)
		if key != "x" && key != "y" {
			continue
		}
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("bad %s in header: %q", key, value)
		}
		if n > MaxSize {
			return fmt.Errorf("%w: %s = %d exceeds %d", ErrTooLarge, key, n, MaxSize)
		}
		if key == "x" {
			p.Width = max(p.Width, n)
		} else {
			p.Height = max(p.Height, n)
		}
	}
	return nil
}

// WriteRLE writes the pattern in the run-length encoded format, with body lines
// no longer than 70 characters.
func WriteRLE(w io.Writer, p *Pattern) error {
	bw := bufio.NewWriter(w)
	if p.Name != "" {
		fmt.Fprintf(bw, "#N %s\n", p.Name)
	}
	fmt.Fprintf(bw, "x = %d, y = %d, rule = B3/S23\n", p.Width, p.Height)

	line := 0
	emit := func(n int, tag byte) {
		tok := string(tag)
		if n > 1 {
			tok = strconv.Itoa(n) + tok
		}
		if line > 0 && line+len(tok) > rleLineWidth {
			bw.WriteByte('\n')
			line = 0
		}
		bw.WriteString(tok)
		line += len(tok)
	}

	cells := sortedCells(p)
	y, x := 0, 0
	for i := 0; i < len(cells); {
		c := cells[i]
		if c.Y > y {
			emit(c.Y-y, '$')
			y, x = c.Y, 0
		}
		if c.X > x {
			emit(c.X-x, 'b')
		}
		// Extend the run of live cells.
		j := i + 1
		for j < len(cells) && cells[j].Y == c.Y && cells[j].X == c.X+(j-i) {
			j++
		}
		emit(j-i, 'o')
		x = c.X + (j - i)
		i = j
	}
	emit(1, '!')
	bw.WriteByte('\n')
	return bw.Flush()
}
