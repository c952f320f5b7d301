package xformgen

import (
	"strings"
	"unicode"

	"golang.org/x/text/width"
)

// Pretty renders m over several lines with bracket glyphs, centred columns
// and a blank line between rows:
//
//	⎡a  b⎤
//	⎢    ⎥
//	⎣c  d⎦
func Pretty(m *Matrix) string {
	if m.rows == 0 || m.cols == 0 {
		return "[]"
	}
	cells := make([][]string, m.rows)
	colWidth := make([]int, m.cols)
	for i := 0; i < m.rows; i++ {
		cells[i] = make([]string, m.cols)
		for j := 0; j < m.cols; j++ {
			s := m.data[i][j].String()
			cells[i][j] = s
			colWidth[j] = max(colWidth[j], displayWidth(s))
		}
	}
	inner := 0
	for _, w := range colWidth {
		inner += w
	}
	inner += 2 * (m.cols - 1)

	row := func(i int) string {
		var sb strings.Builder
		for j, s := range cells[i] {
			if j > 0 {
				sb.WriteString("  ")
			}
			pad := colWidth[j] - displayWidth(s)
			sb.WriteString(strings.Repeat(" ", pad/2))
			sb.WriteString(s)
			sb.WriteString(strings.Repeat(" ", pad-pad/2))
		}
		return sb.String()
	}

	if m.rows == 1 {
		return "[" + row(0) + "]"
	}
	var sb strings.Builder
	blank := "⎢" + strings.Repeat(" ", inner) + "⎥"
	for i := 0; i < m.rows; i++ {
		left, right := "⎢", "⎥"
		switch i {
		case 0:
			left, right = "⎡", "⎤"
		case m.rows - 1:
			left, right = "⎣", "⎦"
		}
		if i > 0 {
			sb.WriteString(blank)
			sb.WriteByte('\n')
		}
		sb.WriteString(left)
		sb.WriteString(row(i))
		sb.WriteString(right)
		if i < m.rows-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// displayWidth counts terminal cells: wide and fullwidth runes take two,
// combining marks none.
func displayWidth(s string) int {
	n := 0
	for _, r := range s {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		switch width.LookupRune(r).Kind() {
		case width.EastAsianWide, width.EastAsianFullwidth:
			n += 2
		default:
			n++
		}
	}
	return n
}
