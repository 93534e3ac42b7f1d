package toolshed

import (
	"fmt"
	"strings"
)

// RenderGrid maps every cell of a laid-out box back to a text index. It has
// Rows() rows of Width() slots: one per column plus a trailing slot holding
// the index that follows the row. Cells with no character hold End(), the
// text length, so any lookup yields a valid caret position.
type RenderGrid struct {
	rows, width int
	end         int
	cells       []int
}

// newRenderGrid creates a rows x (cols+1) grid filled with end.
func newRenderGrid(rows, cols, end int) *RenderGrid {
	g := &RenderGrid{
		rows:  rows,
		width: cols + 1,
		end:   end,
		cells: make([]int, rows*(cols+1)),
	}
	for i := range g.cells {
		g.cells[i] = end
	}
	return g
}

// Rows returns the number of rows.
func (g *RenderGrid) Rows() int { return g.rows }

// Width returns the number of slots per row (columns + 1).
func (g *RenderGrid) Width() int { return g.width }

// Cols returns the number of character columns.
func (g *RenderGrid) Cols() int { return g.width - 1 }

// End returns the sentinel stored in unused cells: the text length.
func (g *RenderGrid) End() int { return g.end }

// At returns the text index at (row, col). Panics if out of range.
func (g *RenderGrid) At(row, col int) int {
	if row < 0 || row >= g.rows || col < 0 || col >= g.width {
		panic(fmt.Sprintf("toolshed: render grid index (%d, %d) out of range %dx%d", row, col, g.rows, g.width))
	}
	return g.cells[row*g.width+col]
}

// Row returns a copy of one row.
func (g *RenderGrid) Row(row int) []int {
	out := make([]int, g.width)
	copy(out, g.cells[row*g.width:(row+1)*g.width])
	return out
}

// String formats the grid one row per line, for debugging.
func (g *RenderGrid) String() string {
	var b strings.Builder
	for r := 0; r < g.rows; r++ {
		if r > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprint(&b, g.cells[r*g.width:(r+1)*g.width])
	}
	return b.String()
}

func (g *RenderGrid) set(row, col, idx int) {
	g.cells[row*g.width+col] = idx
}

// fill sets cols [from, width) of row to idx.
func (g *RenderGrid) fill(row, from, idx int) {
	for c := from; c < g.width; c++ {
		g.set(row, c, idx)
	}
}

// copyRow overwrites row dst with row src.
func (g *RenderGrid) copyRow(dst, src int) {
	copy(g.cells[dst*g.width:(dst+1)*g.width], g.cells[src*g.width:(src+1)*g.width])
}
