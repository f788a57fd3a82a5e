package scene

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/matzehuels/cascade/pkg/geom"
)

// DefaultCell is the edge length of a generated grid cell.
const DefaultCell = 40.0

// DefaultGap is the spacing between generated grid cells.
const DefaultGap = 8.0

// Grid builds a scene of cols×rows square cells laid out left to right, top
// to bottom, with gap spacing around and between them. Cells are named
// "r<row>c<col>".
func Grid(cols, rows int, cell, gap float64) *Box {
	if cols < 0 {
		cols = 0
	}
	if rows < 0 {
		rows = 0
	}
	w := float64(cols)*(cell+gap) + gap
	h := float64(rows)*(cell+gap) + gap
	root := NewBox(fmt.Sprintf("grid-%dx%d", cols, rows), geom.R(0, 0, w, h))
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			x := gap + float64(c)*(cell+gap)
			y := gap + float64(r)*(cell+gap)
			root.Add(NewBox(fmt.Sprintf("r%dc%d", r, c), geom.R(x, y, cell, cell)))
		}
	}
	return root
}

// ParseGrid parses a "COLSxROWS" string such as "6x10".
func ParseGrid(s string) (cols, rows int, err error) {
	a, b, ok := strings.Cut(strings.ToLower(strings.TrimSpace(s)), "x")
	if !ok {
		return 0, 0, fmt.Errorf("%w: grid %q: want COLSxROWS", ErrInvalid, s)
	}
	cols, err = strconv.Atoi(a)
	if err != nil || cols <= 0 {
		return 0, 0, fmt.Errorf("%w: grid %q: bad column count", ErrInvalid, s)
	}
	rows, err = strconv.Atoi(b)
	if err != nil || rows <= 0 {
		return 0, 0, fmt.Errorf("%w: grid %q: bad row count", ErrInvalid, s)
	}
	return cols, rows, nil
}
