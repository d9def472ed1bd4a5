// Package grid places sensors on a fixed-width, row-growing dashboard grid
// and tracks the cursor that selects one of them.
//
// Cells live in a flat arena indexed row*Width+col. Sensors always fill a
// prefix of the arena in reading order: Add fills the first hole, moves only
// swap occupied cells, and Remove shifts everything after the gap back by
// one. That keeps every row but the last full, and the last row is dropped
// as soon as it empties.
package grid

import (
	"errors"
	"fmt"

	"github.com/rileyhilliard/thermonitor/internal/sensor"
)

// Width is the fixed number of columns.
const Width = 3

// Validation errors returned by Add.
var (
	ErrBlankID     = errors.New("sensor id is blank")
	ErrDuplicateID = errors.New("sensor id already exists")
)

// Position addresses a cell by column and row.
type Position struct {
	Col, Row int
}

// Entry is the persisted identity of a sensor.
type Entry struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// Grid is not safe for concurrent use; the session lock guards it.
type Grid struct {
	cells     []*sensor.Sensor
	rows      int
	cursor    Position
	highlight string
}

// New returns an empty grid with the cursor at (0,0).
func New(highlight string) *Grid {
	return &Grid{highlight: highlight}
}

// Rows returns the current number of rows.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the fixed number of columns.
func (g *Grid) Cols() int { return Width }

// Cursor returns the selected position.
func (g *Grid) Cursor() Position { return g.cursor }

// HighlightColor returns the border color of the selected cell.
func (g *Grid) HighlightColor() string { return g.highlight }

// SetHighlightColor recolors the selected cell's border.
func (g *Grid) SetHighlightColor(c string) { g.highlight = c }

// At returns the sensor at (col,row), or nil when the cell is empty or out
// of bounds.
func (g *Grid) At(col, row int) *sensor.Sensor {
	if !g.inBounds(col, row) {
		return nil
	}
	return g.cells[row*Width+col]
}

// Selected returns the sensor under the cursor, or nil on an empty grid.
func (g *Grid) Selected() *sensor.Sensor {
	return g.At(g.cursor.Col, g.cursor.Row)
}

// Len returns the number of sensors on the grid.
func (g *Grid) Len() int {
	n := 0
	for _, s := range g.cells {
		if s != nil {
			n++
		}
	}
	return n
}

// Add places a new sensor in the first empty cell in reading order, growing
// the grid by one row when every cell is taken. A blank label becomes
// sensor.DefaultLabel. The cursor does not move.
func (g *Grid) Add(id, label string) error {
	if id == "" {
		return ErrBlankID
	}
	if !g.IsUniqueID(id) {
		return ErrDuplicateID
	}

	s := sensor.New(id, label)
	for i, c := range g.cells {
		if c == nil {
			g.cells[i] = s
			return nil
		}
	}

	g.rows++
	row := make([]*sensor.Sensor, Width)
	row[0] = s
	g.cells = append(g.cells, row...)
	return nil
}

// MoveCursor moves the cursor by (dx,dy). Moves that leave the grid or land
// on an empty cell are ignored; the return value reports whether it moved.
func (g *Grid) MoveCursor(dx, dy int) bool {
	target, ok := g.target(dx, dy)
	if !ok {
		return false
	}
	g.cursor = target
	return true
}

// MoveSensor swaps the selected sensor with the one at cursor+(dx,dy) and
// moves the cursor along with it. Validation matches MoveCursor.
func (g *Grid) MoveSensor(dx, dy int) bool {
	target, ok := g.target(dx, dy)
	if !ok {
		return false
	}
	from := g.index(g.cursor)
	to := g.index(target)
	g.cells[from], g.cells[to] = g.cells[to], g.cells[from]
	g.cursor = target
	return true
}

// Remove deletes the selected sensor and compacts the grid. Every later cell
// shifts back one place in reading order. If the cursor is left on an empty
// cell it moves to the new last sensor, and a fully empty last row is
// dropped.
func (g *Grid) Remove() (*sensor.Sensor, bool) {
	removed := g.Selected()
	if removed == nil {
		return nil, false
	}

	i := g.index(g.cursor)
	copy(g.cells[i:], g.cells[i+1:])
	g.cells[len(g.cells)-1] = nil

	if g.Selected() == nil {
		g.selectEndmost()
	}
	g.crop()

	if err := g.Check(); err != nil {
		panic(fmt.Sprintf("grid: invariant broken after remove: %v", err))
	}
	return removed, true
}

// IsUniqueID reports whether no sensor on the grid has the given id.
func (g *Grid) IsUniqueID(id string) bool {
	for _, s := range g.cells {
		if s != nil && s.ID == id {
			return false
		}
	}
	return true
}

// Rename relabels the selected sensor. It reports false on an empty grid.
func (g *Grid) Rename(label string) bool {
	s := g.Selected()
	if s == nil {
		return false
	}
	s.Label = label
	return true
}

// Sensors returns every sensor in row-major order.
func (g *Grid) Sensors() []*sensor.Sensor {
	out := make([]*sensor.Sensor, 0, len(g.cells))
	for _, s := range g.cells {
		if s != nil {
			out = append(out, s)
		}
	}
	return out
}

// List returns (id, label) pairs in row-major order, as persisted.
func (g *Grid) List() []Entry {
	sensors := g.Sensors()
	out := make([]Entry, len(sensors))
	for i, s := range sensors {
		out[i] = Entry{ID: s.ID, Label: s.Label}
	}
	return out
}

// Check verifies the grid invariants: unique ids, no empty row before the
// last, no empty last row, and a cursor on an occupied cell whenever the
// grid holds a sensor.
func (g *Grid) Check() error {
	if len(g.cells) != g.rows*Width {
		return fmt.Errorf("arena holds %d cells for %d rows", len(g.cells), g.rows)
	}

	seen := make(map[string]bool)
	for _, s := range g.cells {
		if s == nil {
			continue
		}
		if seen[s.ID] {
			return fmt.Errorf("duplicate id %q", s.ID)
		}
		seen[s.ID] = true
	}

	for r := 0; r < g.rows; r++ {
		if g.rowEmpty(r) {
			return fmt.Errorf("row %d of %d is empty", r, g.rows)
		}
	}

	if len(seen) > 0 && g.Selected() == nil {
		return fmt.Errorf("cursor (%d,%d) is on an empty cell", g.cursor.Col, g.cursor.Row)
	}
	return nil
}

func (g *Grid) selectEndmost() {
	c := g.cursor
	if c.Col > 0 && g.At(c.Col-1, c.Row) != nil {
		g.cursor = Position{Col: c.Col - 1, Row: c.Row}
		return
	}
	if c.Row > 0 && g.At(0, c.Row-1) != nil {
		col := 0
		for col+1 < Width && g.At(col+1, c.Row-1) != nil {
			col++
		}
		g.cursor = Position{Col: col, Row: c.Row - 1}
	}
}

func (g *Grid) crop() {
	if g.rows > 0 && g.rowEmpty(g.rows-1) {
		g.rows--
		g.cells = g.cells[:g.rows*Width]
	}
	if g.rows == 0 {
		g.cursor = Position{}
	}
}

func (g *Grid) rowEmpty(r int) bool {
	for c := 0; c < Width; c++ {
		if g.cells[r*Width+c] != nil {
			return false
		}
	}
	return true
}

func (g *Grid) target(dx, dy int) (Position, bool) {
	t := Position{Col: g.cursor.Col + dx, Row: g.cursor.Row + dy}
	if g.At(t.Col, t.Row) == nil {
		return Position{}, false
	}
	return t, true
}

func (g *Grid) inBounds(col, row int) bool {
	return col >= 0 && col < Width && row >= 0 && row < g.rows
}

func (g *Grid) index(p Position) int {
	return p.Row*Width + p.Col
}
