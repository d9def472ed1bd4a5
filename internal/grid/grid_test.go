package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGrid(t *testing.T, ids ...string) *Grid {
	t.Helper()
	g := New("#BF40FF")
	for _, id := range ids {
		require.NoError(t, g.Add(id, "label-"+id))
	}
	return g
}

func ids(g *Grid) []string {
	var out []string
	for _, e := range g.List() {
		out = append(out, e.ID)
	}
	return out
}

func TestNew(t *testing.T) {
	g := New("#BF40FF")

	assert.Equal(t, 0, g.Rows())
	assert.Equal(t, Width, g.Cols())
	assert.Equal(t, Position{}, g.Cursor())
	assert.Nil(t, g.Selected())
	assert.Equal(t, "#BF40FF", g.HighlightColor())
	assert.NoError(t, g.Check())
}

func TestAdd_FillsRowsInReadingOrder(t *testing.T) {
	g := newGrid(t, "a", "b", "c", "d")

	assert.Equal(t, 2, g.Rows())
	assert.Equal(t, "a", g.At(0, 0).ID)
	assert.Equal(t, "b", g.At(1, 0).ID)
	assert.Equal(t, "c", g.At(2, 0).ID)
	assert.Equal(t, "d", g.At(0, 1).ID)
	assert.Nil(t, g.At(1, 1))
	assert.Equal(t, Position{}, g.Cursor(), "adding never moves the cursor")
	assert.Equal(t, "a", g.Selected().ID)
}

func TestAdd_Validation(t *testing.T) {
	g := New("")

	assert.ErrorIs(t, g.Add("", "x"), ErrBlankID)
	assert.Equal(t, 0, g.Rows())

	require.NoError(t, g.Add("dup", "x"))
	assert.ErrorIs(t, g.Add("dup", "y"), ErrDuplicateID)
	assert.Equal(t, []Entry{{ID: "dup", Label: "x"}}, g.List())
}

func TestAdd_BlankLabelDefaults(t *testing.T) {
	g := New("")
	require.NoError(t, g.Add("abc", ""))
	assert.Equal(t, "Sensor", g.Selected().Label)
}

func TestMoveCursor(t *testing.T) {
	g := newGrid(t, "a", "b", "c", "d")

	assert.True(t, g.MoveCursor(1, 0))
	assert.True(t, g.MoveCursor(1, 0))
	assert.Equal(t, "c", g.Selected().ID)
	assert.Equal(t, Position{Col: 2, Row: 0}, g.Cursor())

	assert.False(t, g.MoveCursor(1, 0), "out of bounds")
	assert.Equal(t, Position{Col: 2, Row: 0}, g.Cursor())

	assert.False(t, g.MoveCursor(0, 1), "(2,1) is empty")
	assert.Equal(t, Position{Col: 2, Row: 0}, g.Cursor())

	assert.False(t, g.MoveCursor(0, -1))
	assert.True(t, g.MoveCursor(-2, 1))
	assert.Equal(t, "d", g.Selected().ID)
}

func TestMoveCursor_EmptyGrid(t *testing.T) {
	g := New("")
	for _, d := range [][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
		assert.False(t, g.MoveCursor(d[0], d[1]))
		assert.False(t, g.MoveSensor(d[0], d[1]))
	}
	assert.Equal(t, Position{}, g.Cursor())
}

func TestMoveSensor_Swaps(t *testing.T) {
	g := newGrid(t, "a", "b", "c", "d")

	assert.True(t, g.MoveSensor(1, 0))
	assert.Equal(t, []string{"b", "a", "c", "d"}, ids(g))
	assert.Equal(t, Position{Col: 1, Row: 0}, g.Cursor())
	assert.Equal(t, "a", g.Selected().ID, "cursor follows the moved sensor")

	assert.False(t, g.MoveSensor(0, 1), "cannot move onto an empty cell")
	assert.Equal(t, []string{"b", "a", "c", "d"}, ids(g))

	assert.True(t, g.MoveSensor(-1, 0))
	assert.True(t, g.MoveSensor(0, 1))
	assert.Equal(t, []string{"d", "b", "c", "a"}, ids(g))
	assert.Equal(t, Position{Col: 0, Row: 1}, g.Cursor())
}

func TestRemove_CompactsAndCrops(t *testing.T) {
	g := newGrid(t, "a", "b", "c", "d")
	require.True(t, g.MoveCursor(1, 0))

	removed, ok := g.Remove()

	require.True(t, ok)
	assert.Equal(t, "b", removed.ID)
	assert.Equal(t, "c", g.At(1, 0).ID)
	assert.Equal(t, "d", g.At(2, 0).ID)
	assert.Nil(t, g.At(0, 1))
	assert.Equal(t, 1, g.Rows())
	assert.Equal(t, Position{Col: 1, Row: 0}, g.Cursor())
	assert.Equal(t, "c", g.Selected().ID)
}

func TestRemove_LastSensorSelectsLeftNeighbour(t *testing.T) {
	g := newGrid(t, "a", "b", "c")
	require.True(t, g.MoveCursor(2, 0))

	_, ok := g.Remove()

	require.True(t, ok)
	assert.Equal(t, Position{Col: 1, Row: 0}, g.Cursor())
	assert.Equal(t, "b", g.Selected().ID)
}

func TestRemove_FirstInRowSelectsEndOfRowAbove(t *testing.T) {
	g := newGrid(t, "a", "b", "c", "d")
	require.True(t, g.MoveCursor(0, 1))

	_, ok := g.Remove()

	require.True(t, ok)
	assert.Equal(t, 1, g.Rows())
	assert.Equal(t, Position{Col: 2, Row: 0}, g.Cursor())
	assert.Equal(t, "c", g.Selected().ID)
}

func TestRemove_Everything(t *testing.T) {
	g := newGrid(t, "a", "b")

	for i := 0; i < 2; i++ {
		_, ok := g.Remove()
		require.True(t, ok)
	}

	assert.Equal(t, 0, g.Rows())
	assert.Equal(t, Position{}, g.Cursor())
	assert.Empty(t, g.List())

	_, ok := g.Remove()
	assert.False(t, ok)
}

func TestRemove_MiddleKeepsFullRows(t *testing.T) {
	g := newGrid(t, "a", "b", "c", "d", "e", "f", "g")

	_, ok := g.Remove()
	require.True(t, ok)

	assert.Equal(t, []string{"b", "c", "d", "e", "f", "g"}, ids(g))
	assert.Equal(t, 2, g.Rows(), "row 2 emptied and was dropped")
	assert.Equal(t, "b", g.Selected().ID)
}

func TestRename(t *testing.T) {
	g := New("")
	assert.False(t, g.Rename("x"))

	require.NoError(t, g.Add("a", "old"))
	assert.True(t, g.Rename("new"))
	assert.Equal(t, "new", g.Selected().Label)
}

func TestIsUniqueID(t *testing.T) {
	g := newGrid(t, "a", "b")
	assert.False(t, g.IsUniqueID("a"))
	assert.True(t, g.IsUniqueID("z"))
}

func TestHighlightColor(t *testing.T) {
	g := New("#BF40FF")
	g.SetHighlightColor("#FF0055")
	assert.Equal(t, "#FF0055", g.HighlightColor())
}

func TestSensorsAndLen(t *testing.T) {
	g := newGrid(t, "a", "b", "c", "d")
	assert.Equal(t, 4, g.Len())
	assert.Len(t, g.Sensors(), 4)
	assert.Equal(t, "d", g.Sensors()[3].ID)
}

func TestAt_OutOfBounds(t *testing.T) {
	g := newGrid(t, "a")
	assert.Nil(t, g.At(-1, 0))
	assert.Nil(t, g.At(3, 0))
	assert.Nil(t, g.At(0, 1))
}
