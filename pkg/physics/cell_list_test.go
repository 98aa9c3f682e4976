// pkg/physics/cell_list_test.go
package physics

import (
	"sort"
	"testing"
)

func sortedCopy(indices []int) []int {
	out := append([]int(nil), indices...)
	sort.Ints(out)
	return out
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestCellList_QueryNearby_ReturnsNeighborhood(t *testing.T) {
	cells := NewCellList(Vector2D{}, 100, 100, 10)

	cells.Insert(0, Vector2D{X: 15, Y: 15}) // center cell
	cells.Insert(1, Vector2D{X: 5, Y: 5})   // diagonal neighbor
	cells.Insert(2, Vector2D{X: 25, Y: 15}) // right neighbor
	cells.Insert(3, Vector2D{X: 55, Y: 55}) // far away

	got := sortedCopy(cells.QueryNearby(Vector2D{X: 15, Y: 15}))
	expected := []int{0, 1, 2}

	if !equalInts(got, expected) {
		t.Errorf("QueryNearby() = %v, expected %v", got, expected)
	}
}

func TestCellList_QueryNearby_ClipsAtGridEdge(t *testing.T) {
	cells := NewCellList(Vector2D{}, 100, 100, 10)

	cells.Insert(0, Vector2D{X: 5, Y: 5})
	cells.Insert(1, Vector2D{X: 15, Y: 5})

	// Query in the corner cell: only the current cell and in-bounds
	// neighbors contribute, without panicking on out-of-range cells.
	got := sortedCopy(cells.QueryNearby(Vector2D{X: 1, Y: 1}))
	expected := []int{0, 1}

	if !equalInts(got, expected) {
		t.Errorf("QueryNearby() = %v, expected %v", got, expected)
	}
}

func TestCellList_QueryNearby_NeverMissesWithinOneCellWidth(t *testing.T) {
	cells := NewCellList(Vector2D{}, 100, 100, 10)

	// A particle one cell width away from the query point must be found.
	cells.Insert(7, Vector2D{X: 39, Y: 30})
	got := cells.QueryNearby(Vector2D{X: 30.5, Y: 30.5})

	found := false
	for _, idx := range got {
		if idx == 7 {
			found = true
		}
	}
	if !found {
		t.Errorf("QueryNearby() = %v, expected it to include index 7", got)
	}
}

func TestCellList_Insert_IgnoresOutOfBoundsPositions(t *testing.T) {
	cells := NewCellList(Vector2D{}, 50, 50, 10)

	cells.Insert(0, Vector2D{X: -5, Y: 10})
	cells.Insert(1, Vector2D{X: 10, Y: 120})

	if got := cells.QueryNearby(Vector2D{X: 5, Y: 10}); len(got) != 0 {
		t.Errorf("QueryNearby() = %v, expected out-of-bounds inserts to be dropped", got)
	}
}

func TestCellList_QueryNearby_OffsetOrigin(t *testing.T) {
	cells := NewCellList(Vector2D{X: -50, Y: -50}, 100, 100, 10)

	cells.Insert(0, Vector2D{X: -45, Y: -45})
	got := cells.QueryNearby(Vector2D{X: -44, Y: -46})

	if len(got) != 1 || got[0] != 0 {
		t.Errorf("QueryNearby() = %v, expected [0]", got)
	}
}

func TestCellList_Clear_EmptiesAllCells(t *testing.T) {
	cells := NewCellList(Vector2D{}, 100, 100, 10)
	cells.Insert(0, Vector2D{X: 15, Y: 15})
	cells.Clear()

	if got := cells.QueryNearby(Vector2D{X: 15, Y: 15}); len(got) != 0 {
		t.Errorf("QueryNearby() after Clear() = %v, expected empty", got)
	}
}
