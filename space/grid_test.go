package space

import (
	"testing"

	"github.com/mlange-42/ark/ecs"

	"github.com/manifoldweb/simlab/components"
)

// newTestRefs creates n distinct refs backed by a throwaway entity store.
func newTestRefs(n int, kind Kind) []Ref {
	world := ecs.NewWorld()
	mapper := ecs.NewMap1[components.Position](world)
	refs := make([]Ref, n)
	for i := range refs {
		pos := components.Position{}
		refs[i] = Ref{Kind: kind, Entity: mapper.NewEntity(&pos)}
	}
	return refs
}

func mustGrid(t *testing.T, w, h int) *Grid {
	t.Helper()
	g, err := NewGrid(w, h)
	if err != nil {
		t.Fatalf("NewGrid(%d, %d) failed: %v", w, h, err)
	}
	return g
}

func TestNewGrid_RejectsNonPositiveDimensions(t *testing.T) {
	cases := []struct{ w, h int }{
		{0, 10},
		{10, 0},
		{-1, 10},
		{10, -1},
		{0, 0},
	}
	for _, c := range cases {
		if _, err := NewGrid(c.w, c.h); err == nil {
			t.Errorf("NewGrid(%d, %d): expected error, got nil", c.w, c.h)
		}
	}
}

func TestWrap(t *testing.T) {
	g := mustGrid(t, 20, 10)

	cases := []struct {
		x, y         int
		wantX, wantY int
	}{
		{0, 0, 0, 0},
		{19, 9, 19, 9},
		{20, 10, 0, 0},
		{-1, 0, 19, 0}, // moving left from x=0 lands on the far edge
		{0, -1, 0, 9},
		{-21, -11, 19, 9},
		{45, 23, 5, 3},
	}
	for _, c := range cases {
		gotX, gotY := g.Wrap(c.x, c.y)
		if gotX != c.wantX || gotY != c.wantY {
			t.Errorf("Wrap(%d, %d) = (%d, %d), want (%d, %d)", c.x, c.y, gotX, gotY, c.wantX, c.wantY)
		}
	}
}

func TestPlaceAndContents_MultiOccupancy(t *testing.T) {
	g := mustGrid(t, 5, 5)
	refs := newTestRefs(3, KindAgent)

	g.Place(refs[0], 2, 2)
	g.Place(refs[1], 2, 2)
	g.Place(refs[2], 4, 4)

	got := g.Contents(2, 2)
	if len(got) != 2 {
		t.Fatalf("Contents(2, 2): got %d occupants, want 2", len(got))
	}
	if got[0] != refs[0] || got[1] != refs[1] {
		t.Errorf("Contents(2, 2) = %+v, want refs in insertion order", got)
	}

	// Contents must be a snapshot, not a live alias.
	got[0] = refs[2]
	again := g.Contents(2, 2)
	if again[0] != refs[0] {
		t.Error("mutating the Contents result changed the grid cell")
	}
}

func TestPlace_WrapsCoordinates(t *testing.T) {
	g := mustGrid(t, 5, 5)
	ref := newTestRefs(1, KindResource)[0]

	g.Place(ref, -1, 7)

	pos := g.PositionOf(ref)
	if pos.X != 4 || pos.Y != 2 {
		t.Errorf("PositionOf after wrapped place = (%d, %d), want (4, 2)", pos.X, pos.Y)
	}
	if len(g.Contents(4, 2)) != 1 {
		t.Error("occupant not found at wrapped cell")
	}
}

func TestPlace_DuplicatePanics(t *testing.T) {
	g := mustGrid(t, 5, 5)
	ref := newTestRefs(1, KindAgent)[0]
	g.Place(ref, 0, 0)

	defer func() {
		if recover() == nil {
			t.Error("placing an already-placed ref should panic")
		}
	}()
	g.Place(ref, 1, 1)
}

func TestMove_RelocatesBetweenCells(t *testing.T) {
	g := mustGrid(t, 20, 20)
	ref := newTestRefs(1, KindAgent)[0]
	g.Place(ref, 0, 0)

	g.Move(ref, -1, -1)

	pos := g.PositionOf(ref)
	if pos.X != 19 || pos.Y != 19 {
		t.Errorf("position after Move(-1, -1) = (%d, %d), want (19, 19)", pos.X, pos.Y)
	}
	if len(g.Contents(0, 0)) != 0 {
		t.Error("old cell still contains the moved ref")
	}
	if len(g.Contents(19, 19)) != 1 {
		t.Error("new cell does not contain the moved ref")
	}
}

func TestMove_PreservesCellOrder(t *testing.T) {
	g := mustGrid(t, 5, 5)
	refs := newTestRefs(3, KindResource)
	for _, r := range refs {
		g.Place(r, 1, 1)
	}

	g.Move(refs[1], 2, 2)

	got := g.Contents(1, 1)
	if len(got) != 2 || got[0] != refs[0] || got[1] != refs[2] {
		t.Errorf("remaining occupants out of order: %+v", got)
	}
}

func TestMove_UntrackedRefPanics(t *testing.T) {
	g := mustGrid(t, 5, 5)
	ref := newTestRefs(1, KindAgent)[0]

	defer func() {
		if recover() == nil {
			t.Error("moving an untracked ref should panic")
		}
	}()
	g.Move(ref, 1, 1)
}

func TestPositionOf_UntrackedRefPanics(t *testing.T) {
	g := mustGrid(t, 5, 5)
	ref := newTestRefs(1, KindAgent)[0]

	defer func() {
		if recover() == nil {
			t.Error("position query for an untracked ref should panic")
		}
	}()
	g.PositionOf(ref)
}

func TestNeighborhood_FullMoore(t *testing.T) {
	g := mustGrid(t, 5, 5)

	got := g.Neighborhood(2, 2, false)
	if len(got) != 8 {
		t.Fatalf("interior neighborhood: got %d cells, want 8", len(got))
	}
	for _, p := range got {
		if p.X == 2 && p.Y == 2 {
			t.Error("neighborhood contains the center cell")
		}
	}
}

func TestNeighborhood_ToroidalWrap(t *testing.T) {
	g := mustGrid(t, 10, 10)

	got := g.Neighborhood(0, 0, false)
	if len(got) != 8 {
		t.Fatalf("corner neighborhood: got %d cells, want 8", len(got))
	}

	want := map[components.Position]bool{
		{X: 9, Y: 9}: true, {X: 0, Y: 9}: true, {X: 1, Y: 9}: true,
		{X: 9, Y: 0}: true, {X: 1, Y: 0}: true,
		{X: 9, Y: 1}: true, {X: 0, Y: 1}: true, {X: 1, Y: 1}: true,
	}
	for _, p := range got {
		if !want[p] {
			t.Errorf("unexpected neighbor %+v", p)
		}
		delete(want, p)
	}
	if len(want) != 0 {
		t.Errorf("missing neighbors: %v", want)
	}
}

func TestNeighborhood_IncludeCenter(t *testing.T) {
	g := mustGrid(t, 5, 5)

	got := g.Neighborhood(2, 2, true)
	if len(got) != 9 {
		t.Fatalf("got %d cells, want 9", len(got))
	}

	found := false
	for _, p := range got {
		if p.X == 2 && p.Y == 2 {
			found = true
		}
	}
	if !found {
		t.Error("center cell missing with includeCenter=true")
	}
}

func TestNeighborhood_TinyGridDeduplicates(t *testing.T) {
	// On a 2x2 torus the eight offsets collapse onto the three other cells.
	g := mustGrid(t, 2, 2)

	got := g.Neighborhood(0, 0, false)
	if len(got) != 3 {
		t.Fatalf("2x2 neighborhood: got %d cells, want 3", len(got))
	}
	seen := make(map[components.Position]bool)
	for _, p := range got {
		if seen[p] {
			t.Errorf("duplicate neighbor %+v", p)
		}
		seen[p] = true
	}
}

func TestNeighborhood_OneByOneIsEmpty(t *testing.T) {
	g := mustGrid(t, 1, 1)

	if got := g.Neighborhood(0, 0, false); len(got) != 0 {
		t.Errorf("1x1 neighborhood without center: got %d cells, want 0", len(got))
	}
	if got := g.Neighborhood(0, 0, true); len(got) != 1 {
		t.Errorf("1x1 neighborhood with center: got %d cells, want 1", len(got))
	}
}
