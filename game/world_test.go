package game

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testHandle(i int) Handle {
	return Handle{index: uint32(i), gen: 1}
}

func TestCircleOverlapIsStrict(t *testing.T) {
	a := Circle{Center: Vec2{0, 0}, Radius: 5}

	assert.True(t, a.Overlaps(Circle{Center: Vec2{9, 0}, Radius: 5}))
	assert.False(t, a.Overlaps(Circle{Center: Vec2{10, 0}, Radius: 5}), "touching is not overlapping")
	assert.False(t, a.Overlaps(Circle{Center: Vec2{20, 0}, Radius: 5}))
}

func TestRectClamp(t *testing.T) {
	r := DefaultConfig().Arena.Bounds()

	assert.Equal(t, Vec2{r.Max.X, r.Min.Y}, r.Clamp(Vec2{1e6, -1e6}))
	assert.Equal(t, Vec2{1, 2}, r.Clamp(Vec2{1, 2}))
	assert.True(t, r.Contains(r.Max))
	assert.False(t, r.Contains(Vec2{r.Max.X + 1, 0}))
}

func TestWorldToCellClamps(t *testing.T) {
	w := NewWorld(DefaultConfig().Arena)

	x, y := w.WorldToCell(Vec2{-1e9, 1e9})
	assert.Equal(t, 0, x)
	assert.Equal(t, len(w.Cells[0])-1, y)
	assert.NotNil(t, w.GetCell(x, y))
	assert.Nil(t, w.GetCell(-1, 0))
}

func TestWorldQueryReportsMultiCellColliderOnce(t *testing.T) {
	w := NewWorld(DefaultConfig().Arena)
	big := testHandle(1)
	w.Insert(big, Circle{Center: Vec2{0, 0}, Radius: 200})

	hits := w.Query(Circle{Center: Vec2{10, 10}, Radius: 300}, nil)
	assert.Equal(t, []Handle{big}, hits)
	assert.Equal(t, 1, w.Len())
}

func TestWorldUpdateAndRemove(t *testing.T) {
	w := NewWorld(DefaultConfig().Arena)
	h := testHandle(3)

	w.Insert(h, Circle{Center: Vec2{-300, -200}, Radius: 10})
	w.Update(h, Circle{Center: Vec2{300, 200}, Radius: 10})

	assert.Empty(t, w.Query(Circle{Center: Vec2{-300, -200}, Radius: 5}, nil))
	assert.Equal(t, []Handle{h}, w.Query(Circle{Center: Vec2{300, 200}, Radius: 5}, nil))

	w.Remove(h)
	w.Remove(h)
	assert.Empty(t, w.Query(Circle{Center: Vec2{300, 200}, Radius: 5}, nil))
	assert.Equal(t, 0, w.Len())

	for x := range w.Cells {
		for _, cell := range w.Cells[x] {
			assert.Equal(t, 0, cell.Count)
		}
	}
}

func TestQueryAppendsToBuffer(t *testing.T) {
	w := NewWorld(DefaultConfig().Arena)
	w.Insert(testHandle(2), Circle{Radius: 5})

	buf := []Handle{testHandle(9)}
	buf = w.Query(Circle{Radius: 5}, buf)
	assert.Equal(t, []Handle{testHandle(9), testHandle(2)}, buf)
}

// Both index implementations must report identical, sorted results for the
// same sequence of inserts, moves and removals
func TestIndexesAgree(t *testing.T) {
	arena := DefaultConfig().Arena
	grid := NewWorld(arena)
	brute := NewBruteForceIndex()
	rng := rand.New(rand.NewPCG(7, 11))

	randomCircle := func() Circle {
		return Circle{
			// Some colliders sit outside the arena on purpose
			Center: Vec2{rng.Float64()*1600 - 800, rng.Float64()*1200 - 600},
			Radius: 1 + rng.Float64()*80,
		}
	}

	const n = 200
	for i := 1; i <= n; i++ {
		c := randomCircle()
		grid.Insert(testHandle(i), c)
		brute.Insert(testHandle(i), c)
	}

	for round := 0; round < 50; round++ {
		for i := 0; i < 20; i++ {
			h := testHandle(1 + rng.IntN(n))
			if rng.IntN(4) == 0 {
				grid.Remove(h)
				brute.Remove(h)
				continue
			}
			c := randomCircle()
			grid.Update(h, c)
			brute.Update(h, c)
		}

		q := randomCircle()
		q.Radius *= 3
		require.Equal(t, brute.Query(q, nil), grid.Query(q, nil), "round %d", round)
	}

	grid.Clear()
	brute.Clear()
	assert.Empty(t, grid.Query(Circle{Radius: 1e4}, nil))
	assert.Empty(t, brute.Query(Circle{Radius: 1e4}, nil))
}
