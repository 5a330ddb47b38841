package govlbl

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeapPair_Bootstrap(t *testing.T) {
	hp := NewHeapPair(HEAP_SIZE)
	require.True(t, hp.Empty())

	hp.Process(Point2D{1, 2}, Point2D{3, 4})

	assert.Equal(t, 1, hp.L.Len())
	assert.Equal(t, 1, hp.R.Len())
	assert.Equal(t, Point2D{1, 2}, hp.L.Centroid())
	assert.Equal(t, Point2D{3, 4}, hp.R.Centroid())
	assert.Equal(t, DispUnknown, hp.L.Disp())
	assert.Equal(t, DispUnknown, hp.R.Disp())

	_, ok := hp.Select()
	assert.False(t, ok)
}

func TestHeapPair_Assignment(t *testing.T) {
	cases := []struct {
		name   string
		p1, p2 Point2D
		wantL  Point2D // Point expected to join L
		wantR  Point2D
	}{
		// L centroid (0,0), R centroid (10,0)
		{"P1NearL", Point2D{1, 0}, Point2D{5, 20}, Point2D{1, 0}, Point2D{5, 20}},
		{"P1NearR", Point2D{9, 0}, Point2D{5, 20}, Point2D{5, 20}, Point2D{9, 0}},
		{"P2NearL", Point2D{5, 20}, Point2D{1, 0}, Point2D{1, 0}, Point2D{5, 20}},
		{"P2NearR", Point2D{5, 20}, Point2D{9, 0}, Point2D{5, 20}, Point2D{9, 0}},
		// p1 is 5 from both centroids: p1-L is evaluated first and wins
		{"TieP1", Point2D{5, 0}, Point2D{5, 10}, Point2D{5, 0}, Point2D{5, 10}},
		// p1-R ties p2-L: p1-R comes first so the pair is swapped
		{"TieCross", Point2D{12, 0}, Point2D{-2, 0}, Point2D{-2, 0}, Point2D{12, 0}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			hp := NewHeapPair(HEAP_SIZE)
			hp.Process(Point2D{0, 0}, Point2D{10, 0})
			hp.Process(tc.p1, tc.p2)

			assert.Equal(t, []Point2D{{0, 0}, tc.wantL}, hp.L.Points())
			assert.Equal(t, []Point2D{{10, 0}, tc.wantR}, hp.R.Points())
		})
	}
}

func TestHeap_Dispersion(t *testing.T) {
	hp := NewHeapPair(HEAP_SIZE)
	hp.Process(Point2D{0, 0}, Point2D{100, 100})
	hp.Process(Point2D{2, 4}, Point2D{100, 101})

	// L: variances 1 and 4 give sqrt(1 + 16), not the DRMS sqrt(1 + 4)
	assert.Equal(t, Point2D{1, 2}, hp.L.Centroid())
	assert.InDelta(t, math.Sqrt(17), hp.L.Disp(), 1e-12)

	// R: variances 0 and 0.25
	assert.Equal(t, Point2D{100, 100.5}, hp.R.Centroid())
	assert.InDelta(t, 0.25, hp.R.Disp(), 1e-12)

	fix, ok := hp.Select()
	require.True(t, ok)
	assert.Equal(t, Fix{X: 100, Y: 100.5, Disp: 0.25}, fix)
}

func TestHeap_Overwrite(t *testing.T) {
	hp := NewHeapPair(2)
	hp.Process(Point2D{0, 0}, Point2D{50, 0})
	hp.Process(Point2D{1, 0}, Point2D{51, 0})
	hp.Process(Point2D{2, 0}, Point2D{52, 0})

	assert.Equal(t, 2, hp.L.Len())
	assert.ElementsMatch(t, []Point2D{{1, 0}, {2, 0}}, hp.L.Points())
	assert.ElementsMatch(t, []Point2D{{51, 0}, {52, 0}}, hp.R.Points())
	assert.Equal(t, Point2D{1.5, 0}, hp.L.Centroid())
	assert.Equal(t, Point2D{51.5, 0}, hp.R.Centroid())
	// Variances 0.25 and 0
	assert.InDelta(t, 0.25, hp.L.Disp(), 1e-12)
	assert.InDelta(t, 0.25, hp.R.Disp(), 1e-12)
}

func TestHeapPair_SelectTie(t *testing.T) {
	hp := NewHeapPair(HEAP_SIZE)
	hp.Process(Point2D{0, 0}, Point2D{10, 0})
	hp.Process(Point2D{0, 2}, Point2D{10, 2})

	// Equal dispersions select R
	fix, ok := hp.Select()
	require.True(t, ok)
	assert.Equal(t, 10.0, fix.X)
	assert.Equal(t, 1.0, fix.Y)
}

func TestHeapPair_Reset(t *testing.T) {
	hp := NewHeapPair(HEAP_SIZE)
	hp.Process(Point2D{0, 0}, Point2D{10, 0})
	hp.Process(Point2D{0, 2}, Point2D{10, 2})
	hp.Reset()

	assert.True(t, hp.Empty())
	assert.Equal(t, DispUnknown, hp.L.Disp())
	_, ok := hp.Select()
	assert.False(t, ok)
}
