package rating_test

import (
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/vkplayground/vkplayground/internal/rating"
)

func TestBest(t *testing.T) {
	c := qt.New(t)

	best, ok := rating.Best([]string{"a", "bbb", "cc"}, func(s string) float32 {
		return float32(len(s))
	})
	c.Assert(ok, qt.IsTrue)
	c.Assert(best.Element, qt.Equals, "bbb")
	c.Assert(best.Score, qt.Equals, float32(3))
	c.Assert(best.Index, qt.Equals, 1)
}

func TestBestFirstWinsTies(t *testing.T) {
	c := qt.New(t)

	best, ok := rating.Best([]int{7, 3, 9, 9, 1}, func(v int) float32 {
		if v == 9 {
			return 10
		}
		return 0
	})
	c.Assert(ok, qt.IsTrue)
	c.Assert(best.Index, qt.Equals, 2)
}

func TestBestNegativeScores(t *testing.T) {
	c := qt.New(t)

	best, ok := rating.Best([]float32{-5, -1, -3}, func(v float32) float32 { return v })
	c.Assert(ok, qt.IsTrue)
	c.Assert(best.Score, qt.Equals, float32(-1))
	c.Assert(best.Index, qt.Equals, 1)
}

func TestBestEmpty(t *testing.T) {
	c := qt.New(t)

	_, ok := rating.Best[int](nil, func(int) float32 { return 1 })
	c.Assert(ok, qt.IsFalse)
}

func TestBestIndexed(t *testing.T) {
	c := qt.New(t)

	supported := map[int]bool{2: true}
	best, ok := rating.BestIndexed([]string{"x", "y", "z"}, func(_ string, i int) float32 {
		if supported[i] {
			return 100
		}
		return -100
	})
	c.Assert(ok, qt.IsTrue)
	c.Assert(best.Element, qt.Equals, "z")
	c.Assert(best.Index, qt.Equals, 2)
}

func TestAll(t *testing.T) {
	c := qt.New(t)

	ratings := rating.All([]int{4, 5}, func(v, i int) float32 { return float32(v * i) })
	c.Assert(ratings, qt.DeepEquals, []rating.Rating[int]{
		{Element: 4, Score: 0, Index: 0},
		{Element: 5, Score: 5, Index: 1},
	})
}
