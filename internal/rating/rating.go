// Package rating picks the best element of a list by score.
package rating

// Rating is an element together with its score and its position in the
// list it was rated from.
type Rating[T any] struct {
	Element T
	Score   float32
	Index   int
}

// Best rates every element and returns the highest scoring one. The first
// element wins ties. ok is false when elements is empty.
func Best[T any](elements []T, rate func(T) float32) (best Rating[T], ok bool) {
	return BestIndexed(elements, func(e T, _ int) float32 {
		return rate(e)
	})
}

// BestIndexed is Best for rating functions that need the element's index,
// such as queue family checks that are made per family index.
func BestIndexed[T any](elements []T, rate func(T, int) float32) (best Rating[T], ok bool) {
	for i, e := range elements {
		score := rate(e, i)
		if !ok || score > best.Score {
			best = Rating[T]{Element: e, Score: score, Index: i}
			ok = true
		}
	}
	return best, ok
}

// All rates every element and returns the ratings in input order.
func All[T any](elements []T, rate func(T, int) float32) []Rating[T] {
	ratings := make([]Rating[T], 0, len(elements))
	for i, e := range elements {
		ratings = append(ratings, Rating[T]{Element: e, Score: rate(e, i), Index: i})
	}
	return ratings
}
