package service

import "fmt"

// List pages are keyed by a generation counter. Reconcile bumps it, so a page
// computed from a read that raced an ingest lands under a retired generation
// and is never served; the pattern delete only reclaims memory early.
const (
	movieListCachePattern  = "movies:list:*"
	movieListGenerationKey = "movies:generation"
)

func movieListCacheKey(generation int64, limit, offset int) string {
	return fmt.Sprintf("movies:list:%d:%d:%d", generation, limit, offset)
}
