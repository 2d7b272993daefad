package repository

import (
	"fmt"
	"strings"

	"movie-platform-backend/internal/domains/movie/model"
)

// recordColumn binds one movies column to its MovieRecord field
type recordColumn struct {
	name  string
	value func(r *model.MovieRecord) any
}

// recordColumns is every column written by reconciliation, in parameter order.
// runtime, budget, revenue and imdb_id are not part of the trending payload and are never touched.
var recordColumns = []recordColumn{
	{"tmdb_id", func(r *model.MovieRecord) any { return r.TMDBID }},
	{"slug", func(r *model.MovieRecord) any { return r.Slug }},
	{"title", func(r *model.MovieRecord) any { return r.Title }},
	{"original_title", func(r *model.MovieRecord) any { return r.OriginalTitle }},
	{"language", func(r *model.MovieRecord) any { return r.Language }},
	{"overview", func(r *model.MovieRecord) any { return r.Overview }},
	{"release_date", func(r *model.MovieRecord) any { return r.ReleaseDate }},
	{"poster_path", func(r *model.MovieRecord) any { return r.PosterPath }},
	{"backdrop_path", func(r *model.MovieRecord) any { return r.BackdropPath }},
	{"is_series", func(r *model.MovieRecord) any { return r.IsSeries }},
	{"popularity", func(r *model.MovieRecord) any { return r.Popularity }},
	{"vote_average", func(r *model.MovieRecord) any { return r.VoteAverage }},
	{"vote_count", func(r *model.MovieRecord) any { return r.VoteCount }},
}

var (
	insertMovieQuery = buildInsertQuery()
	updateMovieQuery = buildUpdateQuery()
)

// recordArgs returns the SQL parameters of a record in recordColumns order
func recordArgs(record *model.MovieRecord) []any {
	args := make([]any, 0, len(recordColumns))
	for _, col := range recordColumns {
		args = append(args, col.value(record))
	}
	return args
}

func buildInsertQuery() string {
	names := make([]string, 0, len(recordColumns))
	placeholders := make([]string, 0, len(recordColumns))
	for i, col := range recordColumns {
		names = append(names, col.name)
		placeholders = append(placeholders, fmt.Sprintf("$%d", i+1))
	}

	return fmt.Sprintf(
		"INSERT INTO movies (%s) VALUES (%s) RETURNING id",
		strings.Join(names, ", "),
		strings.Join(placeholders, ", "),
	)
}

// buildUpdateQuery: $1 is the row id, columns start at $2
func buildUpdateQuery() string {
	sets := make([]string, 0, len(recordColumns))
	for i, col := range recordColumns {
		sets = append(sets, fmt.Sprintf("%s = $%d", col.name, i+2))
	}

	return fmt.Sprintf("UPDATE movies SET %s WHERE id = $1", strings.Join(sets, ", "))
}
