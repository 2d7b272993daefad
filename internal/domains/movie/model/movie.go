package model

import "time"

// DateLayout is the ISO calendar date format used by TMDb and the API
const DateLayout = "2006-01-02"

// Movie is a stored row of the movies table
type Movie struct {
	ID            int64      `db:"id"`
	TMDBID        int64      `db:"tmdb_id"`
	Slug          *string    `db:"slug"`
	Title         string     `db:"title"`
	OriginalTitle *string    `db:"original_title"`
	Language      *string    `db:"language"`
	Overview      *string    `db:"overview"`
	ReleaseDate   *time.Time `db:"release_date"`
	Runtime       *int       `db:"runtime"`
	Budget        *int64     `db:"budget"`
	Revenue       *int64     `db:"revenue"`
	PosterPath    *string    `db:"poster_path"`
	BackdropPath  *string    `db:"backdrop_path"`
	IMDbID        *string    `db:"imdb_id"`
	IsSeries      bool       `db:"is_series"`
	Popularity    *float64   `db:"popularity"`
	VoteAverage   *float64   `db:"vote_average"`
	VoteCount     *int       `db:"vote_count"`
}

// MovieView is the API representation of a movie.
// Optional numeric fields are always present and default to zero.
type MovieView struct {
	ID            int64   `json:"id"`
	TMDBID        int64   `json:"tmdb_id"`
	Title         string  `json:"title"`
	OriginalTitle *string `json:"original_title"`
	Language      *string `json:"language"`
	Overview      *string `json:"overview"`
	ReleaseDate   *string `json:"release_date"`
	PosterPath    *string `json:"poster_path"`
	BackdropPath  *string `json:"backdrop_path"`
	Popularity    float64 `json:"popularity"`
	VoteAverage   float64 `json:"vote_average"`
	VoteCount     int     `json:"vote_count"`
}

// ToView coalesces absent numerics to zero; stored values are not touched
func (m *Movie) ToView() *MovieView {
	view := &MovieView{
		ID:            m.ID,
		TMDBID:        m.TMDBID,
		Title:         m.Title,
		OriginalTitle: m.OriginalTitle,
		Language:      m.Language,
		Overview:      m.Overview,
		PosterPath:    m.PosterPath,
		BackdropPath:  m.BackdropPath,
	}

	if m.ReleaseDate != nil {
		date := m.ReleaseDate.Format(DateLayout)
		view.ReleaseDate = &date
	}
	if m.Popularity != nil {
		view.Popularity = *m.Popularity
	}
	if m.VoteAverage != nil {
		view.VoteAverage = *m.VoteAverage
	}
	if m.VoteCount != nil {
		view.VoteCount = *m.VoteCount
	}

	return view
}

// ToViews converts a page of movies preserving order
func ToViews(movies []*Movie) []*MovieView {
	views := make([]*MovieView, 0, len(movies))
	for _, m := range movies {
		views = append(views, m.ToView())
	}
	return views
}
