package model

import "time"

// Auxiliary tables created by the movies migration.
// No pipeline populates or reads them yet; the structs document their relations.

// Person is a cast or crew member (people)
type Person struct {
	ID          int64   `db:"id"`
	TMDBID      int64   `db:"tmdb_id"`
	Name        string  `db:"name"`
	ProfilePath *string `db:"profile_path"`
}

// Credit links a Person to a Movie (credits)
type Credit struct {
	ID        int64   `db:"id"`
	MovieID   int64   `db:"movie_id"`
	PersonID  int64   `db:"person_id"`
	Role      string  `db:"role"` // cast | crew
	Job       *string `db:"job"`
	Character *string `db:"character"`
}

// Source is a news outlet (sources), unique by URL
type Source struct {
	ID   int64  `db:"id"`
	Name string `db:"name"`
	URL  string `db:"url"`
}

// NewsItem references a Movie and a Source (news)
type NewsItem struct {
	ID          int64      `db:"id"`
	MovieID     *int64     `db:"movie_id"`
	Title       string     `db:"title"`
	Summary     *string    `db:"summary"`
	SourceID    *int64     `db:"source_id"`
	PublishedAt *time.Time `db:"published_at"`
}

// UserReview is a free-text review of a Movie (user_reviews)
type UserReview struct {
	ID         int64     `db:"id"`
	MovieID    int64     `db:"movie_id"`
	Rating     *int      `db:"rating"`
	ReviewText *string   `db:"review_text"`
	Author     *string   `db:"author"`
	CreatedAt  time.Time `db:"created_at"`
}
