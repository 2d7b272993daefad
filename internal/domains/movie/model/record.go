package model

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"movie-platform-backend/internal/shared/utils"
)

// UntitledFallback is used when neither "title" nor "name" carries a value
const UntitledFallback = "Untitled"

// Column widths of the movies table; longer remote values are clipped
const (
	textColumnWidth     = 255
	languageColumnWidth = 16
)

// RawRecord is one untyped entry of the TMDb "results" array.
// Numbers are json.Number when decoded by the tmdb client.
type RawRecord map[string]any

// MovieRecord is a normalized remote record, ready for reconciliation.
// Every field except Title may be absent (nil).
type MovieRecord struct {
	TMDBID        *int64
	Title         string
	Slug          *string
	OriginalTitle *string
	Language      *string
	Overview      *string
	ReleaseDate   *time.Time
	PosterPath    *string
	BackdropPath  *string
	Popularity    *float64
	VoteAverage   *float64
	VoteCount     *int64
	IsSeries      bool
}

// HasExternalID reports whether the record can be reconciled
func (r *MovieRecord) HasExternalID() bool {
	return r.TMDBID != nil
}

// Normalize maps a raw TMDb record into the internal movie schema.
// It never fails: missing or wrongly typed values become absent.
func Normalize(raw RawRecord) MovieRecord {
	record := MovieRecord{
		TMDBID:        intField(raw, "id"),
		Title:         clip(firstNonEmpty(raw, "title", "name"), textColumnWidth),
		OriginalTitle: clipField(stringField(raw, "original_title"), textColumnWidth),
		Language:      clipField(stringField(raw, "original_language"), languageColumnWidth),
		Overview:      stringField(raw, "overview"),
		ReleaseDate:   dateField(raw, "release_date"),
		PosterPath:    clipField(stringField(raw, "poster_path"), textColumnWidth),
		BackdropPath:  clipField(stringField(raw, "backdrop_path"), textColumnWidth),
		Popularity:    floatField(raw, "popularity"),
		VoteAverage:   floatField(raw, "vote_average"),
		VoteCount:     intField(raw, "vote_count"),
	}

	if mediaType := stringField(raw, "media_type"); mediaType != nil && *mediaType == "tv" {
		record.IsSeries = true
	}

	record.Slug = buildSlug(record)

	return record
}

// NormalizeAll normalizes a batch preserving input order
func NormalizeAll(raws []RawRecord) []MovieRecord {
	records := make([]MovieRecord, 0, len(raws))
	for _, raw := range raws {
		records = append(records, Normalize(raw))
	}
	return records
}

func firstNonEmpty(raw RawRecord, keys ...string) string {
	for _, key := range keys {
		if value := stringField(raw, key); value != nil && strings.TrimSpace(*value) != "" {
			return *value
		}
	}
	return UntitledFallback
}

func stringField(raw RawRecord, key string) *string {
	value, ok := raw[key].(string)
	if !ok {
		return nil
	}
	return &value
}

func dateField(raw RawRecord, key string) *time.Time {
	value := stringField(raw, key)
	if value == nil || *value == "" {
		return nil
	}

	date, err := time.Parse(DateLayout, *value)
	if err != nil {
		return nil
	}
	return &date
}

func floatField(raw RawRecord, key string) *float64 {
	var value float64

	switch v := raw[key].(type) {
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return nil
		}
		value = f
	case float64:
		value = v
	case int:
		value = float64(v)
	case int64:
		value = float64(v)
	default:
		return nil
	}

	if math.IsNaN(value) || math.IsInf(value, 0) {
		return nil
	}
	return &value
}

// intField accepts integral numbers that fit an INTEGER column; 42.0 is fine, 42.5 is absent
func intField(raw RawRecord, key string) *int64 {
	var value int64

	switch v := raw[key].(type) {
	case json.Number:
		if i, err := v.Int64(); err == nil {
			value = i
			break
		}
		f, err := v.Float64()
		if err != nil || !integralInRange(f) {
			return nil
		}
		value = int64(f)
	case float64:
		if !integralInRange(v) {
			return nil
		}
		value = int64(v)
	case int:
		value = int64(v)
	case int64:
		value = v
	default:
		return nil
	}

	if value > math.MaxInt32 || value < math.MinInt32 {
		return nil
	}
	return &value
}

func integralInRange(f float64) bool {
	return f == math.Trunc(f) && f < math.MaxInt64 && f >= math.MinInt64
}

// clip cuts s to at most n characters, as VARCHAR(n) counts them
func clip(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}

func clipField(value *string, n int) *string {
	if value == nil {
		return nil
	}
	clipped := clip(*value, n)
	return &clipped
}

// buildSlug: "the-matrix-1999", falling back to "movie-<tmdb_id>" for titles without latin characters
func buildSlug(record MovieRecord) *string {
	slug := utils.GenerateSlug(record.Title)
	if slug == "" || record.Title == UntitledFallback {
		if record.TMDBID == nil {
			return nil
		}
		slug = fmt.Sprintf("movie-%d", *record.TMDBID)
	}

	suffix := ""
	if record.ReleaseDate != nil {
		suffix = fmt.Sprintf("-%d", record.ReleaseDate.Year())
	}
	slug = strings.TrimRight(clip(slug, textColumnWidth-len(suffix)), "-") + suffix

	return &slug
}
