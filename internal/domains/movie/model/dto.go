package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

// TrendingWindow is the TMDb trending time window
type TrendingWindow string

const (
	WindowDay  TrendingWindow = "day"
	WindowWeek TrendingWindow = "week"
)

// ParseWindow accepts "day" or "week"; empty means fallback
func ParseWindow(value string, fallback TrendingWindow) (TrendingWindow, error) {
	switch TrendingWindow(value) {
	case "":
		return fallback, nil
	case WindowDay, WindowWeek:
		return TrendingWindow(value), nil
	default:
		return "", NewInvalidWindow(value)
	}
}

// ListMoviesRequest - GET /movies
type ListMoviesRequest struct {
	Limit  int
	Offset int
}

// Clamp caps Limit at MaxListLimit
func (r *ListMoviesRequest) Clamp() {
	if r.Limit > MaxListLimit {
		r.Limit = MaxListLimit
	}
}

func (r ListMoviesRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Limit,
			validation.Min(1).Error("limit must be at least 1"),
			validation.Max(MaxListLimit).Error("limit must not exceed 100"),
		),
		validation.Field(&r.Offset,
			validation.Min(0).Error("offset must not be negative"),
		),
	)
}

// MovieList is a page of movies plus the table size
type MovieList struct {
	Movies []*MovieView
	Total  int
	Limit  int
	Offset int
}

// IngestResult reports the effect of one reconciliation run.
// Total counts every fetched record, Skipped those without an external id.
type IngestResult struct {
	Inserted int `json:"inserted"`
	Updated  int `json:"updated"`
	Skipped  int `json:"skipped"`
	Total    int `json:"total"`
}

// IngestTrendingPayload is the asynq payload of the ingest task
type IngestTrendingPayload struct {
	Window TrendingWindow `json:"window,omitempty"`
}

// EnqueueResult - 202 response of an async ingest request
type EnqueueResult struct {
	TaskID string `json:"task_id"`
	Queue  string `json:"queue"`
}

// Placeholder is a rendered poster placeholder.
// URL is set only when the image was stored in object storage.
type Placeholder struct {
	Data        []byte
	ContentType string
	URL         string
}
