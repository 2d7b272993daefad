package model

import (
	"errors"
	"fmt"
	"net/http"
	"unicode/utf8"
)

// Error codes of the movie domain
const (
	CodeConfiguration     = "CONFIGURATION_ERROR"
	CodeRemoteFetch       = "REMOTE_FETCH_ERROR"
	CodeNormalization     = "NORMALIZATION_ERROR" // reserved, normalization is total
	CodeReconcileConflict = "RECONCILE_CONFLICT"
	CodeReconcile         = "RECONCILE_ERROR"
	CodeMovieNotFound     = "MOVIE_NOT_FOUND"
	CodeInvalidMovieID    = "INVALID_MOVIE_ID"
	CodeInvalidPageParams = "INVALID_PAGE_PARAMS"
	CodeInvalidWindow     = "INVALID_TRENDING_WINDOW"
	CodeInvalidImageSize  = "INVALID_IMAGE_SIZE"
	CodeListMovies        = "LIST_MOVIES_ERROR"
	CodeEnqueueIngest     = "ENQUEUE_INGEST_ERROR"
	CodePlaceholder       = "PLACEHOLDER_ERROR"
)

// bodyExcerptLimit caps the remote body kept on a RemoteFetchError
const bodyExcerptLimit = 200

// MovieError is the base error of the movie domain
type MovieError struct {
	Code    string // unique error code (e.g. "RECONCILE_CONFLICT")
	Message string // human readable message
	Err     error  // underlying error

	// Populated for REMOTE_FETCH_ERROR only; StatusCode is 0 on transport failures
	StatusCode int
	Body       string
}

func (e *MovieError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *MovieError) Unwrap() error {
	return e.Err
}

// Is matches on Code so errors.Is(err, ErrReconcileConflict) works for any instance
func (e *MovieError) Is(target error) bool {
	var t *MovieError
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code
}

// ============================================
// SENTINELS
// ============================================

var (
	ErrConfiguration     = &MovieError{Code: CodeConfiguration, Message: "Service is not configured"}
	ErrRemoteFetch       = &MovieError{Code: CodeRemoteFetch, Message: "Remote catalog request failed"}
	ErrNormalization     = &MovieError{Code: CodeNormalization, Message: "Remote record could not be normalized"}
	ErrReconcileConflict = &MovieError{Code: CodeReconcileConflict, Message: "Concurrent ingest conflict, batch rolled back"}
	ErrMovieNotFound     = &MovieError{Code: CodeMovieNotFound, Message: "Movie not found"}
	ErrInvalidPageParams = &MovieError{Code: CodeInvalidPageParams, Message: "Invalid limit or offset"}
)

// ============================================
// FACTORIES
// ============================================

// NewConfigurationError: missing/invalid credential or connection settings
func NewConfigurationError(message string) *MovieError {
	return &MovieError{
		Code:    CodeConfiguration,
		Message: message,
	}
}

// NewRemoteFetchError keeps the status code and at most 200 bytes of the body
func NewRemoteFetchError(statusCode int, body string, err error) *MovieError {
	body = truncateBytes(body, bodyExcerptLimit)

	message := fmt.Sprintf("TMDb error %d", statusCode)
	if statusCode == 0 {
		message = "TMDb request failed"
	}
	if body != "" {
		message = fmt.Sprintf("%s: %s", message, body)
	}

	return &MovieError{
		Code:       CodeRemoteFetch,
		Message:    message,
		Err:        err,
		StatusCode: statusCode,
		Body:       body,
	}
}

// NewReconcileConflictError: unique violation while writing the batch
func NewReconcileConflictError(err error) *MovieError {
	return &MovieError{
		Code:    CodeReconcileConflict,
		Message: "Concurrent ingest conflict, batch rolled back",
		Err:     err,
	}
}

func NewReconcileError(err error) *MovieError {
	return &MovieError{
		Code:    CodeReconcile,
		Message: "Failed to reconcile movies",
		Err:     err,
	}
}

func NewMovieNotFound(id int64) *MovieError {
	return &MovieError{
		Code:    CodeMovieNotFound,
		Message: fmt.Sprintf("Movie %d not found", id),
	}
}

func NewInvalidMovieID(id string) *MovieError {
	return &MovieError{
		Code:    CodeInvalidMovieID,
		Message: fmt.Sprintf("Invalid movie ID: %s", id),
	}
}

func NewInvalidPageParams(err error) *MovieError {
	return &MovieError{
		Code:    CodeInvalidPageParams,
		Message: "Invalid limit or offset",
		Err:     err,
	}
}

func NewInvalidWindow(window string) *MovieError {
	return &MovieError{
		Code:    CodeInvalidWindow,
		Message: fmt.Sprintf("Trending window must be 'day' or 'week', got '%s'", window),
	}
}

func NewInvalidImageSize(value string) *MovieError {
	return &MovieError{
		Code:    CodeInvalidImageSize,
		Message: fmt.Sprintf("Invalid image size: %s", value),
	}
}

func NewListMoviesError(err error) *MovieError {
	return &MovieError{
		Code:    CodeListMovies,
		Message: "Failed to list movies",
		Err:     err,
	}
}

func NewEnqueueIngestError(err error) *MovieError {
	return &MovieError{
		Code:    CodeEnqueueIngest,
		Message: "Failed to enqueue ingest task",
		Err:     err,
	}
}

func NewPlaceholderError(err error) *MovieError {
	return &MovieError{
		Code:    CodePlaceholder,
		Message: "Failed to render placeholder",
		Err:     err,
	}
}

// ============================================
// CHECKS
// ============================================

func hasCode(err error, code string) bool {
	var movieErr *MovieError
	return errors.As(err, &movieErr) && movieErr.Code == code
}

func IsConfigurationError(err error) bool { return hasCode(err, CodeConfiguration) }

func IsRemoteFetchError(err error) bool { return hasCode(err, CodeRemoteFetch) }

func IsReconcileConflict(err error) bool { return hasCode(err, CodeReconcileConflict) }

func IsMovieNotFound(err error) bool { return hasCode(err, CodeMovieNotFound) }

// GetErrorCode returns the domain code or UNKNOWN_ERROR
func GetErrorCode(err error) string {
	var movieErr *MovieError
	if errors.As(err, &movieErr) {
		return movieErr.Code
	}
	return "UNKNOWN_ERROR"
}

// MapErrorToHTTP maps a domain error to (status, message, code)
func MapErrorToHTTP(err error) (int, string, string) {
	if err == nil {
		return http.StatusOK, "Success", ""
	}

	var movieErr *MovieError
	if !errors.As(err, &movieErr) {
		return http.StatusInternalServerError, "Internal server error", "INTERNAL_ERROR"
	}

	switch movieErr.Code {
	case CodeMovieNotFound:
		return http.StatusNotFound, movieErr.Message, movieErr.Code
	case CodeInvalidMovieID, CodeInvalidPageParams, CodeInvalidWindow, CodeInvalidImageSize:
		return http.StatusBadRequest, movieErr.Message, movieErr.Code
	case CodeNormalization:
		return http.StatusUnprocessableEntity, movieErr.Message, movieErr.Code
	case CodeReconcileConflict:
		return http.StatusConflict, movieErr.Message, movieErr.Code
	case CodeRemoteFetch:
		return http.StatusBadGateway, movieErr.Message, movieErr.Code
	default:
		// CONFIGURATION_ERROR and storage failures
		return http.StatusInternalServerError, movieErr.Message, movieErr.Code
	}
}

// truncateBytes cuts s to at most n bytes without splitting a rune
func truncateBytes(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
