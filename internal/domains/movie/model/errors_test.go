package model

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestMapErrorToHTTP(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"configuration", NewConfigurationError("TMDB_API_KEY is not set"), http.StatusInternalServerError, CodeConfiguration},
		{"remote fetch", NewRemoteFetchError(401, "bad key", nil), http.StatusBadGateway, CodeRemoteFetch},
		{"conflict", NewReconcileConflictError(errors.New("23505")), http.StatusConflict, CodeReconcileConflict},
		{"wrapped conflict", fmt.Errorf("ingest: %w", NewReconcileConflictError(nil)), http.StatusConflict, CodeReconcileConflict},
		{"not found", NewMovieNotFound(9), http.StatusNotFound, CodeMovieNotFound},
		{"invalid id", NewInvalidMovieID("abc"), http.StatusBadRequest, CodeInvalidMovieID},
		{"invalid page", NewInvalidPageParams(nil), http.StatusBadRequest, CodeInvalidPageParams},
		{"normalization", ErrNormalization, http.StatusUnprocessableEntity, CodeNormalization},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, _, code := MapErrorToHTTP(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantCode, code)
		})
	}
}

func TestNewRemoteFetchError_TruncatesBody(t *testing.T) {
	err := NewRemoteFetchError(500, strings.Repeat("x", 500), nil)

	assert.Equal(t, 500, err.StatusCode)
	assert.Len(t, err.Body, bodyExcerptLimit)
	assert.True(t, IsRemoteFetchError(err))
}

func TestNewRemoteFetchError_KeepsRuneBoundary(t *testing.T) {
	body := strings.Repeat("a", bodyExcerptLimit-1) + "é"

	err := NewRemoteFetchError(502, body, nil)

	assert.True(t, utf8.ValidString(err.Body))
	assert.Equal(t, strings.Repeat("a", bodyExcerptLimit-1), err.Body)
}

func TestMovieError_IsMatchesCode(t *testing.T) {
	cause := errors.New("duplicate key value violates unique constraint")
	err := fmt.Errorf("reconcile: %w", NewReconcileConflictError(cause))

	assert.True(t, errors.Is(err, ErrReconcileConflict))
	assert.True(t, errors.Is(err, cause))
	assert.False(t, errors.Is(err, ErrMovieNotFound))
	assert.True(t, IsReconcileConflict(err))
	assert.Equal(t, CodeReconcileConflict, GetErrorCode(err))
}
