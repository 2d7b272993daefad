package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"movie-platform-backend/internal/domains/movie/model"
)

type mockMovieService struct{ mock.Mock }

func (m *mockMovieService) ListMovies(ctx context.Context, req model.ListMoviesRequest) (*model.MovieList, error) {
	args := m.Called(ctx, req)
	if list, ok := args.Get(0).(*model.MovieList); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockMovieService) GetMovie(ctx context.Context, id int64) (*model.MovieView, error) {
	args := m.Called(ctx, id)
	if view, ok := args.Get(0).(*model.MovieView); ok {
		return view, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockIngestService struct{ mock.Mock }

func (m *mockIngestService) IngestTrending(ctx context.Context, window model.TrendingWindow) (*model.IngestResult, error) {
	args := m.Called(ctx, window)
	if result, ok := args.Get(0).(*model.IngestResult); ok {
		return result, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockIngestService) Reconcile(ctx context.Context, records []model.MovieRecord) (*model.IngestResult, error) {
	args := m.Called(ctx, records)
	if result, ok := args.Get(0).(*model.IngestResult); ok {
		return result, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockIngestService) EnqueueIngestTrending(ctx context.Context, window model.TrendingWindow) (*model.EnqueueResult, error) {
	args := m.Called(ctx, window)
	if result, ok := args.Get(0).(*model.EnqueueResult); ok {
		return result, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockPlaceholderService struct{ mock.Mock }

func (m *mockPlaceholderService) Render(ctx context.Context, movieID int64, width, height int) (*model.Placeholder, error) {
	args := m.Called(ctx, movieID, width, height)
	if p, ok := args.Get(0).(*model.Placeholder); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

type handlerFixture struct {
	router      *gin.Engine
	movies      *mockMovieService
	ingest      *mockIngestService
	placeholder *mockPlaceholderService
}

func newHandlerFixture() *handlerFixture {
	gin.SetMode(gin.TestMode)

	f := &handlerFixture{
		router:      gin.New(),
		movies:      &mockMovieService{},
		ingest:      &mockIngestService{},
		placeholder: &mockPlaceholderService{},
	}
	NewMovieHandler(f.movies, f.ingest, f.placeholder).RegisterRoutes(f.router.Group("/api"))
	return f
}

func (f *handlerFixture) do(method, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, httptest.NewRequest(method, target, nil))
	return w
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()

	var body struct {
		Success bool `json:"success"`
		Error   struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Success)
	return body.Error.Code
}

func TestListMovies(t *testing.T) {
	f := newHandlerFixture()
	f.movies.On("ListMovies", mock.Anything, model.ListMoviesRequest{Limit: 20, Offset: 0}).
		Return(&model.MovieList{
			Movies: []*model.MovieView{{ID: 1, TMDBID: 603, Title: "The Matrix", Popularity: 10}},
			Total:  7,
		}, nil)

	w := f.do(http.MethodGet, "/api/movies")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "7", w.Header().Get(TotalCountHeader))

	var movies []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &movies))
	require.Len(t, movies, 1)
	assert.Equal(t, "The Matrix", movies[0]["title"])
	assert.Equal(t, 0.0, movies[0]["vote_count"])
	f.movies.AssertExpectations(t)
}

func TestListMovies_PassesParams(t *testing.T) {
	f := newHandlerFixture()
	f.movies.On("ListMovies", mock.Anything, model.ListMoviesRequest{Limit: 1000, Offset: 40}).
		Return(&model.MovieList{Movies: []*model.MovieView{}, Total: 3}, nil)

	w := f.do(http.MethodGet, "/api/movies?limit=1000&offset=40")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestListMovies_InvalidParams(t *testing.T) {
	for _, query := range []string{"limit=abc", "offset=x", "limit=1.5"} {
		t.Run(query, func(t *testing.T) {
			f := newHandlerFixture()

			w := f.do(http.MethodGet, "/api/movies?"+query)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, model.CodeInvalidPageParams, errorCode(t, w))
			f.movies.AssertNotCalled(t, "ListMovies", mock.Anything, mock.Anything)
		})
	}

	t.Run("rejected by service", func(t *testing.T) {
		f := newHandlerFixture()
		f.movies.On("ListMovies", mock.Anything, mock.Anything).Return(nil, model.NewInvalidPageParams(nil))

		w := f.do(http.MethodGet, "/api/movies?limit=0")

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestGetMovie(t *testing.T) {
	f := newHandlerFixture()
	f.movies.On("GetMovie", mock.Anything, int64(1)).Return(&model.MovieView{ID: 1, Title: "The Matrix"}, nil)
	f.movies.On("GetMovie", mock.Anything, int64(2)).Return(nil, model.NewMovieNotFound(2))

	assert.Equal(t, http.StatusOK, f.do(http.MethodGet, "/api/movies/1").Code)

	w := f.do(http.MethodGet, "/api/movies/2")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, model.CodeMovieNotFound, errorCode(t, w))

	w = f.do(http.MethodGet, "/api/movies/abc")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, model.CodeInvalidMovieID, errorCode(t, w))
}

func TestGetPlaceholder(t *testing.T) {
	f := newHandlerFixture()
	f.placeholder.On("Render", mock.Anything, int64(1), 200, 300).Return(&model.Placeholder{
		Data:        []byte("png"),
		ContentType: "image/png",
		URL:         "http://minio/movies/placeholders/603.png",
	}, nil)

	w := f.do(http.MethodGet, "/api/movies/1/placeholder?w=200&h=300")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.Equal(t, "http://minio/movies/placeholders/603.png", w.Header().Get(PlaceholderURLHeader))
	assert.Equal(t, "png", w.Body.String())

	w = f.do(http.MethodGet, "/api/movies/1/placeholder?w=-5")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, model.CodeInvalidImageSize, errorCode(t, w))
}

func TestIngestTrending(t *testing.T) {
	t.Run("sync", func(t *testing.T) {
		f := newHandlerFixture()
		f.ingest.On("IngestTrending", mock.Anything, model.WindowDay).
			Return(&model.IngestResult{Inserted: 2, Updated: 1, Total: 3}, nil)

		w := f.do(http.MethodPost, "/api/ingest/trending?window=day")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"inserted":2,"updated":1,"skipped":0,"total":3}`, w.Body.String())
	})

	t.Run("alias uses the default window", func(t *testing.T) {
		f := newHandlerFixture()
		f.ingest.On("IngestTrending", mock.Anything, model.TrendingWindow("")).
			Return(&model.IngestResult{}, nil)

		w := f.do(http.MethodPost, "/api/ingest/tmdb/trending")

		assert.Equal(t, http.StatusOK, w.Code)
		f.ingest.AssertExpectations(t)
	})

	t.Run("async", func(t *testing.T) {
		f := newHandlerFixture()
		f.ingest.On("EnqueueIngestTrending", mock.Anything, model.WindowWeek).
			Return(&model.EnqueueResult{TaskID: "abc", Queue: "ingest"}, nil)

		w := f.do(http.MethodPost, "/api/ingest/trending?window=week&async=true")

		assert.Equal(t, http.StatusAccepted, w.Code)
		assert.JSONEq(t, `{"task_id":"abc","queue":"ingest"}`, w.Body.String())
		f.ingest.AssertNotCalled(t, "IngestTrending", mock.Anything, mock.Anything)
	})

	t.Run("invalid window", func(t *testing.T) {
		f := newHandlerFixture()

		w := f.do(http.MethodPost, "/api/ingest/trending?window=month")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, model.CodeInvalidWindow, errorCode(t, w))
	})

	errorCases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"missing credential", model.NewConfigurationError("TMDB_API_KEY is not set"), http.StatusInternalServerError, model.CodeConfiguration},
		{"remote failure", model.NewRemoteFetchError(401, "denied", nil), http.StatusBadGateway, model.CodeRemoteFetch},
		{"conflict", model.NewReconcileConflictError(nil), http.StatusConflict, model.CodeReconcileConflict},
	}

	for _, tc := range errorCases {
		t.Run(tc.name, func(t *testing.T) {
			f := newHandlerFixture()
			f.ingest.On("IngestTrending", mock.Anything, mock.Anything).Return(nil, tc.err)

			w := f.do(http.MethodPost, "/api/ingest/trending")

			assert.Equal(t, tc.status, w.Code)
			assert.Equal(t, tc.code, errorCode(t, w))
		})
	}
}
