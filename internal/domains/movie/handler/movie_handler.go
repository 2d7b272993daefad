package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"movie-platform-backend/internal/domains/movie/model"
	"movie-platform-backend/internal/domains/movie/service"
	"movie-platform-backend/internal/shared/response"
)

const (
	TotalCountHeader     = "X-Total-Count"
	PlaceholderURLHeader = "X-Placeholder-URL"
)

// MovieHandler serves the read API and the on-demand ingest trigger
type MovieHandler struct {
	movieService       service.MovieService
	ingestService      service.IngestService
	placeholderService service.PlaceholderService
}

func NewMovieHandler(
	movieService service.MovieService,
	ingestService service.IngestService,
	placeholderService service.PlaceholderService,
) *MovieHandler {
	return &MovieHandler{
		movieService:       movieService,
		ingestService:      ingestService,
		placeholderService: placeholderService,
	}
}

// RegisterRoutes mounts the movie and ingest routes on group
func (h *MovieHandler) RegisterRoutes(group *gin.RouterGroup) {
	movies := group.Group("/movies")
	{
		movies.GET("", h.ListMovies)
		movies.GET("/:id", h.GetMovie)
		movies.GET("/:id/placeholder", h.GetPlaceholder)
	}

	ingest := group.Group("/ingest")
	{
		ingest.POST("/trending", h.IngestTrending)
		ingest.POST("/tmdb/trending", h.IngestTrending)
	}
}

// ListMovies handles GET /movies?limit=&offset=
func (h *MovieHandler) ListMovies(c *gin.Context) {
	limit, err := queryInt(c, "limit", model.DefaultListLimit)
	if err != nil {
		h.handleError(c, model.NewInvalidPageParams(err))
		return
	}

	offset, err := queryInt(c, "offset", 0)
	if err != nil {
		h.handleError(c, model.NewInvalidPageParams(err))
		return
	}

	list, err := h.movieService.ListMovies(c.Request.Context(), model.ListMoviesRequest{
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.Header(TotalCountHeader, strconv.Itoa(list.Total))
	c.JSON(http.StatusOK, list.Movies)
}

// GetMovie handles GET /movies/:id
func (h *MovieHandler) GetMovie(c *gin.Context) {
	id, ok := h.movieID(c)
	if !ok {
		return
	}

	movie, err := h.movieService.GetMovie(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, movie)
}

// GetPlaceholder handles GET /movies/:id/placeholder?w=&h=
func (h *MovieHandler) GetPlaceholder(c *gin.Context) {
	id, ok := h.movieID(c)
	if !ok {
		return
	}

	width, err := queryInt(c, "w", 0)
	if err != nil || width < 0 {
		h.handleError(c, model.NewInvalidImageSize(c.Query("w")))
		return
	}

	height, err := queryInt(c, "h", 0)
	if err != nil || height < 0 {
		h.handleError(c, model.NewInvalidImageSize(c.Query("h")))
		return
	}

	placeholder, err := h.placeholderService.Render(c.Request.Context(), id, width, height)
	if err != nil {
		h.handleError(c, err)
		return
	}

	if placeholder.URL != "" {
		c.Header(PlaceholderURLHeader, placeholder.URL)
	}
	c.Data(http.StatusOK, placeholder.ContentType, placeholder.Data)
}

// IngestTrending handles POST /ingest/trending?window=day|week&async=true
func (h *MovieHandler) IngestTrending(c *gin.Context) {
	window, err := model.ParseWindow(c.Query("window"), "")
	if err != nil {
		h.handleError(c, err)
		return
	}

	if async, _ := strconv.ParseBool(c.Query("async")); async {
		result, err := h.ingestService.EnqueueIngestTrending(c.Request.Context(), window)
		if err != nil {
			h.handleError(c, err)
			return
		}
		c.JSON(http.StatusAccepted, result)
		return
	}

	result, err := h.ingestService.IngestTrending(c.Request.Context(), window)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *MovieHandler) movieID(c *gin.Context) (int64, bool) {
	raw := c.Param("id")

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		h.handleError(c, model.NewInvalidMovieID(raw))
		return 0, false
	}
	return id, true
}

// handleError writes the error envelope and records the cause for the request logger
func (h *MovieHandler) handleError(c *gin.Context, err error) {
	_ = c.Error(err)

	statusCode, message, code := model.MapErrorToHTTP(err)

	var movieErr *model.MovieError
	if errors.As(err, &movieErr) && movieErr.Code == model.CodeInvalidPageParams && movieErr.Err != nil {
		response.ErrorWithDetails(c, statusCode, code, message, movieErr.Err.Error())
		return
	}

	response.ErrorResponse(c, statusCode, code, message)
}

// queryInt returns fallback when the parameter is absent
func queryInt(c *gin.Context, key string, fallback int) (int, error) {
	raw, ok := c.GetQuery(key)
	if !ok || raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}
