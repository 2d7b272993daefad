package service

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5"

	"movie-platform-backend/internal/domains/movie/model"
	"movie-platform-backend/pkg/database"
)

// fakeRepository is an in-memory movies table keyed by tmdb_id
type fakeRepository struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]*model.Movie // by tmdb_id

	// committed by a concurrent transaction, survives our rollback
	external map[int64]bool

	// beforeInsert runs before each insert; a non-nil error aborts it
	beforeInsert func(tmdbID int64) error

	// afterList runs once a List result is computed, outside the lock
	afterList func()

	listCalls  int
	lastLimit  int
	lastOffset int
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{rows: map[int64]*model.Movie{}, external: map[int64]bool{}}
}

func (r *fakeRepository) snapshot() (map[int64]model.Movie, int64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := make(map[int64]model.Movie, len(r.rows))
	for k, v := range r.rows {
		copied[k] = *v
	}
	return copied, r.nextID
}

func (r *fakeRepository) restore(rows map[int64]model.Movie, nextID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	restored := make(map[int64]*model.Movie, len(rows))
	for k, v := range rows {
		movie := v
		restored[k] = &movie
	}
	for k := range r.external {
		restored[k] = r.rows[k]
	}
	r.rows = restored
	r.nextID = max(nextID, r.nextID)
}

// commitExternal stores a row as if committed by another transaction
func (r *fakeRepository) commitExternal(record model.MovieRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	r.rows[*record.TMDBID] = toMovie(r.nextID, &record)
	r.external[*record.TMDBID] = true
}

func (r *fakeRepository) FindByTMDBIDWithTx(ctx context.Context, tx pgx.Tx, tmdbID int64) (*model.Movie, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	movie, ok := r.rows[tmdbID]
	if !ok {
		return nil, nil
	}
	copied := *movie
	return &copied, nil
}

func (r *fakeRepository) InsertWithTx(ctx context.Context, tx pgx.Tx, record *model.MovieRecord) (int64, error) {
	if r.beforeInsert != nil {
		if err := r.beforeInsert(*record.TMDBID); err != nil {
			return 0, err
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.rows[*record.TMDBID]; exists {
		return 0, model.NewReconcileConflictError(errors.New("duplicate key value violates unique constraint \"uq_movies_tmdb_id\""))
	}

	r.nextID++
	r.rows[*record.TMDBID] = toMovie(r.nextID, record)
	return r.nextID, nil
}

func (r *fakeRepository) UpdateWithTx(ctx context.Context, tx pgx.Tx, id int64, record *model.MovieRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rows[*record.TMDBID] = toMovie(id, record)
	return nil
}

func (r *fakeRepository) List(ctx context.Context, limit, offset int) ([]*model.Movie, error) {
	if hook := r.afterList; hook != nil {
		defer hook()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.listCalls++
	r.lastLimit, r.lastOffset = limit, offset

	all := make([]*model.Movie, 0, len(r.rows))
	for _, m := range r.rows {
		copied := *m
		all = append(all, &copied)
	}
	sort.Slice(all, func(i, j int) bool {
		pi, pj := popularity(all[i]), popularity(all[j])
		if pi != pj {
			return pi > pj
		}
		return all[i].ID < all[j].ID
	})

	if offset >= len(all) {
		return []*model.Movie{}, nil
	}
	end := min(offset+limit, len(all))
	return all[offset:end], nil
}

func (r *fakeRepository) Count(ctx context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rows), nil
}

func (r *fakeRepository) GetByID(ctx context.Context, id int64) (*model.Movie, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, m := range r.rows {
		if m.ID == id {
			copied := *m
			return &copied, nil
		}
	}
	return nil, nil
}

func popularity(m *model.Movie) float64 {
	if m.Popularity == nil {
		return 0
	}
	return *m.Popularity
}

func toMovie(id int64, r *model.MovieRecord) *model.Movie {
	movie := &model.Movie{
		ID:            id,
		TMDBID:        *r.TMDBID,
		Slug:          r.Slug,
		Title:         r.Title,
		OriginalTitle: r.OriginalTitle,
		Language:      r.Language,
		Overview:      r.Overview,
		ReleaseDate:   r.ReleaseDate,
		PosterPath:    r.PosterPath,
		BackdropPath:  r.BackdropPath,
		IsSeries:      r.IsSeries,
		Popularity:    r.Popularity,
		VoteAverage:   r.VoteAverage,
	}
	if r.VoteCount != nil {
		count := int(*r.VoteCount)
		movie.VoteCount = &count
	}
	return movie
}

// fakeTxRunner restores the repository snapshot when fn fails
type fakeTxRunner struct {
	repo *fakeRepository
}

func (f *fakeTxRunner) WithTransaction(ctx context.Context, fn database.TxFunc) error {
	rows, nextID := f.repo.snapshot()
	if err := fn(nil); err != nil {
		f.repo.restore(rows, nextID)
		return err
	}
	return nil
}

type fakeFetcher struct {
	records []model.RawRecord
	err     error
	windows []model.TrendingWindow
}

func (f *fakeFetcher) FetchTrending(ctx context.Context, window model.TrendingWindow) ([]model.RawRecord, error) {
	f.windows = append(f.windows, window)
	return f.records, f.err
}

// fakeCache stores JSON like the Redis implementation
type fakeCache struct {
	mu      sync.Mutex
	data    map[string][]byte
	failGet bool
	failSet bool
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: map[string][]byte{}}
}

func (c *fakeCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.failGet {
		return false, errors.New("connection refused")
	}
	raw, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (c *fakeCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.failSet {
		return errors.New("connection refused")
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.data[key] = raw
	return nil
}

func (c *fakeCache) Incr(ctx context.Context, key string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var value int64
	if raw, ok := c.data[key]; ok {
		if err := json.Unmarshal(raw, &value); err != nil {
			return 0, err
		}
	}
	value++
	c.data[key] = []byte(strconv.FormatInt(value, 10))
	return value, nil
}

func (c *fakeCache) Delete(ctx context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, k := range keys {
		delete(c.data, k)
	}
	return nil
}

func (c *fakeCache) DeletePattern(ctx context.Context, pattern string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	prefix := strings.TrimSuffix(pattern, "*")
	for k := range c.data {
		if strings.HasPrefix(k, prefix) {
			delete(c.data, k)
		}
	}
	return nil
}

func (c *fakeCache) Ping(ctx context.Context) error { return nil }

// listKeys returns the cached list pages, without the generation counter
func (c *fakeCache) listKeys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	keys := make([]string, 0, len(c.data))
	for k := range c.data {
		if strings.HasPrefix(k, "movies:list:") {
			keys = append(keys, k)
		}
	}
	return keys
}

type fakeEnqueuer struct {
	tasks []*asynq.Task
	err   error
}

func (f *fakeEnqueuer) EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.tasks = append(f.tasks, task)
	return &asynq.TaskInfo{ID: "task-1", Queue: "ingest", Type: task.Type()}, nil
}

type fakeUploader struct {
	keys []string
	err  error
}

func (f *fakeUploader) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.keys = append(f.keys, key)
	return "http://minio.local/movies/" + key, nil
}
