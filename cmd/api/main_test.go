package main

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"

	"github.com/mroobert/movies-api/internal/config"
	"github.com/mroobert/movies-api/internal/data"
	"github.com/rs/zerolog"
)

// stubMovieStore is an in-memory MovieStore used by the handler tests. When
// forcedErr is set every method fails with it, standing in for a broken
// database connection. insertErr and updateErr fail only the matching
// mutation, standing in for a constraint violation raised after the
// uniqueness check reported the title free.
type stubMovieStore struct {
	mu        sync.Mutex
	movies    map[int64]data.Movie
	nextID    int64
	forcedErr error
	insertErr error
	updateErr error
}

func newStubMovieStore(seed ...data.Movie) *stubMovieStore {
	s := &stubMovieStore{
		movies: make(map[int64]data.Movie),
		nextID: 1,
	}
	for _, m := range seed {
		s.movies[m.ID] = m
		if m.ID >= s.nextID {
			s.nextID = m.ID + 1
		}
	}
	return s
}

func (s *stubMovieStore) ReadAll(ctx context.Context) ([]data.Movie, error) {
	if s.forcedErr != nil {
		return nil, s.forcedErr
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]int64, 0, len(s.movies))
	for id := range s.movies {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	movies := []data.Movie{}
	for _, id := range ids {
		movies = append(movies, s.movies[id])
	}
	return movies, nil
}

func (s *stubMovieStore) Read(ctx context.Context, id int64) (*data.Movie, error) {
	if s.forcedErr != nil {
		return nil, s.forcedErr
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	movie, ok := s.movies[id]
	if !ok {
		return nil, data.ErrRecordNotFound
	}
	return &movie, nil
}

func (s *stubMovieStore) Insert(ctx context.Context, movie *data.Movie) error {
	if s.forcedErr != nil {
		return s.forcedErr
	}
	if s.insertErr != nil {
		return s.insertErr
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	movie.ID = s.nextID
	s.nextID++
	s.movies[movie.ID] = *movie
	return nil
}

func (s *stubMovieStore) InsertWithID(ctx context.Context, movie *data.Movie) error {
	if s.forcedErr != nil {
		return s.forcedErr
	}
	if s.insertErr != nil {
		return s.insertErr
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.movies[movie.ID] = *movie
	if movie.ID >= s.nextID {
		s.nextID = movie.ID + 1
	}
	return nil
}

func (s *stubMovieStore) Update(ctx context.Context, movie *data.Movie) error {
	if s.forcedErr != nil {
		return s.forcedErr
	}
	if s.updateErr != nil {
		return s.updateErr
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.movies[movie.ID]; !ok {
		return data.ErrRecordNotFound
	}
	s.movies[movie.ID] = *movie
	return nil
}

func (s *stubMovieStore) Delete(ctx context.Context, id int64) error {
	if s.forcedErr != nil {
		return s.forcedErr
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.movies[id]; !ok {
		return data.ErrRecordNotFound
	}
	delete(s.movies, id)
	return nil
}

func (s *stubMovieStore) TitleTaken(ctx context.Context, title string, excludeID int64) (bool, error) {
	if s.forcedErr != nil {
		return false, s.forcedErr
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for id, movie := range s.movies {
		if movie.Title == title && id != excludeID {
			return true, nil
		}
	}
	return false, nil
}

// newTestApplication builds an application around the given store with the
// rate limiter disabled and logging discarded.
func newTestApplication(store data.MovieStore) *application {
	cfg := &config.Config{
		Env:  "test",
		HTTP: config.HTTPConfig{Port: 4000},
	}

	return &application{
		config:       cfg,
		logger:       zerolog.Nop(),
		repositories: data.Repositories{Movies: store},
	}
}

// performRequest routes one request through the full middleware chain and
// returns the recorded response.
func performRequest(handler http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var rdr io.Reader
	if body != "" {
		rdr = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, rdr)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}
