package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"movie-reviews/internal/data/entity"
	"movie-reviews/internal/data/repository"

	"go.uber.org/zap"
)

// memStore backs the fake repositories with maps and emulates the schema's
// unique and foreign key constraints.
type memStore struct {
	mu      sync.Mutex
	nextID  int64
	users   map[int64]*entity.User
	movies  map[int64]*entity.Movie
	reviews map[int64]*entity.Review
}

func newMemStore() *memStore {
	return &memStore{
		users:   map[int64]*entity.User{},
		movies:  map[int64]*entity.Movie{},
		reviews: map[int64]*entity.Review{},
	}
}

func (s *memStore) id() int64 {
	s.nextID++
	return s.nextID
}

func (s *memStore) repository() *repository.Repository {
	return &repository.Repository{
		User:   &fakeUserRepo{s},
		Movie:  &fakeMovieRepo{s},
		Review: &fakeReviewRepo{s},
	}
}

// ==================== USERS ====================

type fakeUserRepo struct{ s *memStore }

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == user.Email {
			return fmt.Errorf("%w: users_email_key", repository.ErrConflict)
		}
	}
	user.ID = r.s.id()
	cp := *user
	r.s.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id int64) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[user.ID]; !ok {
		return repository.ErrNotFound
	}
	for id, u := range r.s.users {
		if id != user.ID && u.Email == user.Email {
			return fmt.Errorf("%w: users_email_key", repository.ErrConflict)
		}
	}
	cp := *user
	r.s.users[user.ID] = &cp
	return nil
}

// ==================== MOVIES ====================

type fakeMovieRepo struct{ s *memStore }

func (r *fakeMovieRepo) Create(ctx context.Context, movie *entity.Movie) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	movie.ID = r.s.id()
	cp := *movie
	r.s.movies[movie.ID] = &cp
	return nil
}

func (r *fakeMovieRepo) FindByID(ctx context.Context, id int64) (*entity.Movie, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m, ok := r.s.movies[id]
	if !ok {
		return nil, nil
	}
	cp := *m
	return &cp, nil
}

func (r *fakeMovieRepo) matching(filter repository.MovieFilter) []*entity.Movie {
	var out []*entity.Movie
	for _, m := range r.s.movies {
		if filter.Genre != nil && m.Genre != *filter.Genre {
			continue
		}
		if filter.Search != nil && !strings.Contains(strings.ToLower(m.Title), strings.ToLower(*filter.Search)) {
			continue
		}
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out
}

func (r *fakeMovieRepo) FindAll(ctx context.Context, filter repository.MovieFilter, limit, offset int) ([]*entity.MovieWithRating, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if offset < 0 {
		return nil, fmt.Errorf("OFFSET must not be negative: %d", offset)
	}
	movies := r.matching(filter)
	if offset >= len(movies) {
		return nil, nil
	}
	movies = movies[offset:]
	if len(movies) > limit {
		movies = movies[:limit]
	}
	out := make([]*entity.MovieWithRating, len(movies))
	for i, m := range movies {
		out[i] = &entity.MovieWithRating{Movie: *m, RatingStats: r.s.stats(m.ID)}
	}
	return out, nil
}

func (r *fakeMovieRepo) CountAll(ctx context.Context, filter repository.MovieFilter) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return int64(len(r.matching(filter))), nil
}

func (r *fakeMovieRepo) Update(ctx context.Context, movie *entity.Movie) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.movies[movie.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *movie
	r.s.movies[movie.ID] = &cp
	return nil
}

func (r *fakeMovieRepo) Delete(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.movies[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.movies, id)
	for rid, rv := range r.s.reviews {
		if rv.MovieID == id {
			delete(r.s.reviews, rid)
		}
	}
	return nil
}

// ==================== REVIEWS ====================

type fakeReviewRepo struct{ s *memStore }

func (r *fakeReviewRepo) Create(ctx context.Context, review *entity.Review) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.movies[review.MovieID]; !ok {
		return fmt.Errorf("%w: reviews_movie_id_fkey", repository.ErrForeignKey)
	}
	for _, rv := range r.s.reviews {
		if rv.UserID == review.UserID && rv.MovieID == review.MovieID {
			return fmt.Errorf("%w: reviews_user_id_movie_id_key", repository.ErrConflict)
		}
	}
	review.ID = r.s.id()
	cp := *review
	r.s.reviews[review.ID] = &cp
	return nil
}

func (r *fakeReviewRepo) FindByID(ctx context.Context, id int64) (*entity.Review, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rv, ok := r.s.reviews[id]
	if !ok {
		return nil, nil
	}
	cp := *rv
	return &cp, nil
}

func (r *fakeReviewRepo) FindDetailByID(ctx context.Context, id int64) (*entity.ReviewDetail, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rv, ok := r.s.reviews[id]
	if !ok {
		return nil, nil
	}
	detail := &entity.ReviewDetail{Review: *rv}
	if u, ok := r.s.users[rv.UserID]; ok {
		detail.User = u.Summary()
	}
	if m, ok := r.s.movies[rv.MovieID]; ok {
		detail.Movie = *m
	}
	return detail, nil
}

func (r *fakeReviewRepo) sorted(keep func(*entity.Review) bool) []*entity.Review {
	var out []*entity.Review
	for _, rv := range r.s.reviews {
		if keep(rv) {
			out = append(out, rv)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *fakeReviewRepo) FindByMovieID(ctx context.Context, movieID int64) ([]*entity.ReviewWithUser, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.ReviewWithUser
	for _, rv := range r.sorted(func(rv *entity.Review) bool { return rv.MovieID == movieID }) {
		item := &entity.ReviewWithUser{Review: *rv}
		if u, ok := r.s.users[rv.UserID]; ok {
			item.User = u.Summary()
		}
		out = append(out, item)
	}
	return out, nil
}

func (r *fakeReviewRepo) FindByUserID(ctx context.Context, userID int64) ([]*entity.ReviewWithMovie, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.ReviewWithMovie
	for _, rv := range r.sorted(func(rv *entity.Review) bool { return rv.UserID == userID }) {
		item := &entity.ReviewWithMovie{Review: *rv}
		if m, ok := r.s.movies[rv.MovieID]; ok {
			item.Movie = *m
		}
		out = append(out, item)
	}
	return out, nil
}

func (r *fakeReviewRepo) Update(ctx context.Context, review *entity.Review) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.reviews[review.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *review
	r.s.reviews[review.ID] = &cp
	return nil
}

func (r *fakeReviewRepo) Delete(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.reviews[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.reviews, id)
	return nil
}

func (r *fakeReviewRepo) GetMovieRatingStats(ctx context.Context, movieID int64) (*entity.RatingStats, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stats := r.s.stats(movieID)
	return &stats, nil
}

// stats must be called with mu held.
func (s *memStore) stats(movieID int64) entity.RatingStats {
	var sum, count int64
	for _, rv := range s.reviews {
		if rv.MovieID == movieID {
			sum += int64(rv.Rating)
			count++
		}
	}
	if count == 0 {
		return entity.RatingStats{}
	}
	return entity.RatingStats{AverageRating: float64(sum) / float64(count), ReviewCount: count}
}

// ==================== SEED HELPERS ====================

func (s *memStore) addUser(email string) *entity.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := &entity.User{Base: entity.Base{ID: s.id()}, Email: email}
	s.users[u.ID] = u
	return u
}

// addMovieWithID seeds a movie under a fixed id.
func (s *memStore) addMovieWithID(id int64, title, genre string) *entity.Movie {
	s.mu.Lock()
	defer s.mu.Unlock()
	m := &entity.Movie{Base: entity.Base{ID: id}, Title: title, Genre: genre}
	s.movies[id] = m
	if id > s.nextID {
		s.nextID = id
	}
	return m
}

func (s *memStore) addMovie(title, genre string) *entity.Movie {
	s.mu.Lock()
	id := s.nextID + 1
	s.mu.Unlock()
	return s.addMovieWithID(id, title, genre)
}

func (s *memStore) reviewCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.reviews)
}

// fixedClock returns a controllable now func.
type fixedClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFixedClock() *fixedClock {
	return &fixedClock{t: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fixedClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func newTestReviewService(store *memStore, clock *fixedClock) *reviewService {
	return &reviewService{
		repo: store.repository(),
		log:  zap.NewNop(),
		now:  clock.Now,
	}
}
