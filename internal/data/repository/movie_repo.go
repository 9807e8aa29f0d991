package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"movie-reviews/internal/data/entity"
	"movie-reviews/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// MovieFilter narrows FindAll/CountAll. Nil fields are ignored.
type MovieFilter struct {
	Genre  *string
	Search *string // case-insensitive substring of the title
}

type MovieRepository interface {
	Create(ctx context.Context, movie *entity.Movie) error
	FindByID(ctx context.Context, id int64) (*entity.Movie, error)
	FindAll(ctx context.Context, filter MovieFilter, limit, offset int) ([]*entity.MovieWithRating, error)
	CountAll(ctx context.Context, filter MovieFilter) (int64, error)
	Update(ctx context.Context, movie *entity.Movie) error
	Delete(ctx context.Context, id int64) error
}

type movieRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewMovieRepository(db database.PgxIface, log *zap.Logger) MovieRepository {
	return &movieRepository{
		db:  db,
		log: log.With(zap.String("repository", "movie")),
	}
}

const movieColumns = `id, title, overview, homepage, img_url, genre, created_at, updated_at`

func movieScanTargets(movie *entity.Movie) []any {
	return []any{
		&movie.ID,
		&movie.Title,
		&movie.Overview,
		&movie.Homepage,
		&movie.ImgURL,
		&movie.Genre,
		&movie.CreatedAt,
		&movie.UpdatedAt,
	}
}

func (r *movieRepository) Create(ctx context.Context, movie *entity.Movie) error {
	query := `
		INSERT INTO movies (title, overview, homepage, img_url, genre, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		movie.Title,
		movie.Overview,
		movie.Homepage,
		movie.ImgURL,
		movie.Genre,
		movie.CreatedAt,
		movie.UpdatedAt,
	).Scan(&movie.ID, &movie.CreatedAt, &movie.UpdatedAt)

	if err != nil {
		r.log.Error("Failed to create movie",
			zap.Error(err),
			zap.String("title", movie.Title),
		)
		return fmt.Errorf("create movie %q: %w", movie.Title, err)
	}

	return nil
}

func (r *movieRepository) FindByID(ctx context.Context, id int64) (*entity.Movie, error) {
	query := `SELECT ` + movieColumns + ` FROM movies WHERE id = $1`

	var movie entity.Movie
	err := r.db.QueryRow(ctx, query, id).Scan(movieScanTargets(&movie)...)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find movie by ID",
			zap.Error(err),
			zap.Int64("movie_id", id),
		)
		return nil, fmt.Errorf("find movie by ID %d: %w", id, err)
	}

	return &movie, nil
}

// whereClause renders the filter starting at placeholder $start.
func (f MovieFilter) whereClause(start int) (string, []any) {
	var conds []string
	var args []any

	if f.Genre != nil && *f.Genre != "" {
		args = append(args, *f.Genre)
		conds = append(conds, fmt.Sprintf("m.genre = $%d", start+len(args)-1))
	}
	if f.Search != nil && *f.Search != "" {
		args = append(args, "%"+escapeLike(*f.Search)+"%")
		conds = append(conds, fmt.Sprintf("m.title ILIKE $%d", start+len(args)-1))
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// FindAll lists movies with their rating aggregate, newest first.
func (r *movieRepository) FindAll(ctx context.Context, filter MovieFilter, limit, offset int) ([]*entity.MovieWithRating, error) {
	where, args := filter.whereClause(1)

	var queryBuilder strings.Builder
	queryBuilder.WriteString(`
		SELECT m.id, m.title, m.overview, m.homepage, m.img_url, m.genre, m.created_at, m.updated_at,
		       COALESCE(AVG(rv.rating), 0)::float8 AS average_rating,
		       COUNT(rv.id) AS review_count
		FROM movies m
		LEFT JOIN reviews rv ON rv.movie_id = m.id
	`)
	queryBuilder.WriteString(where)
	queryBuilder.WriteString(fmt.Sprintf(" GROUP BY m.id ORDER BY m.id DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2))
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		r.log.Error("Failed to find all movies",
			zap.Error(err),
			zap.Int("offset", offset),
			zap.Int("limit", limit),
		)
		return nil, fmt.Errorf("find movies: %w", err)
	}
	defer rows.Close()

	movies := make([]*entity.MovieWithRating, 0)
	for rows.Next() {
		var movie entity.MovieWithRating
		targets := append(movieScanTargets(&movie.Movie), &movie.AverageRating, &movie.ReviewCount)
		if err := rows.Scan(targets...); err != nil {
			r.log.Error("Failed to scan movie row", zap.Error(err))
			return nil, fmt.Errorf("scan movie: %w", err)
		}
		movies = append(movies, &movie)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate movie rows: %w", err)
	}

	r.log.Debug("Movies found",
		zap.Int("count", len(movies)),
		zap.Int("offset", offset),
		zap.Int("limit", limit),
	)

	return movies, nil
}

func (r *movieRepository) CountAll(ctx context.Context, filter MovieFilter) (int64, error) {
	where, args := filter.whereClause(1)
	query := `SELECT COUNT(*) FROM movies m` + where

	var total int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		r.log.Error("Failed to count movies", zap.Error(err))
		return 0, fmt.Errorf("count movies: %w", err)
	}

	return total, nil
}

func (r *movieRepository) Update(ctx context.Context, movie *entity.Movie) error {
	query := `
		UPDATE movies
		SET title = $2, overview = $3, homepage = $4, img_url = $5, genre = $6, updated_at = $7
		WHERE id = $1
		RETURNING ` + movieColumns

	var updated entity.Movie
	err := r.db.QueryRow(ctx, query,
		movie.ID,
		movie.Title,
		movie.Overview,
		movie.Homepage,
		movie.ImgURL,
		movie.Genre,
		movie.UpdatedAt,
	).Scan(movieScanTargets(&updated)...)

	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		r.log.Error("Failed to update movie",
			zap.Error(err),
			zap.Int64("movie_id", movie.ID),
		)
		return fmt.Errorf("update movie %d: %w", movie.ID, err)
	}

	*movie = updated
	return nil
}

// Delete removes the movie; its reviews go with it through ON DELETE CASCADE.
func (r *movieRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM movies WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete movie",
			zap.Error(err),
			zap.Int64("movie_id", id),
		)
		return fmt.Errorf("delete movie %d: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	r.log.Info("Movie deleted", zap.Int64("movie_id", id))
	return nil
}
