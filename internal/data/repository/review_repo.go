package repository

import (
	"context"
	"errors"
	"fmt"

	"movie-reviews/internal/data/entity"
	"movie-reviews/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ReviewRepository interface {
	// Create inserts the review. A second review for the same (user, movie)
	// pair fails with ErrConflict; an unknown movie fails with ErrForeignKey.
	Create(ctx context.Context, review *entity.Review) error
	FindByID(ctx context.Context, id int64) (*entity.Review, error)
	FindDetailByID(ctx context.Context, id int64) (*entity.ReviewDetail, error)
	FindByMovieID(ctx context.Context, movieID int64) ([]*entity.ReviewWithUser, error)
	FindByUserID(ctx context.Context, userID int64) ([]*entity.ReviewWithMovie, error)
	Update(ctx context.Context, review *entity.Review) error
	Delete(ctx context.Context, id int64) error

	// Business queries
	GetMovieRatingStats(ctx context.Context, movieID int64) (*entity.RatingStats, error)
}

type reviewRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewReviewRepository(db database.PgxIface, log *zap.Logger) ReviewRepository {
	return &reviewRepository{
		db:  db,
		log: log.With(zap.String("repository", "review")),
	}
}

const reviewColumns = `rv.id, rv.rating, rv.comment, rv.created_at, rv.updated_at, rv.user_id, rv.movie_id`

func reviewScanTargets(review *entity.Review) []any {
	return []any{
		&review.ID,
		&review.Rating,
		&review.Comment,
		&review.CreatedAt,
		&review.UpdatedAt,
		&review.UserID,
		&review.MovieID,
	}
}

func userSummaryScanTargets(user *entity.UserSummary) []any {
	return []any{
		&user.ID,
		&user.Email,
		&user.FirstName,
		&user.LastName,
	}
}

func (r *reviewRepository) Create(ctx context.Context, review *entity.Review) error {
	query := `
		INSERT INTO reviews (rating, comment, created_at, updated_at, user_id, movie_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		review.Rating,
		review.Comment,
		review.CreatedAt,
		review.UpdatedAt,
		review.UserID,
		review.MovieID,
	).Scan(&review.ID, &review.CreatedAt, &review.UpdatedAt)

	if err != nil {
		mapped := mapPgError(err)
		if errors.Is(mapped, ErrConflict) || errors.Is(mapped, ErrForeignKey) {
			r.log.Debug("Review insert rejected by constraint",
				zap.Error(mapped),
				zap.Int64("user_id", review.UserID),
				zap.Int64("movie_id", review.MovieID),
			)
			return mapped
		}
		r.log.Error("Failed to create review",
			zap.Error(err),
			zap.Int64("user_id", review.UserID),
			zap.Int64("movie_id", review.MovieID),
		)
		return fmt.Errorf("create review for movie %d by user %d: %w",
			review.MovieID, review.UserID, err)
	}

	return nil
}

func (r *reviewRepository) FindByID(ctx context.Context, id int64) (*entity.Review, error) {
	query := `SELECT ` + reviewColumns + ` FROM reviews rv WHERE rv.id = $1`

	var review entity.Review
	err := r.db.QueryRow(ctx, query, id).Scan(reviewScanTargets(&review)...)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find review by ID",
			zap.Error(err),
			zap.Int64("review_id", id),
		)
		return nil, fmt.Errorf("find review by ID %d: %w", id, err)
	}

	return &review, nil
}

func (r *reviewRepository) FindDetailByID(ctx context.Context, id int64) (*entity.ReviewDetail, error) {
	query := `
		SELECT ` + reviewColumns + `,
		       u.id, u.email, u.first_name, u.last_name,
		       m.id, m.title, m.overview, m.homepage, m.img_url, m.genre, m.created_at, m.updated_at
		FROM reviews rv
		JOIN users u ON u.id = rv.user_id
		JOIN movies m ON m.id = rv.movie_id
		WHERE rv.id = $1
	`

	var detail entity.ReviewDetail
	targets := reviewScanTargets(&detail.Review)
	targets = append(targets, userSummaryScanTargets(&detail.User)...)
	targets = append(targets, movieScanTargets(&detail.Movie)...)

	err := r.db.QueryRow(ctx, query, id).Scan(targets...)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find review detail by ID",
			zap.Error(err),
			zap.Int64("review_id", id),
		)
		return nil, fmt.Errorf("find review detail by ID %d: %w", id, err)
	}

	return &detail, nil
}

// FindByMovieID returns the movie's reviews in insertion order, each with
// its owner's public fields.
func (r *reviewRepository) FindByMovieID(ctx context.Context, movieID int64) ([]*entity.ReviewWithUser, error) {
	query := `
		SELECT ` + reviewColumns + `,
		       u.id, u.email, u.first_name, u.last_name
		FROM reviews rv
		JOIN users u ON u.id = rv.user_id
		WHERE rv.movie_id = $1
		ORDER BY rv.id
	`

	rows, err := r.db.Query(ctx, query, movieID)
	if err != nil {
		r.log.Error("Failed to find reviews by movie ID",
			zap.Error(err),
			zap.Int64("movie_id", movieID),
		)
		return nil, fmt.Errorf("find reviews by movie ID %d: %w", movieID, err)
	}
	defer rows.Close()

	reviews := make([]*entity.ReviewWithUser, 0)
	for rows.Next() {
		var review entity.ReviewWithUser
		targets := append(reviewScanTargets(&review.Review), userSummaryScanTargets(&review.User)...)
		if err := rows.Scan(targets...); err != nil {
			r.log.Error("Failed to scan review row", zap.Error(err))
			return nil, fmt.Errorf("scan review row: %w", err)
		}
		reviews = append(reviews, &review)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate review rows: %w", err)
	}

	return reviews, nil
}

// FindByUserID returns the user's reviews in insertion order, each with the
// reviewed movie.
func (r *reviewRepository) FindByUserID(ctx context.Context, userID int64) ([]*entity.ReviewWithMovie, error) {
	query := `
		SELECT ` + reviewColumns + `,
		       m.id, m.title, m.overview, m.homepage, m.img_url, m.genre, m.created_at, m.updated_at
		FROM reviews rv
		JOIN movies m ON m.id = rv.movie_id
		WHERE rv.user_id = $1
		ORDER BY rv.id
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		r.log.Error("Failed to find reviews by user ID",
			zap.Error(err),
			zap.Int64("user_id", userID),
		)
		return nil, fmt.Errorf("find reviews by user ID %d: %w", userID, err)
	}
	defer rows.Close()

	reviews := make([]*entity.ReviewWithMovie, 0)
	for rows.Next() {
		var review entity.ReviewWithMovie
		targets := append(reviewScanTargets(&review.Review), movieScanTargets(&review.Movie)...)
		if err := rows.Scan(targets...); err != nil {
			r.log.Error("Failed to scan review row", zap.Error(err))
			return nil, fmt.Errorf("scan review row: %w", err)
		}
		reviews = append(reviews, &review)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate review rows: %w", err)
	}

	return reviews, nil
}

// Update writes rating, comment and updated_at and refreshes review from the
// stored row.
func (r *reviewRepository) Update(ctx context.Context, review *entity.Review) error {
	query := `
		UPDATE reviews rv
		SET rating = $2, comment = $3, updated_at = $4
		WHERE rv.id = $1
		RETURNING ` + reviewColumns

	var updated entity.Review
	err := r.db.QueryRow(ctx, query,
		review.ID,
		review.Rating,
		review.Comment,
		review.UpdatedAt,
	).Scan(reviewScanTargets(&updated)...)

	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		r.log.Error("Failed to update review",
			zap.Error(err),
			zap.Int64("review_id", review.ID),
		)
		return fmt.Errorf("update review %d: %w", review.ID, err)
	}

	*review = updated
	return nil
}

func (r *reviewRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM reviews WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete review",
			zap.Error(err),
			zap.Int64("review_id", id),
		)
		return fmt.Errorf("delete review %d: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	r.log.Info("Review deleted", zap.Int64("review_id", id))
	return nil
}

// GetMovieRatingStats aggregates a movie's ratings. A movie without reviews,
// or one that does not exist, yields a zero average and zero count.
func (r *reviewRepository) GetMovieRatingStats(ctx context.Context, movieID int64) (*entity.RatingStats, error) {
	query := `
		SELECT
			COALESCE(AVG(rating), 0)::float8 AS avg_rating,
			COUNT(*) AS review_count
		FROM reviews
		WHERE movie_id = $1
	`

	var stats entity.RatingStats
	err := r.db.QueryRow(ctx, query, movieID).Scan(&stats.AverageRating, &stats.ReviewCount)
	if err != nil {
		r.log.Error("Failed to get movie rating stats",
			zap.Error(err),
			zap.Int64("movie_id", movieID),
		)
		return nil, fmt.Errorf("get movie rating stats for %d: %w", movieID, err)
	}

	return &stats, nil
}
