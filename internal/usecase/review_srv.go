package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"movie-reviews/internal/data/entity"
	"movie-reviews/internal/data/repository"
	"movie-reviews/internal/dto/request"
	"movie-reviews/internal/dto/response"

	"go.uber.org/zap"
)

const (
	MinRating = 1
	MaxRating = 5
)

type ReviewService interface {
	GetMovieReviews(ctx context.Context, movieID int64) ([]response.ReviewResponse, error)
	GetUserReviews(ctx context.Context, userID int64) ([]response.ReviewResponse, error)
	GetReviewByID(ctx context.Context, reviewID int64) (*response.ReviewResponse, error)
	CreateReview(ctx context.Context, userID, movieID int64, req *request.CreateReviewRequest) (*response.ReviewResponse, error)
	EditReview(ctx context.Context, userID, reviewID int64, req *request.EditReviewRequest) (*response.ReviewResponse, error)
	DeleteReview(ctx context.Context, userID, reviewID int64) error

	// Stats
	GetMovieAverageRating(ctx context.Context, movieID int64) (*response.MovieRatingResponse, error)
}

type reviewService struct {
	repo *repository.Repository
	log  *zap.Logger
	now  func() time.Time
}

func NewReviewService(repo *repository.Repository, log *zap.Logger) ReviewService {
	return &reviewService{
		repo: repo,
		log:  log.With(zap.String("service", "review")),
		now:  time.Now,
	}
}

func (s *reviewService) GetMovieReviews(ctx context.Context, movieID int64) ([]response.ReviewResponse, error) {
	if err := s.ensureMovieExists(ctx, movieID); err != nil {
		return nil, err
	}

	reviews, err := s.repo.Review.FindByMovieID(ctx, movieID)
	if err != nil {
		return nil, fmt.Errorf("get movie reviews: %w", err)
	}

	reviewResponses := make([]response.ReviewResponse, len(reviews))
	for i, review := range reviews {
		reviewResponses[i] = response.ReviewWithUserToResponse(review)
	}

	s.log.Debug("Movie reviews retrieved",
		zap.Int64("movie_id", movieID),
		zap.Int("count", len(reviews)),
	)

	return reviewResponses, nil
}

func (s *reviewService) GetUserReviews(ctx context.Context, userID int64) ([]response.ReviewResponse, error) {
	reviews, err := s.repo.Review.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user reviews: %w", err)
	}

	reviewResponses := make([]response.ReviewResponse, len(reviews))
	for i, review := range reviews {
		reviewResponses[i] = response.ReviewWithMovieToResponse(review)
	}

	s.log.Debug("User reviews retrieved",
		zap.Int64("user_id", userID),
		zap.Int("count", len(reviews)),
	)

	return reviewResponses, nil
}

func (s *reviewService) GetReviewByID(ctx context.Context, reviewID int64) (*response.ReviewResponse, error) {
	review, err := s.repo.Review.FindDetailByID(ctx, reviewID)
	if err != nil {
		return nil, fmt.Errorf("get review: %w", err)
	}
	if review == nil {
		return nil, ErrReviewNotFound
	}

	resp := response.ReviewDetailToResponse(review)
	return &resp, nil
}

// CreateReview stores a new review. There is no application-level duplicate
// check: the (user_id, movie_id) unique constraint decides, so concurrent
// attempts for the same pair produce exactly one review.
func (s *reviewService) CreateReview(ctx context.Context, userID, movieID int64, req *request.CreateReviewRequest) (*response.ReviewResponse, error) {
	if err := validate(req); err != nil {
		s.log.Warn("Create review validation failed", zap.Error(err))
		return nil, err
	}
	if err := checkRating(req.Rating); err != nil {
		return nil, err
	}

	if err := s.ensureMovieExists(ctx, movieID); err != nil {
		return nil, err
	}

	now := s.now()
	review := &entity.Review{
		Base: entity.Base{
			CreatedAt: now,
			UpdatedAt: now,
		},
		UserID:  userID,
		MovieID: movieID,
		Rating:  req.Rating,
		Comment: req.Comment,
	}

	if err := s.repo.Review.Create(ctx, review); err != nil {
		switch {
		case errors.Is(err, repository.ErrConflict):
			s.log.Warn("Duplicate review rejected",
				zap.Int64("user_id", userID),
				zap.Int64("movie_id", movieID),
			)
			return nil, ErrAlreadyReviewed
		case errors.Is(err, repository.ErrForeignKey):
			// movie deleted between the existence check and the insert
			return nil, ErrMovieNotFound
		}
		return nil, fmt.Errorf("create review: %w", err)
	}

	s.log.Info("Review created",
		zap.Int64("review_id", review.ID),
		zap.Int64("user_id", userID),
		zap.Int64("movie_id", movieID),
		zap.Int("rating", review.Rating),
	)

	resp := response.ReviewToResponse(review)
	return &resp, nil
}

func (s *reviewService) EditReview(ctx context.Context, userID, reviewID int64, req *request.EditReviewRequest) (*response.ReviewResponse, error) {
	if err := validate(req); err != nil {
		s.log.Warn("Edit review validation failed", zap.Error(err))
		return nil, err
	}
	if req.Rating != nil {
		if err := checkRating(*req.Rating); err != nil {
			return nil, err
		}
	}

	review, err := s.findOwnedReview(ctx, userID, reviewID)
	if err != nil {
		return nil, err
	}

	// Omitted fields keep their stored value, an explicit null comment clears it
	if req.Rating != nil {
		review.Rating = *req.Rating
	}
	switch {
	case req.ClearComment:
		review.Comment = nil
	case req.Comment != nil:
		review.Comment = req.Comment
	}
	review.UpdatedAt = s.now()

	if err := s.repo.Review.Update(ctx, review); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, fmt.Errorf("update review: %w", err)
	}

	s.log.Info("Review updated",
		zap.Int64("review_id", reviewID),
		zap.Int64("user_id", userID),
	)

	resp := response.ReviewToResponse(review)
	return &resp, nil
}

func (s *reviewService) DeleteReview(ctx context.Context, userID, reviewID int64) error {
	review, err := s.findOwnedReview(ctx, userID, reviewID)
	if err != nil {
		return err
	}

	if err := s.repo.Review.Delete(ctx, review.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrReviewNotFound
		}
		return fmt.Errorf("delete review: %w", err)
	}

	s.log.Info("Review deleted",
		zap.Int64("review_id", reviewID),
		zap.Int64("user_id", userID),
		zap.Int64("movie_id", review.MovieID),
	)

	return nil
}

// GetMovieAverageRating does not check that the movie exists; an unknown
// movie simply has no reviews.
func (s *reviewService) GetMovieAverageRating(ctx context.Context, movieID int64) (*response.MovieRatingResponse, error) {
	stats, err := s.repo.Review.GetMovieRatingStats(ctx, movieID)
	if err != nil {
		return nil, fmt.Errorf("get movie average rating: %w", err)
	}

	average := stats.AverageRating
	if stats.ReviewCount == 0 {
		average = 0
	}

	return &response.MovieRatingResponse{
		AverageRating: average,
		ReviewCount:   stats.ReviewCount,
	}, nil
}

// ==================== HELPER METHODS ====================

func (s *reviewService) ensureMovieExists(ctx context.Context, movieID int64) error {
	movie, err := s.repo.Movie.FindByID(ctx, movieID)
	if err != nil {
		return fmt.Errorf("get movie: %w", err)
	}
	if movie == nil {
		return ErrMovieNotFound
	}
	return nil
}

// findOwnedReview loads the review and enforces ownership. Existence is
// checked before ownership, so a missing id is ErrReviewNotFound for
// everyone.
func (s *reviewService) findOwnedReview(ctx context.Context, userID, reviewID int64) (*entity.Review, error) {
	review, err := s.repo.Review.FindByID(ctx, reviewID)
	if err != nil {
		return nil, fmt.Errorf("get review: %w", err)
	}
	if review == nil {
		return nil, ErrReviewNotFound
	}

	if review.UserID != userID {
		s.log.Warn("Review access denied",
			zap.Int64("review_id", reviewID),
			zap.Int64("user_id", userID),
		)
		return nil, ErrAccessDenied
	}

	return review, nil
}

func checkRating(rating int) error {
	if rating < MinRating || rating > MaxRating {
		return &ValidationError{Fields: map[string]string{
			"rating": fmt.Sprintf("Must be between %d and %d", MinRating, MaxRating),
		}}
	}
	return nil
}
