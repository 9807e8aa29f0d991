package response

import (
	"movie-reviews/internal/data/entity"
	"time"
)

type ReviewResponse struct {
	ID        int64     `json:"id"`
	Rating    int       `json:"rating"`
	Comment   *string   `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	UserID    int64     `json:"userId"`
	MovieID   int64     `json:"movieId"`

	User  *UserSummaryResponse `json:"user,omitempty"`
	Movie *MovieResponse       `json:"movie,omitempty"`
}

type MovieRatingResponse struct {
	AverageRating float64 `json:"averageRating"`
	ReviewCount   int64   `json:"reviewCount"`
}

// Helper converters
func ReviewToResponse(review *entity.Review) ReviewResponse {
	return ReviewResponse{
		ID:        review.ID,
		Rating:    review.Rating,
		Comment:   review.Comment,
		CreatedAt: review.CreatedAt,
		UpdatedAt: review.UpdatedAt,
		UserID:    review.UserID,
		MovieID:   review.MovieID,
	}
}

func ReviewWithUserToResponse(review *entity.ReviewWithUser) ReviewResponse {
	resp := ReviewToResponse(&review.Review)
	user := UserSummaryToResponse(review.User)
	resp.User = &user
	return resp
}

func ReviewWithMovieToResponse(review *entity.ReviewWithMovie) ReviewResponse {
	resp := ReviewToResponse(&review.Review)
	movie := MovieToResponse(&review.Movie)
	resp.Movie = &movie
	return resp
}

func ReviewDetailToResponse(review *entity.ReviewDetail) ReviewResponse {
	resp := ReviewToResponse(&review.Review)
	user := UserSummaryToResponse(review.User)
	movie := MovieToResponse(&review.Movie)
	resp.User = &user
	resp.Movie = &movie
	return resp
}
