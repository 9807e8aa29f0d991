package wire

import (
	"movie-reviews/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireReview(r chi.Router, reviewHandler *adaptor.ReviewHandler) {
	r.Route("/reviews", func(r chi.Router) {
		// Per-movie
		r.Get("/movie/{movieId}", reviewHandler.GetMovieReviews)
		r.Get("/movie/{movieId}/rating", reviewHandler.GetMovieAverageRating)
		r.Post("/movie/{movieId}", reviewHandler.CreateReview)

		// Caller's own reviews
		r.Get("/user/me", reviewHandler.GetUserReviews)

		// Single review; edit and delete are owner only
		r.Get("/{id}", reviewHandler.GetReviewByID)
		r.Patch("/{id}", reviewHandler.EditReview)
		r.Delete("/{id}", reviewHandler.DeleteReview)
	})
}
