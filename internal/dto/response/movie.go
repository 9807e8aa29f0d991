package response

import (
	"movie-reviews/internal/data/entity"
	"time"
)

type MovieResponse struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Overview  *string   `json:"overview"`
	Homepage  *string   `json:"homepage"`
	ImgURL    *string   `json:"imgUrl"`
	Genre     string    `json:"genre"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Set only where the rating aggregate was computed.
	AverageRating *float64 `json:"averageRating,omitempty"`
	ReviewCount   *int64   `json:"reviewCount,omitempty"`
}

// Helper converters
func MovieToResponse(movie *entity.Movie) MovieResponse {
	return MovieResponse{
		ID:        movie.ID,
		Title:     movie.Title,
		Overview:  movie.Overview,
		Homepage:  movie.Homepage,
		ImgURL:    movie.ImgURL,
		Genre:     movie.Genre,
		CreatedAt: movie.CreatedAt,
		UpdatedAt: movie.UpdatedAt,
	}
}

func MovieWithRatingToResponse(movie *entity.Movie, stats entity.RatingStats) MovieResponse {
	resp := MovieToResponse(movie)
	resp.AverageRating = &stats.AverageRating
	resp.ReviewCount = &stats.ReviewCount
	return resp
}
