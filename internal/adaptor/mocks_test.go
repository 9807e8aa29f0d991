package adaptor

import (
	"context"
	"net/http"

	"movie-reviews/internal/dto/request"
	"movie-reviews/internal/dto/response"
	"movie-reviews/pkg/utils"

	"github.com/stretchr/testify/mock"
)

type mockReviewService struct {
	mock.Mock
}

func (m *mockReviewService) GetMovieReviews(ctx context.Context, movieID int64) ([]response.ReviewResponse, error) {
	args := m.Called(ctx, movieID)
	reviews, _ := args.Get(0).([]response.ReviewResponse)
	return reviews, args.Error(1)
}

func (m *mockReviewService) GetUserReviews(ctx context.Context, userID int64) ([]response.ReviewResponse, error) {
	args := m.Called(ctx, userID)
	reviews, _ := args.Get(0).([]response.ReviewResponse)
	return reviews, args.Error(1)
}

func (m *mockReviewService) GetReviewByID(ctx context.Context, reviewID int64) (*response.ReviewResponse, error) {
	args := m.Called(ctx, reviewID)
	review, _ := args.Get(0).(*response.ReviewResponse)
	return review, args.Error(1)
}

func (m *mockReviewService) CreateReview(ctx context.Context, userID, movieID int64, req *request.CreateReviewRequest) (*response.ReviewResponse, error) {
	args := m.Called(ctx, userID, movieID, req)
	review, _ := args.Get(0).(*response.ReviewResponse)
	return review, args.Error(1)
}

func (m *mockReviewService) EditReview(ctx context.Context, userID, reviewID int64, req *request.EditReviewRequest) (*response.ReviewResponse, error) {
	args := m.Called(ctx, userID, reviewID, req)
	review, _ := args.Get(0).(*response.ReviewResponse)
	return review, args.Error(1)
}

func (m *mockReviewService) DeleteReview(ctx context.Context, userID, reviewID int64) error {
	return m.Called(ctx, userID, reviewID).Error(0)
}

func (m *mockReviewService) GetMovieAverageRating(ctx context.Context, movieID int64) (*response.MovieRatingResponse, error) {
	args := m.Called(ctx, movieID)
	rating, _ := args.Get(0).(*response.MovieRatingResponse)
	return rating, args.Error(1)
}

type mockAuthService struct {
	mock.Mock
}

func (m *mockAuthService) Register(ctx context.Context, req *request.RegisterRequest) (*response.AuthResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*response.AuthResponse)
	return resp, args.Error(1)
}

func (m *mockAuthService) Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*response.AuthResponse)
	return resp, args.Error(1)
}

func (m *mockAuthService) IssueToken(userID int64, email string) (*response.AuthResponse, error) {
	args := m.Called(userID, email)
	resp, _ := args.Get(0).(*response.AuthResponse)
	return resp, args.Error(1)
}

type mockMovieService struct {
	mock.Mock
}

func (m *mockMovieService) GetAllMovies(ctx context.Context, req *request.MovieListRequest) (*response.PaginatedResponse[response.MovieResponse], error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*response.PaginatedResponse[response.MovieResponse])
	return resp, args.Error(1)
}

func (m *mockMovieService) GetMovieByID(ctx context.Context, movieID int64) (*response.MovieResponse, error) {
	args := m.Called(ctx, movieID)
	resp, _ := args.Get(0).(*response.MovieResponse)
	return resp, args.Error(1)
}

func (m *mockMovieService) CreateMovie(ctx context.Context, req *request.MovieRequest) (*response.MovieResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*response.MovieResponse)
	return resp, args.Error(1)
}

func (m *mockMovieService) UpdateMovie(ctx context.Context, movieID int64, req *request.MovieUpdateRequest) (*response.MovieResponse, error) {
	args := m.Called(ctx, movieID, req)
	resp, _ := args.Get(0).(*response.MovieResponse)
	return resp, args.Error(1)
}

func (m *mockMovieService) DeleteMovie(ctx context.Context, movieID int64) error {
	return m.Called(ctx, movieID).Error(0)
}

// asUser attaches an authenticated identity the way the auth middleware does.
func asUser(userID int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := utils.SetUserContext(r.Context(), userID, "user@example.com")
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
