package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"movie-reviews/internal/data/entity"
	"movie-reviews/internal/data/repository"
	"movie-reviews/internal/dto/request"
	"movie-reviews/internal/dto/response"
	"movie-reviews/pkg/utils"

	"go.uber.org/zap"
)

type AuthService interface {
	Register(ctx context.Context, req *request.RegisterRequest) (*response.AuthResponse, error)
	Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error)
	IssueToken(userID int64, email string) (*response.AuthResponse, error)
}

type authService struct {
	userRepo repository.UserRepository
	jwt      utils.JWTConfig
	log      *zap.Logger
	now      func() time.Time
}

func NewAuthService(
	userRepo repository.UserRepository,
	jwt utils.JWTConfig,
	log *zap.Logger,
) AuthService {
	return &authService{
		userRepo: userRepo,
		jwt:      jwt,
		log:      log.With(zap.String("service", "auth")),
		now:      time.Now,
	}
}

func (s *authService) Register(ctx context.Context, req *request.RegisterRequest) (*response.AuthResponse, error) {
	// 1. Validate input
	req.Normalize()
	if err := validate(req); err != nil {
		s.log.Warn("Register validation failed", zap.Error(err))
		return nil, err
	}

	// 2. Hash password, plaintext is never stored
	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("hash password: %w", err)
	}

	// 3. Insert; the unique email constraint decides duplicates
	now := s.now()
	user := &entity.User{
		Base: entity.Base{
			CreatedAt: now,
			UpdatedAt: now,
		},
		Email:        normalizeEmail(req.Email),
		PasswordHash: hashedPassword,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			s.log.Warn("Register rejected, email taken", zap.String("email", user.Email))
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.log.Info("User registered",
		zap.Int64("user_id", user.ID),
		zap.String("email", user.Email))

	return s.IssueToken(user.ID, user.Email)
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error) {
	// 1. Validate input
	req.Normalize()
	if err := validate(req); err != nil {
		s.log.Warn("Login validation failed", zap.Error(err))
		return nil, err
	}

	// 2. Find user
	user, err := s.userRepo.FindByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}

	// 3. Unknown email and wrong password answer identically
	if user == nil {
		s.log.Warn("Login for unknown email", zap.String("email", req.Email))
		return nil, ErrInvalidCredentials
	}

	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.log.Warn("Invalid password", zap.Int64("user_id", user.ID))
		return nil, ErrInvalidCredentials
	}

	s.log.Info("User logged in", zap.Int64("user_id", user.ID))

	return s.IssueToken(user.ID, user.Email)
}

// IssueToken signs an access token for the user valid for the configured
// window.
func (s *authService) IssueToken(userID int64, email string) (*response.AuthResponse, error) {
	token, expiresAt, err := utils.GenerateToken(userID, email, s.jwt.Secret, s.jwt.TokenTTL(), s.now())
	if err != nil {
		s.log.Error("Failed to sign token", zap.Error(err), zap.Int64("user_id", userID))
		return nil, err
	}

	return &response.AuthResponse{
		AccessToken: token,
		Email:       email,
		ExpiresAt:   expiresAt,
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
