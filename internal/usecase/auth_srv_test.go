package usecase

import (
	"context"
	"testing"
	"time"

	"movie-reviews/internal/dto/request"
	"movie-reviews/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSecret = "test-secret"

func newTestAuthService(store *memStore, clock *fixedClock) *authService {
	return &authService{
		userRepo: store.repository().User,
		jwt:      utils.JWTConfig{Secret: testSecret, ExpiryMinutes: 120},
		log:      zap.NewNop(),
		now:      clock.Now,
	}
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("issues a token for the new user", func(t *testing.T) {
		store := newMemStore()
		clock := newFixedClock()
		svc := newTestAuthService(store, clock)

		resp, err := svc.Register(ctx, &request.RegisterRequest{
			Email:     "  Alice@Example.com ",
			Password:  "secret123",
			FirstName: strPtr("Alice"),
		})
		require.NoError(t, err)
		assert.Equal(t, "alice@example.com", resp.Email)
		assert.Equal(t, clock.Now().Add(120*time.Minute), resp.ExpiresAt)

		user, err := store.repository().User.FindByEmail(ctx, "alice@example.com")
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.NotEqual(t, "secret123", user.PasswordHash)
		assert.True(t, utils.CheckPasswordHash("secret123", user.PasswordHash))

		claims, err := utils.ParseTokenAt(resp.AccessToken, testSecret, clock.Now())
		require.NoError(t, err)
		userID, err := claims.UserID()
		require.NoError(t, err)
		assert.Equal(t, user.ID, userID)
	})

	t.Run("duplicate email", func(t *testing.T) {
		store := newMemStore()
		svc := newTestAuthService(store, newFixedClock())

		_, err := svc.Register(ctx, &request.RegisterRequest{Email: "alice@example.com", Password: "secret123"})
		require.NoError(t, err)

		_, err = svc.Register(ctx, &request.RegisterRequest{Email: "ALICE@example.com", Password: "other123"})
		assert.ErrorIs(t, err, ErrEmailTaken)
	})

	t.Run("invalid input", func(t *testing.T) {
		svc := newTestAuthService(newMemStore(), newFixedClock())

		_, err := svc.Register(ctx, &request.RegisterRequest{Email: "not-an-email", Password: "123"})
		var validationErr *ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Contains(t, validationErr.Fields, "email")
		assert.Contains(t, validationErr.Fields, "password")
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	svc := newTestAuthService(store, newFixedClock())

	_, err := svc.Register(ctx, &request.RegisterRequest{Email: "alice@example.com", Password: "secret123"})
	require.NoError(t, err)

	t.Run("correct password", func(t *testing.T) {
		resp, err := svc.Login(ctx, &request.LoginRequest{Email: "Alice@example.com", Password: "secret123"})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.AccessToken)
		assert.Equal(t, "alice@example.com", resp.Email)
	})

	t.Run("padded email", func(t *testing.T) {
		resp, err := svc.Login(ctx, &request.LoginRequest{Email: " alice@example.com\t", Password: "secret123"})
		require.NoError(t, err)
		assert.Equal(t, "alice@example.com", resp.Email)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, &request.LoginRequest{Email: "alice@example.com", Password: "wrong"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login(ctx, &request.LoginRequest{Email: "nobody@example.com", Password: "secret123"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}
