package usecase

import (
	"context"
	"testing"
	"time"

	"movie-reviews/internal/dto/request"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestUserService_EditProfile(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	clock := newFixedClock()
	svc := &userService{userRepo: store.repository().User, log: zap.NewNop(), now: clock.Now}

	alice := store.addUser("alice@example.com")
	store.addUser("bob@example.com")

	t.Run("partial update", func(t *testing.T) {
		clock.Advance(time.Minute)

		resp, err := svc.EditProfile(ctx, alice.ID, &request.EditUserRequest{FirstName: strPtr("Alice")})
		require.NoError(t, err)
		assert.Equal(t, "alice@example.com", resp.Email)
		require.NotNil(t, resp.FirstName)
		assert.Equal(t, "Alice", *resp.FirstName)
		assert.Equal(t, clock.Now(), resp.UpdatedAt)
	})

	t.Run("email taken", func(t *testing.T) {
		_, err := svc.EditProfile(ctx, alice.ID, &request.EditUserRequest{Email: strPtr("Bob@example.com")})
		assert.ErrorIs(t, err, ErrEmailTaken)
	})

	t.Run("padded email", func(t *testing.T) {
		resp, err := svc.EditProfile(ctx, alice.ID, &request.EditUserRequest{Email: strPtr("  Alice2@Example.com ")})
		require.NoError(t, err)
		assert.Equal(t, "alice2@example.com", resp.Email)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := svc.EditProfile(ctx, 999, &request.EditUserRequest{FirstName: strPtr("X")})
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("get profile", func(t *testing.T) {
		resp, err := svc.GetProfile(ctx, alice.ID)
		require.NoError(t, err)
		assert.Equal(t, alice.ID, resp.ID)

		_, err = svc.GetProfile(ctx, 999)
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}
