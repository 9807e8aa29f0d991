package response

import (
	"time"
)

type AuthResponse struct {
	AccessToken string    `json:"access_token"`
	Email       string    `json:"email"`
	ExpiresAt   time.Time `json:"expiresAt"`
}
