package wire

import (
	"movie-reviews/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

// wireUser configures profile routes; r is already behind AuthJWT
func wireUser(r chi.Router, userHandler *adaptor.UserHandler) {
	r.Get("/users/me", userHandler.GetMe)
	r.Patch("/users", userHandler.EditUser)
}
