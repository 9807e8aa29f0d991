package wire

import (
	"movie-reviews/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireAuth(r chi.Router, authHandler *adaptor.AuthHandler) {
	// ==================== PUBLIC ROUTES ====================
	r.Route("/auth", func(r chi.Router) {
		r.Post("/signup", authHandler.Register) // POST /auth/signup
		r.Post("/signin", authHandler.Login)    // POST /auth/signin
	})
}
