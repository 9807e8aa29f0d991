package wire

import (
	"movie-reviews/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireMovie(r chi.Router, movieHandler *adaptor.MovieHandler) {
	r.Route("/movies", func(r chi.Router) {
		r.Get("/", movieHandler.GetMovies)          // GET /movies?page=1&per_page=10
		r.Post("/", movieHandler.CreateMovie)       // POST /movies
		r.Get("/{id}", movieHandler.GetMovie)       // GET /movies/{id}
		r.Patch("/{id}", movieHandler.UpdateMovie)  // PATCH /movies/{id}
		r.Delete("/{id}", movieHandler.DeleteMovie) // DELETE /movies/{id}
	})
}
