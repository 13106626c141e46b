package apikeys

import (
	"net/http"

	"github.com/aeris-iot/aeris-backend/internal/middleware"
	"github.com/go-chi/chi/v5"
)

// SetupRoutes requires an existing valid key to manage keys; the first key is
// minted by cmd/seed.
func SetupRoutes() http.Handler {
	r := chi.NewRouter()
	keyFetcher := KeyInfo{}

	r.Group(func(r chi.Router) {
		r.Use(middleware.APIKeyMiddleware(keyFetcher))
		r.Post("/", CreateKeyHandler)
		r.Get("/", ListKeysHandler)
		r.Post("/{key_id}/revoke", RevokeKeyHandler)
	})

	return r
}
