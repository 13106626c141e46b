package devices

import (
	"net/http"

	"github.com/aeris-iot/aeris-backend/internal/apikeys"
	"github.com/aeris-iot/aeris-backend/internal/middleware"
	"github.com/go-chi/chi/v5"
)

func SetupRoutes() http.Handler {
	r := chi.NewRouter()
	keyFetcher := apikeys.KeyInfo{}

	r.Group(func(r chi.Router) {
		r.Use(middleware.APIKeyMiddleware(keyFetcher))
		r.Post("/", RegisterDeviceHandler)
		r.Get("/", ListDevicesHandler)
		r.Get("/{device_id}", GetDeviceHandler)
		r.Delete("/{device_id}", DeleteDeviceHandler)
	})

	return r
}
