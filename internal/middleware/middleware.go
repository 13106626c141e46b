package middleware

import (
	"context"
	"net/http"
	"os"
	"strings"
	"sync"

	"github.com/aeris-iot/aeris-backend/internal/utils"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/time/rate"
)

// KeyFetcher loads credential records for bearer validation. Implemented by
// apikeys.KeyInfo in production; tests substitute a mock.
type KeyFetcher interface {
	FindKeyByID(id string) (utils.APIKeyData, error)
}

// APIKeyMiddleware validates "Authorization: Bearer <keyID>.<secret>" against
// the stored bcrypt hash and rejects revoked keys. The key ID is placed in the
// request context for handlers to record on writes.
func APIKeyMiddleware(fetcher KeyFetcher) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				http.Error(w, "Missing or invalid Authorization header", http.StatusUnauthorized)
				return
			}

			token := strings.TrimPrefix(header, "Bearer ")
			keyID, secret, ok := strings.Cut(token, ".")
			if !ok || keyID == "" || secret == "" {
				http.Error(w, "Invalid API key", http.StatusUnauthorized)
				return
			}

			key, err := fetcher.FindKeyByID(keyID)
			if err != nil {
				http.Error(w, "Invalid API key", http.StatusUnauthorized)
				return
			}
			if key.Revoked {
				http.Error(w, "API key revoked", http.StatusUnauthorized)
				return
			}
			if bcrypt.CompareHashAndPassword([]byte(key.SecretHash), []byte(secret)) != nil {
				http.Error(w, "Invalid API key", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), utils.ContextAPIKeyIDKey, key.KeyID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

var (
	corsOnce sync.Once
	allowed  map[string]struct{}
)

// Origins come from CORS_ALLOWED_ORIGINS (comma-separated). Parsed lazily so
// godotenv has loaded by the time the first request arrives.
func allowedOrigins() map[string]struct{} {
	corsOnce.Do(func() {
		allowed = map[string]struct{}{}
		for _, o := range strings.Split(os.Getenv("CORS_ALLOWED_ORIGINS"), ",") {
			o = strings.TrimSpace(o)
			if o != "" {
				allowed[o] = struct{}{}
			}
		}
	})
	return allowed
}

func CORSMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")

		// Echo the origin back only if it's on our allow-list
		if _, ok := allowedOrigins()[origin]; ok {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Vary", "Origin") // important for caches
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods",
				"GET, POST, PUT, PATCH, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers",
				"Content-Type, Authorization, X-Idempotency-Key")
		}

		w.Header().Set("Access-Control-Expose-Headers", "Retry-After, Cache-Control")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RateLimitMiddleware enforces a per-credential token bucket. It keys on the
// API key ID injected by APIKeyMiddleware, falling back to the remote address
// for unauthenticated routes.
func RateLimitMiddleware(rps rate.Limit, burst int) func(http.Handler) http.Handler {
	var mu sync.Mutex
	limiters := map[string]*rate.Limiter{}

	limiterFor := func(key string) *rate.Limiter {
		mu.Lock()
		defer mu.Unlock()
		lim, ok := limiters[key]
		if !ok {
			lim = rate.NewLimiter(rps, burst)
			limiters[key] = lim
		}
		return lim
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key, ok := utils.GetAPIKeyIDFromContext(r.Context())
			if !ok {
				key = r.RemoteAddr
			}
			if !limiterFor(key).Allow() {
				w.Header().Set("Retry-After", "1")
				http.Error(w, "Rate limit exceeded", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
