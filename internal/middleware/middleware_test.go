package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aeris-iot/aeris-backend/internal/middleware"
	"github.com/aeris-iot/aeris-backend/internal/utils"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/time/rate"
)

// mockFetcher implements middleware.KeyFetcher without any database dependency.
type mockFetcher struct {
	key utils.APIKeyData
	err error
}

func (m mockFetcher) FindKeyByID(id string) (utils.APIKeyData, error) {
	return m.key, m.err
}

// callWithAuth wraps a simple 200-OK inner handler in the provided middleware,
// optionally setting the Authorization header, and returns the recorded response.
func callWithAuth(t *testing.T, mw func(http.Handler) http.Handler, authHeader string) *httptest.ResponseRecorder {
	t.Helper()

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	handler := mw(inner)
	req := httptest.NewRequest(http.MethodPost, "/test", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func hashSecret(t *testing.T, secret string) string {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt error: %v", err)
	}
	return string(hashed)
}

// TestAPIKeyMiddleware_MissingHeader verifies that a request with no
// Authorization header receives a 401 response.
func TestAPIKeyMiddleware_MissingHeader(t *testing.T) {
	mw := middleware.APIKeyMiddleware(mockFetcher{})

	rec := callWithAuth(t, mw, "")

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

// TestAPIKeyMiddleware_MalformedToken verifies that a bearer token without the
// keyID.secret shape is rejected before any lookup.
func TestAPIKeyMiddleware_MalformedToken(t *testing.T) {
	mw := middleware.APIKeyMiddleware(mockFetcher{})

	rec := callWithAuth(t, mw, "Bearer no-separator-here")

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

// TestAPIKeyMiddleware_UnknownKey verifies that a fetcher error (key not
// found) results in a 401 response.
func TestAPIKeyMiddleware_UnknownKey(t *testing.T) {
	mw := middleware.APIKeyMiddleware(mockFetcher{err: errors.New("record not found")})

	rec := callWithAuth(t, mw, "Bearer nope.secret")

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

// TestAPIKeyMiddleware_RevokedKey verifies that a revoked key is refused even
// when the secret matches.
func TestAPIKeyMiddleware_RevokedKey(t *testing.T) {
	fetcher := mockFetcher{
		key: utils.APIKeyData{
			KeyID:      "k1",
			SecretHash: hashSecret(t, "s3cret"),
			Revoked:    true,
		},
	}
	mw := middleware.APIKeyMiddleware(fetcher)

	rec := callWithAuth(t, mw, "Bearer k1.s3cret")

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "revoked") {
		t.Errorf("expected body to mention revoked, got: %q", rec.Body.String())
	}
}

// TestAPIKeyMiddleware_WrongSecret verifies the bcrypt comparison path.
func TestAPIKeyMiddleware_WrongSecret(t *testing.T) {
	fetcher := mockFetcher{
		key: utils.APIKeyData{KeyID: "k1", SecretHash: hashSecret(t, "s3cret")},
	}
	mw := middleware.APIKeyMiddleware(fetcher)

	rec := callWithAuth(t, mw, "Bearer k1.wrong")

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

// TestAPIKeyMiddleware_ValidKey verifies that a valid key passes and the key
// ID is injected into the request context.
func TestAPIKeyMiddleware_ValidKey(t *testing.T) {
	const wantKeyID = "key-123"

	fetcher := mockFetcher{
		key: utils.APIKeyData{KeyID: wantKeyID, SecretHash: hashSecret(t, "s3cret")},
	}

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKeyID, ok := utils.GetAPIKeyIDFromContext(r.Context())
		if !ok {
			http.Error(w, "keyID not in context", http.StatusInternalServerError)
			return
		}
		if gotKeyID != wantKeyID {
			http.Error(w, "wrong keyID in context: "+gotKeyID, http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	handler := middleware.APIKeyMiddleware(fetcher)(inner)
	req := httptest.NewRequest(http.MethodPost, "/test", nil)
	req.Header.Set("Authorization", "Bearer "+wantKeyID+".s3cret")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d; body: %s", rec.Code, rec.Body.String())
	}
}

// TestRateLimitMiddleware_Exhaustion verifies that requests beyond the burst
// receive 429 and that distinct credentials get independent buckets.
func TestRateLimitMiddleware_Exhaustion(t *testing.T) {
	mw := middleware.RateLimitMiddleware(rate.Limit(1), 2)

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := mw(inner)

	do := func(keyID string) int {
		req := httptest.NewRequest(http.MethodPost, "/test", nil)
		ctx := req.Context()
		if keyID != "" {
			ctx = context.WithValue(ctx, utils.ContextAPIKeyIDKey, keyID)
		}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req.WithContext(ctx))
		return rec.Code
	}

	if code := do("a"); code != http.StatusOK {
		t.Fatalf("request 1: expected 200, got %d", code)
	}
	if code := do("a"); code != http.StatusOK {
		t.Fatalf("request 2: expected 200, got %d", code)
	}
	if code := do("a"); code != http.StatusTooManyRequests {
		t.Errorf("request 3: expected 429, got %d", code)
	}
	// A different credential still has a full bucket.
	if code := do("b"); code != http.StatusOK {
		t.Errorf("other credential: expected 200, got %d", code)
	}
}
