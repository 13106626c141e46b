package utils

import (
	"context"
)

type contextKey string

const ContextAPIKeyIDKey contextKey = "apiKeyID"

func GetAPIKeyIDFromContext(ctx context.Context) (string, bool) {
	keyID := ctx.Value(ContextAPIKeyIDKey)
	keyIDStr, ok := keyID.(string)
	return keyIDStr, ok
}
