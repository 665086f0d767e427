package auth

import (
	"context"
	"net/http"
)

type contextKey string

const merchantIDKey contextKey = "merchant_id"

// MerchantHeader carries the tenant identity on every request.
const MerchantHeader = "X-Merchant-ID"

// WithMerchantID returns a child context carrying the merchant identity.
func WithMerchantID(ctx context.Context, merchantID string) context.Context {
	return context.WithValue(ctx, merchantIDKey, merchantID)
}

// GetMerchantID returns the merchant identity set by the middleware, or "".
func GetMerchantID(ctx context.Context) string {
	if val, ok := ctx.Value(merchantIDKey).(string); ok {
		return val
	}
	return ""
}

// MerchantContext copies the merchant header into the request context.
// Handlers reject requests with no merchant identity themselves.
func MerchantContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if merchantID := r.Header.Get(MerchantHeader); merchantID != "" {
			r = r.WithContext(WithMerchantID(r.Context(), merchantID))
		}
		next.ServeHTTP(w, r)
	})
}
