package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/jiyun-dev/wecal/pkg/response"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	// MemberIDKey is the context key for the authenticated member ID
	MemberIDKey ContextKey = "member_id"
)

// TokenParser verifies an access token and extracts the member ID
type TokenParser interface {
	ParseMemberID(token string) (int64, error)
}

// MemberChecker reports whether a member exists and is active. Soft-deleted
// members must not authenticate.
type MemberChecker interface {
	IsActive(ctx context.Context, memberID int64) (bool, error)
}

// Auth validates the bearer token and puts the caller's member ID into the
// request context.
func Auth(tokens TokenParser, members MemberChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				response.Unauthorized(w, "Authorization header required")
				return
			}

			// Extract token from "Bearer <token>"
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				response.Unauthorized(w, "Invalid authorization header format")
				return
			}

			memberID, err := tokens.ParseMemberID(parts[1])
			if err != nil {
				response.Unauthorized(w, "Invalid or expired token")
				return
			}

			active, err := members.IsActive(r.Context(), memberID)
			if err != nil {
				response.InternalError(w, "Failed to verify member")
				return
			}
			if !active {
				response.Unauthorized(w, "Invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), MemberIDKey, memberID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetMemberID extracts the member ID from the request context
func GetMemberID(ctx context.Context) (int64, bool) {
	memberID, ok := ctx.Value(MemberIDKey).(int64)
	return memberID, ok
}
