package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/sessions"

	"party-package-store/internal/models"
)

type contextKey string

const (
	// UserContextKey is the request context key the signed-in user is
	// stored under
	UserContextKey contextKey = "user"

	// SessionName is the cookie name for the session
	SessionName = "session"
)

// UserLoader resolves a session user id to a full account
type UserLoader interface {
	GetUser(id int) (*models.User, error)
}

// AuthMiddleware provides session-based authentication
type AuthMiddleware struct {
	users UserLoader
	store sessions.Store
}

// NewAuthMiddleware creates a new authentication middleware
func NewAuthMiddleware(users UserLoader, store sessions.Store) *AuthMiddleware {
	return &AuthMiddleware{
		users: users,
		store: store,
	}
}

// LoadUser loads the current user from the session cookie into the request
// context. Requests without a valid session pass through anonymously.
func (m *AuthMiddleware) LoadUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, err := m.store.Get(r, SessionName)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		userID, ok := session.Values["user_id"].(int)
		if !ok {
			// Session backends may round-trip ints through other types
			switch v := session.Values["user_id"].(type) {
			case float64:
				userID = int(v)
				ok = userID != 0
			case string:
				if parsed, err := strconv.Atoi(v); err == nil {
					userID = parsed
					ok = userID != 0
				}
			}
		}
		if !ok || userID == 0 {
			next.ServeHTTP(w, r)
			return
		}

		user, err := m.users.GetUser(userID)
		if err != nil || user.IsBanned {
			// Stale or banned account, clear the session
			session.Values["user_id"] = nil
			session.Options.MaxAge = -1
			session.Save(r, w)
			next.ServeHTTP(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), UserContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAuth rejects anonymous requests with 401
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if GetUserFromContext(r.Context()) == nil {
			writeAuthError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin rejects requests from anonymous or non-admin users
func (m *AuthMiddleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := GetUserFromContext(r.Context())
		if user == nil {
			writeAuthError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		if !user.IsAdmin {
			writeAuthError(w, http.StatusForbidden, "admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetUserFromContext returns the signed-in user, or nil for anonymous
// requests
func GetUserFromContext(ctx context.Context) *models.User {
	user, _ := ctx.Value(UserContextKey).(*models.User)
	return user
}

func writeAuthError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
