package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/sessions"

	"stagefront/internal/models"
)

type contextKey string

const userContextKey contextKey = "user"

// SessionName is the cookie name for the main session
const SessionName = "stagefront_session"

// UserService loads users for authenticated sessions
type UserService interface {
	GetUser(id int) (*models.User, error)
}

// AuthMiddleware resolves the session user and attaches it to the
// request context.
type AuthMiddleware struct {
	store       sessions.Store
	userService UserService
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(store sessions.Store, userService UserService) *AuthMiddleware {
	return &AuthMiddleware{
		store:       store,
		userService: userService,
	}
}

// LoadUser attaches the logged-in user to the context when a valid
// session exists. Requests without a session pass through untouched.
func (m *AuthMiddleware) LoadUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, err := m.store.Get(r, SessionName)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		userID, ok := session.Values["user_id"].(int)
		if !ok {
			next.ServeHTTP(w, r)
			return
		}

		user, err := m.userService.GetUser(userID)
		if err != nil || !user.IsActive {
			next.ServeHTTP(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAuth rejects requests without a logged-in user
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if GetUserFromContext(r.Context()) == nil {
			writeAuthError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireOrganizer rejects requests from users who cannot manage events
func (m *AuthMiddleware) RequireOrganizer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := GetUserFromContext(r.Context())
		if user == nil {
			writeAuthError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		if !user.IsOrganizer() {
			writeAuthError(w, http.StatusForbidden, "organizer access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetUserFromContext returns the logged-in user, or nil
func GetUserFromContext(ctx context.Context) *models.User {
	user, _ := ctx.Value(userContextKey).(*models.User)
	return user
}

// WithUser returns a context carrying the given user, used by tests
func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

func writeAuthError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
