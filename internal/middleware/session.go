package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/mtlprog/catpage/internal/config"
	"github.com/mtlprog/catpage/internal/domain"
)

type contextKey string

const (
	// ContextKeySession is the key for storing the session ID in request context.
	ContextKeySession contextKey = "session"
)

// SessionMiddleware gives every visitor a stable session ID cookie.
type SessionMiddleware struct {
	cookieName string
	secure     bool
}

// NewSessionMiddleware creates a new SessionMiddleware. Set secure when the
// site is served over HTTPS.
func NewSessionMiddleware(secure bool) *SessionMiddleware {
	return &SessionMiddleware{
		cookieName: config.SessionCookieName,
		secure:     secure,
	}
}

// Attach reads the session cookie, issuing a new one when it is missing or
// malformed, and adds the session ID to the request context.
func (m *SessionMiddleware) Attach(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionID := ""
		if cookie, err := r.Cookie(m.cookieName); err == nil {
			if id, err := uuid.Parse(cookie.Value); err == nil {
				sessionID = id.String()
			}
		}

		if sessionID == "" {
			sessionID = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     m.cookieName,
				Value:    sessionID,
				Path:     "/",
				MaxAge:   config.SessionCookieMaxAge,
				HttpOnly: true,
				Secure:   m.secure,
				SameSite: http.SameSiteLaxMode,
			})
		}

		ctx := WithSession(r.Context(), sessionID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// WithSession returns a context carrying sessionID.
func WithSession(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, ContextKeySession, sessionID)
}

// GetSessionFromContext retrieves the session ID from request context.
func GetSessionFromContext(ctx context.Context) (string, error) {
	sessionID, ok := ctx.Value(ContextKeySession).(string)
	if !ok || sessionID == "" {
		return "", domain.ErrSessionNotFound
	}
	return sessionID, nil
}
