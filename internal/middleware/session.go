package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/socialchef/leftovers/internal/kitchen"
	"github.com/socialchef/leftovers/internal/session"
)

type contextKey string

const SessionKey contextKey = "session"

const (
	// CookieName carries the signed session token.
	CookieName = "leftovers_session"
	issuer     = "leftovers"
	sessionTTL = session.DefaultTTL
)

// Sessions issues and verifies signed session cookies.
type Sessions struct {
	secret []byte
	store  *session.Store
	secure bool
}

func NewSessions(secret string, store *session.Store, secure bool) *Sessions {
	return &Sessions{secret: []byte(secret), store: store, secure: secure}
}

// Token signs a session ID.
func (m *Sessions) Token(sessionID string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   sessionID,
		Issuer:    issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(sessionTTL)),
	})
	return token.SignedString(m.secret)
}

// Parse verifies a session token and returns the session ID it carries.
func (m *Sessions) Parse(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithIssuer(issuer))
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", fmt.Errorf("missing sub claim")
	}
	return claims.Subject, nil
}

// Middleware attaches the caller's session to the request context, starting
// a new one (with a fresh cookie) when the cookie is missing, invalid or
// refers to a session this process no longer holds.
func (m *Sessions) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := m.lookup(r)
		if sess == nil {
			sess = m.store.Create()
			token, err := m.Token(sess.ID)
			if err != nil {
				slog.ErrorContext(r.Context(), "Failed to sign session token", "error", err)
				http.Error(w, "Failed to start session", http.StatusInternalServerError)
				return
			}
			http.SetCookie(w, &http.Cookie{
				Name:     CookieName,
				Value:    token,
				Path:     "/",
				HttpOnly: true,
				Secure:   m.secure,
				SameSite: http.SameSiteLaxMode,
				MaxAge:   int(sessionTTL.Seconds()),
			})
			slog.DebugContext(r.Context(), "Started session", "session_id", sess.ID)
		}

		ctx := context.WithValue(r.Context(), SessionKey, sess)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *Sessions) lookup(r *http.Request) *kitchen.Session {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return nil
	}
	id, err := m.Parse(cookie.Value)
	if err != nil {
		slog.DebugContext(r.Context(), "Rejected session cookie", "error", err)
		return nil
	}
	sess, ok := m.store.Get(id)
	if !ok {
		return nil
	}
	return sess
}

// GetSession extracts the session from request context
func GetSession(ctx context.Context) (*kitchen.Session, bool) {
	sess, ok := ctx.Value(SessionKey).(*kitchen.Session)
	return sess, ok && sess != nil
}

// RequireSession is a helper that returns 401 if no session is in context
func RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := GetSession(r.Context()); !ok {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}
