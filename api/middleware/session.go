package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
)

const (
	sessionCookie = "sf_session"
	sessionHeader = "X-Cart-Session"
)

// CartSession guarantees every request carries a storefront session id.
// The id comes from the session cookie, the X-Cart-Session header for
// cookieless clients, or is minted here and set on the response.
func CartSession(secure bool, ttl time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID := ""
			if cookie, err := r.Cookie(sessionCookie); err == nil {
				sessionID = cookie.Value
			}
			if sessionID == "" {
				sessionID = r.Header.Get(sessionHeader)
			}
			if sessionID == "" {
				sessionID = uuid.NewString()
				http.SetCookie(w, &http.Cookie{
					Name:     sessionCookie,
					Value:    sessionID,
					Path:     "/",
					MaxAge:   int(ttl.Seconds()),
					HttpOnly: true,
					Secure:   secure,
					SameSite: http.SameSiteLaxMode,
				})
			}

			w.Header().Set(sessionHeader, sessionID)
			ctx := context.WithValue(r.Context(), ctxCartSession, sessionID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
