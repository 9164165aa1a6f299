package httpapi

import (
	"context"
	"net/http"
	"strings"
)

const (
	// SessionCookie carries the session id for browsers.
	SessionCookie = "hfocr_session"
	// SessionHeader carries the session id for API clients.
	SessionHeader = "X-Session-ID"
)

type ctxKey int

const sessionKey ctxKey = iota

// requestedSession returns the id the client presented, header first.
func requestedSession(r *http.Request) string {
	if v := strings.TrimSpace(r.Header.Get(SessionHeader)); v != "" {
		return v
	}
	if c, err := r.Cookie(SessionCookie); err == nil {
		return c.Value
	}
	return ""
}

// sessionFrom returns the id resolved by withSession.
func sessionFrom(ctx context.Context) string {
	id, _ := ctx.Value(sessionKey).(string)
	return id
}

// setSession tells the client which session to use from now on.
func setSession(w http.ResponseWriter, id string) {
	w.Header().Set(SessionHeader, id)
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    id,
		Path:     "/",
		MaxAge:   int(sessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

// withSession resolves or creates the caller's session and stores its id in the
// request context. A replacement id is sent back as cookie and header.
func withSession(svc Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			asked := requestedSession(r)
			id, _, err := svc.Describe(asked)
			if err != nil {
				writeErrorResponse(w, errorResponse(err))
				return
			}
			if id != asked {
				setSession(w, id)
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), sessionKey, id)))
		})
	}
}
