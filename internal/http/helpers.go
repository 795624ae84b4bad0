package http

import (
	"net/http"
	"strings"
	"time"
)

// SessionCookieName carries the drawer session id.
const SessionCookieName = "drawer_session"

// sessionID returns the id from the session cookie, "" when absent.
func sessionID(r *http.Request) string {
	c, err := r.Cookie(SessionCookieName)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(c.Value)
}

// setSessionCookie binds the browser to id. ttl becomes Max-Age; zero makes
// it a browser-session cookie. Every resolved request re-sends it so the
// cookie expiry slides with the server-side idle TTL.
func setSessionCookie(w http.ResponseWriter, r *http.Request, id string, ttl time.Duration) {
	c := &http.Cookie{
		Name:     SessionCookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	}
	if ttl > 0 {
		c.MaxAge = int(ttl / time.Second)
	}
	http.SetCookie(w, c)
}

// sanitizeInput removes control characters and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	result := strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
	return result
}
