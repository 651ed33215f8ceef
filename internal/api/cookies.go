package api

import (
	"net/http"
	"time"
)

// Cookie names shared with the browser client.
const (
	AccessTokenCookie  = "accessToken"
	RefreshTokenCookie = "refreshToken"
)

// CookieSettings controls the session cookies written by AuthHandler.
type CookieSettings struct {
	// Secure sets the Secure attribute; enable it behind HTTPS.
	Secure          bool
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
}

func (s CookieSettings) sessionCookie(name, value string, ttl time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   s.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}

func (s CookieSettings) setAccessToken(w http.ResponseWriter, token string) {
	http.SetCookie(w, s.sessionCookie(AccessTokenCookie, token, s.AccessTokenTTL))
}

func (s CookieSettings) setRefreshToken(w http.ResponseWriter, token string) {
	http.SetCookie(w, s.sessionCookie(RefreshTokenCookie, token, s.RefreshTokenTTL))
}

// clear expires both session cookies in the browser.
func (s CookieSettings) clear(w http.ResponseWriter) {
	for _, name := range []string{AccessTokenCookie, RefreshTokenCookie} {
		c := s.sessionCookie(name, "", 0)
		c.MaxAge = -1
		c.Expires = time.Unix(0, 0)
		http.SetCookie(w, c)
	}
}

// cookieValue returns the named cookie's value, or "" when absent.
func cookieValue(r *http.Request, name string) string {
	c, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return c.Value
}
