package broker

import (
	"net/http"
	"time"

	"github.com/google/uuid"
)

const (
	// sessionCookieName carries the pseudonymous user identity. It is a
	// correlation token only — nothing validates it against the sign-in
	// allow-list, and it grants no access by itself.
	sessionCookieName = "chatkit_session_id"

	sessionCookieMaxAge = 30 * 24 * time.Hour
)

// resolveIdentity returns the caller's pseudonymous user id, minting a
// fresh one when the request carries no session cookie. minted reports
// whether the response must set the cookie.
func resolveIdentity(r *http.Request) (userID string, minted bool) {
	if c, err := r.Cookie(sessionCookieName); err == nil && c.Value != "" {
		return c.Value, false
	}
	return uuid.NewString(), true
}

// sessionCookie builds the Set-Cookie value for a freshly minted identity.
func sessionCookie(value string) *http.Cookie {
	return &http.Cookie{
		Name:     sessionCookieName,
		Value:    value,
		MaxAge:   int(sessionCookieMaxAge.Seconds()),
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	}
}
