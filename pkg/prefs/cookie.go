package prefs

import (
	"net/http"
	"strings"
)

const (
	// CookieName is the cookie the server reads the theme from.
	CookieName = "theme"
	// CookieMaxAge keeps the cookie for one year.
	CookieMaxAge = 31536000
)

// ReadCookie returns the theme cookie of r, or "" when absent.
func ReadCookie(r *http.Request) string {
	if r == nil {
		return ""
	}
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(cookie.Value)
}

// WriteCookie sets the theme cookie on w.
func WriteCookie(w http.ResponseWriter, p Preferences) {
	if w == nil || p.Theme == "" {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    p.Theme,
		Path:     "/",
		MaxAge:   CookieMaxAge,
		SameSite: http.SameSiteStrictMode,
	})
}

// Load reconciles the store with the request cookie and repairs whichever
// side is stale.
func Load(store Store, r *http.Request, w http.ResponseWriter) Preferences {
	var stored string
	if store != nil {
		stored, _ = store.Theme()
	}
	p, sync := Reconcile(stored, ReadCookie(r))
	if sync.Store && store != nil {
		store.SetTheme(p.Theme)
	}
	if sync.Cookie {
		WriteCookie(w, p)
	}
	return p
}
