package middleware

import (
	"net/http"
	"net/url"
)

// Flash kinds. The kind selects the banner style in templates.
const (
	FlashError   = "error"
	FlashSuccess = "success"
)

const flashCookiePrefix = "gym_flash_"

// SetFlash stores a one-shot message in a cookie, read and cleared by the
// next rendered page.
// PRE: kind is FlashError or FlashSuccess
// POST: A flash cookie for kind is set on the response
func SetFlash(w http.ResponseWriter, kind, message string) {
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookiePrefix + kind,
		Value:    url.QueryEscape(message),
		HttpOnly: true,
		Secure:   SecureCookies,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
		MaxAge:   60,
	})
}

// TakeFlash returns the flash message of the given kind, clearing its
// cookie. Returns "" when no flash is set.
// PRE: kind is FlashError or FlashSuccess
// POST: The flash cookie for kind is expired on the response
func TakeFlash(w http.ResponseWriter, r *http.Request, kind string) string {
	cookie, err := r.Cookie(flashCookiePrefix + kind)
	if err != nil || cookie.Value == "" {
		return ""
	}
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookiePrefix + kind,
		Value:    "",
		HttpOnly: true,
		Secure:   SecureCookies,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
		MaxAge:   -1,
	})
	message, err := url.QueryUnescape(cookie.Value)
	if err != nil {
		return ""
	}
	return message
}
