package http

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
)

const flashCookieName = "flash"

type FlashLevel string

const (
	FlashSuccess FlashLevel = "success"
	FlashWarning FlashLevel = "warning"
	FlashError   FlashLevel = "error"
)

// Flash is a one-shot message the kiosk page shows after a form redirect.
type Flash struct {
	Level   FlashLevel `json:"level"`
	Message string     `json:"message"`
}

// setFlash stores f in a short-lived cookie the kiosk page reads with JavaScript.
func setFlash(w http.ResponseWriter, f Flash) {
	payload, err := json.Marshal(f)
	if err != nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    base64.RawURLEncoding.EncodeToString(payload),
		Path:     "/",
		MaxAge:   60,
		HttpOnly: false,
		SameSite: http.SameSiteLaxMode,
	})
}

// redirectTarget returns the local path the form was posted from, or "/".
// Only the path and query of the Referer are kept so the redirect never leaves the site.
func redirectTarget(r *http.Request) string {
	ref, err := url.Parse(r.Referer())
	if err != nil || ref.Path == "" || !strings.HasPrefix(ref.Path, "/") || strings.HasPrefix(ref.Path, "//") {
		return "/"
	}
	target := ref.Path
	if ref.RawQuery != "" {
		target += "?" + ref.RawQuery
	}
	return target
}

func redirectWithFlash(w http.ResponseWriter, r *http.Request, f Flash) {
	setFlash(w, f)
	http.Redirect(w, r, redirectTarget(r), http.StatusSeeOther)
}
