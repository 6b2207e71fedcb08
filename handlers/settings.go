package handlers

import (
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase/core"

	"pricehub/services"
)

// HandleSettingsSave stores the sidebar controls (acting role and the two
// calculation bases) in cookies, then sends the user back where they were.
func HandleSettingsSave() func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := e.Request.ParseForm(); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid form data")
		}

		setCookie := func(name, value string) {
			http.SetCookie(e.Response, &http.Cookie{
				Name:     name,
				Value:    value,
				Path:     "/",
				SameSite: http.SameSiteLaxMode,
			})
		}

		if role := strings.TrimSpace(e.Request.FormValue("role")); role != "" {
			setCookie(cookieRole, role)
		}
		if v := e.Request.FormValue("margin_basis"); v != "" {
			setCookie(cookieMarginBasis, string(services.ParseBasis(v)))
		}
		if v := e.Request.FormValue("target_basis"); v != "" {
			setCookie(cookieTargetBasis, string(services.ParseBasis(v)))
		}

		redirectURL := e.Request.Referer()
		if redirectURL == "" {
			redirectURL = "/books"
		}
		if e.Request.Header.Get("HX-Request") == "true" {
			e.Response.Header().Set("HX-Redirect", redirectURL)
			return e.String(http.StatusOK, "")
		}
		return e.Redirect(http.StatusFound, redirectURL)
	}
}
