package sessiongate

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/craftedge/storefront/internal/handlers"
	"github.com/craftedge/storefront/internal/token"
)

// Config gates page routes by session state. Protected prefixes require a
// valid session, AuthOnly prefixes (login/signup pages) bounce users that
// already have one.
type Config struct {
	Tokens     *token.Service
	CookieName string

	Protected []string
	AuthOnly  []string

	LoginPath     string
	DashboardPath string
}

func DefaultConfig(tokens *token.Service) Config {
	return Config{
		Tokens:        tokens,
		CookieName:    handlers.AuthCookieName,
		Protected:     []string{"/dashboard", "/profile", "/orders"},
		AuthOnly:      []string{"/login", "/signup"},
		LoginPath:     "/login",
		DashboardPath: "/dashboard",
	}
}

func Middleware(cfg Config) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			path := c.Request().URL.Path

			// Absent, invalid and expired tokens are all just
			// "unauthenticated" here.
			authenticated := false
			if cookie, err := c.Cookie(cfg.CookieName); err == nil && cookie.Value != "" {
				if _, err := cfg.Tokens.Verify(cookie.Value); err == nil {
					authenticated = true
				}
			}

			if hasPrefix(path, cfg.Protected) && !authenticated {
				loginURL := cfg.LoginPath + "?redirect=" + url.QueryEscape(path)
				return c.Redirect(http.StatusFound, loginURL)
			}

			if hasPrefix(path, cfg.AuthOnly) && authenticated {
				return c.Redirect(http.StatusFound, cfg.DashboardPath)
			}

			return next(c)
		}
	}
}

func hasPrefix(path string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}
