package handlers

import (
	"net/http"
	"regexp"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/craftedge/storefront/internal/models"
	"github.com/craftedge/storefront/internal/token"
)

const AuthCookieName = "auth-token"

var (
	emailRe   = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	pincodeRe = regexp.MustCompile(`^[0-9]{6}$`)
)

func CreateAuthCookie(value string, secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     AuthCookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   int(token.TTL.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
	}
}

func DeleteAuthCookie(secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     AuthCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
	}
}

// requestToken pulls the session token from the auth cookie or, failing
// that, a bearer Authorization header.
func requestToken(c echo.Context) string {
	if cookie, err := c.Cookie(AuthCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	auth := c.Request().Header.Get(echo.HeaderAuthorization)
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return ""
}

// authenticate resolves the caller's identity. A missing token and a bad
// one produce the same 401; callers get no finer distinction.
func authenticate(c echo.Context, tokens *token.Service) (token.Claims, error) {
	raw := requestToken(c)
	if raw == "" {
		return token.Claims{}, echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}
	claims, err := tokens.Verify(raw)
	if err != nil {
		return token.Claims{}, echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired token")
	}
	return claims, nil
}

type userResponse struct {
	ID        uint   `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Address   string `json:"address"`
	Apartment string `json:"apartment"`
	City      string `json:"city"`
	State     string `json:"state"`
	Pincode   string `json:"pincode"`
}

func sanitizeUser(u *models.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Address:   u.Address,
		Apartment: u.Apartment,
		City:      u.City,
		State:     u.State,
		Pincode:   u.Pincode,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
