package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/craftedge/storefront/internal/hash"
	"github.com/craftedge/storefront/internal/logging"
	"github.com/craftedge/storefront/internal/models"
	"github.com/craftedge/storefront/internal/mykafka"
	"github.com/craftedge/storefront/internal/token"
)

type AuthHandler struct {
	DB       *gorm.DB
	Tokens   *token.Service
	Producer *mykafka.Producer
	Secure   bool
}

func (h *AuthHandler) publish(c echo.Context, key string, event map[string]any) {
	if h.Producer == nil {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, "user_events", key, event); err != nil {
		c.Logger().Errorf("Kafka publish error: %v", err)
	}
}

func (h *AuthHandler) Signup(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_signup")

	var req struct {
		Email     string `json:"email"`
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
		Address   string `json:"address"`
		Apartment string `json:"apartment"`
		City      string `json:"city"`
		State     string `json:"state"`
		Pincode   string `json:"pincode"`
		Password  string `json:"password"`
	}

	if err := c.Bind(&req); err != nil {
		l.Warn("signup_failed", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	if req.Email == "" || req.FirstName == "" || req.LastName == "" ||
		req.Address == "" || req.City == "" || req.State == "" ||
		req.Pincode == "" || req.Password == "" {
		l.Warn("signup_failed", "status", 400, "reason", "missing_fields")
		return echo.NewHTTPError(http.StatusBadRequest, "All required fields must be provided")
	}

	email := normalizeEmail(req.Email)
	if !emailRe.MatchString(email) {
		l.Warn("signup_failed", "status", 400, "reason", "bad_email")
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid email address")
	}
	if !pincodeRe.MatchString(req.Pincode) {
		l.Warn("signup_failed", "status", 400, "reason", "bad_pincode")
		return echo.NewHTTPError(http.StatusBadRequest, "Pincode must be a 6-digit number")
	}

	var existing models.User
	if err := h.DB.Where("email = ?", email).First(&existing).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			l.Error("signup_failed", "status", 500, "reason", "db_error", "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
		}
	} else {
		l.Warn("signup_failed", "status", 409, "reason", "user_exists")
		return echo.NewHTTPError(http.StatusConflict, "User with this email already exists")
	}

	pwHash, err := hash.HashPassword(req.Password)
	if err != nil {
		l.Error("signup_failed", "status", 500, "reason", "hash_error", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}

	user := models.User{
		Email:        email,
		PasswordHash: pwHash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Address:      req.Address,
		Apartment:    req.Apartment,
		City:         req.City,
		State:        req.State,
		Pincode:      req.Pincode,
	}
	if err := h.DB.Create(&user).Error; err != nil {
		l.Error("signup_failed", "status", 500, "reason", "db_error", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}

	h.publish(c, fmt.Sprint(user.ID), map[string]any{
		"type":   "user_registered",
		"userID": user.ID,
		"email":  user.Email,
	})

	l.Info("signup_success", "status", 201, "userID", user.ID)
	return c.JSON(http.StatusCreated, echo.Map{
		"message": "User created successfully",
		"user":    sanitizeUser(&user),
	})
}

func (h *AuthHandler) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_login")

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := c.Bind(&req); err != nil {
		l.Warn("login_failed", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.Email == "" || req.Password == "" {
		l.Warn("login_failed", "status", 400, "reason", "missing_fields")
		return echo.NewHTTPError(http.StatusBadRequest, "Email and password are required")
	}

	// Unknown email and wrong password answer identically.
	var user models.User
	if err := h.DB.Where("email = ?", normalizeEmail(req.Email)).First(&user).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			l.Error("login_failed", "status", 500, "reason", "db_error", "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
		}
		l.Warn("login_failed", "status", 401, "reason", "invalid_credentials")
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid email or password")
	}
	if !hash.CheckPassword(user.PasswordHash, req.Password) {
		l.Warn("login_failed", "status", 401, "reason", "invalid_credentials")
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid email or password")
	}

	sessionToken, err := h.Tokens.Issue(token.Claims{UserID: user.ID, Email: user.Email})
	if err != nil {
		l.Error("login_failed", "status", 500, "reason", "token_error", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}

	c.SetCookie(CreateAuthCookie(sessionToken, h.Secure))

	h.publish(c, fmt.Sprint(user.ID), map[string]any{
		"type":   "user_logged_in",
		"userID": user.ID,
		"email":  user.Email,
	})

	l.Info("login_success", "userID", user.ID)
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Login successful",
		"user":    sanitizeUser(&user),
		"token":   sessionToken,
	})
}

// Logout clears the session cookie unconditionally; there is no server-side
// session state to tear down.
func (h *AuthHandler) Logout(c echo.Context) error {
	c.SetCookie(DeleteAuthCookie(h.Secure))
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Logout successful",
	})
}
