package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/craftedge/storefront/internal/hash"
	"github.com/craftedge/storefront/internal/logging"
	"github.com/craftedge/storefront/internal/models"
	"github.com/craftedge/storefront/internal/token"
)

type ProfileHandler struct {
	DB     *gorm.DB
	Tokens *token.Service
}

func (h *ProfileHandler) loadUser(c echo.Context) (*models.User, error) {
	claims, err := authenticate(c, h.Tokens)
	if err != nil {
		return nil, err
	}

	var user models.User
	if err := h.DB.First(&user, claims.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return nil, echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}
	return &user, nil
}

func (h *ProfileHandler) GetProfile(c echo.Context) error {
	user, err := h.loadUser(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"user": sanitizeUser(user)})
}

func (h *ProfileHandler) UpdateProfile(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "profile_update")

	user, err := h.loadUser(c)
	if err != nil {
		return err
	}

	var req struct {
		FirstName       string `json:"firstName"`
		LastName        string `json:"lastName"`
		Address         string `json:"address"`
		Apartment       string `json:"apartment"`
		City            string `json:"city"`
		State           string `json:"state"`
		Pincode         string `json:"pincode"`
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("update_failed", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	if req.FirstName == "" || req.LastName == "" || req.Address == "" ||
		req.City == "" || req.State == "" || req.Pincode == "" {
		l.Warn("update_failed", "status", 400, "reason", "missing_fields")
		return echo.NewHTTPError(http.StatusBadRequest, "All required fields must be provided")
	}

	// Password change rides along only when the full chain passes; the
	// stored hash is untouched otherwise.
	if req.NewPassword != "" {
		if req.CurrentPassword == "" {
			l.Warn("update_failed", "status", 400, "reason", "missing_current_password")
			return echo.NewHTTPError(http.StatusBadRequest, "Current password is required to set a new password")
		}
		if !hash.CheckPassword(user.PasswordHash, req.CurrentPassword) {
			l.Warn("update_failed", "status", 401, "reason", "wrong_current_password")
			return echo.NewHTTPError(http.StatusUnauthorized, "Current password is incorrect")
		}
		if len(req.NewPassword) < 8 {
			l.Warn("update_failed", "status", 400, "reason", "weak_password")
			return echo.NewHTTPError(http.StatusBadRequest, "New password must be at least 8 characters long")
		}
		pwHash, err := hash.HashPassword(req.NewPassword)
		if err != nil {
			l.Error("update_failed", "status", 500, "reason", "hash_error", "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
		}
		user.PasswordHash = pwHash
	}

	user.FirstName = req.FirstName
	user.LastName = req.LastName
	user.Address = req.Address
	user.Apartment = req.Apartment
	user.City = req.City
	user.State = req.State
	user.Pincode = req.Pincode

	if err := h.DB.Save(user).Error; err != nil {
		l.Error("update_failed", "status", 500, "reason", "db_error", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}

	l.Info("update_success", "userID", user.ID)
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Profile updated successfully",
		"user":    sanitizeUser(user),
	})
}
