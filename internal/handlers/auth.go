package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/nichebazar/marketplace/internal/hash"
	"github.com/nichebazar/marketplace/internal/logging"
	"github.com/nichebazar/marketplace/internal/models"
	"github.com/nichebazar/marketplace/internal/mykafka"
	"github.com/nichebazar/marketplace/internal/service/token"
	"github.com/nichebazar/marketplace/internal/transport"
	"github.com/nichebazar/marketplace/internal/util"
)

type AuthHandler struct {
	DB            *gorm.DB
	JWTSecret     []byte
	RefreshSecret []byte
	Producer      *mykafka.Producer
}

// Signup creates a confirmed user and upserts the matching buyer profile.
func (h *AuthHandler) Signup(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.signup")

	var req transport.SignupRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid body")
	}

	email := util.NormalizeEmail(req.Email)
	if !util.IsValidEmail(email) || len(req.Password) < 6 {
		l.Warn("signup rejected", "status", 400, "reason", "invalid email or password")
		return errorJSON(c, http.StatusBadRequest, "Invalid email or password")
	}

	var existing models.User
	err := h.DB.Where("email = ?", email).First(&existing).Error
	if err == nil {
		l.Warn("signup rejected", "status", 400, "reason", "duplicate email")
		return errorJSON(c, http.StatusBadRequest, "A user with this email address has already been registered")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return errorJSON(c, http.StatusInternalServerError, err.Error())
	}

	passwordHash, err := hash.HashPassword(req.Password)
	if err != nil {
		return errorJSON(c, http.StatusInternalServerError, err.Error())
	}

	user := models.User{
		Email:          email,
		PasswordHash:   passwordHash,
		Role:           "user",
		EmailConfirmed: true,
	}
	if err := h.DB.Create(&user).Error; err != nil {
		return errorJSON(c, http.StatusBadRequest, err.Error())
	}

	profile := models.Profile{ID: user.ID, Email: email, Role: "buyer"}
	if err := h.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"email", "updated_at"}),
	}).Create(&profile).Error; err != nil {
		return errorJSON(c, http.StatusBadRequest, err.Error())
	}

	publish(c, h.Producer, "user_events", user.ID.String(), map[string]interface{}{
		"type":   "user_registered",
		"userID": user.ID.String(),
		"email":  user.Email,
	})

	l.Info("signup success", "user_id", user.ID.String())
	return c.JSON(http.StatusCreated, echo.Map{
		"ok":   true,
		"user": echo.Map{"id": user.ID, "email": user.Email},
	})
}

func (h *AuthHandler) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid body")
	}

	email := util.NormalizeEmail(req.Email)

	var user models.User
	if err := h.DB.Where("email = ?", email).First(&user).Error; err != nil {
		l.Warn("login failed", "status", 401, "reason", "unknown email")
		return errorJSON(c, http.StatusUnauthorized, "invalid email or password")
	}
	if !hash.CheckPassword(user.PasswordHash, req.Password) {
		l.Warn("login failed", "status", 401, "reason", "bad password")
		return errorJSON(c, http.StatusUnauthorized, "invalid email or password")
	}

	accessToken, err := token.SignAccessToken(user.ID, user.Role, h.JWTSecret)
	if err != nil {
		return errorJSON(c, http.StatusInternalServerError, "could not create access token")
	}
	refreshToken, err := token.SignRefreshToken(user.ID, user.Role, h.RefreshSecret)
	if err != nil {
		return errorJSON(c, http.StatusInternalServerError, "could not create refresh token")
	}
	if err := token.SaveRefreshToken(h.DB, refreshToken, user.ID, user.Role); err != nil {
		return errorJSON(c, http.StatusInternalServerError, err.Error())
	}

	c.SetCookie(token.NewCookie("accessToken", accessToken, "/", time.Now().Add(token.AccessTTL)))
	c.SetCookie(token.NewCookie("refreshToken", refreshToken, "/", time.Now().Add(token.RefreshTTL)))

	l.Info("login success", "user_id", user.ID.String())
	return c.JSON(http.StatusOK, echo.Map{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
		"is_admin":      user.Role == "admin",
	})
}

func (h *AuthHandler) Logout(c echo.Context) error {
	refreshCookie, err := c.Cookie("refreshToken")
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "refresh token missing")
	}

	result := h.DB.Model(&models.RefreshToken{}).
		Where("token = ?", refreshCookie.Value).
		Update("revoked", true)
	if result.Error != nil {
		return errorJSON(c, http.StatusInternalServerError, result.Error.Error())
	}

	expired := time.Now().Add(-1 * time.Hour)
	c.SetCookie(token.NewCookie("accessToken", "", "/", expired))
	c.SetCookie(token.NewCookie("refreshToken", "", "/", expired))

	return c.JSON(http.StatusOK, echo.Map{"message": "logged out"})
}
