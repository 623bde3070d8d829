package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/nichebazar/marketplace/internal/logging"
	"github.com/nichebazar/marketplace/internal/models"
	"github.com/nichebazar/marketplace/internal/transport"
	"github.com/nichebazar/marketplace/internal/util"
)

type ProfileHandler struct {
	DB *gorm.DB
}

var profileRoles = map[string]bool{"buyer": true, "vendor": true, "both": true}

// Upsert creates or updates the profile row keyed by user id.
func (h *ProfileHandler) Upsert(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "profile.upsert")

	var req transport.ProfileUpsertRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid body")
	}

	if req.ID == "" || req.Email == "" {
		return errorJSON(c, http.StatusBadRequest, "Missing id or email")
	}

	id, err := uuid.Parse(req.ID)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid id")
	}

	role := req.Role
	if role == "" {
		role = "buyer"
	}
	if !profileRoles[role] {
		return errorJSON(c, http.StatusBadRequest, "invalid role")
	}

	profile := models.Profile{
		ID:    id,
		Email: util.NormalizeEmail(req.Email),
		Role:  role,
	}
	if err := h.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"email", "role", "updated_at"}),
	}).Create(&profile).Error; err != nil {
		l.Error("profile upsert failed", "status", 400, "error", err)
		return errorJSON(c, http.StatusBadRequest, err.Error())
	}

	l.Info("profile upsert success", "profile_id", id.String())
	return c.JSON(http.StatusOK, echo.Map{"data": profile})
}
