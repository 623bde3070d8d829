package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/nichebazar/marketplace/internal/es"
	"github.com/nichebazar/marketplace/internal/logging"
	"github.com/nichebazar/marketplace/internal/models"
	"github.com/nichebazar/marketplace/internal/mykafka"
	"github.com/nichebazar/marketplace/internal/transport"
	"github.com/nichebazar/marketplace/internal/util"
)

type BusinessHandler struct {
	DB       *gorm.DB
	Producer *mykafka.Producer
	ES       *elasticsearch.Client
	Index    string
}

// List returns up to 100 newest listings, optionally restricted to verified
// records and/or an exact (case-insensitive) submitter email.
func (h *BusinessHandler) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "business.list")

	query := h.DB.WithContext(ctx).
		Model(&models.Business{}).
		Order("created_at DESC").
		Limit(util.MaxListLimit)

	if c.QueryParam("onlyVerified") == "true" {
		query = query.Where("status = ?", models.StatusApproved)
	}
	if email := util.NormalizeEmail(c.QueryParam("email")); email != "" {
		query = query.Where("email = ?", email)
	}

	var items []models.Business
	if err := query.Find(&items).Error; err != nil {
		l.Error("list failed", "status", 500, "error", err)
		return errorJSON(c, http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"data": transport.BusinessesFromModels(items)})
}

// Submit inserts a new pending listing. Duplicate (name, email) pairs are
// rejected; name matching is case-insensitive.
func (h *BusinessHandler) Submit(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "business.submit")

	var req transport.SubmitBusinessRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid body")
	}

	name := strings.TrimSpace(req.Name)
	email := util.NormalizeEmail(req.Email)
	if name == "" || email == "" {
		l.Warn("submit rejected", "status", 400, "reason", "missing name or email")
		return errorJSON(c, http.StatusBadRequest, "Missing required fields")
	}

	var existing models.Business
	err := h.DB.WithContext(ctx).
		Where("normalized_name = ? AND email = ?", util.NormalizeName(name), email).
		First(&existing).Error
	if err == nil {
		l.Warn("submit rejected", "status", 409, "reason", "duplicate submission")
		return errorJSON(c, http.StatusConflict, "A submission for this business already exists with this email.")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return errorJSON(c, http.StatusBadRequest, err.Error())
	}

	business := models.Business{
		OwnerName:        req.OwnerName,
		Name:             name,
		NormalizedName:   util.NormalizeName(name),
		Email:            email,
		InstagramHandle:  req.InstagramHandle,
		Description:      req.Description,
		ProductsServices: req.ProductsServices,
		Category:         req.Category,
		Address:          req.Address,
		City:             req.City,
		State:            req.State,
		ZipCode:          req.ZipCode,
		Phone:            req.Phone,
		Website:          req.Website,
		ImageURL:         req.ImageURL,
		Tags:             splitTags(req.Tags),
		Status:           models.StatusPending,
	}
	if err := h.DB.WithContext(ctx).Create(&business).Error; err != nil {
		l.Error("submit failed", "status", 400, "error", err)
		return errorJSON(c, http.StatusBadRequest, err.Error())
	}

	publish(c, h.Producer, "business_events", business.ID.String(), map[string]interface{}{
		"type":       "business_submitted",
		"businessID": business.ID.String(),
		"name":       business.Name,
	})

	l.Info("submit success", "business_id", business.ID.String())
	return c.JSON(http.StatusCreated, echo.Map{"data": transport.BusinessFromModel(&business)})
}

// Moderate approves or rejects a listing. Any prior state can be moderated
// again; approval clears the rejection comment.
func (h *BusinessHandler) Moderate(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "business.moderate")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "Missing id")
	}

	var req transport.ModerateBusinessRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid body")
	}

	var business models.Business
	if err := h.DB.WithContext(ctx).First(&business, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errorJSON(c, http.StatusNotFound, "business not found")
		}
		return errorJSON(c, http.StatusBadRequest, err.Error())
	}

	var eventType string
	if req.Action == "reject" {
		comment := util.TruncateRunes(req.Comment, models.MaxRejectionComment)
		business.Status = models.StatusRejected
		if comment != "" {
			business.RejectionComment = &comment
		} else {
			business.RejectionComment = nil
		}
		eventType = "business_rejected"
	} else {
		// default action is approve
		business.Status = models.StatusApproved
		business.RejectionComment = nil
		eventType = "business_approved"
	}

	if err := h.DB.WithContext(ctx).Save(&business).Error; err != nil {
		l.Error("moderate failed", "status", 400, "error", err)
		return errorJSON(c, http.StatusBadRequest, err.Error())
	}

	if business.Status == models.StatusApproved && h.ES != nil {
		doc := transport.BusinessFromModel(&business)
		if err := es.IndexDocument(ctx, h.ES, h.Index, business.ID.String(), doc); err != nil {
			l.Warn("search index failed", "business_id", business.ID.String(), "error", err)
		}
	}

	publish(c, h.Producer, "business_events", business.ID.String(), map[string]interface{}{
		"type":       eventType,
		"businessID": business.ID.String(),
		"name":       business.Name,
	})

	l.Info("moderate success", "business_id", business.ID.String(), "status", string(business.Status))
	return c.JSON(http.StatusOK, echo.Map{"data": transport.BusinessFromModel(&business)})
}

// Delete is intentionally disabled; rejection is the soft-delete path.
func (h *BusinessHandler) Delete(c echo.Context) error {
	return errorJSON(c, http.StatusMethodNotAllowed, "Deletion is disabled. Use PATCH with action='reject'.")
}

func splitTags(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return []string{}
	}
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
