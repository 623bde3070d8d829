package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/nichebazar/marketplace/internal/logging"
	"github.com/nichebazar/marketplace/internal/models"
	"github.com/nichebazar/marketplace/internal/mykafka"
	"github.com/nichebazar/marketplace/internal/transport"
)

type ProductHandler struct {
	DB       *gorm.DB
	Producer *mykafka.Producer
}

// ListByBusiness returns a business's products, newest first.
func (h *ProductHandler) ListByBusiness(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.list")

	rawID := c.QueryParam("businessId")
	if rawID == "" {
		return errorJSON(c, http.StatusBadRequest, "Business ID is required")
	}
	businessID, err := uuid.Parse(rawID)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid business id")
	}

	var items []models.Product
	if err := h.DB.WithContext(ctx).
		Where("business_id = ?", businessID).
		Order("created_at DESC").
		Find(&items).Error; err != nil {
		l.Error("list failed", "status", 500, "error", err)
		return errorJSON(c, http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"data": items})
}

func (h *ProductHandler) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.create")

	var req transport.CreateProductRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid body")
	}

	if req.Name == "" || req.BusinessID == "" || req.Price <= 0 {
		l.Warn("create rejected", "status", 400, "reason", "missing fields")
		return errorJSON(c, http.StatusBadRequest, "Missing required fields")
	}
	businessID, err := uuid.Parse(req.BusinessID)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid business id")
	}

	product := models.Product{
		Name:       req.Name,
		Photo:      req.Photo,
		Dimensions: req.Dimensions,
		Size:       req.Size,
		Price:      req.Price,
		BusinessID: businessID,
	}
	if err := h.DB.WithContext(ctx).Create(&product).Error; err != nil {
		l.Error("create failed", "status", 500, "error", err)
		return errorJSON(c, http.StatusInternalServerError, err.Error())
	}

	publish(c, h.Producer, "product_events", product.ID.String(), map[string]interface{}{
		"type":      "product_created",
		"productID": product.ID.String(),
		"name":      product.Name,
	})

	l.Info("create success", "product_id", product.ID.String())
	return c.JSON(http.StatusCreated, echo.Map{"product": product})
}
