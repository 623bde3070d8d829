package handlers

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/nichebazar/marketplace/internal/logging"
	"github.com/nichebazar/marketplace/internal/mykafka"
)

// errorJSON keeps every failure on the {"error": ...} wire shape.
func errorJSON(c echo.Context, code int, msg string) error {
	return c.JSON(code, echo.Map{"error": msg})
}

// publish sends a domain event best-effort: failures are logged and never
// fail the request.
func publish(c echo.Context, producer *mykafka.Producer, topic, key string, event map[string]interface{}) {
	if producer == nil {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := producer.PublishEvent(ctx, topic, key, event); err != nil {
		logging.FromContext(c.Request().Context()).Error("kafka publish error", "topic", topic, "error", err)
	}
}
