package handlers

import (
	"net/http"
	"strconv"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"

	"github.com/nichebazar/marketplace/internal/logging"
	"github.com/nichebazar/marketplace/internal/service/search"
	"github.com/nichebazar/marketplace/internal/util"
)

type SearchHandler struct {
	ES    *elasticsearch.Client
	Index string
}

func (h *SearchHandler) Search(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "search")

	q := c.QueryParam("q")
	if q == "" {
		return errorJSON(c, http.StatusBadRequest, "query required")
	}

	if h.ES == nil {
		l.Warn("search unavailable", "status", 503, "reason", "elasticsearch disabled")
		return errorJSON(c, http.StatusServiceUnavailable, "Search is not available")
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	size, _ := strconv.Atoi(c.QueryParam("size"))
	from, size := util.Calculate(page, size)

	total, businesses, err := search.Search(ctx, h.ES, h.Index, q, from, size)
	if err != nil {
		l.Error("search failed", "status", 500, "error", err)
		return errorJSON(c, http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"total": total, "businesses": businesses})
}
