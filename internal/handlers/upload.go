package handlers

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/nichebazar/marketplace/internal/logging"
	"github.com/nichebazar/marketplace/internal/storage"
	"github.com/nichebazar/marketplace/internal/util"
)

type UploadHandler struct {
	Store storage.ObjectStore
}

// Upload accepts one multipart file and stores it under a collision-free
// name, returning the public URL.
func (h *UploadHandler) Upload(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "upload")

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "No file provided")
	}

	src, err := fileHeader.Open()
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, err.Error())
	}
	defer src.Close()

	safeName := util.SanitizeFilename(fileHeader.Filename)
	objectPath := fmt.Sprintf("public/%d-%s-%s", time.Now().UnixMilli(), randomSuffix(), safeName)

	contentType := fileHeader.Header.Get("Content-Type")
	if err := h.Store.Upload(ctx, objectPath, src, contentType); err != nil {
		l.Error("upload failed", "bucket", h.Store.Bucket(), "error", err)
		msg := fmt.Sprintf("Upload failed: %v. Ensure bucket %q exists and allows uploads.", err, h.Store.Bucket())
		return errorJSON(c, http.StatusBadRequest, msg)
	}

	l.Info("upload success", "path", objectPath)
	return c.JSON(http.StatusOK, echo.Map{
		"url":  h.Store.PublicURL(objectPath),
		"path": objectPath,
	})
}

func randomSuffix() string {
	b := make([]byte, 6)
	rand.Read(b)
	return hex.EncodeToString(b)
}
