package handlers

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/nichebazar/marketplace/internal/storage"
)

func multipartUpload(t *testing.T, e *echo.Echo, filename string, content []byte) (*httptest.ResponseRecorder, echo.Context) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload", &buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	return rec, c
}

func TestUpload(t *testing.T) {
	store, err := storage.NewDiskStore(t.TempDir(), "business-images", "http://localhost:8080")
	require.NoError(t, err)
	h := &UploadHandler{Store: store}
	e := echo.New()

	rec, c := multipartUpload(t, e, "my photo (1).png", []byte("fake-png"))
	require.NoError(t, h.Upload(c))
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	path, _ := body["path"].(string)
	url, _ := body["url"].(string)
	require.Contains(t, path, "my_photo__1_.png")
	require.Contains(t, path, "public/")
	require.Contains(t, url, "/storage/business-images/"+path)
}

func TestUploadRequiresFile(t *testing.T) {
	store, err := storage.NewDiskStore(t.TempDir(), "business-images", "http://localhost:8080")
	require.NoError(t, err)
	h := &UploadHandler{Store: store}
	e := echo.New()

	req := httptest.NewRequest(http.MethodPost, "/api/upload", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.Upload(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
