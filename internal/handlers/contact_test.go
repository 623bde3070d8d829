package handlers

import (
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/nichebazar/marketplace/internal/mail"
	"github.com/nichebazar/marketplace/internal/transport"
)

func TestContactValidation(t *testing.T) {
	h := &ContactHandler{Mailer: mail.NewMailer(mail.Config{}), Recipient: "owner@example.com"}
	e := echo.New()

	rec, c := doJSONRequest(t, e, http.MethodPost, "/api/contact",
		transport.ContactRequest{Name: "Ann", Email: "ann@example.com"})
	require.NoError(t, h.Relay(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec2, c2 := doJSONRequest(t, e, http.MethodPost, "/api/contact",
		transport.ContactRequest{Name: "Ann", Email: "nope", Message: "hello"})
	require.NoError(t, h.Relay(c2))
	require.Equal(t, http.StatusBadRequest, rec2.Code)
}

func TestContactUnconfiguredMailer(t *testing.T) {
	h := &ContactHandler{Mailer: mail.NewMailer(mail.Config{}), Recipient: "owner@example.com"}
	e := echo.New()

	rec, c := doJSONRequest(t, e, http.MethodPost, "/api/contact",
		transport.ContactRequest{Name: "Ann", Email: "ann@example.com", Message: "hello"})
	require.NoError(t, h.Relay(c))
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	body := decodeBody(t, rec)
	require.Equal(t, "Email service not configured", body["error"])
}
