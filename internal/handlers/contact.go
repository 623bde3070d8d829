package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/nichebazar/marketplace/internal/logging"
	"github.com/nichebazar/marketplace/internal/mail"
	"github.com/nichebazar/marketplace/internal/transport"
	"github.com/nichebazar/marketplace/internal/util"
)

type ContactHandler struct {
	Mailer    *mail.Mailer
	Recipient string
}

// Relay forwards a contact-form enquiry to the configured recipient.
func (h *ContactHandler) Relay(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "contact")

	var req transport.ContactRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid body")
	}

	name := strings.TrimSpace(req.Name)
	email := strings.TrimSpace(req.Email)
	subject := strings.TrimSpace(req.Subject)
	message := strings.TrimSpace(req.Message)

	if name == "" || email == "" || message == "" {
		return errorJSON(c, http.StatusBadRequest, "Missing required fields")
	}
	if !util.IsValidEmail(email) {
		return errorJSON(c, http.StatusBadRequest, "Invalid email")
	}

	if !h.Mailer.Configured() || h.Recipient == "" {
		l.Error("contact relay unavailable", "status", 500, "reason", "smtp not configured")
		return errorJSON(c, http.StatusInternalServerError, "Email service not configured")
	}

	mailSubject := subject
	if mailSubject == "" {
		mailSubject = fmt.Sprintf("New enquiry from %s", name)
	}

	msg := mail.Message{
		To:      h.Recipient,
		ReplyTo: email,
		Subject: mailSubject,
		Text:    buildContactText(name, email, subject, message),
		HTML:    buildContactHTML(name, email, subject, message),
	}

	if err := h.Mailer.Send(ctx, msg); err != nil {
		l.Error("contact relay failed", "status", 500, "error", err)
		return errorJSON(c, http.StatusInternalServerError, "Failed to send message")
	}

	l.Info("contact relayed")
	return c.JSON(http.StatusOK, echo.Map{"ok": true})
}

func buildContactText(name, email, subject, message string) string {
	lines := []string{
		"You have received a new enquiry via the contact form:",
		"",
		"Name: " + name,
		"Email: " + email,
	}
	if subject != "" {
		lines = append(lines, "Subject: "+subject)
	}
	lines = append(lines, "", "Message:", message, "", "NicheBazar Contact Form")
	return strings.Join(lines, "\n")
}

func buildContactHTML(name, email, subject, message string) string {
	var b strings.Builder
	b.WriteString("<div>")
	b.WriteString("<p>You have received a new enquiry via the contact form:</p>")
	b.WriteString(fmt.Sprintf("<p><strong>Name:</strong> %s</p>", name))
	b.WriteString(fmt.Sprintf("<p><strong>Email:</strong> %s</p>", email))
	if subject != "" {
		b.WriteString(fmt.Sprintf("<p><strong>Subject:</strong> %s</p>", subject))
	}
	b.WriteString("<p><strong>Message:</strong></p>")
	b.WriteString(fmt.Sprintf("<pre style=\"white-space:pre-wrap;font-family:inherit;\">%s</pre>", message))
	b.WriteString("<hr/><p style=\"color:#6b7280\">NicheBazar Contact Form</p>")
	b.WriteString("</div>")
	return b.String()
}
