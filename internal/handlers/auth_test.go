package handlers

import (
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/nichebazar/marketplace/internal/hash"
	"github.com/nichebazar/marketplace/internal/models"
	"github.com/nichebazar/marketplace/internal/transport"
)

func TestSignup(t *testing.T) {
	db := newTestDB(t)
	h := &AuthHandler{DB: db, JWTSecret: []byte("test-secret"), RefreshSecret: []byte("test-refresh")}
	e := echo.New()

	rec, c := doJSONRequest(t, e, http.MethodPost, "/api/auth/signup",
		transport.SignupRequest{Email: "Shopper@Example.com", Password: "hunter22"})
	require.NoError(t, h.Signup(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	body := decodeBody(t, rec)
	require.Equal(t, true, body["ok"])

	var user models.User
	require.NoError(t, db.First(&user, "email = ?", "shopper@example.com").Error)
	require.True(t, user.EmailConfirmed)
	require.NotEqual(t, "hunter22", user.PasswordHash)

	var profile models.Profile
	require.NoError(t, db.First(&profile, "id = ?", user.ID).Error)
	require.Equal(t, "buyer", profile.Role)
	require.Equal(t, "shopper@example.com", profile.Email)
}

func TestSignupRejectsInvalidInput(t *testing.T) {
	db := newTestDB(t)
	h := &AuthHandler{DB: db, JWTSecret: []byte("test-secret"), RefreshSecret: []byte("test-refresh")}
	e := echo.New()

	rec, c := doJSONRequest(t, e, http.MethodPost, "/api/auth/signup",
		transport.SignupRequest{Email: "not-an-email", Password: "hunter22"})
	require.NoError(t, h.Signup(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec2, c2 := doJSONRequest(t, e, http.MethodPost, "/api/auth/signup",
		transport.SignupRequest{Email: "a@b.com", Password: "short"})
	require.NoError(t, h.Signup(c2))
	require.Equal(t, http.StatusBadRequest, rec2.Code)
}

func TestSignupDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	h := &AuthHandler{DB: db, JWTSecret: []byte("test-secret"), RefreshSecret: []byte("test-refresh")}
	e := echo.New()

	rec, c := doJSONRequest(t, e, http.MethodPost, "/api/auth/signup",
		transport.SignupRequest{Email: "a@b.com", Password: "hunter22"})
	require.NoError(t, h.Signup(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec2, c2 := doJSONRequest(t, e, http.MethodPost, "/api/auth/signup",
		transport.SignupRequest{Email: "A@B.com", Password: "hunter22"})
	require.NoError(t, h.Signup(c2))
	require.Equal(t, http.StatusBadRequest, rec2.Code)
}

func TestLogin(t *testing.T) {
	db := newTestDB(t)
	h := &AuthHandler{DB: db, JWTSecret: []byte("test-secret"), RefreshSecret: []byte("test-refresh")}
	e := echo.New()

	passwordHash, err := hash.HashPassword("hunter22")
	require.NoError(t, err)
	admin := models.User{Email: "admin@example.com", PasswordHash: passwordHash, Role: "admin", EmailConfirmed: true}
	require.NoError(t, db.Create(&admin).Error)

	rec, c := doJSONRequest(t, e, http.MethodPost, "/api/auth/login",
		transport.LoginRequest{Email: "admin@example.com", Password: "hunter22"})
	require.NoError(t, h.Login(c))
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	require.NotEmpty(t, body["access_token"])
	require.NotEmpty(t, body["refresh_token"])
	require.Equal(t, true, body["is_admin"])

	var stored models.RefreshToken
	require.NoError(t, db.First(&stored, "user_id = ?", admin.ID).Error)
	require.False(t, stored.Revoked)
}

func TestLoginBadPassword(t *testing.T) {
	db := newTestDB(t)
	h := &AuthHandler{DB: db, JWTSecret: []byte("test-secret"), RefreshSecret: []byte("test-refresh")}
	e := echo.New()

	passwordHash, _ := hash.HashPassword("hunter22")
	user := models.User{Email: "a@b.com", PasswordHash: passwordHash, Role: "user"}
	require.NoError(t, db.Create(&user).Error)

	rec, c := doJSONRequest(t, e, http.MethodPost, "/api/auth/login",
		transport.LoginRequest{Email: "a@b.com", Password: "wrong"})
	require.NoError(t, h.Login(c))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
