package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/nichebazar/marketplace/internal/models"
	"github.com/nichebazar/marketplace/internal/transport"
)

func submitPayload(name, email string) transport.SubmitBusinessRequest {
	return transport.SubmitBusinessRequest{
		OwnerName:   "Joe",
		Name:        name,
		Email:       email,
		Category:    "Food",
		Description: "x",
		City:        "Springfield",
		Tags:        "coffee, pastry",
	}
}

func TestSubmitBusiness(t *testing.T) {
	db := newTestDB(t)
	h := &BusinessHandler{DB: db}
	e := echo.New()

	rec, c := doJSONRequest(t, e, http.MethodPost, "/api/businesses", submitPayload("Joe's Cafe", "a@b.com"))
	require.NoError(t, h.Submit(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		Data transport.BusinessResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.False(t, resp.Data.IsVerified)
	require.False(t, resp.Data.Rejected)
	require.Nil(t, resp.Data.RejectionComment)
	require.Equal(t, []string{"coffee", "pastry"}, resp.Data.Tags)
	require.Equal(t, "a@b.com", resp.Data.Email)
}

func TestSubmitBusinessMissingFields(t *testing.T) {
	db := newTestDB(t)
	h := &BusinessHandler{DB: db}
	e := echo.New()

	rec, c := doJSONRequest(t, e, http.MethodPost, "/api/businesses", submitPayload("", "a@b.com"))
	require.NoError(t, h.Submit(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSubmitBusinessDuplicate(t *testing.T) {
	db := newTestDB(t)
	h := &BusinessHandler{DB: db}
	e := echo.New()

	rec, c := doJSONRequest(t, e, http.MethodPost, "/api/businesses", submitPayload("Joe's Cafe", "a@b.com"))
	require.NoError(t, h.Submit(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	// same name in a different case, same email
	rec2, c2 := doJSONRequest(t, e, http.MethodPost, "/api/businesses", submitPayload("JOE'S CAFE", "a@b.com"))
	require.NoError(t, h.Submit(c2))
	require.Equal(t, http.StatusConflict, rec2.Code)

	var count int64
	require.NoError(t, db.Model(&models.Business{}).Count(&count).Error)
	require.Equal(t, int64(1), count)

	// same name, different email is a separate submission
	rec3, c3 := doJSONRequest(t, e, http.MethodPost, "/api/businesses", submitPayload("Joe's Cafe", "c@d.com"))
	require.NoError(t, h.Submit(c3))
	require.Equal(t, http.StatusCreated, rec3.Code)
}

func moderate(t *testing.T, h *BusinessHandler, e *echo.Echo, id string, body transport.ModerateBusinessRequest) *models.Business {
	t.Helper()
	rec, c := doJSONRequest(t, e, http.MethodPatch, "/api/businesses/"+id, body)
	c.SetParamNames("id")
	c.SetParamValues(id)
	require.NoError(t, h.Moderate(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var stored models.Business
	require.NoError(t, h.DB.First(&stored, "id = ?", id).Error)
	return &stored
}

func TestModerateApprove(t *testing.T) {
	db := newTestDB(t)
	h := &BusinessHandler{DB: db}
	e := echo.New()

	rec, c := doJSONRequest(t, e, http.MethodPost, "/api/businesses", submitPayload("Joe's Cafe", "a@b.com"))
	require.NoError(t, h.Submit(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var created struct {
		Data transport.BusinessResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	id := created.Data.ID.String()

	stored := moderate(t, h, e, id, transport.ModerateBusinessRequest{Action: "approve"})
	require.Equal(t, models.StatusApproved, stored.Status)
	require.True(t, stored.IsVerified())
	require.False(t, stored.IsRejected())
	require.Nil(t, stored.RejectionComment)
}

func TestModerateRejectTruncatesComment(t *testing.T) {
	db := newTestDB(t)
	h := &BusinessHandler{DB: db}
	e := echo.New()

	rec, c := doJSONRequest(t, e, http.MethodPost, "/api/businesses", submitPayload("Joe's Cafe", "a@b.com"))
	require.NoError(t, h.Submit(c))
	var created struct {
		Data transport.BusinessResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	id := created.Data.ID.String()

	longComment := strings.Repeat("я", 1500)
	stored := moderate(t, h, e, id, transport.ModerateBusinessRequest{Action: "reject", Comment: longComment})
	require.Equal(t, models.StatusRejected, stored.Status)
	require.False(t, stored.IsVerified())
	require.NotNil(t, stored.RejectionComment)
	require.Equal(t, 1000, len([]rune(*stored.RejectionComment)))
}

func TestModerateReapproveAfterRejectClearsComment(t *testing.T) {
	db := newTestDB(t)
	h := &BusinessHandler{DB: db}
	e := echo.New()

	rec, c := doJSONRequest(t, e, http.MethodPost, "/api/businesses", submitPayload("Joe's Cafe", "a@b.com"))
	require.NoError(t, h.Submit(c))
	var created struct {
		Data transport.BusinessResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	id := created.Data.ID.String()

	stored := moderate(t, h, e, id, transport.ModerateBusinessRequest{Action: "reject", Comment: "not good enough"})
	require.Equal(t, models.StatusRejected, stored.Status)
	require.NotNil(t, stored.RejectionComment)

	stored = moderate(t, h, e, id, transport.ModerateBusinessRequest{Action: "approve"})
	require.Equal(t, models.StatusApproved, stored.Status)
	require.Nil(t, stored.RejectionComment)
}

func TestDeleteBusinessDisabled(t *testing.T) {
	db := newTestDB(t)
	h := &BusinessHandler{DB: db}
	e := echo.New()

	rec, c := doJSONRequest(t, e, http.MethodDelete, "/api/businesses/some-id", nil)
	c.SetParamNames("id")
	c.SetParamValues("some-id")
	require.NoError(t, h.Delete(c))
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestListBusinessesFiltersAndLimit(t *testing.T) {
	db := newTestDB(t)
	h := &BusinessHandler{DB: db}
	e := echo.New()

	for i := 0; i < 105; i++ {
		rec, c := doJSONRequest(t, e, http.MethodPost, "/api/businesses",
			submitPayload(fmt.Sprintf("Shop %03d", i), fmt.Sprintf("owner%03d@example.com", i)))
		require.NoError(t, h.Submit(c))
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	// approve one listing
	var target models.Business
	require.NoError(t, db.First(&target, "normalized_name = ?", "shop 003").Error)
	moderate(t, h, e, target.ID.String(), transport.ModerateBusinessRequest{Action: "approve"})

	rec, c := doJSONRequest(t, e, http.MethodGet, "/api/businesses", nil)
	require.NoError(t, h.List(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data []transport.BusinessResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.LessOrEqual(t, len(resp.Data), 100)
	for i := 1; i < len(resp.Data); i++ {
		require.False(t, resp.Data[i].CreatedAt.After(resp.Data[i-1].CreatedAt),
			"listing must be ordered newest-first")
	}

	rec2, c2 := doJSONRequest(t, e, http.MethodGet, "/api/businesses?onlyVerified=true", nil)
	require.NoError(t, h.List(c2))
	var verified struct {
		Data []transport.BusinessResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec2.Body.Bytes(), &verified))
	require.Len(t, verified.Data, 1)
	require.True(t, verified.Data[0].IsVerified)
	require.Equal(t, "Shop 003", verified.Data[0].Name)

	rec3, c3 := doJSONRequest(t, e, http.MethodGet, "/api/businesses?email=OWNER007@example.com", nil)
	require.NoError(t, h.List(c3))
	var byEmail struct {
		Data []transport.BusinessResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec3.Body.Bytes(), &byEmail))
	require.Len(t, byEmail.Data, 1)
	require.Equal(t, "owner007@example.com", byEmail.Data[0].Email)
}

func TestSubmitThenApproveScenario(t *testing.T) {
	db := newTestDB(t)
	h := &BusinessHandler{DB: db}
	e := echo.New()

	rec, c := doJSONRequest(t, e, http.MethodPost, "/api/businesses", submitPayload("Joe's Cafe", "a@b.com"))
	require.NoError(t, h.Submit(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var created struct {
		Data transport.BusinessResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.False(t, created.Data.IsVerified)

	recV, cV := doJSONRequest(t, e, http.MethodGet, "/api/businesses?onlyVerified=true", nil)
	require.NoError(t, h.List(cV))
	var before struct {
		Data []transport.BusinessResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recV.Body.Bytes(), &before))
	require.Empty(t, before.Data)

	moderate(t, h, e, created.Data.ID.String(), transport.ModerateBusinessRequest{Action: "approve"})

	recV2, cV2 := doJSONRequest(t, e, http.MethodGet, "/api/businesses?onlyVerified=true", nil)
	require.NoError(t, h.List(cV2))
	var after struct {
		Data []transport.BusinessResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recV2.Body.Bytes(), &after))
	require.Len(t, after.Data, 1)
	require.Equal(t, created.Data.ID, after.Data[0].ID)
}
