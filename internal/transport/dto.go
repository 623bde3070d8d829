package transport

import (
	"time"

	"github.com/google/uuid"

	"github.com/nichebazar/marketplace/internal/models"
)

type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ProfileUpsertRequest struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type SubmitBusinessRequest struct {
	OwnerName        string `json:"ownerName"`
	Name             string `json:"name"`
	InstagramHandle  string `json:"instagramHandle"`
	Description      string `json:"description"`
	ProductsServices string `json:"productsServices"`
	Category         string `json:"category"`
	Address          string `json:"address"`
	City             string `json:"city"`
	State            string `json:"state"`
	ZipCode          string `json:"zipCode"`
	Phone            string `json:"phone"`
	Email            string `json:"email"`
	Website          string `json:"website"`
	ImageURL         string `json:"imageUrl"`
	Tags             string `json:"tags"`
}

type ModerateBusinessRequest struct {
	Action  string `json:"action"`
	Comment string `json:"comment"`
}

type CreateProductRequest struct {
	Name       string  `json:"name"`
	Photo      string  `json:"photo"`
	Dimensions string  `json:"dimensions"`
	Size       string  `json:"size"`
	Price      float64 `json:"price"`
	BusinessID string  `json:"businessId"`
}

type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// BusinessResponse is the wire shape of a listing. The moderation enum stays
// internal; clients keep seeing the derived is_verified/rejected pair.
type BusinessResponse struct {
	ID               uuid.UUID `json:"id"`
	OwnerName        string    `json:"owner_name"`
	Name             string    `json:"name"`
	InstagramHandle  string    `json:"instagram_handle"`
	Description      string    `json:"description"`
	ProductsServices string    `json:"products_services"`
	Category         string    `json:"category"`
	Address          string    `json:"address"`
	City             string    `json:"city"`
	State            string    `json:"state"`
	ZipCode          string    `json:"zip_code"`
	Phone            string    `json:"phone"`
	Email            string    `json:"email"`
	Website          string    `json:"website"`
	ImageURL         string    `json:"image_url"`
	Tags             []string  `json:"tags"`
	IsVerified       bool      `json:"is_verified"`
	Rejected         bool      `json:"rejected"`
	RejectionComment *string   `json:"rejection_comment"`
	CreatedAt        time.Time `json:"created_at"`
}

func BusinessFromModel(b *models.Business) BusinessResponse {
	tags := b.Tags
	if tags == nil {
		tags = []string{}
	}
	return BusinessResponse{
		ID:               b.ID,
		OwnerName:        b.OwnerName,
		Name:             b.Name,
		InstagramHandle:  b.InstagramHandle,
		Description:      b.Description,
		ProductsServices: b.ProductsServices,
		Category:         b.Category,
		Address:          b.Address,
		City:             b.City,
		State:            b.State,
		ZipCode:          b.ZipCode,
		Phone:            b.Phone,
		Email:            b.Email,
		Website:          b.Website,
		ImageURL:         b.ImageURL,
		Tags:             tags,
		IsVerified:       b.IsVerified(),
		Rejected:         b.IsRejected(),
		RejectionComment: b.RejectionComment,
		CreatedAt:        b.CreatedAt,
	}
}

func BusinessesFromModels(bs []models.Business) []BusinessResponse {
	out := make([]BusinessResponse, len(bs))
	for i := range bs {
		out[i] = BusinessFromModel(&bs[i])
	}
	return out
}
