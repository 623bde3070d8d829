package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BusinessStatus is the moderation state of a listing. A record is exactly one
// of pending, approved or rejected; there is no representable in-between.
type BusinessStatus string

const (
	StatusPending  BusinessStatus = "pending"
	StatusApproved BusinessStatus = "approved"
	StatusRejected BusinessStatus = "rejected"
)

// MaxRejectionComment bounds the stored moderation comment, in runes.
const MaxRejectionComment = 1000

type User struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"  json:"id"`
	Email          string    `gorm:"uniqueIndex;not null"  json:"email"`
	PasswordHash   string    `gorm:"not null"              json:"-"`
	Role           string    `gorm:"not null;default:user" json:"role"`
	EmailConfirmed bool      `gorm:"default:false"         json:"email_confirmed"`
	CreatedAt      time.Time `json:"created_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

type RefreshToken struct {
	ID        uint      `gorm:"primaryKey"           json:"id"`
	Token     string    `gorm:"unique;not null"      json:"token"`
	UserID    uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`
	Role      string    `gorm:"not null"             json:"role"`
	ExpiresAt time.Time `gorm:"not null"             json:"expires_at"`
	Revoked   bool      `gorm:"default:false"        json:"revoked"`
}

// Profile mirrors the identity record for marketplace-facing role data.
// ID is the owning user's id; rows are upserted, never deleted.
type Profile struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"   json:"id"`
	Email     string    `gorm:"not null"               json:"email"`
	Role      string    `gorm:"not null;default:buyer" json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Business struct {
	ID               uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerName        string         `json:"owner_name"`
	Name             string         `gorm:"not null" json:"name"`
	NormalizedName   string         `gorm:"not null;uniqueIndex:idx_business_identity" json:"-"`
	Email            string         `gorm:"not null;uniqueIndex:idx_business_identity" json:"email"`
	InstagramHandle  string         `json:"instagram_handle"`
	Description      string         `json:"description"`
	ProductsServices string         `json:"products_services"`
	Category         string         `json:"category"`
	Address          string         `json:"address"`
	City             string         `json:"city"`
	State            string         `json:"state"`
	ZipCode          string         `json:"zip_code"`
	Phone            string         `json:"phone"`
	Website          string         `json:"website"`
	ImageURL         string         `json:"image_url"`
	Tags             []string       `gorm:"serializer:json" json:"tags"`
	Status           BusinessStatus `gorm:"not null;default:pending;index" json:"status"`
	RejectionComment *string        `json:"rejection_comment"`
	CreatedAt        time.Time      `gorm:"index" json:"created_at"`
}

func (b *Business) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

func (b *Business) IsVerified() bool {
	return b.Status == StatusApproved
}

func (b *Business) IsRejected() bool {
	return b.Status == StatusRejected
}

type Product struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name       string    `gorm:"not null"             json:"name"`
	Photo      string    `json:"photo"`
	Dimensions string    `json:"dimensions"`
	Size       string    `json:"size"`
	Price      float64   `gorm:"not null"             json:"price"`
	BusinessID uuid.UUID `gorm:"type:uuid;index;not null" json:"business_id"`
	CreatedAt  time.Time `gorm:"index" json:"created_at"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
