package category

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category is a potluck bucket (salads, desserts, drinks...) with an advisory quota.
// Categories are never deleted, only deactivated.
type Category struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(120);not null" json:"name"`
	Quota     int       `gorm:"not null;default:0" json:"quota"`
	Examples  string    `gorm:"type:text" json:"examples"`
	Active    bool      `gorm:"not null" json:"active"`
	SortOrder int       `gorm:"not null;default:0;index" json:"sort_order"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Category) TableName() string {
	return "categories"
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// ============================
// Requests

type CreateCategoryRequest struct {
	Name      string `json:"name" binding:"required"`
	Quota     int    `json:"quota" binding:"min=0"`
	Examples  string `json:"examples"`
	SortOrder int    `json:"sort_order"`
	Active    *bool  `json:"active,omitempty"`
}

type UpdateCategoryRequest struct {
	Name      *string `json:"name,omitempty"`
	Quota     *int    `json:"quota,omitempty"`
	Examples  *string `json:"examples,omitempty"`
	SortOrder *int    `json:"sort_order,omitempty"`
	Active    *bool   `json:"active,omitempty"`
}

type UpdateQuotaRequest struct {
	Quota *int `json:"quota" binding:"required"`
}
