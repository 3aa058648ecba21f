package guest

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/sharath018/potluck-rsvp-backend/internal/category"
)

// Guest is one RSVP. AttendeesCount includes the guest.
type Guest struct {
	ID             uuid.UUID          `gorm:"type:uuid;primaryKey" json:"id"`
	GuestName      string             `gorm:"type:varchar(200);not null" json:"guest_name"`
	Contact        string             `gorm:"type:varchar(255)" json:"contact"`
	Coming         bool               `gorm:"not null" json:"coming"`
	AttendeesCount int                `gorm:"not null" json:"attendees_count"`
	CreatedAt      time.Time          `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt      time.Time          `gorm:"autoUpdateTime" json:"updated_at"`
	Items          []ContributionItem `gorm:"foreignKey:GuestID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

func (Guest) TableName() string {
	return "guests"
}

func (g *Guest) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}

// ContributionItem is a dish or drink pledged by a guest. CategoryID may be nil
// or point to a category that was later deactivated.
type ContributionItem struct {
	ID             uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"id"`
	GuestID        uuid.UUID                   `gorm:"type:uuid;not null;index" json:"guest_id"`
	CategoryID     *uuid.UUID                  `gorm:"type:uuid;index" json:"category_id"`
	Category       *category.Category          `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL" json:"-"`
	ItemTitle      string                      `gorm:"type:varchar(255)" json:"item_title"`
	Servings       *int                        `json:"servings"`
	DietTags       datatypes.JSONSlice[string] `json:"diet_tags"`
	WarmNeeded     bool                        `gorm:"not null" json:"warm_needed"`
	WarmNotes      string                      `gorm:"type:text" json:"warm_notes"`
	BringsUtensils bool                        `gorm:"not null" json:"brings_utensils"`
	CreatedAt      time.Time                   `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt      time.Time                   `gorm:"autoUpdateTime" json:"updated_at"`
}

func (ContributionItem) TableName() string {
	return "rsvp_items"
}

func (i *ContributionItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// InCategory reports whether the item is pledged for category id.
func (i ContributionItem) InCategory(id uuid.UUID) bool {
	return i.CategoryID != nil && *i.CategoryID == id
}

// ============================
// Diet tags

var KnownDietTags = []string{"vegetarisch", "vegan", "glutenfrei", "laktosefrei", "nussfrei"}

// NormalizeDietTags keeps known tags in canonical order without duplicates.
func NormalizeDietTags(tags []string) datatypes.JSONSlice[string] {
	seen := make(map[string]bool, len(tags))
	for _, t := range tags {
		seen[t] = true
	}
	out := datatypes.JSONSlice[string]{}
	for _, known := range KnownDietTags {
		if seen[known] {
			out = append(out, known)
		}
	}
	return out
}

// ============================
// Requests

type UpdateGuestRequest struct {
	GuestName      *string `json:"guest_name,omitempty"`
	Contact        *string `json:"contact,omitempty"`
	Coming         *bool   `json:"coming,omitempty"`
	AttendeesCount *int    `json:"attendees_count,omitempty"`
}

// ItemInput is shared by the public form and the admin item endpoints.
type ItemInput struct {
	CategoryID     *uuid.UUID `json:"category_id"`
	ItemTitle      string     `json:"item_title"`
	Servings       *int       `json:"servings"`
	DietTags       []string   `json:"diet_tags"`
	WarmNeeded     bool       `json:"warm_needed"`
	WarmNotes      string     `json:"warm_notes"`
	BringsUtensils bool       `json:"brings_utensils"`
}

// ToItem builds an unsaved item for guestID.
func (in ItemInput) ToItem(guestID uuid.UUID) ContributionItem {
	item := ContributionItem{
		GuestID:        guestID,
		CategoryID:     in.CategoryID,
		ItemTitle:      strings.TrimSpace(in.ItemTitle),
		Servings:       in.Servings,
		DietTags:       NormalizeDietTags(in.DietTags),
		WarmNeeded:     in.WarmNeeded,
		BringsUtensils: in.BringsUtensils,
	}
	if in.CategoryID != nil && *in.CategoryID == uuid.Nil {
		item.CategoryID = nil
	}
	if in.WarmNeeded {
		item.WarmNotes = strings.TrimSpace(in.WarmNotes)
	}
	return item
}
