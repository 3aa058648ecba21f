package quota

import (
	"time"

	"github.com/google/uuid"

	"github.com/sharath018/potluck-rsvp-backend/internal/category"
	"github.com/sharath018/potluck-rsvp-backend/internal/guest"
)

// NoCategoryLabel is shown for items without a (known) category.
const NoCategoryLabel = "Ohne Kategorie"

// SignupRow is one guest x item line of the admin table and the export.
// A guest without items yields a single row with empty item fields.
type SignupRow struct {
	GuestID        uuid.UUID  `json:"guest_id"`
	GuestName      string     `json:"guest_name"`
	Contact        string     `json:"contact"`
	Coming         bool       `json:"coming"`
	AttendeesCount int        `json:"attendees_count"`
	ItemID         *uuid.UUID `json:"item_id,omitempty"`
	ItemTitle      string     `json:"item_title"`
	CategoryID     *uuid.UUID `json:"category_id,omitempty"`
	CategoryName   string     `json:"category_name"`
	DietTags       []string   `json:"diet_tags"`
	WarmNeeded     bool       `json:"warm_needed"`
	BringsUtensils bool       `json:"brings_utensils"`
	CreatedAt      time.Time  `json:"created_at"`
}

// CategoryNames maps every category id, active or not, to its name.
func CategoryNames(categories []category.Category) map[uuid.UUID]string {
	out := make(map[uuid.UUID]string, len(categories))
	for _, c := range categories {
		out[c.ID] = c.Name
	}
	return out
}

// FlattenSignups turns guests with preloaded items into rows, keeping guest order.
func FlattenSignups(guests []guest.Guest, names map[uuid.UUID]string) []SignupRow {
	out := make([]SignupRow, 0, len(guests))
	for _, g := range guests {
		base := SignupRow{
			GuestID:        g.ID,
			GuestName:      g.GuestName,
			Contact:        g.Contact,
			Coming:         g.Coming,
			AttendeesCount: g.AttendeesCount,
			DietTags:       []string{},
			CreatedAt:      g.CreatedAt,
		}
		if len(g.Items) == 0 {
			out = append(out, base)
			continue
		}
		for _, it := range g.Items {
			row := base
			itemID := it.ID
			row.ItemID = &itemID
			row.ItemTitle = it.ItemTitle
			row.CategoryID = it.CategoryID
			row.CategoryName = categoryLabel(it.CategoryID, names)
			row.DietTags = append([]string{}, it.DietTags...)
			row.WarmNeeded = it.WarmNeeded
			row.BringsUtensils = it.BringsUtensils
			out = append(out, row)
		}
	}
	return out
}

func categoryLabel(id *uuid.UUID, names map[uuid.UUID]string) string {
	if id == nil {
		return NoCategoryLabel
	}
	if name, ok := names[*id]; ok {
		return name
	}
	return NoCategoryLabel
}
