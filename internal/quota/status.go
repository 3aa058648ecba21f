// Package quota computes category fill levels and the aggregated views over
// guests and their contribution items. Every function here is pure: it only
// reads its arguments and never keeps state between calls.
package quota

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/sharath018/potluck-rsvp-backend/internal/category"
	"github.com/sharath018/potluck-rsvp-backend/internal/guest"
)

type Status string

const (
	StatusFull      Status = "full"
	StatusAlmost    Status = "almost"
	StatusAvailable Status = "available"
)

// CategoryStatus is the fill level of one active category.
type CategoryStatus struct {
	CategoryID   uuid.UUID `json:"category_id"`
	Name         string    `json:"name"`
	Examples     string    `json:"examples"`
	SortOrder    int       `json:"sort_order"`
	Quota        int       `json:"quota"`
	CurrentCount int       `json:"current_count"`
	Available    int       `json:"available"`
	Status       Status    `json:"status"`
	Label        string    `json:"label"`
	// Overbooked marks current_count > quota. It is not an error, the admin
	// view only highlights it.
	Overbooked bool `json:"overbooked"`
}

// GuestLookup resolves a guest id to the guest, used to check the coming flag.
type GuestLookup map[uuid.UUID]guest.Guest

func GuestsByID(guests []guest.Guest) GuestLookup {
	out := make(GuestLookup, len(guests))
	for _, g := range guests {
		out[g.ID] = g
	}
	return out
}

// isComing is false for items whose guest is unknown.
func (l GuestLookup) isComing(id uuid.UUID) bool {
	g, ok := l[id]
	return ok && g.Coming
}

// Classify returns the status and the remaining slots for a quota and a count.
// available may be negative.
func Classify(quota, currentCount int) (Status, int) {
	available := quota - currentCount
	switch {
	case available <= 0:
		return StatusFull, available
	case available == 1:
		return StatusAlmost, available
	default:
		return StatusAvailable, available
	}
}

// Label is the German badge text shown next to a category.
func Label(status Status, available int) string {
	switch status {
	case StatusFull:
		return "voll"
	case StatusAlmost:
		return fmt.Sprintf("nur noch %d", available)
	default:
		return fmt.Sprintf("%d frei", available)
	}
}

// CurrentCount counts items of coming guests pledged for categoryID.
func CurrentCount(categoryID uuid.UUID, items []guest.ContributionItem, guests GuestLookup) int {
	n := 0
	for _, it := range items {
		if it.InCategory(categoryID) && guests.isComing(it.GuestID) {
			n++
		}
	}
	return n
}

// ComputeCategoryStatus reports every active category in input order.
func ComputeCategoryStatus(categories []category.Category, items []guest.ContributionItem, guests GuestLookup) []CategoryStatus {
	counts := countByCategory(items, guests)

	out := make([]CategoryStatus, 0, len(categories))
	for _, c := range categories {
		if !c.Active {
			continue
		}
		count := counts[c.ID]
		status, available := Classify(c.Quota, count)
		out = append(out, CategoryStatus{
			CategoryID:   c.ID,
			Name:         c.Name,
			Examples:     c.Examples,
			SortOrder:    c.SortOrder,
			Quota:        c.Quota,
			CurrentCount: count,
			Available:    available,
			Status:       status,
			Label:        Label(status, available),
			Overbooked:   count > c.Quota,
		})
	}
	return out
}

func countByCategory(items []guest.ContributionItem, guests GuestLookup) map[uuid.UUID]int {
	counts := make(map[uuid.UUID]int)
	for _, it := range items {
		if it.CategoryID == nil || !guests.isComing(it.GuestID) {
			continue
		}
		counts[*it.CategoryID]++
	}
	return counts
}
