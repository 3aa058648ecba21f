package quota

import (
	"github.com/google/uuid"

	"github.com/sharath018/potluck-rsvp-backend/internal/category"
	"github.com/sharath018/potluck-rsvp-backend/internal/guest"
)

// AttendeeTotal sums attendees_count over coming guests.
func AttendeeTotal(guests []guest.Guest) int {
	total := 0
	for _, g := range guests {
		if g.Coming {
			total += g.AttendeesCount
		}
	}
	return total
}

// ItemsByCategory groups the items of coming guests by category name.
// Every active category is present, with an empty slice when nothing matches.
// Items without a category or with an unknown/inactive one are left out.
func ItemsByCategory(categories []category.Category, items []guest.ContributionItem, guests GuestLookup) map[string][]guest.ContributionItem {
	out := make(map[string][]guest.ContributionItem)
	names := make(map[uuid.UUID]string)
	for _, c := range categories {
		if !c.Active {
			continue
		}
		names[c.ID] = c.Name
		if _, ok := out[c.Name]; !ok {
			out[c.Name] = []guest.ContributionItem{}
		}
	}

	for _, it := range items {
		if it.CategoryID == nil || !guests.isComing(it.GuestID) {
			continue
		}
		name, ok := names[*it.CategoryID]
		if !ok {
			continue
		}
		out[name] = append(out[name], it)
	}
	return out
}

// GuestsWithoutContribution returns coming guests no item points to.
// Uncategorized items count as a contribution.
func GuestsWithoutContribution(guests []guest.Guest, items []guest.ContributionItem) []guest.Guest {
	contributed := make(map[uuid.UUID]bool, len(items))
	for _, it := range items {
		contributed[it.GuestID] = true
	}

	out := []guest.Guest{}
	for _, g := range guests {
		if g.Coming && !contributed[g.ID] {
			out = append(out, g)
		}
	}
	return out
}

// DecliningGuests returns guests with coming=false, order preserved.
func DecliningGuests(guests []guest.Guest) []guest.Guest {
	out := []guest.Guest{}
	for _, g := range guests {
		if !g.Coming {
			out = append(out, g)
		}
	}
	return out
}

// ComingGuests returns guests with coming=true, order preserved.
func ComingGuests(guests []guest.Guest) []guest.Guest {
	out := []guest.Guest{}
	for _, g := range guests {
		if g.Coming {
			out = append(out, g)
		}
	}
	return out
}

// TotalContributions counts items of coming guests regardless of category,
// so uncategorized items are included.
func TotalContributions(items []guest.ContributionItem, guests GuestLookup) int {
	n := 0
	for _, it := range items {
		if guests.isComing(it.GuestID) {
			n++
		}
	}
	return n
}

// ItemsWithTitle counts items that name a dish, whoever pledged them.
func ItemsWithTitle(items []guest.ContributionItem) int {
	n := 0
	for _, it := range items {
		if it.ItemTitle != "" {
			n++
		}
	}
	return n
}

// ============================
// Render-ready groups

// GroupEntry is an item joined with the name of the guest who brings it.
type GroupEntry struct {
	Item      guest.ContributionItem `json:"item"`
	GuestName string                 `json:"guest_name"`
}

// CategoryGroup is a category status with the entries that fill it.
type CategoryGroup struct {
	CategoryStatus
	Entries []GroupEntry `json:"entries"`
}

// CategoryGroups is ItemsByCategory as an ordered slice, in category order,
// with the status of each category attached.
func CategoryGroups(categories []category.Category, items []guest.ContributionItem, guests GuestLookup) []CategoryGroup {
	statuses := ComputeCategoryStatus(categories, items, guests)

	byCategory := make(map[uuid.UUID][]GroupEntry, len(statuses))
	for _, it := range items {
		if it.CategoryID == nil || !guests.isComing(it.GuestID) {
			continue
		}
		byCategory[*it.CategoryID] = append(byCategory[*it.CategoryID], GroupEntry{
			Item:      it,
			GuestName: guests[it.GuestID].GuestName,
		})
	}

	out := make([]CategoryGroup, 0, len(statuses))
	for _, st := range statuses {
		entries := byCategory[st.CategoryID]
		if entries == nil {
			entries = []GroupEntry{}
		}
		out = append(out, CategoryGroup{CategoryStatus: st, Entries: entries})
	}
	return out
}
