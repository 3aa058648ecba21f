package rsvp

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sharath018/potluck-rsvp-backend/internal/guest"
	"github.com/sharath018/potluck-rsvp-backend/internal/quota"
)

func (f *fixture) guest(t *testing.T, name string, coming bool, attendees int, at time.Time, items ...guest.ContributionItem) guest.Guest {
	t.Helper()
	g := guest.Guest{GuestName: name, Contact: name + "@example.ch", Coming: coming, AttendeesCount: attendees, CreatedAt: at}
	require.NoError(t, f.guests.CreateWithItems(context.Background(), &g, items))
	return g
}

func TestRegistration_PreviewShowsThreeEntries(t *testing.T) {
	f := newFixture(t)
	desserts := f.category(t, "Desserts", 6, 1)
	base := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	titles := []string{"Tiramisu", "", "Kuchen", "Mousse"}
	for i, title := range titles {
		at := base.Add(time.Duration(i) * time.Minute)
		f.guest(t, string(rune('A'+i)), true, 1, at,
			guest.ContributionItem{CategoryID: &desserts.ID, ItemTitle: title, CreatedAt: at})
	}

	view, err := f.views.Registration(context.Background())
	require.NoError(t, err)
	require.Len(t, view.Categories, 1)

	card := view.Categories[0]
	assert.Equal(t, 4, card.CurrentCount)
	assert.Equal(t, quota.StatusAvailable, card.Status)
	assert.True(t, card.More)
	require.Len(t, card.Preview, 3)
	assert.Contains(t, card.Preview, "A: Tiramisu")
	assert.Contains(t, card.Preview, "B: Überraschung")
	assert.Equal(t, MaxAttendees, view.MaxAttendees)
	assert.Equal(t, guest.KnownDietTags, view.DietTags)
}

func TestRegistration_HidesInactiveCategories(t *testing.T) {
	f := newFixture(t)
	f.category(t, "Salate", 2, 1)
	old := f.category(t, "Alt", 2, 2)
	require.NoError(t, f.categories.Update(context.Background(), old.ID, map[string]interface{}{"active": false}))

	view, err := f.views.Registration(context.Background())
	require.NoError(t, err)
	require.Len(t, view.Categories, 1)
	assert.Equal(t, "Salate", view.Categories[0].Name)
	assert.False(t, view.Categories[0].More)
	assert.Empty(t, view.Categories[0].Preview)
}

func TestOverview_Aggregates(t *testing.T) {
	f := newFixture(t)
	salads := f.category(t, "Salate", 1, 1)
	drinks := f.category(t, "Getränke", 2, 2)
	base := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	f.guest(t, "Anna", true, 2, base, guest.ContributionItem{CategoryID: &salads.ID, ItemTitle: "Couscous"})
	f.guest(t, "Ben", true, 1, base.Add(time.Minute))
	f.guest(t, "Cleo", false, 1, base.Add(2*time.Minute))
	f.guest(t, "Dora", true, 3, base.Add(3*time.Minute), guest.ContributionItem{ItemTitle: "Wein"})

	ov, err := f.views.Overview(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 6, ov.AttendeeTotal)
	assert.Equal(t, 3, ov.ComingCount)
	assert.Equal(t, 1, ov.DecliningCount)
	assert.Equal(t, 2, ov.TotalContributions)

	require.Len(t, ov.Categories, 2)
	assert.Equal(t, quota.StatusFull, ov.Categories[0].Status)
	require.Len(t, ov.Categories[0].Entries, 1)
	assert.Equal(t, "Anna", ov.Categories[0].Entries[0].GuestName)
	assert.Equal(t, drinks.ID, ov.Categories[1].CategoryID)
	assert.Equal(t, "2 frei", ov.Categories[1].Label)

	require.Len(t, ov.GuestsWithoutContribution, 1)
	assert.Equal(t, "Ben", ov.GuestsWithoutContribution[0].GuestName)
	require.Len(t, ov.DecliningGuests, 1)
	assert.Equal(t, "Cleo", ov.DecliningGuests[0].GuestName)
}

func TestAdminDashboard_RowsNewestFirstAndStats(t *testing.T) {
	f := newFixture(t)
	salads := f.category(t, "Salate", 1, 1)
	base := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	f.guest(t, "Anna", true, 2, base,
		guest.ContributionItem{CategoryID: &salads.ID, ItemTitle: "Couscous"},
		guest.ContributionItem{ItemTitle: "Wein"})
	f.guest(t, "Ben", true, 1, base.Add(time.Minute), guest.ContributionItem{CategoryID: &salads.ID, ItemTitle: "Linsen"})
	f.guest(t, "Cleo", false, 1, base.Add(2*time.Minute))

	dash, err := f.views.AdminDashboard(context.Background())
	require.NoError(t, err)

	require.Len(t, dash.Categories, 1)
	assert.True(t, dash.Categories[0].Overbooked)
	assert.Equal(t, -1, dash.Categories[0].Available)

	require.Len(t, dash.Signups, 4)
	assert.Equal(t, "Cleo", dash.Signups[0].GuestName)
	assert.Nil(t, dash.Signups[0].ItemID)
	assert.Equal(t, "Ben", dash.Signups[1].GuestName)

	var uncategorized *quota.SignupRow
	for i := range dash.Signups {
		if dash.Signups[i].ItemTitle == "Wein" {
			uncategorized = &dash.Signups[i]
		}
	}
	require.NotNil(t, uncategorized)
	assert.Equal(t, quota.NoCategoryLabel, uncategorized.CategoryName)

	assert.Equal(t, DashboardStats{
		Coming:             2,
		Declining:          1,
		ItemsWithTitle:     3,
		AttendeeTotal:      3,
		TotalContributions: 3,
	}, dash.Stats)
}

func TestConfirmationFor(t *testing.T) {
	assert.Equal(t, "Herzlichen Dank!", ConfirmationFor(true).Title)
	assert.True(t, ConfirmationFor(true).Coming)
	assert.Equal(t, "Schade, dass du nicht kommen kannst", ConfirmationFor(false).Title)
}
