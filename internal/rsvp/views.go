package rsvp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/sharath018/potluck-rsvp-backend/internal/apperr"
	"github.com/sharath018/potluck-rsvp-backend/internal/category"
	"github.com/sharath018/potluck-rsvp-backend/internal/guest"
	"github.com/sharath018/potluck-rsvp-backend/internal/quota"
	"github.com/sharath018/potluck-rsvp-backend/utils"
)

const (
	overviewCacheKey = "overview:v1"
	overviewGenKey   = "overview:gen"
	previewSize      = 3
	surpriseTitle    = "Überraschung"
)

// Confirmation is the text shown after a submission.
type Confirmation struct {
	Title   string `json:"title"`
	Message string `json:"message"`
	Coming  bool   `json:"coming"`
}

func ConfirmationFor(coming bool) Confirmation {
	if coming {
		return Confirmation{
			Title:   "Herzlichen Dank!",
			Message: "Deine Anmeldung ist gespeichert. Wir freuen uns auf dich! In der Übersicht siehst du, wer was mitbringt.",
			Coming:  true,
		}
	}
	return Confirmation{
		Title:   "Schade, dass du nicht kommen kannst",
		Message: "Danke für deine Rückmeldung. Wir haben deine Absage gespeichert.",
		Coming:  false,
	}
}

// EventInfo describes the party itself.
type EventInfo struct {
	Title string `json:"title"`
	When  string `json:"when"`
	Where string `json:"where"`
}

// ============================
// View payloads

// RegistrationCategory is a category card on the registration form.
type RegistrationCategory struct {
	quota.CategoryStatus
	Preview []string `json:"preview"`
	More    bool     `json:"more"`
}

type RegistrationView struct {
	Event        EventInfo              `json:"event"`
	Categories   []RegistrationCategory `json:"categories"`
	DietTags     []string               `json:"diet_tags"`
	MaxAttendees int                    `json:"max_attendees"`
}

type OverviewView struct {
	Event                     EventInfo             `json:"event"`
	AttendeeTotal             int                   `json:"attendee_total"`
	ComingCount               int                   `json:"coming_count"`
	DecliningCount            int                   `json:"declining_count"`
	TotalContributions        int                   `json:"total_contributions"`
	Categories                []quota.CategoryGroup `json:"categories"`
	GuestsWithoutContribution []GuestSummary        `json:"guests_without_contribution"`
	DecliningGuests           []GuestSummary        `json:"declining_guests"`
	GeneratedAt               time.Time             `json:"generated_at"`
}

// GuestSummary leaves out the contact, which is not public.
type GuestSummary struct {
	GuestName      string `json:"guest_name"`
	AttendeesCount int    `json:"attendees_count"`
}

type DashboardStats struct {
	Coming             int `json:"coming"`
	Declining          int `json:"declining"`
	ItemsWithTitle     int `json:"items_with_title"`
	AttendeeTotal      int `json:"attendee_total"`
	TotalContributions int `json:"total_contributions"`
}

type DashboardView struct {
	Categories []quota.CategoryStatus `json:"categories"`
	Signups    []quota.SignupRow      `json:"signups"`
	Stats      DashboardStats         `json:"stats"`
}

// ============================
// ViewService

// ViewService assembles the read models from a fresh snapshot of the tables.
type ViewService struct {
	Categories *category.Repository
	Guests     *guest.Repository
	Event      EventInfo
	CacheTTL   time.Duration
}

func NewViewService(categories *category.Repository, guests *guest.Repository, event EventInfo, cacheTTL time.Duration) *ViewService {
	return &ViewService{Categories: categories, Guests: guests, Event: event, CacheTTL: cacheTTL}
}

type snapshot struct {
	categories []category.Category
	guests     []guest.Guest
	items      []guest.ContributionItem
	lookup     quota.GuestLookup
}

func (v *ViewService) load(ctx context.Context) (*snapshot, error) {
	cats, err := v.Categories.ListAll(ctx)
	if err != nil {
		return nil, apperr.Load("categories", err)
	}
	guests, err := v.Guests.ListGuests(ctx, false)
	if err != nil {
		return nil, apperr.Load("guests", err)
	}
	items, err := v.Guests.ListItems(ctx)
	if err != nil {
		return nil, apperr.Load("items", err)
	}
	return &snapshot{categories: cats, guests: guests, items: items, lookup: quota.GuestsByID(guests)}, nil
}

// Registration returns the active categories with their fill level and a
// short preview of what is already pledged.
func (v *ViewService) Registration(ctx context.Context) (*RegistrationView, error) {
	snap, err := v.load(ctx)
	if err != nil {
		return nil, err
	}

	groups := quota.CategoryGroups(snap.categories, snap.items, snap.lookup)
	cards := make([]RegistrationCategory, 0, len(groups))
	for _, g := range groups {
		preview := make([]string, 0, previewSize)
		for i, e := range g.Entries {
			if i == previewSize {
				break
			}
			title := e.Item.ItemTitle
			if title == "" {
				title = surpriseTitle
			}
			preview = append(preview, fmt.Sprintf("%s: %s", e.GuestName, title))
		}
		cards = append(cards, RegistrationCategory{
			CategoryStatus: g.CategoryStatus,
			Preview:        preview,
			More:           len(g.Entries) > previewSize,
		})
	}

	return &RegistrationView{
		Event:        v.Event,
		Categories:   cards,
		DietTags:     guest.KnownDietTags,
		MaxAttendees: MaxAttendees,
	}, nil
}

// Overview is the public "who brings what" page. It is served from Redis
// when a copy for the current cache generation exists.
func (v *ViewService) Overview(ctx context.Context) (*OverviewView, error) {
	if v.CacheTTL <= 0 {
		return v.buildOverview(ctx)
	}

	gen, err := utils.CacheGeneration(ctx, overviewGenKey)
	if err != nil {
		utils.Log.Warn("overview cache generation unavailable", zap.Error(err))
		return v.buildOverview(ctx)
	}
	key := overviewKey(gen)

	var cached OverviewView
	err = utils.CacheGetJSON(ctx, key, &cached)
	if err == nil {
		return &cached, nil
	}
	if !errors.Is(err, utils.ErrCacheMiss) {
		utils.Log.Warn("overview cache read failed", zap.Error(err))
	}

	view, err := v.buildOverview(ctx)
	if err != nil {
		return nil, err
	}
	if err := utils.CacheSetJSON(ctx, key, view, v.CacheTTL); err != nil {
		utils.Log.Warn("overview cache write failed", zap.Error(err))
	}
	return view, nil
}

func overviewKey(gen int64) string {
	return fmt.Sprintf("%s:%d", overviewCacheKey, gen)
}

func (v *ViewService) buildOverview(ctx context.Context) (*OverviewView, error) {
	snap, err := v.load(ctx)
	if err != nil {
		return nil, err
	}

	coming := quota.ComingGuests(snap.guests)
	declining := quota.DecliningGuests(snap.guests)

	return &OverviewView{
		Event:                     v.Event,
		AttendeeTotal:             quota.AttendeeTotal(snap.guests),
		ComingCount:               len(coming),
		DecliningCount:            len(declining),
		TotalContributions:        quota.TotalContributions(snap.items, snap.lookup),
		Categories:                quota.CategoryGroups(snap.categories, snap.items, snap.lookup),
		GuestsWithoutContribution: summarize(quota.GuestsWithoutContribution(snap.guests, snap.items)),
		DecliningGuests:           summarize(declining),
		GeneratedAt:               time.Now(),
	}, nil
}

func summarize(guests []guest.Guest) []GuestSummary {
	out := make([]GuestSummary, 0, len(guests))
	for _, g := range guests {
		out = append(out, GuestSummary{GuestName: g.GuestName, AttendeesCount: g.AttendeesCount})
	}
	return out
}

// AdminDashboard returns statuses, the signup table and the totals. All
// three come from the same read of guests and their items.
func (v *ViewService) AdminDashboard(ctx context.Context) (*DashboardView, error) {
	cats, err := v.Categories.ListAll(ctx)
	if err != nil {
		return nil, apperr.Load("categories", err)
	}
	guests, err := v.Guests.ListGuestsWithItems(ctx, true)
	if err != nil {
		return nil, apperr.Load("guests", err)
	}

	var items []guest.ContributionItem
	for _, g := range guests {
		items = append(items, g.Items...)
	}
	lookup := quota.GuestsByID(guests)

	return &DashboardView{
		Categories: quota.ComputeCategoryStatus(cats, items, lookup),
		Signups:    quota.FlattenSignups(guests, quota.CategoryNames(cats)),
		Stats: DashboardStats{
			Coming:             len(quota.ComingGuests(guests)),
			Declining:          len(quota.DecliningGuests(guests)),
			ItemsWithTitle:     quota.ItemsWithTitle(items),
			AttendeeTotal:      quota.AttendeeTotal(guests),
			TotalContributions: quota.TotalContributions(items, lookup),
		},
	}, nil
}

// SignupRows lists guest x item rows, newest guest first.
func (v *ViewService) SignupRows(ctx context.Context) ([]quota.SignupRow, error) {
	cats, err := v.Categories.ListAll(ctx)
	if err != nil {
		return nil, apperr.Load("categories", err)
	}
	guests, err := v.Guests.ListGuestsWithItems(ctx, true)
	if err != nil {
		return nil, apperr.Load("guests", err)
	}
	return quota.FlattenSignups(guests, quota.CategoryNames(cats)), nil
}

// Invalidate drops cached read models after a write.
func (v *ViewService) Invalidate(ctx context.Context) {
	if err := utils.BumpGeneration(ctx, overviewGenKey); err != nil {
		utils.Log.Warn("overview cache invalidation failed", zap.Error(err))
	}
}
