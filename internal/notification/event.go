package notification

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sharath018/potluck-rsvp-backend/internal/guest"
)

// SubmissionEvent is the payload of the rsvp.submitted topic.
type SubmissionEvent struct {
	GuestID        uuid.UUID   `json:"guest_id"`
	GuestName      string      `json:"guest_name"`
	Contact        string      `json:"contact"`
	Coming         bool        `json:"coming"`
	AttendeesCount int         `json:"attendees_count"`
	Items          []EventItem `json:"items"`
	SubmittedAt    time.Time   `json:"submitted_at"`
}

type EventItem struct {
	Title    string `json:"title"`
	Category string `json:"category"`
}

// NewSubmissionEvent resolves category names with names; unknown or missing
// categories are left empty.
func NewSubmissionEvent(g guest.Guest, items []guest.ContributionItem, names map[uuid.UUID]string) SubmissionEvent {
	ev := SubmissionEvent{
		GuestID:        g.ID,
		GuestName:      g.GuestName,
		Contact:        g.Contact,
		Coming:         g.Coming,
		AttendeesCount: g.AttendeesCount,
		Items:          make([]EventItem, 0, len(items)),
		SubmittedAt:    g.CreatedAt,
	}
	if ev.SubmittedAt.IsZero() {
		ev.SubmittedAt = time.Now()
	}
	for _, it := range items {
		var cat string
		if it.CategoryID != nil {
			cat = names[*it.CategoryID]
		}
		ev.Items = append(ev.Items, EventItem{Title: it.ItemTitle, Category: cat})
	}
	return ev
}

// Subject is the organizer mail subject line.
func (e SubmissionEvent) Subject() string {
	if e.Coming {
		return fmt.Sprintf("Neue Anmeldung: %s (%d)", e.GuestName, e.AttendeesCount)
	}
	return fmt.Sprintf("Absage: %s", e.GuestName)
}

// Body renders the plain-text organizer mail.
func (e SubmissionEvent) Body(loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Name: %s\n", e.GuestName)
	fmt.Fprintf(&b, "Kontakt: %s\n", e.Contact)
	if !e.Coming {
		b.WriteString("Kommt: Nein\n")
	} else {
		b.WriteString("Kommt: Ja\n")
		fmt.Fprintf(&b, "Anzahl Personen: %d\n", e.AttendeesCount)
		if len(e.Items) == 0 {
			b.WriteString("Mitbringsel: keine Angabe\n")
		} else {
			b.WriteString("Mitbringsel:\n")
			for _, it := range e.Items {
				title := it.Title
				if title == "" {
					title = "Überraschung"
				}
				if it.Category != "" {
					fmt.Fprintf(&b, "  - %s (%s)\n", title, it.Category)
				} else {
					fmt.Fprintf(&b, "  - %s\n", title)
				}
			}
		}
	}
	fmt.Fprintf(&b, "Angemeldet: %s\n", e.SubmittedAt.In(loc).Format("02.01.2006 15:04"))
	return b.String()
}
