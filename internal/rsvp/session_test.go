package rsvp

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sharath018/potluck-rsvp-backend/internal/guest"
)

func filledSession() Session {
	s := NewSession()
	s = Reduce(s, SetGuestName{Value: "Anna"})
	s = Reduce(s, SetContact{Value: "anna@example.ch"})
	s = Reduce(s, SetAttendees{Value: 2})
	return s
}

func TestReduce_ValidSubmitMovesToSubmitting(t *testing.T) {
	s := Reduce(filledSession(), Submit{})
	assert.Equal(t, PhaseSubmitting, s.Phase)
	assert.Empty(t, s.Errors)
}

func TestReduce_InvalidSubmitStaysEditing(t *testing.T) {
	s := Reduce(NewSession(), Submit{})
	assert.Equal(t, PhaseEditing, s.Phase)
	require.Len(t, s.Errors, 2)
	assert.Equal(t, "guest_name", s.Errors[0].Field)
	assert.Equal(t, "contact", s.Errors[1].Field)
}

func TestReduce_DoesNotModifyInput(t *testing.T) {
	before := filledSession()
	before = Reduce(before, AddItem{Item: guest.ItemInput{ItemTitle: "Salat"}})

	after := Reduce(before, UpdateItem{Index: 0, Item: guest.ItemInput{ItemTitle: "Kuchen"}})
	after = Reduce(after, SetGuestName{Value: "Ben"})

	assert.Equal(t, "Salat", before.Form.Items[0].ItemTitle)
	assert.Equal(t, "Anna", before.Form.GuestName)
	assert.Equal(t, "Kuchen", after.Form.Items[0].ItemTitle)
}

func TestReduce_SecondSubmitWhileSubmittingIsIgnored(t *testing.T) {
	s := Reduce(filledSession(), Submit{})
	again := Reduce(s, Submit{})
	assert.Equal(t, s, again)
}

func TestReduce_FieldsLockedWhileSubmitting(t *testing.T) {
	s := Reduce(filledSession(), Submit{})
	s = Reduce(s, SetGuestName{Value: "Someone else"})
	assert.Equal(t, "Anna", s.Form.GuestName)
}

func TestReduce_FailureKeepsFormAndAllowsRetry(t *testing.T) {
	s := Reduce(filledSession(), Submit{})
	s = Reduce(s, SubmitFailed{Reason: "db down"})
	assert.Equal(t, PhaseFailed, s.Phase)
	assert.Equal(t, "db down", s.Failure)
	assert.Equal(t, "Anna", s.Form.GuestName)

	s = Reduce(s, Submit{})
	assert.Equal(t, PhaseSubmitting, s.Phase)
	assert.Empty(t, s.Failure)
}

func TestReduce_Succeeded(t *testing.T) {
	id := uuid.New()
	s := Reduce(filledSession(), Submit{})
	s = Reduce(s, SubmitSucceeded{GuestID: id})
	assert.Equal(t, PhaseSucceeded, s.Phase)
	assert.Equal(t, id, s.GuestID)

	// outcome actions outside Submitting are ignored
	assert.Equal(t, PhaseEditing, Reduce(NewSession(), SubmitSucceeded{GuestID: id}).Phase)
}

func TestReduce_RemoveItemAndReset(t *testing.T) {
	s := filledSession()
	s = Reduce(s, AddItem{Item: guest.ItemInput{ItemTitle: "A"}})
	s = Reduce(s, AddItem{Item: guest.ItemInput{ItemTitle: "B"}})
	s = Reduce(s, RemoveItem{Index: 0})
	require.Len(t, s.Form.Items, 1)
	assert.Equal(t, "B", s.Form.Items[0].ItemTitle)

	s = Reduce(s, RemoveItem{Index: 5})
	assert.Len(t, s.Form.Items, 1)

	assert.Equal(t, NewSession(), Reduce(s, Reset{}))
}

func TestValidate_Attendees(t *testing.T) {
	tests := []struct {
		name      string
		coming    bool
		attendees int
		valid     bool
	}{
		{"one", true, 1, true},
		{"six", true, MaxAttendees, true},
		{"zero", true, 0, false},
		{"seven", true, 7, false},
		{"declining ignores count", false, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := Validate(Form{GuestName: "A", Contact: "a", Coming: tt.coming, AttendeesCount: tt.attendees})
			assert.Equal(t, tt.valid, len(errs) == 0)
		})
	}
}

func TestValidate_WhitespaceNameIsMissing(t *testing.T) {
	errs := Validate(Form{GuestName: "   ", Contact: "x", Coming: true, AttendeesCount: 1})
	require.Len(t, errs, 1)
	assert.Equal(t, "guest_name", errs[0].Field)
}

func TestNormalize_DecliningDropsItems(t *testing.T) {
	catID := uuid.New()
	f := Normalize(Form{
		GuestName:      "  Ben ",
		Contact:        " 079 ",
		Coming:         false,
		AttendeesCount: 4,
		Items:          []guest.ItemInput{{CategoryID: &catID, ItemTitle: "Brot"}},
	})
	assert.Equal(t, "Ben", f.GuestName)
	assert.Equal(t, "079", f.Contact)
	assert.Equal(t, 1, f.AttendeesCount)
	assert.Empty(t, f.Items)
}

func TestNormalize_DropsEmptyDrafts(t *testing.T) {
	catID := uuid.New()
	nilID := uuid.Nil
	f := Normalize(Form{
		GuestName: "Anna", Contact: "a", Coming: true, AttendeesCount: 1,
		Items: []guest.ItemInput{
			{ItemTitle: "  "},
			{CategoryID: &nilID},
			{CategoryID: &catID},
			{ItemTitle: "Wein"},
		},
	})
	require.Len(t, f.Items, 2)
	assert.Equal(t, &catID, f.Items[0].CategoryID)
	assert.Equal(t, "Wein", f.Items[1].ItemTitle)
}
