package rsvp

import (
	"strings"

	"github.com/google/uuid"

	"github.com/sharath018/potluck-rsvp-backend/internal/apperr"
	"github.com/sharath018/potluck-rsvp-backend/internal/guest"
)

// MaxAttendees is the largest party size the registration form offers.
const MaxAttendees = 6

type Phase string

const (
	PhaseEditing    Phase = "editing"
	PhaseSubmitting Phase = "submitting"
	PhaseSucceeded  Phase = "succeeded"
	PhaseFailed     Phase = "failed"
)

// Form holds what the guest typed.
type Form struct {
	GuestName      string            `json:"guest_name"`
	Contact        string            `json:"contact"`
	Coming         bool              `json:"coming"`
	AttendeesCount int               `json:"attendees_count"`
	Items          []guest.ItemInput `json:"items"`
}

// Session is an immutable snapshot of one submission. Reduce returns a new
// snapshot and never modifies its argument.
type Session struct {
	Phase   Phase                     `json:"phase"`
	Form    Form                      `json:"form"`
	Errors  []*apperr.ValidationError `json:"errors,omitempty"`
	GuestID uuid.UUID                 `json:"guest_id,omitempty"`
	Failure string                    `json:"failure,omitempty"`
}

func NewSession() Session {
	return Session{Phase: PhaseEditing, Form: Form{Coming: true, AttendeesCount: 1}}
}

// ============================
// Actions

type Action interface{ isAction() }

type (
	SetGuestName    struct{ Value string }
	SetContact      struct{ Value string }
	SetComing       struct{ Value bool }
	SetAttendees    struct{ Value int }
	AddItem         struct{ Item guest.ItemInput }
	RemoveItem      struct{ Index int }
	Submit          struct{}
	SubmitSucceeded struct{ GuestID uuid.UUID }
	SubmitFailed    struct{ Reason string }
	Reset           struct{}
)

type UpdateItem struct {
	Index int
	Item  guest.ItemInput
}

func (SetGuestName) isAction()    {}
func (SetContact) isAction()      {}
func (SetComing) isAction()       {}
func (SetAttendees) isAction()    {}
func (AddItem) isAction()         {}
func (UpdateItem) isAction()      {}
func (RemoveItem) isAction()      {}
func (Submit) isAction()          {}
func (SubmitSucceeded) isAction() {}
func (SubmitFailed) isAction()    {}
func (Reset) isAction()           {}

// editable reports whether form fields may still change.
func (s Session) editable() bool {
	return s.Phase == PhaseEditing || s.Phase == PhaseFailed
}

// Reduce applies a to s.
//
//	Editing --Submit(valid)--> Submitting --SubmitSucceeded--> Succeeded
//	                                      --SubmitFailed-----> Failed --Submit--> Submitting
//
// An invalid Submit stays in Editing with Errors filled. A Submit while
// already Submitting is ignored, which swallows double clicks.
func Reduce(s Session, a Action) Session {
	next := s.clone()

	switch act := a.(type) {
	case SetGuestName:
		if s.editable() {
			next.Form.GuestName = act.Value
		}
	case SetContact:
		if s.editable() {
			next.Form.Contact = act.Value
		}
	case SetComing:
		if s.editable() {
			next.Form.Coming = act.Value
		}
	case SetAttendees:
		if s.editable() {
			next.Form.AttendeesCount = act.Value
		}
	case AddItem:
		if s.editable() {
			next.Form.Items = append(next.Form.Items, act.Item)
		}
	case UpdateItem:
		if s.editable() && act.Index >= 0 && act.Index < len(next.Form.Items) {
			next.Form.Items[act.Index] = act.Item
		}
	case RemoveItem:
		if s.editable() && act.Index >= 0 && act.Index < len(next.Form.Items) {
			next.Form.Items = append(next.Form.Items[:act.Index], next.Form.Items[act.Index+1:]...)
		}
	case Submit:
		if !s.editable() {
			return next
		}
		errs := Validate(next.Form)
		if len(errs) > 0 {
			next.Phase = PhaseEditing
			next.Errors = errs
			return next
		}
		next.Phase = PhaseSubmitting
		next.Errors = nil
		next.Failure = ""
	case SubmitSucceeded:
		if s.Phase == PhaseSubmitting {
			next.Phase = PhaseSucceeded
			next.GuestID = act.GuestID
		}
	case SubmitFailed:
		// form data is kept so the guest can retry
		if s.Phase == PhaseSubmitting {
			next.Phase = PhaseFailed
			next.Failure = act.Reason
		}
	case Reset:
		return NewSession()
	}
	return next
}

func (s Session) clone() Session {
	out := s
	if s.Form.Items != nil {
		out.Form.Items = make([]guest.ItemInput, len(s.Form.Items))
		copy(out.Form.Items, s.Form.Items)
	}
	if s.Errors != nil {
		out.Errors = append([]*apperr.ValidationError(nil), s.Errors...)
	}
	return out
}

// ============================
// Validation

// Validate checks the required fields only.
func Validate(f Form) []*apperr.ValidationError {
	var errs []*apperr.ValidationError
	if strings.TrimSpace(f.GuestName) == "" {
		errs = append(errs, &apperr.ValidationError{Field: "guest_name", Message: "Bitte gib deinen Namen an."})
	}
	if strings.TrimSpace(f.Contact) == "" {
		errs = append(errs, &apperr.ValidationError{Field: "contact", Message: "Bitte gib eine Kontaktmöglichkeit an."})
	}
	if f.Coming && (f.AttendeesCount < 1 || f.AttendeesCount > MaxAttendees) {
		errs = append(errs, &apperr.ValidationError{Field: "attendees_count", Message: "Bitte wähle zwischen 1 und 6 Personen."})
	}
	return errs
}

// Normalize trims the input and drops what a declining guest cannot send:
// attendees fall back to 1 and item drafts are discarded. Empty drafts
// (no category, no title) are removed as well.
func Normalize(f Form) Form {
	out := Form{
		GuestName:      strings.TrimSpace(f.GuestName),
		Contact:        strings.TrimSpace(f.Contact),
		Coming:         f.Coming,
		AttendeesCount: f.AttendeesCount,
	}
	if !out.Coming {
		out.AttendeesCount = 1
		return out
	}
	for _, it := range f.Items {
		hasCategory := it.CategoryID != nil && *it.CategoryID != uuid.Nil
		if !hasCategory && strings.TrimSpace(it.ItemTitle) == "" {
			continue
		}
		out.Items = append(out.Items, it)
	}
	return out
}
