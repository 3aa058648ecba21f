package rsvp

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sharath018/potluck-rsvp-backend/internal/apperr"
	"github.com/sharath018/potluck-rsvp-backend/internal/category"
	"github.com/sharath018/potluck-rsvp-backend/internal/guest"
	"github.com/sharath018/potluck-rsvp-backend/internal/notification"
	"github.com/sharath018/potluck-rsvp-backend/utils"
)

// ErrSubmissionInFlight is returned when the same idempotency key is still being processed.
var ErrSubmissionInFlight = errors.New("submission already in progress")

const (
	idempotencyPrefix = "rsvp:idem:"
	idempotencyTTL    = 10 * time.Minute
	publishTimeout    = 5 * time.Second
	pendingMarker     = "pending"
)

// PublishFunc sends an event to the message bus.
type PublishFunc func(ctx context.Context, key string, payload interface{}) error

// Service runs the public submission workflow.
type Service struct {
	Guests     *guest.Repository
	Categories *category.Repository
	Publish    PublishFunc
	OnChange   func(ctx context.Context)
}

func NewService(guests *guest.Repository, categories *category.Repository) *Service {
	return &Service{Guests: guests, Categories: categories}
}

// SubmitRequest is the body of POST /rsvp.
type SubmitRequest struct {
	GuestName      string            `json:"guest_name" example:"Anna Muster"`
	Contact        string            `json:"contact" example:"anna@example.ch"`
	Coming         *bool             `json:"coming" binding:"required"`
	AttendeesCount int               `json:"attendees_count" example:"2"`
	Items          []guest.ItemInput `json:"items"`
}

func (r SubmitRequest) form() Form {
	return Form{
		GuestName:      r.GuestName,
		Contact:        r.Contact,
		Coming:         r.Coming != nil && *r.Coming,
		AttendeesCount: r.AttendeesCount,
		Items:          r.Items,
	}
}

// SubmitResult is what the confirmation page needs.
type SubmitResult struct {
	GuestID   uuid.UUID    `json:"guest_id"`
	Coming    bool         `json:"coming"`
	ItemCount int          `json:"item_count"`
	Duplicate bool         `json:"duplicate"`
	Message   Confirmation `json:"confirmation"`
}

type idempotencyRecord struct {
	GuestID   uuid.UUID `json:"guest_id"`
	Coming    bool      `json:"coming"`
	ItemCount int       `json:"item_count"`
}

// Submit validates the form and stores the guest with all items in one
// transaction. With an idempotency key a repeated call returns the first
// result instead of creating a second guest.
func (s *Service) Submit(ctx context.Context, req SubmitRequest, idempotencyKey string) (*SubmitResult, error) {
	session := NewSession()
	session.Form = Normalize(req.form())
	session = Reduce(session, Submit{})
	if session.Phase != PhaseSubmitting {
		return nil, session.Errors[0]
	}

	if idempotencyKey != "" {
		if res, err := s.replay(ctx, idempotencyKey); res != nil || err != nil {
			return res, err
		}
	}

	g, items, err := s.write(ctx, session.Form)
	if err != nil {
		session = Reduce(session, SubmitFailed{Reason: err.Error()})
		utils.Log.Error("rsvp submission failed",
			zap.String("phase", string(session.Phase)),
			zap.String("guest_name", session.Form.GuestName),
			zap.Error(err))
		if idempotencyKey != "" {
			_ = utils.DeleteToken(idempotencyPrefix + idempotencyKey)
		}
		return nil, apperr.Write("create rsvp", err)
	}
	session = Reduce(session, SubmitSucceeded{GuestID: g.ID})

	if idempotencyKey != "" {
		s.remember(idempotencyKey, idempotencyRecord{GuestID: g.ID, Coming: g.Coming, ItemCount: len(items)})
	}

	utils.Log.Info("rsvp stored",
		zap.String("guest_id", session.GuestID.String()),
		zap.Bool("coming", g.Coming),
		zap.Int("items", len(items)))

	if s.OnChange != nil {
		s.OnChange(ctx)
	}
	s.publish(g, items)

	return &SubmitResult{
		GuestID:   g.ID,
		Coming:    g.Coming,
		ItemCount: len(items),
		Message:   ConfirmationFor(g.Coming),
	}, nil
}

func (s *Service) write(ctx context.Context, f Form) (*guest.Guest, []guest.ContributionItem, error) {
	g := &guest.Guest{
		GuestName:      f.GuestName,
		Contact:        f.Contact,
		Coming:         f.Coming,
		AttendeesCount: f.AttendeesCount,
	}
	items := make([]guest.ContributionItem, 0, len(f.Items))
	for _, in := range f.Items {
		items = append(items, in.ToItem(uuid.Nil))
	}
	if err := s.Guests.CreateWithItems(ctx, g, items); err != nil {
		return nil, nil, err
	}
	return g, items, nil
}

// replay returns the stored result for a finished key, claims a new key, or
// reports that another request holds it.
func (s *Service) replay(ctx context.Context, key string) (*SubmitResult, error) {
	redisKey := idempotencyPrefix + key

	claimed, err := utils.ClaimKey(ctx, redisKey, pendingMarker, idempotencyTTL)
	if err != nil {
		// Redis trouble must not block guests, fall through without dedup.
		utils.Log.Warn("idempotency claim failed", zap.Error(err))
		return nil, nil
	}
	if claimed {
		return nil, nil
	}

	raw, err := utils.GetToken(redisKey)
	if err != nil || raw == pendingMarker {
		return nil, ErrSubmissionInFlight
	}

	var rec idempotencyRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return nil, ErrSubmissionInFlight
	}
	return &SubmitResult{
		GuestID:   rec.GuestID,
		Coming:    rec.Coming,
		ItemCount: rec.ItemCount,
		Duplicate: true,
		Message:   ConfirmationFor(rec.Coming),
	}, nil
}

func (s *Service) remember(key string, rec idempotencyRecord) {
	raw, err := json.Marshal(rec)
	if err != nil {
		return
	}
	if err := utils.SetToken(idempotencyPrefix+key, string(raw), idempotencyTTL); err != nil {
		utils.Log.Warn("idempotency store failed", zap.Error(err))
	}
}

// publish announces the submission off the request path. Failures are only logged.
func (s *Service) publish(g *guest.Guest, items []guest.ContributionItem) {
	if s.Publish == nil {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()

		names := map[uuid.UUID]string{}
		if s.Categories != nil {
			if cats, err := s.Categories.ListAll(ctx); err == nil {
				for _, c := range cats {
					names[c.ID] = c.Name
				}
			}
		}

		event := notification.NewSubmissionEvent(*g, items, names)
		if err := s.Publish(ctx, g.ID.String(), event); err != nil {
			utils.Log.Warn("publishing rsvp event failed", zap.String("guest_id", g.ID.String()), zap.Error(err))
		}
	}()
}
