package guest

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sharath018/potluck-rsvp-backend/internal/apperr"
	"github.com/sharath018/potluck-rsvp-backend/internal/auditlog"
)

// Service holds the admin operations on guests and their items.
type Service struct {
	Repo     *Repository
	AuditSvc auditlog.Service
	OnChange func(ctx context.Context)
}

func NewService(r *Repository, auditSvc auditlog.Service) *Service {
	return &Service{Repo: r, AuditSvc: auditSvc}
}

func (s *Service) changed(ctx context.Context) {
	if s.OnChange != nil {
		s.OnChange(ctx)
	}
}

func (s *Service) audit(ctx context.Context, actor auditlog.Actor, id uuid.UUID, action string, details map[string]interface{}, err error) {
	if s.AuditSvc == nil {
		return
	}
	status := auditlog.StatusSuccess
	if err != nil {
		status = auditlog.StatusFailure
		details["error"] = err.Error()
	}
	_ = s.AuditSvc.LogAction(ctx, actor, id.String(), action, details, status)
}

func writeErr(op string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.ErrNotFound
	}
	return apperr.Write(op, err)
}

// ListWithItems is the admin guest list, newest first.
func (s *Service) ListWithItems(ctx context.Context) ([]Guest, error) {
	out, err := s.Repo.ListGuestsWithItems(ctx, true)
	if err != nil {
		return nil, apperr.Load("guests", err)
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Guest, error) {
	g, err := s.Repo.GetGuest(ctx, id)
	if err != nil {
		return nil, apperr.Load("guest", err)
	}
	return g, nil
}

// ===========================
// Update Guest
func (s *Service) Update(ctx context.Context, id uuid.UUID, req UpdateGuestRequest, actor auditlog.Actor) (*Guest, error) {
	changes := map[string]interface{}{}
	if req.GuestName != nil {
		name := strings.TrimSpace(*req.GuestName)
		if name == "" {
			return nil, apperr.Invalid("guest_name", "Name ist erforderlich")
		}
		changes["guest_name"] = name
	}
	if req.Contact != nil {
		contact := strings.TrimSpace(*req.Contact)
		if contact == "" {
			return nil, apperr.Invalid("contact", "Kontakt ist erforderlich")
		}
		changes["contact"] = contact
	}
	if req.Coming != nil {
		changes["coming"] = *req.Coming
	}
	if req.AttendeesCount != nil {
		if *req.AttendeesCount < 1 {
			return nil, apperr.Invalid("attendees_count", "Mindestens eine Person")
		}
		changes["attendees_count"] = *req.AttendeesCount
	}
	if len(changes) == 0 {
		return s.Get(ctx, id)
	}

	err := s.Repo.UpdateGuest(ctx, id, changes)
	s.audit(ctx, actor, id, "GUEST_UPDATED", map[string]interface{}{"changes": changes}, err)
	if err != nil {
		return nil, writeErr("update guest", err)
	}
	s.changed(ctx)
	return s.Get(ctx, id)
}

// ===========================
// Delete Guest (cascades to items)
func (s *Service) Delete(ctx context.Context, id uuid.UUID, actor auditlog.Actor) error {
	removed, err := s.Repo.DeleteGuest(ctx, id)
	s.audit(ctx, actor, id, "GUEST_DELETED", map[string]interface{}{"items_removed": removed}, err)
	if err != nil {
		return writeErr("delete guest", err)
	}
	s.changed(ctx)
	return nil
}

// ===========================
// Items

func (s *Service) AddItem(ctx context.Context, guestID uuid.UUID, in ItemInput, actor auditlog.Actor) (*ContributionItem, error) {
	exists, err := s.Repo.GuestExists(ctx, guestID)
	if err != nil {
		return nil, apperr.Load("guest", err)
	}
	if !exists {
		return nil, apperr.ErrNotFound
	}

	item := in.ToItem(guestID)
	err = s.Repo.CreateItem(ctx, &item)
	s.audit(ctx, actor, guestID, "ITEM_CREATED", map[string]interface{}{"item_title": item.ItemTitle}, err)
	if err != nil {
		return nil, writeErr("create item", err)
	}
	s.changed(ctx)
	return &item, nil
}

// UpdateItem replaces the editable fields of an item. The owning guest never changes.
func (s *Service) UpdateItem(ctx context.Context, itemID uuid.UUID, in ItemInput, actor auditlog.Actor) (*ContributionItem, error) {
	existing, err := s.Repo.GetItem(ctx, itemID)
	if err != nil {
		return nil, apperr.Load("item", err)
	}

	updated := in.ToItem(existing.GuestID)
	updated.ID = existing.ID
	updated.CreatedAt = existing.CreatedAt

	err = s.Repo.SaveItem(ctx, &updated)
	s.audit(ctx, actor, itemID, "ITEM_UPDATED", map[string]interface{}{"item_title": updated.ItemTitle}, err)
	if err != nil {
		return nil, writeErr("update item", err)
	}
	s.changed(ctx)
	return &updated, nil
}

func (s *Service) DeleteItem(ctx context.Context, itemID uuid.UUID, actor auditlog.Actor) error {
	err := s.Repo.DeleteItem(ctx, itemID)
	s.audit(ctx, actor, itemID, "ITEM_DELETED", map[string]interface{}{}, err)
	if err != nil {
		return writeErr("delete item", err)
	}
	s.changed(ctx)
	return nil
}
