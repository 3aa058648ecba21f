package category

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sharath018/potluck-rsvp-backend/internal/apperr"
	"github.com/sharath018/potluck-rsvp-backend/internal/auditlog"
)

// Service wraps admin category management.
type Service struct {
	Repo     *Repository
	AuditSvc auditlog.Service
	// OnChange runs after every successful write, used to drop cached read models.
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

func (s *Service) audit(ctx context.Context, actor auditlog.Actor, id uuid.UUID, action string, details map[string]interface{}, status string) {
	if s.AuditSvc == nil {
		return
	}
	target := ""
	if id != uuid.Nil {
		target = id.String()
	}
	_ = s.AuditSvc.LogAction(ctx, actor, target, action, details, status)
}

func (s *Service) ListActive(ctx context.Context) ([]Category, error) {
	out, err := s.Repo.ListActive(ctx)
	if err != nil {
		return nil, apperr.Load("categories", err)
	}
	return out, nil
}

func (s *Service) ListAll(ctx context.Context) ([]Category, error) {
	out, err := s.Repo.ListAll(ctx)
	if err != nil {
		return nil, apperr.Load("categories", err)
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Category, error) {
	c, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, apperr.Load("category", err)
	}
	return c, nil
}

// ===========================
// Create Category
func (s *Service) Create(ctx context.Context, req CreateCategoryRequest, actor auditlog.Actor) (*Category, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperr.Invalid("name", "Name ist erforderlich")
	}
	if req.Quota < 0 {
		return nil, apperr.Invalid("quota", "Kontingent darf nicht negativ sein")
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	c := &Category{
		Name:      name,
		Quota:     req.Quota,
		Examples:  strings.TrimSpace(req.Examples),
		SortOrder: req.SortOrder,
		Active:    active,
	}

	if err := s.Repo.Create(ctx, c); err != nil {
		s.audit(ctx, actor, uuid.Nil, "CATEGORY_CREATED", map[string]interface{}{
			"name":  name,
			"error": err.Error(),
		}, auditlog.StatusFailure)
		return nil, apperr.Write("create category", err)
	}

	s.audit(ctx, actor, c.ID, "CATEGORY_CREATED", map[string]interface{}{
		"name":  c.Name,
		"quota": c.Quota,
	}, auditlog.StatusSuccess)
	s.changed(ctx)
	return c, nil
}

// ===========================
// Update Category
func (s *Service) Update(ctx context.Context, id uuid.UUID, req UpdateCategoryRequest, actor auditlog.Actor) (*Category, error) {
	changes := map[string]interface{}{}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, apperr.Invalid("name", "Name ist erforderlich")
		}
		changes["name"] = name
	}
	if req.Quota != nil {
		if *req.Quota < 0 {
			return nil, apperr.Invalid("quota", "Kontingent darf nicht negativ sein")
		}
		changes["quota"] = *req.Quota
	}
	if req.Examples != nil {
		changes["examples"] = strings.TrimSpace(*req.Examples)
	}
	if req.SortOrder != nil {
		changes["sort_order"] = *req.SortOrder
	}
	if req.Active != nil {
		changes["active"] = *req.Active
	}
	if len(changes) == 0 {
		return s.Get(ctx, id)
	}

	return s.apply(ctx, id, changes, "CATEGORY_UPDATED", actor)
}

// UpdateQuota is the quick inline quota edit of the admin table.
func (s *Service) UpdateQuota(ctx context.Context, id uuid.UUID, quota int, actor auditlog.Actor) (*Category, error) {
	if quota < 0 {
		return nil, apperr.Invalid("quota", "Kontingent darf nicht negativ sein")
	}
	return s.apply(ctx, id, map[string]interface{}{"quota": quota}, "CATEGORY_QUOTA_UPDATED", actor)
}

// Deactivate hides a category from guests. Existing items keep their reference.
func (s *Service) Deactivate(ctx context.Context, id uuid.UUID, actor auditlog.Actor) (*Category, error) {
	return s.apply(ctx, id, map[string]interface{}{"active": false}, "CATEGORY_DEACTIVATED", actor)
}

func (s *Service) apply(ctx context.Context, id uuid.UUID, changes map[string]interface{}, action string, actor auditlog.Actor) (*Category, error) {
	if err := s.Repo.Update(ctx, id, changes); err != nil {
		details := map[string]interface{}{"changes": changes, "error": err.Error()}
		s.audit(ctx, actor, id, action, details, auditlog.StatusFailure)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, apperr.Write("update category", err)
	}

	s.audit(ctx, actor, id, action, map[string]interface{}{"changes": changes}, auditlog.StatusSuccess)
	s.changed(ctx)
	return s.Get(ctx, id)
}

// SeedDefaults inserts the starter categories when the table is empty.
func (s *Service) SeedDefaults(ctx context.Context) error {
	n, err := s.Repo.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	for i, c := range defaultCategories {
		c.SortOrder = (i + 1) * 10
		c.Active = true
		if err := s.Repo.Create(ctx, &c); err != nil {
			return err
		}
	}
	return nil
}

var defaultCategories = []Category{
	{Name: "Salate", Quota: 4, Examples: "Kartoffelsalat, Couscous, grüner Salat"},
	{Name: "Hauptgerichte", Quota: 4, Examples: "Lasagne, Curry, Quiche"},
	{Name: "Apéro & Brot", Quota: 3, Examples: "Zopf, Dips, Gemüsesticks"},
	{Name: "Desserts", Quota: 4, Examples: "Kuchen, Tiramisu, Fruchtsalat"},
	{Name: "Getränke", Quota: 3, Examples: "Sirup, Eistee, Bier"},
}
