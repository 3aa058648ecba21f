package category

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

func (r *Repository) Create(ctx context.Context, c *Category) error {
	return r.DB.WithContext(ctx).Create(c).Error
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Category, error) {
	var c Category
	if err := r.DB.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// ListActive returns the categories shown to guests, ordered by sort_order.
func (r *Repository) ListActive(ctx context.Context) ([]Category, error) {
	var out []Category
	err := r.DB.WithContext(ctx).
		Where("active = ?", true).
		Order("sort_order ASC").
		Order("name ASC").
		Find(&out).Error
	return out, err
}

// ListAll includes inactive categories for the admin view.
func (r *Repository) ListAll(ctx context.Context) ([]Category, error) {
	var out []Category
	err := r.DB.WithContext(ctx).
		Order("sort_order ASC").
		Order("name ASC").
		Find(&out).Error
	return out, err
}

// Update applies the given column changes. Map updates keep zero values like
// quota 0 or active false.
func (r *Repository) Update(ctx context.Context, id uuid.UUID, changes map[string]interface{}) error {
	res := r.DB.WithContext(ctx).Model(&Category{}).Where("id = ?", id).Updates(changes)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *Repository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&Category{}).Count(&n).Error
	return n, err
}
