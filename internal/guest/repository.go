package guest

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

// CreateWithItems inserts the guest and all its items in one transaction.
// Either everything is stored or nothing.
func (r *Repository) CreateWithItems(ctx context.Context, g *Guest, items []ContributionItem) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Items are inserted explicitly below, skip the association upsert.
		if err := tx.Omit("Items").Create(g).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].GuestID = g.ID
		}
		if len(items) > 0 {
			if err := tx.Create(&items).Error; err != nil {
				return err
			}
		}
		g.Items = items
		return nil
	})
}

// ListGuests returns all guests ordered by created_at, ascending or descending.
func (r *Repository) ListGuests(ctx context.Context, newestFirst bool) ([]Guest, error) {
	var out []Guest
	order := "created_at ASC"
	if newestFirst {
		order = "created_at DESC"
	}
	err := r.DB.WithContext(ctx).Order(order).Find(&out).Error
	return out, err
}

// ListGuestsWithItems preloads every guest's items in created_at order.
func (r *Repository) ListGuestsWithItems(ctx context.Context, newestFirst bool) ([]Guest, error) {
	var out []Guest
	order := "created_at ASC"
	if newestFirst {
		order = "created_at DESC"
	}
	err := r.DB.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Order(order).
		Find(&out).Error
	return out, err
}

// ListItems returns every contribution item in created_at order.
func (r *Repository) ListItems(ctx context.Context) ([]ContributionItem, error) {
	var out []ContributionItem
	err := r.DB.WithContext(ctx).Order("created_at ASC").Find(&out).Error
	return out, err
}

func (r *Repository) GetGuest(ctx context.Context, id uuid.UUID) (*Guest, error) {
	var g Guest
	err := r.DB.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		First(&g, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *Repository) UpdateGuest(ctx context.Context, id uuid.UUID, changes map[string]interface{}) error {
	res := r.DB.WithContext(ctx).Model(&Guest{}).Where("id = ?", id).Updates(changes)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteGuest removes the guest and its items. The FK cascades too, the
// explicit delete keeps databases without enforced FKs consistent.
func (r *Repository) DeleteGuest(ctx context.Context, id uuid.UUID) (int64, error) {
	var removedItems int64
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("guest_id = ?", id).Delete(&ContributionItem{})
		if res.Error != nil {
			return res.Error
		}
		removedItems = res.RowsAffected

		res = tx.Where("id = ?", id).Delete(&Guest{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	return removedItems, err
}

// ============================
// Items

func (r *Repository) CreateItem(ctx context.Context, item *ContributionItem) error {
	return r.DB.WithContext(ctx).Create(item).Error
}

func (r *Repository) GetItem(ctx context.Context, id uuid.UUID) (*ContributionItem, error) {
	var item ContributionItem
	if err := r.DB.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// SaveItem writes every column of an existing item.
func (r *Repository) SaveItem(ctx context.Context, item *ContributionItem) error {
	return r.DB.WithContext(ctx).Save(item).Error
}

func (r *Repository) DeleteItem(ctx context.Context, id uuid.UUID) error {
	res := r.DB.WithContext(ctx).Where("id = ?", id).Delete(&ContributionItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *Repository) GuestExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&Guest{}).Where("id = ?", id).Count(&n).Error
	return n > 0, err
}
