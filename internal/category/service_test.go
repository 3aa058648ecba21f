package category

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/sharath018/potluck-rsvp-backend/internal/apperr"
	"github.com/sharath018/potluck-rsvp-backend/internal/auditlog"
	"github.com/sharath018/potluck-rsvp-backend/internal/testutil"
)

func newTestService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()
	db := testutil.NewDB(t, &Category{}, &auditlog.AuditLog{})
	return NewService(NewRepository(db), auditlog.NewService(auditlog.NewRepository(db))), db
}

var admin = auditlog.Actor{IP: "127.0.0.1"}

func TestCreate_TrimsAndDefaultsActive(t *testing.T) {
	svc, db := newTestService(t)
	changed := 0
	svc.OnChange = func(context.Context) { changed++ }

	c, err := svc.Create(context.Background(), CreateCategoryRequest{Name: "  Salate ", Quota: 3, Examples: " Couscous "}, admin)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, c.ID)
	assert.Equal(t, "Salate", c.Name)
	assert.Equal(t, "Couscous", c.Examples)
	assert.True(t, c.Active)
	assert.Equal(t, 1, changed)

	var logs int64
	require.NoError(t, db.Model(&auditlog.AuditLog{}).Where("action = ?", "CATEGORY_CREATED").Count(&logs).Error)
	assert.Equal(t, int64(1), logs)
}

func TestCreate_Validation(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Create(context.Background(), CreateCategoryRequest{Name: " "}, admin)
	var vErr *apperr.ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, "name", vErr.Field)

	_, err = svc.Create(context.Background(), CreateCategoryRequest{Name: "X", Quota: -1}, admin)
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, "quota", vErr.Field)
}

func TestCreate_InactiveStaysInactive(t *testing.T) {
	svc, _ := newTestService(t)
	inactive := false

	c, err := svc.Create(context.Background(), CreateCategoryRequest{Name: "Alt", Quota: 1, Active: &inactive}, admin)
	require.NoError(t, err)

	got, err := svc.Get(context.Background(), c.ID)
	require.NoError(t, err)
	assert.False(t, got.Active)
}

func TestUpdateQuota_AllowsZero(t *testing.T) {
	svc, _ := newTestService(t)
	c, err := svc.Create(context.Background(), CreateCategoryRequest{Name: "Brot", Quota: 2}, admin)
	require.NoError(t, err)

	got, err := svc.UpdateQuota(context.Background(), c.ID, 0, admin)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Quota)

	_, err = svc.UpdateQuota(context.Background(), c.ID, -3, admin)
	assert.Error(t, err)
}

func TestDeactivate_HidesFromActiveList(t *testing.T) {
	svc, _ := newTestService(t)
	a, err := svc.Create(context.Background(), CreateCategoryRequest{Name: "A", Quota: 1, SortOrder: 2}, admin)
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), CreateCategoryRequest{Name: "B", Quota: 1, SortOrder: 1}, admin)
	require.NoError(t, err)

	_, err = svc.Deactivate(context.Background(), a.ID, admin)
	require.NoError(t, err)

	active, err := svc.ListActive(context.Background())
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "B", active[0].Name)

	all, err := svc.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "B", all[0].Name)
}

func TestUpdate_UnknownCategory(t *testing.T) {
	svc, _ := newTestService(t)
	quota := 3

	_, err := svc.Update(context.Background(), uuid.New(), UpdateCategoryRequest{Quota: &quota}, admin)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	_, err = svc.Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestSeedDefaults_OnlyOnce(t *testing.T) {
	svc, _ := newTestService(t)

	require.NoError(t, svc.SeedDefaults(context.Background()))
	require.NoError(t, svc.SeedDefaults(context.Background()))

	n, err := svc.Repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(len(defaultCategories)), n)
}
