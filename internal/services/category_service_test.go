package services

import (
	"testing"

	"appointly/internal/models"
	"appointly/internal/repositories"
	"appointly/internal/services/dto"
	"appointly/internal/testutil"
	"appointly/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func strPtr(s string) *string { return &s }

func int64Ptr(v int64) *int64 { return &v }

func newCategoryFixture(t *testing.T) (*gorm.DB, CategoryService, *models.User, *models.User) {
	t.Helper()
	db := testutil.NewTestDB(t)
	owner := testutil.CreateUser(t, db, testutil.UserFixture{FirstName: "Owner"})
	other := testutil.CreateUser(t, db, testutil.UserFixture{FirstName: "Other"})
	return db, NewCategoryService(repositories.NewCategoryRepository()), owner, other
}

func TestCategoryService_CreateNormalizesInput(t *testing.T) {
	db, svc, owner, _ := newCategoryFixture(t)

	created, err := svc.Create(db, &dto.CreateCategoryRequest{
		Name:        strPtr("  Haircuts  "),
		Description: strPtr("   "),
		UserID:      int64Ptr(int64(owner.ID)),
	})
	require.NoError(t, err)

	assert.NotZero(t, created.ID)
	assert.Equal(t, "Haircuts", created.Name)
	assert.Nil(t, created.Description)
	assert.Equal(t, owner.ID, created.UserID)
	assert.False(t, created.CreatedAt.IsZero())
}

func TestCategoryService_CreateValidation(t *testing.T) {
	db, svc, owner, _ := newCategoryFixture(t)

	tests := []struct {
		name string
		req  dto.CreateCategoryRequest
		want error
	}{
		{"missing name", dto.CreateCategoryRequest{UserID: int64Ptr(int64(owner.ID))}, apperrors.ErrCategoryNameRequired},
		{"blank name", dto.CreateCategoryRequest{Name: strPtr("  "), UserID: int64Ptr(int64(owner.ID))}, apperrors.ErrCategoryNameRequired},
		{"missing owner", dto.CreateCategoryRequest{Name: strPtr("Nails")}, apperrors.ErrCategoryOwnerRequired},
		{"zero owner", dto.CreateCategoryRequest{Name: strPtr("Nails"), UserID: int64Ptr(0)}, apperrors.ErrCategoryOwnerRequired},
		{"negative owner", dto.CreateCategoryRequest{Name: strPtr("Nails"), UserID: int64Ptr(-3)}, apperrors.ErrCategoryOwnerRequired},
		{"owner beyond serial range", dto.CreateCategoryRequest{Name: strPtr("Nails"), UserID: int64Ptr(models.MaxID + 1)}, apperrors.ErrInvalidOwnerID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			_, err := svc.Create(db, &req)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	var count int64
	require.NoError(t, db.Model(&models.Category{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCategoryService_ScopedReads(t *testing.T) {
	db, svc, owner, other := newCategoryFixture(t)

	mine, err := svc.Create(db, &dto.CreateCategoryRequest{Name: strPtr("Mine"), UserID: int64Ptr(int64(owner.ID))})
	require.NoError(t, err)
	theirs, err := svc.Create(db, &dto.CreateCategoryRequest{Name: strPtr("Theirs"), UserID: int64Ptr(int64(other.ID))})
	require.NoError(t, err)

	all, err := svc.FindAll(db, Unscoped())
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, mine.ID, all[0].ID)
	assert.Equal(t, theirs.ID, all[1].ID)

	owned, err := svc.FindAll(db, OwnedBy(owner.ID))
	require.NoError(t, err)
	require.Len(t, owned, 1)
	assert.Equal(t, "Mine", owned[0].Name)

	_, err = svc.FindOne(db, OwnedBy(owner.ID), theirs.ID)
	assert.ErrorIs(t, err, apperrors.ErrCategoryNotFound)

	found, err := svc.FindOne(db, Unscoped(), theirs.ID)
	require.NoError(t, err)
	assert.Equal(t, "Theirs", found.Name)
}

func TestCategoryService_Update(t *testing.T) {
	db, svc, owner, other := newCategoryFixture(t)

	cat, err := svc.Create(db, &dto.CreateCategoryRequest{
		Name:        strPtr("Massage"),
		Description: strPtr("Relax"),
		UserID:      int64Ptr(int64(owner.ID)),
	})
	require.NoError(t, err)

	t.Run("no fields", func(t *testing.T) {
		_, err := svc.Update(db, Unscoped(), 999, &dto.UpdateCategoryRequest{})
		assert.ErrorIs(t, err, apperrors.ErrNoFieldsToUpdate)
	})

	t.Run("blank name", func(t *testing.T) {
		_, err := svc.Update(db, Unscoped(), cat.ID, &dto.UpdateCategoryRequest{Name: dto.Some("   ")})
		assert.ErrorIs(t, err, apperrors.ErrCategoryNameRequired)
	})

	t.Run("null name", func(t *testing.T) {
		_, err := svc.Update(db, Unscoped(), cat.ID, &dto.UpdateCategoryRequest{Name: dto.Null()})
		assert.ErrorIs(t, err, apperrors.ErrCategoryNameRequired)
	})

	t.Run("foreign owner", func(t *testing.T) {
		_, err := svc.Update(db, OwnedBy(other.ID), cat.ID, &dto.UpdateCategoryRequest{Name: dto.Some("Stolen")})
		assert.ErrorIs(t, err, apperrors.ErrCategoryNotFound)
	})

	t.Run("only name keeps description", func(t *testing.T) {
		updated, err := svc.Update(db, OwnedBy(owner.ID), cat.ID, &dto.UpdateCategoryRequest{Name: dto.Some(" Spa ")})
		require.NoError(t, err)
		assert.Equal(t, "Spa", updated.Name)
		require.NotNil(t, updated.Description)
		assert.Equal(t, "Relax", *updated.Description)
	})

	t.Run("null description clears it", func(t *testing.T) {
		updated, err := svc.Update(db, Unscoped(), cat.ID, &dto.UpdateCategoryRequest{Description: dto.Null()})
		require.NoError(t, err)
		assert.Equal(t, "Spa", updated.Name)
		assert.Nil(t, updated.Description)
	})
}

func TestCategoryService_Remove(t *testing.T) {
	db, svc, owner, other := newCategoryFixture(t)

	cat, err := svc.Create(db, &dto.CreateCategoryRequest{Name: strPtr("Brows"), UserID: int64Ptr(int64(owner.ID))})
	require.NoError(t, err)

	_, err = svc.Remove(db, OwnedBy(other.ID), cat.ID)
	assert.ErrorIs(t, err, apperrors.ErrCategoryNotFound)

	removed, err := svc.Remove(db, OwnedBy(owner.ID), cat.ID)
	require.NoError(t, err)
	assert.Equal(t, cat.ID, removed.ID)
	assert.Equal(t, "Brows", removed.Name)

	_, err = svc.FindOne(db, Unscoped(), cat.ID)
	assert.ErrorIs(t, err, apperrors.ErrCategoryNotFound)

	_, err = svc.Remove(db, Unscoped(), cat.ID)
	assert.ErrorIs(t, err, apperrors.ErrCategoryNotFound)
}
