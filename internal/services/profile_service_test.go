package services

import (
	"strings"
	"testing"

	"appointly/internal/auth"
	"appointly/internal/models"
	"appointly/internal/repositories"
	"appointly/internal/services/dto"
	"appointly/internal/testutil"
	"appointly/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileService_GetProfileRendersEmptyStrings(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := NewProfileService(repositories.NewUserRepository())
	user := testutil.CreateUser(t, db, testutil.UserFixture{Email: "ann@example.com", FirstName: "Ann"})

	profile, err := svc.GetProfile(db, user.ID)
	require.NoError(t, err)

	assert.Equal(t, user.ID, profile.User.ID)
	assert.Equal(t, "Ann", profile.User.FirstName)
	assert.Equal(t, "", profile.User.LastName)
	assert.Equal(t, "", profile.User.Phone)
	assert.Equal(t, "", profile.User.Image)
	assert.Equal(t, "ann@example.com", profile.User.Email)

	_, err = svc.GetProfile(db, user.ID+100)
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestProfileService_UpdateProfile(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := NewProfileService(repositories.NewUserRepository())
	user := testutil.CreateUser(t, db, testutil.UserFixture{FirstName: "Ann", LastName: "Lee"})

	t.Run("no fields", func(t *testing.T) {
		_, err := svc.UpdateProfile(db, user.ID, &dto.UpdateProfileRequest{})
		assert.ErrorIs(t, err, apperrors.ErrNoFieldsToUpdate)
	})

	t.Run("blank first name", func(t *testing.T) {
		_, err := svc.UpdateProfile(db, user.ID, &dto.UpdateProfileRequest{FirstName: dto.Some(" ")})
		assert.ErrorIs(t, err, apperrors.ErrFirstNameRequired)
	})

	t.Run("null last name", func(t *testing.T) {
		_, err := svc.UpdateProfile(db, user.ID, &dto.UpdateProfileRequest{LastName: dto.Null()})
		assert.ErrorIs(t, err, apperrors.ErrLastNameRequired)
	})

	t.Run("phone too long", func(t *testing.T) {
		_, err := svc.UpdateProfile(db, user.ID, &dto.UpdateProfileRequest{Phone: dto.Some(strings.Repeat("1", 21))})
		assert.ErrorIs(t, err, apperrors.ErrInvalidPhone)
	})

	t.Run("free-form phone", func(t *testing.T) {
		profile, err := svc.UpdateProfile(db, user.ID, &dto.UpdateProfileRequest{Phone: dto.Some("ext. 12")})
		require.NoError(t, err)
		assert.Equal(t, "ext. 12", profile.User.Phone)
	})

	t.Run("partial update", func(t *testing.T) {
		profile, err := svc.UpdateProfile(db, user.ID, &dto.UpdateProfileRequest{
			FirstName: dto.Some("  Anna "),
			Phone:     dto.Some(" +7 700 123 4567 "),
		})
		require.NoError(t, err)
		assert.Equal(t, "Anna", profile.User.FirstName)
		assert.Equal(t, "Lee", profile.User.LastName)
		assert.Equal(t, "+7 700 123 4567", profile.User.Phone)
	})

	t.Run("blank phone clears it", func(t *testing.T) {
		profile, err := svc.UpdateProfile(db, user.ID, &dto.UpdateProfileRequest{Phone: dto.Some("   ")})
		require.NoError(t, err)
		assert.Equal(t, "", profile.User.Phone)

		var stored models.User
		require.NoError(t, db.First(&stored, user.ID).Error)
		assert.Nil(t, stored.Phone)
	})
}

func TestProfileService_ChangePassword(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := NewProfileService(repositories.NewUserRepository())
	user := testutil.CreateUser(t, db, testutil.UserFixture{Password: "old-password"})
	oauthUser := testutil.CreateUser(t, db, testutil.UserFixture{})

	tests := []struct {
		name   string
		userID uint
		req    dto.ChangePasswordRequest
		want   error
	}{
		{"missing current", user.ID, dto.ChangePasswordRequest{NewPassword: "new-password"}, apperrors.ErrPasswordsRequired},
		{"missing new", user.ID, dto.ChangePasswordRequest{CurrentPassword: "old-password"}, apperrors.ErrPasswordsRequired},
		{"short new", user.ID, dto.ChangePasswordRequest{CurrentPassword: "old-password", NewPassword: "short"}, apperrors.ErrWeakPassword},
		{"no password set", oauthUser.ID, dto.ChangePasswordRequest{CurrentPassword: "whatever1", NewPassword: "new-password"}, apperrors.ErrPasswordNotSet},
		{"wrong current", user.ID, dto.ChangePasswordRequest{CurrentPassword: "wrong-password", NewPassword: "new-password"}, apperrors.ErrCurrentPasswordIncorrect},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			assert.ErrorIs(t, svc.ChangePassword(db, tt.userID, &req), tt.want)
		})
	}

	require.NoError(t, svc.ChangePassword(db, user.ID, &dto.ChangePasswordRequest{
		CurrentPassword: "old-password",
		NewPassword:     "new-password",
	}))

	var stored models.User
	require.NoError(t, db.First(&stored, user.ID).Error)
	require.NotNil(t, stored.Password)
	assert.NotEqual(t, "new-password", *stored.Password)
	assert.True(t, auth.CheckPasswordHash("new-password", *stored.Password))
}
