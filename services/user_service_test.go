package services

import (
	"context"
	"testing"

	"revuea.app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetProfile(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "ali@example.com", "secret123")
	svc := NewUserService()
	ctx := context.Background()

	profile, err := svc.GetProfile(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, profile.Email)

	_, err = svc.GetProfile(ctx, 9999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUpdateName(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "ali@example.com", "secret123")
	svc := NewUserService()
	ctx := context.Background()

	updated, err := svc.UpdateName(ctx, user.ID, "  Ali Veli  ")
	require.NoError(t, err)
	assert.Equal(t, "Ali Veli", updated.Name)

	var stored models.User
	require.NoError(t, db.First(&stored, user.ID).Error)
	assert.Equal(t, "Ali Veli", stored.Name)

	_, err = svc.UpdateName(ctx, user.ID, "   ")
	assert.ErrorIs(t, err, ErrUserInvalidInput)
}
