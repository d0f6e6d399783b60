package main

import (
	"testing"

	"coreops-backend/models"
	"coreops-backend/services"

	"github.com/stretchr/testify/assert"
)

func TestBoardBypassesDomainAuthorization(t *testing.T) {
	db := setupTestDB()
	_, _, board := createTestUsers(db)
	authz := services.NewAuthorizationService(db)

	ok, err := authz.IsAuthorized(models.DomainInventory, board.ID, board.Role)
	assert.NoError(t, err)
	assert.True(t, ok)
}

func TestMemberRequiresGrant(t *testing.T) {
	db := setupTestDB()
	member, _, _ := createTestUsers(db)
	authz := services.NewAuthorizationService(db)

	ok, err := authz.IsAuthorized(models.DomainInventory, member.ID, member.Role)
	assert.NoError(t, err)
	assert.False(t, ok)

	_, _, err = authz.Grant(models.DomainInventory, []uint{member.ID})
	assert.NoError(t, err)

	ok, err = authz.IsAuthorized(models.DomainInventory, member.ID, member.Role)
	assert.NoError(t, err)
	assert.True(t, ok)

	// Доступ выдан только к одному домену
	ok, err = authz.IsAuthorized(models.DomainProduction, member.ID, member.Role)
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestGrantIsIdempotent(t *testing.T) {
	db := setupTestDB()
	member, head, _ := createTestUsers(db)
	authz := services.NewAuthorizationService(db)

	created, existing, err := authz.Grant(models.DomainProduction, []uint{member.ID, head.ID})
	assert.NoError(t, err)
	assert.Equal(t, 2, created)
	assert.Equal(t, 0, existing)

	created, existing, err = authz.Grant(models.DomainProduction, []uint{member.ID, head.ID})
	assert.NoError(t, err)
	assert.Equal(t, 0, created)
	assert.Equal(t, 2, existing)

	var count int64
	db.Model(&models.AuthorizedUser{}).Where("domain = ?", models.DomainProduction).Count(&count)
	assert.Equal(t, int64(2), count)
}

func TestRevokeAuthorization(t *testing.T) {
	db := setupTestDB()
	member, _, _ := createTestUsers(db)
	authz := services.NewAuthorizationService(db)

	_, _, err := authz.Grant(models.DomainInventory, []uint{member.ID})
	assert.NoError(t, err)

	assert.NoError(t, authz.Revoke(models.DomainInventory, member.ID))

	ok, _ := authz.IsAuthorized(models.DomainInventory, member.ID, member.Role)
	assert.False(t, ok)

	// Повторный отзыв - ошибка "не найдено"
	err = authz.Revoke(models.DomainInventory, member.ID)
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestListAuthorizedWithNames(t *testing.T) {
	db := setupTestDB()
	member, head, _ := createTestUsers(db)
	authz := services.NewAuthorizationService(db)

	_, _, err := authz.Grant(models.DomainInventory, []uint{member.ID, head.ID})
	assert.NoError(t, err)

	list, err := authz.ListAuthorized(models.DomainInventory)
	assert.NoError(t, err)
	assert.Len(t, list, 2)

	names := []string{list[0].FullName, list[1].FullName}
	assert.Contains(t, names, "Test Member")
	assert.Contains(t, names, "Test Head")
}
