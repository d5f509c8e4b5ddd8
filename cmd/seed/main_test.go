package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"warehouse/internal/auth"
	"warehouse/internal/model"
)

func TestToProducts_SkipsInvalidEntries(t *testing.T) {
	items := []SeedProductData{
		{ID: 1, SKU: "A", Price: "10.50", Stock: 1},
		{ID: 2, SKU: "B", Price: "0", Stock: 1},
		{ID: 3, SKU: "C", Price: "abc", Stock: 1},
		{ID: 4, SKU: "D", Price: "1", Stock: -1},
		{ID: 5, SKU: "", Price: "1", Stock: 1},
		{ID: 6, SKU: "F", Price: "1", Stock: 0},
	}

	products, skipped := toProducts(items)

	assert.Equal(t, 4, skipped)
	require.Len(t, products, 2)
	assert.Equal(t, "A", products[0].SKU)
	assert.True(t, products[0].Price.Equal(decimal.RequireFromString("10.5")))
	assert.Equal(t, "F", products[1].SKU)
}

func TestMergeProducts(t *testing.T) {
	then := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	existing := []model.Product{
		{ID: 1, SKU: "A", Name: "old", CreatedAt: then, UpdatedAt: then},
		{ID: 2, SKU: "B", CreatedAt: then, UpdatedAt: then},
	}
	incoming := []model.Product{
		{ID: 1, SKU: "A", Name: "new"},
		{ID: 3, SKU: "C"},
		{ID: 4, SKU: "B"},
	}

	merged, created, updated := mergeProducts(existing, incoming, now)

	assert.Equal(t, 1, created)
	assert.Equal(t, 1, updated)
	require.Len(t, merged, 3)

	assert.Equal(t, "new", merged[0].Name)
	assert.Equal(t, then, merged[0].CreatedAt)
	assert.Equal(t, now, merged[0].UpdatedAt)

	assert.Equal(t, 3, merged[2].ID)
	assert.Equal(t, now, merged[2].CreatedAt)
	assert.Equal(t, merged[2].CreatedAt, merged[2].UpdatedAt)

	assert.Equal(t, "old", existing[0].Name)
}

func TestSeedUsers(t *testing.T) {
	plain, err := seedUsers(defaultUsers, false)
	require.NoError(t, err)
	assert.Equal(t, defaultUsers, plain)

	hashed, err := seedUsers(defaultUsers, true)
	require.NoError(t, err)
	require.Len(t, hashed, len(defaultUsers))
	for i, u := range hashed {
		assert.True(t, auth.IsHashed(u.Password))
		assert.True(t, auth.CheckPassword(u.Password, defaultUsers[i].Password))
	}
	assert.False(t, auth.IsHashed(defaultUsers[0].Password))
}

func TestFetchProducts_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"id":7,"sku":"G","name":"g","description":"d","price":"3.25","category":"c","stock":2}]`), 0o644))

	items, err := fetchProducts(path)

	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "3.25", items[0].Price)

	_, err = fetchProducts(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestDefaultUsersCoverEveryRole(t *testing.T) {
	roles := make([]model.Role, 0, len(defaultUsers))
	for _, u := range defaultUsers {
		roles = append(roles, u.Role)
	}
	assert.ElementsMatch(t, []model.Role{model.RoleAdmin, model.RoleEditor, model.RoleViewer}, roles)
}
