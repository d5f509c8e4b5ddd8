package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"warehouse/internal/model"
)

// MockProductDocument is a mock implementation of store.Document[model.Product].
type MockProductDocument struct {
	mock.Mock
}

func (m *MockProductDocument) Load(ctx context.Context) []model.Product {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return []model.Product{}
	}
	return args.Get(0).([]model.Product)
}

func (m *MockProductDocument) Save(ctx context.Context, records []model.Product) error {
	args := m.Called(ctx, records)
	return args.Error(0)
}

// MockUserDocument is a mock implementation of store.Document[model.User].
type MockUserDocument struct {
	mock.Mock
}

func (m *MockUserDocument) Load(ctx context.Context) []model.User {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return []model.User{}
	}
	return args.Get(0).([]model.User)
}

func (m *MockUserDocument) Save(ctx context.Context, records []model.User) error {
	args := m.Called(ctx, records)
	return args.Error(0)
}

// MockTokenStore is a mock implementation of auth.TokenStore.
type MockTokenStore struct {
	mock.Mock
}

func (m *MockTokenStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	args := m.Called(ctx, tokenID, ttl)
	return args.Error(0)
}

func (m *MockTokenStore) IsRevoked(ctx context.Context, tokenID string) bool {
	args := m.Called(ctx, tokenID)
	return args.Bool(0)
}

// memoryCatalog keeps a copy of the catalog between calls.
type memoryCatalog struct {
	products []model.Product
	saves    int
}

func (c *memoryCatalog) Load(context.Context) []model.Product {
	out := make([]model.Product, len(c.products))
	copy(out, c.products)
	return out
}

func (c *memoryCatalog) Save(_ context.Context, records []model.Product) error {
	c.products = make([]model.Product, len(records))
	copy(c.products, records)
	c.saves++
	return nil
}
