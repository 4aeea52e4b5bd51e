package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/furnico/internal/cache"
	"github.com/Skotchmaster/furnico/internal/dbtest"
	"github.com/Skotchmaster/furnico/internal/events"
	"github.com/Skotchmaster/furnico/internal/models"
	"github.com/Skotchmaster/furnico/internal/repo"
)

type testEnv struct {
	Repo    *repo.GormRepo
	Events  *events.Recorder
	Cache   *cache.Memory
	Auth    *AuthService
	Catalog *CatalogService
	Cart    *CartService
	Orders  *OrderService
	Address *AddressService
	Reviews *ReviewService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	r := repo.New(dbtest.New(t))
	rec := &events.Recorder{}
	mem := cache.NewMemory()
	catalog := &CatalogService{Repo: r, Events: rec, Cache: mem}
	return &testEnv{
		Repo:    r,
		Events:  rec,
		Cache:   mem,
		Auth:    &AuthService{Repo: r, Events: rec, JWTSecret: []byte("access"), RefreshSecret: []byte("refresh")},
		Catalog: catalog,
		Cart:    &CartService{Repo: r, Events: rec},
		Orders:  &OrderService{Repo: r, Events: rec, Catalog: catalog},
		Address: &AddressService{Repo: r},
		Reviews: &ReviewService{Repo: r, Catalog: catalog},
	}
}

func (e *testEnv) product(t *testing.T, title, price string, stock int) *models.Product {
	t.Helper()
	p := &models.Product{Title: title, Price: decimal.RequireFromString(price), Stock: stock, Category: "Tables"}
	require.NoError(t, e.Repo.CreateProduct(context.Background(), p))
	return p
}

func (e *testEnv) user(t *testing.T, name string) uuid.UUID {
	t.Helper()
	u := &models.User{Name: name, Email: name + "@furnico.dev", PasswordHash: "x", Role: models.RoleUser}
	require.NoError(t, e.Repo.CreateUserIfNotExists(context.Background(), u))
	return u.ID
}

func (e *testEnv) address(t *testing.T, userID uuid.UUID) *models.Address {
	t.Helper()
	a := &models.Address{UserID: userID, Name: "Home", Street: "1 Elm St", City: "Pune", State: "MH", Zip: "411001"}
	require.NoError(t, e.Repo.CreateAddress(context.Background(), a))
	return a
}
