package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lunarbyte/tradevalues/internal/catalog"
	"github.com/lunarbyte/tradevalues/internal/domain"
	"github.com/lunarbyte/tradevalues/internal/inventory"
)

// seedCatalogRepo returns a catalog fake seeded with a couple of items,
// for handlers whose services resolve items by slug.
func seedCatalogRepo(t *testing.T) *catalog.FakeRepository {
	t.Helper()
	repo := catalog.NewFakeRepository()
	svc := catalog.NewService(repo)
	ctx := context.Background()

	pets, err := svc.CreateCategory(ctx, catalog.CategoryInput{Name: "Pets"})
	require.NoError(t, err)

	_, err = svc.CreateItem(ctx, catalog.ItemInput{
		Name: "Ember Fox", CategoryID: pets.ID, ItemType: domain.ItemTypeItem,
		Rarity: domain.RarityRare, Value: 100, Demand: 9, Trend: domain.TrendStable,
	})
	require.NoError(t, err)
	_, err = svc.CreateItem(ctx, catalog.ItemInput{
		Name: "Frost Blade", CategoryID: pets.ID, ItemType: domain.ItemTypeItem,
		Rarity: domain.RarityRare, Value: 500, Demand: 7, Trend: domain.TrendRising,
	})
	require.NoError(t, err)

	return repo
}

func inventoryRouter(svc inventory.Service) http.Handler {
	r := chi.NewRouter()
	r.Get("/api/v1/inventory", HandleListInventory(svc))
	r.Post("/api/v1/inventory/{slug}", HandleAddInventoryItem(svc))
	r.Delete("/api/v1/inventory/{id}", HandleRemoveInventoryItem(svc))
	return r
}

func testUser(id, username string) *domain.User {
	return &domain.User{ID: id, Username: username, IsActive: true}
}

func TestHandleAddInventoryItem(t *testing.T) {
	svc := inventory.NewService(inventory.NewFakeRepository(), seedCatalogRepo(t))
	router := inventoryRouter(svc)
	owner := testUser("user-1", "alice")

	t.Run("EmptyBodyAddsOne", func(t *testing.T) {
		rec := doAuthedRequest(t, router, http.MethodPost, "/api/v1/inventory/ember-fox", "", owner)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			Data domain.InventoryItem `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, 1, resp.Data.Quantity)
		require.NotNil(t, resp.Data.Item)
		assert.Equal(t, "ember-fox", resp.Data.Item.Slug)
	})

	t.Run("RepeatAddAccumulates", func(t *testing.T) {
		rec := doAuthedRequest(t, router, http.MethodPost, "/api/v1/inventory/ember-fox", `{"quantity":4}`, owner)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			Data domain.InventoryItem `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, 5, resp.Data.Quantity)
	})

	t.Run("NegativeQuantityDegradesToOne", func(t *testing.T) {
		rec := doAuthedRequest(t, router, http.MethodPost, "/api/v1/inventory/frost-blade", `{"quantity":-5}`, owner)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			Data domain.InventoryItem `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, 1, resp.Data.Quantity)
	})

	t.Run("UnknownSlugNotFound", func(t *testing.T) {
		rec := doAuthedRequest(t, router, http.MethodPost, "/api/v1/inventory/no-such-item", "", owner)
		require.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), ErrMsgItemNotFoundError)
	})

	t.Run("AnonymousUnauthorized", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodPost, "/api/v1/inventory/ember-fox", "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestHandleListInventory(t *testing.T) {
	svc := inventory.NewService(inventory.NewFakeRepository(), seedCatalogRepo(t))
	router := inventoryRouter(svc)
	owner := testUser("user-1", "alice")
	other := testUser("user-2", "bob")

	rec := doAuthedRequest(t, router, http.MethodPost, "/api/v1/inventory/ember-fox", "", owner)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = doAuthedRequest(t, router, http.MethodPost, "/api/v1/inventory/frost-blade", `{"quantity":2}`, owner)
	require.Equal(t, http.StatusOK, rec.Code)

	t.Run("OwnerSeesOwnRows", func(t *testing.T) {
		rec := doAuthedRequest(t, router, http.MethodGet, "/api/v1/inventory", "", owner)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			Data []domain.InventoryItem `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Len(t, resp.Data, 2)
	})

	t.Run("OtherUserSeesNothing", func(t *testing.T) {
		rec := doAuthedRequest(t, router, http.MethodGet, "/api/v1/inventory", "", other)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			Data []domain.InventoryItem `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Empty(t, resp.Data)
	})
}

func TestHandleRemoveInventoryItem(t *testing.T) {
	svc := inventory.NewService(inventory.NewFakeRepository(), seedCatalogRepo(t))
	router := inventoryRouter(svc)
	owner := testUser("user-1", "alice")
	other := testUser("user-2", "bob")

	rec := doAuthedRequest(t, router, http.MethodPost, "/api/v1/inventory/ember-fox", "", owner)
	require.Equal(t, http.StatusOK, rec.Code)

	var added struct {
		Data domain.InventoryItem `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &added))
	rowPath := "/api/v1/inventory/" + strconv.Itoa(added.Data.ID)

	t.Run("OtherUserCannotRemove", func(t *testing.T) {
		rec := doAuthedRequest(t, router, http.MethodDelete, rowPath, "", other)
		require.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), ErrMsgInventoryRowError)
	})

	t.Run("OwnerRemoves", func(t *testing.T) {
		rec := doAuthedRequest(t, router, http.MethodDelete, rowPath, "", owner)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("SecondRemoveNotFound", func(t *testing.T) {
		rec := doAuthedRequest(t, router, http.MethodDelete, rowPath, "", owner)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("BadIDRejected", func(t *testing.T) {
		rec := doAuthedRequest(t, router, http.MethodDelete, "/api/v1/inventory/abc", "", owner)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
