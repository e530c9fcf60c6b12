package inventory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lunarbyte/tradevalues/internal/catalog"
	"github.com/lunarbyte/tradevalues/internal/domain"
)

func setupService(t *testing.T) (Service, *catalog.FakeRepository) {
	t.Helper()

	catalogRepo := catalog.NewFakeRepository()
	categoryID, err := catalogRepo.InsertCategory(context.Background(), &domain.Category{
		Name: "Pets", Slug: "pets", Color: domain.DefaultCategoryColor,
	})
	require.NoError(t, err)

	_, err = catalogRepo.InsertItem(context.Background(), &domain.Item{
		Name: "Ember Fox", Slug: "ember-fox", CategoryID: categoryID,
		ItemType: domain.ItemTypeItem, Rarity: domain.RarityRare,
		Value: 100, Demand: 9, Trend: domain.TrendStable,
	})
	require.NoError(t, err)

	return NewService(NewFakeRepository(), catalogRepo), catalogRepo
}

func TestAddItemAccumulatesQuantity(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	first, err := svc.AddItem(ctx, "user-1", "ember-fox", 2)
	require.NoError(t, err)
	assert.Equal(t, 2, first.Quantity)
	require.NotNil(t, first.Item)
	assert.Equal(t, "ember-fox", first.Item.Slug)

	second, err := svc.AddItem(ctx, "user-1", "ember-fox", 3)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID, "repeat add should reuse the row")
	assert.Equal(t, 5, second.Quantity)

	entries, err := svc.ListItems(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 5, entries[0].Quantity)
}

func TestAddItemCoercesQuantityFloor(t *testing.T) {
	svc, _ := setupService(t)

	entry, err := svc.AddItem(context.Background(), "user-1", "ember-fox", 0)
	require.NoError(t, err)
	assert.Equal(t, 1, entry.Quantity)

	entry, err = svc.AddItem(context.Background(), "user-2", "ember-fox", -4)
	require.NoError(t, err)
	assert.Equal(t, 1, entry.Quantity)
}

func TestAddItemUnknownSlug(t *testing.T) {
	svc, _ := setupService(t)

	_, err := svc.AddItem(context.Background(), "user-1", "no-such-item", 1)
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
}

func TestRemoveItemIsOwnerScoped(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	entry, err := svc.AddItem(ctx, "user-1", "ember-fox", 1)
	require.NoError(t, err)

	err = svc.RemoveItem(ctx, "user-2", entry.ID)
	assert.ErrorIs(t, err, domain.ErrInventoryRowNotFound, "foreign rows must look missing")

	require.NoError(t, svc.RemoveItem(ctx, "user-1", entry.ID))

	err = svc.RemoveItem(ctx, "user-1", entry.ID)
	assert.ErrorIs(t, err, domain.ErrInventoryRowNotFound)
}

func TestInventoriesAreIndependent(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "user-1", "ember-fox", 2)
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, "user-2", "ember-fox", 7)
	require.NoError(t, err)

	mine, err := svc.ListItems(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, 2, mine[0].Quantity)

	theirs, err := svc.ListItems(ctx, "user-2")
	require.NoError(t, err)
	require.Len(t, theirs, 1)
	assert.Equal(t, 7, theirs[0].Quantity)
}
