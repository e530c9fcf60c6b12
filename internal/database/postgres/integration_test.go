package postgres

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lunarbyte/tradevalues/internal/domain"
)

// seedUser registers and activates an account directly through the
// repository so the other repositories have an owner to work with.
func seedUser(ctx context.Context, t *testing.T, pool *pgxpool.Pool, username string) *domain.User {
	t.Helper()

	repo := NewUserRepository(pool)
	user := &domain.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
	}

	token, err := repo.CreateUser(ctx, user, username)
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	activated, err := repo.ConsumeVerificationToken(ctx, token)
	if err != nil {
		t.Fatalf("ConsumeVerificationToken failed: %v", err)
	}

	return activated
}

func seedCategory(ctx context.Context, t *testing.T, repo *CatalogRepository, name, slug string) int {
	t.Helper()

	id, err := repo.InsertCategory(ctx, &domain.Category{
		Name:  name,
		Slug:  slug,
		Color: domain.DefaultCategoryColor,
	})
	if err != nil {
		t.Fatalf("InsertCategory failed: %v", err)
	}
	return id
}

func seedItem(ctx context.Context, t *testing.T, repo *CatalogRepository, item domain.Item) int {
	t.Helper()

	if item.ItemType == "" {
		item.ItemType = domain.ItemTypeItem
	}
	if item.Rarity == "" {
		item.Rarity = domain.RarityCommon
	}
	if item.Trend == "" {
		item.Trend = domain.TrendStable
	}
	if item.Demand == 0 {
		item.Demand = 5
	}

	id, err := repo.InsertItem(ctx, &item)
	if err != nil {
		t.Fatalf("InsertItem failed: %v", err)
	}
	return id
}

func TestCatalogRepository_Integration(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	repo := NewCatalogRepository(pool).(*CatalogRepository)

	weapons := seedCategory(ctx, t, repo, "Weapons", "weapons")
	pets := seedCategory(ctx, t, repo, "Pets", "pets")

	seedItem(ctx, t, repo, domain.Item{
		Name: "Frost Blade", Slug: "frost-blade", CategoryID: weapons,
		Rarity: domain.RarityRare, Value: 500, Trend: domain.TrendRising,
	})
	seedItem(ctx, t, repo, domain.Item{
		Name: "Ember Fox", Slug: "ember-fox", CategoryID: pets,
		Rarity: domain.RarityRare, Value: 100, Featured: true,
	})
	seedItem(ctx, t, repo, domain.Item{
		Name: "Clay Ring", Slug: "clay-ring", CategoryID: weapons,
		Rarity: domain.RarityCommon, Value: 20,
	})

	t.Run("DefaultOrderPutsFeaturedFirst", func(t *testing.T) {
		items, total, err := repo.ListItems(ctx, domain.ItemFilter{})
		if err != nil {
			t.Fatalf("ListItems failed: %v", err)
		}
		if total != 3 {
			t.Fatalf("expected total 3, got %d", total)
		}
		// Featured item ranks above a higher-valued unfeatured one
		if items[0].Slug != "ember-fox" {
			t.Errorf("expected ember-fox first, got %s", items[0].Slug)
		}
		if items[1].Slug != "frost-blade" {
			t.Errorf("expected frost-blade second, got %s", items[1].Slug)
		}
	})

	t.Run("FiltersCombineWithAND", func(t *testing.T) {
		items, total, err := repo.ListItems(ctx, domain.ItemFilter{
			CategorySlug: "weapons",
			Rarity:       string(domain.RarityRare),
		})
		if err != nil {
			t.Fatalf("ListItems failed: %v", err)
		}
		if total != 1 || len(items) != 1 {
			t.Fatalf("expected exactly one match, got total=%d len=%d", total, len(items))
		}
		if items[0].Slug != "frost-blade" {
			t.Errorf("expected frost-blade, got %s", items[0].Slug)
		}
	})

	t.Run("ValueRangeFilter", func(t *testing.T) {
		min, max := 50, 200
		_, total, err := repo.ListItems(ctx, domain.ItemFilter{MinValue: &min, MaxValue: &max})
		if err != nil {
			t.Fatalf("ListItems failed: %v", err)
		}
		if total != 1 {
			t.Errorf("expected 1 item in [50,200], got %d", total)
		}
	})

	t.Run("SortValueAscending", func(t *testing.T) {
		items, _, err := repo.ListItems(ctx, domain.ItemFilter{Sort: domain.SortValueAsc})
		if err != nil {
			t.Fatalf("ListItems failed: %v", err)
		}
		if items[0].Slug != "clay-ring" {
			t.Errorf("expected clay-ring first under value_asc, got %s", items[0].Slug)
		}
	})

	t.Run("PickerOrdersByRarity", func(t *testing.T) {
		items, err := repo.PickerItems(ctx, domain.PickerFilter{Sort: domain.SortRarity})
		if err != nil {
			t.Fatalf("PickerItems failed: %v", err)
		}
		if items[len(items)-1].Rarity != domain.RarityCommon {
			t.Errorf("expected common rarity last, got %s", items[len(items)-1].Rarity)
		}
	})

	t.Run("DuplicateSlugRejected", func(t *testing.T) {
		_, err := repo.InsertItem(ctx, &domain.Item{
			Name: "Frost Blade II", Slug: "frost-blade", CategoryID: weapons,
			ItemType: domain.ItemTypeItem, Rarity: domain.RarityCommon,
			Trend: domain.TrendStable, Demand: 5,
		})
		if !errors.Is(err, domain.ErrNameTaken) {
			t.Errorf("expected ErrNameTaken, got %v", err)
		}
	})

	t.Run("CategoryWithItemsCannotBeDeleted", func(t *testing.T) {
		err := repo.DeleteCategory(ctx, weapons)
		if !errors.Is(err, domain.ErrCategoryInUse) {
			t.Errorf("expected ErrCategoryInUse, got %v", err)
		}
	})

	t.Run("GetItemBySlugJoinsCategory", func(t *testing.T) {
		item, err := repo.GetItemBySlug(ctx, "ember-fox")
		if err != nil {
			t.Fatalf("GetItemBySlug failed: %v", err)
		}
		if item.Category == nil || item.Category.Slug != "pets" {
			t.Errorf("expected joined pets category, got %+v", item.Category)
		}
	})

	t.Run("UnknownSlugReportsNotFound", func(t *testing.T) {
		_, err := repo.GetItemBySlug(ctx, "no-such-item")
		if !errors.Is(err, domain.ErrItemNotFound) {
			t.Errorf("expected ErrItemNotFound, got %v", err)
		}
	})
}

func TestUserRepository_Integration(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	repo := NewUserRepository(pool).(*UserRepository)

	t.Run("RegistrationCreatesInactiveUserWithToken", func(t *testing.T) {
		user := &domain.User{Username: "casey", Email: "casey@example.com", PasswordHash: "x"}
		token, err := repo.CreateUser(ctx, user, "Casey")
		if err != nil {
			t.Fatalf("CreateUser failed: %v", err)
		}
		if token == "" {
			t.Fatal("expected a verification token")
		}
		if user.IsActive {
			t.Error("expected new user to start inactive")
		}

		profile, err := repo.GetProfile(ctx, user.ID)
		if err != nil {
			t.Fatalf("GetProfile failed: %v", err)
		}
		if profile.DisplayName != "Casey" || profile.IsVerified {
			t.Errorf("unexpected profile state: %+v", profile)
		}
	})

	t.Run("DuplicateUsernameRejected", func(t *testing.T) {
		_, err := repo.CreateUser(ctx, &domain.User{
			Username: "casey", Email: "other@example.com", PasswordHash: "x",
		}, "")
		if !errors.Is(err, domain.ErrUsernameTaken) {
			t.Errorf("expected ErrUsernameTaken, got %v", err)
		}
	})

	t.Run("DuplicateEmailRejected", func(t *testing.T) {
		_, err := repo.CreateUser(ctx, &domain.User{
			Username: "casey2", Email: "casey@example.com", PasswordHash: "x",
		}, "")
		if !errors.Is(err, domain.ErrEmailTaken) {
			t.Errorf("expected ErrEmailTaken, got %v", err)
		}
	})

	t.Run("TokenSpendsExactlyOnce", func(t *testing.T) {
		user := &domain.User{Username: "riley", Email: "riley@example.com", PasswordHash: "x"}
		token, err := repo.CreateUser(ctx, user, "Riley")
		if err != nil {
			t.Fatalf("CreateUser failed: %v", err)
		}

		activated, err := repo.ConsumeVerificationToken(ctx, token)
		if err != nil {
			t.Fatalf("first consume failed: %v", err)
		}
		if !activated.IsActive {
			t.Error("expected user active after verification")
		}

		profile, err := repo.GetProfile(ctx, user.ID)
		if err != nil {
			t.Fatalf("GetProfile failed: %v", err)
		}
		if !profile.IsVerified {
			t.Error("expected profile verified after verification")
		}

		if _, err := repo.ConsumeVerificationToken(ctx, token); !errors.Is(err, domain.ErrTokenInvalid) {
			t.Errorf("expected ErrTokenInvalid on reuse, got %v", err)
		}
	})

	t.Run("UnknownTokenIsInvalid", func(t *testing.T) {
		_, err := repo.ConsumeVerificationToken(ctx, "deadbeef")
		if !errors.Is(err, domain.ErrTokenInvalid) {
			t.Errorf("expected ErrTokenInvalid, got %v", err)
		}
	})

	t.Run("RoleGrantAndRevoke", func(t *testing.T) {
		user := seedUser(ctx, t, pool, "jordan")

		roleID, err := repo.GetRoleID(ctx, domain.RoleValueReviewer)
		if err != nil {
			t.Fatalf("GetRoleID failed: %v", err)
		}

		if err := repo.GrantRole(ctx, user.ID, roleID); err != nil {
			t.Fatalf("GrantRole failed: %v", err)
		}
		// Granting twice is a no-op
		if err := repo.GrantRole(ctx, user.ID, roleID); err != nil {
			t.Fatalf("second GrantRole failed: %v", err)
		}

		loaded, err := repo.GetUserByUsername(ctx, "jordan")
		if err != nil {
			t.Fatalf("GetUserByUsername failed: %v", err)
		}
		if !loaded.IsValueReviewer() {
			t.Error("expected reviewer role after grant")
		}

		if err := repo.RevokeRole(ctx, user.ID, roleID); err != nil {
			t.Fatalf("RevokeRole failed: %v", err)
		}

		loaded, err = repo.GetUserByID(ctx, user.ID)
		if err != nil {
			t.Fatalf("GetUserByID failed: %v", err)
		}
		if loaded.IsValueReviewer() {
			t.Error("expected reviewer role gone after revoke")
		}
	})
}

func TestInventoryRepository_Integration(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	catalog := NewCatalogRepository(pool).(*CatalogRepository)
	repo := NewInventoryRepository(pool).(*InventoryRepository)

	owner := seedUser(ctx, t, pool, "owner")
	other := seedUser(ctx, t, pool, "other")

	category := seedCategory(ctx, t, catalog, "Pets", "pets")
	itemID := seedItem(ctx, t, catalog, domain.Item{
		Name: "Ember Fox", Slug: "ember-fox", CategoryID: category, Value: 100,
	})

	t.Run("QuantitiesAccumulateOnRepeatAdd", func(t *testing.T) {
		first, err := repo.AddItem(ctx, owner.ID, itemID, 2)
		if err != nil {
			t.Fatalf("AddItem failed: %v", err)
		}
		second, err := repo.AddItem(ctx, owner.ID, itemID, 3)
		if err != nil {
			t.Fatalf("second AddItem failed: %v", err)
		}

		if second.ID != first.ID {
			t.Errorf("expected same row on repeat add, got %d and %d", first.ID, second.ID)
		}
		if second.Quantity != 5 {
			t.Errorf("expected quantity 5, got %d", second.Quantity)
		}

		entries, err := repo.ListByUser(ctx, owner.ID)
		if err != nil {
			t.Fatalf("ListByUser failed: %v", err)
		}
		if len(entries) != 1 {
			t.Fatalf("expected one inventory row, got %d", len(entries))
		}
		if entries[0].Item == nil || entries[0].Item.Slug != "ember-fox" {
			t.Errorf("expected joined item detail, got %+v", entries[0].Item)
		}
	})

	t.Run("RemovalIsOwnerScoped", func(t *testing.T) {
		entries, err := repo.ListByUser(ctx, owner.ID)
		if err != nil {
			t.Fatalf("ListByUser failed: %v", err)
		}
		rowID := entries[0].ID

		if err := repo.RemoveItem(ctx, other.ID, rowID); !errors.Is(err, domain.ErrInventoryRowNotFound) {
			t.Errorf("expected ErrInventoryRowNotFound for foreign row, got %v", err)
		}

		if err := repo.RemoveItem(ctx, owner.ID, rowID); err != nil {
			t.Fatalf("owner removal failed: %v", err)
		}

		if err := repo.RemoveItem(ctx, owner.ID, rowID); !errors.Is(err, domain.ErrInventoryRowNotFound) {
			t.Errorf("expected ErrInventoryRowNotFound after delete, got %v", err)
		}
	})
}

func TestReviewRepository_Integration(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	catalog := NewCatalogRepository(pool).(*CatalogRepository)
	repo := NewReviewRepository(pool).(*ReviewRepository)

	requester := seedUser(ctx, t, pool, "requester")
	reviewer := seedUser(ctx, t, pool, "reviewer")

	category := seedCategory(ctx, t, catalog, "Weapons", "weapons")
	itemID := seedItem(ctx, t, catalog, domain.Item{
		Name: "Frost Blade", Slug: "frost-blade", CategoryID: category, Value: 500,
	})

	submit := func(t *testing.T, requested int) int {
		t.Helper()
		req := &domain.ValueChangeRequest{
			ItemID:         itemID,
			RequestedBy:    requester.ID,
			CurrentValue:   500,
			RequestedValue: requested,
			Reason:         "market shifted",
		}
		id, err := repo.Insert(ctx, req)
		if err != nil {
			t.Fatalf("Insert failed: %v", err)
		}
		if req.Status != domain.StatusPending {
			t.Fatalf("expected pending status, got %s", req.Status)
		}
		return id
	}

	t.Run("ApproveWritesItemValue", func(t *testing.T) {
		id := submit(t, 750)

		approved, err := repo.Approve(ctx, id, reviewer.ID, "looks right")
		if err != nil {
			t.Fatalf("Approve failed: %v", err)
		}
		if approved.Status != domain.StatusApproved {
			t.Errorf("expected approved status, got %s", approved.Status)
		}
		if approved.ReviewedBy == nil || *approved.ReviewedBy != reviewer.ID {
			t.Error("expected reviewer stamped on request")
		}
		if approved.ReviewedAt == nil {
			t.Error("expected review timestamp")
		}

		item, err := catalog.GetItemByID(ctx, itemID)
		if err != nil {
			t.Fatalf("GetItemByID failed: %v", err)
		}
		if item.Value != 750 {
			t.Errorf("expected item value 750 after approval, got %d", item.Value)
		}
	})

	t.Run("SettledRequestCannotBeReviewedAgain", func(t *testing.T) {
		id := submit(t, 800)

		if _, err := repo.Approve(ctx, id, reviewer.ID, ""); err != nil {
			t.Fatalf("Approve failed: %v", err)
		}

		if _, err := repo.Approve(ctx, id, reviewer.ID, ""); !errors.Is(err, domain.ErrRequestNotPending) {
			t.Errorf("expected ErrRequestNotPending on re-approve, got %v", err)
		}
		if _, err := repo.Reject(ctx, id, reviewer.ID, ""); !errors.Is(err, domain.ErrRequestNotPending) {
			t.Errorf("expected ErrRequestNotPending on reject-after-approve, got %v", err)
		}
	})

	t.Run("ConcurrentReviewsSettleExactlyOnce", func(t *testing.T) {
		id := submit(t, 600)

		results := make(chan error, 2)
		start := make(chan struct{})
		for i := 0; i < 2; i++ {
			decide := repo.Approve
			if i == 1 {
				decide = repo.Reject
			}
			go func() {
				<-start
				_, err := decide(ctx, id, reviewer.ID, "")
				results <- err
			}()
		}
		close(start)

		var successes, conflicts int
		for i := 0; i < 2; i++ {
			switch err := <-results; {
			case err == nil:
				successes++
			case errors.Is(err, domain.ErrRequestNotPending):
				conflicts++
			default:
				t.Fatalf("unexpected review error: %v", err)
			}
		}
		if successes != 1 || conflicts != 1 {
			t.Fatalf("expected one winner and one conflict, got %d successes and %d conflicts", successes, conflicts)
		}

		settled, err := repo.GetByID(ctx, id)
		if err != nil {
			t.Fatalf("GetByID failed: %v", err)
		}
		item, err := catalog.GetItemByID(ctx, itemID)
		if err != nil {
			t.Fatalf("GetItemByID failed: %v", err)
		}
		// The item value reflects the winning decision and nothing else
		switch settled.Status {
		case domain.StatusApproved:
			if item.Value != 600 {
				t.Errorf("expected item value 600 after approval won, got %d", item.Value)
			}
		case domain.StatusRejected:
			if item.Value == 600 {
				t.Error("item value applied although rejection won")
			}
		default:
			t.Errorf("request left unsettled: %s", settled.Status)
		}
	})

	t.Run("RejectLeavesItemValueAlone", func(t *testing.T) {
		before, err := catalog.GetItemByID(ctx, itemID)
		if err != nil {
			t.Fatalf("GetItemByID failed: %v", err)
		}

		id := submit(t, 9999)
		rejected, err := repo.Reject(ctx, id, reviewer.ID, "no evidence")
		if err != nil {
			t.Fatalf("Reject failed: %v", err)
		}
		if rejected.Status != domain.StatusRejected {
			t.Errorf("expected rejected status, got %s", rejected.Status)
		}

		after, err := catalog.GetItemByID(ctx, itemID)
		if err != nil {
			t.Fatalf("GetItemByID failed: %v", err)
		}
		if after.Value != before.Value {
			t.Errorf("item value changed on reject: %d -> %d", before.Value, after.Value)
		}
	})

	t.Run("UnknownRequestReportsNotFound", func(t *testing.T) {
		if _, err := repo.Approve(ctx, 999999, reviewer.ID, ""); !errors.Is(err, domain.ErrRequestNotFound) {
			t.Errorf("expected ErrRequestNotFound, got %v", err)
		}
	})

	t.Run("DirectEditSyncsValueOnApprove", func(t *testing.T) {
		id := submit(t, 1234)

		edited, err := repo.SetStatus(ctx, id, domain.StatusApproved, reviewer.ID, "admin override")
		if err != nil {
			t.Fatalf("SetStatus failed: %v", err)
		}
		if edited.Status != domain.StatusApproved {
			t.Errorf("expected approved, got %s", edited.Status)
		}

		item, err := catalog.GetItemByID(ctx, itemID)
		if err != nil {
			t.Fatalf("GetItemByID failed: %v", err)
		}
		if item.Value != 1234 {
			t.Errorf("expected item value 1234 after direct edit, got %d", item.Value)
		}
	})

	t.Run("DirectEditOfUnchangedStatusDoesNotStamp", func(t *testing.T) {
		id := submit(t, 555)

		edited, err := repo.SetStatus(ctx, id, domain.StatusPending, reviewer.ID, "")
		if err != nil {
			t.Fatalf("SetStatus failed: %v", err)
		}
		if edited.ReviewedBy != nil || edited.ReviewedAt != nil {
			t.Errorf("re-asserted status stamped a review: by=%v at=%v", edited.ReviewedBy, edited.ReviewedAt)
		}

		edited, err = repo.SetStatus(ctx, id, domain.StatusRejected, reviewer.ID, "")
		if err != nil {
			t.Fatalf("second SetStatus failed: %v", err)
		}
		if edited.ReviewedBy == nil || *edited.ReviewedBy != reviewer.ID {
			t.Error("expected reviewer stamped on the actual transition")
		}
	})

	t.Run("ListsFilterByStatusAndRequester", func(t *testing.T) {
		pending, err := repo.ListAll(ctx, domain.StatusPending)
		if err != nil {
			t.Fatalf("ListAll failed: %v", err)
		}
		for _, req := range pending {
			if req.Status != domain.StatusPending {
				t.Errorf("non-pending request in pending listing: %+v", req)
			}
		}

		mine, err := repo.ListByRequester(ctx, requester.ID)
		if err != nil {
			t.Fatalf("ListByRequester failed: %v", err)
		}
		if len(mine) == 0 {
			t.Fatal("expected requester's submissions in listing")
		}
		for _, req := range mine {
			if req.RequestedBy != requester.ID {
				t.Errorf("foreign request in requester listing: %s", fmt.Sprint(req.ID))
			}
			if req.Item == nil {
				t.Error("expected joined item detail")
			}
		}
	})
}
