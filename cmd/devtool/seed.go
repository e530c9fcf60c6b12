package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lunarbyte/tradevalues/internal/catalog"
	"github.com/lunarbyte/tradevalues/internal/config"
	"github.com/lunarbyte/tradevalues/internal/database"
	"github.com/lunarbyte/tradevalues/internal/database/postgres"
	"github.com/lunarbyte/tradevalues/internal/domain"
)

type seedItem struct {
	category string
	input    catalog.ItemInput
}

func runSeed() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx := context.Background()
	pool, err := database.NewPool(ctx, cfg.GetDBConnString(), 2, time.Minute, time.Minute)
	if err != nil {
		return err
	}
	defer pool.Close()

	svc := catalog.NewService(postgres.NewCatalogRepository(pool))

	categories := []catalog.CategoryInput{
		{Name: "Weapons", Description: "Blades, bows and blunt instruments", Color: "#EF4444"},
		{Name: "Pets", Description: "Companions and mounts", Color: "#F59E0B"},
		{Name: "Game Passes", Description: "Permanent account perks", Color: "#6366F1"},
	}

	categoryIDs := make(map[string]int)
	for _, input := range categories {
		created, err := svc.CreateCategory(ctx, input)
		if err != nil {
			if errors.Is(err, domain.ErrNameTaken) {
				fmt.Printf("Category %q already present, skipping\n", input.Name)
				existing, err := findCategory(ctx, svc, input.Name)
				if err != nil {
					return err
				}
				categoryIDs[input.Name] = existing.ID
				continue
			}
			return err
		}
		categoryIDs[input.Name] = created.ID
		fmt.Printf("Created category %q\n", created.Name)
	}

	items := []seedItem{
		{"Weapons", catalog.ItemInput{Name: "Frost Blade", ItemType: domain.ItemTypeItem, Rarity: domain.RarityRare, Value: 500, Demand: 7, Trend: domain.TrendRising, ObtainedFrom: "Winter event 2024"}},
		{"Weapons", catalog.ItemInput{Name: "Clay Ring", ItemType: domain.ItemTypeItem, Rarity: domain.RarityCommon, Value: 20, Demand: 2, Trend: domain.TrendFalling}},
		{"Pets", catalog.ItemInput{Name: "Ember Fox", ItemType: domain.ItemTypeItem, Rarity: domain.RarityRare, Value: 100, Demand: 9, Trend: domain.TrendStable, Featured: true}},
		{"Pets", catalog.ItemInput{Name: "Gilded Drake", ItemType: domain.ItemTypeItem, Rarity: domain.RaritySpecialGrade, Value: 4200, Demand: 8, Trend: domain.TrendRising, IsLimited: true, Featured: true}},
		{"Game Passes", catalog.ItemInput{Name: "Double Storage", ItemType: domain.ItemTypeGamepass, Rarity: domain.RarityUncommon, Value: 350, Demand: 5, Trend: domain.TrendStable}},
	}

	for _, seed := range items {
		seed.input.CategoryID = categoryIDs[seed.category]
		created, err := svc.CreateItem(ctx, seed.input)
		if err != nil {
			if errors.Is(err, domain.ErrNameTaken) {
				fmt.Printf("Item %q already present, skipping\n", seed.input.Name)
				continue
			}
			return err
		}
		fmt.Printf("Created item %q (%s)\n", created.Name, created.Slug)
	}

	fmt.Println("Seed data loaded")
	return nil
}

func findCategory(ctx context.Context, svc catalog.Service, name string) (*domain.Category, error) {
	categories, err := svc.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	for i := range categories {
		if categories[i].Name == name {
			return &categories[i], nil
		}
	}
	return nil, fmt.Errorf("category %q not found after conflict", name)
}
