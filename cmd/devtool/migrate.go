package main

import (
	"fmt"

	"github.com/lunarbyte/tradevalues/internal/config"
	"github.com/lunarbyte/tradevalues/internal/database"
)

func runMigrate() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if err := database.Migrate(cfg.GetDBConnString()); err != nil {
		return fmt.Errorf("migrations failed: %w", err)
	}

	fmt.Println("Migrations applied")
	return nil
}
