package main

import (
	"context"
	"fmt"
	"time"

	"github.com/lunarbyte/tradevalues/internal/config"
	"github.com/lunarbyte/tradevalues/internal/database"
)

const (
	checkDBAttempts = 30
	checkDBInterval = time.Second
)

func runCheckDB() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	for attempt := 1; attempt <= checkDBAttempts; attempt++ {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		pool, perr := database.NewPool(ctx, cfg.GetDBConnString(), 1, time.Minute, time.Minute)
		cancel()
		if perr == nil {
			pool.Close()
			fmt.Println("Database is ready")
			return nil
		}
		err = perr

		fmt.Printf("Waiting for database... (%d/%d)\n", attempt, checkDBAttempts)
		time.Sleep(checkDBInterval)
	}

	return fmt.Errorf("database not ready after %d attempts: %w", checkDBAttempts, err)
}
