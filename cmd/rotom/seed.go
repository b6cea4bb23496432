package main

import (
	"context"
	"fmt"

	"rotomethiopia/internal/db"
	"rotomethiopia/internal/seed"
	"rotomethiopia/internal/store"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var seedCommand = &cli.Command{
	Name:  "seed",
	Usage: "Seed the database with initial data",
	Action: func(c *cli.Context) error {
		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		ctx := context.Background()

		pool, err := db.Connect(ctx, cfg)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer pool.Close()

		logrus.Info("Connected to database")

		daysRepo := store.NewDayRepository(pool)
		interestsRepo := store.NewInterestRepository(pool)

		logrus.Info("Seeding availability days...")
		if err := seed.SeedDays(ctx, daysRepo); err != nil {
			return fmt.Errorf("failed to seed days: %w", err)
		}

		logrus.Info("Seeding interest categories...")
		if err := seed.SeedInterests(ctx, interestsRepo); err != nil {
			return fmt.Errorf("failed to seed interests: %w", err)
		}

		logrus.Info("Seed data applied successfully")

		return nil
	},
}
