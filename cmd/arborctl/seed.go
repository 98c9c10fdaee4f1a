package main

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/spf13/cobra"

	"github.com/Ramsey-B/arbor/pkg/database"
	"github.com/Ramsey-B/arbor/pkg/models"
)

var seedOrg string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed demo data for an org",
	Long:  "Inserts a small set of kitchens, spaces and experiences for one org, all in a single transaction.",
	RunE: func(cmd *cobra.Command, args []string) error {
		orgID, err := uuid.Parse(seedOrg)
		if err != nil {
			return fmt.Errorf("invalid org id: %w", err)
		}

		sqlxDB, err := openDB()
		if err != nil {
			return err
		}
		defer sqlxDB.Close()
		db := database.NewDatabaseInstance(sqlxDB, logger)

		baseCtx := context.Background()
		ctx, tx, err := database.GetTx(baseCtx, logger, db, nil)
		if err != nil {
			return err
		}
		defer tx.Rollback(baseCtx)

		for _, k := range demoKitchens(orgID) {
			if err := seedInsert(ctx, tx, models.KitchenDescriptor.Table, k); err != nil {
				return err
			}
		}
		for _, s := range demoSpaces(orgID) {
			if err := seedInsert(ctx, tx, models.SpaceDescriptor.Table, s); err != nil {
				return err
			}
		}
		for _, e := range demoExperiences(orgID) {
			if err := seedInsert(ctx, tx, models.ExperienceDescriptor.Table, e); err != nil {
				return err
			}
		}

		if err := tx.Commit(baseCtx); err != nil {
			return err
		}

		logger.Infof("Seeded demo data for org %s", orgID)
		return nil
	},
}

func init() {
	seedCmd.Flags().StringVar(&seedOrg, "org", "", "org id to seed data for")
	seedCmd.MarkFlagRequired("org")
}

func seedInsert[T any](ctx context.Context, tx database.Tx, table string, entity T) error {
	strct := database.NewStruct(new(T))
	query, args := strct.InsertInto(table, entity).Build()
	_, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to seed %s: %w", table, err)
	}
	return nil
}

func envelope(orgID uuid.UUID, order int) models.Envelope {
	now := time.Now().UTC()
	return models.Envelope{
		ID:           uuid.New(),
		OrgID:        orgID,
		DisplayOrder: order,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func demoKitchens(orgID uuid.UUID) []models.Kitchen {
	return []models.Kitchen{
		{
			Envelope:    envelope(orgID, 1),
			Name:        "North Kitchen",
			Slug:        "north-kitchen",
			Description: "Corner unit with street-facing counter",
			Cuisine:     "georgian",
			Capacity:    4,
			PriceRange:  "$$",
			Amenities:   pq.StringArray{"cold-storage"},
			Images:      pq.StringArray{},
			IsAvailable: true,
		},
		{
			Envelope:    envelope(orgID, 2),
			Name:        "South Kitchen",
			Slug:        "south-kitchen",
			Description: "Back corner with extraction hood",
			Cuisine:     "italian",
			Capacity:    6,
			PriceRange:  "$$$",
			Amenities:   pq.StringArray{"extraction-hood", "cold-storage"},
			Images:      pq.StringArray{},
			IsAvailable: true,
		},
	}
}

func demoSpaces(orgID uuid.UUID) []models.Space {
	return []models.Space{
		{
			Envelope:     envelope(orgID, 1),
			Name:         "Rooftop Terrace",
			Slug:         "rooftop-terrace",
			Description:  "Open air seating for events",
			Floor:        3,
			AreaSqm:      240,
			Capacity:     60,
			PricePerHour: 150,
			Amenities:    pq.StringArray{"bar", "sound-system"},
			Images:       pq.StringArray{},
			IsAvailable:  true,
		},
	}
}

func demoExperiences(orgID uuid.UUID) []models.Experience {
	return []models.Experience{
		{
			Envelope:        envelope(orgID, 1),
			Title:           "Wine Staircase",
			Slug:            "wine-staircase",
			Description:     "Guided tasting across eight levels",
			Category:        "tasting",
			DurationMinutes: 90,
			Price:           45,
			MaxGuests:       12,
			Images:          pq.StringArray{},
			IsActive:        true,
		},
	}
}
