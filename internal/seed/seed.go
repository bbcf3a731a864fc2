package seed

import (
	"context"
	"fmt"

	"github.com/shaibs3/bakery-api/internal/db_model"
	"github.com/shaibs3/bakery-api/internal/store"
	"go.uber.org/zap"
)

// Store is what seeding needs from a provider
type Store interface {
	store.BakeryStore
	store.BakedGoodStore
}

type sampleGood struct {
	name  string
	price float64
}

var samples = []struct {
	bakery string
	goods  []sampleGood
}{
	{"Delightful donuts", []sampleGood{{"Chocolate dipped donut", 2.75}, {"Apple-spice filled donut", 3.5}}},
	{"Incredible crullers", []sampleGood{{"Glazed honey cruller", 3.25}, {"Chocolate cruller", 3.5}}},
	{"Le Petit Four", []sampleGood{{"Madeleine", 10}, {"Croissant", 15}, {"Pain au chocolat", 12}}},
}

// Run inserts the sample data when the store has no bakeries yet. It returns
// the number of records created.
func Run(ctx context.Context, s Store, logger *zap.Logger) (int, error) {
	seedLogger := logger.Named("seed")

	existing, err := s.ListBakeries(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to check existing bakeries: %w", err)
	}
	if len(existing) > 0 {
		seedLogger.Info("store already populated, skipping seed", zap.Int("bakeries", len(existing)))
		return 0, nil
	}

	created := 0
	for _, sample := range samples {
		b := db_model.NewBakery(sample.bakery)
		if err := s.CreateBakery(ctx, b); err != nil {
			return created, fmt.Errorf("failed to seed bakery %q: %w", sample.bakery, err)
		}
		created++
		for _, sg := range sample.goods {
			g := db_model.NewBakedGood(sg.name, sg.price)
			g.BakeryID = &b.ID
			if err := s.CreateBakedGood(ctx, g); err != nil {
				return created, fmt.Errorf("failed to seed baked good %q: %w", sg.name, err)
			}
			created++
		}
	}

	seedLogger.Info("seeded sample data", zap.Int("records", created))
	return created, nil
}
