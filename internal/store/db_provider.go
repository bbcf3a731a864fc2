package store

import (
	"context"

	"github.com/shaibs3/bakery-api/internal/db_model"
)

// BakeryStore reads and writes bakery records
type BakeryStore interface {
	ListBakeries(ctx context.Context) ([]db_model.Bakery, error)
	GetBakery(ctx context.Context, id uint) (*db_model.Bakery, error)
	FindBakeriesByName(ctx context.Context, name string) ([]db_model.Bakery, error)
	CreateBakery(ctx context.Context, bakery *db_model.Bakery) error
	DeleteBakery(ctx context.Context, id uint) error
	DeleteBakeriesByName(ctx context.Context, name string) (int64, error)
}

// BakedGoodStore reads and writes baked good records
type BakedGoodStore interface {
	ListBakedGoodsByPrice(ctx context.Context) ([]db_model.BakedGood, error)
	ListBakedGoodsByBakery(ctx context.Context, bakeryID uint) ([]db_model.BakedGood, error)
	MostExpensiveBakedGood(ctx context.Context) (*db_model.BakedGood, error)
	FindBakedGoodsByName(ctx context.Context, name string) ([]db_model.BakedGood, error)
	CreateBakedGood(ctx context.Context, good *db_model.BakedGood) error
	DeleteBakedGood(ctx context.Context, id uint) error
	DeleteBakedGoodsByName(ctx context.Context, name string) (int64, error)
}

// SchemaManager creates and drops the tables behind a provider
type SchemaManager interface {
	CreateSchema(ctx context.Context) error
	DropSchema(ctx context.Context) error
}

type DbProvider interface {
	BakeryStore
	BakedGoodStore
	SchemaManager
	Close() error
}
