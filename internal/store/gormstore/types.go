package gormstore

import (
	"time"

	"github.com/shaibs3/bakery-api/internal/db_model"
)

type GormBakery struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (GormBakery) TableName() string {
	return "bakeries"
}

type GormBakedGood struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"index"`
	Price     *float64
	BakeryID  *uint `gorm:"index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (GormBakedGood) TableName() string {
	return "baked_goods"
}

func bakeryFromGorm(g GormBakery) db_model.Bakery {
	return db_model.Bakery{
		ID:        g.ID,
		Name:      g.Name,
		CreatedAt: g.CreatedAt.UTC(),
		UpdatedAt: g.UpdatedAt.UTC(),
	}
}

func bakedGoodFromGorm(g GormBakedGood) db_model.BakedGood {
	return db_model.BakedGood{
		ID:        g.ID,
		Name:      g.Name,
		Price:     g.Price,
		BakeryID:  g.BakeryID,
		CreatedAt: g.CreatedAt.UTC(),
		UpdatedAt: g.UpdatedAt.UTC(),
	}
}

func bakeriesFromGorm(rows []GormBakery) []db_model.Bakery {
	out := make([]db_model.Bakery, len(rows))
	for i, r := range rows {
		out[i] = bakeryFromGorm(r)
	}
	return out
}

func bakedGoodsFromGorm(rows []GormBakedGood) []db_model.BakedGood {
	out := make([]db_model.BakedGood, len(rows))
	for i, r := range rows {
		out[i] = bakedGoodFromGorm(r)
	}
	return out
}
