package store

import (
	"context"
	"testing"

	"github.com/shaibs3/bakery-api/internal/db_model"
	"github.com/stretchr/testify/require"
)

func TestInMemoryProvider_Bakeries(t *testing.T) {
	ctx := context.Background()
	p := NewInMemoryProvider()

	b := db_model.NewBakery("Mr. Bakery")
	require.NoError(t, p.CreateBakery(ctx, b))
	require.Equal(t, uint(1), b.ID)
	require.False(t, b.CreatedAt.IsZero())

	got, err := p.GetBakery(ctx, b.ID)
	require.NoError(t, err)
	require.Equal(t, b.View(), got.View())

	_, err = p.GetBakery(ctx, 99)
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, p.CreateBakery(ctx, db_model.NewBakery("Bakery 2")))
	all, err := p.ListBakeries(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Equal(t, "Mr. Bakery", all[0].Name)

	n, err := p.DeleteBakeriesByName(ctx, "Mr. Bakery")
	require.NoError(t, err)
	require.Equal(t, int64(1), n)
	found, err := p.FindBakeriesByName(ctx, "Mr. Bakery")
	require.NoError(t, err)
	require.Empty(t, found)

	require.ErrorIs(t, p.DeleteBakery(ctx, b.ID), ErrNotFound)
}

func TestInMemoryProvider_BakedGoods(t *testing.T) {
	ctx := context.Background()
	p := NewInMemoryProvider()

	_, err := p.MostExpensiveBakedGood(ctx)
	require.ErrorIs(t, err, ErrNotFound)

	madeleine := db_model.NewBakedGood("Madeleine", 10)
	croissant := db_model.NewBakedGood("Croissant", 15)
	require.NoError(t, p.CreateBakedGood(ctx, madeleine))
	require.NoError(t, p.CreateBakedGood(ctx, croissant))
	require.NoError(t, p.CreateBakedGood(ctx, db_model.NewUnpricedBakedGood("Bagel")))

	// mutating the caller's copy must not leak into the store
	*madeleine.Price = 100

	best, err := p.MostExpensiveBakedGood(ctx)
	require.NoError(t, err)
	require.Equal(t, "Croissant", best.Name)

	sorted, err := p.ListBakedGoodsByPrice(ctx)
	require.NoError(t, err)
	require.Len(t, sorted, 3)
	require.Equal(t, "Madeleine", sorted[0].Name)
	require.Equal(t, "Croissant", sorted[1].Name)
	require.Nil(t, sorted[2].Price)

	require.NoError(t, p.DeleteBakedGood(ctx, croissant.ID))
	best, err = p.MostExpensiveBakedGood(ctx)
	require.NoError(t, err)
	require.Equal(t, "Madeleine", best.Name)
}

func TestInMemoryProvider_BakedGoodsByBakery(t *testing.T) {
	ctx := context.Background()
	p := NewInMemoryProvider()

	b := db_model.NewBakery("Bakery 1")
	require.NoError(t, p.CreateBakery(ctx, b))
	g := db_model.NewBakedGood("Baguette", 2)
	g.BakeryID = &b.ID
	require.NoError(t, p.CreateBakedGood(ctx, g))
	require.NoError(t, p.CreateBakedGood(ctx, db_model.NewBakedGood("Stray", 1)))

	goods, err := p.ListBakedGoodsByBakery(ctx, b.ID)
	require.NoError(t, err)
	require.Len(t, goods, 1)
	require.Equal(t, "Baguette", goods[0].Name)
}

func TestInMemoryProvider_SchemaLifecycle(t *testing.T) {
	ctx := context.Background()
	p := NewInMemoryProvider()
	require.NoError(t, p.CreateBakery(ctx, db_model.NewBakery("Mr. Bakery")))

	require.NoError(t, p.DropSchema(ctx))
	_, err := p.ListBakeries(ctx)
	require.Error(t, err)

	require.NoError(t, p.CreateSchema(ctx))
	all, err := p.ListBakeries(ctx)
	require.NoError(t, err)
	require.Empty(t, all)
}

func TestInMemoryProvider_IDsArePerTable(t *testing.T) {
	ctx := context.Background()
	p := NewInMemoryProvider()

	g := db_model.NewBakedGood("Madeleine", 10)
	require.NoError(t, p.CreateBakedGood(ctx, g))
	b := db_model.NewBakery("Bakery 1")
	require.NoError(t, p.CreateBakery(ctx, b))
	require.Equal(t, uint(1), g.ID)
	require.Equal(t, uint(1), b.ID, "a baked good insert must not advance the bakery sequence")

	got, err := p.GetBakery(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, "Bakery 1", got.Name)

	// dropping and recreating the schema restarts both sequences
	require.NoError(t, p.DropSchema(ctx))
	require.NoError(t, p.CreateSchema(ctx))
	b2 := db_model.NewBakery("Bakery 2")
	g2 := db_model.NewBakedGood("Croissant", 15)
	require.NoError(t, p.CreateBakery(ctx, b2))
	require.NoError(t, p.CreateBakedGood(ctx, g2))
	require.Equal(t, uint(1), b2.ID)
	require.Equal(t, uint(1), g2.ID)
}

func TestInMemoryProvider_ReadsDoNotAliasStoredRecords(t *testing.T) {
	ctx := context.Background()
	p := NewInMemoryProvider()

	b := db_model.NewBakery("Bakery 1")
	require.NoError(t, p.CreateBakery(ctx, b))
	g := db_model.NewBakedGood("Madeleine", 10)
	g.BakeryID = &b.ID
	require.NoError(t, p.CreateBakedGood(ctx, g))

	sorted, err := p.ListBakedGoodsByPrice(ctx)
	require.NoError(t, err)
	*sorted[0].Price = 999
	*sorted[0].BakeryID = 42

	best, err := p.MostExpensiveBakedGood(ctx)
	require.NoError(t, err)
	require.Equal(t, 10.0, *best.Price)
	*best.Price = 500

	named, err := p.FindBakedGoodsByName(ctx, "Madeleine")
	require.NoError(t, err)
	require.Len(t, named, 1)
	require.Equal(t, 10.0, *named[0].Price)
	require.Equal(t, b.ID, *named[0].BakeryID)
	*named[0].Price = 250

	owned, err := p.ListBakedGoodsByBakery(ctx, b.ID)
	require.NoError(t, err)
	require.Len(t, owned, 1)
	require.Equal(t, 10.0, *owned[0].Price)
}
