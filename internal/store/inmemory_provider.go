package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/shaibs3/bakery-api/internal/db_model"
)

type InMemoryProvider struct {
	mu         sync.RWMutex
	bakeries   map[uint]db_model.Bakery
	bakedGoods map[uint]db_model.BakedGood
	// each table has its own surrogate-key sequence
	nextBakeryID    uint
	nextBakedGoodID uint
	migrated        bool
}

func NewInMemoryProvider() *InMemoryProvider {
	return &InMemoryProvider{
		bakeries:        make(map[uint]db_model.Bakery),
		bakedGoods:      make(map[uint]db_model.BakedGood),
		nextBakeryID:    1,
		nextBakedGoodID: 1,
		migrated:        true,
	}
}

// CreateSchema resets the provider to an empty state
func (m *InMemoryProvider) CreateSchema(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.migrated {
		m.bakeries = make(map[uint]db_model.Bakery)
		m.bakedGoods = make(map[uint]db_model.BakedGood)
		m.nextBakeryID = 1
		m.nextBakedGoodID = 1
		m.migrated = true
	}
	return nil
}

// DropSchema discards every record. Calls other than CreateSchema fail until
// the schema is created again.
func (m *InMemoryProvider) DropSchema(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bakeries = nil
	m.bakedGoods = nil
	m.migrated = false
	return nil
}

func (m *InMemoryProvider) Close() error {
	return nil
}

func (m *InMemoryProvider) checkSchema() error {
	if !m.migrated {
		return fmt.Errorf("in-memory schema has been dropped")
	}
	return nil
}

func (m *InMemoryProvider) ListBakeries(ctx context.Context) ([]db_model.Bakery, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.checkSchema(); err != nil {
		return nil, err
	}
	out := make([]db_model.Bakery, 0, len(m.bakeries))
	for _, b := range m.bakeries {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *InMemoryProvider) GetBakery(ctx context.Context, id uint) (*db_model.Bakery, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.checkSchema(); err != nil {
		return nil, err
	}
	b, ok := m.bakeries[id]
	if !ok {
		return nil, fmt.Errorf("bakery %d: %w", id, ErrNotFound)
	}
	return &b, nil
}

func (m *InMemoryProvider) FindBakeriesByName(ctx context.Context, name string) ([]db_model.Bakery, error) {
	all, err := m.ListBakeries(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]db_model.Bakery, 0)
	for _, b := range all {
		if b.Name == name {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *InMemoryProvider) CreateBakery(ctx context.Context, bakery *db_model.Bakery) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.checkSchema(); err != nil {
		return err
	}
	now := db_model.Now()
	bakery.ID = m.nextBakeryID
	bakery.CreatedAt = now
	bakery.UpdatedAt = now
	m.nextBakeryID++
	m.bakeries[bakery.ID] = *bakery
	return nil
}

func (m *InMemoryProvider) DeleteBakery(ctx context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.checkSchema(); err != nil {
		return err
	}
	if _, ok := m.bakeries[id]; !ok {
		return fmt.Errorf("bakery %d: %w", id, ErrNotFound)
	}
	delete(m.bakeries, id)
	return nil
}

func (m *InMemoryProvider) DeleteBakeriesByName(ctx context.Context, name string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.checkSchema(); err != nil {
		return 0, err
	}
	var n int64
	for id, b := range m.bakeries {
		if b.Name == name {
			delete(m.bakeries, id)
			n++
		}
	}
	return n, nil
}

func (m *InMemoryProvider) allBakedGoods() ([]db_model.BakedGood, error) {
	if err := m.checkSchema(); err != nil {
		return nil, err
	}
	out := make([]db_model.BakedGood, 0, len(m.bakedGoods))
	for _, g := range m.bakedGoods {
		out = append(out, cloneBakedGood(g))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *InMemoryProvider) ListBakedGoodsByPrice(ctx context.Context) ([]db_model.BakedGood, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out, err := m.allBakedGoods()
	if err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool { return db_model.LessByPrice(out[i], out[j]) })
	return out, nil
}

func (m *InMemoryProvider) ListBakedGoodsByBakery(ctx context.Context, bakeryID uint) ([]db_model.BakedGood, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	all, err := m.allBakedGoods()
	if err != nil {
		return nil, err
	}
	out := make([]db_model.BakedGood, 0)
	for _, g := range all {
		if g.BakeryID != nil && *g.BakeryID == bakeryID {
			out = append(out, g)
		}
	}
	return out, nil
}

func (m *InMemoryProvider) MostExpensiveBakedGood(ctx context.Context) (*db_model.BakedGood, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	all, err := m.allBakedGoods()
	if err != nil {
		return nil, err
	}
	best, ok := db_model.MostExpensive(all)
	if !ok {
		return nil, fmt.Errorf("priced baked good: %w", ErrNotFound)
	}
	return &best, nil
}

func (m *InMemoryProvider) FindBakedGoodsByName(ctx context.Context, name string) ([]db_model.BakedGood, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	all, err := m.allBakedGoods()
	if err != nil {
		return nil, err
	}
	out := make([]db_model.BakedGood, 0)
	for _, g := range all {
		if g.Name == name {
			out = append(out, g)
		}
	}
	return out, nil
}

func (m *InMemoryProvider) CreateBakedGood(ctx context.Context, good *db_model.BakedGood) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.checkSchema(); err != nil {
		return err
	}
	now := db_model.Now()
	good.ID = m.nextBakedGoodID
	good.CreatedAt = now
	good.UpdatedAt = now
	m.nextBakedGoodID++
	m.bakedGoods[good.ID] = cloneBakedGood(*good)
	return nil
}

func (m *InMemoryProvider) DeleteBakedGood(ctx context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.checkSchema(); err != nil {
		return err
	}
	if _, ok := m.bakedGoods[id]; !ok {
		return fmt.Errorf("baked good %d: %w", id, ErrNotFound)
	}
	delete(m.bakedGoods, id)
	return nil
}

func (m *InMemoryProvider) DeleteBakedGoodsByName(ctx context.Context, name string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.checkSchema(); err != nil {
		return 0, err
	}
	var n int64
	for id, g := range m.bakedGoods {
		if g.Name == name {
			delete(m.bakedGoods, id)
			n++
		}
	}
	return n, nil
}

// cloneBakedGood copies g so it shares no pointers with the stored record
func cloneBakedGood(g db_model.BakedGood) db_model.BakedGood {
	if g.Price != nil {
		p := *g.Price
		g.Price = &p
	}
	if g.BakeryID != nil {
		id := *g.BakeryID
		g.BakeryID = &id
	}
	return g
}
