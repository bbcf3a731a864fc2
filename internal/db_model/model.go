package db_model

import "time"

// TimestampLayout is the wire format of created_at and updated_at
const TimestampLayout = "2006-01-02 15:04:05"

// Bakery represents a bakery record
type Bakery struct {
	ID        uint      `db_model:"id" json:"id"`
	Name      string    `db_model:"name" json:"name"`
	CreatedAt time.Time `db_model:"created_at" json:"created_at"`
	UpdatedAt time.Time `db_model:"updated_at" json:"updated_at"`
}

// BakedGood represents a baked good record. Price is nil when the good was
// created without one.
type BakedGood struct {
	ID        uint      `db_model:"id" json:"id"`
	Name      string    `db_model:"name" json:"name"`
	Price     *float64  `db_model:"price" json:"price"`
	BakeryID  *uint     `db_model:"bakery_id" json:"bakery_id,omitempty"`
	CreatedAt time.Time `db_model:"created_at" json:"created_at"`
	UpdatedAt time.Time `db_model:"updated_at" json:"updated_at"`
}

// NewBakery creates an unsaved bakery
func NewBakery(name string) *Bakery {
	return &Bakery{Name: name}
}

// NewBakedGood creates an unsaved baked good with a price
func NewBakedGood(name string, price float64) *BakedGood {
	return &BakedGood{Name: name, Price: &price}
}

// NewUnpricedBakedGood creates an unsaved baked good without a price
func NewUnpricedBakedGood(name string) *BakedGood {
	return &BakedGood{Name: name}
}

// BakeryView is the JSON shape of a bakery
type BakeryView struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// BakedGoodView is the JSON shape of a baked good
type BakedGoodView struct {
	ID        uint     `json:"id"`
	Name      string   `json:"name"`
	Price     *float64 `json:"price"`
	BakeryID  *uint    `json:"bakery_id,omitempty"`
	CreatedAt string   `json:"created_at"`
	UpdatedAt string   `json:"updated_at"`
}

// BakeryDetail is a bakery together with its baked goods
type BakeryDetail struct {
	BakeryView
	BakedGoods []BakedGoodView `json:"baked_goods"`
}

// View serializes the bakery. Timestamps of a record that was never
// persisted are zero and render as "".
func (b Bakery) View() BakeryView {
	return BakeryView{
		ID:        b.ID,
		Name:      b.Name,
		CreatedAt: FormatTimestamp(b.CreatedAt),
		UpdatedAt: FormatTimestamp(b.UpdatedAt),
	}
}

// View serializes the baked good. As with Bakery.View, unset timestamps
// render as "".
func (g BakedGood) View() BakedGoodView {
	return BakedGoodView{
		ID:        g.ID,
		Name:      g.Name,
		Price:     g.Price,
		BakeryID:  g.BakeryID,
		CreatedAt: FormatTimestamp(g.CreatedAt),
		UpdatedAt: FormatTimestamp(g.UpdatedAt),
	}
}

// Detail serializes the bakery with the given baked goods nested under it
func (b Bakery) Detail(goods []BakedGood) BakeryDetail {
	return BakeryDetail{
		BakeryView: b.View(),
		BakedGoods: BakedGoodViews(goods),
	}
}

// BakeryViews serializes a slice of bakeries. The result is never nil so it
// encodes as [] rather than null.
func BakeryViews(bakeries []Bakery) []BakeryView {
	views := make([]BakeryView, 0, len(bakeries))
	for _, b := range bakeries {
		views = append(views, b.View())
	}
	return views
}

// BakedGoodViews serializes a slice of baked goods, never returning nil
func BakedGoodViews(goods []BakedGood) []BakedGoodView {
	views := make([]BakedGoodView, 0, len(goods))
	for _, g := range goods {
		views = append(views, g.View())
	}
	return views
}

// FormatTimestamp renders t in UTC; the zero time renders as an empty string
func FormatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(TimestampLayout)
}

// Now is the clock used for record timestamps
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// MostExpensive scans goods for the highest non-nil price. Equal prices
// resolve to the lowest id. ok is false when no good has a price.
func MostExpensive(goods []BakedGood) (best BakedGood, ok bool) {
	for _, g := range goods {
		if g.Price == nil {
			continue
		}
		if !ok || *g.Price > *best.Price || (*g.Price == *best.Price && g.ID < best.ID) {
			best = g
			ok = true
		}
	}
	return best, ok
}

// LessByPrice orders baked goods ascending by price with nil prices last,
// breaking ties by id.
func LessByPrice(a, b BakedGood) bool {
	switch {
	case a.Price == nil && b.Price == nil:
		return a.ID < b.ID
	case a.Price == nil:
		return false
	case b.Price == nil:
		return true
	case *a.Price != *b.Price:
		return *a.Price < *b.Price
	default:
		return a.ID < b.ID
	}
}
