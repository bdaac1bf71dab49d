package cart

import (
	"math"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// DefaultSize is used wherever a size is absent or not a number.
const DefaultSize = 40

// Item is one cart line. (ProductID, Size) is its identity and Qty is never
// below 1.
type Item struct {
	ProductID string  `json:"productId"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	Image     string  `json:"image"`
	Size      int     `json:"size"`
	Qty       int     `json:"qty"`
}

type Key struct {
	ProductID string
	Size      int
}

func (i Item) Key() Key { return Key{ProductID: i.ProductID, Size: i.Size} }

// Subtotal is Price × Qty.
func (i Item) Subtotal() float64 { return i.Price * float64(i.Qty) }

// UnmarshalJSON decodes persisted lines leniently: "id" is accepted for
// "productId", sizes may be numbers or numeric strings, and a missing or
// non-positive qty becomes 1.
func (i *Item) UnmarshalJSON(b []byte) error {
	if !gjson.ValidBytes(b) {
		return errCorrupt
	}
	r := gjson.ParseBytes(b)
	if !r.IsObject() {
		return errCorrupt
	}
	*i = itemOf(r)
	return nil
}

func itemOf(r gjson.Result) Item {
	id := r.Get("productId")
	if !id.Exists() || id.Type == gjson.Null {
		id = r.Get("id")
	}
	qty, ok := number(r.Get("qty"))
	if !ok {
		qty = 1
	}
	size, ok := number(r.Get("size"))
	if !ok {
		size = DefaultSize
	}
	return Item{
		ProductID: id.String(),
		Title:     r.Get("title").String(),
		Price:     r.Get("price").Float(),
		Image:     r.Get("image").String(),
		Size:      size,
		Qty:       max(1, qty),
	}
}

// ParseSize reads a size typed by the user. Non-integral sizes are truncated;
// empty, non-numeric and non-finite input yields DefaultSize.
func ParseSize(s string) int {
	n, ok := parseNumber(s)
	if !ok {
		return DefaultSize
	}
	return n
}

// ParseQuantity reads a quantity typed by the user, floored at 1.
func ParseQuantity(s string) int {
	n, ok := parseNumber(s)
	if !ok {
		return 1
	}
	return max(1, n)
}

func parseNumber(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	if f > math.MaxInt32 || f < math.MinInt32 {
		return 0, false
	}
	return int(f), true
}

func number(v gjson.Result) (int, bool) {
	switch v.Type {
	case gjson.Number:
		if math.IsNaN(v.Num) || math.IsInf(v.Num, 0) {
			return 0, false
		}
		return int(v.Num), true
	case gjson.String:
		return parseNumber(v.Str)
	default:
		return 0, false
	}
}
