package cart

// Action is one cart transition. The set of actions is closed.
type Action interface {
	reduce(items []Item) []Item
}

// Add puts one unit of a product at Size into the cart.
type Add struct {
	ProductID string
	Title     string
	Price     float64
	Image     string
	Size      int
}

type Remove struct {
	ProductID string
	Size      int
}

// SetQuantity replaces the quantity of a line. Qty is floored at 1; removing
// a line is Remove's job.
type SetQuantity struct {
	ProductID string
	Size      int
	Qty       int
}

// ChangeSize moves a line to another size, merging into an existing line
// at the destination.
type ChangeSize struct {
	ProductID string
	From      int
	To        int
}

type Clear struct{}

// Reduce returns the item list after applying a. items is never modified.
func Reduce(items []Item, a Action) []Item {
	if a == nil {
		return cloneItems(items)
	}
	return a.reduce(items)
}

func (a Add) reduce(items []Item) []Item {
	out := cloneItems(items)
	if idx := findItemIndex(out, a.ProductID, a.Size); idx >= 0 {
		out[idx].Qty++
		return out
	}
	return append(out, Item{
		ProductID: a.ProductID,
		Title:     a.Title,
		Price:     a.Price,
		Image:     a.Image,
		Size:      a.Size,
		Qty:       1,
	})
}

func (a Remove) reduce(items []Item) []Item {
	out := cloneItems(items)
	if idx := findItemIndex(out, a.ProductID, a.Size); idx >= 0 {
		out = removeIndex(out, idx)
	}
	return out
}

func (a SetQuantity) reduce(items []Item) []Item {
	out := cloneItems(items)
	if idx := findItemIndex(out, a.ProductID, a.Size); idx >= 0 {
		out[idx].Qty = max(1, a.Qty)
	}
	return out
}

func (a ChangeSize) reduce(items []Item) []Item {
	out := cloneItems(items)
	if a.From == a.To {
		return out
	}
	src := findItemIndex(out, a.ProductID, a.From)
	if src < 0 {
		return out
	}
	if dst := findItemIndex(out, a.ProductID, a.To); dst >= 0 {
		out[dst].Qty += out[src].Qty
		return removeIndex(out, src)
	}
	out[src].Size = a.To
	return out
}

func (Clear) reduce([]Item) []Item {
	return []Item{}
}

func findItemIndex(items []Item, productID string, size int) int {
	for i := range items {
		if items[i].ProductID == productID && items[i].Size == size {
			return i
		}
	}
	return -1
}

// removeIndex preserves order. items must be owned by the caller.
func removeIndex(items []Item, idx int) []Item {
	if idx < 0 || idx >= len(items) {
		return items
	}
	return append(items[:idx], items[idx+1:]...)
}

func cloneItems(src []Item) []Item {
	out := make([]Item, len(src))
	copy(out, src)
	return out
}

// normalize restores the identity and quantity invariants on a list of
// unknown origin: lines without a product are dropped, qty is floored at 1
// and duplicate identities are merged into the first occurrence.
func normalize(src []Item) []Item {
	out := make([]Item, 0, len(src))
	seen := make(map[Key]int, len(src))
	for _, it := range src {
		if it.ProductID == "" {
			continue
		}
		it.Qty = max(1, it.Qty)
		if idx, ok := seen[it.Key()]; ok {
			out[idx].Qty += it.Qty
			continue
		}
		seen[it.Key()] = len(out)
		out = append(out, it)
	}
	return out
}

// Count is the sum of quantities.
func Count(items []Item) int {
	n := 0
	for _, it := range items {
		n += it.Qty
	}
	return n
}

// Total is the sum of price × quantity.
func Total(items []Item) float64 {
	var t float64
	for _, it := range items {
		t += it.Subtotal()
	}
	return t
}
