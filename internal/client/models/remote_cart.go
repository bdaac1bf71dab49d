package models

import "github.com/tidwall/gjson"

// RemoteCartItem is one line of the server-side cart mirror.
type RemoteCartItem struct {
	ProductID string   `json:"productId"`
	Quantity  int      `json:"quantity"`
	Size      string   `json:"size,omitempty"`
	Product   *Product `json:"product,omitempty"`
}

func RemoteCartFromJSON(raw []byte) []RemoteCartItem {
	items := arrayOf(raw)
	out := make([]RemoteCartItem, 0, len(items))
	for _, r := range items {
		if !r.IsObject() {
			continue
		}
		item := RemoteCartItem{
			ProductID: r.Get("productId").String(),
			Quantity:  1,
		}
		if q, ok := intOf(r.Get("quantity")); ok {
			item.Quantity = q
		}
		if s := r.Get("size"); s.Exists() && s.Type != gjson.Null {
			item.Size = s.String()
		}
		if p := r.Get("product"); p.IsObject() {
			product := productOf(p)
			item.Product = &product
		}
		out = append(out, item)
	}
	return out
}
