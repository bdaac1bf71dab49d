package models

import (
	"github.com/tidwall/gjson"
)

type Rating struct {
	Avg   float64 `json:"avg"`
	Total int     `json:"total"`
	Sum   float64 `json:"sum"`
}

type Product struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
	Sizes       []int   `json:"sizes"`
	Category    string  `json:"category"`
	Rating      Rating  `json:"rating"`
}

type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ProductFromJSON normalizes one product document. ok is false when raw is not
// a JSON object.
func ProductFromJSON(raw []byte) (Product, bool) {
	if !gjson.ValidBytes(raw) {
		return Product{}, false
	}
	r := gjson.ParseBytes(raw)
	if !r.IsObject() {
		return Product{}, false
	}
	return productOf(r), true
}

// ProductsFromJSON normalizes a product array; non-arrays give an empty list.
func ProductsFromJSON(raw []byte) []Product {
	items := arrayOf(raw)
	out := make([]Product, 0, len(items))
	for _, r := range items {
		if r.IsObject() {
			out = append(out, productOf(r))
		}
	}
	return out
}

func productOf(r gjson.Result) Product {
	p := Product{
		ID:          idOf(r),
		Title:       r.Get("title").String(),
		Price:       r.Get("price").Float(),
		Description: r.Get("description").String(),
		Image:       firstString(r, "imageUrl", "image"),
		Sizes:       []int{},
		Rating: Rating{
			Avg:   r.Get("rating.avg").Float(),
			Total: int(r.Get("rating.total").Int()),
			Sum:   r.Get("rating.sum").Float(),
		},
	}

	if c := r.Get("category"); c.IsObject() {
		p.Category = c.Get("name").String()
	} else if c.Type != gjson.Null {
		p.Category = c.String()
	}

	for _, s := range r.Get("sizes").Array() {
		if n, ok := intOf(s); ok {
			p.Sizes = append(p.Sizes, n)
		}
	}
	return p
}

// CategoriesFromJSON normalizes the /products/categories list. Bare strings
// are accepted as names that double as ids.
func CategoriesFromJSON(raw []byte) []Category {
	items := arrayOf(raw)
	out := make([]Category, 0, len(items))
	for _, r := range items {
		if r.Type == gjson.String {
			out = append(out, Category{ID: r.Str, Name: r.Str})
			continue
		}
		if r.IsObject() {
			out = append(out, Category{ID: idOf(r), Name: r.Get("name").String()})
		}
	}
	return out
}
