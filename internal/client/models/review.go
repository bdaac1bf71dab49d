package models

type Review struct {
	ID        string `json:"id"`
	ProductID string `json:"productId"`
	UserID    string `json:"userId"`
	UserName  string `json:"userName"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
	CreatedAt string `json:"createdAt"`
}

// ReviewsFromJSON normalizes /reviews/:productId. The author may be inlined
// as a "user" object or flattened into userId/userName.
func ReviewsFromJSON(raw []byte) []Review {
	items := arrayOf(raw)
	out := make([]Review, 0, len(items))
	for _, r := range items {
		if !r.IsObject() {
			continue
		}
		rv := Review{
			ID:        idOf(r),
			ProductID: r.Get("productId").String(),
			UserID:    firstString(r, "userId", "user._id", "user.id"),
			UserName:  firstString(r, "userName", "user.name"),
			Comment:   r.Get("comment").String(),
			CreatedAt: r.Get("createdAt").String(),
		}
		if n, ok := intOf(r.Get("rating")); ok {
			rv.Rating = n
		}
		out = append(out, rv)
	}
	return out
}
