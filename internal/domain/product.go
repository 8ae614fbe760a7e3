package domain

// Product is a catalog item offered for purchase.
// Price is in Telegram Stars, the smallest indivisible unit.
type Product struct {
	ID      int64  `db:"id"`
	Name    string `db:"name"`
	Price   int64  `db:"price"`
	PhotoID string `db:"photo_id"`
}

// ProductDraft accumulates wizard input before the product is persisted.
type ProductDraft struct {
	Name    string
	Price   int64
	PhotoID string
}

// Complete reports whether every wizard step has been filled in.
func (d ProductDraft) Complete() bool {
	return d.Name != "" && d.Price > 0 && d.PhotoID != ""
}
