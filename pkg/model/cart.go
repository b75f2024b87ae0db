package model

// CartItem is one line in the shopping cart. ProductID is the unique key:
// a cart never holds two entries for the same product.
type CartItem struct {
	ProductID     string  `json:"productId"`
	Name          string  `json:"name"`
	UnitPrice     float64 `json:"price"`
	OriginalPrice float64 `json:"originalPrice,omitempty"`
	ImageURL      string  `json:"image,omitempty"`
	CategoryName  string  `json:"category,omitempty"`
	Quantity      int     `json:"quantity"`
}

// Subtotal returns the line total for this item.
func (i *CartItem) Subtotal() float64 {
	return i.UnitPrice * float64(i.Quantity)
}

// SyncStatus indicates whether a full cart fetch is in flight.
type SyncStatus string

const (
	SyncIdle    SyncStatus = "idle"
	SyncLoading SyncStatus = "loading"
)

// CartState is the in-memory cart. TotalItems and TotalPrice are derived
// from Items and must be recomputed after every mutation; they are never
// stored independently.
type CartState struct {
	Items      []CartItem `json:"items"`
	TotalItems int        `json:"totalItems"`
	TotalPrice float64    `json:"totalPrice"`
	SyncStatus SyncStatus `json:"syncStatus"`
}

// RecomputeTotals rederives TotalItems and TotalPrice from Items.
func (c *CartState) RecomputeTotals() {
	total := 0
	price := 0.0
	for i := range c.Items {
		total += c.Items[i].Quantity
		price += c.Items[i].Subtotal()
	}
	c.TotalItems = total
	c.TotalPrice = price
}

// Find returns the index of the item with the given product ID, or -1.
func (c *CartState) Find(productID string) int {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy of the cart state.
func (c *CartState) Clone() CartState {
	out := *c
	out.Items = make([]CartItem, len(c.Items))
	copy(out.Items, c.Items)
	return out
}
