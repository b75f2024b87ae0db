package model

// Product is a catalog entry as served by the storefront API.
// The cart core only consumes the fields mirrored into CartItem.
type Product struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	OriginalPrice float64 `json:"originalPrice,omitempty"`
	ImageURL      string  `json:"image,omitempty"`
	CategoryName  string  `json:"category,omitempty"`
	AffiliateURL  string  `json:"affiliateUrl,omitempty"`
}

// ToCartItem converts a product into a cart line with the given quantity.
func (p *Product) ToCartItem(quantity int) CartItem {
	return CartItem{
		ProductID:     p.ID,
		Name:          p.Name,
		UnitPrice:     p.Price,
		OriginalPrice: p.OriginalPrice,
		ImageURL:      p.ImageURL,
		CategoryName:  p.CategoryName,
		Quantity:      quantity,
	}
}
