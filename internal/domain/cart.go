package domain

// CartItem is a line in a visitor's cart. Name, price and image are captured
// when the product is added and never re-synced with the catalog.
type CartItem struct {
	ProductID int     `json:"id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	ImageURL  string  `json:"image_url"`
	Quantity  int     `json:"quantity"`
}

// LineTotal returns price times quantity.
func (i CartItem) LineTotal() float64 {
	return i.Price * float64(i.Quantity)
}

// CartSlot names the storage slot holding the serialized cart.
const CartSlot = "queencare_cart"
