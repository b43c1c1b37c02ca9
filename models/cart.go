package models

// CartLineItem is one (productId, quantity, amount) tuple inside a cart.
// Amount is the unit price the item was added at; merging by productId
// accumulates quantity and carries the most recent amount.
type CartLineItem struct {
	ProductID string  `json:"productId" bson:"productId"`
	Quantity  int     `json:"quantity" bson:"quantity"`
	Amount    float64 `json:"amount" bson:"amount"`
}

type Cart struct {
	ID       string         `json:"id" bson:"id"`
	UserID   string         `json:"userId" bson:"userId"`
	Products []CartLineItem `json:"products" bson:"products"`
}

// ResolvedLineItem is a line item with its product document joined in.
// Product stays nil when the referenced product no longer exists; there is
// no referential integrity between carts and products.
type ResolvedLineItem struct {
	CartLineItem `bson:",inline"`
	Product      *Product `json:"product,omitempty" bson:"product,omitempty"`
}

// ResolvedCart is what cart reads return: the stored cart with every
// line item's product reference populated.
type ResolvedCart struct {
	ID       string             `json:"id" bson:"id"`
	UserID   string             `json:"userId" bson:"userId"`
	Products []ResolvedLineItem `json:"products" bson:"products"`
}
