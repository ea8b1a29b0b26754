package models

// MenuItem is a dish on the restaurant menu. Prices are in soles; the
// member price is always derived at read time, never stored.
type MenuItem struct {
	ID    string  `json:"id" bson:"id"`
	Name  string  `json:"name" bson:"name"`
	Price float64 `json:"price" bson:"price"`
}

// MemberDiscount is the club member multiplier applied to menu prices.
const MemberDiscount = 0.85

// MemberPrice returns the discounted price for club members.
func (m MenuItem) MemberPrice() float64 {
	return m.Price * MemberDiscount
}

// PricedMenuItem is the menu read projection including the member price.
type PricedMenuItem struct {
	MenuItem
	MemberPrice float64 `json:"memberPrice"`
}
