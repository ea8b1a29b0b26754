package models

import "time"

// OrderStatus is the lifecycle state of a food order.
type OrderStatus string

const (
	OrderReceived  OrderStatus = "recibido"
	OrderPreparing OrderStatus = "en_preparacion"
	OrderReady     OrderStatus = "listo"
	OrderDelivered OrderStatus = "entregado"
	OrderCancelled OrderStatus = "cancelado"
)

// Valid reports whether s is a recognized order status. The kitchen staff
// (admins) may set any of these in any order.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderReceived, OrderPreparing, OrderReady, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

// OwnerCancellable reports whether the ordering member may still cancel.
func (s OrderStatus) OwnerCancellable() bool {
	return s == OrderReceived
}

// OrderItem is one (menu item, quantity) line within a food order.
type OrderItem struct {
	ItemID   string `json:"itemId" bson:"itemId"`
	Quantity int    `json:"quantity" bson:"quantity"`
}

type FoodOrder struct {
	ID        string      `json:"id" bson:"id"`
	UserID    string      `json:"userId" bson:"userId"`
	OrderDate time.Time   `json:"orderDate" bson:"orderDate"`
	Items     []OrderItem `json:"items" bson:"items"`
	Status    OrderStatus `json:"status" bson:"status"`
}

// OrderItemDetail is an order line enriched with the menu item name.
type OrderItemDetail struct {
	OrderItem `bson:",inline"`
	Name      string `json:"name" bson:"name"`
}

// FoodOrderDetail is the read projection with item names and order total.
type FoodOrderDetail struct {
	ID        string            `json:"id" bson:"id"`
	UserID    string            `json:"userId" bson:"userId"`
	OrderDate time.Time         `json:"orderDate" bson:"orderDate"`
	Items     []OrderItemDetail `json:"items" bson:"items"`
	Status    OrderStatus       `json:"status" bson:"status"`
	Total     float64           `json:"total" bson:"total"`
	UserName  string            `json:"userName,omitempty" bson:"userName,omitempty"`
}
