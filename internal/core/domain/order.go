package domain

import "time"

// OrderItem is a single line of a diner order.
type OrderItem struct {
	MenuID      string  `json:"menuId" bson:"menu_id"`
	Description string  `json:"description" bson:"description"`
	Price       float64 `json:"price" bson:"price"`
}

// Order is a diner order placed against a franchise store.
type Order struct {
	ID          string      `json:"id" bson:"_id,omitempty"`
	DinerID     string      `json:"-" bson:"diner_id"`
	FranchiseID string      `json:"franchiseId" bson:"franchise_id"`
	StoreID     string      `json:"storeId" bson:"store_id"`
	Date        time.Time   `json:"date" bson:"date"`
	Items       []OrderItem `json:"items" bson:"items"`
}

// Total returns the summed price of all items on the order.
func (o *Order) Total() float64 {
	var sum float64
	for _, it := range o.Items {
		sum += it.Price
	}
	return sum
}
