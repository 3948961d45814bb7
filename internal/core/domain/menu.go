package domain

// MenuItem is a pizza offered on the public menu.
type MenuItem struct {
	ID          string  `json:"id" bson:"_id,omitempty"`
	Title       string  `json:"title" bson:"title"`
	Description string  `json:"description" bson:"description"`
	Image       string  `json:"image" bson:"image"`
	Price       float64 `json:"price" bson:"price"`
}
