package domain

// Store is a single outlet belonging to a franchise.
type Store struct {
	ID   string `json:"id" bson:"id"`
	Name string `json:"name" bson:"name"`
}

// FranchiseAdmin is the redacted view of a user administering a franchise.
type FranchiseAdmin struct {
	ID    string `json:"id" bson:"id"`
	Name  string `json:"name" bson:"name"`
	Email string `json:"email" bson:"email"`
}

// Franchise is the aggregate for a franchise and its stores.
type Franchise struct {
	ID     string           `json:"id" bson:"_id,omitempty"`
	Name   string           `json:"name" bson:"name"`
	Admins []FranchiseAdmin `json:"admins" bson:"admins"`
	Stores []Store          `json:"stores" bson:"stores"`
}

// AdministeredBy reports whether userID is one of the franchise's admins.
func (f *Franchise) AdministeredBy(userID string) bool {
	for _, a := range f.Admins {
		if a.ID == userID {
			return true
		}
	}
	return false
}
