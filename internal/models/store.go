package models

type Store struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address"`
	OwnerID int64  `json:"owner_id"`
}

// StoreWithRating is a store row of the admin listing.
type StoreWithRating struct {
	Store
	Rating *float64 `json:"rating"`
}

// UserStore is a store as seen by a regular user: the overall average and
// the caller's own rating, both nil when absent.
type UserStore struct {
	ID            int64    `json:"id"`
	Name          string   `json:"name"`
	Address       string   `json:"address"`
	OverallRating *float64 `json:"overall_rating"`
	UserRating    *int     `json:"user_rating"`
}
