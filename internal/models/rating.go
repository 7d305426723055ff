package models

const (
	MinRating = 1
	MaxRating = 5
)

type Rating struct {
	UserID  int64 `json:"user_id"`
	StoreID int64 `json:"store_id"`
	Rating  int   `json:"rating"`
}

// RaterRating is one row of a store owner's dashboard.
type RaterRating struct {
	Name   string `json:"name"`
	Rating int    `json:"rating"`
}

type AdminDashboard struct {
	UserCount   int64 `json:"user_count"`
	StoreCount  int64 `json:"store_count"`
	RatingCount int64 `json:"rating_count"`
}

type StoreDashboard struct {
	StoreID       int64         `json:"store_id"`
	StoreName     string        `json:"store_name"`
	Ratings       []RaterRating `json:"ratings"`
	AverageRating float64       `json:"average_rating"`
}
