package entity

import "time"

// ReviewView is a review joined with its restaurant and author. Read-only, not a table.
type ReviewView struct {
	ReviewID       uint      `json:"reviewId"`
	RestaurantID   uint      `json:"restaurantId"`
	RestaurantName string    `json:"restaurantName"`
	UserID         uint      `json:"userId"`
	Username       string    `json:"username"`
	FirstName      string    `json:"firstName"`
	LastName       string    `json:"lastName"`
	Rating         int       `json:"rating"`
	Text           string    `gorm:"column:review" json:"review"`
	CreatedAt      time.Time `json:"createdAt"`
}
