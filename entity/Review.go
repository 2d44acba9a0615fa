package entity

import (
	"time"
)

type Review struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Rating    int       `gorm:"not null" json:"rating"`
	Text      string    `gorm:"column:review;type:text" json:"review"`
	CreatedAt time.Time `json:"createdAt"`

	RestaurantID uint       `gorm:"not null;index" json:"restaurantId"`
	Restaurant   Restaurant `json:"-"`
	UserID       uint       `gorm:"not null;index" json:"userId"`
	User         User       `json:"-"`
}
