package entity

type User struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Username  string `gorm:"uniqueIndex;not null" json:"username"`
	Password  string `json:"-"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Admin     bool   `gorm:"not null;default:false" json:"admin"`

	// preloaded only when needed
	RestaurantsOwned []Restaurant `gorm:"foreignKey:OwnerID" json:"-"`
	Reviews          []Review     `json:"-"`
}
