package entity

type Restaurant struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"not null;index" json:"name"`
	Location    string `json:"location"`
	Description string `json:"description"`
	Type        string `gorm:"not null" json:"type"` // cuisine
	URL         string `json:"url"`                  // image

	OwnerID uint `gorm:"not null;index" json:"ownerId"`
	Owner   User `gorm:"foreignKey:OwnerID" json:"-"`

	Reviews []Review `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}
