package configs

import (
	"log"
	"strings"

	"grestaurants/entity"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedAdmin creates the first admin from ADMIN_USERNAME/ADMIN_PASSWORD
func SeedAdmin(db *gorm.DB, cfg *Config) error {
	username := strings.ToLower(strings.TrimSpace(cfg.AdminUsername))
	if username == "" || cfg.AdminPassword == "" {
		log.Println("skip seeding admin: missing ADMIN_USERNAME/ADMIN_PASSWORD")
		return nil
	}

	var count int64
	if err := db.Model(&entity.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Println("admin already exists:", username)
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := entity.User{
		Username:  username,
		Password:  string(hash),
		FirstName: "Admin",
		LastName:  "Seed",
		Admin:     true,
	}
	return db.Create(&admin).Error
}
