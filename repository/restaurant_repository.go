// repository/restaurant_repository.go
package repository

import (
	"context"
	"strings"

	"grestaurants/entity"

	"gorm.io/gorm"
)

type RestaurantRepository struct {
	DB *gorm.DB
}

func NewRestaurantRepository(db *gorm.DB) *RestaurantRepository {
	return &RestaurantRepository{DB: db}
}

// full set, id order
func (r *RestaurantRepository) FindAll(ctx context.Context) ([]entity.Restaurant, error) {
	var rests []entity.Restaurant
	err := r.DB.WithContext(ctx).Order("id ASC").Find(&rests).Error
	return rests, err
}

func (r *RestaurantRepository) FindByID(ctx context.Context, id uint) (*entity.Restaurant, error) {
	var rest entity.Restaurant
	if err := r.DB.WithContext(ctx).First(&rest, id).Error; err != nil {
		return nil, err
	}
	return &rest, nil
}

func (r *RestaurantRepository) Create(ctx context.Context, rest *entity.Restaurant) error {
	return r.DB.WithContext(ctx).Create(rest).Error
}

// Update applies the given columns and returns the fresh row.
// Returns gorm.ErrRecordNotFound when no row has this id.
func (r *RestaurantRepository) Update(ctx context.Context, id uint, updates map[string]any) (*entity.Restaurant, error) {
	var rest entity.Restaurant
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&entity.Restaurant{}).Where("id = ?", id).Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.First(&rest, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &rest, nil
}

// Delete removes the restaurant and its reviews in one transaction.
// Returns the number of reviews removed.
func (r *RestaurantRepository) Delete(ctx context.Context, id uint) (int64, error) {
	var reviews int64
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("restaurant_id = ?", id).Delete(&entity.Review{})
		if res.Error != nil {
			return res.Error
		}
		reviews = res.RowsAffected

		res = tx.Delete(&entity.Restaurant{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return reviews, nil
}

// SearchByName matches term as a case-insensitive substring of name.
func (r *RestaurantRepository) SearchByName(ctx context.Context, term string, limit int) ([]entity.Restaurant, error) {
	pattern := "%" + escapeLike(strings.ToLower(term)) + "%"

	var rests []entity.Restaurant
	err := r.DB.WithContext(ctx).
		Where(`LOWER(name) LIKE ? ESCAPE '\'`, pattern).
		Order("id ASC").
		Limit(limit).
		Find(&rests).Error
	return rests, err
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
