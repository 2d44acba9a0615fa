package repository

import (
	"context"

	"grestaurants/entity"

	"gorm.io/gorm"
)

type ReviewRepository struct {
	DB *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{DB: db}
}

const joinedReviewColumns = `reviews.id AS review_id, reviews.restaurant_id, restaurants.name AS restaurant_name,
	reviews.user_id, users.username, users.first_name, users.last_name,
	reviews.rating, reviews.review, reviews.created_at`

func (r *ReviewRepository) joined(ctx context.Context) *gorm.DB {
	return r.DB.WithContext(ctx).
		Table("reviews").
		Select(joinedReviewColumns).
		Joins("JOIN restaurants ON restaurants.id = reviews.restaurant_id").
		Joins("JOIN users ON users.id = reviews.user_id")
}

func (r *ReviewRepository) FindByID(ctx context.Context, id uint) (*entity.Review, error) {
	var rev entity.Review
	if err := r.DB.WithContext(ctx).First(&rev, id).Error; err != nil {
		return nil, err
	}
	return &rev, nil
}

// FindJoined loads one review with restaurant name and author.
func (r *ReviewRepository) FindJoined(ctx context.Context, id uint) (*entity.ReviewView, error) {
	var row entity.ReviewView
	res := r.joined(ctx).Where("reviews.id = ?", id).Limit(1).Scan(&row)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &row, nil
}

// newest first
func (r *ReviewRepository) ListJoinedByRestaurant(ctx context.Context, restaurantID uint) ([]entity.ReviewView, error) {
	rows := []entity.ReviewView{}
	err := r.joined(ctx).
		Where("reviews.restaurant_id = ?", restaurantID).
		Order("reviews.created_at DESC, reviews.id DESC").
		Scan(&rows).Error
	return rows, err
}

func (r *ReviewRepository) Create(ctx context.Context, rev *entity.Review) error {
	return r.DB.WithContext(ctx).Create(rev).Error
}

func (r *ReviewRepository) Update(ctx context.Context, id uint, rating int, text string) error {
	res := r.DB.WithContext(ctx).Model(&entity.Review{}).Where("id = ?", id).
		Updates(map[string]any{"rating": rating, "review": text})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *ReviewRepository) Delete(ctx context.Context, id uint) (int64, error) {
	res := r.DB.WithContext(ctx).Delete(&entity.Review{}, id)
	return res.RowsAffected, res.Error
}

// Summary returns AVG(rating) and COUNT(*); average is 0 when there are no reviews.
func (r *ReviewRepository) Summary(ctx context.Context, restaurantID uint) (float64, int64, error) {
	var agg struct {
		Average float64
		Count   int64
	}
	err := r.DB.WithContext(ctx).Model(&entity.Review{}).
		Where("restaurant_id = ?", restaurantID).
		Select("COALESCE(AVG(rating), 0) AS average, COUNT(*) AS count").
		Scan(&agg).Error
	return agg.Average, agg.Count, err
}
