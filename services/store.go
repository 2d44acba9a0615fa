package services

import (
	"context"

	"grestaurants/entity"
)

// Stores the services read and write through. The gorm repositories in
// package repository satisfy them; every method returns gorm.ErrRecordNotFound
// for a missing row.

type RestaurantStore interface {
	FindAll(ctx context.Context) ([]entity.Restaurant, error)
	FindByID(ctx context.Context, id uint) (*entity.Restaurant, error)
	Create(ctx context.Context, rest *entity.Restaurant) error
	Update(ctx context.Context, id uint, updates map[string]any) (*entity.Restaurant, error)
	Delete(ctx context.Context, id uint) (int64, error)
	SearchByName(ctx context.Context, term string, limit int) ([]entity.Restaurant, error)
}

type UserStore interface {
	FindByID(ctx context.Context, id uint) (*entity.User, error)
	FindByUsername(ctx context.Context, username string) (*entity.User, error)
	CountByUsername(ctx context.Context, username string) (int64, error)
	Create(ctx context.Context, user *entity.User) error
}

type ReviewStore interface {
	FindByID(ctx context.Context, id uint) (*entity.Review, error)
	FindJoined(ctx context.Context, id uint) (*entity.ReviewView, error)
	ListJoinedByRestaurant(ctx context.Context, restaurantID uint) ([]entity.ReviewView, error)
	Create(ctx context.Context, rev *entity.Review) error
	Update(ctx context.Context, id uint, rating int, text string) error
	Delete(ctx context.Context, id uint) (int64, error)
	Summary(ctx context.Context, restaurantID uint) (float64, int64, error)
}
