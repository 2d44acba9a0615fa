package services

import (
	"context"

	"grestaurants/entity"
)

// RatingSummary is computed from the reviews on every read. Average is 0 when Count is 0.
type RatingSummary struct {
	Average float64 `json:"average"`
	Count   int64   `json:"count"`
}

type OwnerView struct {
	ID        uint   `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type RestaurantDetail struct {
	Restaurant entity.Restaurant   `json:"restaurant"`
	Owner      OwnerView           `json:"owner"`
	Reviews    []entity.ReviewView `json:"reviews"`
	Rating     RatingSummary       `json:"rating"`
}

func loadSummary(ctx context.Context, reviews ReviewStore, restaurantID uint) (RatingSummary, error) {
	avg, n, err := reviews.Summary(ctx, restaurantID)
	if err != nil {
		return RatingSummary{}, Persistence(err)
	}
	return RatingSummary{Average: avg, Count: n}, nil
}

func loadDetail(ctx context.Context, rests RestaurantStore, users UserStore, reviews ReviewStore, id uint) (*RestaurantDetail, error) {
	rest, err := rests.FindByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, "restaurant", id)
	}
	owner, err := users.FindByID(ctx, rest.OwnerID)
	if err != nil {
		return nil, storeErr(err, "user", rest.OwnerID)
	}
	rows, err := reviews.ListJoinedByRestaurant(ctx, id)
	if err != nil {
		return nil, Persistence(err)
	}
	if rows == nil {
		rows = []entity.ReviewView{}
	}
	sum, err := loadSummary(ctx, reviews, id)
	if err != nil {
		return nil, err
	}

	return &RestaurantDetail{
		Restaurant: *rest,
		Owner: OwnerView{
			ID:        owner.ID,
			Username:  owner.Username,
			FirstName: owner.FirstName,
			LastName:  owner.LastName,
		},
		Reviews: rows,
		Rating:  sum,
	}, nil
}
