package services

import (
	"context"
	"strings"
	"time"

	"grestaurants/entity"
)

type ReviewEventType string

const (
	ReviewCreated ReviewEventType = "created"
	ReviewUpdated ReviewEventType = "updated"
	ReviewDeleted ReviewEventType = "deleted"
)

// ReviewEvent is pushed to live subscribers of a restaurant after a review changes.
type ReviewEvent struct {
	Type         ReviewEventType `json:"type"`
	RestaurantID uint            `json:"restaurantId"`
	ReviewID     uint            `json:"reviewId"`
	Rating       int             `json:"rating,omitempty"`
	Summary      RatingSummary   `json:"summary"`
	At           time.Time       `json:"at"`
}

// ReviewPublisher must not block the caller.
type ReviewPublisher interface {
	Publish(ev ReviewEvent)
}

type noopPublisher struct{}

func (noopPublisher) Publish(ReviewEvent) {}

type ReviewService struct {
	Repo        ReviewStore
	Restaurants RestaurantStore
	Users       UserStore
	Events      ReviewPublisher
}

func NewReviewService(repo ReviewStore, rests RestaurantStore, users UserStore, events ReviewPublisher) *ReviewService {
	if events == nil {
		events = noopPublisher{}
	}
	return &ReviewService{Repo: repo, Restaurants: rests, Users: users, Events: events}
}

func (s *ReviewService) publish(ctx context.Context, typ ReviewEventType, restaurantID, reviewID uint, rating int) {
	ev := ReviewEvent{Type: typ, RestaurantID: restaurantID, ReviewID: reviewID, Rating: rating, At: time.Now()}
	if sum, err := loadSummary(ctx, s.Repo, restaurantID); err == nil {
		ev.Summary = sum
	}
	s.Events.Publish(ev)
}

// GetReviewForEdit returns the review joined with its restaurant and author.
func (s *ReviewService) GetReviewForEdit(ctx context.Context, reviewID uint) (*entity.ReviewView, error) {
	row, err := s.Repo.FindJoined(ctx, reviewID)
	if err != nil {
		return nil, storeErr(err, "review", reviewID)
	}
	return row, nil
}

// loadScoped fetches a review and checks it hangs off restaurantID.
func (s *ReviewService) loadScoped(ctx context.Context, restaurantID, reviewID uint) (*entity.Review, error) {
	rev, err := s.Repo.FindByID(ctx, reviewID)
	if err != nil {
		return nil, storeErr(err, "review", reviewID)
	}
	if rev.RestaurantID != restaurantID {
		return nil, NotFound("review %d does not belong to restaurant %d", reviewID, restaurantID)
	}
	return rev, nil
}

// SubmitReviewEdit rewrites rating and text and returns the restaurant to land on.
// Every read happens before the write, so a failure never follows a committed edit.
func (s *ReviewService) SubmitReviewEdit(ctx context.Context, actor Actor, restaurantID, reviewID uint, rating int, text string) (*entity.Restaurant, error) {
	if err := validateRating(rating); err != nil {
		return nil, err
	}
	text = strings.TrimSpace(text)

	rev, err := s.loadScoped(ctx, restaurantID, reviewID)
	if err != nil {
		return nil, err
	}
	if !CanModifyReview(actor, rev) {
		return nil, Unauthorized("user %d may not edit review %d", actor.ID, reviewID)
	}
	rest, err := s.Restaurants.FindByID(ctx, rev.RestaurantID)
	if err != nil {
		return nil, storeErr(err, "restaurant", rev.RestaurantID)
	}

	if err := s.Repo.Update(ctx, reviewID, rating, text); err != nil {
		return nil, storeErr(err, "review", reviewID)
	}
	s.publish(ctx, ReviewUpdated, rev.RestaurantID, reviewID, rating)
	return rest, nil
}

// CreateReview attaches a review by userID to restaurantID.
func (s *ReviewService) CreateReview(ctx context.Context, restaurantID uint, rating int, text string, userID uint) (*entity.Review, error) {
	if err := validateRating(rating); err != nil {
		return nil, err
	}

	if _, err := s.Restaurants.FindByID(ctx, restaurantID); err != nil {
		if isMissing(err) {
			return nil, Validation("restaurant %d does not exist", restaurantID)
		}
		return nil, Persistence(err)
	}
	if _, err := s.Users.FindByID(ctx, userID); err != nil {
		if isMissing(err) {
			return nil, Validation("user %d does not exist", userID)
		}
		return nil, Persistence(err)
	}

	rev := &entity.Review{
		RestaurantID: restaurantID,
		UserID:       userID,
		Rating:       rating,
		Text:         strings.TrimSpace(text),
	}
	if err := s.Repo.Create(ctx, rev); err != nil {
		return nil, Persistence(err)
	}
	s.publish(ctx, ReviewCreated, restaurantID, rev.ID, rating)
	return rev, nil
}

// DeleteReview removes a review of restaurantID. Only its author or an admin may do so.
func (s *ReviewService) DeleteReview(ctx context.Context, actor Actor, restaurantID, reviewID uint) error {
	rev, err := s.loadScoped(ctx, restaurantID, reviewID)
	if err != nil {
		return err
	}
	if !CanModifyReview(actor, rev) {
		return Unauthorized("user %d may not delete review %d", actor.ID, reviewID)
	}

	n, err := s.Repo.Delete(ctx, reviewID)
	if err != nil {
		return Persistence(err)
	}
	if n == 0 {
		return NotFound("review %d does not exist", reviewID)
	}
	s.publish(ctx, ReviewDeleted, rev.RestaurantID, reviewID, 0)
	return nil
}

func (s *ReviewService) ListForRestaurant(ctx context.Context, restaurantID uint) ([]entity.ReviewView, RatingSummary, error) {
	if _, err := s.Restaurants.FindByID(ctx, restaurantID); err != nil {
		return nil, RatingSummary{}, storeErr(err, "restaurant", restaurantID)
	}
	rows, err := s.Repo.ListJoinedByRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, RatingSummary{}, Persistence(err)
	}
	if rows == nil {
		rows = []entity.ReviewView{}
	}
	sum, err := loadSummary(ctx, s.Repo, restaurantID)
	if err != nil {
		return nil, RatingSummary{}, err
	}
	return rows, sum, nil
}

// Summary is the computed average rating of a restaurant.
func (s *ReviewService) Summary(ctx context.Context, restaurantID uint) (RatingSummary, error) {
	return loadSummary(ctx, s.Repo, restaurantID)
}
