// services/restaurant_service.go
package services

import (
	"context"
	"strings"

	"grestaurants/entity"
)

const SearchLimit = 9

type RestaurantService struct {
	Repo    RestaurantStore
	Users   UserStore
	Reviews ReviewStore
}

func NewRestaurantService(repo RestaurantStore, users UserStore, reviews ReviewStore) *RestaurantService {
	return &RestaurantService{Repo: repo, Users: users, Reviews: reviews}
}

type RestaurantInput struct {
	Name          string `json:"name" validate:"required"`
	Type          string `json:"type" validate:"required"`
	StreetAddress string `json:"streetAddress" validate:"required"`
	City          string `json:"city" validate:"required"`
	State         string `json:"state" validate:"required"`
	Description   string `json:"description"`
	URL           string `json:"url"`
}

// RestaurantPatch carries only the fields to change. Location may be given
// whole or as street/city/state, not both.
type RestaurantPatch struct {
	Name          *string `json:"name"`
	Type          *string `json:"type"`
	Description   *string `json:"description"`
	URL           *string `json:"url"`
	Location      *string `json:"location"`
	StreetAddress *string `json:"streetAddress"`
	City          *string `json:"city"`
	State         *string `json:"state"`
}

type DeletedSummary struct {
	ID             uint   `json:"id"`
	Name           string `json:"name"`
	ReviewsDeleted int64  `json:"reviewsDeleted"`
}

func composeLocation(street, city, state string) string {
	return street + ", " + city + ", " + state
}

// ListPage reads the whole set and returns the requested window.
func (s *RestaurantService) ListPage(ctx context.Context, pageIndex int) (*Page, error) {
	if pageIndex < 0 {
		return nil, Validation("invalid page index %d", pageIndex)
	}
	all, err := s.Repo.FindAll(ctx)
	if err != nil {
		return nil, Persistence(err)
	}
	return Paginate(all, pageIndex)
}

// Search returns ErrNoQuery for a blank term.
func (s *RestaurantService) Search(ctx context.Context, term string) ([]entity.Restaurant, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, ErrNoQuery
	}
	rests, err := s.Repo.SearchByName(ctx, term, SearchLimit)
	if err != nil {
		return nil, Persistence(err)
	}
	if rests == nil {
		rests = []entity.Restaurant{}
	}
	return rests, nil
}

func (s *RestaurantService) Create(ctx context.Context, actor Actor, in RestaurantInput) (*entity.Restaurant, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Type = strings.TrimSpace(in.Type)
	in.StreetAddress = strings.TrimSpace(in.StreetAddress)
	in.City = strings.TrimSpace(in.City)
	in.State = strings.TrimSpace(in.State)
	in.Description = strings.TrimSpace(in.Description)
	in.URL = strings.TrimSpace(in.URL)
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	if _, err := s.Users.FindByID(ctx, actor.ID); err != nil {
		if isMissing(err) {
			return nil, Validation("owner %d does not exist", actor.ID)
		}
		return nil, Persistence(err)
	}

	rest := &entity.Restaurant{
		Name:        in.Name,
		Location:    composeLocation(in.StreetAddress, in.City, in.State),
		Description: in.Description,
		Type:        in.Type,
		URL:         in.URL,
		OwnerID:     actor.ID,
	}
	if err := s.Repo.Create(ctx, rest); err != nil {
		return nil, Persistence(err)
	}
	return rest, nil
}

func (p RestaurantPatch) updates() (map[string]any, error) {
	up := map[string]any{}

	if p.Name != nil {
		if *p.Name == "" {
			return nil, Validation("name must not be empty")
		}
		up["name"] = *p.Name
	}
	if p.Type != nil {
		if *p.Type == "" {
			return nil, Validation("type must not be empty")
		}
		up["type"] = *p.Type
	}
	if p.Description != nil {
		up["description"] = *p.Description
	}
	if p.URL != nil {
		up["url"] = *p.URL
	}

	parts := p.StreetAddress != nil || p.City != nil || p.State != nil
	switch {
	case p.Location != nil && parts:
		return nil, Validation("give either location or streetAddress/city/state")
	case p.Location != nil:
		if *p.Location == "" {
			return nil, Validation("location must not be empty")
		}
		up["location"] = *p.Location
	case parts:
		if p.StreetAddress == nil || p.City == nil || p.State == nil ||
			*p.StreetAddress == "" || *p.City == "" || *p.State == "" {
			return nil, Validation("streetAddress, city and state are all required")
		}
		up["location"] = composeLocation(*p.StreetAddress, *p.City, *p.State)
	}
	return up, nil
}

// Update applies the supplied fields. Only the owner or an admin may update.
func (s *RestaurantService) Update(ctx context.Context, actor Actor, id uint, patch RestaurantPatch) (*entity.Restaurant, error) {
	patch = RestaurantPatch{
		Name:          trimPtr(patch.Name),
		Type:          trimPtr(patch.Type),
		Description:   trimPtr(patch.Description),
		URL:           trimPtr(patch.URL),
		Location:      trimPtr(patch.Location),
		StreetAddress: trimPtr(patch.StreetAddress),
		City:          trimPtr(patch.City),
		State:         trimPtr(patch.State),
	}
	updates, err := patch.updates()
	if err != nil {
		return nil, err
	}

	rest, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, "restaurant", id)
	}
	if !CanMutate(actor, rest) {
		return nil, Unauthorized("user %d may not edit restaurant %d", actor.ID, id)
	}
	if len(updates) == 0 {
		return rest, nil
	}

	updated, err := s.Repo.Update(ctx, id, updates)
	if err != nil {
		return nil, storeErr(err, "restaurant", id)
	}
	return updated, nil
}

// Delete removes the restaurant together with its reviews.
func (s *RestaurantService) Delete(ctx context.Context, actor Actor, id uint) (*DeletedSummary, error) {
	rest, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, "restaurant", id)
	}
	if !CanMutate(actor, rest) {
		return nil, Unauthorized("user %d may not delete restaurant %d", actor.ID, id)
	}

	n, err := s.Repo.Delete(ctx, id)
	if err != nil {
		return nil, storeErr(err, "restaurant", id)
	}
	return &DeletedSummary{ID: rest.ID, Name: rest.Name, ReviewsDeleted: n}, nil
}

// Detail is the public restaurant page: owner, reviews and rating.
func (s *RestaurantService) Detail(ctx context.Context, id uint) (*RestaurantDetail, error) {
	return loadDetail(ctx, s.Repo, s.Users, s.Reviews, id)
}

// EditView is Detail for the owner or an admin.
func (s *RestaurantService) EditView(ctx context.Context, actor Actor, id uint) (*RestaurantDetail, error) {
	rest, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, "restaurant", id)
	}
	if !CanMutate(actor, rest) {
		return nil, Unauthorized("user %d may not edit restaurant %d", actor.ID, id)
	}
	return loadDetail(ctx, s.Repo, s.Users, s.Reviews, id)
}
