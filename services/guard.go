package services

import "grestaurants/entity"

// Actor is the user performing a request, loaded from the store before any
// service call. It is passed by value and never shared between requests.
type Actor struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Admin    bool   `json:"admin"`
}

func NewActor(u *entity.User) Actor {
	return Actor{ID: u.ID, Username: u.Username, Admin: u.Admin}
}

// CanMutate reports whether the actor owns the restaurant or is an admin.
func CanMutate(actor Actor, rest *entity.Restaurant) bool {
	return actor.ID == rest.OwnerID || actor.Admin
}

// CanModifyReview reports whether the actor wrote the review or is an admin.
func CanModifyReview(actor Actor, rev *entity.Review) bool {
	return actor.ID == rev.UserID || actor.Admin
}
