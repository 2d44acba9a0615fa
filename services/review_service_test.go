package services_test

import (
	"context"
	"errors"
	"testing"

	"grestaurants/entity"
	"grestaurants/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReviewService_CreateRatingBounds(t *testing.T) {
	f := newFixture(t)
	owner := f.user(t, "owner", false)
	critic := f.user(t, "critic", false)
	rest := f.restaurant(t, "Bistro", owner)
	f.review(t, rest, owner, 5)

	for _, bad := range []int{0, -1, 6, 100} {
		_, err := f.reviews.CreateReview(ctx, rest.ID, bad, "nope", critic.ID)
		requireKind(t, err, services.KindValidation)
	}

	rev, err := f.reviews.CreateReview(ctx, rest.ID, 3, "  fine  ", critic.ID)
	require.NoError(t, err)
	assert.NotZero(t, rev.ID)
	assert.Equal(t, "fine", rev.Text)

	sum, err := f.reviews.Summary(ctx, rest.ID)
	require.NoError(t, err)
	assert.InDelta(t, 4.0, sum.Average, 1e-9)
	assert.EqualValues(t, 2, sum.Count)
}

func TestReviewService_CreateMissingReferences(t *testing.T) {
	f := newFixture(t)
	owner := f.user(t, "owner", false)
	rest := f.restaurant(t, "Bistro", owner)

	_, err := f.reviews.CreateReview(ctx, 999, 4, "ok", owner.ID)
	requireKind(t, err, services.KindValidation)

	_, err = f.reviews.CreateReview(ctx, rest.ID, 4, "ok", 999)
	requireKind(t, err, services.KindValidation)

	assert.Empty(t, f.events.all())
}

func TestReviewService_CreateThenGetForEdit(t *testing.T) {
	f := newFixture(t)
	user := &entity.User{ID: 9, Username: "nine", FirstName: "Nina", LastName: "Nguyen"}
	require.NoError(t, f.db.Create(user).Error)
	rest := &entity.Restaurant{ID: 5, Name: "Five Guys", Type: "Burgers", Location: "a, b, c", OwnerID: 9}
	require.NoError(t, f.db.Create(rest).Error)

	rev, err := f.reviews.CreateReview(ctx, 5, 4, "ok", 9)
	require.NoError(t, err)

	view, err := f.reviews.GetReviewForEdit(ctx, rev.ID)
	require.NoError(t, err)
	assert.Equal(t, rev.ID, view.ReviewID)
	assert.EqualValues(t, 5, view.RestaurantID)
	assert.Equal(t, "Five Guys", view.RestaurantName)
	assert.Equal(t, "nine", view.Username)
	assert.Equal(t, "Nina", view.FirstName)
	assert.Equal(t, "Nguyen", view.LastName)
	assert.Equal(t, 4, view.Rating)
	assert.Equal(t, "ok", view.Text)

	_, err = f.reviews.GetReviewForEdit(ctx, rev.ID+100)
	requireKind(t, err, services.KindNotFound)
}

func TestReviewService_SubmitEdit(t *testing.T) {
	f := newFixture(t)
	owner := f.user(t, "owner", false)
	author := f.user(t, "author", false)
	stranger := f.user(t, "stranger", false)
	admin := f.user(t, "root", true)
	rest := f.restaurant(t, "Bistro", owner)
	rev := f.review(t, rest, author, 1)

	_, err := f.reviews.SubmitReviewEdit(ctx, actor(author), rest.ID, rev.ID, 6, "too high")
	requireKind(t, err, services.KindValidation)

	_, err = f.reviews.SubmitReviewEdit(ctx, actor(stranger), rest.ID, rev.ID, 5, "hijack")
	requireKind(t, err, services.KindUnauthorized)

	_, err = f.reviews.SubmitReviewEdit(ctx, actor(author), rest.ID, 777, 5, "missing")
	requireKind(t, err, services.KindNotFound)

	landed, err := f.reviews.SubmitReviewEdit(ctx, actor(author), rest.ID, rev.ID, 5, "changed my mind")
	require.NoError(t, err)
	assert.Equal(t, rest.ID, landed.ID)

	d, err := f.rests.Detail(ctx, rest.ID)
	require.NoError(t, err)
	assert.InDelta(t, 5.0, d.Rating.Average, 1e-9)
	require.Len(t, d.Reviews, 1)
	assert.Equal(t, "changed my mind", d.Reviews[0].Text)

	_, err = f.reviews.SubmitReviewEdit(ctx, actor(admin), rest.ID, rev.ID, 2, "moderated")
	require.NoError(t, err)
	sum, err := f.reviews.Summary(ctx, rest.ID)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, sum.Average, 1e-9)
}

func TestReviewService_EditAndDeleteCheckRestaurant(t *testing.T) {
	f := newFixture(t)
	owner := f.user(t, "owner", false)
	author := f.user(t, "author", false)
	home := f.restaurant(t, "Home", owner)
	other := f.restaurant(t, "Other", owner)
	rev := f.review(t, home, author, 3)

	_, err := f.reviews.SubmitReviewEdit(ctx, actor(author), other.ID, rev.ID, 1, "wrong place")
	requireKind(t, err, services.KindNotFound)

	err = f.reviews.DeleteReview(ctx, actor(author), other.ID, rev.ID)
	requireKind(t, err, services.KindNotFound)

	view, err := f.reviews.GetReviewForEdit(ctx, rev.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, view.Rating)
	assert.Empty(t, f.events.all())
}

// brokenReads fails every joined read and summary while writes still go through.
type brokenReads struct {
	services.ReviewStore
}

func (brokenReads) ListJoinedByRestaurant(context.Context, uint) ([]entity.ReviewView, error) {
	return nil, errors.New("disk I/O error")
}

func (brokenReads) Summary(context.Context, uint) (float64, int64, error) {
	return 0, 0, errors.New("disk I/O error")
}

func TestReviewService_SubmitEditSucceedsOnceWritten(t *testing.T) {
	f := newFixture(t)
	owner := f.user(t, "owner", false)
	author := f.user(t, "author", false)
	rest := f.restaurant(t, "Bistro", owner)
	rev := f.review(t, rest, author, 1)

	svc := services.NewReviewService(brokenReads{f.reviews.Repo}, f.reviews.Restaurants, f.reviews.Users, nil)
	landed, err := svc.SubmitReviewEdit(ctx, actor(author), rest.ID, rev.ID, 5, "fixed")
	require.NoError(t, err)
	assert.Equal(t, rest.ID, landed.ID)

	view, err := f.reviews.GetReviewForEdit(ctx, rev.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, view.Rating)
}

// missingRestaurants loses every restaurant lookup.
type missingRestaurants struct {
	services.RestaurantStore
}

func (missingRestaurants) FindByID(context.Context, uint) (*entity.Restaurant, error) {
	return nil, errors.New("connection reset")
}

func TestReviewService_SubmitEditFailsBeforeWriting(t *testing.T) {
	f := newFixture(t)
	owner := f.user(t, "owner", false)
	author := f.user(t, "author", false)
	rest := f.restaurant(t, "Bistro", owner)
	rev := f.review(t, rest, author, 1)

	svc := services.NewReviewService(f.reviews.Repo, missingRestaurants{f.reviews.Restaurants}, f.reviews.Users, nil)
	_, err := svc.SubmitReviewEdit(ctx, actor(author), rest.ID, rev.ID, 5, "never stored")
	requireKind(t, err, services.KindPersistence)

	view, err := f.reviews.GetReviewForEdit(ctx, rev.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, view.Rating)
}

func TestReviewService_Delete(t *testing.T) {
	f := newFixture(t)
	owner := f.user(t, "owner", false)
	author := f.user(t, "author", false)
	admin := f.user(t, "root", true)
	rest := f.restaurant(t, "Bistro", owner)
	r1 := f.review(t, rest, author, 4)
	r2 := f.review(t, rest, author, 2)

	// restaurant owner is not the review author
	err := f.reviews.DeleteReview(ctx, actor(owner), rest.ID, r1.ID)
	requireKind(t, err, services.KindUnauthorized)

	require.NoError(t, f.reviews.DeleteReview(ctx, actor(author), rest.ID, r1.ID))
	require.NoError(t, f.reviews.DeleteReview(ctx, actor(admin), rest.ID, r2.ID))

	err = f.reviews.DeleteReview(ctx, actor(author), rest.ID, r1.ID)
	requireKind(t, err, services.KindNotFound)

	sum, err := f.reviews.Summary(ctx, rest.ID)
	require.NoError(t, err)
	assert.Zero(t, sum.Average)
	assert.Zero(t, sum.Count)
}

func TestReviewService_PublishesEvents(t *testing.T) {
	f := newFixture(t)
	owner := f.user(t, "owner", false)
	rest := f.restaurant(t, "Bistro", owner)

	rev, err := f.reviews.CreateReview(ctx, rest.ID, 4, "good", owner.ID)
	require.NoError(t, err)
	_, err = f.reviews.SubmitReviewEdit(ctx, actor(owner), rest.ID, rev.ID, 2, "worse")
	require.NoError(t, err)
	require.NoError(t, f.reviews.DeleteReview(ctx, actor(owner), rest.ID, rev.ID))

	evs := f.events.all()
	require.Len(t, evs, 3)
	assert.Equal(t, services.ReviewCreated, evs[0].Type)
	assert.InDelta(t, 4.0, evs[0].Summary.Average, 1e-9)
	assert.Equal(t, services.ReviewUpdated, evs[1].Type)
	assert.Equal(t, 2, evs[1].Rating)
	assert.Equal(t, services.ReviewDeleted, evs[2].Type)
	assert.Zero(t, evs[2].Summary.Count)
	for _, ev := range evs {
		assert.Equal(t, rest.ID, ev.RestaurantID)
		assert.Equal(t, rev.ID, ev.ReviewID)
	}
}

func TestReviewService_ListForRestaurant(t *testing.T) {
	f := newFixture(t)
	owner := f.user(t, "owner", false)
	critic := f.user(t, "critic", false)
	rest := f.restaurant(t, "Bistro", owner)
	empty := f.restaurant(t, "Quiet Place", owner)
	f.review(t, rest, critic, 3)
	last := f.review(t, rest, owner, 4)

	items, sum, err := f.reviews.ListForRestaurant(ctx, rest.ID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, last.ID, items[0].ReviewID)
	assert.InDelta(t, 3.5, sum.Average, 1e-9)

	items, sum, err = f.reviews.ListForRestaurant(ctx, empty.ID)
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
	assert.Zero(t, sum.Count)

	_, _, err = f.reviews.ListForRestaurant(ctx, 999)
	requireKind(t, err, services.KindNotFound)
}
