package services_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"grestaurants/configs"
	"grestaurants/entity"
	"grestaurants/repository"
	"grestaurants/services"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type fixture struct {
	db      *gorm.DB
	rests   *services.RestaurantService
	reviews *services.ReviewService
	auth    *services.AuthService
	events  *recordingPublisher
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []services.ReviewEvent
}

func (p *recordingPublisher) Publish(ev services.ReviewEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
}

func (p *recordingPublisher) all() []services.ReviewEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]services.ReviewEvent(nil), p.events...)
}

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent), TranslateError: true})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, configs.SetupDatabase(db))
	return db
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := setupDB(t)
	restRepo := repository.NewRestaurantRepository(db)
	userRepo := repository.NewUserRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	pub := &recordingPublisher{}

	return &fixture{
		db:      db,
		rests:   services.NewRestaurantService(restRepo, userRepo, reviewRepo),
		reviews: services.NewReviewService(reviewRepo, restRepo, userRepo, pub),
		auth:    services.NewAuthService(userRepo, "test-secret", time.Hour),
		events:  pub,
	}
}

func (f *fixture) user(t *testing.T, username string, admin bool) *entity.User {
	t.Helper()
	u := &entity.User{Username: username, FirstName: "First " + username, LastName: "Last", Admin: admin}
	require.NoError(t, f.db.Create(u).Error)
	return u
}

func (f *fixture) restaurant(t *testing.T, name string, owner *entity.User) *entity.Restaurant {
	t.Helper()
	r := &entity.Restaurant{Name: name, Type: "Thai", Location: "1 Main St, Denver, CO", OwnerID: owner.ID}
	require.NoError(t, f.db.Create(r).Error)
	return r
}

func (f *fixture) review(t *testing.T, r *entity.Restaurant, u *entity.User, rating int) *entity.Review {
	t.Helper()
	rev := &entity.Review{RestaurantID: r.ID, UserID: u.ID, Rating: rating, Text: "text"}
	require.NoError(t, f.db.Create(rev).Error)
	return rev
}

func actor(u *entity.User) services.Actor { return services.NewActor(u) }

func requireKind(t *testing.T, err error, kind services.Kind) {
	t.Helper()
	require.Error(t, err)
	require.Equal(t, kind, services.KindOf(err), "err: %v", err)
}

var ctx = context.Background()
