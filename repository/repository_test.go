package repository

import (
	"context"
	"fmt"
	"testing"

	"grestaurants/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent), TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&entity.User{}, &entity.Restaurant{}, &entity.Review{}))
	return db
}

func seed(t *testing.T, db *gorm.DB) (*entity.User, *entity.Restaurant) {
	t.Helper()
	u := &entity.User{Username: "owner"}
	require.NoError(t, db.Create(u).Error)
	r := &entity.Restaurant{Name: "Mole Town", Type: "Mexican", OwnerID: u.ID}
	require.NoError(t, db.Create(r).Error)
	return u, r
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `50\% off`, escapeLike("50% off"))
	assert.Equal(t, `a\_b`, escapeLike("a_b"))
	assert.Equal(t, `c:\\x`, escapeLike(`c:\x`))
	assert.Equal(t, "plain", escapeLike("plain"))
}

func TestRestaurantRepository_UpdateMissing(t *testing.T) {
	repo := NewRestaurantRepository(setupTestDB(t))

	_, err := repo.Update(context.Background(), 77, map[string]any{"name": "x"})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRestaurantRepository_UpdateReturnsFreshRow(t *testing.T) {
	db := setupTestDB(t)
	_, r := seed(t, db)
	repo := NewRestaurantRepository(db)

	got, err := repo.Update(context.Background(), r.ID, map[string]any{"name": "Mole City", "url": "u.png"})
	require.NoError(t, err)
	assert.Equal(t, "Mole City", got.Name)
	assert.Equal(t, "u.png", got.URL)
	assert.Equal(t, "Mexican", got.Type)
}

func TestRestaurantRepository_DeleteWithReviews(t *testing.T) {
	db := setupTestDB(t)
	u, r := seed(t, db)
	require.NoError(t, db.Create(&entity.Review{RestaurantID: r.ID, UserID: u.ID, Rating: 4}).Error)
	require.NoError(t, db.Create(&entity.Review{RestaurantID: r.ID, UserID: u.ID, Rating: 2}).Error)
	repo := NewRestaurantRepository(db)
	ctx := context.Background()

	n, err := repo.Delete(ctx, r.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	_, err = repo.FindByID(ctx, r.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	_, err = repo.Delete(ctx, r.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestReviewRepository_JoinedAndSummary(t *testing.T) {
	db := setupTestDB(t)
	u, r := seed(t, db)
	repo := NewReviewRepository(db)
	ctx := context.Background()

	avg, n, err := repo.Summary(ctx, r.ID)
	require.NoError(t, err)
	assert.Zero(t, avg)
	assert.Zero(t, n)

	rev := &entity.Review{RestaurantID: r.ID, UserID: u.ID, Rating: 5, Text: "great"}
	require.NoError(t, repo.Create(ctx, rev))
	require.NoError(t, repo.Create(ctx, &entity.Review{RestaurantID: r.ID, UserID: u.ID, Rating: 2}))

	row, err := repo.FindJoined(ctx, rev.ID)
	require.NoError(t, err)
	assert.Equal(t, "Mole Town", row.RestaurantName)
	assert.Equal(t, "owner", row.Username)
	assert.Equal(t, "great", row.Text)
	assert.False(t, row.CreatedAt.IsZero())

	_, err = repo.FindJoined(ctx, 999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	avg, n, err = repo.Summary(ctx, r.ID)
	require.NoError(t, err)
	assert.InDelta(t, 3.5, avg, 1e-9)
	assert.EqualValues(t, 2, n)

	assert.ErrorIs(t, repo.Update(ctx, 999, 3, "x"), gorm.ErrRecordNotFound)

	cnt, err := repo.Delete(ctx, 999)
	require.NoError(t, err)
	assert.Zero(t, cnt)
}

func TestReviewRepository_ForeignKeys(t *testing.T) {
	db := setupTestDB(t)
	repo := NewReviewRepository(db)

	err := repo.Create(context.Background(), &entity.Review{RestaurantID: 42, UserID: 42, Rating: 3})
	assert.Error(t, err)
}
