package repo_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"cafe-directory/internal/domain"
	"cafe-directory/internal/repo"
	"cafe-directory/internal/testutil"
)

func seedCafe(t *testing.T, r *repo.CafeRepo, name string) *domain.Cafe {
	t.Helper()
	c := &domain.Cafe{
		Name:     name,
		Location: name + " street",
		MapsURL:  "https://maps.example/" + name,
		ImageURL: "https://img.example/" + name,
		Open:     "06:30AM",
		Close:    "09:00PM",
		WiFi:     domain.AmenityYes,
		Sockets:  domain.AmenityNo,
	}
	require.NoError(t, r.Create(context.Background(), c))
	return c
}

func TestCafeRepo_AmenitiesPersistAsTriState(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	cafes := repo.NewCafeRepo(db)
	c := seedCafe(t, cafes, "good-earth")

	got, err := cafes.FindByID(ctx, c.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, domain.AmenityYes, got.WiFi)
	assert.Equal(t, domain.AmenityNo, got.Sockets)
	assert.Equal(t, domain.AmenityUnknown, got.MountainViews)

	var nulls int64
	require.NoError(t, db.Model(&domain.Cafe{}).Where("mountain_views IS NULL").Count(&nulls).Error)
	assert.EqualValues(t, 1, nulls)
}

func TestCafeRepo_FindMissingReturnsNil(t *testing.T) {
	cafes := repo.NewCafeRepo(testutil.NewDB(t))
	c, err := cafes.FindByID(context.Background(), 42)
	assert.NoError(t, err)
	assert.Nil(t, c)

	c, err = cafes.FindByName(context.Background(), "nope")
	assert.NoError(t, err)
	assert.Nil(t, c)
}

func TestCafeRepo_DuplicateNameIsDuplicateKey(t *testing.T) {
	cafes := repo.NewCafeRepo(testutil.NewDB(t))
	seedCafe(t, cafes, "dup")

	err := cafes.Create(context.Background(), &domain.Cafe{
		Name: "dup", Location: "elsewhere", MapsURL: "https://m/2", ImageURL: "https://i/2", Open: "07:00AM", Close: "05:00PM",
	})
	require.Error(t, err)
	assert.True(t, repo.IsDuplicateKey(err))
}

func TestCafeRepo_UpdateHours(t *testing.T) {
	ctx := context.Background()
	cafes := repo.NewCafeRepo(testutil.NewDB(t))
	c := seedCafe(t, cafes, "hours")

	ok, err := cafes.UpdateHours(ctx, c.ID, domain.HoursClose, "11:00PM")
	require.NoError(t, err)
	assert.True(t, ok)

	got, _ := cafes.FindByID(ctx, c.ID)
	assert.Equal(t, "11:00PM", got.Close)
	assert.Equal(t, "06:30AM", got.Open)

	ok, err = cafes.UpdateHours(ctx, 999, domain.HoursOpen, "x")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = cafes.UpdateHours(ctx, c.ID, domain.HoursField("name"), "x")
	assert.Error(t, err)
}

// 模拟 MySQL 默认行为：值没变的行不计入 RowsAffected
func TestCafeRepo_UpdateHoursSameValue(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	require.NoError(t, db.Callback().Update().After("gorm:update").Register("test:changed_rows_only", func(tx *gorm.DB) {
		tx.RowsAffected = 0
	}))
	cafes := repo.NewCafeRepo(db)
	c := seedCafe(t, cafes, "same")

	for i := 0; i < 2; i++ {
		ok, err := cafes.UpdateHours(ctx, c.ID, domain.HoursOpen, "06:30AM")
		require.NoError(t, err)
		assert.True(t, ok)
	}

	ok, err := cafes.UpdateHours(ctx, 999, domain.HoursOpen, "06:30AM")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDeleteCascadesReviews(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	cafes, users, reviews := repo.NewCafeRepo(db), repo.NewUserRepo(db), repo.NewReviewRepo(db)

	a := seedCafe(t, cafes, "a")
	b := seedCafe(t, cafes, "b")
	u := &domain.User{Email: "u@example.com", Name: "U", PasswordHash: "x", Role: domain.RoleUser}
	v := &domain.User{Email: "v@example.com", Name: "V", PasswordHash: "x", Role: domain.RoleUser}
	require.NoError(t, users.Create(ctx, u))
	require.NoError(t, users.Create(ctx, v))

	for _, rv := range []*domain.Review{
		{Date: "October 15, 2026", Body: "u on a", AuthorID: u.ID, CafeID: a.ID},
		{Date: "October 15, 2026", Body: "v on a", AuthorID: v.ID, CafeID: a.ID},
		{Date: "October 15, 2026", Body: "u on b", AuthorID: u.ID, CafeID: b.ID},
	} {
		require.NoError(t, reviews.Create(ctx, rv))
	}

	onA, err := reviews.ListByCafe(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, onA, 2)
	require.NotNil(t, onA[0].Author)
	assert.Equal(t, "U", onA[0].Author.Name)

	ok, err := cafes.DeleteWithReviews(ctx, a.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	onA, _ = reviews.ListByCafe(ctx, a.ID)
	assert.Empty(t, onA)

	ok, err = users.DeleteWithReviews(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	byU, _ := reviews.ListByAuthor(ctx, u.ID)
	assert.Empty(t, byU)

	var left int64
	require.NoError(t, db.Model(&domain.Review{}).Count(&left).Error)
	assert.Zero(t, left)

	ok, err = cafes.DeleteWithReviews(ctx, a.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestUserRepo_CountAndRole(t *testing.T) {
	ctx := context.Background()
	users := repo.NewUserRepo(testutil.NewDB(t))

	n, err := users.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	u := &domain.User{Email: "a@example.com", Name: "A", PasswordHash: "x", Role: domain.RoleUser}
	require.NoError(t, users.Create(ctx, u))
	require.NoError(t, users.UpdateRole(ctx, u.ID, domain.RoleAdmin))

	got, err := users.FindByEmail(ctx, "a@example.com")
	require.NoError(t, err)
	assert.True(t, got.IsAdmin())

	missing, err := users.FindByEmail(ctx, "b@example.com")
	assert.NoError(t, err)
	assert.Nil(t, missing)
}
