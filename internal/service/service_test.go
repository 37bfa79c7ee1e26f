package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cafe-directory/internal/core/auth"
	"cafe-directory/internal/core/cache"
	"cafe-directory/internal/core/mailer"
	"cafe-directory/internal/domain"
	"cafe-directory/internal/repo"
	"cafe-directory/internal/service"
	"cafe-directory/internal/testutil"
)

type services struct {
	users   *service.UserService
	cafes   *service.CafeService
	reviews *service.ReviewService
}

func newServices(t *testing.T) services {
	db := testutil.NewDB(t)
	cafeRepo, userRepo, reviewRepo := repo.NewCafeRepo(db), repo.NewUserRepo(db), repo.NewReviewRepo(db)
	return services{
		users:   service.NewUserService(userRepo, auth.Hasher{Iterations: 1000}),
		cafes:   service.NewCafeService(cafeRepo, nil, nil),
		reviews: service.NewReviewService(reviewRepo, cafeRepo, userRepo),
	}
}

func testCafe(name string) *domain.Cafe {
	return &domain.Cafe{
		Name: name, Location: name + " ave", MapsURL: "https://maps.example/" + name,
		ImageURL: "https://img.example/" + name, Open: "06:30AM", Close: "09:00PM",
	}
}

func TestRegister_FirstUserIsAdmin(t *testing.T) {
	ctx := context.Background()
	s := newServices(t)

	first, err := s.users.Register(ctx, "Admin@Example.com ", "pw", "Admin")
	require.NoError(t, err)
	assert.EqualValues(t, 1, first.ID)
	assert.Equal(t, domain.RoleAdmin, first.Role)
	assert.Equal(t, "admin@example.com", first.Email)
	assert.NotEqual(t, "pw", first.PasswordHash)

	second, err := s.users.Register(ctx, "guest@example.com", "pw", "Guest")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, second.Role)
}

func TestRegister_DuplicateEmailCreatesNoRow(t *testing.T) {
	ctx := context.Background()
	s := newServices(t)

	_, err := s.users.Register(ctx, "a@example.com", "pw", "A")
	require.NoError(t, err)
	_, err = s.users.Register(ctx, "A@example.com", "other", "A2")
	assert.ErrorIs(t, err, service.ErrEmailTaken)

	all, err := s.users.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()
	s := newServices(t)
	_, err := s.users.Register(ctx, "a@example.com", "right", "A")
	require.NoError(t, err)

	u, err := s.users.Authenticate(ctx, "a@example.com", "right")
	require.NoError(t, err)
	assert.Equal(t, "A", u.Name)

	_, err = s.users.Authenticate(ctx, "a@example.com", "wrong")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	_, err = s.users.Authenticate(ctx, "nobody@example.com", "right")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
}

func TestGrantAdmin(t *testing.T) {
	ctx := context.Background()
	s := newServices(t)
	_, _ = s.users.Register(ctx, "first@example.com", "pw", "F")
	_, _ = s.users.Register(ctx, "second@example.com", "pw", "S")

	u, err := s.users.GrantAdmin(ctx, "second@example.com")
	require.NoError(t, err)
	assert.True(t, u.IsAdmin())

	_, err = s.users.GrantAdmin(ctx, "ghost@example.com")
	assert.ErrorIs(t, err, service.ErrUserNotFound)
}

func TestCafeService_AddDuplicateAndSearch(t *testing.T) {
	ctx := context.Background()
	s := newServices(t)

	require.NoError(t, s.cafes.Add(ctx, testCafe("Good Earth")))
	assert.ErrorIs(t, s.cafes.Add(ctx, testCafe("Good Earth")), service.ErrDuplicateCafe)

	dupURL := testCafe("Other")
	dupURL.MapsURL = "https://maps.example/Good Earth"
	assert.ErrorIs(t, s.cafes.Add(ctx, dupURL), service.ErrDuplicateCafe)

	c, err := s.cafes.SearchByName(ctx, "Good Earth")
	require.NoError(t, err)
	assert.Equal(t, "Good Earth", c.Name)

	_, err = s.cafes.SearchByName(ctx, "Good")
	assert.ErrorIs(t, err, service.ErrCafeNotFound)
	_, err = s.cafes.SearchByName(ctx, "")
	assert.ErrorIs(t, err, service.ErrCafeNotFound)
}

func TestCafeService_UpdateHoursAndDelete(t *testing.T) {
	ctx := context.Background()
	s := newServices(t)
	c := testCafe("Wild Flour")
	require.NoError(t, s.cafes.Add(ctx, c))

	require.NoError(t, s.cafes.UpdateHours(ctx, c.ID, domain.HoursOpen, "7am-ish"))
	got, err := s.cafes.Get(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "7am-ish", got.Open)

	assert.ErrorIs(t, s.cafes.UpdateHours(ctx, c.ID, domain.HoursOpen, ""), service.ErrEmptyValue)
	assert.ErrorIs(t, s.cafes.UpdateHours(ctx, c.ID, domain.HoursOpen, "06:30 in the morning"), service.ErrValueTooLong)
	assert.ErrorIs(t, s.cafes.UpdateHours(ctx, 99, domain.HoursClose, "x"), service.ErrCafeNotFound)

	require.NoError(t, s.cafes.Delete(ctx, c.ID))
	assert.ErrorIs(t, s.cafes.Delete(ctx, c.ID), service.ErrCafeNotFound)
	_, err = s.cafes.Get(ctx, c.ID)
	assert.ErrorIs(t, err, service.ErrCafeNotFound)
}

func TestCafeService_RedisCacheFollowsWrites(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	rc := cache.New(mr.Addr(), "", 0, time.Minute)
	t.Cleanup(func() { _ = rc.Close() })
	cafes := service.NewCafeService(repo.NewCafeRepo(testutil.NewDB(t)), rc, nil)

	_, err := cafes.SearchByName(ctx, "Wild Flour")
	assert.ErrorIs(t, err, service.ErrCafeNotFound)
	list, err := cafes.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	c := testCafe("Wild Flour")
	require.NoError(t, cafes.Add(ctx, c))
	got, err := cafes.SearchByName(ctx, "Wild Flour")
	require.NoError(t, err)
	assert.Equal(t, c.ID, got.ID)
	list, err = cafes.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, cafes.UpdateHours(ctx, c.ID, domain.HoursClose, "10:00PM"))
	list, err = cafes.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, "10:00PM", list[0].Close)

	require.NoError(t, cafes.Delete(ctx, c.ID))
	list, err = cafes.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

// redis 不可用时退回直接读库
func TestCafeService_RedisDownFallsBackToStore(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	rc := cache.New(mr.Addr(), "", 0, time.Minute)
	t.Cleanup(func() { _ = rc.Close() })
	cafes := service.NewCafeService(repo.NewCafeRepo(testutil.NewDB(t)), rc, nil)
	mr.Close()

	require.NoError(t, cafes.Add(ctx, testCafe("Whitebark")))
	list, err := cafes.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestReviewService(t *testing.T) {
	ctx := context.Background()
	s := newServices(t)
	c := testCafe("Whitebark")
	require.NoError(t, s.cafes.Add(ctx, c))
	u, err := s.users.Register(ctx, "r@example.com", "pw", "Reviewer")
	require.NoError(t, err)

	_, err = s.reviews.Add(ctx, nil, c.ID, "anon")
	assert.ErrorIs(t, err, service.ErrUnauthenticated)
	_, err = s.reviews.Add(ctx, u, 404, "lost")
	assert.ErrorIs(t, err, service.ErrCafeNotFound)

	rv, err := s.reviews.Add(ctx, u, c.ID, "<p>Great <b>espresso</b></p>")
	require.NoError(t, err)
	assert.NotEmpty(t, rv.Date)

	list, err := s.reviews.ListForCafe(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Reviewer", list[0].Author.Name)

	author, byUser, err := s.reviews.ListByAuthor(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.ID, author.ID)
	assert.Len(t, byUser, 1)
	_, _, err = s.reviews.ListByAuthor(ctx, 77)
	assert.ErrorIs(t, err, service.ErrUserNotFound)

	deleted, err := s.reviews.Delete(ctx, rv.ID)
	require.NoError(t, err)
	assert.Equal(t, c.ID, deleted.CafeID)
	_, err = s.reviews.Delete(ctx, rv.ID)
	assert.ErrorIs(t, err, service.ErrReviewNotFound)
}

type captureSender struct{ got []mailer.Message }

func (c *captureSender) Send(_ context.Context, m mailer.Message) error {
	c.got = append(c.got, m)
	return nil
}

func TestContactService_FormatsPlainText(t *testing.T) {
	cs := &captureSender{}
	err := service.NewContactService(cs).Send(context.Background(), service.ContactMessage{
		Name: "Ann", Email: "ann@example.com", Phone: "555", Message: "Add my cafe",
	})
	require.NoError(t, err)
	require.Len(t, cs.got, 1)
	assert.Equal(t, "New Message", cs.got[0].Subject)
	assert.Equal(t, "Name: Ann\nEmail: ann@example.com\nPhone: 555\nMessage: Add my cafe", cs.got[0].Body)
}
