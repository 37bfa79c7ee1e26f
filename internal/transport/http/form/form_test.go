package form

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cafe-directory/internal/domain"
)

func bindForm[T any](t *testing.T, vals url.Values, dst *T) error {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(vals.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	c.Request = req
	return c.ShouldBind(dst)
}

func validCafe() url.Values {
	return url.Values{
		"name":           {"Test Cafe"},
		"location":       {"1 Test St"},
		"maps_url":       {"https://maps.example.com/test"},
		"image_url":      {"https://img.example.com/test.jpg"},
		"open":           {"06:30"},
		"close":          {"21:00"},
		"wifi":           {"Yes"},
		"sockets":        {"No"},
		"mountain_views": {"I don't know"},
	}
}

func TestFormatClock(t *testing.T) {
	cases := map[string]string{
		"06:30":    "06:30AM",
		"21:00":    "09:00PM",
		"00:05":    "12:05AM",
		"12:00":    "12:00PM",
		"07:15:00": "07:15AM",
		"09:00PM":  "09:00PM",
	}
	for in, want := range cases {
		got, err := FormatClock(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
		assert.Len(t, got, 7)
	}

	for _, bad := range []string{"", "25:00", "noon", "6.30"} {
		_, err := FormatClock(bad)
		assert.Error(t, err, bad)
	}
}

func TestParseAmenity(t *testing.T) {
	assert.Equal(t, domain.AmenityYes, ParseAmenity("Yes"))
	assert.Equal(t, domain.AmenityNo, ParseAmenity("No"))
	assert.Equal(t, domain.AmenityUnknown, ParseAmenity("I don't know"))
	assert.Panics(t, func() { ParseAmenity("Maybe") })
	assert.Panics(t, func() { ParseAmenity("") })
}

func TestCafeForm_TestCafeScenario(t *testing.T) {
	var f CafeForm
	require.NoError(t, bindForm(t, validCafe(), &f))

	c, err := f.ToCafe()
	require.NoError(t, err)
	assert.Equal(t, "Test Cafe", c.Name)
	assert.Equal(t, "06:30AM", c.Open)
	assert.Equal(t, "09:00PM", c.Close)
	assert.Equal(t, domain.AmenityYes, c.WiFi)
	assert.Equal(t, domain.AmenityNo, c.Sockets)
	assert.Equal(t, domain.AmenityUnknown, c.MountainViews)
}

func TestCafeForm_AmenityDefaultsToUnknown(t *testing.T) {
	vals := validCafe()
	vals.Del("wifi")
	vals.Del("sockets")
	vals.Del("mountain_views")

	var f CafeForm
	require.NoError(t, bindForm(t, vals, &f))
	c, err := f.ToCafe()
	require.NoError(t, err)
	assert.False(t, c.WiFi.Known())
	assert.False(t, c.Sockets.Known())
	assert.False(t, c.MountainViews.Known())
}

func TestCafeForm_FieldErrors(t *testing.T) {
	vals := validCafe()
	vals.Set("maps_url", "not a url")
	vals.Set("image_url", "ftp//missing-colon")
	vals.Set("name", "")
	vals.Set("open", "later")
	vals.Set("wifi", "Maybe")

	var f CafeForm
	errs := ErrorsOf(bindForm(t, vals, &f))
	assert.Equal(t, "Please provide a URL", errs["maps_url"])
	assert.Equal(t, "Please provide a URL", errs["image_url"])
	assert.Equal(t, "This field is required.", errs["name"])
	assert.Contains(t, errs, "open")
	assert.Contains(t, errs, "wifi")
	assert.NotContains(t, errs, "location")
}

func TestSignUpForm(t *testing.T) {
	var f SignUpForm
	errs := ErrorsOf(bindForm(t, url.Values{"email": {"nope"}, "name": {"A"}}, &f))
	assert.Equal(t, "Please provide a valid email address.", errs["email"])
	assert.Equal(t, "This field is required.", errs["password"])

	f = SignUpForm{}
	assert.NoError(t, bindForm(t, url.Values{"email": {"a@b.co"}, "password": {"x"}, "name": {"A"}}, &f))
}

func TestErrorsOf_NonValidationError(t *testing.T) {
	assert.Nil(t, ErrorsOf(nil))
	errs := ErrorsOf(assert.AnError)
	assert.Contains(t, errs, FormKey)
}
