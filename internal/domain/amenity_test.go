package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAmenity_ValueRoundTrip(t *testing.T) {
	for _, a := range []Amenity{AmenityYes, AmenityNo, AmenityUnknown} {
		v, err := a.Value()
		require.NoError(t, err)

		var got Amenity
		require.NoError(t, got.Scan(v))
		assert.Equal(t, a, got, a.String())
	}
}

func TestAmenity_ScanDriverShapes(t *testing.T) {
	var a Amenity
	require.NoError(t, a.Scan(int64(1)))
	assert.Equal(t, AmenityYes, a)
	require.NoError(t, a.Scan([]byte("0")))
	assert.Equal(t, AmenityNo, a)
	require.NoError(t, a.Scan(nil))
	assert.Equal(t, AmenityUnknown, a)
	assert.Error(t, a.Scan(3.14))
}

func TestCafe_JSONShape(t *testing.T) {
	c := Cafe{ID: 1, Name: "Test Cafe", Open: "06:30AM", Close: "09:00PM", WiFi: AmenityYes, Sockets: AmenityNo}
	b, err := json.Marshal(c)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(b, &m))
	assert.Equal(t, true, m["wifi"])
	assert.Equal(t, false, m["sockets"])
	assert.Contains(t, m, "mountain_views")
	assert.Nil(t, m["mountain_views"])
}

func TestReviewDate(t *testing.T) {
	d := time.Date(2026, time.October, 5, 9, 0, 0, 0, time.UTC)
	assert.Equal(t, "October 05, 2026", ReviewDate(d))
}
