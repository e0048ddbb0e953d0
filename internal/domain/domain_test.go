package domain

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCategoryWireRoundTripCoversEveryValue(t *testing.T) {
	seen := map[string]bool{}
	for _, c := range Categories() {
		s, err := c.Wire()
		require.NoError(t, err)
		require.False(t, seen[s], "duplicate wire string %s", s)
		seen[s] = true

		back, err := ParseCategory(s)
		require.NoError(t, err)
		require.Equal(t, c, back)
	}
	require.Len(t, seen, 10)
}

func TestCategoryUnknownFailsAtSerialization(t *testing.T) {
	_, err := json.Marshal(VendorRecord{Name: "x"})
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrUnknownCategory))

	_, err = json.Marshal(VendorRecord{Category: CategoryVenue})
	require.NoError(t, err)
}

func TestParseCategoryIsCaseInsensitive(t *testing.T) {
	c, err := ParseCategory("  catering ")
	require.NoError(t, err)
	require.Equal(t, CategoryCatering, c)

	_, err = ParseCategory("Florist")
	require.ErrorIs(t, err, ErrUnknownCategory)
}

func TestRoleDefaultsToCustomer(t *testing.T) {
	r, err := ParseRole("")
	require.NoError(t, err)
	require.Equal(t, RoleCustomer, r)

	var u User
	require.NoError(t, json.Unmarshal([]byte(`{"id":"u1","role":"vendor"}`), &u))
	require.Equal(t, RoleVendor, u.Role)

	require.Error(t, json.Unmarshal([]byte(`{"role":"admin"}`), &u))
}

func TestTimestampAcceptsZonelessISO(t *testing.T) {
	var v Vendor
	body := `{"id":"v1","category":"Venue","created_at":"2025-03-01T10:20:30.123456"}`
	require.NoError(t, json.Unmarshal([]byte(body), &v))
	require.Equal(t, 2025, v.CreatedAt.Year())
	require.Equal(t, time.March, v.CreatedAt.Month())
	require.Equal(t, 10, v.CreatedAt.Hour())

	require.NoError(t, json.Unmarshal([]byte(`{"category":"Venue","created_at":"2025-03-01T10:20:30Z"}`), &v))
	require.Equal(t, 30, v.CreatedAt.Second())
}

func TestTimestampZeroMarshalsNull(t *testing.T) {
	b, err := json.Marshal(Inquiry{ID: "i1"})
	require.NoError(t, err)
	require.Contains(t, string(b), `"created_at":null`)
}
