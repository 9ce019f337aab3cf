package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterCriteria_AvailabilityKey(t *testing.T) {
	c := DefaultCriteria()
	_, ok := c.AvailabilityKey()
	assert.False(t, ok)

	c.When = &DateFilter{Date: Date{Year: 2024, Month: 3, Day: 15}}
	assert.False(t, c.IsTimeBound())

	c.When.Slot = &SlotFilter{Start: ClockTime{Hour: 9}, DurationMinutes: 90}
	key, ok := c.AvailabilityKey()
	require.True(t, ok)
	assert.Equal(t, "2024-03-15T09:00/90", key.String())
}

func TestFilterCriteria_Clone(t *testing.T) {
	c := DefaultCriteria()
	c.When = &DateFilter{
		Date: Date{Year: 2024, Month: 3, Day: 15},
		Slot: &SlotFilter{Start: ClockTime{Hour: 9}, DurationMinutes: 60},
	}
	c.Location = &LocationFilter{Point: Point{Lat: 1, Lon: 2}, RadiusKm: 5}
	c.Amenities = []string{"parking"}

	clone := c.Clone()
	require.Equal(t, c, clone)

	clone.When.Slot.DurationMinutes = 120
	clone.When.Date.Day = 16
	clone.Location.RadiusKm = 50
	clone.Amenities[0] = "sauna"

	assert.Equal(t, 60, c.When.Slot.DurationMinutes)
	assert.Equal(t, 15, c.When.Date.Day)
	assert.Equal(t, 5.0, c.Location.RadiusKm)
	assert.Equal(t, "parking", c.Amenities[0])
}

func TestPriceRange_Contains(t *testing.T) {
	r := PriceRange{Min: 10, Max: 50}
	assert.True(t, r.Contains(10))
	assert.True(t, r.Contains(50))
	assert.False(t, r.Contains(9.99))
	assert.False(t, r.Contains(50.01))

	inverted := PriceRange{Min: 50, Max: 10}
	assert.False(t, inverted.Contains(30))
}

func TestNormalizeAmenities(t *testing.T) {
	assert.Nil(t, NormalizeAmenities(nil))
	assert.Nil(t, NormalizeAmenities([]string{"", ""}))
	assert.Equal(t, []string{"b", "a"}, NormalizeAmenities([]string{"b", "", "a", "b"}))
}

func TestEnums(t *testing.T) {
	assert.True(t, ViewMap.Valid())
	assert.False(t, View("grid").Valid())
	assert.True(t, SortPrice.Valid())
	assert.False(t, SortBy("").Valid())
}

func TestAvailabilityIndex(t *testing.T) {
	var nilIndex *AvailabilityIndex
	assert.False(t, nilIndex.Contains("x"))
	assert.Equal(t, 0, nilIndex.Len())

	idx := NewAvailabilityIndex(AvailabilityKey{}, "a")
	idx.Add("b")
	assert.True(t, idx.Contains("a"))
	assert.True(t, idx.Contains("b"))
	assert.Equal(t, 2, idx.Len())

	assert.True(t, AnyAvailable([]Slot{{IsAvailable: false}, {IsAvailable: true}}))
	assert.False(t, AnyAvailable(nil))
}

func TestAvailabilityChangedEvent_DateScopeBasic(t *testing.T) {
	d, ok := AvailabilityChangedEvent{CenterID: "c1", Date: "2024-03-15"}.DateScope()
	assert.True(t, ok)
	assert.Equal(t, 15, d.Day)

	_, ok = AvailabilityChangedEvent{CenterID: "c1"}.DateScope()
	assert.False(t, ok)

	_, ok = AvailabilityChangedEvent{CenterID: "c1", Date: "tomorrow"}.DateScope()
	assert.False(t, ok)
}
