package discovery_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quadrago-discovery/internal/discovery"
	"github.com/quadrago-discovery/internal/domain"
)

func TestFilter_SportAndLocation(t *testing.T) {
	criteria := domain.DefaultCriteria()
	criteria.Sport = "tennis"
	criteria.Location = &domain.LocationFilter{Point: barcelona, RadiusKm: 10}

	results := discovery.Filter(scenarioCatalog(), criteria, nil)

	require.Len(t, results, 1)
	assert.Equal(t, "B", results[0].ID)
	require.NotNil(t, results[0].DistanceKm)
	assert.Less(t, *results[0].DistanceKm, 5.0)
	assert.Nil(t, results[0].Available, "availability annotation only for time-bound criteria")
}

func TestFilter_EmptyResultIsNotAnError(t *testing.T) {
	criteria := domain.DefaultCriteria()
	criteria.Price.Min = 200

	results := discovery.Filter(scenarioCatalog(), criteria, nil)

	assert.NotNil(t, results)
	assert.Empty(t, results)
}

func TestFilter_DefaultCriteriaKeepsCatalogOrder(t *testing.T) {
	results := discovery.Filter(scenarioCatalog(), domain.DefaultCriteria(), nil)
	assert.Equal(t, []string{"A", "B", "C"}, ids(results))
	for _, r := range results {
		assert.Nil(t, r.DistanceKm)
	}
}

func TestFilter_PriceBounds(t *testing.T) {
	t.Run("inclusive bounds", func(t *testing.T) {
		criteria := domain.DefaultCriteria()
		criteria.Price = domain.PriceRange{Min: 25, Max: 40}
		assert.Equal(t, []string{"B", "C"}, ids(discovery.Filter(scenarioCatalog(), criteria, nil)))
	})

	t.Run("min greater than max yields nothing", func(t *testing.T) {
		criteria := domain.DefaultCriteria()
		criteria.Price = domain.PriceRange{Min: 50, Max: 10}
		assert.Empty(t, discovery.Filter(scenarioCatalog(), criteria, nil))
	})

	t.Run("minimum facility price is representative", func(t *testing.T) {
		c := center("F", "Facilities", "padel", 100, barcelona)
		c.Facilities = []domain.Facility{
			{ID: "f1", SportID: "padel", HourlyPrice: 30},
			{ID: "f2", SportID: "padel", HourlyPrice: 18},
		}
		criteria := domain.DefaultCriteria()
		criteria.Price.Max = 20
		assert.Equal(t, []string{"F"}, ids(discovery.Filter([]domain.Center{c}, criteria, nil)))
	})
}

func TestFilter_Amenities(t *testing.T) {
	criteria := domain.DefaultCriteria()
	criteria.Amenities = []string{"parking", "showers"}
	assert.Equal(t, []string{"B"}, ids(discovery.Filter(scenarioCatalog(), criteria, nil)))

	criteria.Amenities = []string{"showers"}
	assert.Equal(t, []string{"B", "C"}, ids(discovery.Filter(scenarioCatalog(), criteria, nil)))
}

func TestFilter_Availability(t *testing.T) {
	catalog := scenarioCatalog()
	criteria := domain.DefaultCriteria()
	criteria.When = timeBound("2024-03-15", "09:00", 60)
	key, ok := criteria.AvailabilityKey()
	require.True(t, ok)
	index := domain.NewAvailabilityIndex(key, "B")

	t.Run("unavailable centers excluded", func(t *testing.T) {
		results := discovery.Filter(catalog, criteria, index)
		require.Equal(t, []string{"B"}, ids(results))
		require.NotNil(t, results[0].Available)
		assert.True(t, *results[0].Available)
	})

	t.Run("showUnavailable keeps them with annotation", func(t *testing.T) {
		show := criteria.Clone()
		show.ShowUnavailable = true
		results := discovery.Filter(catalog, show, index)
		require.Equal(t, []string{"A", "B", "C"}, ids(results))
		assert.False(t, *results[0].Available)
		assert.True(t, *results[1].Available)
		assert.False(t, *results[2].Available)
	})

	t.Run("date without slot ignores availability", func(t *testing.T) {
		dateOnly := domain.DefaultCriteria()
		dateOnly.When = &domain.DateFilter{Date: mustDate("2024-03-15")}
		results := discovery.Filter(catalog, dateOnly, nil)
		assert.Len(t, results, 3)
		assert.Nil(t, results[0].Available)
	})
}

func TestFilter_AddingPredicateNeverGrowsResult(t *testing.T) {
	catalog := scenarioCatalog()
	base := domain.DefaultCriteria()

	narrowings := []func(*domain.FilterCriteria){
		func(c *domain.FilterCriteria) { c.Sport = "tennis" },
		func(c *domain.FilterCriteria) { c.Price.Max = 30 },
		func(c *domain.FilterCriteria) { c.Amenities = []string{"parking"} },
		func(c *domain.FilterCriteria) {
			c.Location = &domain.LocationFilter{Point: barcelona, RadiusKm: 5}
		},
	}

	current := base
	prev := discovery.Filter(catalog, current, nil)
	for _, narrow := range narrowings {
		next := current.Clone()
		narrow(&next)
		got := discovery.Filter(catalog, next, nil)

		assert.LessOrEqual(t, len(got), len(prev))
		for _, id := range ids(got) {
			assert.Contains(t, ids(prev), id)
		}
		current, prev = next, got
	}
}

func TestMatchCenter_DistanceReportedForExcluded(t *testing.T) {
	catalog := scenarioCatalog()
	criteria := domain.DefaultCriteria()
	criteria.Location = &domain.LocationFilter{Point: barcelona, RadiusKm: 10}

	m := discovery.MatchCenter(&catalog[0], &criteria, nil)

	assert.False(t, m.Included)
	require.NotNil(t, m.DistanceKm)
	assert.Greater(t, *m.DistanceKm, 400.0)
}
