package discovery_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/quadrago-discovery/internal/discovery"
	"github.com/quadrago-discovery/internal/domain"
	apperrors "github.com/quadrago-discovery/internal/pkg/errors"
)

func newTestEngine(t *testing.T, query string, avail *gatedAvailability, opts ...discovery.EngineOption) (*discovery.Engine, *discovery.MemoryNavigator) {
	t.Helper()

	catalog := &MockCatalogRepository{}
	catalog.On("GetCenters", mock.Anything).Return(scenarioCatalog(), nil)
	catalog.On("GetSports", mock.Anything).Return([]domain.Sport{
		{ID: "tennis", Name: "Tennis"},
		{ID: "basketball", Name: "Basketball"},
	}, nil)

	logger := zap.NewNop()
	nav := discovery.NewMemoryNavigator(query)
	resolver := discovery.NewAvailabilityResolver(avail, logger)
	engine := discovery.NewEngine(catalog, resolver, nav, logger, opts...)
	t.Cleanup(engine.Close)

	return engine, nav
}

func TestEngine_Load(t *testing.T) {
	ctx := context.Background()

	t.Run("initial state from query", func(t *testing.T) {
		engine, nav := newTestEngine(t, "?sport=tennis&sortBy=price", newGatedAvailability())

		before := engine.Snapshot()
		assert.Equal(t, discovery.StateLoading, before.State)
		assert.True(t, before.Loading)
		assert.Nil(t, before.Results)

		snap := engine.Load(ctx)
		assert.Equal(t, discovery.StateIdle, snap.State)
		assert.Equal(t, []string{"A", "B"}, ids(snap.Results))
		assert.Equal(t, 2, snap.Total)
		assert.False(t, snap.Empty)
		assert.Equal(t, "sport=tennis&sortBy=price", snap.Query)
		assert.Equal(t, 0, nav.Replaces(), "load does not rewrite the address")
		assert.Len(t, engine.Sports(), 2)
	})

	t.Run("failure then retry", func(t *testing.T) {
		catalog := &MockCatalogRepository{}
		catalog.On("GetCenters", mock.Anything).Return(nil, errors.New("connection refused")).Once()
		catalog.On("GetCenters", mock.Anything).Return(scenarioCatalog(), nil)
		catalog.On("GetSports", mock.Anything).Return([]domain.Sport{}, nil)

		logger := zap.NewNop()
		engine := discovery.NewEngine(catalog,
			discovery.NewAvailabilityResolver(newGatedAvailability(), logger),
			discovery.NewMemoryNavigator(""), logger)
		defer engine.Close()

		failed := engine.Load(ctx)
		assert.Equal(t, discovery.StateFailed, failed.State)
		require.NotNil(t, failed.Error)
		assert.True(t, errors.Is(failed.Error, apperrors.ErrCatalogLoad))
		assert.Nil(t, failed.Results)

		ok := engine.Load(ctx)
		assert.Equal(t, discovery.StateIdle, ok.State)
		assert.Nil(t, ok.Error)
		assert.Len(t, ok.Results, 3)
	})

	t.Run("mutations before load are kept", func(t *testing.T) {
		engine, nav := newTestEngine(t, "", newGatedAvailability())

		snap := engine.SetSport(ctx, "basketball")
		assert.Equal(t, discovery.StateLoading, snap.State)
		assert.Equal(t, "sport=basketball", nav.ReadQuery())

		loaded := engine.Load(ctx)
		assert.Equal(t, []string{"C"}, ids(loaded.Results))
	})
}

func TestEngine_MutationsRewriteAddress(t *testing.T) {
	ctx := context.Background()
	engine, nav := newTestEngine(t, "", newGatedAvailability())
	engine.Load(ctx)

	engine.SetSport(ctx, "tennis")
	engine.SetPriceRange(ctx, domain.PriceRange{Min: 10, Max: 100})
	snap := engine.SetView(ctx, domain.ViewMap)

	assert.Equal(t, 3, nav.Replaces())
	assert.Equal(t, "sport=tennis&minPrice=10&maxPrice=100&view=map", nav.ReadQuery())
	assert.Equal(t, nav.ReadQuery(), snap.Query)
	assert.Equal(t, discovery.Decode(nav.ReadQuery()), snap.Criteria)
}

func TestEngine_Amenities(t *testing.T) {
	ctx := context.Background()
	engine, _ := newTestEngine(t, "", newGatedAvailability())
	engine.Load(ctx)

	snap := engine.ToggleAmenity(ctx, "showers")
	assert.Equal(t, []string{"B", "C"}, ids(snap.Results))

	snap = engine.ToggleAmenity(ctx, "parking")
	assert.Equal(t, []string{"B"}, ids(snap.Results))

	snap = engine.ToggleAmenity(ctx, "showers")
	assert.Equal(t, []string{"parking"}, snap.Criteria.Amenities)
	assert.Equal(t, []string{"A", "B"}, ids(snap.Results))

	snap = engine.SetAmenities(ctx, []string{"showers", "showers", ""})
	assert.Equal(t, []string{"showers"}, snap.Criteria.Amenities)
}

func TestEngine_EmptyResult(t *testing.T) {
	ctx := context.Background()
	engine, _ := newTestEngine(t, "", newGatedAvailability())
	engine.Load(ctx)

	snap := engine.SetPriceRange(ctx, domain.PriceRange{Min: 200, Max: domain.DefaultMaxPrice})

	assert.Equal(t, discovery.StateIdle, snap.State)
	assert.Nil(t, snap.Error)
	assert.True(t, snap.Empty)
	assert.NotNil(t, snap.Results)
	assert.Empty(t, snap.Results)
}

func TestEngine_SlotRequiresDate(t *testing.T) {
	ctx := context.Background()
	engine, nav := newTestEngine(t, "", newGatedAvailability())
	engine.Load(ctx)

	_, err := engine.SetSlot(ctx, &domain.SlotFilter{Start: mustClock("09:00"), DurationMinutes: 60})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrInvalidRequest))
	assert.Equal(t, 0, nav.Replaces())
}

func TestEngine_AvailabilityResolution(t *testing.T) {
	ctx := context.Background()
	avail := newGatedAvailability("B")
	engine, nav := newTestEngine(t, "", avail)
	engine.Load(ctx)

	engine.SetDate(ctx, mustDate("2024-03-15"))
	assert.Equal(t, 0, avail.Calls(), "date alone does not query availability")

	snap, err := engine.SetSlot(ctx, &domain.SlotFilter{Start: mustClock("09:00"), DurationMinutes: 60})
	require.NoError(t, err)
	assert.Equal(t, discovery.StateIdle, snap.State)
	assert.Equal(t, []string{"B"}, ids(snap.Results))
	assert.Equal(t, 3, avail.Calls())
	assert.Equal(t, "date=2024-03-15&startTime=09%3A00&duration=60", nav.ReadQuery())

	t.Run("same key reuses index", func(t *testing.T) {
		snap := engine.SetShowUnavailable(ctx, true)
		assert.Equal(t, 3, avail.Calls())
		assert.Equal(t, []string{"A", "B", "C"}, ids(snap.Results))
		require.NotNil(t, snap.Results[0].Available)
		assert.False(t, *snap.Results[0].Available)
		assert.True(t, *snap.Results[1].Available)
	})

	t.Run("clearing date drops availability", func(t *testing.T) {
		snap := engine.ClearDate(ctx)
		assert.Nil(t, snap.Criteria.When)
		assert.Len(t, snap.Results, 3)
		assert.Nil(t, snap.Results[0].Available)
	})
}

func TestEngine_StaleResolutionDiscarded(t *testing.T) {
	ctx := context.Background()
	avail := newGatedAvailability("A@09:00", "B@10:00")
	gate := avail.gate("09:00")
	engine, _ := newTestEngine(t, "date=2024-03-15", avail)
	engine.Load(ctx)

	firstDone := make(chan discovery.Snapshot, 1)
	go func() {
		snap, _ := engine.SetSlot(ctx, &domain.SlotFilter{Start: mustClock("09:00"), DurationMinutes: 60})
		firstDone <- snap
	}()

	select {
	case start := <-avail.started:
		require.Equal(t, "09:00", start)
	case <-time.After(2 * time.Second):
		t.Fatal("first resolution did not start")
	}

	inFlight := engine.Snapshot()
	assert.Equal(t, discovery.StateResolving, inFlight.State)
	assert.True(t, inFlight.AvailabilityResolving)
	assert.Nil(t, inFlight.Results)

	second, err := engine.SetSlot(ctx, &domain.SlotFilter{Start: mustClock("10:00"), DurationMinutes: 60})
	require.NoError(t, err)
	assert.Equal(t, discovery.StateIdle, second.State)
	assert.Equal(t, []string{"B"}, ids(second.Results))

	close(gate)

	select {
	case <-firstDone:
	case <-time.After(2 * time.Second):
		t.Fatal("first resolution did not finish")
	}

	final := engine.Snapshot()
	assert.Equal(t, discovery.StateIdle, final.State)
	assert.Equal(t, "10:00", final.Criteria.When.Slot.Start.String())
	assert.Equal(t, []string{"B"}, ids(final.Results))
}

func TestEngine_ReloadFailureDiscardsInFlightResolution(t *testing.T) {
	ctx := context.Background()

	catalog := &MockCatalogRepository{}
	catalog.On("GetCenters", mock.Anything).Return(scenarioCatalog(), nil).Once()
	catalog.On("GetCenters", mock.Anything).Return(nil, errors.New("connection reset"))
	catalog.On("GetSports", mock.Anything).Return([]domain.Sport{}, nil)

	avail := newGatedAvailability("A", "B", "C")
	gate := avail.gate("09:00")

	logger := zap.NewNop()
	engine := discovery.NewEngine(catalog,
		discovery.NewAvailabilityResolver(avail, logger),
		discovery.NewMemoryNavigator("date=2024-03-15"), logger)
	defer engine.Close()

	require.Equal(t, discovery.StateIdle, engine.Load(ctx).State)

	resolved := make(chan struct{})
	go func() {
		defer close(resolved)
		_, _ = engine.SetSlot(ctx, &domain.SlotFilter{Start: mustClock("09:00"), DurationMinutes: 60})
	}()

	select {
	case <-avail.started:
	case <-time.After(2 * time.Second):
		t.Fatal("resolution did not start")
	}

	failed := engine.Load(ctx)
	assert.Equal(t, discovery.StateFailed, failed.State)
	require.NotNil(t, failed.Error)

	close(gate)
	select {
	case <-resolved:
	case <-time.After(2 * time.Second):
		t.Fatal("resolution did not finish")
	}

	final := engine.Snapshot()
	assert.Equal(t, discovery.StateFailed, final.State)
	assert.True(t, errors.Is(final.Error, apperrors.ErrCatalogLoad))
	assert.False(t, final.Empty)
	assert.Nil(t, final.Results)
}

func TestEngine_ClearFilters(t *testing.T) {
	ctx := context.Background()
	engine, nav := newTestEngine(t, "sport=tennis&minPrice=30&view=map&sortBy=price&amenities=parking", newGatedAvailability())
	engine.Load(ctx)

	snap := engine.ClearFilters(ctx)

	expected := domain.DefaultCriteria()
	expected.View = domain.ViewMap
	expected.SortBy = domain.SortPrice
	assert.Equal(t, expected, snap.Criteria)
	assert.Equal(t, "view=map&sortBy=price", nav.ReadQuery())
	assert.Len(t, snap.Results, 3)
}

func TestEngine_UseCurrentLocation(t *testing.T) {
	ctx := context.Background()

	t.Run("success sets location", func(t *testing.T) {
		engine, _ := newTestEngine(t, "", newGatedAvailability())
		engine.Load(ctx)

		snap := engine.UseCurrentLocation(ctx, stubLocator{point: barcelona}, 10)
		require.NotNil(t, snap.Criteria.Location)
		assert.Equal(t, barcelona, snap.Criteria.Location.Point)
		assert.Empty(t, snap.Notice)
		assert.Equal(t, []string{"B", "C"}, ids(snap.Results))
	})

	t.Run("denied keeps criteria and sets notice", func(t *testing.T) {
		engine, nav := newTestEngine(t, "sport=tennis", newGatedAvailability())
		engine.Load(ctx)

		snap := engine.UseCurrentLocation(ctx, stubLocator{err: errors.New("permission denied")}, 10)
		assert.Nil(t, snap.Criteria.Location)
		assert.Equal(t, "tennis", snap.Criteria.Sport)
		assert.NotEmpty(t, snap.Notice)
		assert.Equal(t, []string{"A", "B"}, ids(snap.Results))
		assert.Equal(t, 0, nav.Replaces())

		dismissed := engine.DismissNotice()
		assert.Empty(t, dismissed.Notice)
	})

	t.Run("timeout clears previous location", func(t *testing.T) {
		engine, nav := newTestEngine(t, "sport=tennis&lat=41.4&lng=2.17&radius=3", newGatedAvailability(),
			discovery.WithGeolocationTimeout(20*time.Millisecond))
		engine.Load(ctx)

		snap := engine.UseCurrentLocation(ctx, stubLocator{block: true}, 10)
		assert.Nil(t, snap.Criteria.Location)
		assert.Nil(t, snap.Results[0].DistanceKm)
		assert.Equal(t, "tennis", snap.Criteria.Sport)
		assert.NotEmpty(t, snap.Notice)
		assert.Equal(t, "sport=tennis", nav.ReadQuery())
		assert.Equal(t, []string{"A", "B"}, ids(snap.Results))
	})
}

func TestEngine_DistanceSortWithoutLocation(t *testing.T) {
	ctx := context.Background()
	engine, _ := newTestEngine(t, "", newGatedAvailability())
	engine.Load(ctx)

	snap := engine.SetSortBy(ctx, domain.SortDistance)
	assert.Equal(t, discovery.StateIdle, snap.State)
	assert.Nil(t, snap.Error)
	assert.Equal(t, []string{"A", "B", "C"}, ids(snap.Results))

	snap = engine.SetLocation(ctx, barcelona, 0)
	assert.Equal(t, float64(domain.DefaultRadiusKm), snap.Criteria.Location.RadiusKm)
	assert.Equal(t, []string{"C", "B"}, ids(snap.Results))

	snap = engine.ClearLocation(ctx)
	assert.Equal(t, []string{"A", "B", "C"}, ids(snap.Results))
}

func TestEngine_MapView(t *testing.T) {
	ctx := context.Background()
	engine, _ := newTestEngine(t, "", newGatedAvailability())
	engine.Load(ctx)

	list := engine.Snapshot()
	assert.Nil(t, list.Markers)

	snap := engine.SetView(ctx, domain.ViewMap)
	require.NotEmpty(t, snap.Markers)
	total := 0
	for _, m := range snap.Markers {
		total += m.Count
	}
	assert.Equal(t, snap.Total, total)
}

func TestEngine_Close(t *testing.T) {
	ctx := context.Background()
	avail := newGatedAvailability()
	engine, _ := newTestEngine(t, "date=2024-03-15", avail)
	engine.Load(ctx)
	engine.Close()

	_, err := engine.SetSlot(ctx, &domain.SlotFilter{Start: mustClock("09:00"), DurationMinutes: 60})
	require.NoError(t, err)
	assert.Equal(t, 0, avail.Calls())
}
