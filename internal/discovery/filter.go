// Package discovery implements the center discovery engine: filtering, sorting,
// availability resolution and the query-string codec of filter state.
package discovery

import (
	"github.com/quadrago-discovery/internal/domain"
	"github.com/quadrago-discovery/internal/pkg/utils"
)

// Match - результат проверки одного центра
type Match struct {
	Included   bool
	DistanceKm *float64
}

// MatchCenter применяет все активные предикаты (логическое И) к центру.
// Расстояние считается один раз и возвращается всегда, когда задана опорная точка,
// даже если центр отсеян другим предикатом.
func MatchCenter(center *domain.Center, criteria *domain.FilterCriteria, index *domain.AvailabilityIndex) Match {
	var m Match

	if criteria.Location != nil {
		d := utils.DistanceKm(criteria.Location.Lat, criteria.Location.Lon, center.Location.Lat, center.Location.Lon)
		m.DistanceKm = &d
	}

	if criteria.Sport != "" && !center.OffersSport(criteria.Sport) {
		return m
	}

	if !criteria.Price.Contains(center.RepresentativePrice()) {
		return m
	}

	if m.DistanceKm != nil && *m.DistanceKm > criteria.Location.RadiusKm {
		return m
	}

	if len(criteria.Amenities) > 0 && !center.HasAmenities(criteria.Amenities) {
		return m
	}

	if criteria.IsTimeBound() && !criteria.ShowUnavailable && !index.Contains(center.ID) {
		return m
	}

	m.Included = true
	return m
}

// Filter возвращает прошедшие фильтр центры в порядке каталога с аннотациями
func Filter(centers []domain.Center, criteria domain.FilterCriteria, index *domain.AvailabilityIndex) []domain.FilteredCenter {
	out := make([]domain.FilteredCenter, 0, len(centers))
	timeBound := criteria.IsTimeBound()

	for i := range centers {
		m := MatchCenter(&centers[i], &criteria, index)
		if !m.Included {
			continue
		}

		fc := domain.FilteredCenter{
			Center:     centers[i],
			DistanceKm: m.DistanceKm,
		}
		if timeBound {
			available := index.Contains(centers[i].ID)
			fc.Available = &available
		}
		out = append(out, fc)
	}

	return out
}
