package discovery

import (
	"cmp"
	"slices"

	"github.com/quadrago-discovery/internal/domain"
)

// Sort упорядочивает результаты на месте согласно criteria.SortBy. Сортировка стабильная.
// relevance сохраняет порядок каталога; distance без опорной точки ведёт себя как relevance.
func Sort(results []domain.FilteredCenter, criteria domain.FilterCriteria) {
	switch criteria.SortBy {
	case domain.SortDistance:
		if criteria.Location == nil {
			return
		}
		slices.SortStableFunc(results, func(a, b domain.FilteredCenter) int {
			return cmp.Compare(distanceOf(a), distanceOf(b))
		})
	case domain.SortPrice:
		slices.SortStableFunc(results, func(a, b domain.FilteredCenter) int {
			if c := cmp.Compare(a.RepresentativePrice(), b.RepresentativePrice()); c != 0 {
				return c
			}
			return cmp.Compare(a.Name, b.Name)
		})
	}
}

func distanceOf(fc domain.FilteredCenter) float64 {
	if fc.DistanceKm == nil {
		return 0
	}
	return *fc.DistanceKm
}
