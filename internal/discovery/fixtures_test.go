package discovery_test

import (
	"github.com/quadrago-discovery/internal/domain"
)

var barcelona = domain.Point{Lat: 41.3851, Lon: 2.1734}

func center(id, name, sportID string, price float64, loc domain.Point, amenities ...string) domain.Center {
	return domain.Center{
		ID:        id,
		Name:      name,
		Location:  loc,
		Sports:    []domain.SportRef{{ID: sportID, Name: sportID}},
		Amenities: amenities,
		BasePrice: price,
	}
}

// scenarioCatalog - A далеко (Мадрид), B и C в пределах 5 км от barcelona
func scenarioCatalog() []domain.Center {
	return []domain.Center{
		center("A", "Alpha Tennis", "tennis", 20, domain.Point{Lat: 40.4168, Lon: -3.7038}, "parking"),
		center("B", "Bravo Tennis", "tennis", 40, domain.Point{Lat: 41.4000, Lon: 2.1700}, "parking", "showers"),
		center("C", "Charlie Courts", "basketball", 25, domain.Point{Lat: 41.3900, Lon: 2.1800}, "showers"),
	}
}

func ids(results []domain.FilteredCenter) []string {
	out := make([]string, 0, len(results))
	for _, r := range results {
		out = append(out, r.ID)
	}
	return out
}

func mustDate(s string) domain.Date {
	d, err := domain.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func mustClock(s string) domain.ClockTime {
	c, err := domain.ParseClock(s)
	if err != nil {
		panic(err)
	}
	return c
}

func timeBound(date, start string, duration int) *domain.DateFilter {
	return &domain.DateFilter{
		Date: mustDate(date),
		Slot: &domain.SlotFilter{Start: mustClock(start), DurationMinutes: duration},
	}
}
