package memory

import (
	"context"
	"fmt"

	"github.com/quadrago-discovery/internal/domain"
	"github.com/quadrago-discovery/internal/domain/repository"
)

// SeedSports - справочник видов спорта демо-каталога
func SeedSports() []domain.Sport {
	return []domain.Sport{
		{ID: "tennis", Name: "Tennis", Icon: "🎾"},
		{ID: "padel", Name: "Padel", Icon: "🏓"},
		{ID: "basketball", Name: "Basketball", Icon: "🏀"},
		{ID: "football", Name: "Football", Icon: "⚽"},
		{ID: "volleyball", Name: "Volleyball", Icon: "🏐"},
		{ID: "badminton", Name: "Badminton", Icon: "🏸"},
	}
}

func hours(open, close int) domain.DayHours {
	return domain.DayHours{
		Open:  domain.ClockTime{Hour: open},
		Close: domain.ClockTime{Hour: close},
	}
}

func week(weekday, weekend domain.DayHours) map[string]domain.DayHours {
	return map[string]domain.DayHours{
		"monday":    weekday,
		"tuesday":   weekday,
		"wednesday": weekday,
		"thursday":  weekday,
		"friday":    weekday,
		"saturday":  weekend,
		"sunday":    weekend,
	}
}

func ref(ids ...string) []domain.SportRef {
	names := make(map[string]string)
	for _, s := range SeedSports() {
		names[s.ID] = s.Name
	}
	out := make([]domain.SportRef, 0, len(ids))
	for _, id := range ids {
		out = append(out, domain.SportRef{ID: id, Name: names[id]})
	}
	return out
}

// SeedCenters - демо-каталог центров (Барселона), порядок задаёт релевантность
func SeedCenters() []domain.Center {
	return []domain.Center{
		{
			ID:           "ctr-001",
			Name:         "Club Tennis Diagonal",
			Address:      domain.Address{Street: "Avinguda Diagonal 640", City: "Barcelona", State: "CT", Zip: "08017"},
			Location:     domain.Point{Lat: 41.3917, Lon: 2.1349},
			Sports:       ref("tennis", "padel"),
			Amenities:    []string{"parking", "showers", "lockers", "cafe"},
			OpeningHours: week(hours(7, 23), hours(8, 21)),
			BasePrice:    30,
			Facilities: []domain.Facility{
				{ID: "ctr-001-t1", Name: "Tennis 1", SportID: "tennis", HourlyPrice: 28},
				{ID: "ctr-001-t2", Name: "Tennis 2", SportID: "tennis", HourlyPrice: 28},
				{ID: "ctr-001-p1", Name: "Padel 1", SportID: "padel", HourlyPrice: 36},
			},
		},
		{
			ID:           "ctr-002",
			Name:         "Poliesportiu Raval",
			Address:      domain.Address{Street: "Carrer de Sant Pau 56", City: "Barcelona", State: "CT", Zip: "08001"},
			Location:     domain.Point{Lat: 41.3786, Lon: 2.1699},
			Sports:       ref("basketball", "volleyball", "badminton"),
			Amenities:    []string{"showers", "lockers"},
			OpeningHours: week(hours(8, 22), hours(9, 14)),
			BasePrice:    15,
			Facilities: []domain.Facility{
				{ID: "ctr-002-b1", Name: "Main Court", SportID: "basketball", HourlyPrice: 20},
				{ID: "ctr-002-v1", Name: "Hall B", SportID: "volleyball", HourlyPrice: 18},
				{ID: "ctr-002-bd1", Name: "Hall C", SportID: "badminton", HourlyPrice: 12},
			},
		},
		{
			ID:           "ctr-003",
			Name:         "Padel Indoor Poblenou",
			Address:      domain.Address{Street: "Carrer de Pujades 120", City: "Barcelona", State: "CT", Zip: "08005"},
			Location:     domain.Point{Lat: 41.3994, Lon: 2.1976},
			Sports:       ref("padel"),
			Amenities:    []string{"parking", "showers", "cafe", "equipment rental"},
			OpeningHours: week(hours(8, 23), hours(8, 23)),
			BasePrice:    40,
			Facilities: []domain.Facility{
				{ID: "ctr-003-p1", Name: "Court 1", SportID: "padel", HourlyPrice: 44},
				{ID: "ctr-003-p2", Name: "Court 2", SportID: "padel", HourlyPrice: 40},
				{ID: "ctr-003-p3", Name: "Court 3", SportID: "padel", HourlyPrice: 40},
				{ID: "ctr-003-p4", Name: "Court 4 Panoramic", SportID: "padel", HourlyPrice: 55},
			},
		},
		{
			ID:           "ctr-004",
			Name:         "Camp Municipal Montjuïc",
			Address:      domain.Address{Street: "Passeig Olímpic 15", City: "Barcelona", State: "CT", Zip: "08038"},
			Location:     domain.Point{Lat: 41.3648, Lon: 2.1527},
			Sports:       ref("football"),
			Amenities:    []string{"parking", "showers", "lockers"},
			OpeningHours: week(hours(9, 23), hours(9, 20)),
			BasePrice:    50,
		},
		{
			ID:           "ctr-005",
			Name:         "Gràcia Sports Hub",
			Address:      domain.Address{Street: "Carrer de Verdi 30", City: "Barcelona", State: "CT", Zip: "08012"},
			Location:     domain.Point{Lat: 41.4036, Lon: 2.1571},
			Sports:       ref("tennis", "badminton", "basketball"),
			Amenities:    []string{"showers", "cafe", "wifi"},
			OpeningHours: week(hours(7, 22), domain.DayHours{Closed: true}),
			BasePrice:    22,
			Facilities: []domain.Facility{
				{ID: "ctr-005-t1", Name: "Clay Court", SportID: "tennis", HourlyPrice: 26},
				{ID: "ctr-005-bd1", Name: "Badminton Hall", SportID: "badminton", HourlyPrice: 14},
				{ID: "ctr-005-b1", Name: "Half Court", SportID: "basketball", HourlyPrice: 16},
			},
		},
		{
			ID:           "ctr-006",
			Name:         "Beach Volley Barceloneta",
			Address:      domain.Address{Street: "Passeig Marítim 8", City: "Barcelona", State: "CT", Zip: "08003"},
			Location:     domain.Point{Lat: 41.3784, Lon: 2.1925},
			Sports:       ref("volleyball"),
			Amenities:    []string{"showers", "equipment rental"},
			OpeningHours: week(hours(10, 20), hours(9, 21)),
			BasePrice:    10,
		},
		{
			ID:           "ctr-007",
			Name:         "Sant Cugat Racket Club",
			Address:      domain.Address{Street: "Carrer de la Mina 3", City: "Sant Cugat del Vallès", State: "CT", Zip: "08172"},
			Location:     domain.Point{Lat: 41.4722, Lon: 2.0861},
			Sports:       ref("tennis", "padel"),
			Amenities:    []string{"parking", "showers", "lockers", "cafe", "pool"},
			OpeningHours: week(hours(7, 23), hours(7, 23)),
			BasePrice:    35,
			Facilities: []domain.Facility{
				{ID: "ctr-007-t1", Name: "Centre Court", SportID: "tennis", HourlyPrice: 45},
				{ID: "ctr-007-p1", Name: "Padel A", SportID: "padel", HourlyPrice: 32},
			},
		},
		{
			ID:           "ctr-008",
			Name:         "Badalona Arena",
			Address:      domain.Address{Street: "Avinguda Alfons XIII 1", City: "Badalona", State: "CT", Zip: "08912"},
			Location:     domain.Point{Lat: 41.4436, Lon: 2.2362},
			Sports:       ref("basketball", "football"),
			Amenities:    []string{"parking", "lockers"},
			OpeningHours: week(hours(9, 22), hours(10, 18)),
			BasePrice:    25,
			Facilities: []domain.Facility{
				{ID: "ctr-008-b1", Name: "Arena Court", SportID: "basketball", HourlyPrice: 30},
				{ID: "ctr-008-f1", Name: "Five-a-side", SportID: "football", HourlyPrice: 42},
			},
		},
	}
}

// GenerateSlots строит слоты генератора на days дней начиная с from для каждого часа
// работы центров и каждой длительности (для заливки демо-данных в PostgreSQL)
func GenerateSlots(
	ctx context.Context,
	availability repository.AvailabilityRepository,
	centers []domain.Center,
	from domain.Date,
	days int,
	durations []int,
) ([]domain.Slot, error) {
	var out []domain.Slot
	for day := 0; day < days; day++ {
		date := domain.DateOf(from.Time().AddDate(0, 0, day))
		for _, c := range centers {
			hours, ok := c.HoursOn(date)
			if !ok || hours.Closed {
				continue
			}
			for m := hours.Open.Minutes(); m < hours.Close.Minutes(); m += 60 {
				for _, d := range durations {
					slots, err := availability.GetAvailability(ctx, c.ID, date, domain.ClockFromMinutes(m), d)
					if err != nil {
						return nil, fmt.Errorf("generate slots for %s on %s: %w", c.ID, date, err)
					}
					out = append(out, slots...)
				}
			}
		}
	}
	return out, nil
}
