package domain

import "slices"

const (
	DefaultMinPrice        = 0
	DefaultMaxPrice        = 10000
	DefaultRadiusKm        = 10
	DefaultDurationMinutes = 60
)

type View string

const (
	ViewList View = "list"
	ViewMap  View = "map"
)

func (v View) Valid() bool {
	return v == ViewList || v == ViewMap
}

type SortBy string

const (
	SortRelevance SortBy = "relevance"
	SortDistance  SortBy = "distance"
	SortPrice     SortBy = "price"
)

func (s SortBy) Valid() bool {
	return s == SortRelevance || s == SortDistance || s == SortPrice
}

// PriceRange - границы цены; Min > Max не корректируется и даёт пустой результат
type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

func DefaultPriceRange() PriceRange {
	return PriceRange{Min: DefaultMinPrice, Max: DefaultMaxPrice}
}

func (p PriceRange) Contains(price float64) bool {
	return price >= p.Min && price <= p.Max
}

// LocationFilter - опорная точка и радиус поиска
type LocationFilter struct {
	Point
	RadiusKm float64 `json:"radius_km"`
}

// SlotFilter - время начала и длительность, имеет смысл только внутри DateFilter
type SlotFilter struct {
	Start           ClockTime `json:"start_time"`
	DurationMinutes int       `json:"duration"`
}

// DateFilter - выбранная дата и, опционально, слот.
// Время без даты не представимо.
type DateFilter struct {
	Date Date        `json:"date"`
	Slot *SlotFilter `json:"slot,omitempty"`
}

// AvailabilityKey - тройка (дата, начало, длительность), для которой строится индекс доступности
type AvailabilityKey struct {
	Date            Date
	Start           ClockTime
	DurationMinutes int
}

func (k AvailabilityKey) String() string {
	return k.Date.String() + "T" + k.Start.String() + "/" + itoa(k.DurationMinutes)
}

// FilterCriteria - полное состояние фильтров discovery
type FilterCriteria struct {
	Sport           string          `json:"sport,omitempty"`
	When            *DateFilter     `json:"when,omitempty"`
	Price           PriceRange      `json:"price"`
	Location        *LocationFilter `json:"location,omitempty"`
	Amenities       []string        `json:"amenities,omitempty"`
	View            View            `json:"view"`
	SortBy          SortBy          `json:"sort_by"`
	ShowUnavailable bool            `json:"show_unavailable"`
}

func DefaultCriteria() FilterCriteria {
	return FilterCriteria{
		Price:  DefaultPriceRange(),
		View:   ViewList,
		SortBy: SortRelevance,
	}
}

// IsTimeBound - задан ли полный фильтр по слоту (дата + начало + длительность)
func (c *FilterCriteria) IsTimeBound() bool {
	return c.When != nil && c.When.Slot != nil
}

// AvailabilityKey возвращает ключ индекса доступности; ok=false если фильтр по слоту не задан
func (c *FilterCriteria) AvailabilityKey() (AvailabilityKey, bool) {
	if !c.IsTimeBound() {
		return AvailabilityKey{}, false
	}
	return AvailabilityKey{
		Date:            c.When.Date,
		Start:           c.When.Slot.Start,
		DurationMinutes: c.When.Slot.DurationMinutes,
	}, true
}

// Clone - глубокая копия, снапшоты не должны разделять указатели с состоянием движка
func (c FilterCriteria) Clone() FilterCriteria {
	out := c
	if c.When != nil {
		when := *c.When
		if c.When.Slot != nil {
			slot := *c.When.Slot
			when.Slot = &slot
		}
		out.When = &when
	}
	if c.Location != nil {
		loc := *c.Location
		out.Location = &loc
	}
	if c.Amenities != nil {
		out.Amenities = slices.Clone(c.Amenities)
	}
	return out
}

// NormalizeAmenities убирает пустые значения и дубликаты, сохраняя порядок
func NormalizeAmenities(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, 0, len(in))
	for _, a := range in {
		if a == "" || slices.Contains(out, a) {
			continue
		}
		out = append(out, a)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
