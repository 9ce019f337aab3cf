package domain

import "slices"

// Center - спортивный центр из каталога. В пределах сессии не изменяется.
type Center struct {
	ID           string              `json:"id" db:"id"`
	Name         string              `json:"name" db:"name"`
	Address      Address             `json:"address"`
	Location     Point               `json:"location"`
	Sports       []SportRef          `json:"sports"`
	Amenities    []string            `json:"amenities"`
	OpeningHours map[string]DayHours `json:"opening_hours,omitempty"`
	BasePrice    float64             `json:"base_price" db:"base_price"`
	Facilities   []Facility          `json:"facilities,omitempty"`
}

type Address struct {
	Street string `json:"street" db:"street"`
	City   string `json:"city" db:"city"`
	State  string `json:"state" db:"state"`
	Zip    string `json:"zip" db:"zip"`
}

// SportRef - ссылка на вид спорта, предлагаемый центром
type SportRef struct {
	ID   string `json:"id" db:"sport_id"`
	Name string `json:"name" db:"sport_name"`
}

// DayHours - часы работы на день недели; Closed=true означает выходной
type DayHours struct {
	Open   ClockTime `json:"open"`
	Close  ClockTime `json:"close"`
	Closed bool      `json:"closed,omitempty"`
}

// Covers проверяет, что интервал [start, start+duration) целиком внутри часов работы
func (h DayHours) Covers(start ClockTime, durationMinutes int) bool {
	if h.Closed {
		return false
	}
	begin := start.Minutes()
	return begin >= h.Open.Minutes() && begin+durationMinutes <= h.Close.Minutes()
}

// Facility - площадка/корт внутри центра со своей почасовой ценой
type Facility struct {
	ID          string  `json:"id" db:"id"`
	Name        string  `json:"name" db:"name"`
	SportID     string  `json:"sport_id" db:"sport_id"`
	HourlyPrice float64 `json:"hourly_price" db:"hourly_price"`
}

// Sport - справочник видов спорта
type Sport struct {
	ID   string `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
	Icon string `json:"icon" db:"icon"`
}

// OffersSport проверяет наличие вида спорта по идентификатору
func (c *Center) OffersSport(sportID string) bool {
	for _, s := range c.Sports {
		if s.ID == sportID {
			return true
		}
	}
	return false
}

// HasAmenities - true, если у центра есть все перечисленные удобства
func (c *Center) HasAmenities(amenities []string) bool {
	for _, a := range amenities {
		if !slices.Contains(c.Amenities, a) {
			return false
		}
	}
	return true
}

// RepresentativePrice - минимальная почасовая цена площадок, либо BasePrice если площадок нет
func (c *Center) RepresentativePrice() float64 {
	if len(c.Facilities) == 0 {
		return c.BasePrice
	}
	price := c.Facilities[0].HourlyPrice
	for _, f := range c.Facilities[1:] {
		if f.HourlyPrice < price {
			price = f.HourlyPrice
		}
	}
	return price
}

// HoursOn возвращает часы работы на дату; ok=false если расписание не задано
func (c *Center) HoursOn(d Date) (DayHours, bool) {
	h, ok := c.OpeningHours[d.WeekdayKey()]
	return h, ok
}
