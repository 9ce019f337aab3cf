package dto

// CreateSessionRequest - создание сессии; query - состояние фильтров из адресной строки
type CreateSessionRequest struct {
	Query string `json:"query" validate:"omitempty,max=2048"`
}

// UpdateFiltersRequest - частичное изменение фильтров сессии.
// nil поля не меняются; Clear* сбрасывают соответствующий фильтр.
type UpdateFiltersRequest struct {
	Sport           *string   `json:"sport,omitempty" validate:"omitempty,max=64"`
	Date            *string   `json:"date,omitempty" validate:"omitempty,isodate"`
	StartTime       *string   `json:"start_time,omitempty" validate:"omitempty,clock"`
	Duration        *int      `json:"duration,omitempty" validate:"omitempty,min=15,max=720"`
	ClearDate       bool      `json:"clear_date,omitempty"`
	ClearSlot       bool      `json:"clear_slot,omitempty"`
	MinPrice        *float64  `json:"min_price,omitempty" validate:"omitempty,min=0"`
	MaxPrice        *float64  `json:"max_price,omitempty" validate:"omitempty,min=0"`
	Amenities       *[]string `json:"amenities,omitempty"`
	ToggleAmenity   *string   `json:"toggle_amenity,omitempty" validate:"omitempty,min=1,max=64"`
	View            *string   `json:"view,omitempty" validate:"omitempty,oneof=list map"`
	SortBy          *string   `json:"sort_by,omitempty" validate:"omitempty,oneof=relevance distance price"`
	ShowUnavailable *bool     `json:"show_unavailable,omitempty"`
	ClearLocation   bool      `json:"clear_location,omitempty"`
}

// LocationRequest - точка поиска: координаты или текстовый запрос для геокодера
type LocationRequest struct {
	Lat      *float64 `json:"lat,omitempty"`
	Lon      *float64 `json:"lon,omitempty"`
	Query    string   `json:"query,omitempty" validate:"omitempty,min=2,max=256"`
	RadiusKm float64  `json:"radius_km" validate:"omitempty,min=0.1,max=500"`
}

// AvailabilityRequest - запрос слотов центра
type AvailabilityRequest struct {
	Date      string `query:"date" validate:"required,isodate"`
	StartTime string `query:"startTime" validate:"required,clock"`
	Duration  int    `query:"duration" validate:"omitempty,min=15,max=720"`
}
