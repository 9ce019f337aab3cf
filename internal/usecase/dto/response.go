package dto

import (
	"github.com/quadrago-discovery/internal/discovery"
	"github.com/quadrago-discovery/internal/domain"
	"github.com/quadrago-discovery/internal/pkg/errors"
)

// CenterResult - центр в выдаче поиска
type CenterResult struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	Address    domain.Address    `json:"address"`
	Location   domain.Point      `json:"location"`
	Sports     []domain.SportRef `json:"sports"`
	Amenities  []string          `json:"amenities"`
	Price      float64           `json:"price"`
	DistanceKm *float64          `json:"distance_km,omitempty"`
	Available  *bool             `json:"available,omitempty"`
}

// SnapshotResponse - состояние discovery (сессии или одноразового поиска)
type SnapshotResponse struct {
	SessionID             string                `json:"session_id,omitempty"`
	State                 string                `json:"state"`
	Loading               bool                  `json:"loading"`
	AvailabilityResolving bool                  `json:"availability_resolving"`
	Error                 *errors.AppError      `json:"error,omitempty"`
	Notice                string                `json:"notice,omitempty"`
	Criteria              domain.FilterCriteria `json:"criteria"`
	Query                 string                `json:"query"`
	Results               []CenterResult        `json:"results"`
	Markers               []domain.MapMarker    `json:"markers,omitempty"`
	Total                 int                   `json:"total"`
	Empty                 bool                  `json:"empty"`
	Version               uint64                `json:"version"`
}

// SearchResponse - результат stateless поиска; ETag - отпечаток критериев
type SearchResponse struct {
	SnapshotResponse
	ETag string `json:"-"`
}

// AvailabilityResponse - слоты центра на дату и время
type AvailabilityResponse struct {
	CenterID        string           `json:"center_id"`
	Date            domain.Date      `json:"date"`
	StartTime       domain.ClockTime `json:"start_time"`
	DurationMinutes int              `json:"duration"`
	Available       bool             `json:"available"`
	Slots           []domain.Slot    `json:"slots"`
}

// ConvertCenter - преобразование результата фильтрации в DTO
func ConvertCenter(fc domain.FilteredCenter) CenterResult {
	return CenterResult{
		ID:         fc.ID,
		Name:       fc.Name,
		Address:    fc.Address,
		Location:   fc.Location,
		Sports:     fc.Sports,
		Amenities:  fc.Amenities,
		Price:      fc.RepresentativePrice(),
		DistanceKm: fc.DistanceKm,
		Available:  fc.Available,
	}
}

// ConvertSnapshot - преобразование снапшота движка в DTO. Results остаётся nil,
// пока строится индекс доступности.
func ConvertSnapshot(snap discovery.Snapshot) SnapshotResponse {
	resp := SnapshotResponse{
		State:                 string(snap.State),
		Loading:               snap.Loading,
		AvailabilityResolving: snap.AvailabilityResolving,
		Error:                 snap.Error,
		Notice:                snap.Notice,
		Criteria:              snap.Criteria,
		Query:                 snap.Query,
		Markers:               snap.Markers,
		Total:                 snap.Total,
		Empty:                 snap.Empty,
		Version:               snap.Version,
	}
	if snap.Results != nil {
		resp.Results = make([]CenterResult, 0, len(snap.Results))
		for _, fc := range snap.Results {
			resp.Results = append(resp.Results, ConvertCenter(fc))
		}
	}
	return resp
}
