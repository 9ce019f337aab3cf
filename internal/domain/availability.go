package domain

import "strconv"

// Slot - бронируемый интервал на площадке центра
type Slot struct {
	ID              string    `json:"slot_id" db:"id"`
	CenterID        string    `json:"center_id" db:"center_id"`
	FacilityID      string    `json:"facility_id" db:"facility_id"`
	Date            Date      `json:"date"`
	Start           ClockTime `json:"start_time"`
	DurationMinutes int       `json:"duration" db:"duration_minutes"`
	Price           float64   `json:"price" db:"price"`
	IsAvailable     bool      `json:"is_available" db:"is_available"`
}

// AvailabilityIndex - множество центров с хотя бы одним свободным слотом для ключа.
// Пересоздаётся целиком при смене ключа.
type AvailabilityIndex struct {
	Key       AvailabilityKey
	centerIDs map[string]struct{}
}

func NewAvailabilityIndex(key AvailabilityKey, centerIDs ...string) *AvailabilityIndex {
	idx := &AvailabilityIndex{
		Key:       key,
		centerIDs: make(map[string]struct{}, len(centerIDs)),
	}
	for _, id := range centerIDs {
		idx.centerIDs[id] = struct{}{}
	}
	return idx
}

func (i *AvailabilityIndex) Add(centerID string) {
	i.centerIDs[centerID] = struct{}{}
}

// Contains безопасен для nil индекса
func (i *AvailabilityIndex) Contains(centerID string) bool {
	if i == nil {
		return false
	}
	_, ok := i.centerIDs[centerID]
	return ok
}

func (i *AvailabilityIndex) Len() int {
	if i == nil {
		return 0
	}
	return len(i.centerIDs)
}

// AnyAvailable - есть ли среди слотов хотя бы один свободный
func AnyAvailable(slots []Slot) bool {
	for _, s := range slots {
		if s.IsAvailable {
			return true
		}
	}
	return false
}

func itoa(v int) string {
	return strconv.Itoa(v)
}
