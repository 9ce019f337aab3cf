package domain

// FilteredCenter - центр в результате поиска с вычисленными аннотациями
type FilteredCenter struct {
	Center
	DistanceKm *float64 `json:"distance_km,omitempty"`
	Available  *bool    `json:"available,omitempty"`
}

// MapMarker - группа центров в одной H3 ячейке для режима карты
type MapMarker struct {
	Cell      string   `json:"cell"`
	Lat       float64  `json:"lat"`
	Lon       float64  `json:"lon"`
	Count     int      `json:"count"`
	CenterIDs []string `json:"center_ids"`
}
