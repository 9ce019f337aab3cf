package discovery

import (
	h3 "github.com/uber/h3-go/v4"

	"github.com/quadrago-discovery/internal/domain"
)

// DefaultMapResolution - разрешение H3 для маркеров карты (~0.7 км² на ячейку)
const DefaultMapResolution = 8

// BuildMarkers группирует результаты по H3 ячейкам. Порядок маркеров - порядок первого
// появления ячейки в results, координаты маркера - центроид центров внутри ячейки.
func BuildMarkers(results []domain.FilteredCenter, resolution int) []domain.MapMarker {
	if len(results) == 0 {
		return nil
	}
	if resolution < 0 || resolution > 15 {
		resolution = DefaultMapResolution
	}

	positions := make(map[string]int, len(results))
	markers := make([]domain.MapMarker, 0, len(results))

	for _, r := range results {
		cell, err := h3.LatLngToCell(h3.NewLatLng(r.Location.Lat, r.Location.Lon), resolution)
		if err != nil {
			continue
		}
		key := cell.String()

		pos, ok := positions[key]
		if !ok {
			pos = len(markers)
			positions[key] = pos
			markers = append(markers, domain.MapMarker{Cell: key})
		}

		m := &markers[pos]
		m.Lat = (m.Lat*float64(m.Count) + r.Location.Lat) / float64(m.Count+1)
		m.Lon = (m.Lon*float64(m.Count) + r.Location.Lon) / float64(m.Count+1)
		m.Count++
		m.CenterIDs = append(m.CenterIDs, r.ID)
	}

	return markers
}
