package discovery

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/quadrago-discovery/internal/domain"
	"github.com/quadrago-discovery/internal/pkg/utils"
)

// Query-string keys, in the order Encode writes them.
const (
	KeySport           = "sport"
	KeyDate            = "date"
	KeyStartTime       = "startTime"
	KeyDuration        = "duration"
	KeyMinPrice        = "minPrice"
	KeyMaxPrice        = "maxPrice"
	KeyLat             = "lat"
	KeyLng             = "lng"
	KeyRadius          = "radius"
	KeyAmenities       = "amenities"
	KeyView            = "view"
	KeySortBy          = "sortBy"
	KeyShowUnavailable = "showUnavailable"
)

// Encode сериализует критерии в query string. Кодирование разреженное:
// ключи со значением по умолчанию не пишутся.
func Encode(c domain.FilterCriteria) string {
	var b strings.Builder

	add := func(key, escapedValue string) {
		if b.Len() > 0 {
			b.WriteByte('&')
		}
		b.WriteString(key)
		b.WriteByte('=')
		b.WriteString(escapedValue)
	}

	if c.Sport != "" {
		add(KeySport, url.QueryEscape(c.Sport))
	}
	if c.When != nil {
		add(KeyDate, c.When.Date.String())
		if c.When.Slot != nil {
			add(KeyStartTime, url.QueryEscape(c.When.Slot.Start.String()))
			add(KeyDuration, strconv.Itoa(c.When.Slot.DurationMinutes))
		}
	}
	if c.Price.Min != domain.DefaultMinPrice {
		add(KeyMinPrice, formatFloat(c.Price.Min))
	}
	if c.Price.Max != domain.DefaultMaxPrice {
		add(KeyMaxPrice, formatFloat(c.Price.Max))
	}
	if c.Location != nil {
		add(KeyLat, formatFloat(c.Location.Lat))
		add(KeyLng, formatFloat(c.Location.Lon))
		add(KeyRadius, formatFloat(c.Location.RadiusKm))
	}
	if len(c.Amenities) > 0 {
		escaped := make([]string, len(c.Amenities))
		for i, a := range c.Amenities {
			escaped[i] = url.QueryEscape(a)
		}
		add(KeyAmenities, strings.Join(escaped, ","))
	}
	if c.View != "" && c.View != domain.ViewList {
		add(KeyView, url.QueryEscape(string(c.View)))
	}
	if c.SortBy != "" && c.SortBy != domain.SortRelevance {
		add(KeySortBy, url.QueryEscape(string(c.SortBy)))
	}
	if c.ShowUnavailable {
		add(KeyShowUnavailable, "true")
	}

	return b.String()
}

// Decode восстанавливает критерии из query string (с ведущим "?" или без).
// Неизвестные ключи игнорируются, некорректные значения заменяются значением по умолчанию
// для своего поля, остальные поля применяются.
func Decode(query string) domain.FilterCriteria {
	c := domain.DefaultCriteria()

	values, err := url.ParseQuery(strings.TrimPrefix(query, "?"))
	if err != nil && len(values) == 0 {
		// ParseQuery возвращает первую ошибку, но разбирает всё, что смог
		return c
	}

	if v := values.Get(KeySport); v != "" {
		c.Sport = v
	}

	if d, err := domain.ParseDate(values.Get(KeyDate)); err == nil {
		when := &domain.DateFilter{Date: d}
		if start, err := domain.ParseClock(values.Get(KeyStartTime)); err == nil {
			duration := domain.DefaultDurationMinutes
			if n, err := strconv.Atoi(values.Get(KeyDuration)); err == nil && n > 0 {
				duration = n
			}
			when.Slot = &domain.SlotFilter{Start: start, DurationMinutes: duration}
		}
		c.When = when
	}

	if v, ok := parseFloat(values.Get(KeyMinPrice)); ok {
		c.Price.Min = v
	}
	if v, ok := parseFloat(values.Get(KeyMaxPrice)); ok {
		c.Price.Max = v
	}

	lat, latOK := parseFloat(values.Get(KeyLat))
	lng, lngOK := parseFloat(values.Get(KeyLng))
	if latOK && lngOK && utils.ValidateCoordinates(lat, lng) {
		radius := float64(domain.DefaultRadiusKm)
		if r, ok := parseFloat(values.Get(KeyRadius)); ok && r > 0 {
			radius = r
		}
		c.Location = &domain.LocationFilter{
			Point:    domain.Point{Lat: lat, Lon: lng},
			RadiusKm: radius,
		}
	}

	if parts := rawAmenities(query); len(parts) > 0 {
		c.Amenities = domain.NormalizeAmenities(parts)
	}

	if v := domain.View(values.Get(KeyView)); v.Valid() {
		c.View = v
	}
	if s := domain.SortBy(values.Get(KeySortBy)); s.Valid() {
		c.SortBy = s
	}

	c.ShowUnavailable = values.Get(KeyShowUnavailable) == "true"

	return c
}

// rawAmenities делит значение amenities по запятым до раскодирования:
// Encode экранирует запятую внутри удобства как %2C
func rawAmenities(query string) []string {
	var raw string
	found := false
	for _, pair := range strings.Split(strings.TrimPrefix(query, "?"), "&") {
		key, value, _ := strings.Cut(pair, "=")
		if k, err := url.QueryUnescape(key); err == nil && k == KeyAmenities {
			raw, found = value, true
			break
		}
	}
	if !found || raw == "" {
		return nil
	}

	var out []string
	for _, part := range strings.Split(raw, ",") {
		item, err := url.QueryUnescape(part)
		if err != nil {
			continue
		}
		out = append(out, strings.TrimSpace(item))
	}
	return out
}

// Fingerprint - стабильный хеш канонического представления критериев (для ETag)
func Fingerprint(c domain.FilterCriteria) string {
	return strconv.FormatUint(xxhash.Sum64String(Encode(c)), 16)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func parseFloat(raw string) (float64, bool) {
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
