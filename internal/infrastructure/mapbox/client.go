package mapbox

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/quadrago-discovery/internal/config"
	"github.com/quadrago-discovery/internal/domain"
	"github.com/quadrago-discovery/internal/domain/repository"
)

const (
	geocodingPath    = "/geocoding/v5/mapbox.places/"
	defaultCacheSize = 1024
)

// ErrNoMatch - геокодер не нашёл ни одного места по запросу
var ErrNoMatch = errors.New("mapbox: no place matches query")

// Geocoder - прямое геокодирование адреса/названия места в координаты через Mapbox Geocoding API
type Geocoder struct {
	httpClient  *http.Client
	baseURL     string
	accessToken string
	limiter     *rate.Limiter
	cache       *lru.Cache[string, domain.Point]
	logger      *zap.Logger
}

// NewGeocoder создает новый клиент для Mapbox Geocoding API
func NewGeocoder(cfg *config.MapboxConfig, logger *zap.Logger) (*Geocoder, error) {
	size := cfg.CacheSize
	if size <= 0 {
		size = defaultCacheSize
	}
	cache, err := lru.New[string, domain.Point](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create geocode cache: %w", err)
	}

	limit := rate.Inf
	if cfg.RatePerSecond > 0 {
		limit = rate.Limit(cfg.RatePerSecond)
	}

	return &Geocoder{
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.RequestTimeout) * time.Second,
		},
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		accessToken: cfg.AccessToken,
		limiter:     rate.NewLimiter(limit, 1),
		cache:       cache,
		logger:      logger,
	}, nil
}

// Geocode возвращает координаты лучшего совпадения для запроса
func (g *Geocoder) Geocode(ctx context.Context, query string) (domain.Point, error) {
	key := normalizeQuery(query)
	if key == "" {
		return domain.Point{}, fmt.Errorf("empty geocoding query")
	}
	if p, ok := g.cache.Get(key); ok {
		return p, nil
	}

	if err := g.limiter.Wait(ctx); err != nil {
		return domain.Point{}, fmt.Errorf("rate limiter: %w", err)
	}

	params := url.Values{}
	params.Set("access_token", g.accessToken)
	params.Set("limit", "1")
	params.Set("types", "address,place,locality,neighborhood,poi")
	reqURL := g.baseURL + geocodingPath + url.PathEscape(key) + ".json?" + params.Encode()

	g.logger.Debug("Calling Mapbox Geocoding API", zap.String("query", key))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		g.logger.Error("Failed to create request", zap.Error(err))
		return domain.Point{}, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		g.logger.Warn("Failed to execute request", zap.Error(err))
		return domain.Point{}, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		g.logger.Error("Mapbox API returned error",
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(body)))
		return domain.Point{}, fmt.Errorf("mapbox API error: status %d", resp.StatusCode)
	}

	var geo geocodingResponse
	if err := json.NewDecoder(resp.Body).Decode(&geo); err != nil {
		g.logger.Error("Failed to decode response", zap.Error(err))
		return domain.Point{}, fmt.Errorf("failed to decode response: %w", err)
	}

	point, ok := geo.first()
	if !ok {
		return domain.Point{}, ErrNoMatch
	}

	g.cache.Add(key, point)
	return point, nil
}

// Locator возвращает GeolocationProvider, который определяет позицию по текстовому запросу
func (g *Geocoder) Locator(query string) repository.GeolocationProvider {
	return &Locator{geocoder: g, query: query}
}

// Locator адаптирует Geocoder к repository.GeolocationProvider
type Locator struct {
	geocoder *Geocoder
	query    string
}

func (l *Locator) CurrentPosition(ctx context.Context) (domain.Point, error) {
	return l.geocoder.Geocode(ctx, l.query)
}

type geocodingResponse struct {
	Features []struct {
		PlaceName string    `json:"place_name"`
		Center    []float64 `json:"center"` // [lon, lat]
	} `json:"features"`
}

func (r geocodingResponse) first() (domain.Point, bool) {
	for _, f := range r.Features {
		if len(f.Center) != 2 {
			continue
		}
		p := domain.Point{Lat: f.Center[1], Lon: f.Center[0]}
		if p.Valid() {
			return p, true
		}
	}
	return domain.Point{}, false
}

func normalizeQuery(q string) string {
	return strings.ToLower(strings.Join(strings.Fields(q), " "))
}
