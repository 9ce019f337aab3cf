package discovery

import (
	"context"
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/quadrago-discovery/internal/domain"
	"github.com/quadrago-discovery/internal/domain/repository"
	apperrors "github.com/quadrago-discovery/internal/pkg/errors"
	"github.com/quadrago-discovery/internal/metrics"
)

const defaultGeolocationTimeout = 10 * time.Second

// State - состояние движка
type State string

const (
	StateLoading   State = "loading"
	StateIdle      State = "idle"
	StateResolving State = "resolving_availability"
	StateFailed    State = "failed"
)

// Snapshot - согласованный снимок состояния движка для слоя отображения
type Snapshot struct {
	State                 State                   `json:"state"`
	Loading               bool                    `json:"loading"`
	AvailabilityResolving bool                    `json:"availability_resolving"`
	Error                 *apperrors.AppError     `json:"error,omitempty"`
	Notice                string                  `json:"notice,omitempty"`
	Criteria              domain.FilterCriteria   `json:"criteria"`
	Query                 string                  `json:"query"`
	Results               []domain.FilteredCenter `json:"results"`
	Markers               []domain.MapMarker      `json:"markers,omitempty"`
	Total                 int                     `json:"total"`
	Empty                 bool                    `json:"empty"`
	Version               uint64                  `json:"version"`
}

// Engine держит каталог, критерии и индекс доступности одной сессии discovery.
// Методы безопасны для конкурентных вызовов; I/O выполняется вне мьютекса.
type Engine struct {
	catalog  repository.CatalogRepository
	resolver *AvailabilityResolver
	nav      Navigator
	logger   *zap.Logger
	metrics  *metrics.Discovery

	geolocationTimeout time.Duration
	mapResolution      int

	mu            sync.Mutex
	state         State
	loadErr       *apperrors.AppError
	notice        string
	centers       []domain.Center
	sports        []domain.Sport
	criteria      domain.FilterCriteria
	version       uint64
	index         *domain.AvailabilityIndex
	cancelResolve context.CancelFunc
	results       []domain.FilteredCenter
	closed        bool
}

type EngineOption func(*Engine)

func WithGeolocationTimeout(d time.Duration) EngineOption {
	return func(e *Engine) {
		if d > 0 {
			e.geolocationTimeout = d
		}
	}
}

func WithMapResolution(res int) EngineOption {
	return func(e *Engine) {
		e.mapResolution = res
	}
}

func WithEngineMetrics(m *metrics.Discovery) EngineOption {
	return func(e *Engine) {
		e.metrics = m
	}
}

// NewEngine - создание движка; начальные критерии читаются из navigator
func NewEngine(
	catalog repository.CatalogRepository,
	resolver *AvailabilityResolver,
	nav Navigator,
	logger *zap.Logger,
	opts ...EngineOption,
) *Engine {
	e := &Engine{
		catalog:            catalog,
		resolver:           resolver,
		nav:                nav,
		logger:             logger,
		geolocationTimeout: defaultGeolocationTimeout,
		mapResolution:      DefaultMapResolution,
		state:              StateLoading,
		criteria:           Decode(nav.ReadQuery()),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Load загружает каталог и пересчитывает результат. Повторный вызов - retry после ошибки.
// Частично загруженный каталог не используется.
func (e *Engine) Load(ctx context.Context) Snapshot {
	e.mu.Lock()
	// Незавершённое построение индекса относится к прошлой загрузке
	e.version++
	e.cancelInFlightLocked()
	e.state = StateLoading
	e.loadErr = nil
	e.mu.Unlock()

	centers, sports, err := e.fetchCatalog(ctx)

	e.mu.Lock()
	if err != nil {
		e.logger.Error("Failed to load catalog", zap.Error(err))
		e.state = StateFailed
		e.centers = nil
		e.sports = nil
		e.results = nil
		e.index = nil
		e.loadErr = apperrors.ErrCatalogLoad.WithDetails(map[string]interface{}{
			"cause": err.Error(),
		})
		snap := e.snapshotLocked()
		e.mu.Unlock()
		return snap
	}

	e.logger.Info("Catalog loaded",
		zap.Int("centers", len(centers)),
		zap.Int("sports", len(sports)))

	e.centers = centers
	e.sports = sports
	e.index = nil
	e.state = StateIdle
	e.version++
	return e.recomputeLocked(ctx)
}

func (e *Engine) fetchCatalog(ctx context.Context) ([]domain.Center, []domain.Sport, error) {
	centers, err := e.catalog.GetCenters(ctx)
	if err != nil {
		return nil, nil, err
	}
	sports, err := e.catalog.GetSports(ctx)
	if err != nil {
		return nil, nil, err
	}
	return centers, sports, nil
}

// Apply применяет произвольную мутацию критериев, обновляет URL и пересчитывает результат
func (e *Engine) Apply(ctx context.Context, mutate func(*domain.FilterCriteria)) Snapshot {
	e.mu.Lock()
	next := e.criteria.Clone()
	mutate(&next)
	next.Amenities = domain.NormalizeAmenities(next.Amenities)

	e.criteria = next
	e.version++
	e.nav.ReplaceQuery(Encode(next))

	return e.recomputeLocked(ctx)
}

func (e *Engine) SetSport(ctx context.Context, sportID string) Snapshot {
	return e.Apply(ctx, func(c *domain.FilterCriteria) {
		c.Sport = sportID
	})
}

// SetDate выбирает дату, сохраняя уже выбранный слот
func (e *Engine) SetDate(ctx context.Context, date domain.Date) Snapshot {
	return e.Apply(ctx, func(c *domain.FilterCriteria) {
		if c.When == nil {
			c.When = &domain.DateFilter{}
		}
		c.When.Date = date
	})
}

// ClearDate снимает дату вместе со слотом
func (e *Engine) ClearDate(ctx context.Context) Snapshot {
	return e.Apply(ctx, func(c *domain.FilterCriteria) {
		c.When = nil
	})
}

// SetSlot задаёт время начала и длительность; без выбранной даты возвращает ErrInvalidRequest
func (e *Engine) SetSlot(ctx context.Context, slot *domain.SlotFilter) (Snapshot, error) {
	e.mu.Lock()
	hasDate := e.criteria.When != nil
	e.mu.Unlock()
	if slot != nil && !hasDate {
		return e.Snapshot(), apperrors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"start_time": "date must be selected first",
		})
	}

	return e.Apply(ctx, func(c *domain.FilterCriteria) {
		if c.When == nil {
			return
		}
		if slot == nil {
			c.When.Slot = nil
			return
		}
		s := *slot
		c.When.Slot = &s
	}), nil
}

func (e *Engine) SetPriceRange(ctx context.Context, r domain.PriceRange) Snapshot {
	return e.Apply(ctx, func(c *domain.FilterCriteria) {
		c.Price = r
	})
}

func (e *Engine) SetLocation(ctx context.Context, point domain.Point, radiusKm float64) Snapshot {
	if radiusKm <= 0 {
		radiusKm = domain.DefaultRadiusKm
	}
	return e.Apply(ctx, func(c *domain.FilterCriteria) {
		c.Location = &domain.LocationFilter{Point: point, RadiusKm: radiusKm}
	})
}

func (e *Engine) ClearLocation(ctx context.Context) Snapshot {
	return e.Apply(ctx, func(c *domain.FilterCriteria) {
		c.Location = nil
	})
}

func (e *Engine) SetAmenities(ctx context.Context, amenities []string) Snapshot {
	return e.Apply(ctx, func(c *domain.FilterCriteria) {
		c.Amenities = slices.Clone(amenities)
	})
}

// ToggleAmenity добавляет удобство в набор или убирает его
func (e *Engine) ToggleAmenity(ctx context.Context, amenity string) Snapshot {
	return e.Apply(ctx, func(c *domain.FilterCriteria) {
		if i := slices.Index(c.Amenities, amenity); i >= 0 {
			c.Amenities = slices.Delete(c.Amenities, i, i+1)
			return
		}
		c.Amenities = append(c.Amenities, amenity)
	})
}

func (e *Engine) SetView(ctx context.Context, view domain.View) Snapshot {
	return e.Apply(ctx, func(c *domain.FilterCriteria) {
		c.View = view
	})
}

func (e *Engine) SetSortBy(ctx context.Context, sortBy domain.SortBy) Snapshot {
	return e.Apply(ctx, func(c *domain.FilterCriteria) {
		c.SortBy = sortBy
	})
}

func (e *Engine) SetShowUnavailable(ctx context.Context, show bool) Snapshot {
	return e.Apply(ctx, func(c *domain.FilterCriteria) {
		c.ShowUnavailable = show
	})
}

// ClearFilters сбрасывает критерии к значениям по умолчанию, сохраняя view и sortBy
func (e *Engine) ClearFilters(ctx context.Context) Snapshot {
	return e.Apply(ctx, func(c *domain.FilterCriteria) {
		view, sortBy := c.View, c.SortBy
		*c = domain.DefaultCriteria()
		c.View = view
		c.SortBy = sortBy
	})
}

type positionResult struct {
	point domain.Point
	err   error
}

// UseCurrentLocation запрашивает позицию у провайдера с таймаутом. Отказ, ошибка или
// таймаут снимают фильтр по расстоянию и выставляют notice.
func (e *Engine) UseCurrentLocation(ctx context.Context, provider repository.GeolocationProvider, radiusKm float64) Snapshot {
	gctx, cancel := context.WithTimeout(ctx, e.geolocationTimeout)
	defer cancel()

	// Провайдер может не уважать ctx, поэтому ожидание идёт через select
	ch := make(chan positionResult, 1)
	go func() {
		p, err := provider.CurrentPosition(gctx)
		ch <- positionResult{point: p, err: err}
	}()

	var res positionResult
	select {
	case res = <-ch:
	case <-gctx.Done():
		res = positionResult{err: gctx.Err()}
	}

	if res.err != nil {
		e.logger.Warn("Geolocation unavailable, continuing without location", zap.Error(res.err))
		e.mu.Lock()
		e.notice = apperrors.ErrGeolocationUnavailable.Message
		if e.criteria.Location == nil {
			snap := e.snapshotLocked()
			e.mu.Unlock()
			return snap
		}
		e.mu.Unlock()
		return e.ClearLocation(ctx)
	}

	e.mu.Lock()
	e.notice = ""
	e.mu.Unlock()
	return e.SetLocation(ctx, res.point, radiusKm)
}

// DismissNotice скрывает уведомление о геолокации
func (e *Engine) DismissNotice() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.notice = ""
	return e.snapshotLocked()
}

// Sports возвращает справочник видов спорта текущей загрузки
func (e *Engine) Sports() []domain.Sport {
	e.mu.Lock()
	defer e.mu.Unlock()
	return slices.Clone(e.sports)
}

// Criteria возвращает копию текущих критериев
func (e *Engine) Criteria() domain.FilterCriteria {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.criteria.Clone()
}

func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

// Close отменяет незавершённое построение индекса
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.closed = true
	e.version++
	if e.cancelResolve != nil {
		e.cancelResolve()
		e.cancelResolve = nil
	}
}

// Closed - движок закрыт и больше не строит индексы
func (e *Engine) Closed() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.closed
}

// recomputeLocked вызывается с захваченным мьютексом и освобождает его.
// Если ключ доступности изменился, индекс строится заново вне мьютекса; результат
// применяется только если за это время критерии не менялись (последняя версия побеждает).
func (e *Engine) recomputeLocked(ctx context.Context) Snapshot {
	if e.closed || e.centers == nil {
		snap := e.snapshotLocked()
		e.mu.Unlock()
		return snap
	}

	key, timeBound := e.criteria.AvailabilityKey()
	if !timeBound || (e.index != nil && e.index.Key == key) {
		e.cancelInFlightLocked()
		if !timeBound {
			e.index = nil
		}
		e.applyLocked()
		snap := e.snapshotLocked()
		e.mu.Unlock()
		return snap
	}

	e.cancelInFlightLocked()
	rctx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	e.cancelResolve = cancel
	e.state = StateResolving
	e.results = nil
	version := e.version
	centers := e.centers
	e.mu.Unlock()

	index, stats := e.resolver.Resolve(rctx, centers, key)

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.version != version {
		cancel()
		e.metrics.StaleResolution()
		e.logger.Debug("Discarding stale availability resolution",
			zap.String("key", key.String()),
			zap.Uint64("resolved_version", version),
			zap.Uint64("current_version", e.version))
		return e.snapshotLocked()
	}

	cancel()
	e.cancelResolve = nil
	e.index = index
	e.applyLocked()

	e.logger.Debug("Availability applied",
		zap.String("key", key.String()),
		zap.Int("available", stats.Available),
		zap.Int("failed", stats.Failed))

	return e.snapshotLocked()
}

func (e *Engine) cancelInFlightLocked() {
	if e.cancelResolve != nil {
		e.cancelResolve()
		e.cancelResolve = nil
	}
}

func (e *Engine) applyLocked() {
	results := Filter(e.centers, e.criteria, e.index)
	Sort(results, e.criteria)
	e.results = results
	e.state = StateIdle
}

func (e *Engine) snapshotLocked() Snapshot {
	snap := Snapshot{
		State:                 e.state,
		Loading:               e.state == StateLoading,
		AvailabilityResolving: e.state == StateResolving,
		Error:                 e.loadErr,
		Notice:                e.notice,
		Criteria:              e.criteria.Clone(),
		Query:                 Encode(e.criteria),
		Version:               e.version,
	}

	if e.state == StateIdle {
		snap.Results = slices.Clone(e.results)
		if snap.Results == nil {
			snap.Results = []domain.FilteredCenter{}
		}
		snap.Total = len(snap.Results)
		snap.Empty = snap.Total == 0
		if e.criteria.View == domain.ViewMap {
			snap.Markers = BuildMarkers(snap.Results, e.mapResolution)
		}
	}

	return snap
}
