package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/fuel-service/internal/domain"
	"github.com/spec-kit/fuel-service/internal/events"
	"github.com/spec-kit/fuel-service/internal/repository"
	apperrors "github.com/spec-kit/fuel-service/pkg/util/errorutil"
)

const (
	statsKeyPrefix   = "fuel:stats:"
	statsLastDays    = statsKeyPrefix + "last-days"
	statsLastMonths  = statsKeyPrefix + "last-months"
	statsTodayTotal  = statsKeyPrefix + "today-total"
	statsTodayFuel   = statsKeyPrefix + "today-top-fuel"
	statsTodayDistin = statsKeyPrefix + "today-stations"
)

// StatsCache stores computed dashboard figures.
type StatsCache interface {
	GetJSON(ctx context.Context, key string, dst any) (bool, error)
	SetJSON(ctx context.Context, key string, val any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// DistributionService records deliveries to stations and aggregates them.
type DistributionService struct {
	distributions repository.DistributionRepository
	stations      repository.FuelStationRepository
	cache         StatsCache
	cacheTTL      time.Duration
	dispatcher    events.Dispatcher
	logger        *zap.Logger
	now           func() time.Time
}

// DistributionDependencies bundles collaborators for the distribution service.
type DistributionDependencies struct {
	DistributionRepo repository.DistributionRepository
	StationRepo      repository.FuelStationRepository
	Cache            StatsCache
	CacheTTL         time.Duration
	Dispatcher       events.Dispatcher
	Logger           *zap.Logger
}

// DistributionInput is the payload for a new distribution.
type DistributionInput struct {
	FuelStationID string
	FuelAmount    float64
	FuelType      string
	Timestamp     time.Time
}

// NewDistributionService constructs the service.
func NewDistributionService(deps DistributionDependencies) *DistributionService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DistributionService{
		distributions: deps.DistributionRepo,
		stations:      deps.StationRepo,
		cache:         deps.Cache,
		cacheTTL:      deps.CacheTTL,
		dispatcher:    deps.Dispatcher,
		logger:        logger,
		now:           time.Now,
	}
}

// Create records a distribution to an active station.
func (s *DistributionService) Create(ctx context.Context, in DistributionInput) (*domain.Distribution, error) {
	details := map[string]any{}
	if in.FuelAmount <= 0 {
		details["fuelAmount"] = "must be positive"
	}
	if strings.TrimSpace(in.FuelType) == "" {
		details["fuelType"] = "required"
	}
	if len(details) > 0 {
		return nil, apperrors.NewValidationError("invalid distribution", details)
	}
	if _, err := uuid.Parse(in.FuelStationID); err != nil {
		return nil, apperrors.NewNotFound("fuel station", map[string]any{"id": in.FuelStationID})
	}
	station, err := s.stations.GetByID(ctx, in.FuelStationID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.NewNotFound("fuel station", map[string]any{"id": in.FuelStationID})
		}
		return nil, apperrors.NewInternalError(err)
	}
	if !station.Active() {
		return nil, apperrors.NewConflict("fuel station not active", map[string]any{"id": station.ID})
	}

	timestamp := in.Timestamp
	if timestamp.IsZero() {
		timestamp = s.now()
	}
	dist := &domain.Distribution{
		FuelStationID:   station.ID,
		FuelStationName: station.Name,
		FuelAmount:      in.FuelAmount,
		FuelType:        strings.ToLower(strings.TrimSpace(in.FuelType)),
		Timestamp:       timestamp,
	}
	if err := s.distributions.Create(ctx, dist); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.invalidate(ctx)
	publishEvent(ctx, s.dispatcher, s.logger, events.Event{
		Type:    events.EventDistributionCreated,
		Subject: dist.ID,
		Payload: events.DistributionCreatedPayload{
			FuelStationID: dist.FuelStationID,
			FuelAmount:    dist.FuelAmount,
			FuelType:      dist.FuelType,
		},
	})
	return dist, nil
}

// List returns all distributions, newest first.
func (s *DistributionService) List(ctx context.Context) ([]domain.Distribution, error) {
	list, err := s.distributions.List(ctx, repository.DistributionFilter{})
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return list, nil
}

// TotalLastDays returns one total per calendar day, oldest first, including
// days without deliveries.
func (s *DistributionService) TotalLastDays(ctx context.Context, days int) ([]domain.PeriodTotal, error) {
	var result []domain.PeriodTotal
	err := s.cached(ctx, statsLastDays, &result, func() error {
		now := s.now()
		start := startOfDay(now).AddDate(0, 0, -(days - 1))
		list, err := s.since(ctx, start)
		if err != nil {
			return err
		}
		result = bucket(list, days, func(i int) time.Time { return start.AddDate(0, 0, i) }, "2006-01-02")
		return nil
	})
	return result, err
}

// TotalLastMonths returns one total per calendar month, oldest first.
func (s *DistributionService) TotalLastMonths(ctx context.Context, months int) ([]domain.PeriodTotal, error) {
	var result []domain.PeriodTotal
	err := s.cached(ctx, statsLastMonths, &result, func() error {
		now := s.now()
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -(months - 1), 0)
		list, err := s.since(ctx, start)
		if err != nil {
			return err
		}
		result = bucket(list, months, func(i int) time.Time { return start.AddDate(0, i, 0) }, "2006-01")
		return nil
	})
	return result, err
}

// TotalToday sums today's deliveries.
func (s *DistributionService) TotalToday(ctx context.Context) (float64, error) {
	var total float64
	err := s.cached(ctx, statsTodayTotal, &total, func() error {
		list, err := s.since(ctx, startOfDay(s.now()))
		if err != nil {
			return err
		}
		total = 0
		for _, d := range list {
			total += d.FuelAmount
		}
		return nil
	})
	return total, err
}

// MostDistributedFuelTypeToday returns nil when nothing was delivered today.
// Ties go to the alphabetically first fuel type.
func (s *DistributionService) MostDistributedFuelTypeToday(ctx context.Context) (*domain.FuelTypeTotal, error) {
	var top *domain.FuelTypeTotal
	err := s.cached(ctx, statsTodayFuel, &top, func() error {
		list, err := s.since(ctx, startOfDay(s.now()))
		if err != nil {
			return err
		}
		totals := map[string]float64{}
		for _, d := range list {
			totals[d.FuelType] += d.FuelAmount
		}
		types := make([]string, 0, len(totals))
		for fuelType := range totals {
			types = append(types, fuelType)
		}
		sort.Strings(types)
		top = nil
		for _, fuelType := range types {
			if top == nil || totals[fuelType] > top.Total {
				top = &domain.FuelTypeTotal{FuelType: fuelType, Total: totals[fuelType]}
			}
		}
		return nil
	})
	return top, err
}

// DistinctStationsToday counts stations that received fuel today.
func (s *DistributionService) DistinctStationsToday(ctx context.Context) (int, error) {
	var count int
	err := s.cached(ctx, statsTodayDistin, &count, func() error {
		list, err := s.since(ctx, startOfDay(s.now()))
		if err != nil {
			return err
		}
		seen := map[string]struct{}{}
		for _, d := range list {
			seen[d.FuelStationID] = struct{}{}
		}
		count = len(seen)
		return nil
	})
	return count, err
}

func (s *DistributionService) since(ctx context.Context, start time.Time) ([]domain.Distribution, error) {
	list, err := s.distributions.List(ctx, repository.DistributionFilter{Since: &start})
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return list, nil
}

// cached serves key from the cache or runs compute and stores its result.
// Cache failures only cost a recomputation.
func (s *DistributionService) cached(ctx context.Context, key string, dst any, compute func() error) error {
	if s.cache != nil && s.cacheTTL > 0 {
		hit, err := s.cache.GetJSON(ctx, key, dst)
		if err != nil {
			s.logger.Debug("stats cache read failed", zap.String("key", key), zap.Error(err))
		}
		if hit {
			return nil
		}
	}
	if err := compute(); err != nil {
		return err
	}
	if s.cache != nil && s.cacheTTL > 0 {
		if err := s.cache.SetJSON(ctx, key, dst, s.cacheTTL); err != nil {
			s.logger.Debug("stats cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return nil
}

func (s *DistributionService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, statsLastDays, statsLastMonths, statsTodayTotal, statsTodayFuel, statsTodayDistin); err != nil {
		s.logger.Warn("stats cache invalidation failed", zap.Error(err))
	}
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func bucket(list []domain.Distribution, n int, periodStart func(int) time.Time, layout string) []domain.PeriodTotal {
	result := make([]domain.PeriodTotal, n)
	index := make(map[string]int, n)
	for i := 0; i < n; i++ {
		label := periodStart(i).Format(layout)
		result[i] = domain.PeriodTotal{Period: label}
		index[label] = i
	}
	loc := periodStart(0).Location()
	for _, d := range list {
		if i, ok := index[d.Timestamp.In(loc).Format(layout)]; ok {
			result[i].Total += d.FuelAmount
		}
	}
	return result
}
