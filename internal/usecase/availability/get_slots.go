package availability

import (
	"context"
	"time"

	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/expert-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/expert-scheduler/internal/httperr"
	"github.com/BruksfildServices01/expert-scheduler/internal/metrics"
	"github.com/BruksfildServices01/expert-scheduler/internal/models"
	"github.com/BruksfildServices01/expert-scheduler/internal/timezone"
)

// ======================================================
// DEPENDENCIES
// ======================================================

// Bookings resolves the references a slot read needs and the live
// appointments that can hide slots.
type Bookings interface {
	GetExpert(ctx context.Context, expertID uint) (*models.Expert, error)
	GetService(ctx context.Context, serviceID uint) (*models.Service, error)
	ListForPeriod(ctx context.Context, expertID uint, start, end time.Time) ([]models.Appointment, error)
}

// Cache holds generated grids under a per-expert generation that Invalidate
// bumps. Implementations must accept a nil receiver.
type Cache interface {
	Generation(ctx context.Context, expertID uint) (int64, error)
	Get(ctx context.Context, expertID uint, gen int64, durationMin int, month string) (map[string][]string, bool, error)
	Set(ctx context.Context, expertID uint, gen int64, durationMin int, month string, grid map[string][]string) error
	Invalidate(ctx context.Context, expertID uint) error
}

// ======================================================
// INPUT
// ======================================================

type SlotQuery struct {
	Month      string
	ServiceID  uint
	HideBooked bool
}

// ======================================================
// USE CASE
// ======================================================

type GetSlots struct {
	repo     domain.Repository
	bookings Bookings
	cache    Cache
	metrics  *metrics.BookingMetrics
	logger   *zap.Logger
}

func NewGetSlots(
	repo domain.Repository,
	bookings Bookings,
	cache Cache,
	m *metrics.BookingMetrics,
	logger *zap.Logger,
) *GetSlots {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cache == nil {
		cache = noCache{}
	}
	return &GetSlots{repo: repo, bookings: bookings, cache: cache, metrics: m, logger: logger}
}

func (uc *GetSlots) Execute(ctx context.Context, expertID uint, q SlotQuery) ([]domain.DaySlots, error) {
	month := q.Month
	if month == "" {
		month = timezone.Now().Format(timezone.MonthLayout)
	}
	from, to, err := timezone.MonthRange(month)
	if err != nil {
		return nil, err
	}

	if _, err := uc.bookings.GetExpert(ctx, expertID); err != nil {
		return nil, err
	}

	if q.ServiceID == 0 {
		return nil, httperr.Validation("missing_service", "serviceId is required.")
	}
	svc, err := uc.bookings.GetService(ctx, q.ServiceID)
	if err != nil {
		return nil, err
	}
	if svc.ExpertID != expertID {
		return nil, httperr.Validation("service_not_offered", "Service belongs to another expert.")
	}

	grid, err := uc.grid(ctx, expertID, svc.DurationMin, month, from, to)
	if err != nil {
		return nil, err
	}
	days := domain.ToDaySlots(grid)

	if q.HideBooked {
		aps, err := uc.bookings.ListForPeriod(ctx, expertID, from, to)
		if err != nil {
			return nil, err
		}
		days = domain.FilterBooked(days, domain.BusyFrom(aps), svc.DurationMin)
	}

	return days, nil
}

// grid serves the raw generator output for one month, through the cache
// when it answers. Cache errors only cost a regeneration.
func (uc *GetSlots) grid(
	ctx context.Context,
	expertID uint,
	durationMin int,
	month string,
	from, to time.Time,
) (map[string][]string, error) {
	began := time.Now()

	// The generation is pinned before the rows are read. A replace that
	// commits in between bumps it, so this grid is written where no later
	// read looks.
	gen, err := uc.cache.Generation(ctx, expertID)
	cacheable := err == nil
	if err != nil {
		uc.logger.Warn("slot cache read failed", zap.Uint("expert_id", expertID), zap.Error(err))
	}

	if cacheable {
		cached, ok, err := uc.cache.Get(ctx, expertID, gen, durationMin, month)
		if err != nil {
			uc.logger.Warn("slot cache read failed", zap.Uint("expert_id", expertID), zap.Error(err))
		}
		if err == nil && ok {
			uc.metrics.ObserveSlotCache(true)
			uc.metrics.ObserveSlotGeneration("cache", time.Since(began))
			return cached, nil
		}
	}
	uc.metrics.ObserveSlotCache(false)

	rows, err := uc.repo.ListForRange(ctx, expertID, from, to)
	if err != nil {
		return nil, err
	}
	grid := domain.GenerateSlots(domain.WindowsFrom(rows), durationMin)
	uc.metrics.ObserveSlotGeneration("db", time.Since(began))

	if cacheable {
		if err := uc.cache.Set(ctx, expertID, gen, durationMin, month, grid); err != nil {
			uc.logger.Warn("slot cache write failed", zap.Uint("expert_id", expertID), zap.Error(err))
		}
	}
	return grid, nil
}

type noCache struct{}

func (noCache) Generation(context.Context, uint) (int64, error) { return 0, nil }

func (noCache) Get(context.Context, uint, int64, int, string) (map[string][]string, bool, error) {
	return nil, false, nil
}

func (noCache) Set(context.Context, uint, int64, int, string, map[string][]string) error { return nil }

func (noCache) Invalidate(context.Context, uint) error { return nil }
