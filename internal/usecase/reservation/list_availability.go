package reservation

import (
	"context"
	"errors"

	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/reservation"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/metrics"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

type availabilityRepository interface {
	domain.ShopLookup
	domain.ReservationReader
}

// ListAvailability monta o calendário de horários ocupados da loja.
// Não aplica regra de capacidade; isso fica só na criação.
type ListAvailability struct {
	repo   availabilityRepository
	cache  domain.AvailabilityCache
	logger *zap.Logger
}

func NewListAvailability(
	repo availabilityRepository,
	cache domain.AvailabilityCache,
	logger *zap.Logger,
) *ListAvailability {
	return &ListAvailability{
		repo:   repo,
		cache:  cache,
		logger: logger,
	}
}

func (uc *ListAvailability) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) ([]domain.BusyInterval, error) {

	days := in.WindowDays
	if days == 0 {
		days = domain.DefaultAvailabilityDays
	}
	if days < 0 || days > domain.MaxAvailabilityDays {
		return nil, httperr.ErrInvalidParams("invalid_window")
	}

	shop, err := uc.repo.GetShop(ctx, in.ShopID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil, httperr.ErrNotFound("shop_not_found")
		}
		return nil, err
	}

	from := domain.DayStart(in.WindowStart, timezone.Location(shop.Timezone))

	// a versão é lida antes do banco; Set com versão velha não vale
	var version int64
	cacheUsable := false
	if uc.cache != nil {
		version, err = uc.cache.Version(ctx, shop.ID)
		if err != nil {
			metrics.IncAvailabilityCache("error")
			uc.logger.Warn("availability cache version failed", zap.Uint("shop_id", shop.ID), zap.Error(err))
		} else {
			cacheUsable = true
			cached, ok, err := uc.cache.Get(ctx, shop.ID, version, from, days)
			switch {
			case err != nil:
				metrics.IncAvailabilityCache("error")
				uc.logger.Warn("availability cache read failed", zap.Uint("shop_id", shop.ID), zap.Error(err))
			case ok:
				metrics.IncAvailabilityCache("hit")
				return cached, nil
			default:
				metrics.IncAvailabilityCache("miss")
			}
		}
	}

	reservations, err := uc.repo.ListShopReservations(ctx, shop.ID, from, from.AddDate(0, 0, days))
	if err != nil {
		return nil, err
	}

	out := make([]domain.BusyInterval, 0, len(reservations))
	for _, r := range reservations {
		out = append(out, domain.BusyInterval{
			ReservationID: r.ID,
			Start:         r.StartTime,
			End:           r.EndTime,
			StylistID:     r.StylistID,
		})
	}

	if cacheUsable {
		if err := uc.cache.Set(ctx, shop.ID, version, from, days, out); err != nil {
			uc.logger.Warn("availability cache write failed", zap.Uint("shop_id", shop.ID), zap.Error(err))
		}
	}

	return out, nil
}
