package reservation

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/reservation"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
)

type DeleteReservation struct {
	repo   domain.ReservationStore
	audit  AuditDispatcher
	cache  domain.AvailabilityCache
	logger *zap.Logger
}

func NewDeleteReservation(
	repo domain.ReservationStore,
	audit AuditDispatcher,
	cache domain.AvailabilityCache,
	logger *zap.Logger,
) *DeleteReservation {
	return &DeleteReservation{
		repo:   repo,
		audit:  audit,
		cache:  cache,
		logger: logger,
	}
}

// Execute remove a reserva do próprio usuário.
func (uc *DeleteReservation) Execute(
	ctx context.Context,
	userID uint,
	reservationID uint,
) error {

	r, err := uc.repo.GetUserReservation(ctx, userID, reservationID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return httperr.ErrNotFound("reservation_not_found")
		}
		return err
	}

	if err := uc.repo.DeleteReservation(ctx, r.ID); err != nil {
		return err
	}

	if uc.cache != nil {
		if err := uc.cache.Invalidate(ctx, r.ShopID); err != nil {
			uc.logger.Warn("availability cache invalidation failed", zap.Uint("shop_id", r.ShopID), zap.Error(err))
		}
	}

	if uc.audit != nil {
		uc.audit.Dispatch(audit.Event{
			ShopID:   r.ShopID,
			UserID:   &userID,
			Action:   "reservation_deleted",
			Entity:   "reservation",
			EntityID: &r.ID,
		})
	}

	return nil
}
