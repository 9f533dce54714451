package reservation

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/reservation"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/metrics"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

type AuditDispatcher interface {
	Dispatch(ev audit.Event)
}

// ======================================================
// USE CASE
// ======================================================

type CreateReservation struct {
	repo   domain.Repository
	audit  AuditDispatcher
	cache  domain.AvailabilityCache
	clock  timezone.Clock
	logger *zap.Logger
}

func NewCreateReservation(
	repo domain.Repository,
	audit AuditDispatcher,
	cache domain.AvailabilityCache,
	clock timezone.Clock,
	logger *zap.Logger,
) *CreateReservation {
	return &CreateReservation{
		repo:   repo,
		audit:  audit,
		cache:  cache,
		clock:  clock,
		logger: logger,
	}
}

// ======================================================
// EXECUTE
// ======================================================

// Execute valida e cria a reserva. As regras rodam em ordem e a primeira
// violada interrompe a cadeia.
func (uc *CreateReservation) Execute(
	ctx context.Context,
	in domain.CreateInput,
) (*models.Reservation, error) {

	r, err := uc.execute(ctx, in)

	kind, isBusiness := httperr.KindOf(err)
	switch {
	case err == nil:
		metrics.IncReservationAttempt("created")
	case isBusiness:
		metrics.IncReservationAttempt(string(kind))
		uc.logger.Debug("reservation rejected",
			zap.Uint("shop_id", in.ShopID),
			zap.Uint("menu_id", in.MenuID),
			zap.Time("start", in.Start),
			zap.String("reason", err.Error()),
		)
	default:
		metrics.IncReservationAttempt("error")
		uc.logger.Error("reservation failed", zap.Uint("shop_id", in.ShopID), zap.Error(err))
	}

	return r, err
}

func (uc *CreateReservation) execute(
	ctx context.Context,
	in domain.CreateInput,
) (*models.Reservation, error) {

	// --------------------------------------------------
	// 1️⃣ Loja
	// --------------------------------------------------
	shop, err := uc.repo.GetShop(ctx, in.ShopID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil, httperr.ErrNotFound("shop_not_found")
		}
		return nil, err
	}

	loc := timezone.Location(shop.Timezone)
	start := in.Start.In(loc)

	// --------------------------------------------------
	// 2️⃣ Data no passado
	// --------------------------------------------------
	if start.Before(uc.clock.Now()) {
		return nil, httperr.ErrInvalidParams("reservation_in_past")
	}

	// --------------------------------------------------
	// 3️⃣ Menu da loja
	// --------------------------------------------------
	menu, err := uc.repo.GetShopMenu(ctx, shop.ID, in.MenuID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil, httperr.ErrInvalidParams("menu_not_found")
		}
		return nil, err
	}
	if menu.DurationMin <= 0 {
		return nil, httperr.ErrInvalidParams("invalid_menu_duration")
	}

	end := start.Add(time.Duration(menu.DurationMin) * time.Minute)

	// --------------------------------------------------
	// 4️⃣ Expediente da loja
	// --------------------------------------------------
	shopSchedule, err := domain.ShopSchedule(shop)
	if err != nil {
		return nil, err
	}
	if !domain.IsWithinSchedule(shopSchedule, start, end, start.Weekday()) {
		return nil, httperr.ErrInvalidParams("outside_shop_hours")
	}

	// --------------------------------------------------
	// 5️⃣ → 7️⃣ Capacidade, profissional e gravação, sob lock da loja
	// --------------------------------------------------
	var created *models.Reservation
	err = uc.repo.WithShopLock(ctx, shop.ID, func(tx domain.ReservationTx) error {
		dayStart := domain.DayStart(start, loc)
		existing, err := tx.ListShopReservations(
			ctx,
			shop.ID,
			dayStart,
			dayStart.AddDate(0, 0, domain.ConflictLookaheadDays),
		)
		if err != nil {
			return err
		}

		conflicts := domain.FindConflicts(start, end, existing)
		if len(conflicts) >= shop.Seats {
			return httperr.ErrInvalidParams("no_seats_available")
		}

		if in.StylistID != nil {
			if err := uc.checkStylist(ctx, shop.ID, *in.StylistID, start, end, existing); err != nil {
				return err
			}
		}

		r := &models.Reservation{
			Code:      uuid.NewString(),
			UserID:    in.UserID,
			ShopID:    shop.ID,
			StylistID: in.StylistID,
			MenuID:    menu.ID,
			StartTime: start,
			EndTime:   end,
		}

		if err := tx.InsertReservation(ctx, r); err != nil {
			if httperr.IsExclusionConflict(err) {
				return httperr.ErrInvalidParams("stylist_unavailable")
			}
			return err
		}

		created = r
		return nil
	})

	if errors.Is(err, domain.ErrRecordNotFound) {
		// loja removida entre a leitura e o lock
		return nil, httperr.ErrNotFound("shop_not_found")
	}
	if err != nil {
		if httperr.IsBusiness(err, "no_seats_available") || httperr.IsBusiness(err, "stylist_unavailable") {
			uc.dispatch(in, shop.ID, "reservation_conflict", nil, map[string]any{
				"start":  start,
				"end":    end,
				"reason": err.Error(),
			})
		}
		return nil, err
	}

	// --------------------------------------------------
	// Cache + auditoria
	// --------------------------------------------------
	if uc.cache != nil {
		if err := uc.cache.Invalidate(ctx, shop.ID); err != nil {
			uc.logger.Warn("availability cache invalidation failed", zap.Uint("shop_id", shop.ID), zap.Error(err))
		}
	}

	uc.dispatch(in, shop.ID, "reservation_created", &created.ID, nil)

	return created, nil
}

// checkStylist aplica as regras do profissional (capacidade 1).
func (uc *CreateReservation) checkStylist(
	ctx context.Context,
	shopID uint,
	stylistID uint,
	start time.Time,
	end time.Time,
	existing []models.Reservation,
) error {

	stylist, err := uc.repo.GetShopStylist(ctx, shopID, stylistID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return httperr.ErrInvalidParams("stylist_not_found")
		}
		return err
	}

	schedule, err := domain.StylistSchedule(stylist)
	if err != nil {
		return err
	}
	if !domain.IsWithinSchedule(schedule, start, end, start.Weekday()) {
		return httperr.ErrInvalidParams("outside_stylist_hours")
	}

	if len(domain.FindConflicts(start, end, domain.ForStylist(existing, stylist.ID))) > 0 {
		return httperr.ErrInvalidParams("stylist_unavailable")
	}

	return nil
}

func (uc *CreateReservation) dispatch(in domain.CreateInput, shopID uint, action string, entityID *uint, meta any) {
	if uc.audit == nil {
		return
	}
	userID := in.UserID
	uc.audit.Dispatch(audit.Event{
		ShopID:   shopID,
		UserID:   &userID,
		Action:   action,
		Entity:   "reservation",
		EntityID: entityID,
		Metadata: meta,
	})
}
