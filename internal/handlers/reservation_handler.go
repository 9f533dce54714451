package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/reservation"
	"github.com/BruksfildServices01/salon-scheduler/internal/dto"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

// ======================================================
// CONTRATOS DOS USE CASES
// ======================================================

type ReservationCreator interface {
	Execute(ctx context.Context, in domain.CreateInput) (*models.Reservation, error)
}

type AvailabilityLister interface {
	Execute(ctx context.Context, in domain.AvailabilityInput) ([]domain.BusyInterval, error)
}

type UserReservationLister interface {
	Execute(ctx context.Context, userID uint) ([]dto.ReservationListDTO, error)
}

type UserReservationGetter interface {
	Execute(ctx context.Context, userID, reservationID uint) (*models.Reservation, error)
}

type ReservationDeleter interface {
	Execute(ctx context.Context, userID, reservationID uint) error
}

// ======================================================
// MENSAGENS
// ======================================================

var reservationMessages = map[string]string{
	"shop_not_found":        "Loja não encontrada.",
	"reservation_in_past":   "Não é possível reservar um horário no passado.",
	"menu_not_found":        "Menu não encontrado nesta loja.",
	"invalid_menu_duration": "O menu não possui uma duração válida.",
	"outside_shop_hours":    "Horário fora do expediente da loja.",
	"no_seats_available":    "Não há lugares disponíveis neste horário.",
	"stylist_not_found":     "Profissional não encontrado nesta loja.",
	"outside_stylist_hours": "Horário fora do expediente do profissional.",
	"stylist_unavailable":   "O profissional já possui uma reserva neste horário.",
	"reservation_not_found": "Reserva não encontrada.",
	"invalid_window":        "Janela de dias inválida.",
}

// ======================================================
// HANDLER
// ======================================================

type ReservationHandler struct {
	shops     domain.ShopLookup
	create    ReservationCreator
	available AvailabilityLister
	listMine  UserReservationLister
	getMine   UserReservationGetter
	delete    ReservationDeleter
	clock     timezone.Clock
}

func NewReservationHandler(
	shops domain.ShopLookup,
	create ReservationCreator,
	available AvailabilityLister,
	listMine UserReservationLister,
	getMine UserReservationGetter,
	delete ReservationDeleter,
	clock timezone.Clock,
) *ReservationHandler {
	return &ReservationHandler{
		shops:     shops,
		create:    create,
		available: available,
		listMine:  listMine,
		getMine:   getMine,
		delete:    delete,
		clock:     clock,
	}
}

// --------- Requests ---------

type CreateReservationRequest struct {
	ReservationDate string `json:"reservation_date" binding:"required"`
	MenuID          uint   `json:"menu_id" binding:"required"`
	StylistID       *uint  `json:"stylist_id"`
}

// --------- Helpers ---------

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_"+name, "Identificador inválido.")
		return 0, false
	}
	return uint(id), true
}

// respondError registra falhas de infraestrutura antes de responder.
func respondError(c *gin.Context, err error) {
	if _, isBusiness := httperr.KindOf(err); !isBusiness {
		middleware.Logger(c).Error("request failed", zap.Error(err))
	}
	httperr.FromError(c, err, reservationMessages)
}

func mustUser(c *gin.Context) (uint, bool) {
	userID, ok := middleware.UserID(c)
	if !ok {
		httperr.Unauthorized(c, "user_not_in_context", "Usuário não autenticado.")
		return 0, false
	}
	return userID, true
}

// ======================================================
// POST /api/shops/:id/reservations
// ======================================================

func (h *ReservationHandler) Create(c *gin.Context) {
	userID, ok := mustUser(c)
	if !ok {
		return
	}

	shopID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados da reserva inválidos.")
		return
	}

	loc, err := shopLocation(c.Request.Context(), h.shops, shopID)
	if err != nil {
		respondError(c, err)
		return
	}

	start, err := parseDateTimeIn(loc, req.ReservationDate)
	if err != nil {
		httperr.BadRequest(c, "invalid_reservation_date", "Use o formato YYYY-MM-DD HH:MM:00.")
		return
	}

	// stylist_id 0 equivale a "sem profissional"
	stylistID := req.StylistID
	if stylistID != nil && *stylistID == 0 {
		stylistID = nil
	}

	r, err := h.create.Execute(c.Request.Context(), domain.CreateInput{
		UserID:    userID,
		ShopID:    shopID,
		Start:     start,
		MenuID:    req.MenuID,
		StylistID: stylistID,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":                     r.ID,
		"code":                   r.Code,
		"shop_id":                r.ShopID,
		"menu_id":                r.MenuID,
		"stylist_id":             r.StylistID,
		"reservation_start_date": r.StartTime,
		"reservation_end_date":   r.EndTime,
	})
}

// ======================================================
// GET /api/shops/:id/availability?date=YYYY-MM-DD&days=N
// ======================================================

func (h *ReservationHandler) Availability(c *gin.Context) {
	shopID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	days := 0
	if v := c.Query("days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			httperr.BadRequest(c, "invalid_window", reservationMessages["invalid_window"])
			return
		}
		days = n
	}

	loc, err := shopLocation(c.Request.Context(), h.shops, shopID)
	if err != nil {
		respondError(c, err)
		return
	}

	var from time.Time
	if v := c.Query("date"); v != "" {
		from, err = parseDateIn(loc, v)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "Use o formato YYYY-MM-DD.")
			return
		}
	} else {
		from = h.clock.Now().In(loc)
	}

	out, err := h.available.Execute(c.Request.Context(), domain.AvailabilityInput{
		ShopID:      shopID,
		WindowStart: from,
		WindowDays:  days,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	httpresp.List(c, out)
}

// ======================================================
// /api/me/reservations
// ======================================================

func (h *ReservationHandler) ListMine(c *gin.Context) {
	userID, ok := mustUser(c)
	if !ok {
		return
	}

	out, err := h.listMine.Execute(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	httpresp.List(c, out)
}

func (h *ReservationHandler) GetMine(c *gin.Context) {
	userID, ok := mustUser(c)
	if !ok {
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	r, err := h.getMine.Execute(c.Request.Context(), userID, id)
	if err != nil {
		respondError(c, err)
		return
	}

	httpresp.OK(c, dto.NewReservationListDTO(r))
}

func (h *ReservationHandler) DeleteMine(c *gin.Context) {
	userID, ok := mustUser(c)
	if !ok {
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.delete.Execute(c.Request.Context(), userID, id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
