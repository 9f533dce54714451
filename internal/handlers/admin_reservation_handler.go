package handlers

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-scheduler/internal/dto"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
)

type ReservationLister interface {
	Execute(ctx context.Context, shopID *uint) ([]dto.ReservationListDTO, error)
}

type ReservationGetter interface {
	Execute(ctx context.Context, reservationID uint) (*dto.ReservationListDTO, error)
}

// AdminReservationHandler expõe a leitura de reservas de todos os usuários.
type AdminReservationHandler struct {
	list ReservationLister
	get  ReservationGetter
}

func NewAdminReservationHandler(list ReservationLister, get ReservationGetter) *AdminReservationHandler {
	return &AdminReservationHandler{list: list, get: get}
}

// ======================================================
// GET /api/admin/reservations?shop_id=N
// ======================================================

func (h *AdminReservationHandler) List(c *gin.Context) {
	var shopID *uint
	if v := c.Query("shop_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil || id == 0 {
			httperr.BadRequest(c, "invalid_shop_id", "Identificador inválido.")
			return
		}
		sid := uint(id)
		shopID = &sid
	}

	out, err := h.list.Execute(c.Request.Context(), shopID)
	if err != nil {
		respondError(c, err)
		return
	}

	httpresp.List(c, out)
}

// ======================================================
// GET /api/admin/reservations/:id
// ======================================================

func (h *AdminReservationHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	out, err := h.get.Execute(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	httpresp.OK(c, out)
}
