package dto

import (
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type ReservationListDTO struct {
	ID          uint      `json:"id"`
	Code        string    `json:"code"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	ShopID      uint      `json:"shop_id"`
	ShopName    string    `json:"shop_name"`
	MenuName    string    `json:"menu_name"`
	StylistID   *uint     `json:"stylist_id"`
	StylistName string    `json:"stylist_name,omitempty"`
}

// NewReservationListDTO espera Shop, Menu e Stylist pré-carregados.
func NewReservationListDTO(r *models.Reservation) ReservationListDTO {
	out := ReservationListDTO{
		ID:        r.ID,
		Code:      r.Code,
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
		ShopID:    r.ShopID,
		ShopName:  r.Shop.Name,
		MenuName:  r.Menu.Name,
		StylistID: r.StylistID,
	}
	if r.Stylist != nil {
		out.StylistName = r.Stylist.Name
	}
	return out
}
