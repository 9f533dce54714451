package reservation

import (
	"context"
	"errors"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/reservation"
	"github.com/BruksfildServices01/salon-scheduler/internal/dto"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
)

// ListReservations é a listagem administrativa, de todos os usuários.
type ListReservations struct {
	repo domain.ReservationAdminReader
}

func NewListReservations(repo domain.ReservationAdminReader) *ListReservations {
	return &ListReservations{repo: repo}
}

func (uc *ListReservations) Execute(
	ctx context.Context,
	shopID *uint,
) ([]dto.ReservationListDTO, error) {

	reservations, err := uc.repo.ListReservations(ctx, shopID)
	if err != nil {
		return nil, err
	}

	out := make([]dto.ReservationListDTO, 0, len(reservations))
	for i := range reservations {
		out = append(out, dto.NewReservationListDTO(&reservations[i]))
	}
	return out, nil
}

type GetReservation struct {
	repo domain.ReservationAdminReader
}

func NewGetReservation(repo domain.ReservationAdminReader) *GetReservation {
	return &GetReservation{repo: repo}
}

func (uc *GetReservation) Execute(
	ctx context.Context,
	reservationID uint,
) (*dto.ReservationListDTO, error) {

	r, err := uc.repo.GetReservation(ctx, reservationID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil, httperr.ErrNotFound("reservation_not_found")
		}
		return nil, err
	}

	out := dto.NewReservationListDTO(r)
	return &out, nil
}
