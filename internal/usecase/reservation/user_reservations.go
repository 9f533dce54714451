package reservation

import (
	"context"
	"errors"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/reservation"
	"github.com/BruksfildServices01/salon-scheduler/internal/dto"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type ListUserReservations struct {
	repo domain.ReservationStore
}

func NewListUserReservations(repo domain.ReservationStore) *ListUserReservations {
	return &ListUserReservations{repo: repo}
}

func (uc *ListUserReservations) Execute(
	ctx context.Context,
	userID uint,
) ([]dto.ReservationListDTO, error) {

	reservations, err := uc.repo.ListUserReservations(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]dto.ReservationListDTO, 0, len(reservations))
	for i := range reservations {
		out = append(out, dto.NewReservationListDTO(&reservations[i]))
	}
	return out, nil
}

type GetUserReservation struct {
	repo domain.ReservationStore
}

func NewGetUserReservation(repo domain.ReservationStore) *GetUserReservation {
	return &GetUserReservation{repo: repo}
}

func (uc *GetUserReservation) Execute(
	ctx context.Context,
	userID uint,
	reservationID uint,
) (*models.Reservation, error) {

	r, err := uc.repo.GetUserReservation(ctx, userID, reservationID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil, httperr.ErrNotFound("reservation_not_found")
		}
		return nil, err
	}
	return r, nil
}
