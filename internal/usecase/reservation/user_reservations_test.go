package reservation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

func seedUserReservations(f *fixture) {
	f.repo.reservations = append(f.repo.reservations,
		models.Reservation{ID: 1, UserID: clientID, ShopID: shopID, StartTime: at(7, 10, 0), EndTime: at(7, 11, 0),
			Shop: models.Shop{Name: "Salon A"}, Menu: models.Menu{Name: "Corte"}},
		models.Reservation{ID: 2, UserID: clientID, ShopID: shopID, StartTime: at(9, 10, 0), EndTime: at(9, 11, 0),
			StylistID: ptr(stylistID), Stylist: &models.Stylist{Name: "Yui"}},
		models.Reservation{ID: 3, UserID: 200, ShopID: shopID, StartTime: at(8, 10, 0), EndTime: at(8, 11, 0)},
	)
	f.repo.nextID = 4
}

func TestListUserReservations(t *testing.T) {
	f := newFixture(t, 1)
	seedUserReservations(f)

	out, err := NewListUserReservations(f.repo).Execute(context.Background(), clientID)
	require.NoError(t, err)

	require.Len(t, out, 2)
	assert.Equal(t, uint(2), out[0].ID)
	assert.Equal(t, "Yui", out[0].StylistName)
	assert.Equal(t, uint(1), out[1].ID)
	assert.Equal(t, "Salon A", out[1].ShopName)
	assert.Equal(t, "Corte", out[1].MenuName)
}

func TestListUserReservations_Empty(t *testing.T) {
	f := newFixture(t, 1)

	out, err := NewListUserReservations(f.repo).Execute(context.Background(), clientID)
	require.NoError(t, err)
	assert.NotNil(t, out)
	assert.Empty(t, out)
}

func TestGetUserReservation(t *testing.T) {
	f := newFixture(t, 1)
	seedUserReservations(f)
	uc := NewGetUserReservation(f.repo)

	r, err := uc.Execute(context.Background(), clientID, 1)
	require.NoError(t, err)
	assert.Equal(t, uint(1), r.ID)

	// reserva de outro usuário
	_, err = uc.Execute(context.Background(), clientID, 3)
	requireBusiness(t, err, httperr.KindNotFound, "reservation_not_found")

	_, err = uc.Execute(context.Background(), clientID, 42)
	requireBusiness(t, err, httperr.KindNotFound, "reservation_not_found")
}

func TestDeleteReservation(t *testing.T) {
	f := newFixture(t, 1)
	seedUserReservations(f)
	uc := NewDeleteReservation(f.repo, f.audit, f.cache, zap.NewNop())

	require.NoError(t, uc.Execute(context.Background(), clientID, 1))
	assert.Equal(t, 2, f.repo.count())
	assert.Equal(t, []string{"reservation_deleted"}, f.audit.actions())
	assert.Equal(t, []uint{shopID}, f.cache.invalidated)

	err := uc.Execute(context.Background(), clientID, 3)
	requireBusiness(t, err, httperr.KindNotFound, "reservation_not_found")
	assert.Equal(t, 2, f.repo.count())
}

func TestDeleteReservation_FreesTheSlot(t *testing.T) {
	f := newFixture(t, 1)
	ctx := context.Background()

	r, err := f.uc.Execute(ctx, input(at(7, 10, 0), menu60, nil))
	require.NoError(t, err)

	_, err = f.uc.Execute(ctx, input(at(7, 10, 0), menu60, nil))
	requireBusiness(t, err, httperr.KindInvalidParams, "no_seats_available")

	require.NoError(t, NewDeleteReservation(f.repo, nil, nil, zap.NewNop()).Execute(ctx, clientID, r.ID))

	_, err = f.uc.Execute(ctx, input(at(7, 10, 0), menu60, nil))
	require.NoError(t, err)
}
