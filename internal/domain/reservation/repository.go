package reservation

import (
	"context"
	"errors"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// ErrRecordNotFound é devolvido pelos repositórios quando a entidade não existe.
var ErrRecordNotFound = errors.New("record not found")

type ShopLookup interface {
	GetShop(ctx context.Context, shopID uint) (*models.Shop, error)
}

type StylistLookup interface {
	// GetShopStylist só encontra o profissional se ele pertencer à loja.
	GetShopStylist(ctx context.Context, shopID, stylistID uint) (*models.Stylist, error)
}

type MenuLookup interface {
	// GetShopMenu só encontra o menu se ele pertencer à loja.
	GetShopMenu(ctx context.Context, shopID, menuID uint) (*models.Menu, error)
}

// ReservationReader lista reservas da loja com início em [from, to).
type ReservationReader interface {
	ListShopReservations(ctx context.Context, shopID uint, from, to time.Time) ([]models.Reservation, error)
}

// ReservationTx é a visão do armazenamento dentro da seção exclusiva.
type ReservationTx interface {
	ReservationReader
	InsertReservation(ctx context.Context, r *models.Reservation) error
}

type ReservationStore interface {
	ReservationReader

	// WithShopLock executa fn com exclusão mútua por loja: nenhuma outra
	// chamada para o mesmo shopID roda fn ao mesmo tempo, e o que fn grava
	// é confirmado atomicamente.
	WithShopLock(ctx context.Context, shopID uint, fn func(tx ReservationTx) error) error

	ListUserReservations(ctx context.Context, userID uint) ([]models.Reservation, error)
	GetUserReservation(ctx context.Context, userID, reservationID uint) (*models.Reservation, error)
	DeleteReservation(ctx context.Context, reservationID uint) error
}

// ReservationAdminReader lê reservas de qualquer usuário.
type ReservationAdminReader interface {
	// ListReservations filtra pela loja quando shopID não é nil.
	ListReservations(ctx context.Context, shopID *uint) ([]models.Reservation, error)
	GetReservation(ctx context.Context, reservationID uint) (*models.Reservation, error)
}

type Repository interface {
	ShopLookup
	StylistLookup
	MenuLookup
	ReservationStore
	ReservationAdminReader
}

// AvailabilityCache guarda listas de intervalos ocupados por loja.
// Cada loja tem uma versão; Invalidate a incrementa a cada reserva criada
// ou removida. Entradas gravadas com uma versão antiga nunca são lidas,
// então uma listagem que leu o banco antes de uma criação não consegue
// publicar um resultado velho.
type AvailabilityCache interface {
	Version(ctx context.Context, shopID uint) (int64, error)
	Get(ctx context.Context, shopID uint, version int64, from time.Time, days int) ([]BusyInterval, bool, error)
	Set(ctx context.Context, shopID uint, version int64, from time.Time, days int, intervals []BusyInterval) error
	Invalidate(ctx context.Context, shopID uint) error
}
