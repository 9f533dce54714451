package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/reservation"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type ReservationGormRepository struct {
	db *gorm.DB
}

func NewReservationGormRepository(db *gorm.DB) *ReservationGormRepository {
	return &ReservationGormRepository{db: db}
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrRecordNotFound
	}
	return err
}

// --------------------------------------------------
// Shop / Stylist / Menu
// --------------------------------------------------

func (r *ReservationGormRepository) GetShop(
	ctx context.Context,
	shopID uint,
) (*models.Shop, error) {

	var shop models.Shop
	if err := r.db.WithContext(ctx).First(&shop, shopID).Error; err != nil {
		return nil, notFound(err)
	}
	return &shop, nil
}

func (r *ReservationGormRepository) GetShopStylist(
	ctx context.Context,
	shopID uint,
	stylistID uint,
) (*models.Stylist, error) {

	var stylist models.Stylist
	if err := r.db.WithContext(ctx).
		Where("id = ? AND shop_id = ?", stylistID, shopID).
		First(&stylist).Error; err != nil {
		return nil, notFound(err)
	}
	return &stylist, nil
}

func (r *ReservationGormRepository) GetShopMenu(
	ctx context.Context,
	shopID uint,
	menuID uint,
) (*models.Menu, error) {

	var menu models.Menu
	if err := r.db.WithContext(ctx).
		Where("id = ? AND shop_id = ?", menuID, shopID).
		First(&menu).Error; err != nil {
		return nil, notFound(err)
	}
	return &menu, nil
}

// --------------------------------------------------
// Reservation (leitura por janela)
// --------------------------------------------------

func listShopReservations(
	db *gorm.DB,
	shopID uint,
	from time.Time,
	to time.Time,
) ([]models.Reservation, error) {

	var reservations []models.Reservation
	if err := db.
		Where(
			"shop_id = ? AND start_time >= ? AND start_time < ?",
			shopID, from, to,
		).
		Order("start_time ASC").
		Find(&reservations).Error; err != nil {
		return nil, err
	}
	return reservations, nil
}

func (r *ReservationGormRepository) ListShopReservations(
	ctx context.Context,
	shopID uint,
	from time.Time,
	to time.Time,
) ([]models.Reservation, error) {
	return listShopReservations(r.db.WithContext(ctx), shopID, from, to)
}

// --------------------------------------------------
// Reservation (seção exclusiva por loja)
// --------------------------------------------------

// WithShopLock abre uma transação e trava a linha da loja com
// SELECT ... FOR UPDATE. Criações concorrentes para a mesma loja
// esperam o commit (ou rollback) da anterior.
func (r *ReservationGormRepository) WithShopLock(
	ctx context.Context,
	shopID uint,
	fn func(tx domain.ReservationTx) error,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var shop models.Shop
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id").
			First(&shop, shopID).Error; err != nil {
			return notFound(err)
		}

		return fn(&reservationTx{db: tx})
	})
}

type reservationTx struct {
	db *gorm.DB
}

func (t *reservationTx) ListShopReservations(
	ctx context.Context,
	shopID uint,
	from time.Time,
	to time.Time,
) ([]models.Reservation, error) {
	return listShopReservations(t.db.WithContext(ctx), shopID, from, to)
}

func (t *reservationTx) InsertReservation(
	ctx context.Context,
	res *models.Reservation,
) error {
	return t.db.WithContext(ctx).Omit(clause.Associations).Create(res).Error
}

// --------------------------------------------------
// Reservation (usuário)
// --------------------------------------------------

func (r *ReservationGormRepository) ListUserReservations(
	ctx context.Context,
	userID uint,
) ([]models.Reservation, error) {

	var reservations []models.Reservation
	if err := r.db.WithContext(ctx).
		Preload("Shop").
		Preload("Menu").
		Preload("Stylist").
		Where("user_id = ?", userID).
		Order("start_time DESC").
		Find(&reservations).Error; err != nil {
		return nil, err
	}
	return reservations, nil
}

func (r *ReservationGormRepository) GetUserReservation(
	ctx context.Context,
	userID uint,
	reservationID uint,
) (*models.Reservation, error) {

	var res models.Reservation
	if err := r.db.WithContext(ctx).
		Preload("Shop").
		Preload("Menu").
		Preload("Stylist").
		Where("id = ? AND user_id = ?", reservationID, userID).
		First(&res).Error; err != nil {
		return nil, notFound(err)
	}
	return &res, nil
}

func (r *ReservationGormRepository) DeleteReservation(
	ctx context.Context,
	reservationID uint,
) error {
	return r.db.WithContext(ctx).Delete(&models.Reservation{}, reservationID).Error
}

// --------------------------------------------------
// Reservation (admin)
// --------------------------------------------------

func (r *ReservationGormRepository) ListReservations(
	ctx context.Context,
	shopID *uint,
) ([]models.Reservation, error) {

	q := r.db.WithContext(ctx).
		Preload("Shop").
		Preload("Menu").
		Preload("Stylist")
	if shopID != nil {
		q = q.Where("shop_id = ?", *shopID)
	}

	var reservations []models.Reservation
	if err := q.Order("start_time DESC").Find(&reservations).Error; err != nil {
		return nil, err
	}
	return reservations, nil
}

func (r *ReservationGormRepository) GetReservation(
	ctx context.Context,
	reservationID uint,
) (*models.Reservation, error) {

	var res models.Reservation
	if err := r.db.WithContext(ctx).
		Preload("Shop").
		Preload("Menu").
		Preload("Stylist").
		First(&res, reservationID).Error; err != nil {
		return nil, notFound(err)
	}
	return &res, nil
}

// Compile-time check
var _ domain.Repository = (*ReservationGormRepository)(nil)
