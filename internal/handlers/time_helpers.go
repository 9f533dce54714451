package handlers

import (
	"context"
	"errors"
	"time"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/reservation"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

const (
	dateLayout = "2006-01-02"

	// reservation_date chega como "YYYY-MM-DD HH:MM:00"
	dateTimeLayout      = "2006-01-02 15:04:05"
	dateTimeShortLayout = "2006-01-02 15:04"
)

// --------------------------------------------------
// Timezone centralizado por loja
// --------------------------------------------------

// shopLocation resolve o fuso oficial da loja.
func shopLocation(ctx context.Context, shops domain.ShopLookup, shopID uint) (*time.Location, error) {
	shop, err := shops.GetShop(ctx, shopID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil, httperr.ErrNotFound("shop_not_found")
		}
		return nil, err
	}
	return timezone.Location(shop.Timezone), nil
}

func parseDateIn(loc *time.Location, dateStr string) (time.Time, error) {
	return time.ParseInLocation(dateLayout, dateStr, loc)
}

var errSecondsNotZero = errors.New("reservation time must fall on a whole minute")

// parseDateTimeIn aceita só horários em minuto cheio (segundos "00").
func parseDateTimeIn(loc *time.Location, value string) (time.Time, error) {
	t, err := time.ParseInLocation(dateTimeLayout, value, loc)
	if err != nil {
		t, err = time.ParseInLocation(dateTimeShortLayout, value, loc)
		if err != nil {
			return time.Time{}, err
		}
	}
	if t.Second() != 0 || t.Nanosecond() != 0 {
		return time.Time{}, errSecondsNotZero
	}
	return t, nil
}
