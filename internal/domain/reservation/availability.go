package reservation

import "time"

const (
	// Reservas não atravessam a meia-noite, então o dia do início basta
	// para a checagem de conflito.
	ConflictLookaheadDays = 1

	DefaultAvailabilityDays = 7
	MaxAvailabilityDays     = 31
)

type CreateInput struct {
	UserID    uint
	ShopID    uint
	Start     time.Time
	MenuID    uint
	StylistID *uint
}

type AvailabilityInput struct {
	ShopID      uint
	WindowStart time.Time
	WindowDays  int
}

// BusyInterval é um intervalo ocupado exibido no calendário de reservas.
type BusyInterval struct {
	ReservationID uint      `json:"id"`
	Start         time.Time `json:"reservation_start_date"`
	End           time.Time `json:"reservation_end_date"`
	StylistID     *uint     `json:"stylist_id"`
}

// DayStart devolve a meia-noite do dia de t no fuso loc.
func DayStart(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}
