package reservation

import (
	"fmt"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// Weekdays é um conjunto de dias da semana; bit i corresponde a time.Weekday(i).
type Weekdays uint8

const allWeekdays Weekdays = 1<<7 - 1

func NewWeekdays(days ...time.Weekday) Weekdays {
	var w Weekdays
	for _, d := range days {
		w |= 1 << uint(d)
	}
	return w
}

func (w Weekdays) Has(d time.Weekday) bool {
	if d < time.Sunday || d > time.Saturday {
		return false
	}
	return w&(1<<uint(d)) != 0
}

// TimeOfDay em minutos desde a meia-noite (horário local da loja).
type TimeOfDay int

func NewTimeOfDay(hour, minute int) TimeOfDay {
	return TimeOfDay(hour*60 + minute)
}

// ParseTimeOfDay aceita "HH:MM".
func ParseTimeOfDay(hm string) (TimeOfDay, error) {
	t, err := time.Parse("15:04", hm)
	if err != nil {
		return 0, fmt.Errorf("invalid time of day %q: %w", hm, err)
	}
	return NewTimeOfDay(t.Hour(), t.Minute()), nil
}

func TimeOfDayOf(t time.Time) TimeOfDay {
	return NewTimeOfDay(t.Hour(), t.Minute())
}

// On devolve o instante t no dia de day, no fuso de day.
func (t TimeOfDay) On(day time.Time) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d, int(t)/60, int(t)%60, 0, 0, day.Location())
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

// Schedule é o expediente semanal recorrente. Open < Close no mesmo dia;
// janelas que atravessam a meia-noite não são suportadas.
type Schedule struct {
	Days  Weekdays
	Open  TimeOfDay
	Close TimeOfDay
}

func (s Schedule) Validate() error {
	if s.Days&^allWeekdays != 0 {
		return fmt.Errorf("invalid weekday set %b", s.Days)
	}
	if s.Open < 0 || s.Close > NewTimeOfDay(24, 0) || s.Open >= s.Close {
		return fmt.Errorf("invalid window %s-%s", s.Open, s.Close)
	}
	return nil
}

// IsWithinSchedule verifica se [start, end] cabe no expediente do dia weekday.
// As duas bordas são inclusivas. start e end devem estar no fuso da loja.
func IsWithinSchedule(s Schedule, start, end time.Time, weekday time.Weekday) bool {
	if !s.Days.Has(weekday) {
		return false
	}
	if !end.After(start) {
		return false
	}

	// atravessa a meia-noite
	y1, m1, d1 := start.Date()
	y2, m2, d2 := end.Date()
	if y1 != y2 || m1 != m2 || d1 != d2 {
		return false
	}

	// comparação exata: segundos e nanos contam
	openAt := s.Open.On(start)
	closeAt := s.Close.On(start)
	return !start.Before(openAt) && !end.After(closeAt)
}

func scheduleFrom(days int, open, close string) (Schedule, error) {
	if days < 0 || days > int(allWeekdays) {
		return Schedule{}, fmt.Errorf("invalid weekday set %d", days)
	}
	o, err := ParseTimeOfDay(open)
	if err != nil {
		return Schedule{}, err
	}
	c, err := ParseTimeOfDay(close)
	if err != nil {
		return Schedule{}, err
	}
	sched := Schedule{Days: Weekdays(days), Open: o, Close: c}
	if err := sched.Validate(); err != nil {
		return Schedule{}, err
	}
	return sched, nil
}

func ShopSchedule(shop *models.Shop) (Schedule, error) {
	s, err := scheduleFrom(shop.Days, shop.OpenTime, shop.CloseTime)
	if err != nil {
		return Schedule{}, fmt.Errorf("shop %d schedule: %w", shop.ID, err)
	}
	return s, nil
}

func StylistSchedule(st *models.Stylist) (Schedule, error) {
	s, err := scheduleFrom(st.Days, st.OpenTime, st.CloseTime)
	if err != nil {
		return Schedule{}, fmt.Errorf("stylist %d schedule: %w", st.ID, err)
	}
	return s, nil
}
