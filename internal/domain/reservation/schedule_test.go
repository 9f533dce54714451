package reservation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// 2030-01-07 é uma segunda-feira.
func at(day, hour, minute int) time.Time {
	return time.Date(2030, time.January, day, hour, minute, 0, 0, time.UTC)
}

func weekdaySchedule() Schedule {
	return Schedule{
		Days:  NewWeekdays(time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday),
		Open:  NewTimeOfDay(9, 0),
		Close: NewTimeOfDay(18, 0),
	}
}

func TestIsWithinSchedule(t *testing.T) {
	s := weekdaySchedule()

	tests := []struct {
		name       string
		start, end time.Time
		want       bool
	}{
		{"inside window", at(7, 10, 0), at(7, 11, 0), true},
		{"starts at opening", at(7, 9, 0), at(7, 10, 0), true},
		{"ends at closing", at(7, 17, 0), at(7, 18, 0), true},
		{"whole window", at(7, 9, 0), at(7, 18, 0), true},
		{"starts before opening", at(7, 8, 59), at(7, 9, 30), false},
		{"ends after closing", at(7, 17, 30), at(7, 18, 1), false},
		{"starts after closing", at(7, 18, 0), at(7, 18, 30), false},
		{"closed on sunday", at(6, 10, 0), at(6, 11, 0), false},
		{"crosses midnight", at(7, 23, 30), at(8, 0, 30), false},
		{"empty interval", at(7, 10, 0), at(7, 10, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsWithinSchedule(s, tt.start, tt.end, tt.start.Weekday())
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsWithinSchedule_UsesGivenWeekday(t *testing.T) {
	s := weekdaySchedule()
	assert.False(t, IsWithinSchedule(s, at(7, 10, 0), at(7, 11, 0), time.Sunday))
	assert.True(t, IsWithinSchedule(s, at(6, 10, 0), at(6, 11, 0), time.Monday))
}

func TestIsWithinSchedule_Deterministic(t *testing.T) {
	s := weekdaySchedule()
	first := IsWithinSchedule(s, at(8, 12, 0), at(8, 13, 0), time.Tuesday)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, IsWithinSchedule(s, at(8, 12, 0), at(8, 13, 0), time.Tuesday))
	}
}

func TestWeekdays(t *testing.T) {
	w := NewWeekdays(time.Sunday, time.Saturday)
	assert.True(t, w.Has(time.Sunday))
	assert.True(t, w.Has(time.Saturday))
	assert.False(t, w.Has(time.Monday))
	assert.False(t, w.Has(time.Weekday(9)))
	assert.Equal(t, Weekdays(0b1000001), w)
}

func TestParseTimeOfDay(t *testing.T) {
	tod, err := ParseTimeOfDay("09:30")
	require.NoError(t, err)
	assert.Equal(t, NewTimeOfDay(9, 30), tod)
	assert.Equal(t, "09:30", tod.String())

	_, err = ParseTimeOfDay("9h30")
	assert.Error(t, err)
}

func TestScheduleValidate(t *testing.T) {
	assert.NoError(t, weekdaySchedule().Validate())

	overnight := Schedule{Days: allWeekdays, Open: NewTimeOfDay(22, 0), Close: NewTimeOfDay(2, 0)}
	assert.Error(t, overnight.Validate())

	empty := Schedule{Days: allWeekdays, Open: NewTimeOfDay(9, 0), Close: NewTimeOfDay(9, 0)}
	assert.Error(t, empty.Validate())
}

func TestShopSchedule(t *testing.T) {
	shop := &models.Shop{
		ID:        1,
		Days:      int(NewWeekdays(time.Monday)),
		OpenTime:  "09:00",
		CloseTime: "18:00",
	}
	s, err := ShopSchedule(shop)
	require.NoError(t, err)
	assert.Equal(t, NewTimeOfDay(9, 0), s.Open)
	assert.Equal(t, NewTimeOfDay(18, 0), s.Close)
	assert.True(t, s.Days.Has(time.Monday))

	shop.CloseTime = "late"
	_, err = ShopSchedule(shop)
	assert.Error(t, err)
}

func TestIsWithinSchedule_SubMinuteBounds(t *testing.T) {
	s := weekdaySchedule()
	sec := func(day, hour, minute, second int) time.Time {
		return time.Date(2030, time.January, day, hour, minute, second, 0, time.UTC)
	}

	// 17:00:30 + 60 min termina 30s depois do fechamento
	assert.False(t, IsWithinSchedule(s, sec(7, 17, 0, 30), sec(7, 18, 0, 30), time.Monday))
	// um nanossegundo além do fechamento também conta
	assert.False(t, IsWithinSchedule(s, at(7, 17, 0), at(7, 18, 0).Add(time.Nanosecond), time.Monday))
	// 08:59:30 começa antes da abertura
	assert.False(t, IsWithinSchedule(s, sec(7, 8, 59, 30), sec(7, 9, 59, 30), time.Monday))
	// segundos dentro da janela continuam válidos
	assert.True(t, IsWithinSchedule(s, sec(7, 9, 0, 30), sec(7, 10, 0, 30), time.Monday))
}

func TestIsWithinSchedule_ShopTimezone(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)
	s := weekdaySchedule()

	start := time.Date(2030, time.January, 7, 17, 0, 0, 0, tokyo)
	assert.True(t, IsWithinSchedule(s, start, start.Add(time.Hour), time.Monday))
	assert.False(t, IsWithinSchedule(s, start, start.Add(61*time.Minute), time.Monday))
}

func TestShopSchedule_RejectsInvalidWindow(t *testing.T) {
	shop := &models.Shop{
		ID:        1,
		Days:      int(NewWeekdays(time.Monday)),
		OpenTime:  "22:00",
		CloseTime: "02:00",
	}
	_, err := ShopSchedule(shop)
	assert.Error(t, err)

	stylist := &models.Stylist{ID: 2, Days: 1 << 9, OpenTime: "09:00", CloseTime: "18:00"}
	_, err = StylistSchedule(stylist)
	assert.Error(t, err)
}
