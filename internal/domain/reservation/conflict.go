package reservation

import (
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// Overlaps compara intervalos semiabertos [aStart, aEnd) e [bStart, bEnd).
// Intervalos que apenas se tocam não conflitam.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// FindConflicts devolve as reservas existentes que se sobrepõem a [start, end).
func FindConflicts(start, end time.Time, existing []models.Reservation) []models.Reservation {
	var conflicts []models.Reservation
	for _, r := range existing {
		if Overlaps(start, end, r.StartTime, r.EndTime) {
			conflicts = append(conflicts, r)
		}
	}
	return conflicts
}

// ForStylist filtra as reservas já atribuídas ao profissional.
func ForStylist(reservations []models.Reservation, stylistID uint) []models.Reservation {
	var out []models.Reservation
	for _, r := range reservations {
		if r.StylistID != nil && *r.StylistID == stylistID {
			out = append(out, r)
		}
	}
	return out
}
