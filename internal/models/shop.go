package models

import "time"

// Shop guarda o expediente semanal e a quantidade de cadeiras
// (reservas simultâneas permitidas).
type Shop struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Name     string `gorm:"size:100;not null" json:"name"`
	Slug     string `gorm:"size:100;uniqueIndex;not null" json:"slug"`
	Timezone string `gorm:"size:64" json:"timezone"`

	// Days é um bitmask de time.Weekday (bit 0 = domingo).
	Days      int    `gorm:"not null;default:0" json:"days"`
	OpenTime  string `gorm:"size:5;not null" json:"open_time"`
	CloseTime string `gorm:"size:5;not null" json:"close_time"`
	Seats     int    `gorm:"not null;default:1" json:"seats"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
