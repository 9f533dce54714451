package models

import "time"

// Reservation ocupa o intervalo [StartTime, EndTime).
// EndTime é derivado da duração do menu no momento da criação.
type Reservation struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Code string `gorm:"size:36;uniqueIndex;not null" json:"code"`

	UserID uint `gorm:"index;not null" json:"user_id"`

	ShopID uint `gorm:"index:idx_reservations_shop_start,priority:1;not null" json:"shop_id"`
	Shop   Shop `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"shop,omitempty"`

	StylistID *uint    `gorm:"index" json:"stylist_id"`
	Stylist   *Stylist `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"stylist,omitempty"`

	MenuID uint `gorm:"not null" json:"menu_id"`
	Menu   Menu `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"menu,omitempty"`

	StartTime time.Time `gorm:"index:idx_reservations_shop_start,priority:2;not null" json:"start_time"`
	EndTime   time.Time `gorm:"not null" json:"end_time"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
