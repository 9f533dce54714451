package models

import "time"

type Stylist struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	ShopID uint `gorm:"index;not null" json:"shop_id"`
	Shop   Shop `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Name string `gorm:"size:100;not null" json:"name"`

	// Expediente próprio, independente do expediente da loja.
	Days      int    `gorm:"not null;default:0" json:"days"`
	OpenTime  string `gorm:"size:5;not null" json:"open_time"`
	CloseTime string `gorm:"size:5;not null" json:"close_time"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
