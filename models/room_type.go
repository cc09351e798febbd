package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RoomType struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	HotelID       uuid.UUID `gorm:"type:uuid;not null;index" json:"hotel_id"`
	Name          string    `gorm:"size:150;not null" json:"name"`
	PricePerNight float64   `gorm:"type:numeric(10,2);not null;default:0" json:"price_per_night"`
	Capacity      int       `gorm:"not null;default:1" json:"capacity"`
	Description   string    `gorm:"type:text" json:"description"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	Hotel *Hotel `gorm:"foreignKey:HotelID;constraint:OnDelete:CASCADE" json:"-"`
}

func (rt *RoomType) BeforeCreate(tx *gorm.DB) error {
	if rt.ID == uuid.Nil {
		rt.ID = uuid.New()
	}
	return nil
}
