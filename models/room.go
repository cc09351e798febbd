package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Room struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	HotelID        uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_rooms_hotel_number" json:"hotel_id"`
	RoomTypeID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"room_type_id"`
	RoomNumber     string         `gorm:"size:50;not null;uniqueIndex:idx_rooms_hotel_number" json:"room_number"`
	Floor          string         `gorm:"size:10" json:"floor"`
	Status         RoomStatus     `gorm:"size:20;not null;default:available;index" json:"status"`
	CleaningStatus CleaningStatus `gorm:"size:20;not null;default:clean" json:"cleaning_status"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`

	Hotel    *Hotel    `gorm:"foreignKey:HotelID;constraint:OnDelete:CASCADE" json:"-"`
	RoomType *RoomType `gorm:"foreignKey:RoomTypeID;constraint:OnDelete:RESTRICT" json:"room_type,omitempty"`
}

func (r *Room) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
