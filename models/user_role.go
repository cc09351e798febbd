package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserRole assigns a role to a user, optionally scoped to one hotel.
type UserRole struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	RoleID    uint       `gorm:"not null;index" json:"role_id"`
	HotelID   *uuid.UUID `gorm:"type:uuid;index" json:"hotel_id"`
	CreatedAt time.Time  `json:"created_at"`

	Role    Role     `gorm:"foreignKey:RoleID" json:"role"`
	Profile *Profile `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"profile,omitempty"`
	Hotel   *Hotel   `gorm:"foreignKey:HotelID;constraint:OnDelete:CASCADE" json:"hotel,omitempty"`
}

func (ur *UserRole) BeforeCreate(tx *gorm.DB) error {
	if ur.ID == uuid.Nil {
		ur.ID = uuid.New()
	}
	return nil
}
