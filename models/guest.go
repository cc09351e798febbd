package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type Guest struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	HotelID     uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_guests_hotel_email" json:"hotel_id"`
	FullName    string         `gorm:"size:255;not null" json:"full_name"`
	Email       string         `gorm:"size:150;not null;uniqueIndex:idx_guests_hotel_email" json:"email"`
	PhoneNumber string         `gorm:"size:50" json:"phone_number"`
	LoyaltyTier LoyaltyTier    `gorm:"size:20;not null;default:standard" json:"loyalty_tier"`
	Preferences pq.StringArray `gorm:"type:text[]" json:"preferences"`
	TotalStays  int            `gorm:"not null;default:0" json:"total_stays"`
	TotalSpend  float64        `gorm:"type:numeric(12,2);not null;default:0" json:"total_spend"`
	LastVisitAt *time.Time     `json:"last_visit_at"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`

	Hotel *Hotel `gorm:"foreignKey:HotelID;constraint:OnDelete:CASCADE" json:"-"`
}

func (g *Guest) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}
