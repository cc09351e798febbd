package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Reservation struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	HotelID uuid.UUID `gorm:"type:uuid;not null;index" json:"hotel_id"`
	GuestID uuid.UUID `gorm:"type:uuid;not null;index" json:"guest_id"`
	RoomID  uuid.UUID `gorm:"type:uuid;not null;index" json:"room_id"`

	CheckInDate  time.Time `gorm:"type:date;not null;index" json:"check_in_date"`
	CheckOutDate time.Time `gorm:"type:date;not null;index" json:"check_out_date"`

	Adults             int            `gorm:"not null;default:1" json:"adults"`
	Children           int            `gorm:"not null;default:0" json:"children"`
	AccompanyingGuests datatypes.JSON `gorm:"type:jsonb" json:"accompanying_guests,omitempty"`

	TotalPrice    float64       `gorm:"type:numeric(12,2);not null;default:0" json:"total_price"`
	PaymentStatus PaymentStatus `gorm:"size:20;not null;default:pending;index" json:"payment_status"`
	StayStatus    StayStatus    `gorm:"size:20;not null;default:not_arrived;index" json:"stay_status"`

	CheckedInAt  *time.Time `json:"checked_in_at"`
	CheckedOutAt *time.Time `json:"checked_out_at"`
	CancelledAt  *time.Time `json:"cancelled_at"`
	Notes        string     `gorm:"type:text" json:"notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Hotel *Hotel `gorm:"foreignKey:HotelID;constraint:OnDelete:CASCADE" json:"-"`
	Guest *Guest `gorm:"foreignKey:GuestID;constraint:OnDelete:RESTRICT" json:"guest,omitempty"`
	Room  *Room  `gorm:"foreignKey:RoomID;constraint:OnDelete:RESTRICT" json:"room,omitempty"`
}

func (r *Reservation) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// Nights is the number of nights between check-in and check-out dates.
func (r Reservation) Nights() int {
	return NightsBetween(r.CheckInDate, r.CheckOutDate)
}

// NightsBetween counts calendar nights; it never returns less than zero.
func NightsBetween(checkIn, checkOut time.Time) int {
	in := time.Date(checkIn.Year(), checkIn.Month(), checkIn.Day(), 0, 0, 0, 0, time.UTC)
	out := time.Date(checkOut.Year(), checkOut.Month(), checkOut.Day(), 0, 0, 0, 0, time.UTC)
	n := int(out.Sub(in).Hours() / 24)
	if n < 0 {
		return 0
	}
	return n
}
