// Package stores persists the PMS entities. Gorm talks to Postgres; Memory
// keeps everything in process for demos and tests. Both honor the same
// contracts, including error values.
package stores

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"hotel-pms/filters"
	"hotel-pms/models"
)

var (
	ErrNotFound   = errors.New("record not found")
	ErrDuplicate  = errors.New("duplicate key")
	ErrForeignKey = errors.New("foreign key violation")
)

// Store groups the repositories. Transaction runs fn against a store bound to
// one database transaction; fn's error rolls everything back.
type Store interface {
	Hotels() HotelRepository
	RoomTypes() RoomTypeRepository
	Rooms() RoomRepository
	Guests() GuestRepository
	Reservations() ReservationRepository
	Access() AccessRepository

	Transaction(ctx context.Context, fn func(tx Store) error) error
	Ping(ctx context.Context) error
}

type HotelRepository interface {
	List(ctx context.Context) ([]models.Hotel, error)
	Get(ctx context.Context, id uuid.UUID) (models.Hotel, error)
	Create(ctx context.Context, h *models.Hotel) error
	Update(ctx context.Context, h *models.Hotel) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
}

type RoomTypeRepository interface {
	List(ctx context.Context, hotelID uuid.UUID, q filters.RoomTypeQuery) ([]models.RoomType, error)
	Get(ctx context.Context, hotelID, id uuid.UUID) (models.RoomType, error)
	Create(ctx context.Context, rt *models.RoomType) error
	Update(ctx context.Context, rt *models.RoomType) error
	Delete(ctx context.Context, hotelID, id uuid.UUID) error
}

// RoomFilter narrows room lists and counts. Zero fields match everything.
type RoomFilter struct {
	HotelID    *uuid.UUID
	RoomTypeID *uuid.UUID
	Status     models.RoomStatus
}

type RoomRepository interface {
	List(ctx context.Context, f RoomFilter) ([]models.Room, error)
	Get(ctx context.Context, hotelID, id uuid.UUID) (models.Room, error)
	// GetForUpdate loads the room and locks it until the surrounding
	// transaction ends. The room type is not loaded.
	GetForUpdate(ctx context.Context, hotelID, id uuid.UUID) (models.Room, error)
	Create(ctx context.Context, r *models.Room) error
	Update(ctx context.Context, r *models.Room) error
	Delete(ctx context.Context, hotelID, id uuid.UUID) error
	Count(ctx context.Context, f RoomFilter) (int64, error)
}

type GuestRepository interface {
	List(ctx context.Context, hotelID uuid.UUID, q filters.GuestQuery) ([]models.Guest, error)
	Get(ctx context.Context, hotelID, id uuid.UUID) (models.Guest, error)
	Create(ctx context.Context, g *models.Guest) error
	Update(ctx context.Context, g *models.Guest) error
	Delete(ctx context.Context, hotelID, id uuid.UUID) error
}

// ReservationFilter narrows reservation lookups used by the front office and
// the dashboard. Dates compare on the calendar day.
type ReservationFilter struct {
	HotelID       *uuid.UUID
	GuestID       *uuid.UUID
	RoomID        *uuid.UUID
	CheckInDate   *time.Time
	CheckOutDate  *time.Time
	StayStatuses  []models.StayStatus
	ExcludeStays  []models.StayStatus
	PaymentStatus models.PaymentStatus
}

type ReservationRepository interface {
	List(ctx context.Context, hotelID uuid.UUID, q filters.ReservationQuery) ([]models.Reservation, error)
	Find(ctx context.Context, f ReservationFilter) ([]models.Reservation, error)
	Get(ctx context.Context, hotelID, id uuid.UUID) (models.Reservation, error)
	// GetForUpdate loads the row and locks it until the surrounding
	// transaction ends. Associations are not loaded.
	GetForUpdate(ctx context.Context, hotelID, id uuid.UUID) (models.Reservation, error)
	Create(ctx context.Context, r *models.Reservation) error
	Update(ctx context.Context, r *models.Reservation) error
	Delete(ctx context.Context, hotelID, id uuid.UUID) error
	Count(ctx context.Context, f ReservationFilter) (int64, error)
	SumTotal(ctx context.Context, f ReservationFilter) (float64, error)
	// CountOverlapping counts active reservations on the room whose stay
	// intersects [checkIn, checkOut), ignoring excludeID.
	CountOverlapping(ctx context.Context, roomID uuid.UUID, checkIn, checkOut time.Time, excludeID uuid.UUID) (int64, error)
}

type AssignmentFilter struct {
	UserID  *uuid.UUID
	HotelID *uuid.UUID
}

type AccessRepository interface {
	// EnsureProfile inserts the profile when no row with its id exists and
	// returns the stored row.
	EnsureProfile(ctx context.Context, p models.Profile) (models.Profile, error)
	GetProfile(ctx context.Context, id uuid.UUID) (models.Profile, error)
	ProfileByEmail(ctx context.Context, email string) (models.Profile, error)
	Roles(ctx context.Context) ([]models.Role, error)
	RoleByName(ctx context.Context, name models.RoleName) (models.Role, error)
	SeedRoles(ctx context.Context) error
	Assignments(ctx context.Context, f AssignmentFilter) ([]models.UserRole, error)
	GetAssignment(ctx context.Context, id uuid.UUID) (models.UserRole, error)
	Assign(ctx context.Context, ur *models.UserRole) error
	Revoke(ctx context.Context, id uuid.UUID) error
	CountAssignments(ctx context.Context) (int64, error)
}

// ActiveStays are the stay states that hold a room.
var ActiveStays = []models.StayStatus{models.StayNotArrived, models.StayInHouse}

var roleDescriptions = map[models.RoleName]string{
	models.RoleSuperAdmin:   "Platform administrator across all hotels",
	models.RoleHotelManager: "Manages one hotel, its staff and reporting",
	models.RoleHotelAdmin:   "Maintains rooms, room types, guests and reservations",
	models.RoleFrontOffice:  "Handles arrivals, departures and in-house guests",
}

func day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

const dateLayout = "2006-01-02"
