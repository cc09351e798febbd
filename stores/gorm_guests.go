package stores

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hotel-pms/filters"
	"hotel-pms/models"
)

// ------------------------------
// Guests
// ------------------------------

type gormGuests struct{ db *gorm.DB }

func (r gormGuests) List(ctx context.Context, hotelID uuid.UUID, q filters.GuestQuery) ([]models.Guest, error) {
	tx := r.db.WithContext(ctx).Where("hotel_id = ?", hotelID)
	if term := filters.Normalize(q.Search); term != "" {
		like := likePattern(term)
		tx = tx.Where("full_name ILIKE ? OR email ILIKE ? OR phone_number ILIKE ?", like, like, like)
	}

	var items []models.Guest
	if err := tx.Find(&items).Error; err != nil {
		return nil, translate(err)
	}
	filters.SortGuests(items, q.Sort)
	return filters.Paginate(items, q.Page), nil
}

func (r gormGuests) Get(ctx context.Context, hotelID, id uuid.UUID) (models.Guest, error) {
	var g models.Guest
	err := r.db.WithContext(ctx).Where("hotel_id = ? AND id = ?", hotelID, id).First(&g).Error
	return g, translate(err)
}

func (r gormGuests) Create(ctx context.Context, g *models.Guest) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(g).Error)
}

func (r gormGuests) Update(ctx context.Context, g *models.Guest) error {
	return affected(r.db.WithContext(ctx).Model(g).Select("*").Omit("created_at", clause.Associations).Updates(g))
}

func (r gormGuests) Delete(ctx context.Context, hotelID, id uuid.UUID) error {
	return affected(r.db.WithContext(ctx).Where("hotel_id = ? AND id = ?", hotelID, id).Delete(&models.Guest{}))
}

// ------------------------------
// Reservations
// ------------------------------

type gormReservations struct{ db *gorm.DB }

func (r gormReservations) List(ctx context.Context, hotelID uuid.UUID, q filters.ReservationQuery) ([]models.Reservation, error) {
	tx := r.db.WithContext(ctx).
		Model(&models.Reservation{}).
		Select("reservations.*").
		Where("reservations.hotel_id = ?", hotelID)

	if term := filters.Normalize(q.Search); term != "" {
		like := likePattern(term)
		tx = tx.Joins("JOIN guests ON guests.id = reservations.guest_id").
			Joins("JOIN rooms ON rooms.id = reservations.room_id").
			Where("guests.full_name ILIKE ? OR guests.email ILIKE ? OR rooms.room_number ILIKE ?", like, like, like)
	}
	if len(q.PaymentStatuses) > 0 {
		tx = tx.Where("reservations.payment_status IN ?", q.PaymentStatuses)
	}
	if len(q.StayStatuses) > 0 {
		tx = tx.Where("reservations.stay_status IN ?", q.StayStatuses)
	}
	if q.GuestID != "" {
		tx = tx.Where("reservations.guest_id = ?", q.GuestID)
	}
	if q.From != nil {
		tx = tx.Where("reservations.check_in_date >= ?::date", q.From.Format(dateLayout))
	}
	if q.To != nil {
		tx = tx.Where("reservations.check_in_date <= ?::date", q.To.Format(dateLayout))
	}

	var items []models.Reservation
	if err := tx.Preload("Guest").Preload("Room").Find(&items).Error; err != nil {
		return nil, translate(err)
	}
	filters.SortReservations(items, q.Sort)
	return filters.Paginate(items, q.Page), nil
}

func (r gormReservations) scope(f ReservationFilter) *gorm.DB {
	tx := r.db.Model(&models.Reservation{})
	if f.HotelID != nil {
		tx = tx.Where("hotel_id = ?", *f.HotelID)
	}
	if f.GuestID != nil {
		tx = tx.Where("guest_id = ?", *f.GuestID)
	}
	if f.RoomID != nil {
		tx = tx.Where("room_id = ?", *f.RoomID)
	}
	if f.CheckInDate != nil {
		tx = tx.Where("check_in_date = ?::date", f.CheckInDate.Format(dateLayout))
	}
	if f.CheckOutDate != nil {
		tx = tx.Where("check_out_date = ?::date", f.CheckOutDate.Format(dateLayout))
	}
	if len(f.StayStatuses) > 0 {
		tx = tx.Where("stay_status IN ?", f.StayStatuses)
	}
	if len(f.ExcludeStays) > 0 {
		tx = tx.Where("stay_status NOT IN ?", f.ExcludeStays)
	}
	if f.PaymentStatus != "" {
		tx = tx.Where("payment_status = ?", f.PaymentStatus)
	}
	return tx
}

func (r gormReservations) Find(ctx context.Context, f ReservationFilter) ([]models.Reservation, error) {
	var items []models.Reservation
	err := r.scope(f).WithContext(ctx).
		Preload("Guest").
		Preload("Room").
		Order("check_in_date ASC").
		Order("id ASC").
		Find(&items).Error
	return items, translate(err)
}

func (r gormReservations) Get(ctx context.Context, hotelID, id uuid.UUID) (models.Reservation, error) {
	var res models.Reservation
	err := r.db.WithContext(ctx).
		Preload("Guest").
		Preload("Room.RoomType").
		Where("hotel_id = ? AND id = ?", hotelID, id).
		First(&res).Error
	return res, translate(err)
}

func (r gormReservations) GetForUpdate(ctx context.Context, hotelID, id uuid.UUID) (models.Reservation, error) {
	var res models.Reservation
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("hotel_id = ? AND id = ?", hotelID, id).
		First(&res).Error
	return res, translate(err)
}

func (r gormReservations) Create(ctx context.Context, res *models.Reservation) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(res).Error)
}

func (r gormReservations) Update(ctx context.Context, res *models.Reservation) error {
	return affected(r.db.WithContext(ctx).Model(res).Select("*").Omit("created_at", clause.Associations).Updates(res))
}

func (r gormReservations) Delete(ctx context.Context, hotelID, id uuid.UUID) error {
	return affected(r.db.WithContext(ctx).Where("hotel_id = ? AND id = ?", hotelID, id).Delete(&models.Reservation{}))
}

func (r gormReservations) Count(ctx context.Context, f ReservationFilter) (int64, error) {
	var n int64
	err := r.scope(f).WithContext(ctx).Count(&n).Error
	return n, translate(err)
}

func (r gormReservations) SumTotal(ctx context.Context, f ReservationFilter) (float64, error) {
	var total float64
	err := r.scope(f).WithContext(ctx).Select("COALESCE(SUM(total_price), 0)").Scan(&total).Error
	return total, translate(err)
}

func (r gormReservations) CountOverlapping(ctx context.Context, roomID uuid.UUID, checkIn, checkOut time.Time, excludeID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Reservation{}).
		Where("room_id = ? AND id <> ?", roomID, excludeID).
		Where("stay_status IN ?", ActiveStays).
		Where("check_in_date < ?::date AND check_out_date > ?::date", checkOut.Format(dateLayout), checkIn.Format(dateLayout)).
		Count(&n).Error
	return n, translate(err)
}
