package stores

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hotel-pms/filters"
	"hotel-pms/models"
)

// ------------------------------
// Hotels
// ------------------------------

type gormHotels struct{ db *gorm.DB }

func (r gormHotels) List(ctx context.Context) ([]models.Hotel, error) {
	var hotels []models.Hotel
	err := r.db.WithContext(ctx).Order("name ASC").Order("id ASC").Find(&hotels).Error
	return hotels, translate(err)
}

func (r gormHotels) Get(ctx context.Context, id uuid.UUID) (models.Hotel, error) {
	var h models.Hotel
	err := r.db.WithContext(ctx).First(&h, "id = ?", id).Error
	return h, translate(err)
}

func (r gormHotels) Create(ctx context.Context, h *models.Hotel) error {
	return translate(r.db.WithContext(ctx).Create(h).Error)
}

func (r gormHotels) Update(ctx context.Context, h *models.Hotel) error {
	return affected(r.db.WithContext(ctx).Model(h).Select("*").Omit("created_at").Updates(h))
}

func (r gormHotels) Delete(ctx context.Context, id uuid.UUID) error {
	return affected(r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Hotel{}))
}

func (r gormHotels) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Hotel{}).Count(&n).Error
	return n, translate(err)
}

// ------------------------------
// Room types
// ------------------------------

type gormRoomTypes struct{ db *gorm.DB }

func (r gormRoomTypes) List(ctx context.Context, hotelID uuid.UUID, q filters.RoomTypeQuery) ([]models.RoomType, error) {
	tx := r.db.WithContext(ctx).Where("hotel_id = ?", hotelID)
	if term := filters.Normalize(q.Search); term != "" {
		like := likePattern(term)
		tx = tx.Where("name ILIKE ? OR description ILIKE ?", like, like)
	}

	var items []models.RoomType
	if err := tx.Find(&items).Error; err != nil {
		return nil, translate(err)
	}
	filters.SortRoomTypes(items, q.Sort)
	return filters.Paginate(items, q.Page), nil
}

func (r gormRoomTypes) Get(ctx context.Context, hotelID, id uuid.UUID) (models.RoomType, error) {
	var rt models.RoomType
	err := r.db.WithContext(ctx).Where("hotel_id = ? AND id = ?", hotelID, id).First(&rt).Error
	return rt, translate(err)
}

func (r gormRoomTypes) Create(ctx context.Context, rt *models.RoomType) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(rt).Error)
}

func (r gormRoomTypes) Update(ctx context.Context, rt *models.RoomType) error {
	return affected(r.db.WithContext(ctx).Model(rt).Select("*").Omit("created_at", clause.Associations).Updates(rt))
}

func (r gormRoomTypes) Delete(ctx context.Context, hotelID, id uuid.UUID) error {
	return affected(r.db.WithContext(ctx).Where("hotel_id = ? AND id = ?", hotelID, id).Delete(&models.RoomType{}))
}

// ------------------------------
// Rooms
// ------------------------------

type gormRooms struct{ db *gorm.DB }

func (r gormRooms) scope(f RoomFilter) *gorm.DB {
	tx := r.db.Model(&models.Room{})
	if f.HotelID != nil {
		tx = tx.Where("hotel_id = ?", *f.HotelID)
	}
	if f.RoomTypeID != nil {
		tx = tx.Where("room_type_id = ?", *f.RoomTypeID)
	}
	if f.Status != "" {
		tx = tx.Where("status = ?", f.Status)
	}
	return tx
}

func (r gormRooms) List(ctx context.Context, f RoomFilter) ([]models.Room, error) {
	var rooms []models.Room
	err := r.scope(f).WithContext(ctx).
		Preload("RoomType").
		Order("room_number ASC").
		Order("id ASC").
		Find(&rooms).Error
	return rooms, translate(err)
}

func (r gormRooms) Get(ctx context.Context, hotelID, id uuid.UUID) (models.Room, error) {
	var room models.Room
	err := r.db.WithContext(ctx).Preload("RoomType").
		Where("hotel_id = ? AND id = ?", hotelID, id).
		First(&room).Error
	return room, translate(err)
}

func (r gormRooms) GetForUpdate(ctx context.Context, hotelID, id uuid.UUID) (models.Room, error) {
	var room models.Room
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("hotel_id = ? AND id = ?", hotelID, id).
		First(&room).Error
	return room, translate(err)
}

func (r gormRooms) Create(ctx context.Context, room *models.Room) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(room).Error)
}

func (r gormRooms) Update(ctx context.Context, room *models.Room) error {
	return affected(r.db.WithContext(ctx).Model(room).Select("*").Omit("created_at", clause.Associations).Updates(room))
}

func (r gormRooms) Delete(ctx context.Context, hotelID, id uuid.UUID) error {
	return affected(r.db.WithContext(ctx).Where("hotel_id = ? AND id = ?", hotelID, id).Delete(&models.Room{}))
}

func (r gormRooms) Count(ctx context.Context, f RoomFilter) (int64, error) {
	var n int64
	err := r.scope(f).WithContext(ctx).Count(&n).Error
	return n, translate(err)
}
