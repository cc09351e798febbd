package services

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"hotel-pms/filters"
	"hotel-pms/models"
	"hotel-pms/stores"
)

type RoomTypeInput struct {
	Name          string  `json:"name"`
	PricePerNight float64 `json:"price_per_night"`
	Capacity      int     `json:"capacity"`
	Description   string  `json:"description"`
}

func (in RoomTypeInput) validate() error {
	fe := FieldErrors{}
	if strings.TrimSpace(in.Name) == "" {
		fe.Add("name", "is required")
	}
	if in.PricePerNight < 0 {
		fe.Add("price_per_night", "must not be negative")
	}
	if in.Capacity < 1 {
		fe.Add("capacity", "must be at least 1")
	}
	return fe.Err()
}

type RoomTypeService struct {
	Store stores.Store
	Views Revalidator
}

func NewRoomTypeService(store stores.Store, views Revalidator) *RoomTypeService {
	return &RoomTypeService{Store: store, Views: views}
}

func (s *RoomTypeService) List(ctx context.Context, hotelID uuid.UUID, q filters.RoomTypeQuery) ([]models.RoomType, error) {
	if q.Sort != "" && !q.Sort.Valid() {
		return nil, invalidSort(string(q.Sort))
	}
	return s.Store.RoomTypes().List(ctx, hotelID, q)
}

func (s *RoomTypeService) Get(ctx context.Context, hotelID, id uuid.UUID) (models.RoomType, error) {
	rt, err := s.Store.RoomTypes().Get(ctx, hotelID, id)
	return rt, storeErr(err, "room type")
}

func (s *RoomTypeService) Create(ctx context.Context, hotelID uuid.UUID, in RoomTypeInput) (models.RoomType, error) {
	if err := in.validate(); err != nil {
		return models.RoomType{}, err
	}
	rt := models.RoomType{
		HotelID:       hotelID,
		Name:          strings.TrimSpace(in.Name),
		PricePerNight: in.PricePerNight,
		Capacity:      in.Capacity,
		Description:   strings.TrimSpace(in.Description),
	}
	if err := s.Store.RoomTypes().Create(ctx, &rt); err != nil {
		return models.RoomType{}, storeErr(err, "room type")
	}
	s.Views.Invalidate(hotelID, ViewRoomTypes)
	return rt, nil
}

func (s *RoomTypeService) Update(ctx context.Context, hotelID, id uuid.UUID, in RoomTypeInput) (models.RoomType, error) {
	if err := in.validate(); err != nil {
		return models.RoomType{}, err
	}
	rt, err := s.Store.RoomTypes().Get(ctx, hotelID, id)
	if err != nil {
		return models.RoomType{}, storeErr(err, "room type")
	}
	rt.Name = strings.TrimSpace(in.Name)
	rt.PricePerNight = in.PricePerNight
	rt.Capacity = in.Capacity
	rt.Description = strings.TrimSpace(in.Description)
	if err := s.Store.RoomTypes().Update(ctx, &rt); err != nil {
		return models.RoomType{}, storeErr(err, "room type")
	}
	s.Views.Invalidate(hotelID, ViewRoomTypes, ViewRooms)
	return rt, nil
}

// Delete refuses while any room still uses the type.
func (s *RoomTypeService) Delete(ctx context.Context, hotelID, id uuid.UUID) error {
	if _, err := s.Store.RoomTypes().Get(ctx, hotelID, id); err != nil {
		return storeErr(err, "room type")
	}
	n, err := s.Store.Rooms().Count(ctx, stores.RoomFilter{HotelID: &hotelID, RoomTypeID: &id})
	if err != nil {
		return err
	}
	if n > 0 {
		return precondition("Cannot delete room type: %d room(s) are using it", n)
	}
	if err := s.Store.RoomTypes().Delete(ctx, hotelID, id); err != nil {
		return storeErr(err, "room type")
	}
	s.Views.Invalidate(hotelID, ViewRoomTypes)
	return nil
}

func invalidSort(key string) error {
	fe := FieldErrors{}
	fe.Add("sort", "unknown sort key "+key)
	return fe.Err()
}
