package services

import (
	"context"
	"net/mail"
	"strings"

	"github.com/google/uuid"

	"hotel-pms/models"
	"hotel-pms/stores"
)

type HotelInput struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
}

func (in *HotelInput) normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Address = strings.TrimSpace(in.Address)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
}

func (in HotelInput) validate() error {
	fe := FieldErrors{}
	if in.Name == "" {
		fe.Add("name", "is required")
	}
	if in.Email != "" && !validEmail(in.Email) {
		fe.Add("email", "is not a valid email address")
	}
	return fe.Err()
}

// HotelService manages the tenant list. Only super admins reach it.
type HotelService struct {
	Store stores.Store
	Views Revalidator
}

func NewHotelService(store stores.Store, views Revalidator) *HotelService {
	return &HotelService{Store: store, Views: views}
}

func (s *HotelService) List(ctx context.Context) ([]models.Hotel, error) {
	return s.Store.Hotels().List(ctx)
}

func (s *HotelService) Get(ctx context.Context, id uuid.UUID) (models.Hotel, error) {
	h, err := s.Store.Hotels().Get(ctx, id)
	return h, storeErr(err, "hotel")
}

func (s *HotelService) Create(ctx context.Context, in HotelInput) (models.Hotel, error) {
	in.normalize()
	if err := in.validate(); err != nil {
		return models.Hotel{}, err
	}
	h := models.Hotel{Name: in.Name, Address: in.Address, Phone: in.Phone, Email: in.Email}
	if err := s.Store.Hotels().Create(ctx, &h); err != nil {
		return models.Hotel{}, storeErr(err, "hotel")
	}
	s.Views.Invalidate(uuid.Nil, ViewHotels, ViewDashboard)
	return h, nil
}

func (s *HotelService) Update(ctx context.Context, id uuid.UUID, in HotelInput) (models.Hotel, error) {
	in.normalize()
	if err := in.validate(); err != nil {
		return models.Hotel{}, err
	}
	h, err := s.Store.Hotels().Get(ctx, id)
	if err != nil {
		return models.Hotel{}, storeErr(err, "hotel")
	}
	h.Name, h.Address, h.Phone, h.Email = in.Name, in.Address, in.Phone, in.Email
	if err := s.Store.Hotels().Update(ctx, &h); err != nil {
		return models.Hotel{}, storeErr(err, "hotel")
	}
	s.Views.Invalidate(uuid.Nil, ViewHotels, ViewStaff)
	return h, nil
}

// Delete removes a hotel that has no rooms left. Its room types, guests and
// staff assignments go with it.
func (s *HotelService) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.Store.Transaction(ctx, func(tx stores.Store) error {
		if _, err := tx.Hotels().Get(ctx, id); err != nil {
			return storeErr(err, "hotel")
		}
		n, err := tx.Rooms().Count(ctx, stores.RoomFilter{HotelID: &id})
		if err != nil {
			return err
		}
		if n > 0 {
			return precondition("Cannot delete hotel: %d room(s) still belong to it", n)
		}
		return storeErr(tx.Hotels().Delete(ctx, id), "hotel")
	})
	if err != nil {
		return err
	}
	s.Views.Invalidate(uuid.Nil, ViewHotels, ViewStaff, ViewDashboard)
	return nil
}

func validEmail(v string) bool {
	addr, err := mail.ParseAddress(v)
	return err == nil && addr.Address == v
}
