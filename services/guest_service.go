package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"hotel-pms/filters"
	"hotel-pms/models"
	"hotel-pms/stores"
)

const duplicateGuestEmail = "A guest with this email already exists"

type GuestInput struct {
	FullName    string             `json:"full_name"`
	Email       string             `json:"email"`
	PhoneNumber string             `json:"phone_number"`
	LoyaltyTier models.LoyaltyTier `json:"loyalty_tier"`
	Preferences []string           `json:"preferences"`
}

func (in *GuestInput) normalize() {
	in.FullName = strings.TrimSpace(in.FullName)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.PhoneNumber = strings.TrimSpace(in.PhoneNumber)
	if in.LoyaltyTier == "" {
		in.LoyaltyTier = models.TierStandard
	}

	seen := map[string]bool{}
	prefs := make([]string, 0, len(in.Preferences))
	for _, p := range in.Preferences {
		p = strings.TrimSpace(p)
		if p == "" || seen[strings.ToLower(p)] {
			continue
		}
		seen[strings.ToLower(p)] = true
		prefs = append(prefs, p)
	}
	in.Preferences = prefs
}

func (in GuestInput) validate() error {
	fe := FieldErrors{}
	if in.FullName == "" {
		fe.Add("full_name", "is required")
	}
	if in.Email == "" {
		fe.Add("email", "is required")
	} else if !validEmail(in.Email) {
		fe.Add("email", "is not a valid email address")
	}
	if !in.LoyaltyTier.Valid() {
		fe.Add("loyalty_tier", "must be standard, silver, gold or platinum")
	}
	return fe.Err()
}

// GuestDetail is a guest with their reservation history.
type GuestDetail struct {
	models.Guest
	Reservations []models.Reservation `json:"reservations"`
}

type GuestService struct {
	Store stores.Store
	Views Revalidator
}

func NewGuestService(store stores.Store, views Revalidator) *GuestService {
	return &GuestService{Store: store, Views: views}
}

func (s *GuestService) List(ctx context.Context, hotelID uuid.UUID, q filters.GuestQuery) ([]models.Guest, error) {
	if q.Sort != "" && !q.Sort.Valid() {
		return nil, invalidSort(string(q.Sort))
	}
	return s.Store.Guests().List(ctx, hotelID, q)
}

func (s *GuestService) Get(ctx context.Context, hotelID, id uuid.UUID) (GuestDetail, error) {
	g, err := s.Store.Guests().Get(ctx, hotelID, id)
	if err != nil {
		return GuestDetail{}, storeErr(err, "guest")
	}
	history, err := s.Store.Reservations().Find(ctx, stores.ReservationFilter{HotelID: &hotelID, GuestID: &id})
	if err != nil {
		return GuestDetail{}, err
	}
	filters.SortReservations(history, filters.ReservationCheckInDesc)
	return GuestDetail{Guest: g, Reservations: history}, nil
}

func (s *GuestService) Create(ctx context.Context, hotelID uuid.UUID, in GuestInput) (models.Guest, error) {
	in.normalize()
	if err := in.validate(); err != nil {
		return models.Guest{}, err
	}
	g := models.Guest{
		HotelID:     hotelID,
		FullName:    in.FullName,
		Email:       in.Email,
		PhoneNumber: in.PhoneNumber,
		LoyaltyTier: in.LoyaltyTier,
		Preferences: pq.StringArray(in.Preferences),
	}
	if err := s.Store.Guests().Create(ctx, &g); err != nil {
		return models.Guest{}, guestWriteErr(err)
	}
	s.Views.Invalidate(hotelID, ViewGuests)
	return g, nil
}

func (s *GuestService) Update(ctx context.Context, hotelID, id uuid.UUID, in GuestInput) (models.Guest, error) {
	in.normalize()
	if err := in.validate(); err != nil {
		return models.Guest{}, err
	}
	g, err := s.Store.Guests().Get(ctx, hotelID, id)
	if err != nil {
		return models.Guest{}, storeErr(err, "guest")
	}
	g.FullName = in.FullName
	g.Email = in.Email
	g.PhoneNumber = in.PhoneNumber
	g.LoyaltyTier = in.LoyaltyTier
	g.Preferences = pq.StringArray(in.Preferences)
	if err := s.Store.Guests().Update(ctx, &g); err != nil {
		return models.Guest{}, guestWriteErr(err)
	}
	s.Views.Invalidate(hotelID, ViewGuests, ViewReservations, ViewFrontOffice)
	return g, nil
}

// Delete refuses while reservations reference the guest and says how many.
func (s *GuestService) Delete(ctx context.Context, hotelID, id uuid.UUID) error {
	if _, err := s.Store.Guests().Get(ctx, hotelID, id); err != nil {
		return storeErr(err, "guest")
	}
	n, err := s.Store.Reservations().Count(ctx, stores.ReservationFilter{HotelID: &hotelID, GuestID: &id})
	if err != nil {
		return err
	}
	if n > 0 {
		return precondition("Cannot delete guest with %d existing reservation(s)", n)
	}
	if err := s.Store.Guests().Delete(ctx, hotelID, id); err != nil {
		return storeErr(err, "guest")
	}
	s.Views.Invalidate(hotelID, ViewGuests)
	return nil
}

func guestWriteErr(err error) error {
	if errors.Is(err, stores.ErrDuplicate) {
		return conflict(duplicateGuestEmail)
	}
	return storeErr(err, "guest")
}
