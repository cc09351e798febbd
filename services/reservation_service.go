package services

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"hotel-pms/filters"
	"hotel-pms/models"
	"hotel-pms/stores"
	"hotel-pms/utils"
)

type ReservationInput struct {
	GuestID            uuid.UUID            `json:"guest_id"`
	RoomID             uuid.UUID            `json:"room_id"`
	CheckInDate        string               `json:"check_in_date"`
	CheckOutDate       string               `json:"check_out_date"`
	Adults             int                  `json:"adults"`
	Children           int                  `json:"children"`
	AccompanyingGuests json.RawMessage      `json:"accompanying_guests"`
	TotalPrice         *float64             `json:"total_price"`
	PaymentStatus      models.PaymentStatus `json:"payment_status"`
	Notes              string               `json:"notes"`
}

// stay is a validated ReservationInput.
type stay struct {
	checkIn, checkOut time.Time
	guest             models.Guest
	room              models.Room
}

type ReservationService struct {
	Store stores.Store
	Views Revalidator
	Clock Clock
}

func NewReservationService(store stores.Store, views Revalidator, clock Clock) *ReservationService {
	return &ReservationService{Store: store, Views: views, Clock: clock}
}

func (s *ReservationService) List(ctx context.Context, hotelID uuid.UUID, q filters.ReservationQuery) ([]models.Reservation, error) {
	fe := FieldErrors{}
	if q.Sort != "" && !q.Sort.Valid() {
		fe.Add("sort", "unknown sort key "+string(q.Sort))
	}
	for _, ps := range q.PaymentStatuses {
		if !ps.Valid() {
			fe.Add("payment_status", "unknown payment status "+string(ps))
		}
	}
	for _, st := range q.StayStatuses {
		if !st.Valid() {
			fe.Add("stay_status", "unknown stay status "+string(st))
		}
	}
	if q.From != nil && q.To != nil && q.To.Before(*q.From) {
		fe.Add("to", "must not be before from")
	}
	if err := fe.Err(); err != nil {
		return nil, err
	}
	return s.Store.Reservations().List(ctx, hotelID, q)
}

func (s *ReservationService) Get(ctx context.Context, hotelID, id uuid.UUID) (models.Reservation, error) {
	r, err := s.Store.Reservations().Get(ctx, hotelID, id)
	return r, storeErr(err, "reservation")
}

// validate checks the input against the hotel's rows: guest and room must
// belong to the hotel, the room must hold the party and be free for the
// dates.
func (s *ReservationService) validate(ctx context.Context, tx stores.Store, hotelID, excludeID uuid.UUID, in ReservationInput) (stay, error) {
	var st stay
	fe := FieldErrors{}

	checkIn, inErr := utils.ParseDate(in.CheckInDate)
	if inErr != nil {
		fe.Add("check_in_date", inErr.Error())
	}
	checkOut, outErr := utils.ParseDate(in.CheckOutDate)
	if outErr != nil {
		fe.Add("check_out_date", outErr.Error())
	}
	if inErr == nil && outErr == nil && !checkOut.After(checkIn) {
		fe.Add("check_out_date", "must be after check_in_date")
	}
	if in.Adults < 1 {
		fe.Add("adults", "must be at least 1")
	}
	if in.Children < 0 {
		fe.Add("children", "must not be negative")
	}
	if in.TotalPrice != nil && *in.TotalPrice < 0 {
		fe.Add("total_price", "must not be negative")
	}
	if in.PaymentStatus != "" && in.PaymentStatus != models.PaymentPending && in.PaymentStatus != models.PaymentPaid {
		fe.Add("payment_status", "must be pending or paid")
	}
	if len(in.AccompanyingGuests) > 0 && !json.Valid(in.AccompanyingGuests) {
		fe.Add("accompanying_guests", "must be valid JSON")
	}

	if in.GuestID == uuid.Nil {
		fe.Add("guest_id", "is required")
	} else {
		g, err := tx.Guests().Get(ctx, hotelID, in.GuestID)
		switch {
		case errors.Is(err, stores.ErrNotFound):
			fe.Add("guest_id", "does not belong to this hotel")
		case err != nil:
			return st, err
		}
		st.guest = g
	}

	if in.RoomID == uuid.Nil {
		fe.Add("room_id", "is required")
	} else {
		room, err := tx.Rooms().Get(ctx, hotelID, in.RoomID)
		switch {
		case errors.Is(err, stores.ErrNotFound):
			fe.Add("room_id", "does not belong to this hotel")
		case err != nil:
			return st, err
		}
		st.room = room
	}
	if err := fe.Err(); err != nil {
		return st, err
	}

	if st.room.RoomType != nil && in.Adults+in.Children > st.room.RoomType.Capacity {
		fe.Add("adults", "party exceeds the room capacity")
		return st, fe.Err()
	}

	n, err := tx.Reservations().CountOverlapping(ctx, st.room.ID, checkIn, checkOut, excludeID)
	if err != nil {
		return st, err
	}
	if n > 0 {
		return st, conflict("Room %s is already booked for the selected dates", st.room.RoomNumber)
	}

	st.checkIn, st.checkOut = checkIn, checkOut
	return st, nil
}

// price is the explicit total or nights times the room type's rate.
func price(in ReservationInput, st stay) float64 {
	if in.TotalPrice != nil {
		return *in.TotalPrice
	}
	if st.room.RoomType == nil {
		return 0
	}
	total := float64(models.NightsBetween(st.checkIn, st.checkOut)) * st.room.RoomType.PricePerNight
	return math.Round(total*100) / 100
}

func (s *ReservationService) Create(ctx context.Context, hotelID uuid.UUID, in ReservationInput) (models.Reservation, error) {
	var res models.Reservation
	err := s.Store.Transaction(ctx, func(tx stores.Store) error {
		st, err := s.validate(ctx, tx, hotelID, uuid.Nil, in)
		if err != nil {
			return err
		}
		res = models.Reservation{
			HotelID:            hotelID,
			GuestID:            st.guest.ID,
			RoomID:             st.room.ID,
			CheckInDate:        st.checkIn,
			CheckOutDate:       st.checkOut,
			Adults:             in.Adults,
			Children:           in.Children,
			AccompanyingGuests: datatypes.JSON(in.AccompanyingGuests),
			TotalPrice:         price(in, st),
			PaymentStatus:      models.PaymentPending,
			StayStatus:         models.StayNotArrived,
			Notes:              strings.TrimSpace(in.Notes),
		}
		if in.PaymentStatus != "" {
			res.PaymentStatus = in.PaymentStatus
		}
		return storeErr(tx.Reservations().Create(ctx, &res), "reservation")
	})
	if err != nil {
		return models.Reservation{}, err
	}
	s.invalidate(hotelID)
	return s.Get(ctx, hotelID, res.ID)
}

// Update edits a reservation that has not arrived yet.
func (s *ReservationService) Update(ctx context.Context, hotelID, id uuid.UUID, in ReservationInput) (models.Reservation, error) {
	err := s.Store.Transaction(ctx, func(tx stores.Store) error {
		res, err := tx.Reservations().GetForUpdate(ctx, hotelID, id)
		if err != nil {
			return storeErr(err, "reservation")
		}
		if res.StayStatus != models.StayNotArrived {
			return precondition("Only reservations that have not arrived can be edited (status: %s)", res.StayStatus)
		}
		st, err := s.validate(ctx, tx, hotelID, id, in)
		if err != nil {
			return err
		}
		res.GuestID = st.guest.ID
		res.RoomID = st.room.ID
		res.CheckInDate = st.checkIn
		res.CheckOutDate = st.checkOut
		res.Adults = in.Adults
		res.Children = in.Children
		res.AccompanyingGuests = datatypes.JSON(in.AccompanyingGuests)
		res.TotalPrice = price(in, st)
		if in.PaymentStatus != "" {
			res.PaymentStatus = in.PaymentStatus
		}
		res.Notes = strings.TrimSpace(in.Notes)
		return storeErr(tx.Reservations().Update(ctx, &res), "reservation")
	})
	if err != nil {
		return models.Reservation{}, err
	}
	s.invalidate(hotelID)
	return s.Get(ctx, hotelID, id)
}

// Cancel marks the reservation cancelled. An in-house stay gives its room
// back to housekeeping the way a check-out does.
func (s *ReservationService) Cancel(ctx context.Context, hotelID, id uuid.UUID) (models.Reservation, error) {
	err := s.Store.Transaction(ctx, func(tx stores.Store) error {
		res, err := tx.Reservations().GetForUpdate(ctx, hotelID, id)
		if err != nil {
			return storeErr(err, "reservation")
		}
		if !res.StayStatus.CanTransition(models.StayCancelled) {
			return precondition("Reservation is already %s", res.StayStatus)
		}
		if res.StayStatus == models.StayInHouse {
			room, err := tx.Rooms().GetForUpdate(ctx, hotelID, res.RoomID)
			if err != nil {
				return storeErr(err, "room")
			}
			room.Status = models.RoomMaintenance
			room.CleaningStatus = models.CleaningDirty
			if err := tx.Rooms().Update(ctx, &room); err != nil {
				return storeErr(err, "room")
			}
		}
		now := s.Clock.Stamp()
		res.PaymentStatus = models.PaymentCancelled
		res.StayStatus = models.StayCancelled
		res.CancelledAt = &now
		return storeErr(tx.Reservations().Update(ctx, &res), "reservation")
	})
	if err != nil {
		return models.Reservation{}, err
	}
	s.invalidate(hotelID)
	return s.Get(ctx, hotelID, id)
}

// Delete removes reservations that never started or were cancelled.
func (s *ReservationService) Delete(ctx context.Context, hotelID, id uuid.UUID) error {
	err := s.Store.Transaction(ctx, func(tx stores.Store) error {
		res, err := tx.Reservations().GetForUpdate(ctx, hotelID, id)
		if err != nil {
			return storeErr(err, "reservation")
		}
		if res.StayStatus != models.StayNotArrived && res.StayStatus != models.StayCancelled {
			return precondition("Only upcoming or cancelled reservations can be deleted (status: %s)", res.StayStatus)
		}
		return storeErr(tx.Reservations().Delete(ctx, hotelID, id), "reservation")
	})
	if err != nil {
		return err
	}
	s.invalidate(hotelID)
	return nil
}

func (s *ReservationService) invalidate(hotelID uuid.UUID) {
	s.Views.Invalidate(hotelID, ViewReservations, ViewGuests, ViewFrontOffice, ViewDashboard)
}
