package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"hotel-pms/models"
	"hotel-pms/stores"
)

// StayService runs the front-office flows: arrivals, departures, in-house
// guests and the check-in/check-out transitions.
type StayService struct {
	Store stores.Store
	Views Revalidator
	Clock Clock
}

func NewStayService(store stores.Store, views Revalidator, clock Clock) *StayService {
	return &StayService{Store: store, Views: views, Clock: clock}
}

// Arrivals are reservations due in on date that have not checked in.
func (s *StayService) Arrivals(ctx context.Context, hotelID uuid.UUID, date time.Time) ([]models.Reservation, error) {
	return s.Store.Reservations().Find(ctx, stores.ReservationFilter{
		HotelID:      &hotelID,
		CheckInDate:  &date,
		StayStatuses: []models.StayStatus{models.StayNotArrived},
	})
}

// Departures are in-house reservations due out on date.
func (s *StayService) Departures(ctx context.Context, hotelID uuid.UUID, date time.Time) ([]models.Reservation, error) {
	return s.Store.Reservations().Find(ctx, stores.ReservationFilter{
		HotelID:      &hotelID,
		CheckOutDate: &date,
		StayStatuses: []models.StayStatus{models.StayInHouse},
	})
}

func (s *StayService) InHouse(ctx context.Context, hotelID uuid.UUID) ([]models.Reservation, error) {
	return s.Store.Reservations().Find(ctx, stores.ReservationFilter{
		HotelID:      &hotelID,
		StayStatuses: []models.StayStatus{models.StayInHouse},
	})
}

// lockStay locks the reservation and its room, checks the reservation is on
// roomID and may move to next.
func lockStay(ctx context.Context, tx stores.Store, hotelID, reservationID, roomID uuid.UUID, next models.StayStatus) (models.Reservation, models.Room, error) {
	res, err := tx.Reservations().GetForUpdate(ctx, hotelID, reservationID)
	if err != nil {
		return res, models.Room{}, storeErr(err, "reservation")
	}
	if res.RoomID != roomID {
		return res, models.Room{}, precondition("Reservation is not assigned to this room")
	}
	if !res.StayStatus.CanTransition(next) || next == models.StayCancelled {
		return res, models.Room{}, precondition("Cannot move reservation from %s to %s", res.StayStatus, next)
	}
	room, err := tx.Rooms().GetForUpdate(ctx, hotelID, roomID)
	if err != nil {
		return res, room, storeErr(err, "room")
	}
	return res, room, nil
}

// CheckIn marks the reservation paid and in house and the room occupied, in
// one transaction.
func (s *StayService) CheckIn(ctx context.Context, hotelID, reservationID, roomID uuid.UUID) (models.Reservation, error) {
	err := s.Store.Transaction(ctx, func(tx stores.Store) error {
		res, room, err := lockStay(ctx, tx, hotelID, reservationID, roomID, models.StayInHouse)
		if err != nil {
			return err
		}
		if room.Status != models.RoomAvailable {
			return precondition("Room %s is not available (%s)", room.RoomNumber, room.Status)
		}

		now := s.Clock.Stamp()
		res.PaymentStatus = models.PaymentPaid
		res.StayStatus = models.StayInHouse
		res.CheckedInAt = &now
		if err := tx.Reservations().Update(ctx, &res); err != nil {
			return storeErr(err, "reservation")
		}

		room.Status = models.RoomOccupied
		return storeErr(tx.Rooms().Update(ctx, &room), "room")
	})
	if err != nil {
		return models.Reservation{}, err
	}
	s.invalidate(hotelID)
	return s.get(ctx, hotelID, reservationID)
}

// CheckOut ends the stay, sends the room to housekeeping and rolls the stay
// into the guest's totals, in one transaction. Payment status is left as is.
func (s *StayService) CheckOut(ctx context.Context, hotelID, reservationID, roomID uuid.UUID) (models.Reservation, error) {
	err := s.Store.Transaction(ctx, func(tx stores.Store) error {
		res, room, err := lockStay(ctx, tx, hotelID, reservationID, roomID, models.StayDeparted)
		if err != nil {
			return err
		}

		now := s.Clock.Stamp()
		res.StayStatus = models.StayDeparted
		res.CheckedOutAt = &now
		if err := tx.Reservations().Update(ctx, &res); err != nil {
			return storeErr(err, "reservation")
		}

		room.Status = models.RoomMaintenance
		room.CleaningStatus = models.CleaningDirty
		if err := tx.Rooms().Update(ctx, &room); err != nil {
			return storeErr(err, "room")
		}

		guest, err := tx.Guests().Get(ctx, hotelID, res.GuestID)
		if err != nil {
			return storeErr(err, "guest")
		}
		guest.TotalStays++
		guest.TotalSpend += res.TotalPrice
		guest.LastVisitAt = &now
		return storeErr(tx.Guests().Update(ctx, &guest), "guest")
	})
	if err != nil {
		return models.Reservation{}, err
	}
	s.invalidate(hotelID)
	return s.get(ctx, hotelID, reservationID)
}

func (s *StayService) get(ctx context.Context, hotelID, id uuid.UUID) (models.Reservation, error) {
	r, err := s.Store.Reservations().Get(ctx, hotelID, id)
	return r, storeErr(err, "reservation")
}

func (s *StayService) invalidate(hotelID uuid.UUID) {
	s.Views.Invalidate(hotelID, ViewRooms, ViewReservations, ViewGuests, ViewFrontOffice, ViewDashboard)
}
