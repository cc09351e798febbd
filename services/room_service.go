package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"hotel-pms/models"
	"hotel-pms/stores"
)

type RoomInput struct {
	RoomTypeID     uuid.UUID             `json:"room_type_id"`
	RoomNumber     string                `json:"room_number"`
	Floor          string                `json:"floor"`
	CleaningStatus models.CleaningStatus `json:"cleaning_status"`
}

func (in RoomInput) validate() error {
	fe := FieldErrors{}
	if in.RoomTypeID == uuid.Nil {
		fe.Add("room_type_id", "is required")
	}
	if strings.TrimSpace(in.RoomNumber) == "" {
		fe.Add("room_number", "is required")
	}
	if in.CleaningStatus != "" && !in.CleaningStatus.Valid() {
		fe.Add("cleaning_status", "must be clean, dirty or inspected")
	}
	return fe.Err()
}

// RoomStatusInput is the housekeeping update. Empty fields stay unchanged.
type RoomStatusInput struct {
	Status         models.RoomStatus     `json:"status"`
	CleaningStatus models.CleaningStatus `json:"cleaning_status"`
}

type RoomService struct {
	Store stores.Store
	Views Revalidator
}

func NewRoomService(store stores.Store, views Revalidator) *RoomService {
	return &RoomService{Store: store, Views: views}
}

func (s *RoomService) List(ctx context.Context, hotelID uuid.UUID, status models.RoomStatus) ([]models.Room, error) {
	if status != "" && !status.Valid() {
		fe := FieldErrors{}
		fe.Add("status", "must be available, occupied or maintenance")
		return nil, fe.Err()
	}
	return s.Store.Rooms().List(ctx, stores.RoomFilter{HotelID: &hotelID, Status: status})
}

func (s *RoomService) Get(ctx context.Context, hotelID, id uuid.UUID) (models.Room, error) {
	room, err := s.Store.Rooms().Get(ctx, hotelID, id)
	return room, storeErr(err, "room")
}

// checkRoomType makes sure the type exists in the same hotel.
func (s *RoomService) checkRoomType(ctx context.Context, hotelID, roomTypeID uuid.UUID) error {
	_, err := s.Store.RoomTypes().Get(ctx, hotelID, roomTypeID)
	if errors.Is(err, stores.ErrNotFound) {
		fe := FieldErrors{}
		fe.Add("room_type_id", "does not belong to this hotel")
		return fe.Err()
	}
	return err
}

func (s *RoomService) Create(ctx context.Context, hotelID uuid.UUID, in RoomInput) (models.Room, error) {
	if err := in.validate(); err != nil {
		return models.Room{}, err
	}
	if err := s.checkRoomType(ctx, hotelID, in.RoomTypeID); err != nil {
		return models.Room{}, err
	}
	room := models.Room{
		HotelID:        hotelID,
		RoomTypeID:     in.RoomTypeID,
		RoomNumber:     strings.TrimSpace(in.RoomNumber),
		Floor:          strings.TrimSpace(in.Floor),
		Status:         models.RoomAvailable,
		CleaningStatus: in.CleaningStatus,
	}
	if room.CleaningStatus == "" {
		room.CleaningStatus = models.CleaningClean
	}
	if err := s.Store.Rooms().Create(ctx, &room); err != nil {
		return models.Room{}, roomWriteErr(err, room.RoomNumber)
	}
	s.Views.Invalidate(hotelID, ViewRooms, ViewRoomTypes, ViewDashboard, ViewFrontOffice)
	return room, nil
}

func (s *RoomService) Update(ctx context.Context, hotelID, id uuid.UUID, in RoomInput) (models.Room, error) {
	if err := in.validate(); err != nil {
		return models.Room{}, err
	}
	room, err := s.Store.Rooms().Get(ctx, hotelID, id)
	if err != nil {
		return models.Room{}, storeErr(err, "room")
	}
	if err := s.checkRoomType(ctx, hotelID, in.RoomTypeID); err != nil {
		return models.Room{}, err
	}
	room.RoomTypeID = in.RoomTypeID
	room.RoomNumber = strings.TrimSpace(in.RoomNumber)
	room.Floor = strings.TrimSpace(in.Floor)
	if in.CleaningStatus != "" {
		room.CleaningStatus = in.CleaningStatus
	}
	room.RoomType = nil
	if err := s.Store.Rooms().Update(ctx, &room); err != nil {
		return models.Room{}, roomWriteErr(err, room.RoomNumber)
	}
	s.Views.Invalidate(hotelID, ViewRooms, ViewReservations, ViewFrontOffice)
	return room, nil
}

// UpdateStatus applies a housekeeping change. Rooms move between available
// and maintenance here; occupancy only changes through check-in and
// check-out.
func (s *RoomService) UpdateStatus(ctx context.Context, hotelID, id uuid.UUID, in RoomStatusInput) (models.Room, error) {
	fe := FieldErrors{}
	if in.Status == "" && in.CleaningStatus == "" {
		fe.Add("status", "status or cleaning_status is required")
	}
	if in.Status != "" && !in.Status.Valid() {
		fe.Add("status", "must be available, occupied or maintenance")
	}
	if in.CleaningStatus != "" && !in.CleaningStatus.Valid() {
		fe.Add("cleaning_status", "must be clean, dirty or inspected")
	}
	if err := fe.Err(); err != nil {
		return models.Room{}, err
	}

	var room models.Room
	err := s.Store.Transaction(ctx, func(tx stores.Store) error {
		var err error
		room, err = tx.Rooms().GetForUpdate(ctx, hotelID, id)
		if err != nil {
			return storeErr(err, "room")
		}
		if in.Status != "" && in.Status != room.Status {
			if !room.Status.CanSetManually(in.Status) {
				return precondition("Cannot change room %s from %s to %s", room.RoomNumber, room.Status, in.Status)
			}
			room.Status = in.Status
		}
		if in.CleaningStatus != "" {
			room.CleaningStatus = in.CleaningStatus
		}
		return storeErr(tx.Rooms().Update(ctx, &room), "room")
	})
	if err != nil {
		return models.Room{}, err
	}
	s.Views.Invalidate(hotelID, ViewRooms, ViewFrontOffice, ViewDashboard)
	return room, nil
}

// Delete refuses while any reservation references the room.
func (s *RoomService) Delete(ctx context.Context, hotelID, id uuid.UUID) error {
	if _, err := s.Store.Rooms().Get(ctx, hotelID, id); err != nil {
		return storeErr(err, "room")
	}
	n, err := s.Store.Reservations().Count(ctx, stores.ReservationFilter{HotelID: &hotelID, RoomID: &id})
	if err != nil {
		return err
	}
	if n > 0 {
		return precondition("Cannot delete room: %d reservation(s) reference it", n)
	}
	if err := s.Store.Rooms().Delete(ctx, hotelID, id); err != nil {
		return storeErr(err, "room")
	}
	s.Views.Invalidate(hotelID, ViewRooms, ViewRoomTypes, ViewDashboard, ViewFrontOffice)
	return nil
}

func roomWriteErr(err error, number string) error {
	if errors.Is(err, stores.ErrDuplicate) {
		return conflict("Room number %s already exists in this hotel", number)
	}
	return storeErr(err, "room")
}
