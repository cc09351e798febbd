package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"hotel-pms/models"
	"hotel-pms/stores"
)

var testNow = time.Date(2025, 6, 10, 9, 30, 0, 0, time.UTC)

// fixture is one hotel with a room type, two rooms and a guest on the memory
// store.
type fixture struct {
	ctx   context.Context
	store *stores.Memory
	views *ViewVersions
	clock Clock

	hotel    models.Hotel
	roomType models.RoomType
	room101  models.Room
	room102  models.Room
	guest    models.Guest

	hotels       *HotelService
	roomTypes    *RoomTypeService
	rooms        *RoomService
	guests       *GuestService
	reservations *ReservationService
	stays        *StayService
	dashboard    *DashboardService
	access       *AccessService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	store := stores.NewMemory()
	require.NoError(t, store.Access().SeedRoles(ctx))

	f := &fixture{
		ctx:   ctx,
		store: store,
		views: NewViewVersions(),
		clock: Clock{Now: func() time.Time { return testNow }, Location: time.UTC},
	}
	f.wire(store)

	f.hotel = models.Hotel{Name: "Riverside"}
	require.NoError(t, store.Hotels().Create(ctx, &f.hotel))

	f.roomType = models.RoomType{HotelID: f.hotel.ID, Name: "Deluxe", PricePerNight: 1000, Capacity: 2}
	require.NoError(t, store.RoomTypes().Create(ctx, &f.roomType))

	f.room101 = f.addRoom(t, "101", models.RoomAvailable)
	f.room102 = f.addRoom(t, "102", models.RoomAvailable)

	f.guest = models.Guest{HotelID: f.hotel.ID, FullName: "Alice Lee", Email: "alice@example.com", LoyaltyTier: models.TierStandard}
	require.NoError(t, store.Guests().Create(ctx, &f.guest))
	return f
}

// wire builds the services on top of store, which may wrap the fixture's.
func (f *fixture) wire(store stores.Store) {
	f.hotels = NewHotelService(store, f.views)
	f.roomTypes = NewRoomTypeService(store, f.views)
	f.rooms = NewRoomService(store, f.views)
	f.guests = NewGuestService(store, f.views)
	f.reservations = NewReservationService(store, f.views, f.clock)
	f.stays = NewStayService(store, f.views, f.clock)
	f.dashboard = NewDashboardService(store)
	f.access = NewAccessService(store, f.views, nil)
}

func (f *fixture) addRoom(t *testing.T, number string, status models.RoomStatus) models.Room {
	t.Helper()
	room := models.Room{HotelID: f.hotel.ID, RoomTypeID: f.roomType.ID, RoomNumber: number, Status: status}
	require.NoError(t, f.store.Rooms().Create(f.ctx, &room))
	return room
}

func (f *fixture) book(t *testing.T, room models.Room, checkIn, checkOut string) models.Reservation {
	t.Helper()
	res, err := f.reservations.Create(f.ctx, f.hotel.ID, ReservationInput{
		GuestID:      f.guest.ID,
		RoomID:       room.ID,
		CheckInDate:  checkIn,
		CheckOutDate: checkOut,
		Adults:       1,
	})
	require.NoError(t, err)
	return res
}

func (f *fixture) reload(t *testing.T, id uuid.UUID) models.Reservation {
	t.Helper()
	res, err := f.store.Reservations().Get(f.ctx, f.hotel.ID, id)
	require.NoError(t, err)
	return res
}

func (f *fixture) room(t *testing.T, id uuid.UUID) models.Room {
	t.Helper()
	room, err := f.store.Rooms().Get(f.ctx, f.hotel.ID, id)
	require.NoError(t, err)
	return room
}

func requirePrecondition(t *testing.T, err error, contains string) {
	t.Helper()
	var pe *PreconditionError
	require.ErrorAs(t, err, &pe)
	require.Contains(t, pe.Message, contains)
}

// failRoomUpdates fails every room write, inside transactions too.
type failRoomUpdates struct{ stores.Store }

var errRoomWrite = errors.New("room write failed")

type failingRooms struct{ stores.RoomRepository }

func (failingRooms) Update(context.Context, *models.Room) error { return errRoomWrite }

func (s failRoomUpdates) Rooms() stores.RoomRepository {
	return failingRooms{s.Store.Rooms()}
}

func (s failRoomUpdates) Transaction(ctx context.Context, fn func(tx stores.Store) error) error {
	return s.Store.Transaction(ctx, func(tx stores.Store) error {
		return fn(failRoomUpdates{tx})
	})
}
