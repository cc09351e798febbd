package services

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel-pms/models"
	"hotel-pms/stores"
)

func TestDeleteGuest(t *testing.T) {
	f := newFixture(t)

	t.Run("with reservations is refused and keeps the row", func(t *testing.T) {
		f.book(t, f.room101, "2025-06-10", "2025-06-11")
		f.book(t, f.room102, "2025-06-10", "2025-06-11")

		err := f.guests.Delete(f.ctx, f.hotel.ID, f.guest.ID)
		requirePrecondition(t, err, "Cannot delete guest with 2 existing reservation(s)")

		_, err = f.store.Guests().Get(f.ctx, f.hotel.ID, f.guest.ID)
		require.NoError(t, err)
	})

	t.Run("without reservations removes the row", func(t *testing.T) {
		g, err := f.guests.Create(f.ctx, f.hotel.ID, GuestInput{FullName: "Bob Stone", Email: "bob@example.com"})
		require.NoError(t, err)

		require.NoError(t, f.guests.Delete(f.ctx, f.hotel.ID, g.ID))

		_, err = f.store.Guests().Get(f.ctx, f.hotel.ID, g.ID)
		require.ErrorIs(t, err, stores.ErrNotFound)
	})

	t.Run("unknown guest", func(t *testing.T) {
		err := f.guests.Delete(f.ctx, f.hotel.ID, uuid.New())
		require.ErrorIs(t, err, ErrNotFound)
	})
}

func TestDeleteRoomType(t *testing.T) {
	f := newFixture(t)

	err := f.roomTypes.Delete(f.ctx, f.hotel.ID, f.roomType.ID)
	requirePrecondition(t, err, "Cannot delete room type: 2 room(s) are using it")

	_, err = f.store.RoomTypes().Get(f.ctx, f.hotel.ID, f.roomType.ID)
	require.NoError(t, err)

	unused, err := f.roomTypes.Create(f.ctx, f.hotel.ID, RoomTypeInput{Name: "Suite", PricePerNight: 4000, Capacity: 4})
	require.NoError(t, err)
	require.NoError(t, f.roomTypes.Delete(f.ctx, f.hotel.ID, unused.ID))

	_, err = f.store.RoomTypes().Get(f.ctx, f.hotel.ID, unused.ID)
	require.ErrorIs(t, err, stores.ErrNotFound)
}

func TestDeleteRoom(t *testing.T) {
	f := newFixture(t)
	f.book(t, f.room101, "2025-06-10", "2025-06-11")

	err := f.rooms.Delete(f.ctx, f.hotel.ID, f.room101.ID)
	requirePrecondition(t, err, "Cannot delete room: 1 reservation(s) reference it")

	require.NoError(t, f.rooms.Delete(f.ctx, f.hotel.ID, f.room102.ID))
	_, err = f.store.Rooms().Get(f.ctx, f.hotel.ID, f.room102.ID)
	require.ErrorIs(t, err, stores.ErrNotFound)
}

func TestDeleteHotel(t *testing.T) {
	f := newFixture(t)

	err := f.hotels.Delete(f.ctx, f.hotel.ID)
	requirePrecondition(t, err, "2 room(s) still belong to it")

	require.NoError(t, f.rooms.Delete(f.ctx, f.hotel.ID, f.room101.ID))
	require.NoError(t, f.rooms.Delete(f.ctx, f.hotel.ID, f.room102.ID))
	require.NoError(t, f.hotels.Delete(f.ctx, f.hotel.ID))

	_, err = f.hotels.Get(f.ctx, f.hotel.ID)
	require.ErrorIs(t, err, ErrNotFound)
	_, err = f.store.Guests().Get(f.ctx, f.hotel.ID, f.guest.ID)
	require.ErrorIs(t, err, stores.ErrNotFound)
}

func TestTenantIsolation(t *testing.T) {
	f := newFixture(t)
	other := models.Hotel{Name: "Hilltop"}
	require.NoError(t, f.store.Hotels().Create(f.ctx, &other))

	_, err := f.guests.Get(f.ctx, other.ID, f.guest.ID)
	require.ErrorIs(t, err, ErrNotFound)

	err = f.rooms.Delete(f.ctx, other.ID, f.room101.ID)
	require.ErrorIs(t, err, ErrNotFound)

	_, err = f.reservations.Create(f.ctx, other.ID, ReservationInput{
		GuestID:      f.guest.ID,
		RoomID:       f.room101.ID,
		CheckInDate:  "2025-06-10",
		CheckOutDate: "2025-06-11",
		Adults:       1,
	})
	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Contains(t, ve.Fields, "guest_id")
	assert.Contains(t, ve.Fields, "room_id")
}
