package services

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel-pms/filters"
	"hotel-pms/models"
)

func TestCreateReservationDefaults(t *testing.T) {
	f := newFixture(t)

	res, err := f.reservations.Create(f.ctx, f.hotel.ID, ReservationInput{
		GuestID:            f.guest.ID,
		RoomID:             f.room101.ID,
		CheckInDate:        "2025-06-10",
		CheckOutDate:       "2025-06-13",
		Adults:             1,
		Children:           1,
		AccompanyingGuests: json.RawMessage(`[{"name":"Kid Lee"}]`),
		Notes:              "  late arrival ",
	})
	require.NoError(t, err)

	assert.Equal(t, 3000.0, res.TotalPrice)
	assert.Equal(t, models.PaymentPending, res.PaymentStatus)
	assert.Equal(t, models.StayNotArrived, res.StayStatus)
	assert.Equal(t, "late arrival", res.Notes)
	assert.Equal(t, 3, res.Nights())
	assert.JSONEq(t, `[{"name":"Kid Lee"}]`, string(res.AccompanyingGuests))
	require.NotNil(t, res.Guest)
	assert.Equal(t, "Alice Lee", res.Guest.FullName)
	require.NotNil(t, res.Room)
	assert.Equal(t, "101", res.Room.RoomNumber)
}

func TestCreateReservationValidation(t *testing.T) {
	f := newFixture(t)
	negative := -1.0

	tests := []struct {
		name  string
		in    ReservationInput
		field string
	}{
		{"bad check-in", ReservationInput{CheckInDate: "10/06/2025", CheckOutDate: "2025-06-11", Adults: 1}, "check_in_date"},
		{"check-out before check-in", ReservationInput{CheckInDate: "2025-06-11", CheckOutDate: "2025-06-11", Adults: 1}, "check_out_date"},
		{"no adults", ReservationInput{CheckInDate: "2025-06-10", CheckOutDate: "2025-06-11"}, "adults"},
		{"negative price", ReservationInput{CheckInDate: "2025-06-10", CheckOutDate: "2025-06-11", Adults: 1, TotalPrice: &negative}, "total_price"},
		{"cancelled payment", ReservationInput{CheckInDate: "2025-06-10", CheckOutDate: "2025-06-11", Adults: 1, PaymentStatus: models.PaymentCancelled}, "payment_status"},
		{"bad accompanying json", ReservationInput{CheckInDate: "2025-06-10", CheckOutDate: "2025-06-11", Adults: 1, AccompanyingGuests: json.RawMessage(`[{`)}, "accompanying_guests"},
		{"over capacity", ReservationInput{CheckInDate: "2025-06-10", CheckOutDate: "2025-06-11", Adults: 2, Children: 1}, "adults"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := tt.in
			in.GuestID, in.RoomID = f.guest.ID, f.room101.ID
			_, err := f.reservations.Create(f.ctx, f.hotel.ID, in)

			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Contains(t, ve.Fields, tt.field)
		})
	}
}

func TestCreateReservationRejectsOverlap(t *testing.T) {
	f := newFixture(t)
	first := f.book(t, f.room101, "2025-06-10", "2025-06-13")

	_, err := f.reservations.Create(f.ctx, f.hotel.ID, ReservationInput{
		GuestID: f.guest.ID, RoomID: f.room101.ID, CheckInDate: "2025-06-12", CheckOutDate: "2025-06-14", Adults: 1,
	})
	require.ErrorIs(t, err, ErrConflict)
	assert.Contains(t, err.Error(), "Room 101 is already booked")

	// Back-to-back stays and other rooms are fine.
	f.book(t, f.room101, "2025-06-13", "2025-06-15")
	f.book(t, f.room102, "2025-06-12", "2025-06-14")

	// A cancelled booking frees its dates.
	_, err = f.reservations.Cancel(f.ctx, f.hotel.ID, first.ID)
	require.NoError(t, err)
	f.book(t, f.room101, "2025-06-10", "2025-06-12")
}

func TestUpdateReservationOnlyBeforeArrival(t *testing.T) {
	f := newFixture(t)
	res := f.book(t, f.room101, "2025-06-10", "2025-06-12")
	price := 1500.0

	updated, err := f.reservations.Update(f.ctx, f.hotel.ID, res.ID, ReservationInput{
		GuestID: f.guest.ID, RoomID: f.room102.ID, CheckInDate: "2025-06-11", CheckOutDate: "2025-06-12",
		Adults: 2, TotalPrice: &price, PaymentStatus: models.PaymentPaid,
	})
	require.NoError(t, err)
	assert.Equal(t, f.room102.ID, updated.RoomID)
	assert.Equal(t, 1500.0, updated.TotalPrice)
	assert.Equal(t, models.PaymentPaid, updated.PaymentStatus)

	_, err = f.stays.CheckIn(f.ctx, f.hotel.ID, res.ID, f.room102.ID)
	require.NoError(t, err)

	_, err = f.reservations.Update(f.ctx, f.hotel.ID, res.ID, ReservationInput{
		GuestID: f.guest.ID, RoomID: f.room102.ID, CheckInDate: "2025-06-11", CheckOutDate: "2025-06-13", Adults: 1,
	})
	requirePrecondition(t, err, "have not arrived")
}

func TestCancelInHouseReleasesRoom(t *testing.T) {
	f := newFixture(t)
	res := f.book(t, f.room101, "2025-06-10", "2025-06-12")
	_, err := f.stays.CheckIn(f.ctx, f.hotel.ID, res.ID, f.room101.ID)
	require.NoError(t, err)

	got, err := f.reservations.Cancel(f.ctx, f.hotel.ID, res.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StayCancelled, got.StayStatus)
	assert.Equal(t, models.PaymentCancelled, got.PaymentStatus)
	require.NotNil(t, got.CancelledAt)

	room := f.room(t, f.room101.ID)
	assert.Equal(t, models.RoomMaintenance, room.Status)
	assert.Equal(t, models.CleaningDirty, room.CleaningStatus)

	_, err = f.reservations.Cancel(f.ctx, f.hotel.ID, res.ID)
	requirePrecondition(t, err, "already cancelled")
}

func TestCancelDepartedIsRefused(t *testing.T) {
	f := newFixture(t)
	res := f.book(t, f.room101, "2025-06-07", "2025-06-10")
	_, err := f.stays.CheckIn(f.ctx, f.hotel.ID, res.ID, f.room101.ID)
	require.NoError(t, err)
	_, err = f.stays.CheckOut(f.ctx, f.hotel.ID, res.ID, f.room101.ID)
	require.NoError(t, err)

	_, err = f.reservations.Cancel(f.ctx, f.hotel.ID, res.ID)
	requirePrecondition(t, err, "already departed")

	got := f.reload(t, res.ID)
	assert.Equal(t, models.StayDeparted, got.StayStatus)
	assert.Equal(t, models.PaymentPaid, got.PaymentStatus)
	assert.Nil(t, got.CancelledAt)

	// The completed stay still counts toward the guest's history.
	g, err := f.store.Guests().Get(f.ctx, f.hotel.ID, f.guest.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, g.TotalStays)
	assert.Equal(t, 3000.0, g.TotalSpend)
}

func TestDeleteReservation(t *testing.T) {
	f := newFixture(t)
	upcoming := f.book(t, f.room101, "2025-06-10", "2025-06-11")
	staying := f.book(t, f.room102, "2025-06-10", "2025-06-11")
	_, err := f.stays.CheckIn(f.ctx, f.hotel.ID, staying.ID, f.room102.ID)
	require.NoError(t, err)

	require.NoError(t, f.reservations.Delete(f.ctx, f.hotel.ID, upcoming.ID))
	_, err = f.reservations.Get(f.ctx, f.hotel.ID, upcoming.ID)
	require.ErrorIs(t, err, ErrNotFound)

	err = f.reservations.Delete(f.ctx, f.hotel.ID, staying.ID)
	requirePrecondition(t, err, "status: in_house")
}

func TestListReservationsRejectsUnknownFilters(t *testing.T) {
	f := newFixture(t)

	_, err := f.reservations.List(f.ctx, f.hotel.ID, filters.ReservationQuery{
		Sort:            "cheapest",
		PaymentStatuses: []models.PaymentStatus{"refunded"},
	})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "sort")
	assert.Contains(t, ve.Fields, "payment_status")

	f.book(t, f.room101, "2025-06-10", "2025-06-11")
	items, err := f.reservations.List(f.ctx, f.hotel.ID, filters.ReservationQuery{Search: "alice"})
	require.NoError(t, err)
	assert.Len(t, items, 1)
}
