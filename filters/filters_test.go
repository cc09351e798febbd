package filters

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel-pms/models"
)

var names = []string{
	"Émile Zola", "anna Smith", "Anna Smith", "Bob Stone", "bob stone", "Zoë Kravitz",
	"Ángel Cervera", "Chen Wei", "Olga Müller", "oscar wilde", "Núñez Pablo", "",
}

func randomGuests(rng *rand.Rand, n int) []models.Guest {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	out := make([]models.Guest, n)
	for i := range out {
		name := names[rng.IntN(len(names))]
		g := models.Guest{
			ID:          uuid.New(),
			FullName:    name,
			Email:       fmt.Sprintf("%s%d@example.com", strings.ToLower(strings.ReplaceAll(name, " ", ".")), i),
			PhoneNumber: fmt.Sprintf("+66 8%07d", rng.IntN(10_000_000)),
			TotalStays:  rng.IntN(4),
			TotalSpend:  float64(rng.IntN(5)) * 1500,
			CreatedAt:   base.Add(time.Duration(rng.IntN(30)) * 24 * time.Hour),
		}
		if rng.IntN(3) > 0 {
			visit := base.Add(time.Duration(rng.IntN(10)) * 24 * time.Hour)
			g.LastVisitAt = &visit
		}
		out[i] = g
	}
	return out
}

func TestMatchGuestResultsContainTerm(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	guests := randomGuests(rng, 200)

	for _, term := range []string{"anna", "STONE", "example.com", "+66 81", "zoë", "nobody-here", "  bob  "} {
		got := ApplyGuests(guests, GuestQuery{Search: term})
		needle := strings.ToLower(strings.TrimSpace(term))
		for _, g := range got {
			hay := strings.ToLower(g.FullName + "\x00" + g.Email + "\x00" + g.PhoneNumber)
			assert.Contains(t, hay, needle, "term %q matched guest %q", term, g.FullName)
		}

		var want int
		for _, g := range guests {
			if MatchGuest(g, term) {
				want++
			}
		}
		assert.Len(t, got, want, "term %q", term)
	}
}

func TestSortGuestsIsTotalForEveryKey(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	guests := randomGuests(rng, 150)
	c := newCollator()

	for _, key := range GuestSorts {
		t.Run(string(key), func(t *testing.T) {
			items := append([]models.Guest(nil), guests...)
			SortGuests(items, key)
			require.Len(t, items, len(guests))

			for i := 1; i < len(items); i++ {
				a, b := items[i-1], items[i]
				var r int
				switch key {
				case GuestNameAsc:
					r = c.CompareString(a.FullName, b.FullName)
				case GuestNameDesc:
					r = c.CompareString(b.FullName, a.FullName)
				case GuestRecent:
					r = compareVisits(a, b)
				case GuestSpendDesc:
					r = compareFloat(b.TotalSpend, a.TotalSpend)
				case GuestStaysDesc:
					r = b.TotalStays - a.TotalStays
				case GuestCreatedDesc:
					r = b.CreatedAt.Compare(a.CreatedAt)
				}
				require.LessOrEqual(t, r, 0, "position %d out of order", i)
				if r == 0 {
					require.Negative(t, compareIDs(a.ID, b.ID), "ties must break on id at %d", i)
				}
			}
		})
	}
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func TestSortGuestsCollation(t *testing.T) {
	items := []models.Guest{
		{ID: uuid.New(), FullName: "zed"},
		{ID: uuid.New(), FullName: "Émile"},
		{ID: uuid.New(), FullName: "adam"},
		{ID: uuid.New(), FullName: "Eve"},
	}
	SortGuests(items, GuestNameAsc)

	got := make([]string, len(items))
	for i, g := range items {
		got[i] = g.FullName
	}
	// Accented and capitalised names sort with their base letter.
	assert.Equal(t, []string{"adam", "Émile", "Eve", "zed"}, got)
}

func TestSortGuestsRecentPutsNeverVisitedLast(t *testing.T) {
	d1 := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	d2 := d1.AddDate(0, 0, 5)
	items := []models.Guest{
		{ID: uuid.New(), FullName: "never"},
		{ID: uuid.New(), FullName: "older", LastVisitAt: &d1},
		{ID: uuid.New(), FullName: "newer", LastVisitAt: &d2},
	}
	SortGuests(items, GuestRecent)
	assert.Equal(t, "newer", items[0].FullName)
	assert.Equal(t, "older", items[1].FullName)
	assert.Equal(t, "never", items[2].FullName)
}

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	tests := []struct {
		name string
		page Page
		want []int
	}{
		{"zero size returns everything", Page{}, []int{1, 2, 3, 4, 5}},
		{"first page", Page{Page: 1, PageSize: 2}, []int{1, 2}},
		{"page zero treated as first", Page{Page: 0, PageSize: 2}, []int{1, 2}},
		{"last partial page", Page{Page: 3, PageSize: 2}, []int{5}},
		{"past the end", Page{Page: 4, PageSize: 2}, []int{}},
		{"huge page number", Page{Page: math.MaxInt64/MaxPageSize + 2, PageSize: MaxPageSize}, []int{}},
		{"max int page", Page{Page: math.MaxInt, PageSize: 2}, []int{}},
		{"oversized page size is capped", Page{Page: 1, PageSize: math.MaxInt}, []int{1, 2, 3, 4, 5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []int
			require.NotPanics(t, func() { got = Paginate(items, tt.page) })
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestApplyReservations(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2025, 6, d, 0, 0, 0, 0, time.UTC) }
	alice := &models.Guest{FullName: "Alice Lee", Email: "alice@example.com"}
	bob := &models.Guest{FullName: "Bob Marley", Email: "bob@example.com"}
	r101 := &models.Room{RoomNumber: "101"}
	r202 := &models.Room{RoomNumber: "202"}

	items := []models.Reservation{
		{ID: uuid.New(), CheckInDate: day(3), TotalPrice: 300, PaymentStatus: models.PaymentPaid, StayStatus: models.StayInHouse, Guest: alice, Room: r101},
		{ID: uuid.New(), CheckInDate: day(1), TotalPrice: 100, PaymentStatus: models.PaymentPending, StayStatus: models.StayNotArrived, Guest: bob, Room: r202},
		{ID: uuid.New(), CheckInDate: day(5), TotalPrice: 500, PaymentStatus: models.PaymentCancelled, StayStatus: models.StayCancelled, Guest: bob, Room: r101},
		{ID: uuid.New(), CheckInDate: day(7), TotalPrice: 200, PaymentStatus: models.PaymentPending, StayStatus: models.StayNotArrived, Guest: alice, Room: r202},
	}

	t.Run("default sorts by check-in", func(t *testing.T) {
		got := ApplyReservations(items, ReservationQuery{})
		require.Len(t, got, 4)
		for i := 1; i < len(got); i++ {
			assert.False(t, got[i].CheckInDate.Before(got[i-1].CheckInDate))
		}
	})

	t.Run("search on room number and guest email", func(t *testing.T) {
		got := ApplyReservations(items, ReservationQuery{Search: "202"})
		require.Len(t, got, 2)
		for _, r := range got {
			assert.Equal(t, "202", r.Room.RoomNumber)
		}

		got = ApplyReservations(items, ReservationQuery{Search: "ALICE@"})
		require.Len(t, got, 2)
		for _, r := range got {
			assert.Same(t, alice, r.Guest)
		}
	})

	t.Run("payment status multi-select", func(t *testing.T) {
		got := ApplyReservations(items, ReservationQuery{
			PaymentStatuses: []models.PaymentStatus{models.PaymentPaid, models.PaymentCancelled},
			Sort:            ReservationPriceDesc,
		})
		require.Len(t, got, 2)
		assert.Equal(t, 500.0, got[0].TotalPrice)
		assert.Equal(t, 300.0, got[1].TotalPrice)
	})

	t.Run("date range is inclusive", func(t *testing.T) {
		from, to := day(3), day(5)
		got := ApplyReservations(items, ReservationQuery{From: &from, To: &to})
		require.Len(t, got, 2)
		assert.Equal(t, day(3), got[0].CheckInDate)
		assert.Equal(t, day(5), got[1].CheckInDate)
	})

	t.Run("guest name sort", func(t *testing.T) {
		got := ApplyReservations(items, ReservationQuery{Sort: ReservationGuestNameAsc})
		require.Len(t, got, 4)
		assert.Equal(t, "Alice Lee", got[0].Guest.FullName)
		assert.Equal(t, "Alice Lee", got[1].Guest.FullName)
		assert.Equal(t, "Bob Marley", got[3].Guest.FullName)
	})
}

func TestApplyRoomTypes(t *testing.T) {
	items := []models.RoomType{
		{ID: uuid.New(), Name: "Suite", PricePerNight: 5000, Capacity: 4, Description: "Sea view"},
		{ID: uuid.New(), Name: "deluxe", PricePerNight: 2500, Capacity: 2},
		{ID: uuid.New(), Name: "Standard", PricePerNight: 1200, Capacity: 2, Description: "garden VIEW"},
	}

	got := ApplyRoomTypes(items, RoomTypeQuery{Search: "view", Sort: RoomTypePriceAsc})
	require.Len(t, got, 2)
	assert.Equal(t, "Standard", got[0].Name)
	assert.Equal(t, "Suite", got[1].Name)

	got = ApplyRoomTypes(items, RoomTypeQuery{})
	assert.Equal(t, "deluxe", got[0].Name)

	got = ApplyRoomTypes(items, RoomTypeQuery{Sort: RoomTypeCapacityDesc})
	assert.Equal(t, "Suite", got[0].Name)
}
