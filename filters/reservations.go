package filters

import (
	"cmp"
	"slices"
	"time"

	"hotel-pms/models"
)

type ReservationSort string

const (
	ReservationCheckInAsc   ReservationSort = "check_in_asc"
	ReservationCheckInDesc  ReservationSort = "check_in_desc"
	ReservationCreatedDesc  ReservationSort = "created_desc"
	ReservationPriceAsc     ReservationSort = "price_asc"
	ReservationPriceDesc    ReservationSort = "price_desc"
	ReservationGuestNameAsc ReservationSort = "guest_asc"
)

var ReservationSorts = []ReservationSort{
	ReservationCheckInAsc, ReservationCheckInDesc, ReservationCreatedDesc,
	ReservationPriceAsc, ReservationPriceDesc, ReservationGuestNameAsc,
}

func (s ReservationSort) Valid() bool { return slices.Contains(ReservationSorts, s) }

// ReservationQuery narrows a hotel's reservations. From and To bound the
// check-in date inclusively.
type ReservationQuery struct {
	Search          string                 `form:"q"`
	PaymentStatuses []models.PaymentStatus `form:"payment_status"`
	StayStatuses    []models.StayStatus    `form:"stay_status"`
	From            *time.Time             `form:"-"`
	To              *time.Time             `form:"-"`
	GuestID         string                 `form:"guest_id"`
	Sort            ReservationSort        `form:"sort"`
	Page
}

// MatchReservation applies every predicate of q. Search looks at the guest
// name and email and the room number, so Guest and Room should be loaded.
func MatchReservation(r models.Reservation, q ReservationQuery) bool {
	if len(q.PaymentStatuses) > 0 && !slices.Contains(q.PaymentStatuses, r.PaymentStatus) {
		return false
	}
	if len(q.StayStatuses) > 0 && !slices.Contains(q.StayStatuses, r.StayStatus) {
		return false
	}
	if q.GuestID != "" && r.GuestID.String() != q.GuestID {
		return false
	}
	day := dateOnly(r.CheckInDate)
	if q.From != nil && day.Before(dateOnly(*q.From)) {
		return false
	}
	if q.To != nil && day.After(dateOnly(*q.To)) {
		return false
	}
	var name, email, number string
	if r.Guest != nil {
		name, email = r.Guest.FullName, r.Guest.Email
	}
	if r.Room != nil {
		number = r.Room.RoomNumber
	}
	return containsFold(q.Search, name, email, number)
}

func SortReservations(items []models.Reservation, key ReservationSort) {
	c := newCollator()
	slices.SortStableFunc(items, func(a, b models.Reservation) int {
		var r int
		switch key {
		case ReservationCheckInDesc:
			r = b.CheckInDate.Compare(a.CheckInDate)
		case ReservationCreatedDesc:
			r = b.CreatedAt.Compare(a.CreatedAt)
		case ReservationPriceAsc:
			r = cmp.Compare(a.TotalPrice, b.TotalPrice)
		case ReservationPriceDesc:
			r = cmp.Compare(b.TotalPrice, a.TotalPrice)
		case ReservationGuestNameAsc:
			r = c.CompareString(guestName(a), guestName(b))
		default:
			r = a.CheckInDate.Compare(b.CheckInDate)
		}
		if r != 0 {
			return r
		}
		return compareIDs(a.ID, b.ID)
	})
}

func ApplyReservations(items []models.Reservation, q ReservationQuery) []models.Reservation {
	out := make([]models.Reservation, 0, len(items))
	for _, r := range items {
		if MatchReservation(r, q) {
			out = append(out, r)
		}
	}
	SortReservations(out, q.Sort)
	return Paginate(out, q.Page)
}

func guestName(r models.Reservation) string {
	if r.Guest == nil {
		return ""
	}
	return r.Guest.FullName
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
