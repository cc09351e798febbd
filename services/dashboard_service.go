package services

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"hotel-pms/models"
	"hotel-pms/stores"
	"hotel-pms/utils"
)

// HotelSummary is the manager and admin dashboard for one day.
type HotelSummary struct {
	HotelID          uuid.UUID `json:"hotel_id"`
	Date             string    `json:"date"`
	TotalRooms       int64     `json:"total_rooms"`
	AvailableRooms   int64     `json:"available_rooms"`
	OccupiedRooms    int64     `json:"occupied_rooms"`
	MaintenanceRooms int64     `json:"maintenance_rooms"`
	CheckInsToday    int64     `json:"check_ins_today"`
	CheckOutsToday   int64     `json:"check_outs_today"`
	InHouse          int64     `json:"in_house"`
	RevenueToday     float64   `json:"revenue_today"`
	OccupancyRate    float64   `json:"occupancy_rate"`
}

type PlatformSummary struct {
	Hotels           int64 `json:"hotels"`
	Rooms            int64 `json:"rooms"`
	Reservations     int64 `json:"reservations"`
	StaffAssignments int64 `json:"staff_assignments"`
}

type DashboardService struct {
	Store stores.Store
}

func NewDashboardService(store stores.Store) *DashboardService {
	return &DashboardService{Store: store}
}

// HotelSummary runs its counts in parallel; the first failure cancels the
// rest.
func (s *DashboardService) HotelSummary(ctx context.Context, hotelID uuid.UUID, date time.Time) (HotelSummary, error) {
	sum := HotelSummary{HotelID: hotelID, Date: utils.FormatDate(date)}
	rooms := s.Store.Rooms()
	reservations := s.Store.Reservations()
	cancelled := []models.StayStatus{models.StayCancelled}

	g, ctx := errgroup.WithContext(ctx)
	countRooms := func(dst *int64, status models.RoomStatus) {
		g.Go(func() error {
			n, err := rooms.Count(ctx, stores.RoomFilter{HotelID: &hotelID, Status: status})
			*dst = n
			return err
		})
	}
	countReservations := func(dst *int64, f stores.ReservationFilter) {
		g.Go(func() error {
			f.HotelID = &hotelID
			n, err := reservations.Count(ctx, f)
			*dst = n
			return err
		})
	}

	countRooms(&sum.TotalRooms, "")
	countRooms(&sum.AvailableRooms, models.RoomAvailable)
	countRooms(&sum.OccupiedRooms, models.RoomOccupied)
	countRooms(&sum.MaintenanceRooms, models.RoomMaintenance)
	countReservations(&sum.CheckInsToday, stores.ReservationFilter{CheckInDate: &date, ExcludeStays: cancelled})
	countReservations(&sum.CheckOutsToday, stores.ReservationFilter{CheckOutDate: &date, ExcludeStays: cancelled})
	countReservations(&sum.InHouse, stores.ReservationFilter{StayStatuses: []models.StayStatus{models.StayInHouse}})
	g.Go(func() error {
		total, err := reservations.SumTotal(ctx, stores.ReservationFilter{
			HotelID:       &hotelID,
			CheckInDate:   &date,
			PaymentStatus: models.PaymentPaid,
		})
		sum.RevenueToday = total
		return err
	})

	if err := g.Wait(); err != nil {
		return HotelSummary{}, err
	}
	if sum.TotalRooms > 0 {
		rate := float64(sum.OccupiedRooms) / float64(sum.TotalRooms)
		sum.OccupancyRate = math.Round(rate*10000) / 10000
	}
	return sum, nil
}

func (s *DashboardService) PlatformSummary(ctx context.Context) (PlatformSummary, error) {
	var sum PlatformSummary
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		sum.Hotels, err = s.Store.Hotels().Count(ctx)
		return err
	})
	g.Go(func() (err error) {
		sum.Rooms, err = s.Store.Rooms().Count(ctx, stores.RoomFilter{})
		return err
	})
	g.Go(func() (err error) {
		sum.Reservations, err = s.Store.Reservations().Count(ctx, stores.ReservationFilter{})
		return err
	})
	g.Go(func() (err error) {
		sum.StaffAssignments, err = s.Store.Access().CountAssignments(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return PlatformSummary{}, err
	}
	return sum, nil
}
