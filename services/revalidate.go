package services

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// View names a cached read model that mutations invalidate.
type View string

const (
	ViewHotels       View = "hotels"
	ViewRoomTypes    View = "room_types"
	ViewRooms        View = "rooms"
	ViewGuests       View = "guests"
	ViewReservations View = "reservations"
	ViewFrontOffice  View = "front_office"
	ViewDashboard    View = "dashboard"
	ViewStaff        View = "staff"
)

// Revalidator tracks a version per hotel and view. Platform-wide views use
// uuid.Nil as the hotel.
type Revalidator interface {
	Invalidate(hotelID uuid.UUID, views ...View)
	Version(hotelID uuid.UUID, view View) uint64
	ETag(hotelID uuid.UUID, view View, scope string) string
}

type viewKey struct {
	hotel uuid.UUID
	view  View
}

// ViewVersions is the in-process Revalidator. Counters restart with the
// process, so every tag carries the instance epoch and a tag minted by
// another process never matches.
type ViewVersions struct {
	mu       sync.RWMutex
	versions map[viewKey]uint64
	epoch    string
}

func NewViewVersions() *ViewVersions {
	return &ViewVersions{versions: map[viewKey]uint64{}, epoch: uuid.NewString()}
}

func (v *ViewVersions) Invalidate(hotelID uuid.UUID, views ...View) {
	v.mu.Lock()
	defer v.mu.Unlock()
	for _, view := range views {
		v.versions[viewKey{hotelID, view}]++
	}
}

func (v *ViewVersions) Version(hotelID uuid.UUID, view View) uint64 {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.versions[viewKey{hotelID, view}]
}

// ETag renders a weak validator for the view's current version. The scope
// string keeps different callers' variants of the same view apart.
func (v *ViewVersions) ETag(hotelID uuid.UUID, view View, scope string) string {
	return fmt.Sprintf(`W/"%s-%s-%s-%d-%s"`, view, hotelID, v.epoch, v.Version(hotelID, view), scope)
}
