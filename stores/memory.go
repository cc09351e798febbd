package stores

import (
	"context"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"hotel-pms/models"
)

// Memory is an in-process Store. Transactions work on a copy of the state
// and swap it in on success, so a failed transaction leaves nothing behind.
type Memory struct {
	mu    *sync.RWMutex
	state *memState
	inTx  bool
	now   func() time.Time
}

type memState struct {
	hotels       map[uuid.UUID]models.Hotel
	roomTypes    map[uuid.UUID]models.RoomType
	rooms        map[uuid.UUID]models.Room
	guests       map[uuid.UUID]models.Guest
	reservations map[uuid.UUID]models.Reservation
	profiles     map[uuid.UUID]models.Profile
	roles        map[uint]models.Role
	userRoles    map[uuid.UUID]models.UserRole
	nextRoleID   uint
}

func NewMemory() *Memory {
	return &Memory{
		mu: &sync.RWMutex{},
		state: &memState{
			hotels:       map[uuid.UUID]models.Hotel{},
			roomTypes:    map[uuid.UUID]models.RoomType{},
			rooms:        map[uuid.UUID]models.Room{},
			guests:       map[uuid.UUID]models.Guest{},
			reservations: map[uuid.UUID]models.Reservation{},
			profiles:     map[uuid.UUID]models.Profile{},
			roles:        map[uint]models.Role{},
			userRoles:    map[uuid.UUID]models.UserRole{},
			nextRoleID:   1,
		},
		now: time.Now,
	}
}

func (s *memState) clone() *memState {
	return &memState{
		hotels:       maps.Clone(s.hotels),
		roomTypes:    maps.Clone(s.roomTypes),
		rooms:        maps.Clone(s.rooms),
		guests:       maps.Clone(s.guests),
		reservations: maps.Clone(s.reservations),
		profiles:     maps.Clone(s.profiles),
		roles:        maps.Clone(s.roles),
		userRoles:    maps.Clone(s.userRoles),
		nextRoleID:   s.nextRoleID,
	}
}

func (m *Memory) Hotels() HotelRepository             { return memHotels{m} }
func (m *Memory) RoomTypes() RoomTypeRepository       { return memRoomTypes{m} }
func (m *Memory) Rooms() RoomRepository               { return memRooms{m} }
func (m *Memory) Guests() GuestRepository             { return memGuests{m} }
func (m *Memory) Reservations() ReservationRepository { return memReservations{m} }
func (m *Memory) Access() AccessRepository            { return memAccess{m} }

// Transaction holds the write lock for the whole of fn. Nested calls join the
// outer transaction.
func (m *Memory) Transaction(ctx context.Context, fn func(tx Store) error) error {
	if m.inTx {
		return fn(m)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	tx := &Memory{mu: m.mu, state: m.state.clone(), inTx: true, now: m.now}
	if err := fn(tx); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	m.state = tx.state
	return nil
}

func (m *Memory) Ping(ctx context.Context) error { return ctx.Err() }

func (m *Memory) read(fn func(s *memState) error) error {
	if !m.inTx {
		m.mu.RLock()
		defer m.mu.RUnlock()
	}
	return fn(m.state)
}

func (m *Memory) write(fn func(s *memState) error) error {
	if !m.inTx {
		m.mu.Lock()
		defer m.mu.Unlock()
	}
	return fn(m.state)
}

// ------------------------------
// association helpers
// ------------------------------

func (s *memState) withRoomType(r models.Room) models.Room {
	if rt, ok := s.roomTypes[r.RoomTypeID]; ok {
		r.RoomType = &rt
	}
	return r
}

func (s *memState) withParties(r models.Reservation) models.Reservation {
	if g, ok := s.guests[r.GuestID]; ok {
		g.Preferences = slices.Clone(g.Preferences)
		r.Guest = &g
	}
	if room, ok := s.rooms[r.RoomID]; ok {
		room = s.withRoomType(room)
		r.Room = &room
	}
	r.AccompanyingGuests = slices.Clone(r.AccompanyingGuests)
	return r
}

func (s *memState) withAssignmentRefs(ur models.UserRole) models.UserRole {
	ur.Role = s.roles[ur.RoleID]
	if p, ok := s.profiles[ur.UserID]; ok {
		ur.Profile = &p
	}
	if ur.HotelID != nil {
		if h, ok := s.hotels[*ur.HotelID]; ok {
			ur.Hotel = &h
		}
	}
	return ur
}

func stamp(created *time.Time, updated *time.Time, now time.Time) {
	if created != nil && created.IsZero() {
		*created = now
	}
	if updated != nil {
		*updated = now
	}
}

func deleteWhere[K comparable, V any](m map[K]V, pred func(V) bool) {
	maps.DeleteFunc(m, func(_ K, v V) bool { return pred(v) })
}
