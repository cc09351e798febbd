package stores

import (
	"cmp"
	"context"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"hotel-pms/filters"
	"hotel-pms/models"
)

// ------------------------------
// Hotels
// ------------------------------

type memHotels struct{ m *Memory }

func (r memHotels) List(ctx context.Context) ([]models.Hotel, error) {
	var out []models.Hotel
	err := r.m.read(func(s *memState) error {
		out = slices.Collect(maps.Values(s.hotels))
		slices.SortFunc(out, func(a, b models.Hotel) int {
			return cmp.Or(cmp.Compare(a.Name, b.Name), cmp.Compare(a.ID.String(), b.ID.String()))
		})
		return nil
	})
	return out, err
}

func (r memHotels) Get(ctx context.Context, id uuid.UUID) (models.Hotel, error) {
	var h models.Hotel
	err := r.m.read(func(s *memState) error {
		found, ok := s.hotels[id]
		if !ok {
			return ErrNotFound
		}
		h = found
		return nil
	})
	return h, err
}

func (r memHotels) Create(ctx context.Context, h *models.Hotel) error {
	return r.m.write(func(s *memState) error {
		if h.ID == uuid.Nil {
			h.ID = uuid.New()
		}
		if _, ok := s.hotels[h.ID]; ok {
			return ErrDuplicate
		}
		stamp(&h.CreatedAt, &h.UpdatedAt, r.m.now())
		s.hotels[h.ID] = *h
		return nil
	})
}

func (r memHotels) Update(ctx context.Context, h *models.Hotel) error {
	return r.m.write(func(s *memState) error {
		old, ok := s.hotels[h.ID]
		if !ok {
			return ErrNotFound
		}
		h.CreatedAt = old.CreatedAt
		stamp(nil, &h.UpdatedAt, r.m.now())
		s.hotels[h.ID] = *h
		return nil
	})
}

// Delete cascades to the hotel's rows like the Postgres foreign keys do.
func (r memHotels) Delete(ctx context.Context, id uuid.UUID) error {
	return r.m.write(func(s *memState) error {
		if _, ok := s.hotels[id]; !ok {
			return ErrNotFound
		}
		delete(s.hotels, id)
		deleteWhere(s.reservations, func(v models.Reservation) bool { return v.HotelID == id })
		deleteWhere(s.rooms, func(v models.Room) bool { return v.HotelID == id })
		deleteWhere(s.roomTypes, func(v models.RoomType) bool { return v.HotelID == id })
		deleteWhere(s.guests, func(v models.Guest) bool { return v.HotelID == id })
		deleteWhere(s.userRoles, func(v models.UserRole) bool { return v.HotelID != nil && *v.HotelID == id })
		return nil
	})
}

func (r memHotels) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.m.read(func(s *memState) error {
		n = int64(len(s.hotels))
		return nil
	})
	return n, err
}

// ------------------------------
// Room types
// ------------------------------

type memRoomTypes struct{ m *Memory }

func (r memRoomTypes) List(ctx context.Context, hotelID uuid.UUID, q filters.RoomTypeQuery) ([]models.RoomType, error) {
	var out []models.RoomType
	err := r.m.read(func(s *memState) error {
		var all []models.RoomType
		for _, rt := range s.roomTypes {
			if rt.HotelID == hotelID {
				all = append(all, rt)
			}
		}
		out = filters.ApplyRoomTypes(all, q)
		return nil
	})
	return out, err
}

func (r memRoomTypes) Get(ctx context.Context, hotelID, id uuid.UUID) (models.RoomType, error) {
	var rt models.RoomType
	err := r.m.read(func(s *memState) error {
		found, ok := s.roomTypes[id]
		if !ok || found.HotelID != hotelID {
			return ErrNotFound
		}
		rt = found
		return nil
	})
	return rt, err
}

func (r memRoomTypes) Create(ctx context.Context, rt *models.RoomType) error {
	return r.m.write(func(s *memState) error {
		if _, ok := s.hotels[rt.HotelID]; !ok {
			return ErrForeignKey
		}
		if rt.ID == uuid.Nil {
			rt.ID = uuid.New()
		}
		stamp(&rt.CreatedAt, &rt.UpdatedAt, r.m.now())
		v := *rt
		v.Hotel = nil
		s.roomTypes[rt.ID] = v
		return nil
	})
}

func (r memRoomTypes) Update(ctx context.Context, rt *models.RoomType) error {
	return r.m.write(func(s *memState) error {
		old, ok := s.roomTypes[rt.ID]
		if !ok {
			return ErrNotFound
		}
		rt.CreatedAt = old.CreatedAt
		stamp(nil, &rt.UpdatedAt, r.m.now())
		v := *rt
		v.Hotel = nil
		s.roomTypes[rt.ID] = v
		return nil
	})
}

func (r memRoomTypes) Delete(ctx context.Context, hotelID, id uuid.UUID) error {
	return r.m.write(func(s *memState) error {
		rt, ok := s.roomTypes[id]
		if !ok || rt.HotelID != hotelID {
			return ErrNotFound
		}
		for _, room := range s.rooms {
			if room.RoomTypeID == id {
				return ErrForeignKey
			}
		}
		delete(s.roomTypes, id)
		return nil
	})
}

// ------------------------------
// Rooms
// ------------------------------

type memRooms struct{ m *Memory }

func (f RoomFilter) match(r models.Room) bool {
	if f.HotelID != nil && r.HotelID != *f.HotelID {
		return false
	}
	if f.RoomTypeID != nil && r.RoomTypeID != *f.RoomTypeID {
		return false
	}
	return f.Status == "" || r.Status == f.Status
}

func (r memRooms) List(ctx context.Context, f RoomFilter) ([]models.Room, error) {
	var out []models.Room
	err := r.m.read(func(s *memState) error {
		for _, room := range s.rooms {
			if f.match(room) {
				out = append(out, s.withRoomType(room))
			}
		}
		slices.SortFunc(out, func(a, b models.Room) int {
			return cmp.Or(cmp.Compare(a.RoomNumber, b.RoomNumber), cmp.Compare(a.ID.String(), b.ID.String()))
		})
		return nil
	})
	return out, err
}

func (r memRooms) Get(ctx context.Context, hotelID, id uuid.UUID) (models.Room, error) {
	var room models.Room
	err := r.m.read(func(s *memState) error {
		found, ok := s.rooms[id]
		if !ok || found.HotelID != hotelID {
			return ErrNotFound
		}
		room = s.withRoomType(found)
		return nil
	})
	return room, err
}

// GetForUpdate relies on the transaction's exclusive lock.
func (r memRooms) GetForUpdate(ctx context.Context, hotelID, id uuid.UUID) (models.Room, error) {
	var room models.Room
	err := r.m.read(func(s *memState) error {
		found, ok := s.rooms[id]
		if !ok || found.HotelID != hotelID {
			return ErrNotFound
		}
		room = found
		return nil
	})
	return room, err
}

func (s *memState) roomNumberTaken(room models.Room) bool {
	for _, other := range s.rooms {
		if other.ID != room.ID && other.HotelID == room.HotelID && other.RoomNumber == room.RoomNumber {
			return true
		}
	}
	return false
}

func (r memRooms) Create(ctx context.Context, room *models.Room) error {
	return r.m.write(func(s *memState) error {
		if _, ok := s.hotels[room.HotelID]; !ok {
			return ErrForeignKey
		}
		if _, ok := s.roomTypes[room.RoomTypeID]; !ok {
			return ErrForeignKey
		}
		if room.ID == uuid.Nil {
			room.ID = uuid.New()
		}
		if room.Status == "" {
			room.Status = models.RoomAvailable
		}
		if room.CleaningStatus == "" {
			room.CleaningStatus = models.CleaningClean
		}
		if s.roomNumberTaken(*room) {
			return ErrDuplicate
		}
		stamp(&room.CreatedAt, &room.UpdatedAt, r.m.now())
		v := *room
		v.Hotel, v.RoomType = nil, nil
		s.rooms[room.ID] = v
		return nil
	})
}

func (r memRooms) Update(ctx context.Context, room *models.Room) error {
	return r.m.write(func(s *memState) error {
		old, ok := s.rooms[room.ID]
		if !ok {
			return ErrNotFound
		}
		if _, ok := s.roomTypes[room.RoomTypeID]; !ok {
			return ErrForeignKey
		}
		if s.roomNumberTaken(*room) {
			return ErrDuplicate
		}
		room.CreatedAt = old.CreatedAt
		stamp(nil, &room.UpdatedAt, r.m.now())
		v := *room
		v.Hotel, v.RoomType = nil, nil
		s.rooms[room.ID] = v
		return nil
	})
}

func (r memRooms) Delete(ctx context.Context, hotelID, id uuid.UUID) error {
	return r.m.write(func(s *memState) error {
		room, ok := s.rooms[id]
		if !ok || room.HotelID != hotelID {
			return ErrNotFound
		}
		for _, res := range s.reservations {
			if res.RoomID == id {
				return ErrForeignKey
			}
		}
		delete(s.rooms, id)
		return nil
	})
}

func (r memRooms) Count(ctx context.Context, f RoomFilter) (int64, error) {
	var n int64
	err := r.m.read(func(s *memState) error {
		for _, room := range s.rooms {
			if f.match(room) {
				n++
			}
		}
		return nil
	})
	return n, err
}

// ------------------------------
// Guests
// ------------------------------

type memGuests struct{ m *Memory }

func (r memGuests) List(ctx context.Context, hotelID uuid.UUID, q filters.GuestQuery) ([]models.Guest, error) {
	var out []models.Guest
	err := r.m.read(func(s *memState) error {
		var all []models.Guest
		for _, g := range s.guests {
			if g.HotelID == hotelID {
				g.Preferences = slices.Clone(g.Preferences)
				all = append(all, g)
			}
		}
		out = filters.ApplyGuests(all, q)
		return nil
	})
	return out, err
}

func (r memGuests) Get(ctx context.Context, hotelID, id uuid.UUID) (models.Guest, error) {
	var g models.Guest
	err := r.m.read(func(s *memState) error {
		found, ok := s.guests[id]
		if !ok || found.HotelID != hotelID {
			return ErrNotFound
		}
		found.Preferences = slices.Clone(found.Preferences)
		g = found
		return nil
	})
	return g, err
}

func (s *memState) emailTaken(g models.Guest) bool {
	for _, other := range s.guests {
		if other.ID != g.ID && other.HotelID == g.HotelID && other.Email == g.Email {
			return true
		}
	}
	return false
}

func (r memGuests) Create(ctx context.Context, g *models.Guest) error {
	return r.m.write(func(s *memState) error {
		if _, ok := s.hotels[g.HotelID]; !ok {
			return ErrForeignKey
		}
		if g.ID == uuid.Nil {
			g.ID = uuid.New()
		}
		if g.LoyaltyTier == "" {
			g.LoyaltyTier = models.TierStandard
		}
		if s.emailTaken(*g) {
			return ErrDuplicate
		}
		stamp(&g.CreatedAt, &g.UpdatedAt, r.m.now())
		v := *g
		v.Hotel = nil
		v.Preferences = slices.Clone(g.Preferences)
		s.guests[g.ID] = v
		return nil
	})
}

func (r memGuests) Update(ctx context.Context, g *models.Guest) error {
	return r.m.write(func(s *memState) error {
		old, ok := s.guests[g.ID]
		if !ok {
			return ErrNotFound
		}
		if s.emailTaken(*g) {
			return ErrDuplicate
		}
		g.CreatedAt = old.CreatedAt
		stamp(nil, &g.UpdatedAt, r.m.now())
		v := *g
		v.Hotel = nil
		v.Preferences = slices.Clone(g.Preferences)
		s.guests[g.ID] = v
		return nil
	})
}

func (r memGuests) Delete(ctx context.Context, hotelID, id uuid.UUID) error {
	return r.m.write(func(s *memState) error {
		g, ok := s.guests[id]
		if !ok || g.HotelID != hotelID {
			return ErrNotFound
		}
		for _, res := range s.reservations {
			if res.GuestID == id {
				return ErrForeignKey
			}
		}
		delete(s.guests, id)
		return nil
	})
}

// ------------------------------
// Reservations
// ------------------------------

type memReservations struct{ m *Memory }

func (f ReservationFilter) match(r models.Reservation) bool {
	switch {
	case f.HotelID != nil && r.HotelID != *f.HotelID:
		return false
	case f.GuestID != nil && r.GuestID != *f.GuestID:
		return false
	case f.RoomID != nil && r.RoomID != *f.RoomID:
		return false
	case f.CheckInDate != nil && !day(r.CheckInDate).Equal(day(*f.CheckInDate)):
		return false
	case f.CheckOutDate != nil && !day(r.CheckOutDate).Equal(day(*f.CheckOutDate)):
		return false
	case len(f.StayStatuses) > 0 && !slices.Contains(f.StayStatuses, r.StayStatus):
		return false
	case slices.Contains(f.ExcludeStays, r.StayStatus):
		return false
	case f.PaymentStatus != "" && r.PaymentStatus != f.PaymentStatus:
		return false
	}
	return true
}

func (r memReservations) List(ctx context.Context, hotelID uuid.UUID, q filters.ReservationQuery) ([]models.Reservation, error) {
	var out []models.Reservation
	err := r.m.read(func(s *memState) error {
		var all []models.Reservation
		for _, res := range s.reservations {
			if res.HotelID == hotelID {
				all = append(all, s.withParties(res))
			}
		}
		out = filters.ApplyReservations(all, q)
		return nil
	})
	return out, err
}

func (r memReservations) Find(ctx context.Context, f ReservationFilter) ([]models.Reservation, error) {
	var out []models.Reservation
	err := r.m.read(func(s *memState) error {
		for _, res := range s.reservations {
			if f.match(res) {
				out = append(out, s.withParties(res))
			}
		}
		filters.SortReservations(out, filters.ReservationCheckInAsc)
		return nil
	})
	return out, err
}

func (r memReservations) Get(ctx context.Context, hotelID, id uuid.UUID) (models.Reservation, error) {
	var res models.Reservation
	err := r.m.read(func(s *memState) error {
		found, ok := s.reservations[id]
		if !ok || found.HotelID != hotelID {
			return ErrNotFound
		}
		res = s.withParties(found)
		return nil
	})
	return res, err
}

// GetForUpdate relies on the transaction's exclusive lock.
func (r memReservations) GetForUpdate(ctx context.Context, hotelID, id uuid.UUID) (models.Reservation, error) {
	var res models.Reservation
	err := r.m.read(func(s *memState) error {
		found, ok := s.reservations[id]
		if !ok || found.HotelID != hotelID {
			return ErrNotFound
		}
		found.AccompanyingGuests = slices.Clone(found.AccompanyingGuests)
		res = found
		return nil
	})
	return res, err
}

func (s *memState) checkReservationRefs(res models.Reservation) error {
	if _, ok := s.hotels[res.HotelID]; !ok {
		return ErrForeignKey
	}
	if _, ok := s.guests[res.GuestID]; !ok {
		return ErrForeignKey
	}
	if _, ok := s.rooms[res.RoomID]; !ok {
		return ErrForeignKey
	}
	return nil
}

func storedReservation(res models.Reservation) models.Reservation {
	res.Hotel, res.Guest, res.Room = nil, nil, nil
	res.AccompanyingGuests = slices.Clone(res.AccompanyingGuests)
	return res
}

func (r memReservations) Create(ctx context.Context, res *models.Reservation) error {
	return r.m.write(func(s *memState) error {
		if err := s.checkReservationRefs(*res); err != nil {
			return err
		}
		if res.ID == uuid.Nil {
			res.ID = uuid.New()
		}
		if res.PaymentStatus == "" {
			res.PaymentStatus = models.PaymentPending
		}
		if res.StayStatus == "" {
			res.StayStatus = models.StayNotArrived
		}
		stamp(&res.CreatedAt, &res.UpdatedAt, r.m.now())
		s.reservations[res.ID] = storedReservation(*res)
		return nil
	})
}

func (r memReservations) Update(ctx context.Context, res *models.Reservation) error {
	return r.m.write(func(s *memState) error {
		old, ok := s.reservations[res.ID]
		if !ok {
			return ErrNotFound
		}
		if err := s.checkReservationRefs(*res); err != nil {
			return err
		}
		res.CreatedAt = old.CreatedAt
		stamp(nil, &res.UpdatedAt, r.m.now())
		s.reservations[res.ID] = storedReservation(*res)
		return nil
	})
}

func (r memReservations) Delete(ctx context.Context, hotelID, id uuid.UUID) error {
	return r.m.write(func(s *memState) error {
		res, ok := s.reservations[id]
		if !ok || res.HotelID != hotelID {
			return ErrNotFound
		}
		delete(s.reservations, id)
		return nil
	})
}

func (r memReservations) Count(ctx context.Context, f ReservationFilter) (int64, error) {
	var n int64
	err := r.m.read(func(s *memState) error {
		for _, res := range s.reservations {
			if f.match(res) {
				n++
			}
		}
		return nil
	})
	return n, err
}

func (r memReservations) SumTotal(ctx context.Context, f ReservationFilter) (float64, error) {
	var total float64
	err := r.m.read(func(s *memState) error {
		for _, res := range s.reservations {
			if f.match(res) {
				total += res.TotalPrice
			}
		}
		return nil
	})
	return total, err
}

func (r memReservations) CountOverlapping(ctx context.Context, roomID uuid.UUID, checkIn, checkOut time.Time, excludeID uuid.UUID) (int64, error) {
	var n int64
	in, out := day(checkIn), day(checkOut)
	err := r.m.read(func(s *memState) error {
		for _, res := range s.reservations {
			if res.RoomID != roomID || res.ID == excludeID || !slices.Contains(ActiveStays, res.StayStatus) {
				continue
			}
			if day(res.CheckInDate).Before(out) && day(res.CheckOutDate).After(in) {
				n++
			}
		}
		return nil
	})
	return n, err
}

// ------------------------------
// Access
// ------------------------------

type memAccess struct{ m *Memory }

func (r memAccess) EnsureProfile(ctx context.Context, p models.Profile) (models.Profile, error) {
	var stored models.Profile
	err := r.m.write(func(s *memState) error {
		if existing, ok := s.profiles[p.ID]; ok {
			stored = existing
			return nil
		}
		stamp(&p.CreatedAt, &p.UpdatedAt, r.m.now())
		s.profiles[p.ID] = p
		stored = p
		return nil
	})
	return stored, err
}

func (r memAccess) GetProfile(ctx context.Context, id uuid.UUID) (models.Profile, error) {
	var p models.Profile
	err := r.m.read(func(s *memState) error {
		found, ok := s.profiles[id]
		if !ok {
			return ErrNotFound
		}
		p = found
		return nil
	})
	return p, err
}

func (r memAccess) ProfileByEmail(ctx context.Context, email string) (models.Profile, error) {
	var p models.Profile
	err := r.m.read(func(s *memState) error {
		for _, candidate := range s.profiles {
			if strings.EqualFold(candidate.Email, email) {
				p = candidate
				return nil
			}
		}
		return ErrNotFound
	})
	return p, err
}

func (r memAccess) Roles(ctx context.Context) ([]models.Role, error) {
	var out []models.Role
	err := r.m.read(func(s *memState) error {
		out = slices.Collect(maps.Values(s.roles))
		slices.SortFunc(out, func(a, b models.Role) int { return cmp.Compare(a.ID, b.ID) })
		return nil
	})
	return out, err
}

func (r memAccess) RoleByName(ctx context.Context, name models.RoleName) (models.Role, error) {
	var role models.Role
	err := r.m.read(func(s *memState) error {
		for _, candidate := range s.roles {
			if candidate.Name == name {
				role = candidate
				return nil
			}
		}
		return ErrNotFound
	})
	return role, err
}

func (r memAccess) SeedRoles(ctx context.Context) error {
	return r.m.write(func(s *memState) error {
		for _, name := range models.AllRoles {
			exists := false
			for _, role := range s.roles {
				if role.Name == name {
					exists = true
					break
				}
			}
			if exists {
				continue
			}
			id := s.nextRoleID
			s.nextRoleID++
			s.roles[id] = models.Role{ID: id, Name: name, Description: roleDescriptions[name], CreatedAt: r.m.now()}
		}
		return nil
	})
}

func (r memAccess) Assignments(ctx context.Context, f AssignmentFilter) ([]models.UserRole, error) {
	var out []models.UserRole
	err := r.m.read(func(s *memState) error {
		for _, ur := range s.userRoles {
			if f.UserID != nil && ur.UserID != *f.UserID {
				continue
			}
			if f.HotelID != nil && (ur.HotelID == nil || *ur.HotelID != *f.HotelID) {
				continue
			}
			out = append(out, s.withAssignmentRefs(ur))
		}
		slices.SortFunc(out, func(a, b models.UserRole) int {
			return cmp.Or(a.CreatedAt.Compare(b.CreatedAt), cmp.Compare(a.ID.String(), b.ID.String()))
		})
		return nil
	})
	return out, err
}

func (r memAccess) GetAssignment(ctx context.Context, id uuid.UUID) (models.UserRole, error) {
	var ur models.UserRole
	err := r.m.read(func(s *memState) error {
		found, ok := s.userRoles[id]
		if !ok {
			return ErrNotFound
		}
		ur = s.withAssignmentRefs(found)
		return nil
	})
	return ur, err
}

func (r memAccess) Assign(ctx context.Context, ur *models.UserRole) error {
	return r.m.write(func(s *memState) error {
		if _, ok := s.profiles[ur.UserID]; !ok {
			return ErrForeignKey
		}
		if _, ok := s.roles[ur.RoleID]; !ok {
			return ErrForeignKey
		}
		if ur.HotelID != nil {
			if _, ok := s.hotels[*ur.HotelID]; !ok {
				return ErrForeignKey
			}
		}
		if ur.ID == uuid.Nil {
			ur.ID = uuid.New()
		}
		stamp(&ur.CreatedAt, nil, r.m.now())
		v := *ur
		v.Role, v.Profile, v.Hotel = models.Role{}, nil, nil
		s.userRoles[ur.ID] = v
		return nil
	})
}

func (r memAccess) Revoke(ctx context.Context, id uuid.UUID) error {
	return r.m.write(func(s *memState) error {
		if _, ok := s.userRoles[id]; !ok {
			return ErrNotFound
		}
		delete(s.userRoles, id)
		return nil
	})
}

func (r memAccess) CountAssignments(ctx context.Context) (int64, error) {
	var n int64
	err := r.m.read(func(s *memState) error {
		n = int64(len(s.userRoles))
		return nil
	})
	return n, err
}
