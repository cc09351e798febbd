package auth

import (
	"slices"

	"github.com/google/uuid"

	"hotel-pms/models"
)

// Assignment is one role a user holds, optionally bound to a hotel.
type Assignment struct {
	Role    models.RoleName `json:"role"`
	HotelID *uuid.UUID      `json:"hotel_id"`
}

func AssignmentsFrom(rows []models.UserRole) []Assignment {
	out := make([]Assignment, 0, len(rows))
	for _, r := range rows {
		out = append(out, Assignment{Role: r.Role.Name, HotelID: r.HotelID})
	}
	return out
}

// Scope is what a request acts as after resolution.
type Scope struct {
	UserID        uuid.UUID       `json:"user_id"`
	Role          models.RoleName `json:"role"`
	HotelID       *uuid.UUID      `json:"hotel_id"`
	Impersonating bool            `json:"impersonating"`
}

func (s Scope) HomeRoute() string { return s.Role.HomeRoute() }

// Hotel returns the scoped hotel id, or uuid.Nil for a platform-wide scope.
func (s Scope) Hotel() uuid.UUID {
	if s.HotelID == nil {
		return uuid.Nil
	}
	return *s.HotelID
}

// ResolveScope picks the strongest assignment whose role is allowed. When
// hotel is set only assignments for that hotel count; super admins may
// address any hotel.
func ResolveScope(userID uuid.UUID, assignments []Assignment, allowed []models.RoleName, hotel *uuid.UUID) (Scope, error) {
	var best *Assignment
	for i := range assignments {
		a := assignments[i]
		if !slices.Contains(allowed, a.Role) {
			continue
		}
		if hotel != nil && a.Role != models.RoleSuperAdmin && (a.HotelID == nil || *a.HotelID != *hotel) {
			continue
		}
		if best == nil || a.Role.Rank() < best.Role.Rank() {
			best = &a
		}
	}
	if best == nil {
		return Scope{}, ErrForbidden
	}

	scope := Scope{UserID: userID, Role: best.Role, HotelID: best.HotelID}
	if best.Role == models.RoleSuperAdmin {
		scope.HotelID = hotel
	}
	return scope, nil
}

func HasRole(assignments []Assignment, role models.RoleName) bool {
	return slices.ContainsFunc(assignments, func(a Assignment) bool { return a.Role == role })
}
