package models

import "time"

type RoleName string

const (
	RoleSuperAdmin   RoleName = "super_admin"
	RoleHotelManager RoleName = "hotel_manager"
	RoleHotelAdmin   RoleName = "hotel_admin"
	RoleFrontOffice  RoleName = "front_office"
)

// AllRoles is ordered by precedence, highest first.
var AllRoles = []RoleName{RoleSuperAdmin, RoleHotelManager, RoleHotelAdmin, RoleFrontOffice}

func (r RoleName) Valid() bool {
	for _, n := range AllRoles {
		if n == r {
			return true
		}
	}
	return false
}

// Rank orders roles by precedence; lower is stronger. Unknown roles rank last.
func (r RoleName) Rank() int {
	for i, n := range AllRoles {
		if n == r {
			return i
		}
	}
	return len(AllRoles)
}

// HotelScoped reports whether assignments of this role must name a hotel.
func (r RoleName) HotelScoped() bool {
	return r != RoleSuperAdmin
}

// HomeRoute is the dashboard a role lands on after sign-in.
func (r RoleName) HomeRoute() string {
	switch r {
	case RoleSuperAdmin:
		return "/super-admin"
	case RoleHotelManager:
		return "/manager"
	case RoleHotelAdmin:
		return "/admin"
	case RoleFrontOffice:
		return "/fo"
	}
	return "/auth/login"
}

type Role struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        RoleName  `gorm:"size:50;uniqueIndex;not null" json:"name"`
	Description string    `gorm:"size:255" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}
