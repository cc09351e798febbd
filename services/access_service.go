package services

import (
	"context"
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"hotel-pms/auth"
	"hotel-pms/models"
	"hotel-pms/stores"
)

// SessionInfo is what the client needs after sign-in.
type SessionInfo struct {
	Profile       models.Profile    `json:"profile"`
	Assignments   []models.UserRole `json:"assignments"`
	Scope         *auth.Scope       `json:"scope"`
	HomeRoute     string            `json:"home_route"`
	Impersonating *auth.Assignment  `json:"impersonating,omitempty"`
}

type AssignInput struct {
	UserID  uuid.UUID       `json:"user_id"`
	Email   string          `json:"email"`
	Role    models.RoleName `json:"role"`
	HotelID *uuid.UUID      `json:"hotel_id"`
}

type ImpersonationInput struct {
	HotelID uuid.UUID       `json:"hotel_id"`
	Role    models.RoleName `json:"role"`
}

// AccessService owns profiles, role assignments and impersonation.
type AccessService struct {
	Store        stores.Store
	Views        Revalidator
	Impersonator *auth.Impersonator

	// BootstrapAdmins are emails granted super_admin on first sign-in.
	BootstrapAdmins []string
}

func NewAccessService(store stores.Store, views Revalidator, imp *auth.Impersonator) *AccessService {
	return &AccessService{Store: store, Views: views, Impersonator: imp}
}

// EnsureProfile creates the profile row for a first-time user.
func (s *AccessService) EnsureProfile(ctx context.Context, claims auth.SessionClaims) (models.Profile, error) {
	id, err := claims.UserID()
	if err != nil {
		return models.Profile{}, err
	}
	profile, err := s.Store.Access().EnsureProfile(ctx, models.Profile{
		ID:       id,
		Email:    strings.ToLower(strings.TrimSpace(claims.Email)),
		FullName: strings.TrimSpace(claims.UserMetadata.FullName),
	})
	if err != nil {
		return models.Profile{}, err
	}
	if err := s.bootstrap(ctx, profile); err != nil {
		return models.Profile{}, err
	}
	return profile, nil
}

// bootstrap grants super_admin to configured emails that do not hold it yet.
func (s *AccessService) bootstrap(ctx context.Context, profile models.Profile) error {
	if profile.Email == "" || !slices.ContainsFunc(s.BootstrapAdmins, func(e string) bool {
		return strings.EqualFold(strings.TrimSpace(e), profile.Email)
	}) {
		return nil
	}
	held, err := s.Assignments(ctx, profile.ID)
	if err != nil || auth.HasRole(held, models.RoleSuperAdmin) {
		return err
	}
	_, err = s.Assign(ctx, AssignInput{UserID: profile.ID, Role: models.RoleSuperAdmin})
	return err
}

func (s *AccessService) Assignments(ctx context.Context, userID uuid.UUID) ([]auth.Assignment, error) {
	rows, err := s.Store.Access().Assignments(ctx, stores.AssignmentFilter{UserID: &userID})
	if err != nil {
		return nil, err
	}
	return auth.AssignmentsFrom(rows), nil
}

// Session describes the signed-in user. imp is the verified impersonation
// target, if any; hotel narrows the scope like the X-Hotel-ID header does.
func (s *AccessService) Session(ctx context.Context, profile models.Profile, imp *auth.Assignment, hotel *uuid.UUID) (SessionInfo, error) {
	rows, err := s.Store.Access().Assignments(ctx, stores.AssignmentFilter{UserID: &profile.ID})
	if err != nil {
		return SessionInfo{}, err
	}
	info := SessionInfo{Profile: profile, Assignments: rows, HomeRoute: "/auth/login"}
	if rows == nil {
		info.Assignments = []models.UserRole{}
	}

	if imp != nil {
		scope := auth.Scope{UserID: profile.ID, Role: imp.Role, HotelID: imp.HotelID, Impersonating: true}
		info.Scope = &scope
		info.Impersonating = imp
		info.HomeRoute = imp.Role.HomeRoute()
		return info, nil
	}

	scope, err := auth.ResolveScope(profile.ID, auth.AssignmentsFrom(rows), models.AllRoles, hotel)
	if errors.Is(err, auth.ErrForbidden) {
		return info, nil
	}
	if err != nil {
		return SessionInfo{}, err
	}
	info.Scope = &scope
	info.HomeRoute = scope.HomeRoute()
	return info, nil
}

// StartImpersonation signs a token letting a super admin act as role in a
// hotel.
func (s *AccessService) StartImpersonation(ctx context.Context, actor uuid.UUID, in ImpersonationInput) (string, time.Time, error) {
	fe := FieldErrors{}
	if in.HotelID == uuid.Nil {
		fe.Add("hotel_id", "is required")
	}
	if !in.Role.Valid() || !in.Role.HotelScoped() {
		fe.Add("role", "must be hotel_manager, hotel_admin or front_office")
	}
	if err := fe.Err(); err != nil {
		return "", time.Time{}, err
	}

	held, err := s.Assignments(ctx, actor)
	if err != nil {
		return "", time.Time{}, err
	}
	if !auth.HasRole(held, models.RoleSuperAdmin) {
		return "", time.Time{}, auth.ErrForbidden
	}
	if _, err := s.Store.Hotels().Get(ctx, in.HotelID); err != nil {
		return "", time.Time{}, storeErr(err, "hotel")
	}
	hotelID := in.HotelID
	return s.Impersonator.Issue(actor, auth.Assignment{Role: in.Role, HotelID: &hotelID})
}

// VerifyImpersonation returns the target of a presented token, or nil when
// the token is invalid, belongs to someone else, or the holder is no longer
// a super admin.
func (s *AccessService) VerifyImpersonation(actor uuid.UUID, held []auth.Assignment, raw string) *auth.Assignment {
	if raw == "" || !auth.HasRole(held, models.RoleSuperAdmin) {
		return nil
	}
	claims, err := s.Impersonator.Parse(raw, actor)
	if err != nil {
		return nil
	}
	target, err := claims.Target()
	if err != nil {
		return nil
	}
	return &target
}

// ------------------------------
// Staff
// ------------------------------

// ListStaff lists assignments for one hotel, or all of them for uuid.Nil.
func (s *AccessService) ListStaff(ctx context.Context, hotelID uuid.UUID) ([]models.UserRole, error) {
	f := stores.AssignmentFilter{}
	if hotelID != uuid.Nil {
		f.HotelID = &hotelID
	}
	return s.Store.Access().Assignments(ctx, f)
}

func (s *AccessService) Roles(ctx context.Context) ([]models.Role, error) {
	return s.Store.Access().Roles(ctx)
}

func (s *AccessService) Assign(ctx context.Context, in AssignInput) (models.UserRole, error) {
	fe := FieldErrors{}
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if in.UserID == uuid.Nil && in.Email == "" {
		fe.Add("user_id", "user_id or email is required")
	}
	if !in.Role.Valid() {
		fe.Add("role", "unknown role")
	} else if in.Role.HotelScoped() && (in.HotelID == nil || *in.HotelID == uuid.Nil) {
		fe.Add("hotel_id", "is required for "+string(in.Role))
	} else if !in.Role.HotelScoped() && in.HotelID != nil {
		fe.Add("hotel_id", "must be empty for super_admin")
	}
	if err := fe.Err(); err != nil {
		return models.UserRole{}, err
	}

	var created models.UserRole
	err := s.Store.Transaction(ctx, func(tx stores.Store) error {
		profile, err := s.findProfile(ctx, tx, in)
		if err != nil {
			return err
		}
		if in.HotelID != nil {
			if _, err := tx.Hotels().Get(ctx, *in.HotelID); err != nil {
				return storeErr(err, "hotel")
			}
		}
		role, err := tx.Access().RoleByName(ctx, in.Role)
		if err != nil {
			return storeErr(err, "role")
		}

		existing, err := tx.Access().Assignments(ctx, stores.AssignmentFilter{UserID: &profile.ID})
		if err != nil {
			return err
		}
		for _, a := range existing {
			if a.RoleID == role.ID && sameHotel(a.HotelID, in.HotelID) {
				return conflict("User already holds this role")
			}
		}

		created = models.UserRole{UserID: profile.ID, RoleID: role.ID, HotelID: in.HotelID}
		return storeErr(tx.Access().Assign(ctx, &created), "role assignment")
	})
	if err != nil {
		return models.UserRole{}, err
	}
	s.invalidateStaff(in.HotelID)
	return s.Store.Access().GetAssignment(ctx, created.ID)
}

func (s *AccessService) findProfile(ctx context.Context, tx stores.Store, in AssignInput) (models.Profile, error) {
	var (
		p   models.Profile
		err error
	)
	if in.UserID != uuid.Nil {
		p, err = tx.Access().GetProfile(ctx, in.UserID)
	} else {
		p, err = tx.Access().ProfileByEmail(ctx, in.Email)
	}
	if errors.Is(err, stores.ErrNotFound) {
		fe := FieldErrors{}
		fe.Add("user_id", "user has not signed in yet")
		return p, fe.Err()
	}
	return p, err
}

// Revoke removes an assignment. The last super admin cannot be revoked.
func (s *AccessService) Revoke(ctx context.Context, id uuid.UUID) error {
	var hotelID *uuid.UUID
	err := s.Store.Transaction(ctx, func(tx stores.Store) error {
		ur, err := tx.Access().GetAssignment(ctx, id)
		if err != nil {
			return storeErr(err, "role assignment")
		}
		hotelID = ur.HotelID
		if ur.Role.Name == models.RoleSuperAdmin {
			all, err := tx.Access().Assignments(ctx, stores.AssignmentFilter{})
			if err != nil {
				return err
			}
			admins := 0
			for _, a := range all {
				if a.Role.Name == models.RoleSuperAdmin {
					admins++
				}
			}
			if admins <= 1 {
				return precondition("Cannot revoke the last super admin")
			}
		}
		return storeErr(tx.Access().Revoke(ctx, id), "role assignment")
	})
	if err != nil {
		return err
	}
	s.invalidateStaff(hotelID)
	return nil
}

func (s *AccessService) invalidateStaff(hotelID *uuid.UUID) {
	s.Views.Invalidate(uuid.Nil, ViewStaff, ViewDashboard)
	if hotelID != nil {
		s.Views.Invalidate(*hotelID, ViewStaff)
	}
}

func sameHotel(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
