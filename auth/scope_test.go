package auth

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel-pms/models"
)

func TestResolveScope(t *testing.T) {
	user := uuid.New()
	hotelA, hotelB := uuid.New(), uuid.New()

	frontOfficeA := Assignment{Role: models.RoleFrontOffice, HotelID: &hotelA}
	managerB := Assignment{Role: models.RoleHotelManager, HotelID: &hotelB}
	super := Assignment{Role: models.RoleSuperAdmin}

	hotelScoped := []models.RoleName{models.RoleFrontOffice, models.RoleHotelAdmin, models.RoleHotelManager, models.RoleSuperAdmin}

	tests := []struct {
		name      string
		held      []Assignment
		allowed   []models.RoleName
		hotel     *uuid.UUID
		wantRole  models.RoleName
		wantHotel *uuid.UUID
		wantErr   error
	}{
		{
			name:      "strongest allowed role wins",
			held:      []Assignment{frontOfficeA, managerB},
			allowed:   hotelScoped,
			wantRole:  models.RoleHotelManager,
			wantHotel: &hotelB,
		},
		{
			name:      "requested hotel narrows the choice",
			held:      []Assignment{frontOfficeA, managerB},
			allowed:   hotelScoped,
			hotel:     &hotelA,
			wantRole:  models.RoleFrontOffice,
			wantHotel: &hotelA,
		},
		{
			name:    "role outside the group is refused",
			held:    []Assignment{frontOfficeA},
			allowed: []models.RoleName{models.RoleHotelAdmin, models.RoleHotelManager},
			wantErr: ErrForbidden,
		},
		{
			name:    "hotel the user does not work at is refused",
			held:    []Assignment{frontOfficeA},
			allowed: hotelScoped,
			hotel:   &hotelB,
			wantErr: ErrForbidden,
		},
		{
			name:      "super admin may address any hotel",
			held:      []Assignment{super},
			allowed:   hotelScoped,
			hotel:     &hotelB,
			wantRole:  models.RoleSuperAdmin,
			wantHotel: &hotelB,
		},
		{
			name:     "super admin without a hotel is platform wide",
			held:     []Assignment{super, frontOfficeA},
			allowed:  []models.RoleName{models.RoleSuperAdmin},
			wantRole: models.RoleSuperAdmin,
		},
		{
			name:    "no assignments",
			allowed: hotelScoped,
			wantErr: ErrForbidden,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scope, err := ResolveScope(user, tt.held, tt.allowed, tt.hotel)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, user, scope.UserID)
			assert.Equal(t, tt.wantRole, scope.Role)
			assert.Equal(t, tt.wantHotel, scope.HotelID)
			assert.False(t, scope.Impersonating)
		})
	}
}

func TestHomeRoutes(t *testing.T) {
	hotel := uuid.New()
	scope, err := ResolveScope(uuid.New(), []Assignment{
		{Role: models.RoleFrontOffice, HotelID: &hotel},
		{Role: models.RoleHotelAdmin, HotelID: &hotel},
	}, models.AllRoles, nil)
	require.NoError(t, err)
	assert.Equal(t, "/admin", scope.HomeRoute())
	assert.Equal(t, hotel, scope.Hotel())

	assert.Equal(t, "/super-admin", models.RoleSuperAdmin.HomeRoute())
	assert.Equal(t, "/manager", models.RoleHotelManager.HomeRoute())
	assert.Equal(t, "/fo", models.RoleFrontOffice.HomeRoute())
	assert.Equal(t, "/auth/login", models.RoleName("guest").HomeRoute())
	assert.Equal(t, uuid.Nil, Scope{}.Hotel())
}
