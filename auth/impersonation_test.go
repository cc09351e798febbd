package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel-pms/models"
)

func TestImpersonationRoundTrip(t *testing.T) {
	imp := NewImpersonator(testSecret, time.Hour)
	actor, hotel := uuid.New(), uuid.New()

	raw, expires, err := imp.Issue(actor, Assignment{Role: models.RoleFrontOffice, HotelID: &hotel})
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expires, 5*time.Second)

	claims, err := imp.Parse(raw, actor)
	require.NoError(t, err)

	target, err := claims.Target()
	require.NoError(t, err)
	assert.Equal(t, models.RoleFrontOffice, target.Role)
	require.NotNil(t, target.HotelID)
	assert.Equal(t, hotel, *target.HotelID)
}

func TestImpersonationRejectsOtherActor(t *testing.T) {
	imp := NewImpersonator(testSecret, time.Hour)
	hotel := uuid.New()

	raw, _, err := imp.Issue(uuid.New(), Assignment{Role: models.RoleHotelAdmin, HotelID: &hotel})
	require.NoError(t, err)

	_, err = imp.Parse(raw, uuid.New())
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestImpersonationExpires(t *testing.T) {
	imp := NewImpersonator(testSecret, time.Hour)
	actor, hotel := uuid.New(), uuid.New()

	raw, _, err := imp.Issue(actor, Assignment{Role: models.RoleHotelManager, HotelID: &hotel})
	require.NoError(t, err)

	imp.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = imp.Parse(raw, actor)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestImpersonationRejectsSessionToken(t *testing.T) {
	actor := uuid.New()
	session, err := SignSession(testSecret, actor, "a@b.test", "", time.Hour)
	require.NoError(t, err)

	_, err = NewImpersonator(testSecret, time.Hour).Parse(session, actor)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestImpersonationNeedsHotelRole(t *testing.T) {
	imp := NewImpersonator(testSecret, time.Hour)
	hotel := uuid.New()

	_, _, err := imp.Issue(uuid.New(), Assignment{Role: models.RoleSuperAdmin, HotelID: &hotel})
	assert.ErrorIs(t, err, ErrForbidden)

	_, _, err = imp.Issue(uuid.New(), Assignment{Role: models.RoleFrontOffice})
	assert.ErrorIs(t, err, ErrForbidden)
}
