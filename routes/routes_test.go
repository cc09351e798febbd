package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"hotel-pms/auth"
	"hotel-pms/controllers"
	"hotel-pms/middleware"
	"hotel-pms/models"
	"hotel-pms/services"
	"hotel-pms/stores"
)

const sessionSecret = "session-secret-session-secret-0123"

type harness struct {
	t      *testing.T
	router *gin.Engine
	store  *stores.Memory
	access *services.AccessService

	hotel       models.Hotel
	room        models.Room
	guest       models.Guest
	reservation models.Reservation
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctx := context.Background()

	store := stores.NewMemory()
	require.NoError(t, store.Access().SeedRoles(ctx))

	clock := services.Clock{Now: func() time.Time { return time.Date(2025, 6, 10, 9, 30, 0, 0, time.UTC) }, Location: time.UTC}
	views := services.NewViewVersions()
	access := services.NewAccessService(store, views, auth.NewImpersonator("impersonation-secret-0123456789", time.Hour))
	hotels := services.NewHotelService(store, views)
	roomTypes := services.NewRoomTypeService(store, views)
	rooms := services.NewRoomService(store, views)
	guests := services.NewGuestService(store, views)
	reservations := services.NewReservationService(store, views, clock)
	stays := services.NewStayService(store, views, clock)

	h := &harness{t: t, store: store, access: access}
	h.router = SetupRouter(Controllers{
		Auth:         controllers.NewAuthController(access, false),
		Hotels:       controllers.NewHotelController(hotels, views),
		RoomTypes:    controllers.NewRoomTypeController(roomTypes, views),
		Rooms:        controllers.NewRoomController(rooms, views),
		Guests:       controllers.NewGuestController(guests, views),
		Reservations: controllers.NewReservationController(reservations, views),
		FrontOffice:  controllers.NewFrontOfficeController(stays, views, clock),
		Dashboard:    controllers.NewDashboardController(services.NewDashboardService(store), clock),
		Staff:        controllers.NewStaffController(access, views),
	}, Options{
		Logger:      zaptest.NewLogger(t),
		CorsOrigins: "http://localhost:3000",
		Session: middleware.SessionConfig{
			Verifier:   auth.NewSessionVerifier(sessionSecret),
			Access:     access,
			CookieName: "sb-access-token",
		},
		Store: store,
	})

	var err error
	h.hotel, err = hotels.Create(ctx, services.HotelInput{Name: "Riverside"})
	require.NoError(t, err)
	rt, err := roomTypes.Create(ctx, h.hotel.ID, services.RoomTypeInput{Name: "Deluxe", PricePerNight: 1000, Capacity: 2})
	require.NoError(t, err)
	h.room, err = rooms.Create(ctx, h.hotel.ID, services.RoomInput{RoomTypeID: rt.ID, RoomNumber: "101"})
	require.NoError(t, err)
	h.guest, err = guests.Create(ctx, h.hotel.ID, services.GuestInput{FullName: "Alice Lee", Email: "alice@example.com"})
	require.NoError(t, err)
	h.reservation, err = reservations.Create(ctx, h.hotel.ID, services.ReservationInput{
		GuestID:      h.guest.ID,
		RoomID:       h.room.ID,
		CheckInDate:  "2025-06-10",
		CheckOutDate: "2025-06-12",
		Adults:       1,
	})
	require.NoError(t, err)
	return h
}

// user signs in a new account holding role, scoped to the hotel unless the
// role is super_admin, and returns its bearer token.
func (h *harness) user(email string, role models.RoleName) string {
	h.t.Helper()
	id := uuid.New()
	token, err := auth.SignSession(sessionSecret, id, email, "Staff", time.Hour)
	require.NoError(h.t, err)
	claims, err := auth.NewSessionVerifier(sessionSecret).Verify(token)
	require.NoError(h.t, err)
	_, err = h.access.EnsureProfile(context.Background(), claims)
	require.NoError(h.t, err)

	in := services.AssignInput{UserID: id, Role: role}
	if role != models.RoleSuperAdmin {
		in.HotelID = &h.hotel.ID
	}
	_, err = h.access.Assign(context.Background(), in)
	require.NoError(h.t, err)
	return token
}

type call struct {
	method, path, token string
	body                any
	header              map[string]string
	cookies             []*http.Cookie
}

func (h *harness) do(c call) *httptest.ResponseRecorder {
	h.t.Helper()
	var body bytes.Buffer
	if c.body != nil {
		require.NoError(h.t, json.NewEncoder(&body).Encode(c.body))
	}
	req := httptest.NewRequest(c.method, c.path, &body)
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	for k, v := range c.header {
		req.Header.Set(k, v)
	}
	for _, ck := range c.cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	h.router.ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return env
}

type failingPinger struct{}

func (failingPinger) Ping(context.Context) error { return errors.New("down") }

func TestHealth(t *testing.T) {
	h := newHarness(t)
	rec := h.do(call{method: http.MethodGet, path: "/health"})
	assert.Equal(t, http.StatusOK, rec.Code)

	gin.SetMode(gin.TestMode)
	down := SetupRouter(Controllers{}, Options{Logger: zaptest.NewLogger(t), Store: failingPinger{}})
	rec = httptest.NewRecorder()
	down.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestAccessControl(t *testing.T) {
	h := newHarness(t)
	desk := h.user("desk@pms.test", models.RoleFrontOffice)
	root := h.user("root@pms.test", models.RoleSuperAdmin)
	hotelHeader := map[string]string{middleware.HotelHeader: h.hotel.ID.String()}

	tests := []struct {
		name string
		call call
		want int
	}{
		{"no token", call{method: http.MethodGet, path: "/api/fo/arrivals"}, http.StatusUnauthorized},
		{"bad token", call{method: http.MethodGet, path: "/api/fo/arrivals", token: "nope"}, http.StatusUnauthorized},
		{"front office on admin", call{method: http.MethodGet, path: "/api/admin/rooms", token: desk}, http.StatusForbidden},
		{"front office on super admin", call{method: http.MethodGet, path: "/api/super-admin/hotels", token: desk}, http.StatusForbidden},
		{"front office on own area", call{method: http.MethodGet, path: "/api/fo/arrivals", token: desk}, http.StatusOK},
		{"front office naming another hotel", call{method: http.MethodGet, path: "/api/fo/arrivals", token: desk, header: map[string]string{middleware.HotelHeader: uuid.NewString()}}, http.StatusForbidden},
		{"super admin without hotel", call{method: http.MethodGet, path: "/api/fo/arrivals", token: root}, http.StatusBadRequest},
		{"super admin with malformed hotel", call{method: http.MethodGet, path: "/api/fo/arrivals", token: root, header: map[string]string{middleware.HotelHeader: "x"}}, http.StatusBadRequest},
		{"super admin with hotel", call{method: http.MethodGet, path: "/api/admin/rooms", token: root, header: hotelHeader}, http.StatusOK},
		{"super admin platform dashboard", call{method: http.MethodGet, path: "/api/super-admin/dashboard", token: root}, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := h.do(tt.call)
			assert.Equal(t, tt.want, rec.Code, rec.Body.String())
		})
	}
}

func TestFrontOfficeFlow(t *testing.T) {
	h := newHarness(t)
	desk := h.user("desk@pms.test", models.RoleFrontOffice)

	rec := h.do(call{method: http.MethodGet, path: "/api/fo/arrivals", token: desk})
	require.Equal(t, http.StatusOK, rec.Code)
	var arrivals []models.Reservation
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &arrivals))
	require.Len(t, arrivals, 1)
	assert.Equal(t, h.reservation.ID, arrivals[0].ID)

	etag := rec.Header().Get("ETag")
	require.NotEmpty(t, etag)
	rec = h.do(call{method: http.MethodGet, path: "/api/fo/arrivals", token: desk, header: map[string]string{"If-None-Match": etag}})
	assert.Equal(t, http.StatusNotModified, rec.Code)

	rec = h.do(call{method: http.MethodPost, path: "/api/fo/check-in", token: desk, body: controllers.StayPayload{ReservationID: h.reservation.ID, RoomID: h.room.ID}})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var checkedIn models.Reservation
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &checkedIn))
	assert.Equal(t, models.StayInHouse, checkedIn.StayStatus)
	assert.Equal(t, models.PaymentPaid, checkedIn.PaymentStatus)

	// The mutation invalidates the cached arrivals.
	rec = h.do(call{method: http.MethodGet, path: "/api/fo/arrivals", token: desk, header: map[string]string{"If-None-Match": etag}})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEqual(t, etag, rec.Header().Get("ETag"))
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &arrivals))
	assert.Empty(t, arrivals)

	// Checking in twice is a conflict.
	rec = h.do(call{method: http.MethodPost, path: "/api/fo/check-in", token: desk, body: controllers.StayPayload{ReservationID: h.reservation.ID, RoomID: h.room.ID}})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = h.do(call{method: http.MethodGet, path: "/api/fo/in-house", token: desk})
	require.Equal(t, http.StatusOK, rec.Code)
	var inHouse []models.Reservation
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &inHouse))
	assert.Len(t, inHouse, 1)

	rec = h.do(call{method: http.MethodGet, path: "/api/fo/departures?date=2025-06-12", token: desk})
	require.Equal(t, http.StatusOK, rec.Code)
	var departures []models.Reservation
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &departures))
	assert.Len(t, departures, 1)

	rec = h.do(call{method: http.MethodPost, path: "/api/fo/check-out", token: desk, body: controllers.StayPayload{ReservationID: h.reservation.ID, RoomID: h.room.ID}})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = h.do(call{method: http.MethodGet, path: "/api/fo/departures?date=12-06-2025", token: desk})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = h.do(call{method: http.MethodPost, path: "/api/fo/check-in", token: desk, body: map[string]string{"room_id": h.room.ID.String()}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGuardedDeleteOverHTTP(t *testing.T) {
	h := newHarness(t)
	admin := h.user("admin@pms.test", models.RoleHotelAdmin)

	rec := h.do(call{method: http.MethodDelete, path: "/api/admin/guests/" + h.guest.ID.String(), token: admin})
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "Cannot delete guest with 1 existing reservation(s)", decode(t, rec).Error)

	rec = h.do(call{method: http.MethodDelete, path: "/api/admin/guests/not-a-uuid", token: admin})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestImpersonationFlow(t *testing.T) {
	h := newHarness(t)
	root := h.user("root@pms.test", models.RoleSuperAdmin)
	desk := h.user("desk@pms.test", models.RoleFrontOffice)
	start := map[string]string{"hotel_id": h.hotel.ID.String(), "role": string(models.RoleFrontOffice)}

	rec := h.do(call{method: http.MethodPost, path: "/api/auth/impersonation", token: desk, body: start})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = h.do(call{method: http.MethodPost, path: "/api/auth/impersonation", token: root, body: start})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var cookie *http.Cookie
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == middleware.ImpersonationCookie {
			cookie = ck
		}
	}
	require.NotNil(t, cookie)
	assert.True(t, cookie.HttpOnly)

	// The cookie supplies the hotel, so no header is needed.
	rec = h.do(call{method: http.MethodGet, path: "/api/fo/in-house", token: root, cookies: []*http.Cookie{cookie}})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = h.do(call{method: http.MethodGet, path: "/api/auth/session", token: root, cookies: []*http.Cookie{cookie}})
	require.Equal(t, http.StatusOK, rec.Code)
	var info services.SessionInfo
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &info))
	require.NotNil(t, info.Scope)
	assert.True(t, info.Scope.Impersonating)
	assert.Equal(t, models.RoleFrontOffice, info.Scope.Role)
	assert.Equal(t, "/fo", info.HomeRoute)

	// Super admin routes keep the real role.
	rec = h.do(call{method: http.MethodGet, path: "/api/super-admin/hotels", token: root, cookies: []*http.Cookie{cookie}})
	assert.Equal(t, http.StatusOK, rec.Code)

	// Another user replaying the cookie gains nothing.
	rec = h.do(call{method: http.MethodGet, path: "/api/admin/rooms", token: desk, cookies: []*http.Cookie{cookie}})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = h.do(call{method: http.MethodDelete, path: "/api/auth/impersonation", token: root, cookies: []*http.Cookie{cookie}})
	require.Equal(t, http.StatusOK, rec.Code)
	var cleared bool
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == middleware.ImpersonationCookie && ck.MaxAge < 0 {
			cleared = true
		}
	}
	assert.True(t, cleared)
}

func TestParseCorsOrigins(t *testing.T) {
	assert.Equal(t, []string{"*"}, parseCorsOrigins(""))
	assert.Equal(t, []string{"*"}, parseCorsOrigins(" , "))
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, parseCorsOrigins("http://a.test, http://b.test,"))
}
