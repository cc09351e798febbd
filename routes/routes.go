package routes

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hotel-pms/controllers"
	"hotel-pms/middleware"
	"hotel-pms/models"
	"hotel-pms/utils"
)

// Controllers bundles the handlers mounted by SetupRouter.
type Controllers struct {
	Auth         *controllers.AuthController
	Hotels       *controllers.HotelController
	RoomTypes    *controllers.RoomTypeController
	Rooms        *controllers.RoomController
	Guests       *controllers.GuestController
	Reservations *controllers.ReservationController
	FrontOffice  *controllers.FrontOfficeController
	Dashboard    *controllers.DashboardController
	Staff        *controllers.StaffController
}

type Pinger interface {
	Ping(ctx context.Context) error
}

type Options struct {
	Logger      *zap.Logger
	CorsOrigins string
	Session     middleware.SessionConfig
	Store       Pinger
}

func parseCorsOrigins(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// SetupRouter wires the role-scoped route groups.
func SetupRouter(ctl Controllers, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Logger(opts.Logger), middleware.Recovery())

	origins := parseCorsOrigins(opts.CorsOrigins)
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With", middleware.HotelHeader, "If-None-Match"},
		ExposeHeaders:    []string{"Content-Length", "ETag", middleware.RequestIDHeader},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		if err := opts.Store.Ping(c.Request.Context()); err != nil {
			utils.JSONError(c, http.StatusServiceUnavailable, "database unreachable")
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api", middleware.Session(opts.Session))

	auth := api.Group("/auth")
	{
		auth.GET("/session", ctl.Auth.GetSession)
		auth.POST("/impersonation", middleware.RequireRoles(models.RoleSuperAdmin), ctl.Auth.StartImpersonation)
		auth.DELETE("/impersonation", ctl.Auth.StopImpersonation)
	}

	super := api.Group("/super-admin", middleware.RequireRoles(models.RoleSuperAdmin))
	{
		super.GET("/dashboard", ctl.Dashboard.GetPlatformSummary)

		hotels := super.Group("/hotels")
		{
			hotels.GET("", ctl.Hotels.GetHotels)
			hotels.GET("/:id", ctl.Hotels.GetHotel)
			hotels.POST("", ctl.Hotels.CreateHotel)
			hotels.PUT("/:id", ctl.Hotels.UpdateHotel)
			hotels.DELETE("/:id", ctl.Hotels.DeleteHotel)
		}

		staff := super.Group("/staff")
		{
			staff.GET("", ctl.Staff.GetStaff)
			staff.POST("", ctl.Staff.AssignRole)
			staff.DELETE("/:id", ctl.Staff.RevokeRole)
		}
		super.GET("/roles", ctl.Staff.GetRoles)
	}

	manager := api.Group("/manager",
		middleware.RequireRoles(models.RoleHotelManager, models.RoleSuperAdmin),
		middleware.RequireHotel(),
	)
	{
		manager.GET("/dashboard", ctl.Dashboard.GetHotelSummary)
		manager.GET("/staff", ctl.Staff.GetStaff)
		manager.GET("/room-types", ctl.RoomTypes.GetRoomTypes)
		manager.GET("/rooms", ctl.Rooms.GetRooms)
		manager.GET("/guests", ctl.Guests.GetGuests)
		manager.GET("/reservations", ctl.Reservations.GetReservations)
	}

	admin := api.Group("/admin",
		middleware.RequireRoles(models.RoleHotelAdmin, models.RoleHotelManager, models.RoleSuperAdmin),
		middleware.RequireHotel(),
	)
	{
		admin.GET("/dashboard", ctl.Dashboard.GetHotelSummary)

		roomTypes := admin.Group("/room-types")
		{
			roomTypes.GET("", ctl.RoomTypes.GetRoomTypes)
			roomTypes.GET("/:id", ctl.RoomTypes.GetRoomType)
			roomTypes.POST("", ctl.RoomTypes.CreateRoomType)
			roomTypes.PUT("/:id", ctl.RoomTypes.UpdateRoomType)
			roomTypes.DELETE("/:id", ctl.RoomTypes.DeleteRoomType)
		}

		rooms := admin.Group("/rooms")
		{
			rooms.GET("", ctl.Rooms.GetRooms)
			rooms.GET("/:id", ctl.Rooms.GetRoom)
			rooms.POST("", ctl.Rooms.CreateRoom)
			rooms.PUT("/:id", ctl.Rooms.UpdateRoom)
			rooms.PATCH("/:id/status", ctl.Rooms.UpdateRoomStatus)
			rooms.DELETE("/:id", ctl.Rooms.DeleteRoom)
		}

		guests := admin.Group("/guests")
		{
			guests.GET("", ctl.Guests.GetGuests)
			guests.GET("/:id", ctl.Guests.GetGuest)
			guests.POST("", ctl.Guests.CreateGuest)
			guests.PUT("/:id", ctl.Guests.UpdateGuest)
			guests.DELETE("/:id", ctl.Guests.DeleteGuest)
		}

		reservations := admin.Group("/reservations")
		{
			reservations.GET("", ctl.Reservations.GetReservations)
			reservations.GET("/:id", ctl.Reservations.GetReservation)
			reservations.POST("", ctl.Reservations.CreateReservation)
			reservations.PUT("/:id", ctl.Reservations.UpdateReservation)
			reservations.POST("/:id/cancel", ctl.Reservations.CancelReservation)
			reservations.DELETE("/:id", ctl.Reservations.DeleteReservation)
		}
	}

	fo := api.Group("/fo",
		middleware.RequireRoles(models.RoleFrontOffice, models.RoleHotelAdmin, models.RoleHotelManager, models.RoleSuperAdmin),
		middleware.RequireHotel(),
	)
	{
		fo.GET("/dashboard", ctl.Dashboard.GetHotelSummary)
		fo.GET("/arrivals", ctl.FrontOffice.GetArrivals)
		fo.GET("/departures", ctl.FrontOffice.GetDepartures)
		fo.GET("/in-house", ctl.FrontOffice.GetInHouse)
		fo.POST("/check-in", ctl.FrontOffice.CheckIn)
		fo.POST("/check-out", ctl.FrontOffice.CheckOut)

		fo.GET("/rooms", ctl.Rooms.GetRooms)
		fo.PATCH("/rooms/:id/status", ctl.Rooms.UpdateRoomStatus)
		fo.GET("/guests", ctl.Guests.GetGuests)
		fo.GET("/guests/:id", ctl.Guests.GetGuest)
		fo.GET("/reservations", ctl.Reservations.GetReservations)
		fo.GET("/reservations/:id", ctl.Reservations.GetReservation)
	}

	return r
}
