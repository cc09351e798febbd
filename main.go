package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"hotel-pms/auth"
	"hotel-pms/config"
	"hotel-pms/controllers"
	"hotel-pms/logging"
	"hotel-pms/middleware"
	"hotel-pms/routes"
	"hotel-pms/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := logging.NewLogger(logging.Config{Component: "api", Level: cfg.LogLevel})
	if err != nil {
		log.Fatalf("build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	startCtx, cancelStart := context.WithTimeout(context.Background(), 30*time.Second)
	store, closeStore, err := config.OpenStore(startCtx, cfg, logger)
	cancelStart()
	if err != nil {
		logger.Fatal("open store failed", zap.Error(err))
	}
	defer func() {
		if err := closeStore(); err != nil {
			logger.Warn("close store failed", zap.Error(err))
		}
	}()
	logger.Info("store ready", zap.String("backend", cfg.StoreBackend))

	// Services
	clock := services.NewClock(cfg.Location())
	views := services.NewViewVersions()
	impersonator := auth.NewImpersonator(cfg.ImpersonationSecret, cfg.ImpersonationTTL)

	accessService := services.NewAccessService(store, views, impersonator)
	accessService.BootstrapAdmins = cfg.SuperAdminEmails
	hotelService := services.NewHotelService(store, views)
	roomTypeService := services.NewRoomTypeService(store, views)
	roomService := services.NewRoomService(store, views)
	guestService := services.NewGuestService(store, views)
	reservationService := services.NewReservationService(store, views, clock)
	stayService := services.NewStayService(store, views, clock)
	dashboardService := services.NewDashboardService(store)

	// Controllers
	ctl := routes.Controllers{
		Auth:         controllers.NewAuthController(accessService, cfg.CookieSecure),
		Hotels:       controllers.NewHotelController(hotelService, views),
		RoomTypes:    controllers.NewRoomTypeController(roomTypeService, views),
		Rooms:        controllers.NewRoomController(roomService, views),
		Guests:       controllers.NewGuestController(guestService, views),
		Reservations: controllers.NewReservationController(reservationService, views),
		FrontOffice:  controllers.NewFrontOfficeController(stayService, views, clock),
		Dashboard:    controllers.NewDashboardController(dashboardService, clock),
		Staff:        controllers.NewStaffController(accessService, views),
	}

	router := routes.SetupRouter(ctl, routes.Options{
		Logger:      logger,
		CorsOrigins: cfg.CorsOrigins,
		Session: middleware.SessionConfig{
			Verifier:   auth.NewSessionVerifier(cfg.SupabaseJWTSecret),
			Access:     accessService,
			CookieName: cfg.SessionCookie,
		},
		Store: store,
	})

	addr := ":" + cfg.Port
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("server starting", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("listen failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	logger.Info("shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("forced shutdown", zap.Error(err))
		return
	}
	logger.Info("server stopped")
}
