package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"sportarea/internal/config"
	"sportarea/internal/database"
	"sportarea/internal/events"
	"sportarea/internal/middleware"
	"sportarea/internal/modules/auth"
	"sportarea/internal/modules/booking"
	"sportarea/internal/modules/report"
	"sportarea/internal/modules/user"
	jwtsvc "sportarea/internal/pkg/jwt"
	"sportarea/internal/repository"
	"sportarea/internal/sweeper"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("migrate failed: %v", err)
	}

	userRepo := repository.NewUserRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	reportRepo := repository.NewReportRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL())
	hub := events.NewHub()
	artifactStore := report.NewDiskStore(cfg.UploadsDir)

	authService := auth.NewService(userRepo, j)
	authHandler := auth.NewHandler(authService)

	bookingService := booking.NewService(bookingRepo, artifactStore, hub)
	bookingHandler := booking.NewHandler(bookingService)

	reportService := report.NewService(
		reportRepo,
		bookingRepo,
		userRepo,
		report.NewPDFRenderer(),
		artifactStore,
		cfg.RenderTimeout(),
	)
	reportHandler := report.NewHandler(reportService)

	userService := user.NewService(userRepo)
	userHandler := user.NewHandler(userService)

	eventsHandler := events.NewHandler(hub)

	r := gin.Default()
	r.Use(middleware.CORS())

	v1 := r.Group("/api/v1")
	{
		// public
		authHandler.RegisterRoutes(v1)

		// protected
		protected := v1.Group("/")
		protected.Use(middleware.JWTAuth(j))
		{
			bookingHandler.RegisterRoutes(protected)
			reportHandler.RegisterRoutes(protected)
			userHandler.RegisterRoutes(protected)
			eventsHandler.RegisterRoutes(protected)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sw := sweeper.New(bookingRepo, artifactStore, cfg.SweepInterval())
	go sw.Run(ctx)

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()
	log.Printf("listening on %s", cfg.HTTPAddr)

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown: %v", err)
	}
	hub.Close()
}
