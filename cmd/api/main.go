package main

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"squareinvoice/internal/config"
	"squareinvoice/internal/database"
	"squareinvoice/internal/domain"
	"squareinvoice/internal/middleware"
	"squareinvoice/internal/modules/admin"
	"squareinvoice/internal/modules/events"
	"squareinvoice/internal/modules/invoice"
	jwtsvc "squareinvoice/internal/pkg/jwt"
	"squareinvoice/internal/repository"
	"squareinvoice/internal/square"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is empty")
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := db.AutoMigrate(&domain.Booking{}); err != nil {
		log.Fatal(err)
	}

	bookingRepo := repository.NewBookingRepository(db)
	gateway := square.NewClient(cfg.Square)
	hub := events.NewHub()
	defer hub.Close()

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)

	invoiceService := invoice.NewService(gateway, bookingRepo, hub, log.Printf)
	invoiceHandler := invoice.NewHandler(invoiceService, log.Printf)

	adminService := admin.NewService(bookingRepo, j, cfg.AdminPasswordHash)
	adminHandler := admin.NewHandler(adminService)

	eventsHandler := events.NewHandler(hub, j)

	r := gin.Default()

	v1 := r.Group("/api/v1")
	{
		// public
		invoiceHandler.RegisterRoutes(v1)
		adminHandler.RegisterPublicRoutes(v1)
		eventsHandler.RegisterRoutes(v1)

		// protected (admin read endpoints)
		protected := v1.Group("/")
		protected.Use(middleware.JWTAuth(j))
		{
			adminHandler.RegisterProtectedRoutes(protected)
		}
	}

	log.Printf("listening on %s (square env=%s, timeout=%s)", cfg.HTTPAddr, cfg.Square.Environment, cfg.Square.Timeout.Round(time.Second))
	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.Fatal(err)
	}
}
