package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/fala-hotels/fala-api/internal/config"
	"github.com/fala-hotels/fala-api/internal/domain/auth"
	"github.com/fala-hotels/fala-api/internal/domain/booking"
	"github.com/fala-hotels/fala-api/internal/domain/hotel"
	"github.com/fala-hotels/fala-api/internal/domain/room"
	"github.com/fala-hotels/fala-api/internal/jobs"
	"github.com/fala-hotels/fala-api/internal/middleware"
	"github.com/fala-hotels/fala-api/internal/pkg/database"
	"github.com/fala-hotels/fala-api/internal/pkg/dateutil"
	"github.com/fala-hotels/fala-api/internal/pkg/email"
	"github.com/fala-hotels/fala-api/internal/pkg/identity"
	"github.com/fala-hotels/fala-api/internal/pkg/logger"
	"github.com/fala-hotels/fala-api/internal/pkg/metrics"
	pkgresponse "github.com/fala-hotels/fala-api/internal/pkg/response"
	"github.com/fala-hotels/fala-api/internal/pkg/storage"
)

func main() {
	cfg := config.Load()
	if err := logger.Init(logger.Config{Level: cfg.LogLevel, Environment: cfg.Env}); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize logger")
	}

	log.Info().
		Str("env", cfg.Env).
		Str("port", cfg.Port).
		Msg("Starting Fala API")

	db, err := database.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer database.ClosePostgres(db)

	rdb, err := database.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer database.CloseRedis(rdb)

	identityClient, err := identity.NewClient(identity.Config{
		BaseURL:      cfg.IdentityBaseURL,
		Realm:        cfg.IdentityRealm,
		ClientID:     cfg.IdentityClientID,
		ClientSecret: cfg.IdentityClientSecret,
		PublicKeyPEM: cfg.IdentityPublicKey,
		Timeout:      cfg.IdentityTimeout,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create identity client")
	}

	// ---------- Storage ----------
	var imageStorage storage.ImageStorage
	if cfg.R2AccountID != "" {
		r2, err := storage.NewR2Storage(storage.R2Config{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			AccessKeySecret: cfg.R2AccessKeySecret,
			BucketName:      cfg.R2BucketName,
			PublicURL:       cfg.R2PublicURL,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create R2 storage")
		}
		imageStorage = r2
	} else if cfg.IsDevelopment() {
		local, err := storage.NewLocalStorage("./uploads", cfg.FrontendURL+"/uploads")
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create local storage")
		}
		imageStorage = local
	} else {
		log.Warn().Msg("R2 not configured, image uploads disabled")
	}

	// ---------- Email ----------
	var emailService *email.Service
	if cfg.SendGridAPIKey != "" {
		emailService = email.NewService(email.SendGridConfig{
			APIKey:    cfg.SendGridAPIKey,
			FromEmail: cfg.EmailFrom,
			FromName:  cfg.EmailFromName,
		}, cfg.FrontendURL)
		defer emailService.Close()
	} else {
		log.Warn().Msg("SendGrid not configured, booking emails disabled")
	}

	// ---------- Repositories ----------
	bookingRepo := booking.NewRepository(db)
	hotelRepo := hotel.NewRepository(db)
	roomRepo := room.NewRepository(db)

	bookingCache := booking.NewCache(rdb, cfg.BookingCacheTTL)

	// ---------- Services ----------
	var mailer booking.Mailer
	if emailService != nil {
		mailer = &bookingMailer{emails: emailService}
	}
	bookingService := booking.NewService(bookingRepo, &roomProvider{repo: roomRepo}, bookingCache, mailer)

	// ---------- Handlers ----------
	bookingHandler := booking.NewHandler(bookingService)
	hotelHandler := hotel.NewHandler(hotelRepo, imageStorage, rdb)
	roomHandler := room.NewHandler(roomRepo)
	authHandler := auth.NewHandler(identityClient, bookingCache, cfg.FrontendURL)

	authMiddleware := middleware.Auth(identityClient)
	optionalAuth := middleware.OptionalAuth(identityClient)
	managerOnly := middleware.RequireManager()

	// ---------- Background jobs ----------
	lifecycle := jobs.NewLifecycle(bookingRepo, cfg.LifecycleSchedule)
	if err := lifecycle.Start(); err != nil {
		log.Fatal().Err(err).Msg("Failed to start lifecycle job")
	}
	defer lifecycle.Stop()

	metrics.Register()

	// ---------- Router ----------
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recover)
	r.Use(middleware.CORSHandler(cfg.AllowedOrigins))
	r.Use(middleware.Metrics)
	r.Use(chimw.Compress(5))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		pkgresponse.OK(w, map[string]string{
			"status":  "ok",
			"version": "1.0.0",
		})
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Mount("/auth", authHandler.Routes(authMiddleware))
		r.Mount("/bookings", bookingHandler.Routes(authMiddleware, optionalAuth))
		r.Mount("/hotels", hotelHandler.Routes(authMiddleware, managerOnly))
		r.Mount("/rooms", roomHandler.Routes())
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited properly")
}

// Adapter implementations to bridge interface mismatches

// roomProvider adapts room.Repository to booking.RoomProvider
type roomProvider struct {
	repo *room.Repository
}

func (a *roomProvider) GetRoomInfo(ctx context.Context, roomID uuid.UUID) (*booking.RoomInfo, error) {
	rm, err := a.repo.GetByID(ctx, roomID)
	if err != nil || rm == nil {
		return nil, err
	}

	return &booking.RoomInfo{
		ID:            rm.ID,
		HotelID:       rm.HotelID,
		Name:          rm.Name,
		Type:          string(rm.Type),
		PricePerNight: rm.PricePerNight,
		MaxGuests:     rm.MaxGuests,
		IsActive:      rm.IsActive,
	}, nil
}

// bookingMailer adapts email.Service to booking.Mailer
type bookingMailer struct {
	emails *email.Service
}

func (m *bookingMailer) SendBookingConfirmation(ctx context.Context, b *booking.Booking) error {
	m.emails.SendBookingConfirmation(bookingDetails(b))
	return nil
}

func (m *bookingMailer) SendBookingCancellation(ctx context.Context, b *booking.Booking, quote booking.RefundQuote) error {
	m.emails.SendBookingCancellation(bookingDetails(b), email.RefundDetails{
		RefundPercent:   quote.RefundPercent,
		RefundAmount:    quote.RefundAmount,
		CancellationFee: quote.CancellationFee,
		NetRefund:       quote.NetRefund,
	})
	return nil
}

func bookingDetails(b *booking.Booking) email.BookingDetails {
	return email.BookingDetails{
		GuestName:     b.GuestFirstName + " " + b.GuestLastName,
		GuestEmail:    b.GuestEmail,
		BookingNumber: b.BookingNumber,
		CheckInDate:   b.CheckInDate.Format(dateutil.DateOnly),
		CheckOutDate:  b.CheckOutDate.Format(dateutil.DateOnly),
		Nights:        b.NumberOfNights,
		Guests:        b.NumberOfGuests,
		Total:         b.Total,
	}
}
