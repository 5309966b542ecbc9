package main // Entry point package

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iliyamo/theatre-reservation/internal/access"
	"github.com/iliyamo/theatre-reservation/internal/config"
	"github.com/iliyamo/theatre-reservation/internal/database"
	"github.com/iliyamo/theatre-reservation/internal/queue"
	"github.com/iliyamo/theatre-reservation/internal/repository"
	"github.com/iliyamo/theatre-reservation/internal/router"
	"github.com/iliyamo/theatre-reservation/internal/service"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(ctx, cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("connect to db: %v", err)
	}
	defer db.Close()
	if err := database.Migrate(ctx, db); err != nil {
		log.Fatalf("apply migrations: %v", err)
	}

	policy, err := access.ByName(cfg.AccessPolicy)
	if err != nil {
		log.Fatalf("%v", err)
	}

	rdb := config.NewRedisClient(ctx)
	if rdb == nil {
		log.Printf("redis unavailable, cache and rate limit disabled")
	} else {
		defer rdb.Close()
	}

	var pub service.Publisher = service.NopPublisher{}
	if cfg.QueueEnabled {
		pub = service.NewAMQPPublisher(cfg.RabbitURL)
		consumer := queue.NewBookingLogConsumer(cfg.RabbitURL, cfg.BookingLogDir)
		go func() {
			if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Printf("booking-consumer stopped: %v", err)
			}
		}()
	}

	identity := service.NewIdentity(repository.NewUserRepo(db), repository.NewTokenRepo(db), service.IdentityOptions{
		Secret:            cfg.JWTSecret,
		BcryptCost:        cfg.BcryptCost,
		PasswordMinLength: cfg.PasswordMinLength,
	})

	if cfg.StaffUsername != "" {
		if _, err := identity.Promote(ctx, cfg.StaffUsername, cfg.StaffPassword); err != nil {
			log.Fatalf("ensure staff user %q: %v", cfg.StaffUsername, err)
		}
		log.Printf("staff user %q ready", cfg.StaffUsername)
	}

	e := router.New(router.Deps{
		Policy:       policy,
		Resolver:     identity,
		Identity:     identity,
		Publisher:    pub,
		TheatreHalls: repository.NewTheatreHallRepo(db),
		Plays:        repository.NewPlayRepo(db),
		Performances: repository.NewPerformanceRepo(db),
		Actors:       repository.NewActorRepo(db),
		Genres:       repository.NewGenreRepo(db),
		Reservations: repository.NewReservationRepo(db),
		Tickets:      repository.NewTicketRepo(db),
		Redis:        rdb,
		Cache:        config.LoadCacheConfig(),
		RateLimit:    config.LoadRateLimitConfig(),
	})

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s, access=%s)", addr, cfg.Env, cfg.AccessPolicy)

	srvErr := make(chan error, 1)
	go func() { srvErr <- e.Start(addr) }()

	select {
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("server error: %v", err)
		}
	case <-ctx.Done():
		log.Printf("shutdown signal received, stopping server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Printf("server shutdown error: %v", err)
	}
	log.Printf("server stopped")
}
