package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"parkinglot/internal/api"
	"parkinglot/internal/config"
	"parkinglot/internal/db"
	"parkinglot/internal/repository"
	"parkinglot/internal/service"

	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	store, closeStore, err := openStore(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer closeStore()

	timeout := cfg.StoreTimeoutDuration()
	clock := service.SystemClock{Location: cfg.Location()}

	availabilitySvc := service.NewAvailabilityService(store.Parking, timeout)
	blockSvc := service.NewBlockService(store.Blocks, availabilitySvc, timeout)
	reservationSvc := service.NewReservationService(store.Parking, clock, timeout)
	checkoutSvc := service.NewCheckoutService(store.Parking, store.Blocks, clock, timeout)
	adminSvc := service.NewAdminService(store.Admin, timeout)
	jobSvc := service.NewJobService(blockSvc, availabilitySvc)

	router := api.NewRouter(api.Handlers{
		Admin:   api.NewAdminHandler(adminSvc),
		Blocks:  api.NewBlockHandler(blockSvc),
		Parking: api.NewParkingHandler(reservationSvc, checkoutSvc),
	}, cfg.AllowedOrigins())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.OccupancyReportCron != "" {
		c, err := jobSvc.Schedule(ctx, cfg.OccupancyReportCron)
		if err != nil {
			log.Fatalf("Failed to schedule occupancy report: %v", err)
		}
		c.Start()
		defer func() { <-c.Stop().Done() }()
		log.Printf("Occupancy report scheduled: %s", cfg.OccupancyReportCron)
	}

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: router}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Printf("Server running on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Println("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeoutDuration())
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Printf("Server error: %v", err)
	}
	log.Println("Server stopped")
}

func openStore(cfg *config.Config) (*repository.Store, func(), error) {
	if cfg.UseMemoryStore() {
		log.Println("Using in-memory store; data is lost on exit")
		store, _ := repository.NewMemoryBackedStore()
		return store, func() {}, nil
	}

	sqlDB, err := db.Open(cfg.DBDriver, cfg.DatabaseURL, db.PoolOptions{
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.ConnMaxLifetime(),
	})
	if err != nil {
		return nil, nil, err
	}
	return repository.NewPostgresStore(sqlDB, cfg.DatabaseURL), func() { sqlDB.Close() }, nil
}
