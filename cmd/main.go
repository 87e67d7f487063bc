package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/jsarabia/fn-location/internal/config"
	"github.com/jsarabia/fn-location/internal/domain"
	"github.com/jsarabia/fn-location/internal/handler"
	"github.com/jsarabia/fn-location/internal/provider"
	"github.com/jsarabia/fn-location/internal/repository"
	"github.com/jsarabia/fn-location/internal/service"
)

func main() {
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded configuration from .env")
	}
	cfg := config.Load()

	// Simulated device provider; real GPS hardware sits behind the same
	// interface.
	locationProvider := provider.NewSimulated(provider.SimulatedConfig{
		ServiceAvailable: cfg.Provider.ServiceAvailable,
		Authorization:    domain.ParseAuthorizationState(cfg.Provider.Authorization),
		GrantOnRequest:   cfg.Provider.GrantOnRequest,
		FixLatitude:      cfg.Provider.FixLatitude,
		FixLongitude:     cfg.Provider.FixLongitude,
		FailureKind:      domain.ProviderErrorKind(cfg.Provider.FailureKind),
		Delay:            cfg.Provider.FixDelay,
	})

	managerCfg := service.ManagerConfig{
		MockCoordinate:                  domain.NewCoordinate(cfg.Location.MockLatitude, cfg.Location.MockLongitude),
		UseMockFallbackOnInitialFailure: cfg.Location.UseMockFallbackOnInitialFailure,
	}

	// Optional snapshot persistence: seed the manager with the last known
	// coordinate and keep the row current on every commit.
	var snapshotRepo *repository.PostgresSnapshotRepository
	if cfg.SnapshotEnabled {
		db, err := sql.Open("postgres", cfg.PostgresURL)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()

		db.SetMaxOpenConns(5)
		db.SetMaxIdleConns(2)
		db.SetConnMaxLifetime(5 * time.Minute)

		if err := db.Ping(); err != nil {
			log.Fatalf("Failed to ping database: %v", err)
		}

		snapshotRepo = repository.NewPostgresSnapshotRepository(db)

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := snapshotRepo.EnsureSchema(ctx); err != nil {
			cancel()
			log.Fatalf("Failed to prepare snapshot schema: %v", err)
		}

		if seed, found, err := snapshotRepo.Load(ctx); err != nil {
			log.Printf("Failed to load coordinate snapshot: %v", err)
		} else if found {
			managerCfg.InitialCoordinate = &seed
			log.Printf("Restored coordinate snapshot %s", seed)
		}
		cancel()
	}

	manager := service.NewCoordinateManager(locationProvider, managerCfg)
	locationProvider.Bind(manager)
	defer manager.Close()

	eventPublisher := newEventPublisher(cfg)
	defer eventPublisher.Close()

	// The manager stays free of I/O: event publishing and snapshot writes
	// hang off the coordinates observable and run on their own goroutines.
	manager.Coordinates().Subscribe(func(change domain.CoordinateChange) {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			if err := eventPublisher.PublishEvent(ctx, domain.NewCoordinateEvent(change)); err != nil {
				log.Printf("Failed to publish coordinate event: %v", err)
			}
		}()
	})

	if snapshotRepo != nil {
		manager.Coordinates().Subscribe(func(change domain.CoordinateChange) {
			go func() {
				ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()

				if err := snapshotRepo.Save(ctx, change.Coordinate, change.Source); err != nil {
					log.Printf("Failed to save coordinate snapshot: %v", err)
				}
			}()
		})
	}

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "location-domain",
		})
	})

	handler.SetupRoutes(router.Group("/api"), manager)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}

func newEventPublisher(cfg *config.Config) domain.EventPublisher {
	if cfg.KafkaConfig.Enabled {
		publisher, err := service.NewEventService(cfg.KafkaConfig)
		if err != nil {
			log.Printf("Failed to initialize Kafka publisher, falling back to logging: %v", err)
			return service.NewLoggingEventPublisher()
		}
		log.Printf("Publishing coordinate events to Kafka topic %s", cfg.KafkaConfig.Topic)
		return publisher
	}

	if cfg.Environment == "development" {
		return service.NewLoggingEventPublisher()
	}
	return service.NewNoOpEventPublisher()
}
