package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"petcareapi/internal/auth"
	"petcareapi/internal/config"
	"petcareapi/internal/database"
	"petcareapi/internal/database/migration"
	handlers "petcareapi/internal/http/handler"
	"petcareapi/internal/http/middleware"
	"petcareapi/internal/mailer"
	"petcareapi/internal/otel"
	"petcareapi/internal/places"
	"petcareapi/internal/repository/postgres"
	"petcareapi/internal/service"
	"petcareapi/internal/storage"
)

func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, time.UTC)
	if err != nil {
		log.Fatalf("failed to initialize tracing: %v", err)
	}

	// Initialize PostgreSQL connection (with pooling via database/sql)
	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, time.UTC, cfg.Database.Host); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	// Initialize reusable S3-compatible object storage client (MinIO-supported)
	objStore, err := storage.NewMinIO(cfg.MinIO)
	if err != nil {
		log.Fatalf("failed to initialize object storage: %v", err)
	}

	// External collaborators: identity provider, SMTP relay, places API.
	provider, err := auth.NewHTTPProvider(cfg.Auth)
	if err != nil {
		log.Fatalf("failed to initialize identity provider client: %v", err)
	}
	mail, err := mailer.NewSMTP(cfg.SMTP)
	if err != nil {
		log.Fatalf("failed to initialize mailer: %v", err)
	}
	placesClient, err := places.NewClient(cfg.Maps)
	if err != nil {
		log.Fatalf("failed to initialize places client: %v", err)
	}

	// Initialize repositories
	userRepo := postgres.NewUserPostgres(db)
	petRepo := postgres.NewPetPostgres(db)
	adoptionRepo := postgres.NewAdoptionPostgres(db)
	articleRepo := postgres.NewArticlePostgres(db)
	missingRepo := postgres.NewMissingPostgres(db)
	sightingRepo := postgres.NewSightingPostgres(db)
	locationRepo := postgres.NewLocationPostgres(db)
	amenityRepo := postgres.NewAmenityPostgres(db)

	// Cache writer persists place-search results off the request path; Wait
	// drains it on shutdown.
	cacheWriter := service.NewCacheWriter(locationRepo, amenityRepo)

	svcs := handlers.Services{
		Users:     service.NewUserService(userRepo, provider, objStore, mail),
		Pets:      service.NewPetService(petRepo, userRepo, objStore),
		Adoptions: service.NewAdoptionService(adoptionRepo, userRepo, objStore),
		Articles:  service.NewArticleService(articleRepo, userRepo, objStore),
		Missing:   service.NewMissingService(missingRepo, sightingRepo, petRepo, userRepo, objStore),
		Sightings: service.NewSightingService(sightingRepo, missingRepo, userRepo, objStore),
		Amenities: service.NewAmenityService(placesClient, amenityRepo, cacheWriter),
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
		BodyLimit:    cfg.MaxUploadBytes,
	})

	// Register global middleware
	app.Use(otelfiber.Middleware())
	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	app.Use(middleware.RequestID())
	// JSON Logger middleware for structured request logs
	app.Use(middleware.Logger())

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	promMw, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		log.Fatalf("failed to register prometheus metrics: %v", err)
	}
	app.Use(promMw.Handler())
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	// Register HTTP routes with injected services
	handlers.RegisterRoutes(app, db, svcs)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	<-ctx.Done()

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Printf("server shutdown: %v", err)
	}
	// Let in-flight cache persists finish before the DB pool closes.
	cacheWriter.Wait()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Printf("tracing shutdown: %v", err)
	}
}
