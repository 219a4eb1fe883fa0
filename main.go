package main

import (
	"context"
	"fmt"
	stdlog "log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/paleotommytechy/portfolio/admin"
	"github.com/paleotommytechy/portfolio/api"
	"github.com/paleotommytechy/portfolio/auth"
	"github.com/paleotommytechy/portfolio/config"
	"github.com/paleotommytechy/portfolio/database"
	"github.com/paleotommytechy/portfolio/gateway"
	"github.com/paleotommytechy/portfolio/models"
	"github.com/paleotommytechy/portfolio/services"
	"github.com/paleotommytechy/portfolio/storage"
	"github.com/paleotommytechy/portfolio/views"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Warning: Error loading .env file: %v\n", err)
	}

	c := config.New()
	if config.GetString(c, "APP_ENV", "production") == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	log.Info().Msg("Initializing app...")

	db, err := openDatabase(c)
	if err != nil {
		log.Fatal().Err(err).Msg("Error connecting to database")
	}

	if config.GetBool(c, "GENERATE_MODELS", false) {
		log.Info().Msg("Migrating content tables...")
		if err := models.Migrate(db); err != nil {
			log.Fatal().Err(err).Msg("Migration failed")
		}
		return
	}

	if config.GetBool(c, "GENERATE_COLUMN_REPORT", false) {
		log.Info().Msg("Generating column mismatch report...")
		mismatches, err := models.ColumnMismatchReport(db)
		if err != nil {
			log.Fatal().Err(err).Msg("Column report failed")
		}
		if mismatches > 0 {
			os.Exit(1)
		}
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	objects, err := storage.NewS3(ctx, storage.Options{
		Endpoint:        config.GetString(c, "STORAGE_ENDPOINT", ""),
		Region:          config.GetString(c, "STORAGE_REGION", "us-east-1"),
		AccessKeyID:     config.GetString(c, "STORAGE_ACCESS_KEY_ID", ""),
		SecretAccessKey: config.GetString(c, "STORAGE_SECRET_ACCESS_KEY", ""),
		Bucket:          config.GetString(c, "STORAGE_BUCKET", gateway.ImageBucket),
		PublicBaseURL:   config.GetString(c, "SUPABASE_URL", ""),
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Error configuring object storage")
	}

	verifier := auth.NewVerifier(config.GetString(c, "SUPABASE_JWT_SECRET", ""))
	provider := auth.NewGoTrue(
		config.GetString(c, "SUPABASE_URL", ""),
		config.GetString(c, "SUPABASE_ANON_KEY", ""),
		verifier,
	)
	store := auth.NewStore(provider, auth.StoreOptions{
		IdleTimeout: time.Duration(config.GetInt(c, "SESSION_IDLE_HOURS", 24)) * time.Hour,
	})
	store.Init(ctx)
	defer store.Close()

	tables := database.New(db)
	servicesContent := gateway.NewContent[models.Service](tables.Services())
	projectsContent := gateway.NewContent[models.GalleryProject](tables.Projects())
	caseStudiesContent := gateway.NewContent[models.CaseStudy](tables.CaseStudies())
	testimonialsContent := gateway.NewContent[models.Testimonial](tables.Testimonials())

	registry := admin.NewRegistry(admin.Gateways{
		Services:     servicesContent,
		Projects:     projectsContent,
		CaseStudies:  caseStudiesContent,
		Testimonials: testimonialsContent,
		Uploader:     gateway.NewUploader(objects),
	}, store)
	defer registry.Close()

	renderer, err := views.NewRenderer()
	if err != nil {
		log.Fatal().Err(err).Msg("Error parsing templates")
	}

	mailer := services.NewMailer(
		config.GetString(c, "RESEND_API_KEY", ""),
		config.GetString(c, "RESEND_FROM_EMAIL", ""),
		config.GetString(c, "CONTACT_EMAIL", ""),
	)

	errChannel := make(chan error)

	server, err := api.NewServer(c, api.Dependencies{
		Renderer:     renderer,
		Services:     servicesContent,
		Projects:     projectsContent,
		CaseStudies:  caseStudiesContent,
		Testimonials: testimonialsContent,
		Store:        store,
		Registry:     registry,
		Verifier:     verifier,
		Mailer:       mailer,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing server")
	}

	go server.Start(errChannel)

	// Listen for interrupt signals to gracefully shutdown the server
	go listenToInterrupt(errChannel)

	fatalErr := <-errChannel
	log.Info().Msgf("Closing server: %v", fatalErr)

	server.ShutdownGracefully(30 * time.Second)
}

func openDatabase(c map[string]string) (*gorm.DB, error) {
	connStr := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		config.GetString(c, "SUPABASE_DB_HOST", ""),
		config.GetString(c, "SUPABASE_DB_USER", ""),
		config.GetString(c, "SUPABASE_DB_PASSWORD", ""),
		config.GetString(c, "SUPABASE_DB_NAME", "postgres"),
		config.GetString(c, "SUPABASE_DB_PORT", "5432"),
		config.GetString(c, "SUPABASE_DB_SSLMODE", "require"),
	)

	newLogger := logger.New(
		stdlog.New(os.Stdout, "\r\n", stdlog.LstdFlags),
		logger.Config{
			SlowThreshold:             10 * time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  connStr,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		PrepareStmt: false,
		Logger:      newLogger,
	})
	if err != nil {
		return nil, err
	}

	var result int
	if err := db.Raw("SELECT 1").Scan(&result).Error; err != nil {
		return nil, fmt.Errorf("test connection: %w", err)
	}
	return db, nil
}

// listenToInterrupt waits for SIGINT or SIGTERM and then sends an error to the error channel.
func listenToInterrupt(errChannel chan<- error) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	errChannel <- fmt.Errorf("%s", <-c)
}
