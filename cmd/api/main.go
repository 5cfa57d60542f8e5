package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"

	_ "github.com/mattn/go-sqlite3"
	"go.mau.fi/whatsmeow"
	"go.mau.fi/whatsmeow/store/sqlstore"
	waLog "go.mau.fi/whatsmeow/util/log"

	"github.com/castellanimarco/trainflow-engine/internal/adapters/cache"
	adapterHTTP "github.com/castellanimarco/trainflow-engine/internal/adapters/handler/http"
	"github.com/castellanimarco/trainflow-engine/internal/adapters/notifier"
	"github.com/castellanimarco/trainflow-engine/internal/adapters/repository"
	"github.com/castellanimarco/trainflow-engine/internal/core/catalog"
	"github.com/castellanimarco/trainflow-engine/internal/core/domain"
	"github.com/castellanimarco/trainflow-engine/internal/core/services"
	"github.com/castellanimarco/trainflow-engine/internal/core/workers"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	startTime := time.Now()

	_ = godotenv.Load()

	dbUser := os.Getenv("DB_USER")
	dbPass := os.Getenv("DB_PASSWORD")
	dbName := os.Getenv("DB_NAME")
	dbHost := envOr("DB_HOST", "localhost")
	dbPort := envOr("DB_PORT", "5432")
	serverPort := envOr("PORT", "8080")

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("Critical: JWT_SECRET is not set")
	}

	tzName := envOr("REMINDER_TZ", "Europe/Rome")
	loc, err := time.LoadLocation(tzName)
	if err != nil {
		log.Fatalf("Critical: invalid REMINDER_TZ %q: %v", tzName, err)
	}

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		dbUser, dbPass, dbHost, dbPort, dbName)

	log.Println("Connecting to database...")

	db, err := sqlx.Connect("pgx", dsn)
	if err != nil {
		log.Fatalf("Critical: Failed to connect to database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	log.Println("Database connected successfully.")

	userRepo := repository.NewPostgresUserRepository(db)
	progressRepo := repository.NewPostgresProgressRepository(db)

	var workoutRepo domain.WorkoutRepository = repository.NewPostgresWorkoutRepository(db)
	var mealRepo domain.MealRepository = repository.NewPostgresMealRepository(db)

	redisClient, err := cache.NewRedisClient(
		envOr("REDIS_HOST", "localhost"),
		envOr("REDIS_PORT", "6379"),
		os.Getenv("REDIS_PASSWORD"),
		0,
	)
	if err != nil {
		log.Printf("Redis unavailable, running without cache and rate limiting: %v", err)
		redisClient = nil
	} else {
		workoutRepo = repository.NewCachedWorkoutRepository(workoutRepo, redisClient)
		mealRepo = repository.NewCachedMealRepository(mealRepo, redisClient)
	}

	var reminderNotifier workers.Notifier = notifier.NewLogNotifier()

	waDBPath := os.Getenv("WA_DB_PATH")
	if waDBPath != "" {
		waClient, err := connectWhatsApp(waDBPath)
		if err != nil {
			log.Fatalf("Critical: WhatsApp session setup failed: %v", err)
		}
		defer waClient.Disconnect()
		reminderNotifier = notifier.NewWhatsAppNotifier(waClient)
		log.Println("WhatsApp transport connected.")
	} else {
		log.Println("WA_DB_PATH not set, reminders go to the process log.")
	}

	template := catalog.DailyTemplate()

	scheduler := workers.NewReminderScheduler(userRepo, workoutRepo, mealRepo, reminderNotifier, template, loc)

	tokenService := services.NewTokenService(jwtSecret, "trainflow-engine", 24*time.Hour, userRepo)
	authService := services.NewAuthService(userRepo, tokenService)
	programService := services.NewProgramService(userRepo, workoutRepo, mealRepo, progressRepo, scheduler)
	scheduleService := services.NewScheduleService(workoutRepo, mealRepo, template)
	progressService := services.NewProgressService(userRepo, progressRepo)

	schedulerCtx, stopScheduler := context.WithCancel(context.Background())
	defer stopScheduler()

	if err := scheduler.Start(schedulerCtx); err != nil {
		log.Fatalf("Critical: reminder scheduler failed to start: %v", err)
	}

	router := adapterHTTP.NewRouter(adapterHTTP.RouterDependencies{
		AuthHandler:     adapterHTTP.NewAuthHandler(authService),
		ProgramHandler:  adapterHTTP.NewProgramHandler(programService),
		ScheduleHandler: adapterHTTP.NewScheduleHandler(scheduleService, programService),
		ProgressHandler: adapterHTTP.NewProgressHandler(progressService),
		TokenService:    tokenService,
		DB:              db,
		Redis:           redisClient,
		StartTime:       startTime,
	})

	srv := &http.Server{
		Addr:         ":" + serverPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("Trainflow Engine running on http://localhost:%s", serverPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Critical server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Stop signal received. Shutting down...")

	stopScheduler()
	scheduler.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Forced shutdown error:", err)
	}

	log.Println("Server stopped gracefully.")
}

// connectWhatsApp opens (or resumes) the whatsmeow session stored in the
// given sqlite file. First-time pairing prints the QR code payload to the
// log; scan it and restart.
func connectWhatsApp(dbPath string) (*whatsmeow.Client, error) {
	ctx := context.Background()
	dsn := fmt.Sprintf("file:%s?_foreign_keys=on", dbPath)

	container, err := sqlstore.New(ctx, "sqlite3", dsn, waLog.Stdout("Database", "WARN", true))
	if err != nil {
		return nil, fmt.Errorf("open session store: %w", err)
	}

	deviceStore, err := container.GetFirstDevice(ctx)
	if err != nil {
		return nil, fmt.Errorf("load device: %w", err)
	}

	client := whatsmeow.NewClient(deviceStore, waLog.Stdout("Client", "WARN", true))

	if client.Store.ID == nil {
		qrChan, _ := client.GetQRChannel(ctx)
		if err := client.Connect(); err != nil {
			return nil, fmt.Errorf("connect for pairing: %w", err)
		}
		for evt := range qrChan {
			if evt.Event == "code" {
				log.Printf("WhatsApp pairing QR code: %s", evt.Code)
			} else {
				log.Printf("WhatsApp login event: %s", evt.Event)
			}
		}
		return client, nil
	}

	if err := client.Connect(); err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	return client, nil
}
