package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/redis/go-redis/v9"

	"firebase.google.com/go/messaging"

	"poputkaBack/internal/handlers"
	"poputkaBack/internal/repositories"
	"poputkaBack/internal/services"
	"poputkaBack/utils"
)

type application struct {
	errorLog  *log.Logger
	infoLog   *log.Logger
	db        *sql.DB
	jwtSecret string

	userRepo        *repositories.UserRepository
	vehicleRepo     *repositories.VehicleRepository
	tripRepo        *repositories.TripRepository
	requestRepo     *repositories.TripRequestRepository
	reservationRepo *repositories.TripReservationRepository
	chatRepo        *repositories.ChatRepository
	paymentRepo     *repositories.PaymentRepository

	chatService *services.ChatService

	userHandler        *handlers.UserHandler
	vehicleHandler     *handlers.VehicleHandler
	tripHandler        *handlers.TripHandler
	requestHandler     *handlers.TripRequestHandler
	reservationHandler *handlers.TripReservationHandler
	chatHandler        *handlers.ChatHandler
	paymentHandler     *handlers.PaymentHandler
	healthHandler      *handlers.HealthHandler

	wsManager *WebSocketManager
}

// openDB supports both drivers the deploys use: mysql and pgx.
func openDB(driver, dsn string) (*sql.DB, error) {
	switch driver {
	case "mysql", "pgx":
	case "":
		driver = "mysql"
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, err
	}
	return db, nil
}

func initializeApp(db *sql.DB, errorLog, infoLog *log.Logger, jwtSecret string, tokenManager *utils.Manager, fcmClient *messaging.Client, cache *redis.Client) *application {
	// Repositories
	userRepo := repositories.UserRepository{DB: db}
	vehicleRepo := repositories.VehicleRepository{DB: db}
	tripRepo := repositories.TripRepository{DB: db}
	requestRepo := repositories.TripRequestRepository{DB: db}
	reservationRepo := repositories.TripReservationRepository{DB: db}
	chatRepo := repositories.ChatRepository{DB: db}
	paymentRepo := repositories.PaymentRepository{DB: db}

	// Services
	userService := &services.UserService{UserRepo: &userRepo, TokenManager: tokenManager, JWTSecret: jwtSecret}
	vehicleService := &services.VehicleService{VehicleRepo: &vehicleRepo}
	tripService := &services.TripService{TripRepo: &tripRepo, VehicleRepo: &vehicleRepo, RequestRepo: &requestRepo, Cache: cache}
	notificationService := &services.NotificationService{Client: fcmClient, UserRepo: &userRepo, ErrorLog: errorLog}
	requestService := &services.TripRequestService{RequestRepo: &requestRepo, TripRepo: &tripRepo, Notifications: notificationService}
	reservationService := &services.TripReservationService{ReservationRepo: &reservationRepo, TripRepo: &tripRepo}
	chatService := &services.ChatService{ChatRepo: &chatRepo}
	paymentService := &services.PaymentService{PaymentRepo: &paymentRepo, TripRepo: &tripRepo, RequestRepo: &requestRepo}

	app := &application{
		errorLog:  errorLog,
		infoLog:   infoLog,
		db:        db,
		jwtSecret: jwtSecret,

		userRepo:        &userRepo,
		vehicleRepo:     &vehicleRepo,
		tripRepo:        &tripRepo,
		requestRepo:     &requestRepo,
		reservationRepo: &reservationRepo,
		chatRepo:        &chatRepo,
		paymentRepo:     &paymentRepo,

		chatService: chatService,

		userHandler:        &handlers.UserHandler{Service: userService},
		vehicleHandler:     &handlers.VehicleHandler{Service: vehicleService},
		tripHandler:        &handlers.TripHandler{Service: tripService},
		requestHandler:     &handlers.TripRequestHandler{Service: requestService},
		reservationHandler: &handlers.TripReservationHandler{Service: reservationService},
		paymentHandler:     &handlers.PaymentHandler{Service: paymentService},
		healthHandler:      &handlers.HealthHandler{DB: db},
	}

	app.wsManager = NewWebSocketManager()
	app.chatHandler = &handlers.ChatHandler{Service: chatService, Broadcaster: app.wsManager}

	return app
}
