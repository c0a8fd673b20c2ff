package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	allocateRoomHandler "github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/allocate_room"
	cancelBookingHandler "github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/cancel_booking"
	createRoomHandler "github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/create_room"
	deleteRoomHandler "github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/delete_room"
	getAvailableRoomsHandler "github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/get_available_rooms"
	getBookingHandler "github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/get_booking"
	listBookingsHandler "github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/list_bookings"
	listRoomsHandler "github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/list_rooms"
	updateRoomHandler "github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/update_room"
	"github.com/m04kA/SMC-RoomBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-RoomBookingService/internal/config"
	roomCache "github.com/m04kA/SMC-RoomBookingService/internal/infra/cache/rooms"
	"github.com/m04kA/SMC-RoomBookingService/internal/infra/events"
	bookingRepo "github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/lock"
	roomRepo "github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/room"
	teamServiceClient "github.com/m04kA/SMC-RoomBookingService/internal/integrations/teamservice"
	bookingsService "github.com/m04kA/SMC-RoomBookingService/internal/service/bookings"
	roomsService "github.com/m04kA/SMC-RoomBookingService/internal/service/rooms"
	allocateRoomUC "github.com/m04kA/SMC-RoomBookingService/internal/usecase/allocate_room"
	getAvailableRoomsUC "github.com/m04kA/SMC-RoomBookingService/internal/usecase/get_available_rooms"
	"github.com/m04kA/SMC-RoomBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-RoomBookingService/pkg/logger"
	"github.com/m04kA/SMC-RoomBookingService/pkg/metrics"
	"github.com/m04kA/SMC-RoomBookingService/pkg/txmanager"
)

// eventPublisher публикатор событий, который нужно закрыть при остановке
type eventPublisher interface {
	allocateRoomUC.EventPublisher
	bookingsService.EventPublisher
	Close() error
}

// roomDirectory справочник комнат для читающих эндпоинтов: Redis-кэш или напрямую репозиторий
// Распределение всегда читает комнаты из базы в своей транзакции
type roomDirectory interface {
	getAvailableRoomsUC.RoomDirectory
	roomsService.RoomDirectory
}

func main() {
	configPath := "config.toml"
	if p := os.Getenv("ROOMS_CONFIG_PATH"); p != "" {
		configPath = p
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-RoomBookingService...")
	log.Info("Configuration loaded from %s", configPath)

	// Правила распределения уже проверены в config.Validate
	window, _ := cfg.Allocation.Window()
	location, _ := cfg.Allocation.Location()

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Без метрик обёртка прозрачна, но транзакции через контекст работают одинаково
	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Database.DBName, stopMetricsCh)

	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	roomRepository := roomRepo.NewRepository(wrappedDB)
	txMgr := txmanager.NewTransactionManager(wrappedDB)
	locker := lock.NewLocker(cfg.Allocation.LockTimeout())

	// Справочник комнат (с кэшем в Redis, если включен)
	var (
		directory   roomDirectory = roomRepository
		invalidator roomsService.CacheInvalidator
	)
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Warn("Redis is unavailable at %s, room cache will fall back to database: %v", cfg.Redis.Addr, err)
		}

		cache := roomCache.NewCache(redisClient, roomRepository,
			time.Duration(cfg.Redis.RoomCacheTTL)*time.Second, log)
		directory = cache
		invalidator = cache
		log.Info("Room cache enabled (addr=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.RoomCacheTTL)
	}

	// Интеграция с сервисом команд
	teamClient := teamServiceClient.NewClient(
		cfg.TeamService.URL,
		time.Duration(cfg.TeamService.Timeout)*time.Second,
		log,
	)
	log.Info("Team service client initialized (url=%s, timeout=%ds)", cfg.TeamService.URL, cfg.TeamService.Timeout)

	// Публикация событий
	var publisher eventPublisher = events.Noop{}
	if cfg.Events.Enabled {
		p, err := events.NewPublisher(cfg.Events.URL, cfg.Events.Exchange)
		if err != nil {
			log.Fatal("Failed to connect to RabbitMQ: %v", err)
		}
		publisher = p
		log.Info("Booking events are published to exchange %s", cfg.Events.Exchange)
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		txMgr,
		publisher,
		metricsCollector,
		bookingsService.Config{TxTimeout: cfg.Allocation.TxTimeout()},
		log,
	)
	roomSvc := roomsService.NewService(
		roomRepository,
		directory,
		invalidator,
		log,
	)

	// Инициализируем use cases
	allocateRoomUseCase := allocateRoomUC.NewUseCase(
		bookingRepository,
		roomRepository,
		teamClient,
		locker,
		txMgr,
		publisher,
		metricsCollector,
		allocateRoomUC.Config{
			Window:                 window,
			Location:               location,
			ConferenceMinHeadcount: cfg.Allocation.ConferenceMinHeadcount,
			SeatlessAgeBelow:       cfg.Allocation.SeatlessAgeBelow,
			TxTimeout:              cfg.Allocation.TxTimeout(),
		},
		log,
	)

	getAvailableRoomsUseCase := getAvailableRoomsUC.NewUseCase(
		bookingRepository,
		directory,
		txMgr,
		getAvailableRoomsUC.Config{
			Window:   window,
			Location: location,
		},
		log,
	)

	// Инициализируем handlers
	allocateRoom := allocateRoomHandler.NewHandler(allocateRoomUseCase, log)
	getAvailableRooms := getAvailableRoomsHandler.NewHandler(getAvailableRoomsUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	listRooms := listRoomsHandler.NewHandler(roomSvc, log)
	createRoom := createRoomHandler.NewHandler(roomSvc, log)
	updateRoom := updateRoomHandler.NewHandler(roomSvc, log)
	deleteRoom := deleteRoomHandler.NewHandler(roomSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog(log))

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	if cfg.RateLimit.Enabled {
		api.Use(middleware.RateLimit(middleware.NewIPRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)))
		log.Info("Rate limit enabled (rps=%.1f, burst=%d)", cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	}

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Справочник комнат
	api.HandleFunc("/rooms", listRooms.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Комнаты ---
	// Свободные комнаты категории на слот
	protected.HandleFunc("/rooms/available", getAvailableRooms.Handle).Methods(http.MethodGet)

	// Управление комнатами (только администратор)
	protected.HandleFunc("/rooms", createRoom.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/rooms/{roomId:[0-9]+}", updateRoom.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/rooms/{roomId:[0-9]+}", deleteRoom.Handle).Methods(http.MethodDelete)

	// --- Бронирования ---
	// Распределение комнаты
	protected.HandleFunc("/bookings", allocateRoom.Handle).Methods(http.MethodPost)

	// Активные бронирования
	protected.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)

	// Получение бронирования по ID
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Отмена бронирования
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}", cancelBooking.Handle).Methods(http.MethodDelete)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	if err := publisher.Close(); err != nil {
		log.Warn("Failed to close event publisher: %v", err)
	}

	log.Info("Server stopped gracefully")
}
