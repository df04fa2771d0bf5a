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

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelBookingHandler "github.com/m04kA/FitGrid-BookingService/internal/api/handlers/cancel_booking"
	checkinBookingHandler "github.com/m04kA/FitGrid-BookingService/internal/api/handlers/checkin_booking"
	createBookingHandler "github.com/m04kA/FitGrid-BookingService/internal/api/handlers/create_booking"
	createStudioHandler "github.com/m04kA/FitGrid-BookingService/internal/api/handlers/create_studio"
	getAvailableSlotsHandler "github.com/m04kA/FitGrid-BookingService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/FitGrid-BookingService/internal/api/handlers/get_booking"
	getStudioHandler "github.com/m04kA/FitGrid-BookingService/internal/api/handlers/get_studio"
	getStudioBookingsHandler "github.com/m04kA/FitGrid-BookingService/internal/api/handlers/get_studio_bookings"
	getUserBookingsHandler "github.com/m04kA/FitGrid-BookingService/internal/api/handlers/get_user_bookings"
	listStudiosHandler "github.com/m04kA/FitGrid-BookingService/internal/api/handlers/list_studios"
	yieldScanHandler "github.com/m04kA/FitGrid-BookingService/internal/api/handlers/yield_scan"
	"github.com/m04kA/FitGrid-BookingService/internal/api/middleware"
	"github.com/m04kA/FitGrid-BookingService/internal/config"
	paymentConsumer "github.com/m04kA/FitGrid-BookingService/internal/consumer/payment"
	bookingRepo "github.com/m04kA/FitGrid-BookingService/internal/infra/storage/booking"
	studioRepo "github.com/m04kA/FitGrid-BookingService/internal/infra/storage/studio"
	planServiceClient "github.com/m04kA/FitGrid-BookingService/internal/integrations/planservice"
	bookingsService "github.com/m04kA/FitGrid-BookingService/internal/service/bookings"
	studiosService "github.com/m04kA/FitGrid-BookingService/internal/service/studios"
	cancelBookingUC "github.com/m04kA/FitGrid-BookingService/internal/usecase/cancel_booking"
	confirmPaymentUC "github.com/m04kA/FitGrid-BookingService/internal/usecase/confirm_payment"
	createBookingUC "github.com/m04kA/FitGrid-BookingService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/FitGrid-BookingService/internal/usecase/get_available_slots"
	scanYieldUC "github.com/m04kA/FitGrid-BookingService/internal/usecase/scan_yield"
	"github.com/m04kA/FitGrid-BookingService/pkg/dbmetrics"
	"github.com/m04kA/FitGrid-BookingService/pkg/logger"
	"github.com/m04kA/FitGrid-BookingService/pkg/metrics"
	"github.com/m04kA/FitGrid-BookingService/pkg/mq"
	"github.com/m04kA/FitGrid-BookingService/pkg/simpletxmanager"
	"github.com/m04kA/FitGrid-BookingService/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
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

	log.Info("Starting FitGrid-BookingService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
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

	// Инициализируем клиент PlanService
	planClient := planServiceClient.NewClient(
		cfg.PlanService.URL,
		time.Duration(cfg.PlanService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (PlanService=%s timeout=%ds)",
		cfg.PlanService.URL, cfg.PlanService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository *bookingRepo.Repository
		studioRepository  *studioRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		// Инициализируем репозитории с обёрткой метрик
		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		studioRepository = studioRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		// Инициализируем репозитории без метрик
		bookingRepository = bookingRepo.NewRepository(db)
		studioRepository = studioRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		studioRepository,
		log,
	)
	studioSvc := studiosService.NewService(studioRepository, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		studioRepository,
		planClient,
		txMgr,
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		bookingRepository,
		studioRepository,
		log,
	)

	cancelBookingUseCase := cancelBookingUC.NewUseCase(
		bookingRepository,
		txMgr,
		log,
	)

	confirmPaymentUseCase := confirmPaymentUC.NewUseCase(
		bookingRepository,
		studioRepository,
		txMgr,
		log,
	)

	// Подключаемся к RabbitMQ (если сконфигурирован)
	var promoPublisher *mq.Publisher
	if cfg.RabbitMQ.URL != "" {
		promoPublisher, err = mq.NewPublisher(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange)
		if err != nil {
			log.Fatal("Failed to connect publisher to RabbitMQ: %v", err)
		}
		defer promoPublisher.Close()
		log.Info("RabbitMQ publisher connected (exchange=%s)", cfg.RabbitMQ.Exchange)
	} else {
		log.Warn("RabbitMQ is not configured, promo offers will not be published")
	}

	// Промо-публикация работает в режиме "только отчёт", если брокера нет
	var scanYieldUseCase *scanYieldUC.UseCase
	if promoPublisher != nil {
		scanYieldUseCase = scanYieldUC.NewUseCase(getAvailableSlotsUseCase, planClient, promoPublisher, log)
	} else {
		scanYieldUseCase = scanYieldUC.NewUseCase(getAvailableSlotsUseCase, planClient, nil, log)
	}

	// Запускаем консьюмер подтверждённых платежей (если брокер сконфигурирован)
	consumerCtx, stopConsumer := context.WithCancel(context.Background())
	defer stopConsumer()

	if cfg.RabbitMQ.URL != "" {
		mqConsumer, err := mq.NewConsumer(
			cfg.RabbitMQ.URL,
			cfg.RabbitMQ.Exchange,
			cfg.RabbitMQ.PaymentQueue,
			[]string{paymentConsumer.RoutingKey},
		)
		if err != nil {
			log.Fatal("Failed to connect consumer to RabbitMQ: %v", err)
		}
		defer mqConsumer.Close()

		deliveries, err := mqConsumer.Deliveries(consumerCtx)
		if err != nil {
			log.Fatal("Failed to start consuming payment events: %v", err)
		}

		consumer := paymentConsumer.NewConsumer(deliveries, confirmPaymentUseCase, log)
		go consumer.Run(consumerCtx)
		log.Info("Payment events consumer started (queue=%s, key=%s)",
			cfg.RabbitMQ.PaymentQueue, paymentConsumer.RoutingKey)
	}

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	cancelBooking := cancelBookingHandler.NewHandler(cancelBookingUseCase, log)
	checkinBooking := checkinBookingHandler.NewHandler(bookingSvc, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getStudioBookings := getStudioBookingsHandler.NewHandler(bookingSvc, log)
	createStudio := createStudioHandler.NewHandler(studioSvc, log)
	getStudio := getStudioHandler.NewHandler(studioSvc, log)
	listStudios := listStudiosHandler.NewHandler(studioSvc, log)
	yieldScan := yieldScanHandler.NewHandler(scanYieldUseCase, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Список студий
	api.HandleFunc("/studios", listStudios.Handle).Methods(http.MethodGet)

	// Карточка студии
	api.HandleFunc("/studios/{studioId}", getStudio.Handle).Methods(http.MethodGet)

	// Получение доступных слотов для записи
	api.HandleFunc("/studios/{studioId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Записи на занятия ---
	// Создание записи
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Получение записи по ID
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Отмена записи
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// Отметка посещения
	protected.HandleFunc("/bookings/{bookingId}/checkin", checkinBooking.Handle).Methods(http.MethodPatch)

	// История записей пользователя
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// ============================================================
	// ADMIN ROUTES (требуют роль admin)
	// ============================================================

	admin := api.PathPrefix("").Subrouter()
	admin.Use(middleware.Auth, middleware.RequireAdmin)

	// Создание студии
	admin.HandleFunc("/studios", createStudio.Handle).Methods(http.MethodPost)

	// Список записей студии
	admin.HandleFunc("/studios/{studioId}/bookings", getStudioBookings.Handle).Methods(http.MethodGet)

	// Сканирование недозаполненных слотов
	admin.HandleFunc("/studios/{studioId}/yield-scan", yieldScan.Handle).Methods(http.MethodPost)

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

	// Останавливаем консьюмер платежей
	stopConsumer()

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
