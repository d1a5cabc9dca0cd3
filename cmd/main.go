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

	cancelReservationHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/cancel_reservation"
	cancelTenantReservationHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/cancel_tenant_reservation"
	createReservationHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/create_reservation"
	getAvailableSlotsHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/get_available_slots"
	getCustomerReservationsHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/get_customer_reservations"
	getReservationHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/get_reservation"
	getTenantConfigHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/get_tenant_config"
	getTenantReservationsHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/get_tenant_reservations"
	markViewedHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/mark_viewed"
	runSweepHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/run_sweep"
	updateReservationHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/update_reservation"
	updateTenantConfigHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/update_tenant_config"
	"github.com/m04kA/SMC-SalonService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonService/internal/config"
	menuRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/menu"
	reservationRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/reservation"
	staffRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/staff"
	tenantRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/tenant"
	customerServiceClient "github.com/m04kA/SMC-SalonService/internal/integrations/customerservice"
	reservationsService "github.com/m04kA/SMC-SalonService/internal/service/reservations"
	tenantConfigService "github.com/m04kA/SMC-SalonService/internal/service/tenantconfig"
	"github.com/m04kA/SMC-SalonService/internal/sweeper"
	createReservationUC "github.com/m04kA/SMC-SalonService/internal/usecase/create_reservation"
	getAvailableSlotsUC "github.com/m04kA/SMC-SalonService/internal/usecase/get_available_slots"
	sweepReservationsUC "github.com/m04kA/SMC-SalonService/internal/usecase/sweep_reservations"
	updateReservationUC "github.com/m04kA/SMC-SalonService/internal/usecase/update_reservation"
	"github.com/m04kA/SMC-SalonService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonService/pkg/logger"
	"github.com/m04kA/SMC-SalonService/pkg/metrics"
	"github.com/m04kA/SMC-SalonService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-SalonService/pkg/txmanager"
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

	log.Info("Starting SMC-SalonService...")
	log.Info("Configuration loaded from config.toml")

	// Таймзона бизнеса - все бронирования интерпретируются в ней
	location, err := cfg.Business.Location()
	if err != nil {
		log.Fatal("Failed to load business timezone: %v", err)
	}
	log.Info("Business timezone: %s", location)

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

	// Инициализируем интеграционных клиентов
	customerClient := customerServiceClient.NewClient(
		cfg.CustomerService.URL,
		time.Duration(cfg.CustomerService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (CustomerService=%s timeout=%ds)",
		cfg.CustomerService.URL, cfg.CustomerService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		reservationRepository *reservationRepo.Repository
		tenantRepository      *tenantRepo.Repository
		menuRepository        *menuRepo.Repository
		staffRepository       *staffRepo.Repository
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
		reservationRepository = reservationRepo.NewRepository(wrappedDB)
		tenantRepository = tenantRepo.NewRepository(wrappedDB)
		menuRepository = menuRepo.NewRepository(wrappedDB)
		staffRepository = staffRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		// Инициализируем репозитории без метрик
		reservationRepository = reservationRepo.NewRepository(db)
		tenantRepository = tenantRepo.NewRepository(db)
		menuRepository = menuRepo.NewRepository(db)
		staffRepository = staffRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	reservationSvc := reservationsService.NewService(
		reservationRepository,
		location,
		log,
	)
	tenantConfigSvc := tenantConfigService.NewService(
		tenantRepository,
		log,
	)

	// Инициализируем use cases
	createReservationUseCase := createReservationUC.NewUseCase(
		reservationRepository,
		tenantRepository,
		menuRepository,
		staffRepository,
		customerClient,
		txMgr,
		location,
		log,
	)

	updateReservationUseCase := updateReservationUC.NewUseCase(
		reservationRepository,
		tenantRepository,
		menuRepository,
		staffRepository,
		txMgr,
		location,
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		reservationRepository,
		tenantRepository,
		menuRepository,
		staffRepository,
		location,
		log,
	)

	sweepReservationsUseCase := sweepReservationsUC.NewUseCase(
		reservationRepository,
		txMgr,
		location,
		log,
	)

	// Инициализируем handlers
	createReservation := createReservationHandler.NewHandler(createReservationUseCase, log)
	updateReservation := updateReservationHandler.NewHandler(updateReservationUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getReservation := getReservationHandler.NewHandler(reservationSvc, log)
	cancelReservation := cancelReservationHandler.NewHandler(reservationSvc, log)
	cancelTenantReservation := cancelTenantReservationHandler.NewHandler(reservationSvc, log)
	getCustomerReservations := getCustomerReservationsHandler.NewHandler(reservationSvc, log)
	getTenantReservations := getTenantReservationsHandler.NewHandler(reservationSvc, log)
	markViewed := markViewedHandler.NewHandler(reservationSvc, log)
	getTenantConfig := getTenantConfigHandler.NewHandler(tenantConfigSvc, log)
	updateTenantConfig := updateTenantConfigHandler.NewHandler(tenantConfigSvc, log)
	runSweep := runSweepHandler.NewHandler(sweepReservationsUseCase, metricsCollector, log)

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

	// ============================================================
	// INTERNAL ROUTES (защищены X-Sweep-Token)
	// ============================================================

	internal := r.PathPrefix("/internal").Subrouter()
	internal.Use(middleware.SweepAuth(cfg.Sweeper.Token))

	// Ручной запуск прохода свипера
	internal.HandleFunc("/sweep", runSweep.Handle).Methods(http.MethodPost)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Получение доступных слотов для бронирования
	api.HandleFunc("/tenants/{tenantId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// Получение настроек салона
	api.HandleFunc("/tenants/{tenantId}/config",
		getTenantConfig.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-Customer-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	// Создание бронирования
	protected.HandleFunc("/reservations", createReservation.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	protected.HandleFunc("/reservations/{reservationId}", getReservation.Handle).Methods(http.MethodGet)

	// Обновление бронирования
	protected.HandleFunc("/reservations/{reservationId}", updateReservation.Handle).Methods(http.MethodPut)

	// Отмена бронирования
	protected.HandleFunc("/reservations/{reservationId}/cancel", cancelReservation.Handle).Methods(http.MethodPatch)

	// Отметка бронирования как просмотренного менеджером
	protected.HandleFunc("/reservations/{reservationId}/viewed", markViewed.Handle).Methods(http.MethodPatch)

	// История бронирований клиента
	protected.HandleFunc("/customers/{customerId}/reservations", getCustomerReservations.Handle).Methods(http.MethodGet)

	// --- Управление салоном (для менеджеров) ---
	// Список бронирований салона
	protected.HandleFunc("/tenants/{tenantId}/reservations", getTenantReservations.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/tenants/{tenantId}/reservations/{reservationId}/cancel", cancelTenantReservation.Handle).Methods(http.MethodPatch)

	// Обновление настроек салона
	protected.HandleFunc("/tenants/{tenantId}/config", updateTenantConfig.Handle).Methods(http.MethodPut)

	// Запускаем фоновый свипер (если включен)
	sweeperCtx, stopSweeper := context.WithCancel(context.Background())
	var backgroundSweeper *sweeper.Sweeper
	if cfg.Sweeper.Enabled {
		backgroundSweeper = sweeper.New(sweepReservationsUseCase, cfg.Sweeper.Interval(), metricsCollector, log)
		backgroundSweeper.Start(sweeperCtx)
	}

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

	// Останавливаем фоновый свипер
	stopSweeper()
	if backgroundSweeper != nil {
		backgroundSweeper.Wait()
	}

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
