package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelAppointmentHandler "github.com/m04kA/SSC-SchedulingService/internal/api/handlers/cancel_appointment"
	cancelUserAppointmentsHandler "github.com/m04kA/SSC-SchedulingService/internal/api/handlers/cancel_user_appointments"
	createAppointmentHandler "github.com/m04kA/SSC-SchedulingService/internal/api/handlers/create_appointment"
	deleteAppointmentHandler "github.com/m04kA/SSC-SchedulingService/internal/api/handlers/delete_appointment"
	deleteUserAppointmentsHandler "github.com/m04kA/SSC-SchedulingService/internal/api/handlers/delete_user_appointments"
	getAppointmentHandler "github.com/m04kA/SSC-SchedulingService/internal/api/handlers/get_appointment"
	getBlackoutHandler "github.com/m04kA/SSC-SchedulingService/internal/api/handlers/get_blackout"
	getUnitAppointmentsHandler "github.com/m04kA/SSC-SchedulingService/internal/api/handlers/get_unit_appointments"
	getUnitBlackoutsHandler "github.com/m04kA/SSC-SchedulingService/internal/api/handlers/get_unit_blackouts"
	getUserAppointmentsHandler "github.com/m04kA/SSC-SchedulingService/internal/api/handlers/get_user_appointments"
	listAppointmentsHandler "github.com/m04kA/SSC-SchedulingService/internal/api/handlers/list_appointments"
	listBlackoutsHandler "github.com/m04kA/SSC-SchedulingService/internal/api/handlers/list_blackouts"
	registerBlackoutHandler "github.com/m04kA/SSC-SchedulingService/internal/api/handlers/register_blackout"
	updateAppointmentHandler "github.com/m04kA/SSC-SchedulingService/internal/api/handlers/update_appointment"
	updateBlackoutHandler "github.com/m04kA/SSC-SchedulingService/internal/api/handlers/update_blackout"
	"github.com/m04kA/SSC-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SSC-SchedulingService/internal/config"
	appointmentRepo "github.com/m04kA/SSC-SchedulingService/internal/infra/storage/appointment"
	blackoutRepo "github.com/m04kA/SSC-SchedulingService/internal/infra/storage/blackout"
	userRepo "github.com/m04kA/SSC-SchedulingService/internal/infra/storage/user"
	appointmentsService "github.com/m04kA/SSC-SchedulingService/internal/service/appointments"
	availabilityService "github.com/m04kA/SSC-SchedulingService/internal/service/availability"
	blackoutsService "github.com/m04kA/SSC-SchedulingService/internal/service/blackouts"
	"github.com/m04kA/SSC-SchedulingService/internal/timeslot"
	createAppointmentUC "github.com/m04kA/SSC-SchedulingService/internal/usecase/create_appointment"
	registerBlackoutUC "github.com/m04kA/SSC-SchedulingService/internal/usecase/register_blackout"
	updateAppointmentUC "github.com/m04kA/SSC-SchedulingService/internal/usecase/update_appointment"
	updateBlackoutUC "github.com/m04kA/SSC-SchedulingService/internal/usecase/update_blackout"
	"github.com/m04kA/SSC-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/SSC-SchedulingService/pkg/logger"
	"github.com/m04kA/SSC-SchedulingService/pkg/metrics"
	"github.com/m04kA/SSC-SchedulingService/pkg/simpletxmanager"
	"github.com/m04kA/SSC-SchedulingService/pkg/txmanager"
)

// TxManager управление транзакциями для use cases
type TxManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

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

	log.Info("Starting SSC-SchedulingService...")
	log.Info("Configuration loaded from config.toml")

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

	// Применяем миграции схемы (если включены)
	if cfg.Migrations.Enabled {
		if err := runMigrations(db, cfg.Migrations.Path); err != nil {
			log.Fatal("Failed to run migrations: %v", err)
		}
		log.Info("Database migrations applied from %s", cfg.Migrations.Path)
	}

	// Нормализация времени: все гражданские правила сервиса считаются
	// в одном фиксированном часовом поясе
	norm, err := timeslot.NewNormalizer(cfg.Service.Timezone)
	if err != nil {
		log.Fatal("Failed to load service timezone %q: %v", cfg.Service.Timezone, err)
	}
	log.Info("Service timezone: %s", cfg.Service.Timezone)

	windowValidator := timeslot.NewWindowValidator(norm, timeslot.WindowConfig{
		CreationStartHour:  cfg.Service.CreationStartHour,
		CreationEndHour:    cfg.Service.CreationEndHour,
		OperatingStartHour: cfg.Service.OperatingStartHour,
		OperatingEndHour:   cfg.Service.OperatingEndHour,
		ExcludedWeekdays:   cfg.Service.Weekdays(),
	})

	// Инициализируем репозитории и transaction manager (с метриками или без)
	var (
		appointmentRepository *appointmentRepo.Repository
		blackoutRepository    *blackoutRepo.Repository
		userRepository        *userRepo.Repository
		txMgr                 TxManager
	)

	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		appointmentRepository = appointmentRepo.NewRepository(wrappedDB, norm.Location())
		blackoutRepository = blackoutRepo.NewRepository(wrappedDB)
		userRepository = userRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		appointmentRepository = appointmentRepo.NewRepository(db, norm.Location())
		blackoutRepository = blackoutRepo.NewRepository(db)
		userRepository = userRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	availabilitySvc := availabilityService.NewService(
		userRepository,
		appointmentRepository,
		blackoutRepository,
		norm,
		availabilityService.Config{
			MorningMultiplier:   cfg.Service.MorningMultiplier,
			AfternoonMultiplier: cfg.Service.AfternoonMultiplier,
			Overrides:           capacityOverrides(cfg),
		},
		log,
	)
	appointmentSvc := appointmentsService.NewService(appointmentRepository, userRepository, log)
	blackoutSvc := blackoutsService.NewService(blackoutRepository, log)

	// Инициализируем use cases
	createAppointmentUseCase := createAppointmentUC.New(
		appointmentRepository,
		userRepository,
		availabilitySvc,
		windowValidator,
		norm,
		txMgr,
		&createAppointmentUC.RealTimeProvider{},
		log,
	)
	updateAppointmentUseCase := updateAppointmentUC.New(
		appointmentRepository,
		userRepository,
		availabilitySvc,
		windowValidator,
		norm,
		txMgr,
		&updateAppointmentUC.RealTimeProvider{},
		log,
	)
	registerBlackoutUseCase := registerBlackoutUC.New(
		blackoutRepository,
		appointmentRepository,
		userRepository,
		txMgr,
		log,
	)
	updateBlackoutUseCase := updateBlackoutUC.New(
		blackoutRepository,
		appointmentRepository,
		userRepository,
		txMgr,
		log,
	)

	// Инициализируем handlers
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	updateAppointment := updateAppointmentHandler.NewHandler(updateAppointmentUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentSvc, log)
	listAppointments := listAppointmentsHandler.NewHandler(appointmentSvc, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentSvc, log)
	deleteAppointment := deleteAppointmentHandler.NewHandler(appointmentSvc, log)
	getUserAppointments := getUserAppointmentsHandler.NewHandler(appointmentSvc, log)
	cancelUserAppointments := cancelUserAppointmentsHandler.NewHandler(appointmentSvc, log)
	deleteUserAppointments := deleteUserAppointmentsHandler.NewHandler(appointmentSvc, log)
	getUnitAppointments := getUnitAppointmentsHandler.NewHandler(appointmentSvc, log)
	registerBlackout := registerBlackoutHandler.NewHandler(registerBlackoutUseCase, log)
	updateBlackout := updateBlackoutHandler.NewHandler(updateBlackoutUseCase, log)
	getBlackout := getBlackoutHandler.NewHandler(blackoutSvc, log)
	listBlackouts := listBlackoutsHandler.NewHandler(blackoutSvc, log)
	getUnitBlackouts := getUnitBlackoutsHandler.NewHandler(blackoutSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware и endpoint (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Чтение блокировок доступно без авторизации
	api.HandleFunc("/blackouts", listBlackouts.Handle).Methods(http.MethodGet)
	api.HandleFunc("/blackouts/{blackoutId}", getBlackout.Handle).Methods(http.MethodGet)
	api.HandleFunc("/units/{unitId}/blackouts", getUnitBlackouts.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Записи на прием ---
	protected.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/appointments", listAppointments.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{appointmentId}", updateAppointment.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/appointments/{appointmentId}", deleteAppointment.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/appointments/{appointmentId}/cancel", cancelAppointment.Handle).Methods(http.MethodPatch)

	// --- Записи пользователя ---
	protected.HandleFunc("/users/{userId}/appointments", getUserAppointments.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/users/{userId}/appointments", deleteUserAppointments.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/users/{userId}/appointments/cancel", cancelUserAppointments.Handle).Methods(http.MethodPatch)

	// --- Записи подразделения ---
	protected.HandleFunc("/units/{unitId}/appointments", getUnitAppointments.Handle).Methods(http.MethodGet)

	// --- Блокировки ---
	protected.HandleFunc("/blackouts", registerBlackout.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/blackouts/{blackoutId}", updateBlackout.Handle).Methods(http.MethodPatch)

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

// runMigrations применяет миграции схемы из указанного каталога
func runMigrations(db *sql.DB, path string) error {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("migrations: create driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance("file://"+path, "postgres", driver)
	if err != nil {
		return fmt.Errorf("migrations: create migrator: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrations: apply: %w", err)
	}

	return nil
}

// capacityOverrides конвертирует переопределения вместимости из конфигурации
func capacityOverrides(cfg *config.Config) []availabilityService.CapacityOverride {
	overrides := make([]availabilityService.CapacityOverride, 0, len(cfg.Service.CapacityOverrides))
	for _, o := range cfg.Service.CapacityOverrides {
		overrides = append(overrides, availabilityService.CapacityOverride{
			UnitID:     o.UnitID,
			StartHour:  o.StartHour,
			EndHour:    o.EndHour,
			Multiplier: o.Multiplier,
		})
	}
	return overrides
}
