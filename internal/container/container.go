package container

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/gin-gonic/gin"

	"safetyportal/database"
	"safetyportal/importer"
	"safetyportal/internal/api/handlers/account"
	"safetyportal/internal/api/handlers/manufacturers"
	"safetyportal/internal/api/handlers/orders"
	"safetyportal/internal/api/handlers/partners"
	"safetyportal/internal/api/handlers/products"
	"safetyportal/internal/api/handlers/reminders"
	"safetyportal/internal/api/handlers/similarity"
	"safetyportal/internal/api/routes"
	"safetyportal/internal/auth"
	"safetyportal/internal/config"
	"safetyportal/internal/domain/duplicates"
	"safetyportal/internal/domain/manufacturer"
	"safetyportal/internal/domain/order"
	"safetyportal/internal/domain/partner"
	"safetyportal/internal/domain/product"
	"safetyportal/internal/domain/reminder"
	"safetyportal/internal/domain/repositories"
	"safetyportal/internal/domain/user"
	"safetyportal/internal/infrastructure/persistence"
	"safetyportal/internal/infrastructure/workers"
	"safetyportal/server/monitoring"
)

// Version версия сборки, отдается в /health
var Version = "1.0.0"

// Container контейнер зависимостей портала.
// Управляет жизненным циклом всех компонентов приложения
type Container struct {
	mu sync.Mutex

	// Конфигурация
	Config *config.Config
	Logger *slog.Logger

	// База данных
	ServiceDB *database.ServiceDB

	// Сервисы (бизнес-логика)
	Users         user.Service
	Manufacturers manufacturer.Service
	Partners      partner.Service
	Products      product.Service
	Orders        order.Service
	Reminders     reminder.Service

	// Инфраструктурные компоненты
	Auth               *auth.Manager
	PDFReader          *importer.PDFReader
	ManufacturerImport *importer.ManufacturerImporter
	ReminderDispatcher *workers.ReminderDispatcher

	// Мониторинг
	HealthChecker *monitoring.HealthChecker
	Metrics       *monitoring.Metrics

	// Обработчики (HTTP handlers)
	Handlers routes.Handlers
	Router   *gin.Engine

	initialized bool
	closed      bool
}

// NewContainer создает новый контейнер зависимостей
func NewContainer(cfg *config.Config, logger *slog.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Container{Config: cfg, Logger: logger}, nil
}

// Initialize инициализирует все зависимости контейнера.
// База данных открывается и мигрируется здесь же
func (c *Container) Initialize() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.initialized {
		return fmt.Errorf("container already initialized")
	}

	// Шаг 1: база данных
	if err := c.initDatabase(); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	// Шаг 2: мониторинг, он нужен сервисам как приемник событий
	c.initMonitoring()

	// Шаг 3: сервисы
	if err := c.initServices(); err != nil {
		c.ServiceDB.Close()
		return fmt.Errorf("failed to initialize services: %w", err)
	}

	// Шаг 4: обработчики и маршруты
	c.initHandlers()

	c.initialized = true
	c.Logger.Info("container initialized", "database", c.ServiceDB.Path())
	return nil
}

// initDatabase открывает БД и применяет миграции
func (c *Container) initDatabase() error {
	db, err := database.NewServiceDBWithConfig(c.Config.DatabasePath, database.DBConfig{
		MaxOpenConns:    c.Config.MaxOpenConns,
		MaxIdleConns:    c.Config.MaxIdleConns,
		ConnMaxLifetime: c.Config.ConnMaxLifetime,
	})
	if err != nil {
		return err
	}

	if err := db.Migrate(); err != nil {
		db.Close()
		return err
	}

	c.ServiceDB = db
	return nil
}

func (c *Container) initMonitoring() {
	c.Metrics = monitoring.NewMetrics()
	c.HealthChecker = monitoring.NewHealthChecker(Version, c.ServiceDB)
}

func (c *Container) initServices() error {
	dupConfig := duplicates.Config{
		Threshold: c.Config.DuplicateThreshold,
		Strict:    c.Config.DuplicateCheckStrict,
	}

	partnerRepos := make([]repositories.PartnerRepository, 0, len(repositories.PartnerKinds))
	for _, kind := range repositories.PartnerKinds {
		repo, err := persistence.NewPartnerRepository(c.ServiceDB, kind)
		if err != nil {
			return err
		}
		partnerRepos = append(partnerRepos, repo)
	}

	orderRepo := persistence.NewOrderRepository(c.ServiceDB)

	c.Auth = auth.NewManager(c.Config.JWTSecret, c.Config.JWTIssuer, c.Config.JWTTTL)
	c.PDFReader = importer.NewPDFReader(c.Config.PDFMaxUploadBytes)

	c.Users = user.NewService(persistence.NewUserRepository(c.ServiceDB), c.Auth, c.Logger)
	c.Manufacturers = manufacturer.NewService(persistence.NewManufacturerRepository(c.ServiceDB), dupConfig, c.Metrics, c.Logger)
	c.Partners = partner.NewService(partnerRepos, dupConfig, c.Metrics, c.Logger)
	c.Products = product.NewService(persistence.NewProductRepository(c.ServiceDB), dupConfig, c.Metrics, c.Logger)
	c.Orders = order.NewService(orderRepo, c.PDFReader, order.Config{
		Duplicates:     dupConfig,
		MaxUploadBytes: c.Config.PDFMaxUploadBytes,
	}, c.Metrics, c.Metrics, c.Logger)
	c.Reminders = reminder.NewService(persistence.NewReminderRepository(c.ServiceDB), orderRepo, c.Logger)

	c.ManufacturerImport = importer.NewManufacturerImporter(c.Manufacturers, c.Logger)

	if c.Config.ReminderEnabled {
		c.ReminderDispatcher = workers.NewReminderDispatcher(c.Reminders, c.Config.ReminderInterval, c.Metrics, c.Logger)
		c.HealthChecker.RegisterComponent("reminders", c.ReminderDispatcher.HealthCheck)
	}

	return nil
}

func (c *Container) initHandlers() {
	c.Handlers = routes.Handlers{
		Account:       account.NewHandler(c.Users),
		Manufacturers: manufacturers.NewHandler(c.Manufacturers, c.ManufacturerImport),
		Partners:      partners.NewHandler(c.Partners),
		Products:      products.NewHandler(c.Products),
		Orders:        orders.NewHandler(c.Orders, c.Config.PDFMaxUploadBytes),
		Reminders:     reminders.NewHandler(c.Reminders),
		Similarity:    similarity.NewHandler(c.Config.DuplicateThreshold),
	}

	c.Router = routes.NewRouter(c.Handlers, routes.Dependencies{
		Auth:    c.Auth,
		Health:  c.HealthChecker,
		Metrics: c.Metrics,
		Logger:  c.Logger,
	}, routes.Options{
		AllowedOrigins: c.Config.AllowedOrigins,
		LoginRate:      c.Config.LoginRatePerSec,
		LoginBurst:     c.Config.LoginBurst,
		EnableSwagger:  c.Config.SwaggerEnabled,
	})
}

// EnsureAdmin создает администратора из конфигурации, если пользователей еще нет
func (c *Container) EnsureAdmin(ctx context.Context) error {
	if c.Config.AdminUsername == "" {
		return nil
	}

	created, err := c.Users.EnsureAdmin(ctx, c.Config.AdminUsername, c.Config.AdminPassword)
	if err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}
	if created {
		c.Logger.Info("admin user created", "username", c.Config.AdminUsername)
	}
	return nil
}

// StartWorkers запускает фоновые обработчики, они останавливаются с отменой ctx
func (c *Container) StartWorkers(ctx context.Context) {
	if c.ReminderDispatcher != nil {
		go c.ReminderDispatcher.Run(ctx)
	}
}

// Shutdown корректно завершает работу контейнера
func (c *Container) Shutdown() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized || c.closed {
		return nil
	}
	c.closed = true

	var errs []error
	if c.ServiceDB != nil {
		if err := c.ServiceDB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		}
	}

	c.Logger.Info("container shut down")
	return errors.Join(errs...)
}
