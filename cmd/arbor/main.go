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

	"github.com/Gobusters/ectoenv"
	"github.com/Gobusters/ectoinject"
	"github.com/Gobusters/ectoinject/ectocontainer"
	"github.com/Gobusters/ectologger"
	"github.com/Gobusters/ectologger/zapadapter"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
	"go.uber.org/zap"

	"github.com/Ramsey-B/arbor/config"
	"github.com/Ramsey-B/arbor/pkg/dashboard"
	"github.com/Ramsey-B/arbor/pkg/database"
	"github.com/Ramsey-B/arbor/pkg/events"
	"github.com/Ramsey-B/arbor/pkg/middleware"
	"github.com/Ramsey-B/arbor/pkg/models"
	"github.com/Ramsey-B/arbor/pkg/objectstore"
	"github.com/Ramsey-B/arbor/pkg/redis"
	"github.com/Ramsey-B/arbor/pkg/repositories"
	"github.com/Ramsey-B/arbor/pkg/routes/application"
	"github.com/Ramsey-B/arbor/pkg/routes/booking"
	"github.com/Ramsey-B/arbor/pkg/routes/commitment"
	"github.com/Ramsey-B/arbor/pkg/routes/contentblock"
	"github.com/Ramsey-B/arbor/pkg/routes/dashboardroute"
	"github.com/Ramsey-B/arbor/pkg/routes/documentsigning"
	"github.com/Ramsey-B/arbor/pkg/routes/experience"
	"github.com/Ramsey-B/arbor/pkg/routes/health"
	"github.com/Ramsey-B/arbor/pkg/routes/kitchen"
	"github.com/Ramsey-B/arbor/pkg/routes/lease"
	"github.com/Ramsey-B/arbor/pkg/routes/maintenancerequest"
	"github.com/Ramsey-B/arbor/pkg/routes/payment"
	"github.com/Ramsey-B/arbor/pkg/routes/space"
	"github.com/Ramsey-B/arbor/pkg/routes/tenant"
	"github.com/Ramsey-B/arbor/pkg/startup"
	"github.com/Ramsey-B/arbor/pkg/tracing"
	"github.com/Ramsey-B/arbor/pkg/tracing/exporters"
)

const version = "0.3.0"

func main() {
	_ = godotenv.Load()

	var cfg config.Config
	if err := ectoenv.BindEnv(&cfg); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zapLogger, err := newZapLogger(cfg)
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer zapLogger.Sync()
	logger := zapadapter.NewZapEctoLogger(zapLogger, nil)

	if cfg.TracingEnabled {
		exporter, err := exporters.NewOTLPExporter(context.Background(), exporters.OTLPConfig{
			Endpoint: cfg.TracingEndpoint,
			Insecure: cfg.TracingInsecure,
		})
		if err != nil {
			fatal(logger, err, "failed to create trace exporter")
		}
		tp := tracing.Init(cfg.AppName, exporter)
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = tp.Shutdown(ctx)
		}()
	}

	sqlxDB, err := sqlx.Open(cfg.DatabaseDriver, connectionString(cfg))
	if err != nil {
		fatal(logger, err, "failed to open database")
	}
	sqlxDB.SetMaxOpenConns(cfg.DatabaseMaxOpenConns)
	sqlxDB.SetMaxIdleConns(cfg.DatabaseMaxIdleConns)
	sqlxDB.SetConnMaxLifetime(cfg.DatabaseConnMaxLifetime)

	db := database.NewDatabaseInstance(sqlxDB, logger)

	store, err := objectstore.NewMinioStore(objectstore.MinioConfig{
		Endpoint:  cfg.StorageEndpoint,
		AccessKey: cfg.StorageAccessKey,
		SecretKey: cfg.StorageSecretKey,
		UseSSL:    cfg.StorageUseSSL,
		Region:    cfg.StorageRegion,
		Bucket:    cfg.StorageBucket,
	})
	if err != nil {
		fatal(logger, err, "failed to create object store")
	}

	publicBase := cfg.StoragePublicBase
	if publicBase == "" {
		publicBase = store.EndpointURL()
	}
	attachments := objectstore.NewAttachments(store, cfg.StorageBucket, publicBase)

	var redisClient *redis.Client
	var slotGuard *booking.SlotGuard
	if cfg.RedisEnabled {
		redisClient, err = redis.NewClient(redis.Config{
			Host:     cfg.RedisHost,
			Port:     cfg.RedisPort,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		}, logger)
		if err != nil {
			fatal(logger, err, "failed to connect to Redis")
		}
		defer redisClient.Close()
		slotGuard = &booking.SlotGuard{
			Locker: redis.NewLocker(redisClient, "booking:"),
			TTL:    time.Duration(cfg.BookingLockTTLSeconds) * time.Second,
		}
	}

	var producer *events.Producer
	if cfg.KafkaEnabled {
		producer = events.NewProducer(events.ProducerConfig{
			Brokers:      cfg.KafkaBrokers,
			Topic:        cfg.KafkaOutputTopic,
			BatchSize:    cfg.KafkaBatchSize,
			BatchTimeout: time.Duration(cfg.KafkaBatchTimeout) * time.Millisecond,
			RequiredAcks: cfg.KafkaRequiredAcks,
			Compression:  cfg.KafkaCompression,
		}, logger)
		defer producer.Close()
	}
	emitter := events.NewEmitter(producer)

	agg := dashboard.NewAggregator(logger)

	container, err := ectoinject.NewDIDefaultContainer()
	if err != nil {
		fatal(logger, err, "failed to create DI container")
	}

	if err := registerDependencies(container, db, logger, attachments, agg, emitter, slotGuard); err != nil {
		fatal(logger, err, "failed to register dependencies")
	}

	checker := health.NewChecker(sqlxDB, redisPinger(redisClient), version)

	e := newServer(cfg, logger)
	registerRoutes(e, checker)

	boot := startup.NewStartup(logger, cfg.StartupMaxAttempts)
	boot.AddDependency(&databaseDependency{cfg: cfg, db: sqlxDB, logger: logger})
	boot.AddDependency(&objectstoreDependency{store: store, region: cfg.StorageRegion})
	boot.AddDependency(&serverDependency{cfg: cfg, e: e, logger: logger})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := boot.Start(ctx); err != nil {
		fatal(logger, err, "startup failed")
	}
	checker.SetReady(true)

	<-ctx.Done()
	checker.SetReady(false)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := boot.Stop(shutdownCtx); err != nil {
		logger.WithError(err).Error("shutdown finished with errors")
	}
}

func fatal(logger ectologger.Logger, err error, msg string) {
	logger.WithError(err).Error(msg)
	os.Exit(1)
}

func newZapLogger(cfg config.Config) (*zap.Logger, error) {
	if cfg.PrettyLogs {
		return zap.NewDevelopment()
	}
	zapCfg := zap.NewProductionConfig()
	if level, err := zap.ParseAtomicLevel(cfg.LogLevel); err == nil {
		zapCfg.Level = level
	}
	return zapCfg.Build()
}

func connectionString(cfg config.Config) string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.DatabaseHost, cfg.DatabasePort, cfg.DatabaseUserName,
		cfg.DatabasePassword, cfg.DatabaseName, cfg.DatabaseSSLMode,
	)
}

// registerFamily wires one entity family: its repository into the DI
// container and its counts into the dashboard.
func registerFamily[T any](
	container ectocontainer.DIContainer,
	db database.DB,
	logger ectologger.Logger,
	attachments *objectstore.Attachments,
	agg *dashboard.Aggregator,
	desc models.Descriptor[T],
) error {
	repo := repositories.NewEntityRepository(db, logger, desc, attachments)
	if err := ectoinject.RegisterInstance[repositories.Store[T]](container, repo); err != nil {
		return fmt.Errorf("failed to register %s repository: %w", desc.Entity, err)
	}
	agg.Register(desc.Entity, repo)
	return nil
}

func registerDependencies(
	container ectocontainer.DIContainer,
	db database.DB,
	logger ectologger.Logger,
	attachments *objectstore.Attachments,
	agg *dashboard.Aggregator,
	emitter *events.Emitter,
	slotGuard *booking.SlotGuard,
) error {
	if err := registerFamily(container, db, logger, attachments, agg, models.KitchenDescriptor); err != nil {
		return err
	}
	if err := registerFamily(container, db, logger, attachments, agg, models.SpaceDescriptor); err != nil {
		return err
	}
	if err := registerFamily(container, db, logger, attachments, agg, models.ExperienceDescriptor); err != nil {
		return err
	}
	if err := registerFamily(container, db, logger, attachments, agg, models.ContentBlockDescriptor); err != nil {
		return err
	}
	if err := registerFamily(container, db, logger, attachments, agg, models.TenantDescriptor); err != nil {
		return err
	}
	if err := registerFamily(container, db, logger, attachments, agg, models.CommitmentDescriptor); err != nil {
		return err
	}
	if err := registerFamily(container, db, logger, attachments, agg, models.ApplicationDescriptor); err != nil {
		return err
	}
	if err := registerFamily(container, db, logger, attachments, agg, models.LeaseDescriptor); err != nil {
		return err
	}
	if err := registerFamily(container, db, logger, attachments, agg, models.PaymentDescriptor); err != nil {
		return err
	}
	if err := registerFamily(container, db, logger, attachments, agg, models.MaintenanceRequestDescriptor); err != nil {
		return err
	}
	if err := registerFamily(container, db, logger, attachments, agg, models.BookingDescriptor); err != nil {
		return err
	}
	if err := registerFamily(container, db, logger, attachments, agg, models.DocumentSigningDescriptor); err != nil {
		return err
	}

	if err := ectoinject.RegisterInstance[*dashboard.Aggregator](container, agg); err != nil {
		return fmt.Errorf("failed to register aggregator: %w", err)
	}
	if emitter != nil {
		if err := ectoinject.RegisterInstance[*events.Emitter](container, emitter); err != nil {
			return fmt.Errorf("failed to register event emitter: %w", err)
		}
	}
	if slotGuard != nil {
		if err := ectoinject.RegisterInstance[*booking.SlotGuard](container, slotGuard); err != nil {
			return fmt.Errorf("failed to register slot guard: %w", err)
		}
	}
	return nil
}

func newServer(cfg config.Config, logger ectologger.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = middleware.Error(logger)

	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.AllowOrigins,
		AllowMethods: cfg.AllowMethods,
	}))
	e.Use(otelecho.Middleware(cfg.AppName))
	e.Use(middleware.Context())
	e.Use(middleware.Logger(logger))
	e.Use(middleware.Metrics())

	if cfg.AuthEnabled {
		auth, err := middleware.Authentication(logger, cfg.AuthIssuerURL, cfg.AuthClientID)
		if err != nil {
			fatal(logger, err, "failed to create auth middleware")
		}
		e.Use(auth)
	}

	return e
}

func registerRoutes(e *echo.Echo, checker *health.Checker) {
	checker.RegisterRoutes(e)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api/v1")
	kitchen.Register(api.Group("/kitchens"))
	space.Register(api.Group("/spaces"))
	experience.Register(api.Group("/experiences"))
	contentblock.Register(api.Group("/content-blocks"))
	tenant.Register(api.Group("/tenants"))
	commitment.Register(api.Group("/commitments"))
	application.Register(api.Group("/applications"))
	lease.Register(api.Group("/leases"))
	payment.Register(api.Group("/payments"))
	maintenancerequest.Register(api.Group("/maintenance-requests"))
	booking.Register(api.Group("/bookings"))
	documentsigning.Register(api.Group("/document-signings"))
	dashboardroute.Register(api.Group("/dashboard"))
}

// redisPinger adapts an optional client for the health checker without
// handing it a typed nil.
func redisPinger(client *redis.Client) interface{ Ping(context.Context) error } {
	if client == nil {
		return nil
	}
	return client
}

// databaseDependency pings the database and runs migrations on startup.
type databaseDependency struct {
	cfg    config.Config
	db     *sqlx.DB
	logger ectologger.Logger
}

func (d *databaseDependency) GetName() string { return "database" }
func (d *databaseDependency) DependsOn() []string { return nil }

func (d *databaseDependency) Start(ctx context.Context) error {
	if err := d.db.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	driver, err := postgres.WithInstance(d.db.DB, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	ms := database.NewMigrationService(d.logger, &database.MigrationConfig{
		MigrationFolderPath: d.cfg.DatabaseMigrationFolderPath,
		Version:             uint(d.cfg.DatabaseMigrationVersion),
		Force:               d.cfg.DatabaseMigrationForce,
		AutoRollback:        d.cfg.DatabaseMigrationAutoRollback,
	})
	return ms.Migrate(d.cfg.DatabaseName, driver)
}

func (d *databaseDependency) Stop(ctx context.Context) error {
	return d.db.Close()
}

// objectstoreDependency makes sure the attachment bucket exists.
type objectstoreDependency struct {
	store  *objectstore.MinioStore
	region string
}

func (d *objectstoreDependency) GetName() string { return "objectstore" }
func (d *objectstoreDependency) DependsOn() []string { return nil }

func (d *objectstoreDependency) Start(ctx context.Context) error {
	return d.store.EnsureBucket(ctx, d.region)
}

func (d *objectstoreDependency) Stop(ctx context.Context) error { return nil }

// serverDependency runs the HTTP listener.
type serverDependency struct {
	cfg    config.Config
	e      *echo.Echo
	logger ectologger.Logger
}

func (d *serverDependency) GetName() string { return "http-server" }
func (d *serverDependency) DependsOn() []string { return []string{"database", "objectstore"} }

func (d *serverDependency) Start(ctx context.Context) error {
	d.e.Server.ReadTimeout = time.Duration(d.cfg.HttpServerReadTimeoutSeconds) * time.Second
	d.e.Server.WriteTimeout = time.Duration(d.cfg.HttpServerWriteTimeoutSeconds) * time.Second
	d.e.Server.IdleTimeout = time.Duration(d.cfg.HttpServerIdleTimeoutSeconds) * time.Second

	go func() {
		addr := fmt.Sprintf(":%d", d.cfg.Port)
		d.logger.Infof("Listening on %s", addr)
		if err := d.e.Start(addr); err != nil && err != http.ErrServerClosed {
			d.logger.WithError(err).Error("HTTP server stopped unexpectedly")
			os.Exit(1)
		}
	}()
	return nil
}

func (d *serverDependency) Stop(ctx context.Context) error {
	return d.e.Shutdown(ctx)
}
