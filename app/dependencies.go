package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/upb/legaltech-api/backend/config"
	"github.com/upb/legaltech-api/backend/handlers"
	"github.com/upb/legaltech-api/backend/internal/auth"
	"github.com/upb/legaltech-api/backend/middleware"
	"github.com/upb/legaltech-api/backend/repositories"
	"github.com/upb/legaltech-api/backend/repositories/postgres"
	"github.com/upb/legaltech-api/backend/services"
	"go.uber.org/zap"
)

// Dependencies holds all application dependencies.
// This is the central wiring point for dependency injection.
type Dependencies struct {
	// Infrastructure
	Config *config.Config
	DB     *postgres.DB
	Logger *zap.Logger

	// Repository Factory
	RepoFactory *postgres.RepositoryFactory

	// Repositories
	Repositories *repositories.Repositories
	TxManager    repositories.TransactionManager

	// Credentials
	Codec  *auth.Codec
	Hasher *auth.Hasher

	// Services
	Registration *services.RegistrationService
	Sessions     *services.SessionService
	Identity     *services.IdentityService

	// HTTP
	AuthMiddleware *middleware.AuthMiddleware
	HealthHandler  *handlers.HealthHandler
	AuthHandler    *handlers.AuthHandler
	UserHandler    *handlers.UserHandler

	closed bool
}

// NewDependencies creates and wires up all application dependencies.
// Pending migrations are applied first when DB_AUTO_MIGRATE is set.
func NewDependencies(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Dependencies, error) {
	if cfg.Database.AutoMigrate {
		if err := postgres.Migrate(cfg.Database.MigrationURL(), "up", logger); err != nil {
			return nil, fmt.Errorf("failed to apply migrations: %w", err)
		}
	}

	factory, err := postgres.NewRepositoryFactory(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	deps, err := NewDependenciesFromFactory(cfg, factory, logger)
	if err != nil {
		_ = factory.Close()
		return nil, err
	}

	logger.Info("all dependencies initialized successfully",
		zap.String("environment", cfg.Environment),
		zap.String("connection", cfg.Database.LogString()))
	return deps, nil
}

// NewDependenciesFromFactory wires services and handlers over an already
// opened repository factory
func NewDependenciesFromFactory(cfg *config.Config, factory *postgres.RepositoryFactory, logger *zap.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Config:      cfg,
		Logger:      logger,
		RepoFactory: factory,
		DB:          factory.GetDB(),
	}

	deps.initRepositories()

	if err := deps.initCredentials(cfg); err != nil {
		return nil, fmt.Errorf("failed to initialize credentials: %w", err)
	}

	deps.initServices(cfg)
	deps.initHandlers(cfg)

	return deps, nil
}

// initRepositories initializes all repository instances
func (d *Dependencies) initRepositories() {
	d.Repositories = d.RepoFactory.NewRepositories()
	d.TxManager = d.RepoFactory.GetTransactionManager()

	d.Logger.Info("repositories initialized")
}

func (d *Dependencies) initCredentials(cfg *config.Config) error {
	if cfg.Auth.SecretKey == "" {
		return errors.New("signing secret is not configured")
	}

	codec, err := auth.NewCodec([]byte(cfg.Auth.SecretKey), cfg.Auth.Algorithm)
	if err != nil {
		return err
	}
	d.Codec = codec
	d.Hasher = auth.NewHasher(cfg.Auth.BcryptCost)

	d.Logger.Info("credential codec initialized",
		zap.String("algorithm", codec.Algorithm()),
		zap.Duration("access_token_ttl", cfg.Auth.AccessTokenTTL),
		zap.Int("bcrypt_cost", d.Hasher.Cost()))
	return nil
}

func (d *Dependencies) initServices(cfg *config.Config) {
	d.Registration = services.NewRegistrationService(d.TxManager, d.Repositories, d.Hasher, cfg.Auth.PhoneRegion, d.Logger)
	d.Sessions = services.NewSessionService(d.Repositories, d.Hasher, d.Codec, cfg.Auth.AccessTokenTTL, d.Logger)
	d.Identity = services.NewIdentityService(d.Repositories, d.Logger)
}

func (d *Dependencies) initHandlers(cfg *config.Config) {
	d.AuthMiddleware = middleware.NewAuthMiddleware(d.Codec, d.Logger)

	// A nil *postgres.DB must not reach the interface as a typed nil
	var checker handlers.DatabaseChecker
	if d.DB != nil {
		checker = d.DB
	}
	d.HealthHandler = handlers.NewHealthHandler(checker, cfg.App, d.Logger)
	d.AuthHandler = handlers.NewAuthHandler(d.Registration, d.Sessions, cfg.IsProduction(), d.Logger)
	d.UserHandler = handlers.NewUserHandler(d.Identity, d.Logger)
}

// Close gracefully shuts down all dependencies. It is safe to call twice.
func (d *Dependencies) Close(ctx context.Context) error {
	if d.closed {
		return nil
	}
	d.closed = true
	d.Logger.Info("shutting down dependencies")

	var errs []error

	// Close database connection
	if d.RepoFactory != nil {
		if err := d.RepoFactory.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		} else {
			d.Logger.Info("database connection closed")
		}
	}

	// Sync logger
	if d.Logger != nil {
		_ = d.Logger.Sync()
	}

	return errors.Join(errs...)
}
