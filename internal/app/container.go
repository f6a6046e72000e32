package app

import (
	"context"
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/HariStrange/drive-Vault/domain"
	"github.com/HariStrange/drive-Vault/internal/config"
	httpx "github.com/HariStrange/drive-Vault/internal/http"
	"github.com/HariStrange/drive-Vault/internal/http/handlers"
	"github.com/HariStrange/drive-Vault/internal/http/middleware"
	"github.com/HariStrange/drive-Vault/internal/infrastructure/auth"
	"github.com/HariStrange/drive-Vault/internal/infrastructure/database"
	"github.com/HariStrange/drive-Vault/internal/infrastructure/notifications"
	"github.com/HariStrange/drive-Vault/internal/infrastructure/repositories"
	"github.com/HariStrange/drive-Vault/internal/infrastructure/storage"
	"github.com/HariStrange/drive-Vault/internal/services"
)

// Container holds all dependencies
type Container struct {
	// Config
	Config *config.Config

	// Infrastructure
	DB          *gorm.DB
	RedisClient *redis.Client
	Casbin      *auth.CasbinService
	Storage     domain.FileStorage

	// Repositories
	UserRepo         domain.UserRepository
	VerificationRepo domain.VerificationRepository
	PassportRepo     domain.PassportRepository
	QuizRepo         domain.QuizRepository
	ThrottleRepo     domain.ThrottleRepository

	// Services
	Audit           domain.AuditLogger
	PasswordSvc     domain.PasswordService
	TokenSvc        domain.TokenService
	NotificationSvc domain.NotificationService
	AuthSvc         domain.AuthService
	UserSvc         domain.UserService
	PassportSvc     domain.PassportService
	QuizSvc         domain.QuizService
	AssignmentSvc   domain.AssignmentService
	PolicySvc       domain.PolicyService

	Router *gin.Engine
}

// NewContainer opens Postgres and Redis from cfg and wires everything on top
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	db, err := database.Open(cfg.DSN, database.Options{
		Schema:           cfg.DBSchema,
		MaxOpenConns:     cfg.DBMaxOpenConns,
		StatementTimeout: cfg.StatementTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}
	if err := database.EnsureSchema(db, cfg.DBSchema); err != nil {
		_ = closeDB(db)
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	rdb, err := connectRedis(ctx, cfg, db)
	if err != nil {
		return nil, err
	}
	return NewContainerWith(cfg, db, rdb)
}

// connectRedis pings Redis; on failure the already open db is closed too
func connectRedis(ctx context.Context, cfg *config.Config, db *gorm.DB) (*redis.Client, error) {
	rdb := database.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err := rdb.Ping(ctx); err != nil {
		rdb.Close()
		if cerr := closeDB(db); cerr != nil {
			log.Printf("EVENT: db_close_failed error=%q", cerr)
		}
		return nil, fmt.Errorf("failed to connect redis: %w", err)
	}
	return rdb.Client, nil
}

func closeDB(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// NewContainerWith wires the service over already-open connections
func NewContainerWith(cfg *config.Config, db *gorm.DB, rdb *redis.Client) (*Container, error) {
	c := &Container{Config: cfg, DB: db, RedisClient: rdb}

	if err := database.AutoMigrate(db); err != nil {
		return nil, err
	}
	if err := c.initInfrastructure(); err != nil {
		c.Close()
		return nil, err
	}
	c.initRepositories()
	c.initServices()
	c.initRouter()
	return c, nil
}

func (c *Container) initInfrastructure() error {
	cas, err := auth.NewCasbinService(c.DB, c.Config.CasbinModelPath)
	if err != nil {
		return fmt.Errorf("failed to init casbin: %w", err)
	}
	if err := auth.SeedDefaults(cas.E); err != nil {
		return err
	}
	c.Casbin = cas

	disk, err := storage.NewDiskStorage(c.Config.UploadRoot, c.Config.UploadMaxBytes)
	if err != nil {
		return err
	}
	c.Storage = disk

	mailer, err := notifications.NewSMTPMailer(c.Config.SMTPHost, c.Config.SMTPPort,
		c.Config.SMTPUser, c.Config.SMTPPass, c.Config.SMTPFrom)
	if err != nil {
		return err
	}
	sms := notifications.NewTwilioSender(c.Config.TwilioSID, c.Config.TwilioToken, c.Config.TwilioFrom)
	c.NotificationSvc = notifications.NewNotificationService(mailer, sms)
	return nil
}

func (c *Container) initRepositories() {
	c.UserRepo = repositories.NewUserRepository(c.DB)
	c.VerificationRepo = repositories.NewVerificationRepository(c.DB)
	c.PassportRepo = repositories.NewPassportRepository(c.DB)
	c.QuizRepo = repositories.NewQuizRepository(c.DB)
	c.ThrottleRepo = repositories.NewThrottleRepository(c.RedisClient)
}

func (c *Container) initServices() {
	c.Audit = services.NewLogAuditLogger(log.Default())
	c.PasswordSvc = auth.NewPasswordService(0)
	c.TokenSvc = auth.NewJWTService(c.Config.JWTSecret, c.Config.JWTIssuer, c.Config.AccessTTL)

	c.AuthSvc = services.NewAuthService(
		c.UserRepo,
		c.VerificationRepo,
		c.ThrottleRepo,
		c.PasswordSvc,
		c.TokenSvc,
		c.NotificationSvc,
		c.Audit,
		services.AuthConfig{
			CodeTTL:        c.Config.CodeTTL,
			CodeLength:     c.Config.CodeLength,
			ResetTokenTTL:  c.Config.ResetTokenTTL,
			ResetWindow:    c.Config.ResetWindow,
			VerifyWindow:   c.Config.VerifyWindow,
			VerifyAttempts: c.Config.VerifyAttempts,
			FrontendURL:    c.Config.FrontendURL,
		},
	)
	c.UserSvc = services.NewUserService(c.UserRepo)
	c.PassportSvc = services.NewPassportService(c.PassportRepo, c.Storage, c.Audit)
	c.QuizSvc = services.NewQuizService(c.QuizRepo, c.Storage, c.Audit)
	c.AssignmentSvc = services.NewAssignmentService(c.QuizRepo, c.UserRepo, c.Audit)
	c.PolicySvc = services.NewPolicyService(c.Casbin.E)
}

func (c *Container) initRouter() {
	if c.Config.GinMode != "" {
		gin.SetMode(c.Config.GinMode)
	}

	h := httpx.Handlers{
		Auth:     handlers.NewAuthHandlers(c.AuthSvc),
		Users:    handlers.NewUserHandlers(c.UserSvc),
		Passport: handlers.NewPassportHandlers(c.PassportSvc, c.Storage),
		Quiz:     handlers.NewQuizHandlers(c.QuizSvc, c.AssignmentSvc, c.Storage),
		Policy:   handlers.NewPolicyHandlers(c.PolicySvc),
	}
	jwtMW := middleware.NewAuthMW(c.TokenSvc)
	casbinMW := middleware.NewCasbinMW(services.NewCasbinEnforcerWrapper(c.Casbin.E), c.Audit)

	c.Router = httpx.BuildRouter(h, jwtMW, casbinMW, httpx.RouterOptions{
		UploadRoot:     c.Config.UploadRoot,
		UploadMaxBytes: c.Config.UploadMaxBytes,
	})
}

// Close closes all connections
func (c *Container) Close() error {
	if c.RedisClient != nil {
		c.RedisClient.Close()
	}

	if c.DB != nil {
		return closeDB(c.DB)
	}

	return nil
}
