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

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/peihe07/R1L-RTM-V3/internal/config"
	"github.com/peihe07/R1L-RTM-V3/internal/middleware"
	"github.com/peihe07/R1L-RTM-V3/internal/trace/entity"
	"github.com/peihe07/R1L-RTM-V3/internal/trace/handler"
	"github.com/peihe07/R1L-RTM-V3/internal/trace/repository"
	"github.com/peihe07/R1L-RTM-V3/internal/trace/service"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	// 加载 .env 文件
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables")
	}

	// 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 初始化日志
	zapLogger, err := initLogger(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer zapLogger.Sync()

	zapLogger.Info("Starting requirement trace service",
		zap.String("version", Version),
		zap.String("build_time", BuildTime),
	)

	// 初始化数据库（只在启动时做有限次重试，请求路径不重试）
	db, err := initDatabase(cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to connect to database", zap.Error(err))
	}

	// 建表
	if err := db.AutoMigrate(
		&entity.CFTSRequirement{},
		&entity.SYS2Requirement{},
		&entity.TestCase{},
	); err != nil {
		zapLogger.Fatal("Failed to migrate tables", zap.Error(err))
	}

	// 初始化依赖
	repos := repository.NewRepositories(db)
	services := service.NewServices(repos)
	handlers := handler.NewHandlers(services, db)

	// 设置Gin模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 创建路由
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(zapLogger))
	router.Use(middleware.CORS(cfg.Server.AllowedOrigins()))
	router.Use(middleware.RequestID())
	router.Use(gzip.Gzip(gzip.DefaultCompression))

	registerRoutes(router, handlers)

	// 创建HTTP服务器
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// 启动服务器
	go func() {
		zapLogger.Info("Server starting", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Error("Server forced to shutdown", zap.Error(err))
	}

	zapLogger.Info("Server exited")
}

func registerRoutes(router *gin.Engine, h *handler.Handlers) {
	router.GET("/", h.Health.Root)
	router.GET("/health", h.Health.Health)
	router.GET("/readiness", h.Health.Readiness)

	cfts := router.Group("/cfts")
	{
		cfts.GET("/", h.CFTS.List)
		cfts.GET("/search", h.CFTS.Search)
		cfts.GET("/requirement/:req_id", h.CFTS.GetRequirement)
		cfts.GET("/autocomplete/cfts-ids", h.CFTS.AutocompleteCFTSIDs)
	}

	req := router.Group("/req")
	{
		req.GET("/search", h.CFTS.SearchByReqID)
		req.GET("/autocomplete/req-ids", h.CFTS.AutocompleteReqIDs)
	}

	sys2 := router.Group("/sys2")
	{
		sys2.GET("/requirement/:melco_id", h.SYS2.GetByMelcoID)
		sys2.GET("/search", h.SYS2.Search)
		sys2.GET("/availability", h.SYS2.Availability)
		sys2.POST("/availability", h.SYS2.AvailabilityPost)
	}

	router.GET("/testcases/by-feature-id/:feature_id", h.TestCase.GetByFeatureID)
}

func initLogger(cfg config.LogConfig) (*zap.Logger, error) {
	var zapCfg zap.Config

	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}

	switch cfg.Level {
	case "debug":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "info":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	case "warn":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	}

	return zapCfg.Build()
}

func initDatabase(cfg config.DatabaseConfig, zapLogger *zap.Logger) (*gorm.DB, error) {
	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}

	var db *gorm.DB
	var err error
	for attempt := 1; attempt <= cfg.ConnectRetries; attempt++ {
		db, err = gorm.Open(postgres.Open(cfg.DSN()), gormConfig)
		if err == nil {
			if pingErr := db.Exec("SELECT 1").Error; pingErr == nil {
				break
			} else {
				err = pingErr
			}
		}
		if attempt < cfg.ConnectRetries {
			zapLogger.Warn("Database connection attempt failed, retrying",
				zap.Int("attempt", attempt),
				zap.Int("max_retries", cfg.ConnectRetries),
				zap.Duration("retry_in", cfg.ConnectRetryInterval),
				zap.Error(err),
			)
			time.Sleep(cfg.ConnectRetryInterval)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", cfg.ConnectRetries, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	zapLogger.Info("Database connection established")
	return db, nil
}
