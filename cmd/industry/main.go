package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	characterapp "github.com/wyfcoding/industrytracker/internal/character/application"
	charactermysql "github.com/wyfcoding/industrytracker/internal/character/infrastructure/persistence/mysql"
	marketapp "github.com/wyfcoding/industrytracker/internal/marketdata/application"
	marketdomain "github.com/wyfcoding/industrytracker/internal/marketdata/domain"
	"github.com/wyfcoding/industrytracker/internal/marketdata/infrastructure/esi"
	"github.com/wyfcoding/industrytracker/internal/marketdata/infrastructure/messaging"
	marketmysql "github.com/wyfcoding/industrytracker/internal/marketdata/infrastructure/persistence/mysql"
	markethttp "github.com/wyfcoding/industrytracker/internal/marketdata/interfaces/http"
	procapp "github.com/wyfcoding/industrytracker/internal/procurement/application"
	procdomain "github.com/wyfcoding/industrytracker/internal/procurement/domain"
	prochttp "github.com/wyfcoding/industrytracker/internal/procurement/interfaces/http"
	staticapp "github.com/wyfcoding/industrytracker/internal/staticdata/application"
	staticmysql "github.com/wyfcoding/industrytracker/internal/staticdata/infrastructure/persistence/mysql"
	statichttp "github.com/wyfcoding/industrytracker/internal/staticdata/interfaces/http"
	"github.com/wyfcoding/industrytracker/pkg/config"
	"github.com/wyfcoding/industrytracker/pkg/db"
	"github.com/wyfcoding/industrytracker/pkg/logger"
	"github.com/wyfcoding/industrytracker/pkg/middleware"
	"github.com/wyfcoding/industrytracker/pkg/mq"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "configs/industry/config.toml", "path to config file")
	flag.Parse()

	// 1. Config
	cfg, err := config.Load(configPath)
	if err != nil {
		panic(fmt.Sprintf("load config failed: %v", err))
	}

	// 2. Logger
	if err := logger.Init(logger.Config{
		Level:      cfg.Logger.Level,
		Format:     cfg.Logger.Format,
		Output:     cfg.Logger.Output,
		FilePath:   cfg.Logger.FilePath,
		MaxSize:    cfg.Logger.MaxSize,
		MaxBackups: cfg.Logger.MaxBackups,
		MaxAge:     cfg.Logger.MaxAge,
		Compress:   cfg.Logger.Compress,
		WithCaller: cfg.Logger.WithCaller,
	}); err != nil {
		panic(fmt.Sprintf("init logger failed: %v", err))
	}
	log := logger.Get()
	ctx := context.Background()

	// 3. Database
	database, err := db.Init(db.Config{
		Driver:             cfg.Database.Driver,
		DSN:                cfg.Database.DSN,
		MaxOpenConns:       cfg.Database.MaxOpenConns,
		MaxIdleConns:       cfg.Database.MaxIdleConns,
		ConnMaxLifetime:    cfg.Database.ConnMaxLifetime,
		LogEnabled:         cfg.Database.LogEnabled,
		SlowQueryThreshold: cfg.Database.SlowQueryThreshold,
	})
	if err != nil {
		logger.Fatal(ctx, "connect db failed", "error", err)
	}
	defer database.Close()

	if err := database.AutoMigrate(
		&staticmysql.MaterialModel{},
		&staticmysql.OreTypeModel{},
		&staticmysql.OreMaterialModel{},
		&staticmysql.FacilityModel{},
		&marketmysql.SnapshotModel{},
		&charactermysql.CharacterModel{},
		&charactermysql.SkillLevelModel{},
	); err != nil {
		logger.Fatal(ctx, "migrate db failed", "error", err)
	}

	// 4. Seed data (if empty), atomically
	if err := database.WithTx(ctx, func(tx *gorm.DB) error {
		if err := staticmysql.Seed(ctx, tx); err != nil {
			return err
		}
		return charactermysql.Seed(ctx, tx)
	}); err != nil {
		logger.Fatal(ctx, "seed data failed", "error", err)
	}

	// 5. Infrastructure
	esiClient := esi.NewClient(cfg.ESI.BaseURL, time.Duration(cfg.ESI.Timeout)*time.Second)
	snapshotRepo := marketmysql.NewSnapshotRepository(database.DB)

	var publisher marketdomain.RefreshPublisher
	if len(cfg.Kafka.Brokers) > 0 {
		producer, err := mq.NewProducer(mq.KafkaConfig{
			Brokers:      cfg.Kafka.Brokers,
			MaxRetries:   cfg.Kafka.MaxRetries,
			RetryBackoff: cfg.Kafka.RetryBackoff,
		})
		if err != nil {
			logger.Fatal(ctx, "create kafka producer failed", "error", err)
		}
		defer producer.Close()
		publisher = messaging.NewKafkaRefreshPublisher(producer, cfg.Kafka.RefreshTopic)
	}

	// 6. Application services
	staticService := staticapp.NewStaticDataService(staticmysql.NewStaticDataRepository(database.DB), log)
	characterService := characterapp.NewCharacterService(charactermysql.NewCharacterRepository(database.DB))
	marketService := marketapp.NewMarketDataService(
		esiClient,
		snapshotRepo,
		publisher,
		cfg.ESI.RegionID,
		time.Duration(cfg.ESI.SnapshotTTL)*time.Second,
		log,
	)

	backend := procdomain.NewHighsBackend()
	backend.MaxDuration = time.Duration(cfg.Optimizer.TimeLimit) * time.Second
	backend.GapRelative = cfg.Optimizer.GapRelative
	optimizerService := procapp.NewOptimizerService(
		characterService,
		staticService,
		marketService,
		procdomain.NewOptimizer(backend),
		log,
	)

	// 7. HTTP server
	if cfg.Environment == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(
		middleware.GinLoggingMiddleware(),
		middleware.GinRecoveryMiddleware(),
		middleware.GinCORSMiddleware(),
	)
	if cfg.HTTP.RateLimitQPS > 0 {
		limiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitBurst, cfg.HTTP.RateLimitQPS)
		router.Use(middleware.GinRateLimitMiddleware(limiter))
	}

	statichttp.NewStaticDataHandler(staticService).RegisterRoutes(router)
	markethttp.NewMarketDataHandler(marketService).RegisterRoutes(router)
	prochttp.NewOptimizerHandler(optimizerService).RegisterRoutes(router)

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeout) * time.Second,
	}

	go func() {
		log.Info("Starting HTTP server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			panic(fmt.Sprintf("http server failed: %v", err))
		}
	}()

	// 8. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", "error", err)
	}
	log.Info("Server exiting")
}
