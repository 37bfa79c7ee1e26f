package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "go.uber.org/automaxprocs"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm"

	"cafe-directory/internal/core/auth"
	"cafe-directory/internal/core/cache"
	"cafe-directory/internal/core/config"
	"cafe-directory/internal/core/database"
	"cafe-directory/internal/core/logger"
	"cafe-directory/internal/core/mailer"
	"cafe-directory/internal/core/server"
	"cafe-directory/internal/repo"
	"cafe-directory/internal/service"
	"cafe-directory/internal/transport/http/router"
)

func main() {
	_ = godotenv.Load()
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	log, cleanup := logger.FromConfig(cfg.Log)
	defer cleanup()
	defer logger.RedirectStdLog(log, zapcore.InfoLevel)()

	// 数据库（失败会直接 Fatal）
	db := mustOpenDB(cfg, log)
	log.Info("database connected", zap.String("driver", cfg.DB.Driver))

	if cfg.DB.AutoMigrate {
		if err := database.Migrate(db); err != nil {
			log.Fatal("automigrate failed", zap.Error(err))
		}
		log.Info("automigrate done")
	}

	// 可选缓存：没配 redis 地址时每次读库
	rc := cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, time.Duration(cfg.Redis.TTLSec)*time.Second)
	defer func() { _ = rc.Close() }()
	if rc.Enabled() {
		log.Info("redis cache enabled", zap.String("addr", cfg.Redis.Addr))
	}

	// 依赖
	cafeRepo, userRepo, reviewRepo := repo.NewCafeRepo(db), repo.NewUserRepo(db), repo.NewReviewRepo(db)
	smtp := &mailer.Retrying{
		Next:        mailer.NewSMTPSender(cfg.Mail),
		MaxRetries:  uint64(max(0, cfg.Mail.MaxRetries)),
		InitialWait: 500 * time.Millisecond,
		Log:         log.Named("mail"),
	}
	if cfg.Mail.Username == "" {
		log.Warn("mail relay not configured; contact form submissions will fail")
	}
	jwter := &auth.JWTer{
		Secret: cfg.JWTSecret(),
		Issuer: cfg.JWT.Issuer,
		TTL:    time.Duration(cfg.JWT.AccessTokenTTLMin) * time.Minute,
	}
	if len(cfg.API.Keys) == 0 {
		log.Warn("no api.keys configured; report-closed only accepts admin bearer tokens")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	r := router.NewEngine(router.Deps{
		Log:      log,
		Cafes:    service.NewCafeService(cafeRepo, rc, log.Named("cafes")),
		Users:    service.NewUserService(userRepo, nil),
		Reviews:  service.NewReviewService(reviewRepo, cafeRepo, userRepo),
		Contact:  service.NewContactService(smtp),
		Sessions: auth.NewSessions([]byte(cfg.Session.Secret), cfg.Session.MaxAgeSec, cfg.Session.Secure),
		JWT:      jwter,
		APIKeys:  cfg.API.Keys,
		Registry: reg,
	})

	// HTTP Server
	addr := server.Addr(cfg.App.HTTP.Host, cfg.App.HTTP.Port)
	srv := server.BuildServer(
		addr, r,
		time.Duration(cfg.App.HTTP.ReadTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.WriteTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.IdleTimeoutSec)*time.Second,
	)

	// 启动日志
	host4human := cfg.App.HTTP.Host
	if host4human == "" || host4human == "0.0.0.0" {
		host4human = "127.0.0.1"
	}
	baseURL := "http://" + host4human + ":" + fmt.Sprint(cfg.App.HTTP.Port)
	log.Info("cafe directory starting",
		zap.String("env", cfg.App.Env),
		zap.String("open", baseURL),
		zap.String("health", baseURL+"/health"),
		zap.String("metrics", baseURL+"/metrics"),
	)

	// 优雅关闭
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := server.Run(ctx, srv, log, 10*time.Second); err != nil {
		log.Error("cafe directory stopped with error", zap.Error(err))
		return
	}
	log.Info("cafe directory stopped gracefully")
}

func mustOpenDB(cfg *config.Config, l *zap.Logger) *gorm.DB {
	db, err := database.NewGorm(database.Opts{
		Driver:             cfg.DB.Driver,
		DSN:                cfg.DB.DSN,
		Username:           cfg.DB.Username,
		Password:           cfg.DB.Password,
		MaxOpenConns:       cfg.DB.MaxOpenConns,
		MaxIdleConns:       cfg.DB.MaxIdleConns,
		ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
		LogLevel:           cfg.DB.LogLevel,
		Logger:             logger.ToStdLogger(l.Named("gorm"), zapcore.WarnLevel),
	})
	if err != nil {
		l.Fatal("db open", zap.Error(err))
	}
	return db
}
