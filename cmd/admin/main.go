// admin 运维命令：建表、导入示例数据、授予管理员。
//
//	admin migrate
//	admin seed
//	admin grant-admin <email>
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm"

	"cafe-directory/internal/core/config"
	"cafe-directory/internal/core/database"
	"cafe-directory/internal/core/logger"
	"cafe-directory/internal/domain"
	"cafe-directory/internal/repo"
	"cafe-directory/internal/service"
)

// 示例数据
var seedCafes = []domain.Cafe{
	{
		Name:          "Good Earth Coffeehouse",
		Location:      "333 Banff Ave, Banff, AB T1L 1B1",
		MapsURL:       "https://goo.gl/maps/3YNCm4gDQgQt6Tb56",
		ImageURL:      "https://streetviewpixels-pa.googleapis.com/v1/thumbnail?panoid=NJ_yR1AWRbxE7AdpKsLxeg&cb_client=search.gws-prod.gps&yaw=12.557711&pitch=0&thumbfov=100&w=80&h=80",
		Open:          "06:30AM",
		Close:         "07:00PM",
		WiFi:          domain.AmenityYes,
		MountainViews: domain.AmenityYes,
	},
}

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [-config path] migrate | seed | grant-admin <email>\n", os.Args[0])
	flag.PrintDefaults()
}

func main() {
	cfgPath := flag.String("config", os.Getenv("CONFIG_PATH"), "config yaml path")
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() == 0 {
		usage()
		os.Exit(2)
	}

	_ = godotenv.Load()
	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	log, cleanup := logger.FromConfig(cfg.Log)
	defer cleanup()

	db, err := database.NewGorm(database.Opts{
		Driver:             cfg.DB.Driver,
		DSN:                cfg.DB.DSN,
		Username:           cfg.DB.Username,
		Password:           cfg.DB.Password,
		MaxOpenConns:       cfg.DB.MaxOpenConns,
		MaxIdleConns:       cfg.DB.MaxIdleConns,
		ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
		LogLevel:           cfg.DB.LogLevel,
		Logger:             logger.ToStdLogger(log.Named("gorm"), zapcore.WarnLevel),
	})
	if err != nil {
		log.Fatal("db open", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	if err := run(ctx, db, log, flag.Args()); err != nil {
		log.Error("admin command failed", zap.Strings("args", flag.Args()), zap.Error(err))
		cancel()
		cleanup()
		os.Exit(1)
	}
}

var errUsage = errors.New("usage: migrate | seed | grant-admin <email>")

func run(ctx context.Context, db *gorm.DB, log *zap.Logger, args []string) error {
	switch args[0] {
	case "migrate":
		if err := database.Migrate(db); err != nil {
			return err
		}
		log.Info("migrate done")
		return nil

	case "seed":
		if err := database.Migrate(db); err != nil {
			return err
		}
		cafes := service.NewCafeService(repo.NewCafeRepo(db), nil, log)
		for i := range seedCafes {
			c := seedCafes[i]
			err := cafes.Add(ctx, &c)
			switch {
			case errors.Is(err, service.ErrDuplicateCafe):
				log.Info("seed skipped, already present", zap.String("cafe", c.Name))
			case err != nil:
				return err
			default:
				log.Info("seeded", zap.String("cafe", c.Name), zap.Uint("id", c.ID))
			}
		}
		return nil

	case "grant-admin":
		if len(args) != 2 {
			return errUsage
		}
		users := service.NewUserService(repo.NewUserRepo(db), nil)
		u, err := users.GrantAdmin(ctx, args[1])
		if err != nil {
			return err
		}
		log.Info("admin granted", zap.Uint("uid", u.ID), zap.String("email", u.Email))
		return nil
	}
	return errUsage
}
