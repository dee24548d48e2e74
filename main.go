package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"catering-backend/api"
	"catering-backend/auth"
	"catering-backend/cache"
	"catering-backend/config"
	"catering-backend/db"
	"catering-backend/logging"
	"catering-backend/mail"
	"catering-backend/notify"
	"catering-backend/realtime"
	"catering-backend/services"
	"catering-backend/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	if err := logging.Init(); err != nil {
		fmt.Fprintln(os.Stderr, "logging:", err)
		os.Exit(1)
	}
	defer logging.Sync()

	// Check for migrate subcommand
	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		runMigrate(cfg)
		return
	}

	if err := db.Init(cfg.DB); err != nil {
		fmt.Fprintln(os.Stderr, "db:", err)
		os.Exit(1)
	}
	defer db.Close()

	// Optional auto-migration (useful in production and for fresh DBs).
	// Set AUTO_MIGRATE=1 (or "true") to enable.
	if v := strings.TrimSpace(os.Getenv("AUTO_MIGRATE")); v == "1" || strings.EqualFold(v, "true") {
		if err := applyMigrations(context.Background(), false); err != nil {
			fmt.Fprintln(os.Stderr, "migrate:", err)
			os.Exit(1)
		}
	}

	var store cache.Store
	if cfg.Redis.Addr != "" {
		redisStore, err := cache.NewRedis(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			fmt.Fprintln(os.Stderr, "redis:", err)
			os.Exit(1)
		}
		defer redisStore.Close()
		store = redisStore
	} else {
		store = cache.NewMemory()
	}

	var files storage.Store
	switch cfg.Storage.Backend {
	case "gcs":
		gcs, err := storage.NewGCS(context.Background(), cfg.Storage.GCSBucket)
		if err != nil {
			fmt.Fprintln(os.Stderr, "storage:", err)
			os.Exit(1)
		}
		defer gcs.Close()
		files = gcs
	default:
		local, err := storage.NewLocal(cfg.Storage.LocalDir, cfg.Storage.PublicURL)
		if err != nil {
			fmt.Fprintln(os.Stderr, "storage:", err)
			os.Exit(1)
		}
		files = local
	}

	var telegramSink *notify.TelegramSink
	if cfg.Telegram.Token != "" && cfg.Telegram.AdminChatID != 0 {
		telegramSink, err = notify.NewTelegramSink(cfg.Telegram.Token, cfg.Telegram.AdminChatID)
		if err != nil {
			logging.L().Warn("telegram sink disabled", zap.Error(err))
			telegramSink = nil
		}
	}

	hub := realtime.NewHub()
	notifier := notify.New(hub, telegramSink)
	tokens := auth.NewManager(cfg.JWT.Secret, cfg.JWT.AccessTTLSecs)
	mailer := mail.NewSender(cfg.Brevo)
	guard := services.NewDuplicateGuard(store)
	otp := services.NewOTPService(store)
	gateway := services.NewPaymentGateway(cfg.Razorpay.KeyID, cfg.Razorpay.KeySecret)

	server := api.NewServer(cfg, tokens, hub, notifier, mailer, guard, otp, gateway, files)

	logging.L().Info("server starting", zap.String("port", cfg.HTTP.Port))
	if err := server.Router().Run(":" + cfg.HTTP.Port); err != nil {
		fmt.Fprintln(os.Stderr, "server:", err)
		os.Exit(1)
	}
}

func runMigrate(cfg *config.Config) {
	if err := db.Init(cfg.DB); err != nil {
		fmt.Fprintln(os.Stderr, "db:", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := applyMigrations(context.Background(), true); err != nil {
		fmt.Fprintln(os.Stderr, "migrate:", err)
		os.Exit(1)
	}
}
