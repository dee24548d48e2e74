package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	DB       DBConfig
	HTTP     HTTPConfig
	JWT      JWTConfig
	Admin    AdminConfig
	Razorpay RazorpayConfig
	Brevo    BrevoConfig
	Redis    RedisConfig
	Storage  StorageConfig
	Telegram TelegramConfig
}

type DBConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
}

type HTTPConfig struct {
	Port           string
	AllowedOrigins []string
	MaxUploadBytes int64
}

type JWTConfig struct {
	Secret        string
	AccessTTLSecs int
}

// AdminConfig holds the single dashboard account. There is no admin table;
// the owner configures credentials through the environment.
type AdminConfig struct {
	Username string
	Password string
	Email    string
}

type RazorpayConfig struct {
	KeyID     string
	KeySecret string
}

type BrevoConfig struct {
	APIKey      string
	SenderName  string
	SenderEmail string
}

// RedisConfig is optional; when Addr is empty the process-local TTL store is
// used for the duplicate guard and OTP cache.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type StorageConfig struct {
	Backend   string // "local" or "gcs"
	LocalDir  string
	PublicURL string // base URL prefix for locally stored files
	GCSBucket string
}

// TelegramConfig is optional; when Token and AdminChatID are set, order and
// cancellation events are also pushed to the admin chat.
type TelegramConfig struct {
	Token       string
	AdminChatID int64
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	dbPort, _ := strconv.Atoi(getEnv("DB_PORT", "5432"))
	jwtTTL, _ := strconv.Atoi(getEnv("JWT_ACCESS_TOKEN_EXPIRES", "3600"))
	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	maxUpload, _ := strconv.ParseInt(getEnv("MAX_CONTENT_LENGTH", "5242880"), 10, 64)
	tgChat, _ := strconv.ParseInt(getEnv("TELEGRAM_ADMIN_CHAT_ID", "0"), 10, 64)

	return &Config{
		DB: DBConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     dbPort,
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "catering"),
		},
		HTTP: HTTPConfig{
			Port:           getEnv("PORT", "5000"),
			AllowedOrigins: parseOrigins(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://127.0.0.1:3000")),
			MaxUploadBytes: maxUpload,
		},
		JWT: JWTConfig{
			Secret:        getEnv("JWT_SECRET_KEY", getEnv("SECRET_KEY", "dev-secret")),
			AccessTTLSecs: jwtTTL,
		},
		Admin: AdminConfig{
			Username: getEnv("ADMIN_USERNAME", "admin@example.com"),
			Password: getEnv("ADMIN_PASSWORD", ""),
			Email:    getEnv("ADMIN_EMAIL", "admin@example.com"),
		},
		Razorpay: RazorpayConfig{
			KeyID:     getEnv("RAZORPAY_KEY_ID", ""),
			KeySecret: getEnv("RAZORPAY_KEY_SECRET", ""),
		},
		Brevo: BrevoConfig{
			APIKey:      getEnv("BREVO_API_KEY", ""),
			SenderName:  getEnv("BREVO_SENDER_NAME", "Catering Team"),
			SenderEmail: getEnv("BREVO_SENDER_EMAIL", ""),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		Storage: StorageConfig{
			Backend:   getEnv("STORAGE_BACKEND", "local"),
			LocalDir:  getEnv("STORAGE_LOCAL_DIR", "static/uploads"),
			PublicURL: getEnv("STORAGE_PUBLIC_URL", "/static/uploads"),
			GCSBucket: getEnv("STORAGE_GCS_BUCKET", ""),
		},
		Telegram: TelegramConfig{
			Token:       getEnv("TELEGRAM_TOKEN", ""),
			AdminChatID: tgChat,
		},
	}, nil
}

func parseOrigins(s string) []string {
	var out []string
	for _, o := range strings.Split(s, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
