package config

import (
	"errors"
	"io/fs"
	"log/slog"
	"time"

	"github.com/joho/godotenv"

	envcfg "github.com/Skotchmaster/furnico/pkg/config"
)

type Config struct {
	HTTPAddr string
	LogLevel string

	DBDSN string

	JWTSecret     []byte
	RefreshSecret []byte
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
	OTPTTL        time.Duration

	CookieSecure   bool
	AllowedOrigins []string
	CSRFEnabled    bool

	KafkaBrokers     []string
	KafkaTopicPrefix string

	ElasticAddrs    []string
	ElasticIndex    string
	ElasticUser     string
	ElasticPassword string

	RedisURL string
	CacheTTL time.Duration

	S3Bucket        string
	S3Region        string
	S3Endpoint      string
	S3PublicBaseURL string
	AWSAccessKeyID  string
	AWSSecretKey    string
	UploadURLTTL    time.Duration

	RazorpayKeyID     string
	RazorpayKeySecret string
	PaymentCurrency   string
}

// Load reads .env when present and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("dotenv_load_failed", "error", err)
	}

	jwtSecret := envcfg.EnvDefault("JWT_SECRET", "")
	cfg := &Config{
		HTTPAddr: envcfg.EnvDefault("HTTP_ADDR", ":8080"),
		LogLevel: envcfg.EnvDefault("LOG_LEVEL", "info"),

		DBDSN: envcfg.EnvDefault("DB_DSN", ""),

		JWTSecret:     []byte(jwtSecret),
		RefreshSecret: []byte(envcfg.EnvDefault("REFRESH_SECRET", jwtSecret)),
		AccessTTL:     envcfg.EnvDurationDefault("ACCESS_TTL", 15*time.Minute),
		RefreshTTL:    envcfg.EnvDurationDefault("REFRESH_TTL", 7*24*time.Hour),
		OTPTTL:        envcfg.EnvDurationDefault("OTP_TTL", 10*time.Minute),

		CookieSecure:   envcfg.EnvBoolDefault("COOKIE_SECURE", true),
		AllowedOrigins: envcfg.CSV(envcfg.EnvDefault("ALLOWED_ORIGINS", "")),
		CSRFEnabled:    envcfg.EnvBoolDefault("CSRF_ENABLED", false),

		KafkaBrokers:     envcfg.CSV(envcfg.EnvDefault("KAFKA_BROKERS", "")),
		KafkaTopicPrefix: envcfg.EnvDefault("KAFKA_TOPIC_PREFIX", "furnico."),

		ElasticAddrs:    envcfg.CSV(envcfg.EnvDefault("ELASTIC_ADDRS", "")),
		ElasticIndex:    envcfg.EnvDefault("ELASTIC_INDEX", "products"),
		ElasticUser:     envcfg.EnvDefault("ELASTIC_USER", ""),
		ElasticPassword: envcfg.EnvDefault("ELASTIC_PASSWORD", ""),

		RedisURL: envcfg.EnvDefault("REDIS_URL", ""),
		CacheTTL: envcfg.EnvDurationDefault("CACHE_TTL", 5*time.Minute),

		S3Bucket:        envcfg.EnvDefault("S3_BUCKET", ""),
		S3Region:        envcfg.EnvDefault("S3_REGION", "us-east-1"),
		S3Endpoint:      envcfg.EnvDefault("S3_ENDPOINT", ""),
		S3PublicBaseURL: envcfg.EnvDefault("S3_PUBLIC_BASE_URL", ""),
		AWSAccessKeyID:  envcfg.EnvDefault("AWS_ACCESS_KEY_ID", ""),
		AWSSecretKey:    envcfg.EnvDefault("AWS_SECRET_ACCESS_KEY", ""),
		UploadURLTTL:    envcfg.EnvDurationDefault("UPLOAD_URL_TTL", 15*time.Minute),

		RazorpayKeyID:     envcfg.EnvDefault("RAZORPAY_KEY_ID", ""),
		RazorpayKeySecret: envcfg.EnvDefault("RAZORPAY_KEY_SECRET", ""),
		PaymentCurrency:   envcfg.EnvDefault("PAYMENT_CURRENCY", "INR"),
	}
	return cfg, nil
}

// MustServe aborts when settings needed to serve traffic are missing.
func (c *Config) MustServe() {
	envcfg.MustNonEmpty(c.DBDSN, "DB_DSN")
	envcfg.MustNonEmptyBytes(c.JWTSecret, "JWT_SECRET")
}

// MustDB aborts when the database DSN is missing.
func (c *Config) MustDB() {
	envcfg.MustNonEmpty(c.DBDSN, "DB_DSN")
}
