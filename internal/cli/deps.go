package cli

import (
	"context"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"github.com/Skotchmaster/furnico/internal/cache"
	"github.com/Skotchmaster/furnico/internal/config"
	"github.com/Skotchmaster/furnico/internal/events"
	"github.com/Skotchmaster/furnico/internal/httpserver"
	"github.com/Skotchmaster/furnico/internal/payment"
	"github.com/Skotchmaster/furnico/internal/repo"
	"github.com/Skotchmaster/furnico/internal/search"
	"github.com/Skotchmaster/furnico/internal/service"
	"github.com/Skotchmaster/furnico/internal/storage"
)

// app owns every long-lived client built from config.
type app struct {
	repo      *repo.GormRepo
	publisher events.Publisher
	redis     *cache.Redis

	auth     *service.AuthService
	catalog  *service.CatalogService
	cart     *service.CartService
	orders   *service.OrderService
	address  *service.AddressService
	reviews  *service.ReviewService
	payments *service.PaymentService
	uploads  *service.UploadService
}

// buildApp wires services. Optional integrations that are unset or
// unreachable are left nil and logged.
func buildApp(ctx context.Context, cfg *config.Config, db *gorm.DB, log *slog.Logger) *app {
	a := &app{repo: repo.New(db), publisher: events.Nop{}}

	if len(cfg.KafkaBrokers) > 0 {
		a.publisher = events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopicPrefix)
		log.Info("kafka_enabled", "brokers", cfg.KafkaBrokers)
	}

	a.catalog = &service.CatalogService{Repo: a.repo, Events: a.publisher}
	if len(cfg.ElasticAddrs) > 0 {
		esCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		es, err := search.NewElastic(esCtx, search.Options{
			Addresses: cfg.ElasticAddrs,
			Username:  cfg.ElasticUser,
			Password:  cfg.ElasticPassword,
			Index:     cfg.ElasticIndex,
		})
		cancel()
		if err != nil {
			log.Warn("elasticsearch_disabled", "error", err)
		} else {
			a.catalog.Search = es
		}
	}
	if cfg.RedisURL != "" {
		rCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		rc, err := cache.Connect(rCtx, cfg.RedisURL, cfg.CacheTTL)
		cancel()
		if err != nil {
			log.Warn("redis_disabled", "error", err)
		} else {
			a.redis = rc
			a.catalog.Cache = rc
		}
	}

	a.auth = &service.AuthService{
		Repo:          a.repo,
		Events:        a.publisher,
		JWTSecret:     cfg.JWTSecret,
		RefreshSecret: cfg.RefreshSecret,
		AccessTTL:     cfg.AccessTTL,
		RefreshTTL:    cfg.RefreshTTL,
		OTPTTL:        cfg.OTPTTL,
	}
	a.cart = &service.CartService{Repo: a.repo, Events: a.publisher}
	a.orders = &service.OrderService{Repo: a.repo, Events: a.publisher, Catalog: a.catalog}
	a.address = &service.AddressService{Repo: a.repo}
	a.reviews = &service.ReviewService{Repo: a.repo, Catalog: a.catalog}

	a.payments = &service.PaymentService{
		KeyID:     cfg.RazorpayKeyID,
		KeySecret: cfg.RazorpayKeySecret,
		Currency:  cfg.PaymentCurrency,
	}
	if cfg.RazorpayKeyID != "" && cfg.RazorpayKeySecret != "" {
		a.payments.Gateway = payment.NewRazorpay(cfg.RazorpayKeyID, cfg.RazorpayKeySecret)
	} else {
		log.Warn("payment_gateway_disabled")
	}

	a.uploads = &service.UploadService{}
	if cfg.S3Bucket != "" {
		p, err := storage.NewS3Presigner(ctx, storage.S3Options{
			Bucket:        cfg.S3Bucket,
			Region:        cfg.S3Region,
			Endpoint:      cfg.S3Endpoint,
			PublicBaseURL: cfg.S3PublicBaseURL,
			AccessKeyID:   cfg.AWSAccessKeyID,
			SecretKey:     cfg.AWSSecretKey,
			Expires:       cfg.UploadURLTTL,
		})
		if err != nil {
			log.Warn("uploads_disabled", "error", err)
		} else {
			a.uploads.Storage = p
		}
	}
	return a
}

func (a *app) deps(cfg *config.Config, log *slog.Logger) *httpserver.Deps {
	return &httpserver.Deps{
		Auth:     &httpserver.AuthHTTP{Svc: a.auth},
		Catalog:  &httpserver.CatalogHTTP{Svc: a.catalog},
		Cart:     &httpserver.CartHTTP{Svc: a.cart},
		Orders:   &httpserver.OrderHTTP{Svc: a.orders},
		Address:  &httpserver.AddressHTTP{Svc: a.address},
		Reviews:  &httpserver.ReviewHTTP{Svc: a.reviews},
		Payments: &httpserver.PaymentHTTP{Svc: a.payments},
		Uploads:  &httpserver.UploadHTTP{Svc: a.uploads},
		Health:   &httpserver.HealthHTTP{DB: a.repo, Timeout: 2 * time.Second},

		JWTSecret: cfg.JWTSecret,
		Refresher: a.auth,
		Logger:    log,

		AllowedOrigins: cfg.AllowedOrigins,
		CSRFEnabled:    cfg.CSRFEnabled,
		CookieSecure:   cfg.CookieSecure,
	}
}

func (a *app) close(log *slog.Logger) {
	if err := a.publisher.Close(); err != nil {
		log.Error("kafka_close_failed", "error", err)
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			log.Error("redis_close_failed", "error", err)
		}
	}
}
