package main

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/xiebiao/bookreview/internal/domain/user"
	"github.com/xiebiao/bookreview/internal/infrastructure/config"
	"github.com/xiebiao/bookreview/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/bookreview/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/bookreview/internal/interface/http/middleware"
	"github.com/xiebiao/bookreview/internal/interface/http/router"
	"github.com/xiebiao/bookreview/pkg/circuitbreaker"
	"github.com/xiebiao/bookreview/pkg/jwt"
	"github.com/xiebiao/bookreview/pkg/mq"
)

// App InitializeApp的产物
type App struct {
	Engine *gin.Engine
	Health *HealthServer
}

// provideDB cleanup关闭连接池
func provideDB(cfg *config.Config) (*gorm.DB, func(), error) {
	db, err := mysql.NewDB(cfg)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	return db, cleanup, nil
}

func provideRedis(cfg *config.Config) (*goredis.Client, func(), error) {
	client, err := redis.NewClient(cfg)
	if err != nil {
		return nil, nil, err
	}
	return client, func() { _ = client.Close() }, nil
}

// providePublisher MQ未启用或连不上时退化为NopPublisher，书评接口不依赖MQ
func providePublisher(cfg *config.Config) (mq.EventPublisher, func(), error) {
	if !cfg.MQ.Enabled {
		return mq.NopPublisher{}, func() {}, nil
	}

	pub, err := mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange, cfg.MQ.ExchangeType)
	if err != nil {
		slog.Warn("rabbitmq unavailable, review events disabled", "error", err)
		return mq.NopPublisher{}, func() {}, nil
	}

	breaker := circuitbreaker.NewCircuitBreaker("review-events", circuitbreaker.Config{
		MaxRequests: 1,
		Interval:    10 * time.Second,
		Timeout:     cfg.MQ.BreakerTimeout,
	})
	breaker.SetStateChangeCallback(func(name string, from, to circuitbreaker.State) {
		slog.Warn("circuit breaker state changed", "name", name, "from", from.String(), "to", to.String())
	})

	publisher := mq.NewBreakerPublisher(pub, breaker, cfg.MQ.PublishTimeout)
	return publisher, func() { _ = publisher.Close() }, nil
}

// provideUserService 生产环境使用默认bcrypt代价
func provideUserService(repo user.Repository) user.Service {
	return user.NewService(repo)
}

func provideJWTManager(cfg *config.Config) *jwt.Manager {
	return jwt.NewManager(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessTokenExpire,
		cfg.JWT.RefreshTokenExpire,
	)
}

func provideSessionStore(client *goredis.Client) *redis.SessionStore {
	return redis.NewSessionStore(client)
}

// provideLimiter 未启用时返回nil接口，路由不挂限流中间件
func provideLimiter(cfg *config.Config, client *goredis.Client) (middleware.Limiter, error) {
	if !cfg.RateLimit.Enabled {
		return nil, nil
	}
	limiter, err := redis.NewFixedWindowLimiter(client, "ratelimit:api", cfg.RateLimit.Requests, cfg.RateLimit.Window)
	if err != nil {
		return nil, err
	}
	return limiter, nil
}

func provideRouterOptions(cfg *config.Config, limiter middleware.Limiter) router.Options {
	opts := router.Options{
		Mode:         cfg.Server.Mode,
		AllowOrigins: cfg.Server.AllowOrigins,
		Limiter:      limiter,
		Swagger:      cfg.Server.Mode != gin.ReleaseMode,
	}
	if cfg.Metrics.Enabled {
		opts.MetricsPath = cfg.Metrics.Path
	}
	return opts
}
