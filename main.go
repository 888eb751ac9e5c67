package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/conduitapp/articled/handlers"
	articlehandler "github.com/conduitapp/articled/internal/article/handler"
	articlerepo "github.com/conduitapp/articled/internal/article/repository"
	articleservice "github.com/conduitapp/articled/internal/article/service"
	"github.com/conduitapp/articled/internal/config"
	"github.com/conduitapp/articled/internal/database"
	"github.com/conduitapp/articled/internal/oidc"
	"github.com/conduitapp/articled/internal/tokens"
	"github.com/conduitapp/articled/internal/users"
	"github.com/conduitapp/articled/pkg/logger"
	"github.com/conduitapp/articled/pkg/metrics"
	"github.com/conduitapp/articled/pkg/middleware"
)

var startTime = time.Now()

func main() {
	// initialize logging (can be controlled with LOG_LEVEL env: debug|info|warn|error|fatal)
	logger.Init(os.Getenv("LOG_LEVEL"))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Infof("config loaded: mongo=%v redis=%v oidc=%v", cfg.MongoDB.URI != "", cfg.Redis.Host != "", cfg.OIDC.Issuer != "")

	r := gin.New()

	// Lightweight CORS middleware for dev/test: set common headers and respond to OPTIONS.
	// (Keep this intentionally simple — production should use a stricter policy.)
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "Content-Length")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(200)
			return
		}
		c.Next()
	})

	// Global middlewares: logging + recovery
	r.Use(gin.Logger(), gin.Recovery())

	// Connect to Redis early so the rate-limiter can use it when configured
	var rdb *redis.Client
	if cfg.Redis.Host != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.Redis.Host + ":" + cfg.Redis.Port, Password: cfg.Redis.Password})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			logger.Warnf("failed to connect to Redis (%s:%s): %v", cfg.Redis.Host, cfg.Redis.Port, err)
			rdb = nil
		} else {
			logger.Infof("Connected to Redis: %s:%s", cfg.Redis.Host, cfg.Redis.Port)
		}
	}

	// Optional global rate limiter (per-user when authenticated, otherwise per-IP)
	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.UseRedis && rdb != nil {
			win := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
			r.Use(middleware.RedisRateLimitMiddleware(rdb, cfg.RateLimit.RPS, cfg.RateLimit.Burst, win))
		} else {
			r.Use(middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
		}
	}

	// Basic health endpoint
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})

	// Token verifier: OIDC when an issuer is configured, HS256 shared secret
	// otherwise. ALLOW_INSECURE_TOKEN=true swaps in the unverified parser for
	// integration runs.
	ctx := context.Background()
	var verifier middleware.Verifier
	if cfg.OIDC.Issuer != "" {
		ver, err := oidc.NewVerifier(ctx, cfg.OIDC.Issuer, cfg.OIDC.ClientID)
		if err != nil {
			logger.Warnf("failed to initialize OIDC verifier: %v", err)
		} else {
			verifier = ver
		}
	}
	if verifier == nil && cfg.JWT.Secret != "" {
		verifier = tokens.NewHSVerifier(cfg.JWT.Secret)
	}
	if verifier == nil {
		if strings.ToLower(strings.TrimSpace(os.Getenv("ALLOW_INSECURE_TOKEN"))) == "true" {
			logger.Warn("enabling insecure token verifier (integration mode)")
			verifier = oidc.NewInsecureVerifier()
		}
	}

	// Connect to MongoDB and initialize repositories and services.
	// Retry/backoff to tolerate startup races with the database container.
	var (
		client     *mongo.Client
		userSvc    *users.Service
		articleSvc *articleservice.Service
	)
	if cfg.MongoDB.URI != "" {
		const maxAttempts = 5
		backoff := time.Second
		var errConn error
		for attempt := 1; attempt <= maxAttempts; attempt++ {
			client, errConn = database.ConnectMongo(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout)
			if errConn == nil {
				break
			}
			logger.Warnf("attempt %d/%d: failed to connect to MongoDB: %v", attempt, maxAttempts, errConn)
			if attempt < maxAttempts {
				time.Sleep(backoff)
				backoff *= 2
			}
		}
		if errConn != nil {
			logger.Warnf("could not connect to MongoDB after %d attempts: %v", maxAttempts, errConn)
			client = nil
		}
	}
	if client != nil {
		defer func() { _ = client.Disconnect(ctx) }()
		db := client.Database(cfg.MongoDB.Database)
		userSvc = users.NewService(users.NewMongoUserRepository(db.Collection("users")))
		articleSvc = articleservice.NewService(articlerepo.NewMongoRepo(db.Collection("articles")), userSvc)
	}

	// readiness endpoint — return 200 only when critical dependencies are available
	r.GET("/ready", func(c *gin.Context) {
		ready := true
		deps := map[string]bool{}

		deps["storage"] = articleSvc != nil
		if articleSvc == nil {
			ready = false
		}
		deps["auth"] = verifier != nil
		if verifier == nil {
			ready = false
		}
		if cfg.Redis.Host != "" && cfg.RateLimit.UseRedis {
			deps["redis"] = rdb != nil
			if rdb == nil {
				ready = false
			}
		} else {
			deps["redis"] = true
		}

		status := gin.H{"deps": deps, "uptime": time.Since(startTime).String()}
		if !ready {
			status["status"] = "not_ready"
			c.JSON(http.StatusServiceUnavailable, status)
			return
		}
		status["status"] = "ready"
		c.JSON(http.StatusOK, status)
	})

	// Register API handlers when the store is available
	if articleSvc != nil && verifier != nil {
		articlehandler.New(articleSvc).Register(r, verifier)
		handlers.NewProfileHandler(userSvc).Register(r, verifier)
	} else {
		logger.Warnf("article routes not registered (storage or verifier unavailable)")
	}
	handlers.RegisterSwagger(r)

	// Expose Prometheus metrics
	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	logger.Infof("Starting article service on %s", addr)
	if err := r.Run(addr); err != nil {
		logger.Fatalf("server failed: %v", err)
	}
}
