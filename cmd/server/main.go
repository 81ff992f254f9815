package main

import (
	"context" // context package is needed for Redis and seeding

	"creditline/internal/api"      // Custom package for API handlers
	"creditline/internal/config"   // Custom package for configuration
	"creditline/internal/db"       // Schema migration
	"creditline/internal/decision" // Credit decision engine
	"creditline/internal/service"  // Application and auth services
	"creditline/internal/store"    // Storage backends
	"creditline/internal/utils"    // Cache helpers

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
)

// devSecret signs tokens when JWT_SECRET is unset outside production
const devSecret = "dev-only-secret"

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration
	ctx := context.Background()

	// Setup logger
	if cfg.IsProd {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	if cfg.JWTSecret == "" {
		if cfg.IsProd {
			logrus.Fatal("JWT_SECRET must be set in production")
		}
		logrus.Warn("JWT_SECRET not set, using development secret")
		cfg.JWTSecret = devSecret
	}

	repo := openStore(cfg) // Memory or MySQL
	cache := utils.NewCache(openRedis(ctx, cfg), "creditline:", cfg.CacheTTL)

	if cfg.SeedDemoData {
		if err := store.Seed(ctx, repo); err != nil {
			logrus.Fatalf("failed to seed demo data: %v", err)
		}
		logrus.Info("Demo data loaded")
	}

	apps := service.NewApplicationService(repo, decision.NewEngine(nil, nil), cache)
	auth := service.NewAuthService(repo, cfg.JWTSecret, service.WithEmployeeSignup(cfg.AllowEmployeeSignup))

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	r, err := api.SetupRouter(api.Services{Applications: apps, Auth: auth, JWTSecret: cfg.JWTSecret})
	if err != nil {
		logrus.Fatalf("failed to set up router: %v", err)
	}

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	logrus.WithFields(logrus.Fields{
		"port":  cfg.AppPort,
		"store": cfg.StoreDriver,
		"cache": cache.Enabled(),
	}).Info("Server running")
	if err := r.Run(":" + cfg.AppPort); err != nil { // Start the server on port cfg.AppPort
		logrus.Fatalf("server stopped: %v", err)
	}
}

// openStore selects the storage backend named by STORE_DRIVER
func openStore(cfg *config.Config) store.Repository {
	switch cfg.StoreDriver {
	case config.DriverMemory:
		return store.NewMemoryStore()
	case config.DriverMySQL:
		conn, err := store.OpenMySQL(cfg.DSN())
		if err != nil {
			logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
		}
		if err := db.AutoMigrate(conn); err != nil {
			logrus.Fatalf("migration failed: %v", err)
		}
		return store.NewGormStore(conn)
	default:
		logrus.Fatalf("unknown STORE_DRIVER %q", cfg.StoreDriver)
		return nil
	}
}

// openRedis connects when REDIS_ADDR is set. A nil client disables caching.
func openRedis(ctx context.Context, cfg *config.Config) *redis.Client {
	if cfg.RedisAddr == "" {
		return nil
	}
	// Setup Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr, // Redis server address
		Password: cfg.RedisPass, // Redis password
		DB:       cfg.RedisDB,   // Redis database number
	})
	// Test Redis connection
	if _, err := redisClient.Ping(ctx).Result(); err != nil {
		logrus.Fatalf("failed to connect to Redis: %v", err)
	}
	return redisClient
}
