package config

import (
	"os"      // For environment variables
	"strconv" // For string to int conversion
	"time"    // Cache TTL

	"github.com/joho/godotenv" // For loading .env files
)

// Storage backends accepted in STORE_DRIVER
const (
	DriverMemory = "memory"
	DriverMySQL  = "mysql"
)

// Config holds the application configuration
type Config struct {
	AppPort             string        // Application port
	StoreDriver         string        // memory or mysql
	DBUser              string        // Database user
	DBPassword          string        // Database password
	DBHost              string        // Database host
	DBPort              string        // Database port
	DBName              string        // Database name
	JWTSecret           string        // JWT secret key
	RedisAddr           string        // Redis server address, empty disables the cache
	RedisPass           string        // Redis password
	RedisDB             int           // Redis database number
	CacheTTL            time.Duration // Lifetime of cached reads
	IsProd              bool          // Is production environment
	SeedDemoData        bool          // Load demo applications and users on start
	AllowEmployeeSignup bool          // Let /api/users/register create employees
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present
	redisDB, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	ttl, err := strconv.Atoi(os.Getenv("CACHE_TTL_SECONDS"))
	if err != nil || ttl <= 0 {
		ttl = 60
	}
	return &Config{
		AppPort:             getenv("APP_PORT", "5000"),                   // Application port
		StoreDriver:         getenv("STORE_DRIVER", DriverMemory),         // Storage backend
		DBUser:              os.Getenv("DB_USER"),                         // Database user
		DBPassword:          os.Getenv("DB_PASSWORD"),                     // Database password
		DBHost:              getenv("DB_HOST", "127.0.0.1"),               // Database host
		DBPort:              getenv("DB_PORT", "3306"),                    // Database port
		DBName:              os.Getenv("DB_NAME"),                         // Database name
		JWTSecret:           os.Getenv("JWT_SECRET"),                      // JWT secret key
		RedisAddr:           os.Getenv("REDIS_ADDR"),                      // Redis server address
		RedisPass:           os.Getenv("REDIS_PASS"),                      // Redis password
		RedisDB:             redisDB,                                      // Redis database number
		CacheTTL:            time.Duration(ttl) * time.Second,             // Cache lifetime
		IsProd:              os.Getenv("IS_PROD") == "true",               // Is production environment
		SeedDemoData:        os.Getenv("SEED_DEMO_DATA") == "true",        // Demo records
		AllowEmployeeSignup: os.Getenv("ALLOW_EMPLOYEE_SIGNUP") == "true", // Employee self-registration
	}
}

// DSN builds the MySQL data source name
func (c *Config) DSN() string {
	return c.DBUser + ":" + c.DBPassword + "@tcp(" + c.DBHost + ":" + c.DBPort + ")/" + c.DBName + "?parseTime=true&charset=utf8mb4&loc=UTC"
}

// getenv returns the variable or fallback when it is unset or empty
func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
