package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	App        AppConfig
	Server     ServerConfig
	Database   DatabaseConfig
	MinIO      MinIOConfig
	Auth       AuthConfig
	Pagination PaginationConfig
	Upload     UploadConfig
}

type AppConfig struct {
	Name    string
	Version string
	Env     string
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	Driver          string
	Host            string
	Port            string
	User            string
	Password        string
	DBName          string
	SSLMode         string
	SQLitePath      string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	QueryTimeout    time.Duration
}

type MinIOConfig struct {
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	Region          string
	UseSSL          bool
}

type AuthConfig struct {
	JWTSecret     string
	TokenTTL      time.Duration
	RateLimit     int
	RateWindow    time.Duration
	AdminEmail    string
	AdminPassword string
	AdminName     string
}

type PaginationConfig struct {
	DefaultPerPage int
	MaxPerPage     int
}

type UploadConfig struct {
	MaxSize     int64
	Workers     int
	QueueLength int

	// PollInterval is how often pending uploads are swept back into the queue.
	PollInterval time.Duration
}

func Load() *Config {
	return &Config{
		App: AppConfig{
			Name:    getEnvOrDefault("APP_NAME", "Museum Backend API"),
			Version: getEnvOrDefault("APP_VERSION", "1.0.0"),
			Env:     getEnvOrDefault("GO_ENV", "dev"),
		},
		Server: ServerConfig{
			Port:         getEnvOrDefault("SERVER_PORT", "8010"),
			ReadTimeout:  getDurationOrDefault("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout: getDurationOrDefault("SERVER_WRITE_TIMEOUT", 30*time.Second),
		},
		Database: DatabaseConfig{
			Driver:          getEnvOrDefault("DB_DRIVER", "postgres"),
			Host:            getEnvOrDefault("DB_HOST", "localhost"),
			Port:            getEnvOrDefault("DB_PORT", "5432"),
			User:            getEnvOrDefault("DB_USER", "postgres"),
			Password:        getEnvOrDefault("DB_PASSWORD", "postgres"),
			DBName:          getEnvOrDefault("DB_NAME", "museum_db"),
			SSLMode:         getEnvOrDefault("DB_SSLMODE", "disable"),
			SQLitePath:      getEnvOrDefault("DB_SQLITE_PATH", "museum.db"),
			MaxOpenConns:    getIntOrDefault("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getIntOrDefault("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getDurationOrDefault("DB_CONN_MAX_LIFETIME", 5*time.Minute),
			QueryTimeout:    getDurationOrDefault("DB_QUERY_TIMEOUT", 10*time.Second),
		},
		MinIO: MinIOConfig{
			Endpoint:        getEnvOrDefault("AWS_ENDPOINT", "localhost:9000"),
			AccessKeyID:     getEnvOrDefault("AWS_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnvOrDefault("AWS_SECRET_ACCESS_KEY", ""),
			BucketName:      getEnvOrDefault("AWS_BUCKET", "museum"),
			Region:          getEnvOrDefault("AWS_DEFAULT_REGION", "us-east-1"),
			UseSSL:          getBoolOrDefault("AWS_USE_SSL", false),
		},
		Auth: AuthConfig{
			JWTSecret:     getEnvOrDefault("JWT_SECRET", ""),
			TokenTTL:      getDurationOrDefault("TOKEN_TTL", 30*24*time.Hour),
			RateLimit:     getIntOrDefault("AUTH_RATE_LIMIT", 10),
			RateWindow:    getDurationOrDefault("AUTH_RATE_WINDOW", time.Minute),
			AdminEmail:    os.Getenv("ADMIN_EMAIL"),
			AdminPassword: os.Getenv("ADMIN_PASSWORD"),
			AdminName:     getEnvOrDefault("ADMIN_NAME", "Administrator"),
		},
		Pagination: PaginationConfig{
			DefaultPerPage: getIntOrDefault("DEFAULT_PER_PAGE", 20),
			MaxPerPage:     getIntOrDefault("MAX_PER_PAGE", 100),
		},
		Upload: UploadConfig{
			MaxSize:      int64(getIntOrDefault("UPLOAD_MAX_SIZE", 20*1024*1024)),
			Workers:      getIntOrDefault("UPLOAD_WORKERS", 2),
			QueueLength:  getIntOrDefault("UPLOAD_QUEUE_LENGTH", 64),
			PollInterval: getDurationOrDefault("UPLOAD_POLL_INTERVAL", 10*time.Second),
		},
	}
}

// DSN returns the connection string for the configured driver.
func (d DatabaseConfig) DSN() string {
	if d.Driver == "sqlite" {
		return d.SQLitePath
	}
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC connect_timeout=10",
		d.Host,
		d.Port,
		d.User,
		d.Password,
		d.DBName,
		d.SSLMode,
	)
}

func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "postgres":
		if c.Database.Host == "" {
			return fmt.Errorf("DB_HOST is required")
		}
	case "sqlite":
		if c.Database.SQLitePath == "" {
			return fmt.Errorf("DB_SQLITE_PATH is required")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.Database.Driver)
	}
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.Pagination.DefaultPerPage < 1 || c.Pagination.DefaultPerPage > c.Pagination.MaxPerPage {
		return fmt.Errorf("DEFAULT_PER_PAGE must be between 1 and %d", c.Pagination.MaxPerPage)
	}
	if c.MinIO.AccessKeyID == "" {
		return fmt.Errorf("AWS_ACCESS_KEY_ID is required for MinIO")
	}
	if c.MinIO.SecretAccessKey == "" {
		return fmt.Errorf("AWS_SECRET_ACCESS_KEY is required for MinIO")
	}
	if c.MinIO.Endpoint == "" {
		return fmt.Errorf("AWS_ENDPOINT is required for MinIO")
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
