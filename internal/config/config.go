package config

import (
	"errors"
	"io/fs"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	APIPort  int            `mapstructure:"apiPort"`
	Database DatabaseConfig `mapstructure:"database"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Storage  StorageConfig  `mapstructure:"storage"`
	CORS     struct {
		AllowedOrigins []string `mapstructure:"allowedOrigins"`
	} `mapstructure:"cors"`
}

type DatabaseConfig struct {
	Type            string        `mapstructure:"type"` // sqlite or postgres
	Path            string        `mapstructure:"path"`
	Host            string        `mapstructure:"host"`
	Port            string        `mapstructure:"port"`
	Name            string        `mapstructure:"name"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	SSLMode         string        `mapstructure:"sslMode"`
	Driver          string        `mapstructure:"driver"` // pgx or postgres (lib/pq)
	MaxConns        int           `mapstructure:"maxConns"`
	MaxIdle         int           `mapstructure:"maxIdle"`
	ConnMaxLifetime time.Duration `mapstructure:"connMaxLifetime"`
}

type AuthConfig struct {
	JWTSecret        string        `mapstructure:"jwtSecret"`
	SessionTTL       time.Duration `mapstructure:"sessionTTL"`
	MinPasswordLen   int           `mapstructure:"minPasswordLen"`
	HashCost         int           `mapstructure:"hashCost"`
	SessionRetention time.Duration `mapstructure:"sessionRetention"`
}

// StorageConfig points at the bucket holding item images. An empty bucket
// disables image URLs.
type StorageConfig struct {
	Endpoint        string        `mapstructure:"endpoint"`
	Region          string        `mapstructure:"region"`
	Bucket          string        `mapstructure:"bucket"`
	AccessKeyID     string        `mapstructure:"accessKeyID"`
	SecretAccessKey string        `mapstructure:"secretAccessKey"`
	URLExpiry       time.Duration `mapstructure:"urlExpiry"`
}

var envKeys = []string{
	"apiPort",
	"database.type", "database.path", "database.host", "database.port", "database.name",
	"database.user", "database.password", "database.sslMode", "database.driver",
	"database.maxConns", "database.maxIdle", "database.connMaxLifetime",
	"auth.jwtSecret", "auth.sessionTTL", "auth.minPasswordLen", "auth.hashCost", "auth.sessionRetention",
	"storage.endpoint", "storage.region", "storage.bucket", "storage.accessKeyID",
	"storage.secretAccessKey", "storage.urlExpiry",
	"cors.allowedOrigins",
}

// LoadConfig loads the configuration from a .env file, the YAML file at path
// and environment variables, in increasing order of precedence.
func LoadConfig(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println(".env not loaded:", err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// Unmarshal only sees env vars for keys viper already knows about.
	for _, key := range envKeys {
		if err := v.BindEnv(key); err != nil {
			return nil, err
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		log.Printf("Warning: Could not read config file: %s. Using defaults or environment variables.", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.APIPort == 0 {
		cfg.APIPort = 8080
		log.Println("APIPort not specified, using default 8080")
	}

	if cfg.Database.Type == "" {
		cfg.Database.Type = "sqlite"
		log.Println("Database type not specified, using sqlite")
	}
	if cfg.Database.Type == "sqlite" && cfg.Database.Path == "" {
		cfg.Database.Path = "data/foodordering.db"
		log.Println("Database path not specified, using default data/foodordering.db")
	}
	if cfg.Database.Type == "postgres" {
		if cfg.Database.Host == "" {
			cfg.Database.Host = "localhost"
		}
		if cfg.Database.Port == "" {
			cfg.Database.Port = "5432"
		}
		if cfg.Database.SSLMode == "" {
			cfg.Database.SSLMode = "disable"
		}
		if cfg.Database.Driver == "" {
			cfg.Database.Driver = "pgx"
		}
	}

	if cfg.Auth.JWTSecret == "" {
		cfg.Auth.JWTSecret = "change-me" // Should be overridden in production
		log.Println("Warning: auth.jwtSecret not specified, using an insecure default")
	}
	if cfg.Auth.SessionTTL <= 0 {
		cfg.Auth.SessionTTL = 8 * time.Hour
	}
	if cfg.Auth.MinPasswordLen <= 0 {
		cfg.Auth.MinPasswordLen = 8
	}

	if cfg.Storage.URLExpiry <= 0 {
		cfg.Storage.URLExpiry = 15 * time.Minute
	}

	if len(cfg.CORS.AllowedOrigins) == 0 {
		cfg.CORS.AllowedOrigins = []string{"http://localhost:*", "http://127.0.0.1:*"}
	}
}
