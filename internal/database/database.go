package database

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/AbhishekPandey12/foodorderingapp/internal/config"
	_ "github.com/lib/pq" // registers the "postgres" database/sql driver
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open connects to the configured database and returns a gorm handle.
// The schema is not touched; call Migrate for that.
func Open(cfg config.DatabaseConfig) (*gorm.DB, error) {
	log.Printf("[DB] Opening %s database", cfg.Type)

	var dialector gorm.Dialector
	switch cfg.Type {
	case "postgres":
		dialector = postgresDialector(cfg)
	case "sqlite", "":
		d, err := sqliteDialector(cfg)
		if err != nil {
			return nil, err
		}
		dialector = d
	default:
		return nil, fmt.Errorf("unsupported database type: %s", cfg.Type)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.New(log.New(os.Stdout, "[DB] ", log.LstdFlags), logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", cfg.Type, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	if cfg.Type == "postgres" {
		if cfg.MaxConns > 0 {
			sqlDB.SetMaxOpenConns(cfg.MaxConns)
		}
		if cfg.MaxIdle > 0 {
			sqlDB.SetMaxIdleConns(cfg.MaxIdle)
		}
		if cfg.ConnMaxLifetime > 0 {
			sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
		}
	} else {
		sqlDB.SetMaxOpenConns(1) // SQLite only supports one writer
		sqlDB.SetMaxIdleConns(1)
		sqlDB.SetConnMaxLifetime(time.Hour)
	}

	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Printf("[DB] Connection established (%s)", cfg.Type)
	return db, nil
}

// Close releases the underlying connection pool
func Close(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func postgresDialector(cfg config.DatabaseConfig) gorm.Dialector {
	log.Printf("[DB] Host: %s, Port: %s, Database: %s, User: %s, Driver: %s",
		cfg.Host, cfg.Port, cfg.Name, cfg.User, cfg.Driver)

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host,
		cfg.Port,
		cfg.User,
		cfg.Password,
		cfg.Name,
		cfg.SSLMode,
	)

	// An empty driver name makes gorm use pgx; "postgres" goes through lib/pq.
	driver := cfg.Driver
	if driver == "pgx" {
		driver = ""
	}
	return postgres.New(postgres.Config{
		DriverName: driver,
		DSN:        dsn,
	})
}

func sqliteDialector(cfg config.DatabaseConfig) (gorm.Dialector, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("sqlite database path is required")
	}

	if cfg.Path != ":memory:" {
		dataDir := filepath.Dir(cfg.Path)
		if err := createDataDir(dataDir); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_foreign_keys=on&_busy_timeout=5000", cfg.Path)
	log.Printf("[DB] Opening SQLite database with DSN: %s", dsn)
	return sqlite.Open(dsn), nil
}

// createDataDir ensures the data directory exists
func createDataDir(dir string) error {
	if stat, err := os.Stat(dir); err == nil {
		if !stat.IsDir() {
			return fmt.Errorf("path %s exists but is not a directory", dir)
		}
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to stat directory %s: %w", dir, err)
	}

	log.Printf("[DB] Creating data directory: %s", dir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}
