package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/AbhishekPandey12/foodorderingapp/internal/api"
	"github.com/AbhishekPandey12/foodorderingapp/internal/auth"
	"github.com/AbhishekPandey12/foodorderingapp/internal/config"
	"github.com/AbhishekPandey12/foodorderingapp/internal/database"
	"github.com/AbhishekPandey12/foodorderingapp/internal/item"
	"github.com/AbhishekPandey12/foodorderingapp/internal/storage"
	"github.com/AbhishekPandey12/foodorderingapp/internal/store"
	"gorm.io/gorm"
)

const version = "0.1.0"

func initializeAPI(ctx context.Context, configPath string) (*api.Api, *gorm.DB, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, nil, err
	}

	db, err := database.Open(cfg.Database)
	if err != nil {
		return nil, nil, err
	}
	if err := database.Migrate(db); err != nil {
		database.Close(db)
		return nil, nil, err
	}

	st := store.New(db)
	svc := auth.NewService(st.Customers, st.Sessions, auth.NewTokenManager(cfg.Auth.JWTSecret),
		auth.WithSessionTTL(cfg.Auth.SessionTTL),
		auth.WithPasswordPolicy(auth.DefaultPasswordPolicy(cfg.Auth.MinPasswordLen)),
		auth.WithHashCost(cfg.Auth.HashCost),
	)

	var images api.ImageSigner
	if cfg.Storage.Bucket != "" {
		client, err := storage.NewS3Client(ctx, cfg.Storage)
		if err != nil {
			database.Close(db)
			return nil, nil, err
		}
		images = client
	}

	a, err := api.NewApi(*cfg, svc, item.NewService(st.Items), images)
	if err != nil {
		database.Close(db)
		return nil, nil, err
	}
	return a, db, nil
}

func main() {
	configPath := flag.String("config", "app.yml", "Path to configuration file")
	flag.Parse()

	log.Printf("Starting food ordering API v%s with config: %s", version, *configPath)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, db, err := initializeAPI(ctx, *configPath)
	if err != nil {
		log.Fatal(err)
	}
	defer database.Close(db)

	if err := a.Serve(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}
