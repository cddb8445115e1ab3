package api

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/AbhishekPandey12/foodorderingapp/internal/auth"
	"github.com/AbhishekPandey12/foodorderingapp/internal/config"
	"github.com/AbhishekPandey12/foodorderingapp/internal/item"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// ImageSigner turns a stored image key into a URL clients can fetch
type ImageSigner interface {
	PresignGet(ctx context.Context, key string) (string, error)
}

type Api struct {
	Config config.Config
	Router *chi.Mux

	auth   *auth.Service
	items  *item.Service
	images ImageSigner
}

// NewApi builds the router. images may be nil, in which case item responses
// carry no image_url.
func NewApi(cfg config.Config, svc *auth.Service, items *item.Service, images ImageSigner) (*Api, error) {
	if cfg.APIPort == 0 {
		return nil, errors.New("Must have at least a port to start API")
	}

	api := &Api{
		Config: cfg,
		Router: chi.NewRouter(),
		auth:   svc,
		items:  items,
		images: images,
	}
	api.setupRoutes()
	return api, nil
}

func (api *Api) setupRoutes() {
	r := api.Router

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   api.Config.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{accessTokenHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Heartbeat("/heartbeat"))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, errorResponse{Code: "NF-001", Message: "Path not found: " + r.URL.Path})
	})

	r.Route("/customer", func(r chi.Router) {
		r.Post("/signup", api.SignupHandler)
		r.Post("/login", api.LoginHandler)
		r.Post("/logout", api.LogoutHandler)
		r.Put("/", api.UpdateCustomerHandler)
		r.Put("/password", api.UpdatePasswordHandler)
	})

	r.Get("/item/{item_id}", api.GetItemHandler)
}

// Serve listens until ctx is cancelled, then shuts down gracefully
func (api *Api) Serve(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf("0.0.0.0:%d", api.Config.APIPort),
		Handler:           api.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	if retention := api.Config.Auth.SessionRetention; retention > 0 {
		go api.purgeSessions(ctx, retention)
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[API] Starting API server on %s", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Println("[API] Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// purgeSessions drops long expired sessions every hour
func (api *Api) purgeSessions(ctx context.Context, retention time.Duration) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()
	for {
		if _, err := api.auth.PurgeSessions(ctx, retention); err != nil && ctx.Err() == nil {
			log.Printf("[API] Error cleaning up expired sessions: %v", err)
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
