package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	_ "github.com/danielgtaylor/huma/v2/formats/cbor"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/netwify/api/internal/http/health"
	"github.com/netwify/api/internal/http/v1/routes"
	"github.com/netwify/api/internal/platform/auth"
	"github.com/netwify/api/internal/platform/firebase"
	applog "github.com/netwify/api/internal/platform/logging"
	appmiddleware "github.com/netwify/api/internal/platform/middleware"
	"github.com/netwify/api/internal/platform/respond"
	"github.com/netwify/api/internal/service/assistant"
	connectionsvc "github.com/netwify/api/internal/service/connection"
	contactsvc "github.com/netwify/api/internal/service/contact"
	"github.com/netwify/api/internal/service/photo"
	profilesvc "github.com/netwify/api/internal/service/profile"
)

// Version can be overridden at build time: -ldflags "-X main.Version=1.2.3"
var Version = "dev"

func main() {
	// Load .env for local development; missing files are fine.
	_ = godotenv.Load()

	defer func() {
		if err := applog.Sync(); err != nil {
			applog.LogError(context.Background(), "logger sync error", err)
		}
	}()
	if err := applog.Err(); err != nil {
		applog.LogError(context.Background(), "logger init error", err)
	}

	ctx := context.Background()

	clients, err := firebase.InitializeClients(ctx, firebase.Config{
		ProjectID:                    os.Getenv("FIREBASE_PROJECT_ID"),
		StorageBucket:                os.Getenv("FIREBASE_STORAGE_BUCKET"),
		GoogleApplicationCredentials: os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),
	})
	if err != nil {
		applog.LogFatal(ctx, "firebase initialization failed", err)
	}
	defer func() {
		if err := clients.Close(); err != nil {
			applog.LogError(context.Background(), "firebase close error", err)
		}
	}()

	router := chi.NewRouter()
	router.NotFound(respond.NotFoundHandler())
	router.MethodNotAllowed(respond.MethodNotAllowedHandler())

	// Base middleware stack
	router.Use(
		appmiddleware.Security("/api-docs"),
		appmiddleware.Vary(),
		appmiddleware.CORS(),
		appmiddleware.RequestID(),
		// RealIP extracts client IP from X-Real-IP or X-Forwarded-For headers.
		// SECURITY: Only use behind a trusted reverse proxy (e.g., Cloud Run, nginx).
		// Without a trusted proxy, clients can spoof their IP address.
		chimiddleware.RealIP,
		// RequestSize limits request body size. Sized for the photo upload
		// endpoint, which accepts images up to 5 MiB.
		chimiddleware.RequestSize(photo.MaxSize+1),
		applog.RequestLogger(),
		applog.AccessLogger(),
		respond.Recoverer(),
	)

	router.Get("/healthz", health.Handler)

	cfg := huma.DefaultConfig("Netwify API", Version)
	cfg.DocsPath = "/api-docs"
	cfg.Servers = []*huma.Server{{URL: "/v1"}}
	cfg.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearerAuth": {
			Type:         "http",
			Scheme:       "bearer",
			BearerFormat: "JWT",
		},
	}

	respond.Install()

	var api huma.API
	router.Route("/v1", func(r chi.Router) {
		api = humachi.New(r, cfg)
	})

	// Add CBOR content type to OpenAPI requests and responses
	api.OpenAPI().OnAddOperation = append(api.OpenAPI().OnAddOperation,
		func(_ *huma.OpenAPI, op *huma.Operation) {
			if op.RequestBody != nil && op.RequestBody.Content != nil {
				if jsonContent, ok := op.RequestBody.Content["application/json"]; ok {
					op.RequestBody.Content["application/cbor"] = jsonContent
				}
			}
			for _, resp := range op.Responses {
				if resp.Content == nil {
					continue
				}
				if jsonContent, ok := resp.Content["application/json"]; ok {
					resp.Content["application/cbor"] = jsonContent
				}
			}
		},
	)

	// Services
	profileService := profilesvc.NewFirestoreStore(clients.Firestore)
	contactService := contactsvc.NewFirestoreStore(clients.Firestore)

	var connectionOpts []connectionsvc.Option
	if os.Getenv("MUTUAL_REQUEST_POLICY") == string(connectionsvc.MutualAutoAccept) {
		connectionOpts = append(connectionOpts, connectionsvc.WithMutualPolicy(connectionsvc.MutualAutoAccept))
	}
	connectionService := connectionsvc.NewFirestoreStore(clients.Firestore, connectionOpts...)

	photoService := photo.NewGCSStore(clients.Bucket, os.Getenv("FIREBASE_STORAGE_BUCKET"))

	var assistantOpts []assistant.Option
	if base := os.Getenv("GROQ_BASE_URL"); base != "" {
		assistantOpts = append(assistantOpts, assistant.WithBaseURL(base))
	}
	assistantService := assistant.NewClient(
		&http.Client{Timeout: 30 * time.Second},
		os.Getenv("GROQ_API_KEY"),
		assistantOpts...,
	)

	verifier := auth.NewFirebaseVerifier(clients.Auth)

	// Register routes
	routes.Register(api, verifier, profileService, photoService, connectionService, contactService, assistantService)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadTimeout:       30 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    64 << 10, // 64 KB
	}

	listenErr := make(chan error, 1)
	go func() {
		applog.LogInfo(context.Background(), "server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			listenErr <- err
		}
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-listenErr:
		applog.LogError(context.Background(), "listen failed", err, zap.String("addr", srv.Addr))
		os.Exit(1)
	case <-stop:
		applog.LogInfo(context.Background(), "shutdown signal received")
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		applog.LogError(shutdownCtx, "server shutdown error", err)
	}
	applog.LogInfo(context.Background(), "server exited")
}
