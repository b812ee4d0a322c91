package server

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"hrdash/internal/domain/attendance"
	"hrdash/internal/domain/payroll"
	"hrdash/internal/domain/roster"
	"hrdash/internal/hrapi"
	"hrdash/internal/platform/config"
	attendancehandler "hrdash/internal/transport/http/handlers/attendance"
	payrollhandler "hrdash/internal/transport/http/handlers/payroll"
	rosterhandler "hrdash/internal/transport/http/handlers/roster"
	"hrdash/internal/transport/http/middleware"
)

type App struct {
	Config config.Config
	Client *hrapi.Client
	Router http.Handler
}

// New wires the dashboard: one HR API client shared by the three board
// services, each mounted under /api/v1.
func New(cfg config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	client := hrapi.New(cfg.HRAPIBaseURL, cfg.HRAPIToken, cfg.HRAPITimeout)

	board := attendance.NewBoard(client, time.Local)
	rosterService := roster.New(client)
	report := payroll.NewReport(client)
	slipDialog := payroll.NewSlipDialog(client)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
	}))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, cfg.HRAPIBaseURL, nil)
		if err != nil {
			http.Error(w, "hr api not ready", http.StatusServiceUnavailable)
			return
		}
		resp, err := client.HTTP.Do(req)
		if err != nil {
			http.Error(w, "hr api not ready", http.StatusServiceUnavailable)
			return
		}
		resp.Body.Close()
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	router.Route("/api/v1", func(r chi.Router) {
		attendancehandler.NewHandler(board).RegisterRoutes(r)
		rosterhandler.NewHandler(rosterService).RegisterRoutes(r)
		payrollhandler.NewHandler(report, slipDialog).RegisterRoutes(r)
	})

	return &App{Config: cfg, Client: client, Router: router}, nil
}

func Run() {
	cfg := config.Load()
	app, err := New(cfg)
	if err != nil {
		log.Fatalf("configuration invalid: %v", err)
	}

	log.Printf("attendance dashboard listening on %s (hr api %s)", cfg.Addr, cfg.HRAPIBaseURL)
	if err := http.ListenAndServe(cfg.Addr, app.Router); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
