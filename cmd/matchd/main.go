package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	api "github.com/bu-spark/projectmatch/internal/api/http"
	"github.com/bu-spark/projectmatch/internal/assign"
	auth "github.com/bu-spark/projectmatch/internal/auth/middleware"
	"github.com/bu-spark/projectmatch/internal/config"
	"github.com/bu-spark/projectmatch/internal/db"
	"github.com/bu-spark/projectmatch/internal/rbac"
	"github.com/bu-spark/projectmatch/internal/roster"
	"github.com/bu-spark/projectmatch/internal/run"
	"github.com/bu-spark/projectmatch/internal/storage"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func main() {
	cfg := config.FromEnv()

	// --- DB ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}
	store := run.NewSQLStore(dbh, cfg.DBDriver)

	// --- Solver ---
	solver := assign.CPSATSolver{
		TimeLimit: time.Duration(cfg.SolverTimeLimitSec) * time.Second,
	}

	// --- Auth ---
	secret := getenvOr("AUTH_HMAC_SECRET", "supersecret-dev-key")
	authSvc := auth.NewAuthService(secret)
	creds := []auth.Credential{
		{User: cfg.AdminUser, Hash: cfg.AdminPassHash, Role: "admin"},
	}

	// --- Blob archive for roster uploads ---
	blobs, err := storage.NewFSStore(cfg.BlobBasePath)
	if err != nil {
		log.Fatalf("blob store: %v", err)
	}

	convOpts := roster.ConvertOptions{
		DefaultProjectCapacity: cfg.DefaultProjectCapacity,
		MinTeamSize:            cfg.MinTeamSize,
		MaxSectionsPerTeam:     cfg.MaxSectionsPerTeam,
		TeamSizeTarget:         cfg.TeamSizeTarget,
		SwapPasses:             cfg.SwapPasses,
	}

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(5 * time.Minute)) // solves can take a while

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Post("/auth/login", auth.LoginHandler(authSvc, creds))

	// Protected API (JWT → role in context → RBAC)
	r.Group(func(pr chi.Router) {
		pr.Use(auth.JWTMiddleware(authSvc))

		pr.With(rbac.Require("run:create")).
			Post("/runs", api.CreateRunHandler(store, solver))
		pr.With(rbac.Require("run:view")).
			Get("/runs", api.ListRunsHandler(store))
		pr.With(rbac.Require("run:view")).
			Get("/runs/{runID}", api.GetRunHandler(store))
		pr.With(rbac.RequireAny("report:view", "run:view")).
			Get("/runs/{runID}/report", api.RunReportHandler(store))

		pr.With(rbac.Require("roster:import")).
			Post("/roster/import", api.ImportRosterHandler(store, solver, blobs, convOpts))
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })

	log.Printf("listening on %s (db=%s)", cfg.HTTPAddr, cfg.DBDriver)
	log.Fatal(http.ListenAndServe(cfg.HTTPAddr, r))
}

func getenvOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
