package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	api "github.com/gwplatform/gradeboard/internal/api/http"
	auth "github.com/gwplatform/gradeboard/internal/auth/middleware"
	"github.com/gwplatform/gradeboard/internal/config"
	"github.com/gwplatform/gradeboard/internal/course"
	"github.com/gwplatform/gradeboard/internal/db"
	"github.com/gwplatform/gradeboard/internal/eventlog"
	"github.com/gwplatform/gradeboard/internal/rbac"
	"github.com/gwplatform/gradeboard/internal/rubric"
)

func main() {
	cfg := config.FromEnv()
	log := zerolog.New(os.Stderr).With().Timestamp().Str("svc", "gradeboard").Logger()

	// --- DB ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("db open failed")
	}

	events := eventlog.NewRepo(dbh)
	courseStore := course.NewSQLStore(dbh, events)
	cache := course.NewCache()
	roster := course.NewRosterService(courseStore, cache, log, cfg.RosterWorkers)
	rubricStore := rubric.NewSQLStore(dbh, events)

	// --- Auth ---
	secret := getenvOr("AUTH_HMAC_SECRET", "supersecret-dev-key")
	authSvc := auth.NewAuthService(secret)

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	origins := cfg.CORSOriginsOffline
	if cfg.Mode == config.ModeOnline {
		origins = cfg.CORSOriginsOnline
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	if cfg.EnableLocalAuth {
		r.Post("/auth/login", auth.LoginHandler(authSvc, dbh))
	}

	// Protected API (JWT -> role in context -> RBAC)
	r.Group(func(pr chi.Router) {
		pr.Use(auth.JWTMiddleware(authSvc))

		pr.With(rbac.Require("roster:view")).
			Get("/courses/{courseID}/roster", api.RosterHandler(roster))
		pr.With(rbac.Require("roster:view")).
			Get("/courses/{courseID}/roster/stats", api.RosterStatsHandler(roster))
		pr.With(rbac.Require("roster:export")).
			Get("/courses/{courseID}/roster/export", api.RosterExportHandler(roster))

		pr.With(rbac.RequireAny("grade:view-own", "grade:view-all")).
			Get("/courses/{courseID}/students/{studentID}/grade", api.StudentGradeHandler(roster))

		pr.With(rbac.Require("grade:view-all")).
			Get("/courses/{courseID}/midterm/submissions", api.ListMidtermSubmissionsHandler(rubricStore))
		pr.With(rbac.Require("grade:edit")).
			Post("/midterm/submissions/{submissionID}/grade", api.SaveRubricGradeHandler(rubricStore, cache))
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })

	log.Info().
		Str("addr", cfg.HTTPAddr).
		Str("mode", string(cfg.Mode)).
		Str("db", cfg.DBDriver).
		Msg("listening")
	if err := http.ListenAndServe(cfg.HTTPAddr, r); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func getenvOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
