package router

import (
	"database/sql"
	"net/http"
	"time"

	_ "pet-care-reminders/docs"
	"pet-care-reminders/internal/adapters/storage"
	"pet-care-reminders/internal/domain/applications"
	"pet-care-reminders/internal/domain/calendar"
	"pet-care-reminders/internal/domain/members"
	"pet-care-reminders/internal/domain/pets"
	"pet-care-reminders/internal/domain/treatments"
	"pet-care-reminders/internal/metrics"
	"pet-care-reminders/internal/middleware"
	"pet-care-reminders/internal/platform/logger"
	"pet-care-reminders/internal/ports/auth"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB
	// Repos tiene prioridad sobre DB (tests).
	Repos *storage.Repos

	Logger         logger.Logger
	Location       *time.Location
	AllowedOrigins []string
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.NewNop()
	}
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}
	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Debug-User-ID"},
		ExposedHeaders: []string{"Link"},
		MaxAge:         300,
	}))
	r.Use(middleware.RequestLogger(log))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", metrics.Handler())
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	var repos storage.Repos
	if opts.Repos != nil {
		repos = *opts.Repos
	} else {
		repos = storage.New(opts.DB)
	}

	// Services por módulo
	petsSvc := pets.NewService(repos.Pets)
	membersSvc := members.NewService(repos.Members)
	treatmentsSvc := treatments.NewService(repos.Treatments)
	applicationsSvc := applications.NewService(repos.Applications, loc)
	calendarSvc := calendar.NewService(treatmentsSvc, applicationsSvc, loc)

	// Rutas de dominio: requieren identidad.
	r.Group(func(ar chi.Router) {
		ar.Use(middleware.AuthContext(opts.AuthVerifier))

		pets.RegisterRoutes(ar, petsSvc, membersSvc, membersSvc)
		members.RegisterRoutes(ar, membersSvc)
		treatments.RegisterRoutes(ar, treatmentsSvc, membersSvc)
		applications.RegisterRoutes(ar, applicationsSvc, treatmentsSvc, membersSvc)
		calendar.RegisterRoutes(ar, calendarSvc, petsSvc, membersSvc)
	})

	return r
}
