package router

import (
	"database/sql"
	"net/http"
	"os"
	"time"

	jwtadapter "med-adherence-tracker/internal/adapters/auth/jwtauth"
	mem "med-adherence-tracker/internal/adapters/storage/memory"
	pg "med-adherence-tracker/internal/adapters/storage/postgres"
	"med-adherence-tracker/internal/domain/accounts"
	"med-adherence-tracker/internal/domain/adherence"
	"med-adherence-tracker/internal/domain/assignments"
	"med-adherence-tracker/internal/domain/medications"
	"med-adherence-tracker/internal/middleware"
	"med-adherence-tracker/internal/platform/logger"
	"med-adherence-tracker/internal/ports/auth"

	_ "med-adherence-tracker/docs"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	Verifier auth.TokenVerifier // puede ser nil (modo dev: X-Debug-User-ID)
	Issuer   auth.TokenIssuer   // si es nil, se usa un issuer HS256 con secret de dev

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	Logger logger.Logger
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.NewFromEnv()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	r.Use(middleware.AuthContext(opts.Verifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	issuer := opts.Issuer
	if issuer == nil {
		log.Warn("no token issuer configured, using dev secret", nil)
		issuer = jwtadapter.New("dev-secret", time.Hour)
	}

	var (
		accountsRepo accounts.Repository
		medsRepo     medications.Repository
		adhRepo      adherence.Repository
		asgRepo      assignments.Repository
	)

	// Si no te pasan DB explícita, intenta por env (para dev/handoff)
	db := opts.DB
	if db == nil {
		if dsn := os.Getenv("DB_DSN"); dsn != "" {
			opened, err := pg.Open(dsn)
			if err == nil {
				db = opened
			} else {
				log.Error("postgres open failed, falling back to memory", map[string]any{"err": err.Error()})
			}
		}
	}

	if db != nil {
		if err := pg.CreateSchema(db); err != nil {
			log.Error("schema creation failed", map[string]any{"err": err.Error()})
		}
		accountsRepo = pg.NewAccountsRepo(db)
		m := pg.NewMedicationsRepo(db)
		medsRepo = m
		adhRepo = m
		asgRepo = pg.NewAssignmentsRepo(db)
	} else {
		accountsRepo = mem.NewAccountsRepo()
		m := mem.NewMedicationsRepo()
		medsRepo = m
		adhRepo = m
		asgRepo = mem.NewAssignmentsRepo()
	}

	// Services por módulo
	accountsSvc := accounts.NewService(accountsRepo)
	medsSvc := medications.NewService(medsRepo)
	adhSvc := adherence.NewService(adhRepo)
	asgSvc := assignments.NewService(asgRepo)

	// Rutas por módulo
	accounts.RegisterRoutes(r, accountsSvc, issuer, asgSvc)
	medications.RegisterRoutes(r, medsSvc, asgSvc)
	adherence.RegisterRoutes(r, adhSvc, asgSvc)
	assignments.RegisterRoutes(r, asgSvc, accountsSvc)

	return r
}
