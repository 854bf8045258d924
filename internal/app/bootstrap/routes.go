// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	bugsfeature "github.com/dalemusser/bughub/internal/app/features/bugs"
	healthfeature "github.com/dalemusser/bughub/internal/app/features/health"
	loginfeature "github.com/dalemusser/bughub/internal/app/features/login"
	projectsfeature "github.com/dalemusser/bughub/internal/app/features/projects"
	usersfeature "github.com/dalemusser/bughub/internal/app/features/users"
	"github.com/dalemusser/bughub/internal/app/system/auth"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. At this point you have access to:
//   - coreCfg: WAFFLE core configuration (ports, env, timeouts, etc.)
//   - appCfg: app-specific configuration defined in AppConfig
//   - deps: any DB or backend clients bundled in DBDeps
//   - logger: the fully configured zap.Logger for this app
//
// BugHub builds the bearer token manager, applies CORS for browser
// clients, and mounts the JSON API feature routers under /api along with
// the health endpoint.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	tokens, err := auth.NewManager(appCfg.TokenSecret, appCfg.TokenTTL, logger)
	if err != nil {
		logger.Error("token manager init failed", zap.Error(err))
		return nil, err
	}

	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   appCfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Global auth middleware: parses the bearer token and loads the token
	// user into context when one is present. Route-level middleware in the
	// feature routers enforces sign-in and role requirements.
	r.Use(tokens.LoadTokenUser)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.BugHubMongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	db := deps.BugHubMongoDatabase

	// Authentication
	loginHandler := loginfeature.NewHandler(db, tokens, logger)
	r.Mount("/api/auth", loginfeature.Routes(loginHandler))

	// Bug tracking
	bugsHandler := bugsfeature.NewHandler(db, logger)
	r.Mount("/api/bugs", bugsfeature.Routes(bugsHandler, tokens))

	// Project and team management
	projectsHandler := projectsfeature.NewHandler(db, logger)
	r.Mount("/api/projects", projectsfeature.Routes(projectsHandler, tokens))

	// User management
	usersHandler := usersfeature.NewHandler(db, logger)
	r.Mount("/api/users", usersfeature.Routes(usersHandler, tokens))

	return r, nil
}
