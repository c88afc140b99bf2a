package httpapi

import (
	"net/http"
	"strings"

	"github.com/dmitrijs2005/taskkeeper/internal/logging"
	"github.com/dmitrijs2005/taskkeeper/internal/server/config"
)

// pattern builds a ServeMux pattern such as "POST /auth/login".
func pattern(method, basePath, path string) string {
	return method + " " + strings.TrimRight(basePath, "/") + path
}

func wrap(cfg *config.Config, l logging.Logger, mux *http.ServeMux) http.Handler {
	return logRequests(l, enableCORS(cfg.TrustedOrigins, mux))
}

// NewAuthRouter serves register, login and refresh under cfg.BasePath, plus
// the liveness endpoints at the root.
func NewAuthRouter(cfg *config.Config, users UserService, l logging.Logger) http.Handler {
	h := &AuthHandler{users: users, logger: l.With("module", "auth_handler")}

	limit := func(next http.HandlerFunc) http.Handler { return next }
	if cfg.RateLimitEnabled {
		rl := newIPRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
		limit = func(next http.HandlerFunc) http.Handler { return rl.middleware(next) }
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", liveness(map[string]string{"message": "Auth API is running", "service": "authentication"}))
	mux.HandleFunc("GET /health", liveness(map[string]string{"status": "healthy", "service": "authentication-api"}))

	mux.Handle(pattern(http.MethodPost, cfg.BasePath, "/register"), limit(h.register))
	mux.Handle(pattern(http.MethodPost, cfg.BasePath, "/login"), limit(h.login))
	mux.HandleFunc(pattern(http.MethodPost, cfg.BasePath, "/refresh"), h.refresh)

	return wrap(cfg, l, mux)
}

// NewTaskRouter serves the task endpoints under cfg.BasePath. All of them
// require a bearer token accepted by a.
func NewTaskRouter(cfg *config.Config, tasks TaskService, a Authenticator, l logging.Logger) http.Handler {
	logger := l.With("module", "task_handler")
	h := &TaskHandler{tasks: tasks, logger: logger}

	protect := func(next http.HandlerFunc) http.Handler {
		return requireAuthenticatedUser(a, logger, next)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", liveness(map[string]string{"message": "Todo API is running"}))
	mux.HandleFunc("GET /health", liveness(map[string]string{"status": "healthy", "service": "todo-api"}))

	mux.Handle(pattern(http.MethodGet, cfg.BasePath, "/{user_id}/tasks"), protect(h.list))
	mux.Handle(pattern(http.MethodPost, cfg.BasePath, "/{user_id}/tasks"), protect(h.create))
	mux.Handle(pattern(http.MethodGet, cfg.BasePath, "/{user_id}/tasks/{id}"), protect(h.get))
	mux.Handle(pattern(http.MethodPut, cfg.BasePath, "/{user_id}/tasks/{id}"), protect(h.update))
	mux.Handle(pattern(http.MethodDelete, cfg.BasePath, "/{user_id}/tasks/{id}"), protect(h.delete))
	mux.Handle(pattern(http.MethodPatch, cfg.BasePath, "/{user_id}/tasks/{id}/complete"), protect(h.toggle))

	return wrap(cfg, l, mux)
}

func liveness(body map[string]string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, body)
	}
}
