package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"sobracorte/internal/app"
	"sobracorte/internal/core"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Options configures the HTTP handler.
type Options struct {
	AllowedOrigins string
	JWTSecret      string
	MetricsEnabled bool
	Logger         *zap.Logger
}

// Handler holds the ApplicationService and the router configuration.
type Handler struct {
	svc       app.ApplicationService
	jwtSecret string
	log       *zap.Logger
}

// NewHandler creates and wires the chi router with all routes.
func NewHandler(svc app.ApplicationService, opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	h := &Handler{
		svc:       svc,
		jwtSecret: opts.JWTSecret,
		log:       log,
	}

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(Logger(log))
	r.Use(Recoverer(log))
	r.Use(Metrics)
	r.Use(CORS(opts.AllowedOrigins))

	// Public routes.
	r.Get("/api/health", h.health)

	if opts.MetricsEnabled {
		r.Get("/metrics", promhttp.Handler().ServeHTTP)
	}

	// Auth endpoints stay public so sessions can be established.
	r.Group(func(r chi.Router) {
		r.Use(RequestBodyLimit(1 << 20)) // 1 MB
		r.Post("/api/auth/register", h.register)
		r.Post("/api/auth/login", h.login)
		r.Post("/api/auth/logout", h.logout)
	})

	// Everything below requires a valid session token.
	r.Group(func(r chi.Router) {
		r.Use(h.RequireAuth)
		r.Use(RequestBodyLimit(1 << 20)) // 1 MB

		r.Get("/api/auth/me", h.me)

		// Reads: any authenticated role.
		r.Get("/api/materials", h.listMaterials)
		r.Get("/api/materials/{id}", h.getMaterial)
		r.Get("/api/transactions", h.listMovements)
		r.Get("/api/stats", h.stats)
		r.Get("/api/export/materials", h.exportMaterials)
		r.Get("/api/export/transactions", h.exportMovements)

		// Material management: leaders and admins.
		r.Group(func(r chi.Router) {
			r.Use(h.RequirePermission(core.CanManageMaterials))
			r.Post("/api/materials", h.createMaterial)
			r.Put("/api/materials/{id}", h.updateMaterial)
		})

		// Stock movements: movers, leaders, and admins.
		r.Group(func(r chi.Router) {
			r.Use(h.RequirePermission(core.CanMoveStock))
			r.Post("/api/transactions", h.createMovement)
		})

		// Admin only.
		r.Group(func(r chi.Router) {
			r.Use(h.RequirePermission(core.CanManageUsers))
			r.Delete("/api/materials/{id}", h.deleteMaterial)
			r.Get("/api/admin/users", h.listUsers)
			r.Put("/api/admin/users/{id}/role", h.updateUserRole)
		})
	})

	return r
}

// health returns service status.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, struct {
		Status string `json:"status"`
	}{"ok"})
}

// decodeJSON decodes the request body into v and returns false + writes an
// appropriate error response on failure. Returns HTTP 413 when the body
// exceeds the size limit set by RequestBodyLimit middleware; HTTP 400 for
// all other decode errors.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			writeError(w, r, "request body too large", "REQUEST_TOO_LARGE", http.StatusRequestEntityTooLarge)
			return false
		}
		writeError(w, r, "invalid JSON body: "+err.Error(), "INVALID_INPUT", http.StatusBadRequest)
		return false
	}
	return true
}
