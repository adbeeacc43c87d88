package handler

import (
	"encoding/json"
	"io/fs"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/mtlprog/catpage/docs" // Import generated docs
	"github.com/mtlprog/catpage/internal/domain"
	"github.com/mtlprog/catpage/internal/handler/dto"
	"github.com/mtlprog/catpage/internal/middleware"
	"github.com/mtlprog/catpage/internal/service"
	"github.com/mtlprog/catpage/internal/static"
)

// Handler holds dependencies for HTTP handlers.
type Handler struct {
	pageService       *service.PageService
	sessionMiddleware *middleware.SessionMiddleware
	assets            fs.FS
	opts              Options
}

// Options tunes the HTTP layer.
type Options struct {
	// SecureCookies marks the session cookie Secure.
	SecureCookies bool
	// AllowedOrigins lists origins allowed to call the JSON API. Empty allows all.
	AllowedOrigins []string
}

// New creates a new Handler instance with all dependencies.
func New(pageService *service.PageService, opts Options) *Handler {
	return &Handler{
		pageService:       pageService,
		sessionMiddleware: middleware.NewSessionMiddleware(opts.SecureCookies),
		assets:            static.Assets(),
		opts:              opts,
	}
}

// RegisterRoutes registers all HTTP routes.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	// Health check
	mux.HandleFunc("GET /healthz", h.handleHealthz)

	// Stylesheet and carousel script
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(h.assets)))

	// Swagger UI
	mux.HandleFunc("GET /swagger/", httpSwagger.Handler())

	// HTML page
	mux.Handle("GET /{$}", h.sessionMiddleware.Attach(http.HandlerFunc(h.handlePage)))
	mux.Handle("POST /tab", h.sessionMiddleware.Attach(http.HandlerFunc(h.handleSelectTabForm)))
	mux.Handle("POST /breeds/{index}/rating", h.sessionMiddleware.Attach(http.HandlerFunc(h.handleRateBreedForm)))
	mux.Handle("POST /fact", h.sessionMiddleware.Attach(http.HandlerFunc(h.handleShuffleFactForm)))

	// API v1 routes
	mux.Handle("GET /api/v1/state", h.sessionMiddleware.Attach(http.HandlerFunc(h.handleGetState)))
	mux.Handle("GET /api/v1/state/ws", h.sessionMiddleware.Attach(http.HandlerFunc(h.handleStateStream)))
	mux.Handle("PUT /api/v1/tab", h.sessionMiddleware.Attach(http.HandlerFunc(h.handleSelectTab)))
	mux.Handle("PUT /api/v1/breeds/{index}/rating", h.sessionMiddleware.Attach(http.HandlerFunc(h.handleRateBreed)))
	mux.Handle("POST /api/v1/fact", h.sessionMiddleware.Attach(http.HandlerFunc(h.handleShuffleFact)))
}

// Router returns the full handler chain: routes, CORS for the API and
// request logging.
func (h *Handler) Router() http.Handler {
	mux := http.NewServeMux()
	h.RegisterRoutes(mux)

	c := cors.New(cors.Options{
		AllowedOrigins:   h.opts.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
	})

	return middleware.LogRequests(c.Handler(mux))
}

// handleHealthz returns 200 OK if the state store is reachable.
func (h *Handler) handleHealthz(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.pageService.Ping(ctx); err != nil {
		slog.Error("state store health check failed", "error", err)
		http.Error(w, "state store unavailable", http.StatusServiceUnavailable)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// respondJSON writes a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// respondError writes a standard error response.
func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, dto.NewErrorResponse(code, message))
}

// respondDomainError maps err to a status and writes it.
func respondDomainError(w http.ResponseWriter, err error) {
	status, code, message := dto.MapDomainError(err)
	respondError(w, status, code, message)
}

// extractBreedIndex parses the {index} path parameter.
// A non-numeric index is reported the same way as an out-of-range one.
func extractBreedIndex(r *http.Request) (int, error) {
	raw := r.PathValue("index")
	index, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domain.ErrBreedNotFound
	}
	return index, nil
}

// sessionID returns the session attached by the middleware.
func sessionID(r *http.Request) (string, error) {
	return middleware.GetSessionFromContext(r.Context())
}
