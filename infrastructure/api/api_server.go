package api

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/helixml/csvsplit"
	apimiddleware "github.com/helixml/csvsplit/infrastructure/api/middleware"
	v1 "github.com/helixml/csvsplit/infrastructure/api/v1"
	mcpinternal "github.com/helixml/csvsplit/internal/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// APIServer provides an HTTP API backed by a csvsplit Client.
type APIServer struct {
	client         *csvsplit.Client
	allowedOrigins []string
	version        string
	server         Server
	logger         *slog.Logger
}

// NewAPIServer creates a new APIServer for addr wired to the given Client.
// allowedOrigins configures CORS; an empty list allows any origin.
func NewAPIServer(client *csvsplit.Client, addr string, allowedOrigins []string, version string) *APIServer {
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	a := &APIServer{
		client:         client,
		allowedOrigins: allowedOrigins,
		version:        version,
		logger:         client.Logger(),
	}
	a.server = NewServer(addr, a.logger)
	a.mountRoutes(a.server.Router())
	return a
}

// mountRoutes wires up health, v1 and MCP routes on the given router.
func (a *APIServer) mountRoutes(router chi.Router) {
	router.Use(apimiddleware.Logging(a.logger))
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: a.allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "Mcp-Session-Id", "Mcp-Protocol-Version"},
		ExposedHeaders: []string{"Mcp-Session-Id"},
		MaxAge:         300,
	}))

	router.Get("/health", a.health)
	router.Get("/healthz", a.health)

	splitRouter := v1.NewSplitRouter(a.client)
	runsRouter := v1.NewRunsRouter(a.client)

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(chimiddleware.Timeout(10 * time.Minute))
		r.Mount("/split", splitRouter.Routes())
		r.Mount("/runs", runsRouter.Routes())
	})

	// Streaming endpoint; no Timeout middleware.
	mcpSrv := mcpinternal.NewServer(a.client.Splits, a.version, a.logger)
	router.Mount("/mcp", server.NewStreamableHTTPServer(mcpSrv.MCPServer()))
}

func (a *APIServer) health(w http.ResponseWriter, _ *http.Request) {
	apimiddleware.WriteJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"version": a.version,
	})
}

// ListenAndServe listens on the configured address and serves until Shutdown.
func (a *APIServer) ListenAndServe() error {
	return a.server.Start()
}

// Serve serves on an existing listener until Shutdown.
func (a *APIServer) Serve(ln net.Listener) error {
	return a.server.Serve(ln)
}

// Shutdown gracefully shuts down the server.
func (a *APIServer) Shutdown(ctx context.Context) error {
	return a.server.Shutdown(ctx)
}

// Addr returns the configured listen address.
func (a *APIServer) Addr() string {
	return a.server.Addr()
}

// Handler returns the routed http.Handler.
func (a *APIServer) Handler() http.Handler {
	return a.server.Router()
}
