// Package v1 implements the version 1 HTTP API routes.
package v1

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/helixml/csvsplit"
	"github.com/helixml/csvsplit/domain/split"
	"github.com/helixml/csvsplit/infrastructure/api/middleware"
	"github.com/helixml/csvsplit/infrastructure/api/v1/dto"
)

// SplitRouter handles split API endpoints.
type SplitRouter struct {
	client *csvsplit.Client
	logger *slog.Logger
}

// NewSplitRouter creates a new SplitRouter.
func NewSplitRouter(client *csvsplit.Client) *SplitRouter {
	return &SplitRouter{
		client: client,
		logger: client.Logger(),
	}
}

// Routes returns the chi router for split endpoints.
func (r *SplitRouter) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/", r.Split)

	return router
}

// Split handles POST /api/v1/split.
func (r *SplitRouter) Split(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()

	var body dto.SplitRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		middleware.WriteError(w, req, middleware.NewAPIError(http.StatusBadRequest, "invalid request body", err), r.logger)
		return
	}

	numLines := r.client.NumLines(ctx)
	if body.NumLines != nil {
		numLines = *body.NumLines
	}

	var opts []split.RequestOption
	switch {
	case body.HeaderLines != nil:
		opts = append(opts, split.WithHeaderLines(*body.HeaderLines))
	case body.WithHeader != nil:
		opts = append(opts, split.WithHeader(*body.WithHeader))
	}

	result, err := r.client.Splits.Split(ctx, split.NewRequest(body.Path, numLines, opts...))
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, dto.SplitResponse{
		Files:       result.Files(),
		Paths:       result.Paths(),
		HeaderLines: result.HeaderLines(),
		DataLines:   result.DataLines(),
	})
}
