package v1

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/helixml/csvsplit"
	"github.com/helixml/csvsplit/domain/split"
	"github.com/helixml/csvsplit/infrastructure/api/middleware"
	"github.com/helixml/csvsplit/infrastructure/api/v1/dto"
	"github.com/helixml/csvsplit/internal/config"
)

// RunsRouter handles run history endpoints.
type RunsRouter struct {
	client *csvsplit.Client
	logger *slog.Logger
}

// NewRunsRouter creates a new RunsRouter.
func NewRunsRouter(client *csvsplit.Client) *RunsRouter {
	return &RunsRouter{
		client: client,
		logger: client.Logger(),
	}
}

// Routes returns the chi router for run endpoints.
func (r *RunsRouter) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", r.List)

	return router
}

// List handles GET /api/v1/runs?limit=N.
func (r *RunsRouter) List(w http.ResponseWriter, req *http.Request) {
	limit := config.DefaultHistoryLimit
	if raw := req.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			middleware.WriteError(w, req, middleware.NewAPIError(http.StatusBadRequest, fmt.Sprintf("invalid limit %q", raw), nil), r.logger)
			return
		}
		limit = n
	}

	runs, err := r.client.Splits.Runs(req.Context(), limit)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, RunList(runs))
}

// RunList converts domain runs to their response form.
func RunList(runs []split.Run) dto.RunListResponse {
	data := make([]dto.RunResponse, len(runs))
	for i, run := range runs {
		data[i] = dto.RunResponse{
			ID:          run.ID(),
			Source:      run.Source(),
			NumLines:    run.NumLines(),
			HeaderLines: run.HeaderLines(),
			Files:       run.Files(),
			DataLines:   run.DataLines(),
			State:       string(run.State()),
			Error:       run.Error(),
			StartedAt:   run.StartedAt(),
			FinishedAt:  run.FinishedAt(),
			DurationMS:  run.Duration().Milliseconds(),
		}
	}
	return dto.RunListResponse{Data: data}
}
