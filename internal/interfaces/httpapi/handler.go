package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"

	"github.com/riskibarqy/wins-pool/internal/platform/logging"
	"github.com/riskibarqy/wins-pool/internal/usecase"
)

// AutoRefreshToggle is the runtime switch behind PUT /v1/auto-refresh.
type AutoRefreshToggle interface {
	SetEnabled(enabled bool)
	Enabled() bool
}

type Handler struct {
	dashboard   *usecase.DashboardService
	autoRefresh AutoRefreshToggle
	logger      *logging.Logger
	validator   *validator.Validate
}

func NewHandler(dashboard *usecase.DashboardService, autoRefresh AutoRefreshToggle, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		dashboard:   dashboard,
		autoRefresh: autoRefresh,
		logger:      logger.Named("httpapi"),
		validator:   validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetDashboard")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, dashboardToDTO(h.dashboard.Dashboard(ctx)))
}

func (h *Handler) ListOwners(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListOwners")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, ownerCardsToDTO(h.dashboard.Owners(ctx)))
}

func (h *Handler) ListTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeams")
	defer span.End()

	query := listTeamsQuery{Sort: strings.ToLower(strings.TrimSpace(r.URL.Query().Get("sort")))}
	if err := h.validateRequest(ctx, query); err != nil {
		writeError(ctx, w, err)
		return
	}

	teams, err := h.dashboard.Teams(ctx, usecase.TeamSort(query.Sort))
	if err != nil {
		h.logger.WarnContext(ctx, "list teams failed", "sort", query.Sort, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamDetailsToDTO(teams))
}

func (h *Handler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSchedule")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, scheduleToDTO(h.dashboard.ScheduleSection()))
}

func (h *Handler) GetRefreshStatus(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetRefreshStatus")
	defer span.End()

	status := refreshStatusToDTO(h.dashboard.Status(), false)
	status.Refreshing = h.dashboard.Refreshing()
	status.AutoRefresh = h.autoRefreshEnabled()
	writeSuccess(ctx, w, http.StatusOK, status)
}

// TriggerRefresh blocks until the cycle it started or joined has published a snapshot.
func (h *Handler) TriggerRefresh(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.TriggerRefresh")
	defer span.End()

	status, joined := h.dashboard.Refresh(ctx)
	out := refreshStatusToDTO(status, joined)
	out.AutoRefresh = h.autoRefreshEnabled()
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) SetAutoRefresh(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SetAutoRefresh")
	defer span.End()

	if h.autoRefresh == nil {
		writeError(ctx, w, fmt.Errorf("%w: auto refresh is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	var req autoRefreshRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	h.autoRefresh.SetEnabled(*req.Enabled)

	writeSuccess(ctx, w, http.StatusOK, autoRefreshDTO{Enabled: h.autoRefresh.Enabled()})
}

func (h *Handler) autoRefreshEnabled() bool {
	return h.autoRefresh != nil && h.autoRefresh.Enabled()
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

type listTeamsQuery struct {
	Sort string `validate:"omitempty,oneof=name wins"`
}

type autoRefreshRequest struct {
	Enabled *bool `json:"enabled" validate:"required"`
}
