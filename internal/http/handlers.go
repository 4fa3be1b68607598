package http

import (
    "context"
    "errors"
    "net/http"
    "strconv"

    "jiralens/internal/config"
    "jiralens/internal/domain"

    "github.com/gin-gonic/gin"
    "github.com/rs/zerolog"
)

// Dashboard is the aggregation service as the HTTP layer sees it.
type Dashboard interface {
    Dashboard(ctx context.Context, project string, maxResults int) (domain.Dashboard, error)
    TimeToClose(ctx context.Context, project string, maxResults int) ([]domain.BinCount, error)
    StatusTimeDistribution(ctx context.Context, project string, maxResults int) (map[string][]domain.BinCount, error)
    DailyTaskStats(ctx context.Context, project string, maxResults int) ([]domain.DailyStats, error)
    TopUsers(ctx context.Context, project string, maxResults int) ([]domain.UserCount, error)
    InProgressTime(ctx context.Context, project string, maxResults int) ([]domain.BinCount, error)
    PriorityHistogram(ctx context.Context, project string, maxResults int) ([]domain.BinCount, error)
}

type Handlers struct {
    cfg config.Config
    log zerolog.Logger
    svc Dashboard
}

func NewHandlers(cfg config.Config, log zerolog.Logger, svc Dashboard) *Handlers {
    return &Handlers{cfg: cfg, log: log, svc: svc}
}

// params reads the request-level surface: project key and result cap, both
// falling back to configured defaults.
func (h *Handlers) params(c *gin.Context) (string, int) {
    project := c.DefaultQuery("project", h.cfg.DefaultProject)
    maxResults := h.cfg.DefaultMaxResults
    if v := c.Query("maxResults"); v != "" {
        if n, err := strconv.Atoi(v); err == nil && n > 0 { maxResults = n }
    }
    return project, maxResults
}

func respond(c *gin.Context, data any, err error) {
    if err != nil {
        if errors.Is(err, domain.ErrInvalidProjectKey) {
            c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
            return
        }
        c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
        return
    }
    c.JSON(http.StatusOK, data)
}

func (h *Handlers) Healthz(c *gin.Context) {
    c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handlers) Full(c *gin.Context) {
    project, maxResults := h.params(c)
    d, err := h.svc.Dashboard(c.Request.Context(), project, maxResults)
    respond(c, d, err)
}

func (h *Handlers) TimeToClose(c *gin.Context) {
    project, maxResults := h.params(c)
    d, err := h.svc.TimeToClose(c.Request.Context(), project, maxResults)
    respond(c, d, err)
}

func (h *Handlers) StatusTime(c *gin.Context) {
    project, maxResults := h.params(c)
    d, err := h.svc.StatusTimeDistribution(c.Request.Context(), project, maxResults)
    respond(c, d, err)
}

func (h *Handlers) DailyStats(c *gin.Context) {
    project, maxResults := h.params(c)
    d, err := h.svc.DailyTaskStats(c.Request.Context(), project, maxResults)
    respond(c, d, err)
}

func (h *Handlers) TopUsers(c *gin.Context) {
    project, maxResults := h.params(c)
    d, err := h.svc.TopUsers(c.Request.Context(), project, maxResults)
    respond(c, d, err)
}

func (h *Handlers) InProgressTime(c *gin.Context) {
    project, maxResults := h.params(c)
    d, err := h.svc.InProgressTime(c.Request.Context(), project, maxResults)
    respond(c, d, err)
}

func (h *Handlers) Priorities(c *gin.Context) {
    project, maxResults := h.params(c)
    d, err := h.svc.PriorityHistogram(c.Request.Context(), project, maxResults)
    respond(c, d, err)
}

// Page renders the dashboard view with the datasets inlined as JSON for the
// client-side charts.
func (h *Handlers) Page(c *gin.Context) {
    project, maxResults := h.params(c)
    d, err := h.svc.Dashboard(c.Request.Context(), project, maxResults)
    if err != nil {
        if errors.Is(err, domain.ErrInvalidProjectKey) {
            c.String(http.StatusBadRequest, "invalid project key")
            return
        }
        c.String(http.StatusInternalServerError, err.Error())
        return
    }
    c.HTML(http.StatusOK, "dashboard", gin.H{"Project": project, "Data": d})
}
