package http

import (
    "html/template"

    "jiralens/internal/config"

    "github.com/gin-gonic/gin"
    "github.com/prometheus/client_golang/prometheus/promhttp"
    "github.com/rs/zerolog"
)

func NewRouter(cfg config.Config, log zerolog.Logger, svc Dashboard) *gin.Engine {
    if cfg.AppEnv != "dev" { gin.SetMode(gin.ReleaseMode) }
    r := gin.New()
    r.Use(gin.Recovery())
    r.Use(func(c *gin.Context) {
        c.Next()
        log.Info().Str("m", c.Request.Method).Str("p", c.FullPath()).Int("s", c.Writer.Status()).Msg("http")
    })
    r.SetHTMLTemplate(template.Must(template.New("dashboard").Parse(dashboardPage)))

    h := NewHandlers(cfg, log, svc)

    r.GET("/", h.Page)
    r.GET("/healthz", h.Healthz)
    r.GET("/metrics", gin.WrapH(promhttp.Handler()))

    api := r.Group("/api")
    api.GET("/dashboard", h.Full)
    api.GET("/time-to-close", h.TimeToClose)
    api.GET("/status-time", h.StatusTime)
    api.GET("/daily-stats", h.DailyStats)
    api.GET("/top-users", h.TopUsers)
    api.GET("/in-progress-time", h.InProgressTime)
    api.GET("/priorities", h.Priorities)

    return r
}
