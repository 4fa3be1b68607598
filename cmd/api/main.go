package main

import (
    "os"
    "os/signal"
    "syscall"
    "time"

    "jiralens/internal/config"
    httpx "jiralens/internal/http"
    "jiralens/internal/jira"
    "jiralens/internal/jobs"
    "jiralens/internal/logger"
    "jiralens/internal/services"
)

func main() {
    cfg := config.Load()
    log := logger.New(cfg)

    // Adapters
    jc := jira.NewClient(cfg, log)

    // Services
    svc := services.New(log, jc)

    // HTTP server (Gin)
    router := httpx.NewRouter(cfg, log, svc)

    // Cron cache warmer
    if cfg.WarmEnabled {
        cr := jobs.NewCron(cfg, log, svc)
        cr.Start()
        defer cr.Stop()
    }

    errCh := make(chan error, 1)
    go func() { errCh <- router.Run(cfg.HTTPAddr) }()
    log.Info().Str("addr", cfg.HTTPAddr).Str("project", cfg.DefaultProject).Msg("listening")

    sigCh := make(chan os.Signal, 1)
    signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

    select {
    case <-sigCh:
        log.Info().Msg("shutting down...")
    case err := <-errCh:
        if err != nil { log.Error().Err(err).Msg("http server error") }
    }

    time.Sleep(500 * time.Millisecond)
}
