package jobs

import (
    "context"
    "time"

    "jiralens/internal/config"
    "jiralens/internal/domain"

    "github.com/robfig/cron/v3"
    "github.com/rs/zerolog"
)

type service interface {
    Dashboard(ctx context.Context, project string, maxResults int) (domain.Dashboard, error)
}

// Cron periodically recomputes the default project's dashboard so the
// retrieval cache stays warm between requests.
type Cron struct {
    cfg config.Config
    log zerolog.Logger
    svc service
    c   *cron.Cron
}

func NewCron(cfg config.Config, log zerolog.Logger, svc service) *Cron {
    loc, _ := time.LoadLocation(cfg.TZ)
    c := cron.New(cron.WithLocation(loc), cron.WithParser(cron.NewParser(cron.Minute|cron.Hour|cron.Dom|cron.Month|cron.Dow)))
    cr := &Cron{cfg: cfg, log: log, svc: svc, c: c}
    _, _ = c.AddFunc(cfg.WarmCron, cr.warm)
    return cr
}

func (cr *Cron) Start() { cr.c.Start() }
func (cr *Cron) Stop()  { cr.c.Stop() }

func (cr *Cron) warm() {
    ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
    defer cancel()
    cr.log.Info().Str("project", cr.cfg.DefaultProject).Msg("cron: warming dashboard cache")
    if _, err := cr.svc.Dashboard(ctx, cr.cfg.DefaultProject, cr.cfg.DefaultMaxResults); err != nil {
        cr.log.Error().Err(err).Msg("cron: warm failed")
    }
}
