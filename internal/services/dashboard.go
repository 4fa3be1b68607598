package services

import (
    "context"
    "sort"
    "strconv"
    "sync"
    "time"

    "jiralens/internal/domain"
    "jiralens/internal/metrics"

    "github.com/rs/zerolog"
)

// Fetcher is the retrieval collaborator. It must not fail past this
// boundary: on any transport or parse error it returns an empty slice.
type Fetcher interface {
    SearchIssues(ctx context.Context, jql string, maxResults int) []domain.RawIssue
}

// inProgressStatus is the status whose cumulative time feeds the
// active-work histogram.
const inProgressStatus = "In Progress"

const topUsersLimit = 30

type Service struct {
    log  zerolog.Logger
    jira Fetcher
}

func New(log zerolog.Logger, jira Fetcher) *Service {
    return &Service{log: log, jira: jira}
}

// issues validates the project key, builds the filter, fetches raw records,
// and reconstructs each. The only possible error is an invalid key.
func (s *Service) issues(ctx context.Context, project string, kind queryKind, maxResults int) ([]domain.Issue, error) {
    if err := ValidateProjectKey(project); err != nil { return nil, err }
    jql := buildJQL(project, kind)
    raw := s.jira.SearchIssues(ctx, jql, maxResults)
    out := make([]domain.Issue, 0, len(raw))
    for _, r := range raw {
        out = append(out, ReconstructIssue(r))
    }
    s.log.Debug().Str("jql", jql).Int("issues", len(out)).Msg("issues reconstructed")
    return out, nil
}

// TimeToClose bins closed issues by the whole days between creation and
// resolution, one bin per distinct day count.
func (s *Service) TimeToClose(ctx context.Context, project string, maxResults int) ([]domain.BinCount, error) {
    metrics.DatasetRequests.WithLabelValues("timeToClose").Inc()
    issues, err := s.issues(ctx, project, queryClosed, maxResults)
    if err != nil { return nil, err }
    counts := map[int64]int{}
    for _, is := range issues {
        if is.Created == nil || is.Resolved == nil { continue }
        counts[daysBetween(*is.Created, *is.Resolved)]++
    }
    return dayBins(counts), nil
}

// StatusTimeDistribution groups every duration entry of every closed issue
// by status, then bins each status by day count.
func (s *Service) StatusTimeDistribution(ctx context.Context, project string, maxResults int) (map[string][]domain.BinCount, error) {
    metrics.DatasetRequests.WithLabelValues("statusTime").Inc()
    issues, err := s.issues(ctx, project, queryClosed, maxResults)
    if err != nil { return nil, err }
    counts := map[string]map[int64]int{}
    for _, is := range issues {
        for _, sd := range is.StatusDurations {
            m := counts[sd.Status]
            if m == nil {
                m = map[int64]int{}
                counts[sd.Status] = m
            }
            m[sd.Days]++
        }
    }
    out := make(map[string][]domain.BinCount, len(counts))
    for st, m := range counts {
        out[st] = dayBins(m)
    }
    return out, nil
}

// DailyTaskStats builds a gapless daily sequence from the earliest to the
// latest created/resolved date, with per-day and running totals. An input
// with no dated issues yields an empty sequence.
func (s *Service) DailyTaskStats(ctx context.Context, project string, maxResults int) ([]domain.DailyStats, error) {
    metrics.DatasetRequests.WithLabelValues("dailyStats").Inc()
    issues, err := s.issues(ctx, project, queryAnyDate, maxResults)
    if err != nil { return nil, err }

    created := map[time.Time]int{}
    resolved := map[time.Time]int{}
    for _, is := range issues {
        if is.Created != nil { created[dateOf(*is.Created)]++ }
        if is.Resolved != nil { resolved[dateOf(*is.Resolved)]++ }
    }
    if len(created) == 0 && len(resolved) == 0 { return nil, nil }

    var start, end time.Time
    first := true
    for _, m := range []map[time.Time]int{created, resolved} {
        for d := range m {
            if first || d.Before(start) { start = d }
            if first || d.After(end) { end = d }
            first = false
        }
    }

    var out []domain.DailyStats
    cumCreated, cumResolved := 0, 0
    for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
        c := created[d]
        r := resolved[d]
        cumCreated += c
        cumResolved += r
        out = append(out, domain.DailyStats{
            Date:        d.Format("2006-01-02"),
            Created:     c,
            Resolved:    r,
            CumCreated:  cumCreated,
            CumResolved: cumResolved,
        })
    }
    return out, nil
}

// TopUsers counts reporter and assignee appearances independently and keeps
// the top 30 by count, names ascending on equal counts.
func (s *Service) TopUsers(ctx context.Context, project string, maxResults int) ([]domain.UserCount, error) {
    metrics.DatasetRequests.WithLabelValues("topUsers").Inc()
    issues, err := s.issues(ctx, project, queryClosed, maxResults)
    if err != nil { return nil, err }
    counts := map[string]int{}
    for _, is := range issues {
        if is.Reporter != "" { counts[is.Reporter]++ }
        if is.Assignee != "" { counts[is.Assignee]++ }
    }
    out := make([]domain.UserCount, 0, len(counts))
    for user, n := range counts {
        out = append(out, domain.UserCount{User: user, Count: n})
    }
    sort.Slice(out, func(i, j int) bool {
        if out[i].Count != out[j].Count { return out[i].Count > out[j].Count }
        return out[i].User < out[j].User
    })
    if len(out) > topUsersLimit { out = out[:topUsersLimit] }
    return out, nil
}

// InProgressTime bins closed, resolved issues by the whole days their
// collapsed timeline spent in the In Progress status.
func (s *Service) InProgressTime(ctx context.Context, project string, maxResults int) ([]domain.BinCount, error) {
    metrics.DatasetRequests.WithLabelValues("inProgressTime").Inc()
    issues, err := s.issues(ctx, project, queryClosed, maxResults)
    if err != nil { return nil, err }
    counts := map[int64]int{}
    for _, is := range issues {
        if is.Resolved == nil { continue }
        for _, sd := range is.StatusDurations {
            if sd.Status == inProgressStatus {
                counts[sd.Days]++
                break
            }
        }
    }
    return dayBins(counts), nil
}

// PriorityHistogram groups issues by priority name, skipping issues with no
// priority; timestamps do not matter here.
func (s *Service) PriorityHistogram(ctx context.Context, project string, maxResults int) ([]domain.BinCount, error) {
    metrics.DatasetRequests.WithLabelValues("priorities").Inc()
    issues, err := s.issues(ctx, project, queryAll, maxResults)
    if err != nil { return nil, err }
    counts := map[string]int{}
    for _, is := range issues {
        if is.Priority != "" { counts[is.Priority]++ }
    }
    out := make([]domain.BinCount, 0, len(counts))
    for pri, n := range counts {
        out = append(out, domain.BinCount{Bin: pri, Count: n})
    }
    sort.Slice(out, func(i, j int) bool {
        if out[i].Count != out[j].Count { return out[i].Count > out[j].Count }
        return out[i].Bin < out[j].Bin
    })
    return out, nil
}

// Dashboard computes all six datasets for one request. The datasets are
// independent, so they fan out concurrently; the retrieval cache collapses
// the six fetches onto three filter expressions.
func (s *Service) Dashboard(ctx context.Context, project string, maxResults int) (domain.Dashboard, error) {
    if err := ValidateProjectKey(project); err != nil { return domain.Dashboard{}, err }
    var d domain.Dashboard
    var wg sync.WaitGroup
    wg.Add(6)
    go func() { defer wg.Done(); d.TimeToClose, _ = s.TimeToClose(ctx, project, maxResults) }()
    go func() { defer wg.Done(); d.StatusTime, _ = s.StatusTimeDistribution(ctx, project, maxResults) }()
    go func() { defer wg.Done(); d.DailyStats, _ = s.DailyTaskStats(ctx, project, maxResults) }()
    go func() { defer wg.Done(); d.TopUsers, _ = s.TopUsers(ctx, project, maxResults) }()
    go func() { defer wg.Done(); d.InProgressTime, _ = s.InProgressTime(ctx, project, maxResults) }()
    go func() { defer wg.Done(); d.Priorities, _ = s.PriorityHistogram(ctx, project, maxResults) }()
    wg.Wait()
    return d, nil
}

// dayBins turns day-count tallies into histogram bins sorted numerically
// ascending, labels being the decimal day count.
func dayBins(counts map[int64]int) []domain.BinCount {
    if len(counts) == 0 { return nil }
    days := make([]int64, 0, len(counts))
    for d := range counts {
        days = append(days, d)
    }
    sort.Slice(days, func(i, j int) bool { return days[i] < days[j] })
    out := make([]domain.BinCount, 0, len(days))
    for _, d := range days {
        out = append(out, domain.BinCount{Bin: strconv.FormatInt(d, 10), Count: counts[d]})
    }
    return out
}

func dateOf(t time.Time) time.Time {
    return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
