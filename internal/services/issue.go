package services

import (
    "sort"
    "time"

    "jiralens/internal/domain"
)

const jiraTimeLayout = "2006-01-02T15:04:05"

// parseJiraTime parses a Jira timestamp. Only the first 19 characters are
// significant; fractional seconds and timezone offsets are ignored. Anything
// shorter or unparseable yields nil.
func parseJiraTime(s string) *time.Time {
    if len(s) < len(jiraTimeLayout) { return nil }
    t, err := time.Parse(jiraTimeLayout, s[:len(jiraTimeLayout)])
    if err != nil { return nil }
    return &t
}

// daysBetween counts the calendar days crossed between a and b, ignoring the
// time of day. The counts telescope: daysBetween(a,b)+daysBetween(b,c) equals
// daysBetween(a,c).
func daysBetween(a, b time.Time) int64 {
    return int64(dateOf(b).Sub(dateOf(a)) / (24 * time.Hour))
}

type changeEvent struct {
    at   time.Time
    from string
    to   string
}

// ReconstructIssue normalizes one raw search record into a domain.Issue,
// deriving the per-status duration list from the changelog.
func ReconstructIssue(raw domain.RawIssue) domain.Issue {
    issue := domain.Issue{
        Key:      raw.Key,
        Created:  parseJiraTime(raw.Fields.Created),
        Resolved: parseJiraTime(raw.Fields.ResolutionDate),
    }
    if raw.Fields.Status != nil { issue.Status = raw.Fields.Status.Name }
    if raw.Fields.Priority != nil { issue.Priority = raw.Fields.Priority.Name }
    if raw.Fields.Reporter != nil { issue.Reporter = raw.Fields.Reporter.DisplayName }
    if raw.Fields.Assignee != nil { issue.Assignee = raw.Fields.Assignee.DisplayName }
    issue.StatusDurations = statusDurations(raw, issue)
    return issue
}

// statusDurations folds the issue's status-change events into cumulative
// whole days per status. Reconstruction needs a closed interval, so issues
// without both creation and resolution timestamps get an empty list.
func statusDurations(raw domain.RawIssue, issue domain.Issue) []domain.StatusDuration {
    if issue.Created == nil || issue.Resolved == nil { return nil }
    if raw.Changelog == nil { return nil }

    var events []changeEvent
    for _, h := range raw.Changelog.Histories {
        at := parseJiraTime(h.Created)
        if at == nil { continue }
        for _, item := range h.Items {
            if item.Field != "status" { continue }
            events = append(events, changeEvent{at: *at, from: item.FromString, to: item.ToString})
        }
    }
    // Equal timestamps keep raw changelog order.
    sort.SliceStable(events, func(i, j int) bool { return events[i].at.Before(events[j].at) })

    totals := map[string]int64{}
    last := *issue.Created
    current := issue.Status
    for _, ev := range events {
        // out-of-order or duplicate protection: never step backwards
        if ev.at.Before(last) { continue }
        if ev.from != "" {
            if d := daysBetween(last, ev.at); d >= 0 { totals[ev.from] += d }
        }
        last = ev.at
        current = ev.to
    }
    if !last.After(*issue.Resolved) && current != "" {
        if d := daysBetween(last, *issue.Resolved); d >= 0 { totals[current] += d }
    }

    if len(totals) == 0 { return nil }
    out := make([]domain.StatusDuration, 0, len(totals))
    for st, days := range totals {
        out = append(out, domain.StatusDuration{Status: st, Days: days})
    }
    sort.Slice(out, func(i, j int) bool { return out[i].Status < out[j].Status })
    return out
}
