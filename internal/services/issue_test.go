package services

import (
    "testing"

    "jiralens/internal/domain"

    "github.com/stretchr/testify/require"
)

func rawIssue(key, created, resolved, status string, histories ...domain.RawHistory) domain.RawIssue {
    r := domain.RawIssue{
        Key: key,
        Fields: domain.RawFields{
            Created:        created,
            ResolutionDate: resolved,
        },
    }
    if status != "" { r.Fields.Status = &domain.RawName{Name: status} }
    if len(histories) > 0 { r.Changelog = &domain.RawChangelog{Histories: histories} }
    return r
}

func statusChange(at, from, to string) domain.RawHistory {
    return domain.RawHistory{
        Created: at,
        Items:   []domain.RawItem{{Field: "status", FromString: from, ToString: to}},
    }
}

func TestReconstructIssue_FullLifecycle(t *testing.T) {
    raw := rawIssue("PROJ-1", "2024-06-01T10:00:00", "2024-06-05T14:30:00", "Closed",
        statusChange("2024-06-02T09:00:00", "Open", "In Progress"),
        statusChange("2024-06-04T16:00:00", "In Progress", "Closed"),
    )
    issue := ReconstructIssue(raw)

    require.Equal(t, "PROJ-1", issue.Key)
    require.NotNil(t, issue.Created)
    require.NotNil(t, issue.Resolved)
    require.Equal(t, []domain.StatusDuration{
        {Status: "Closed", Days: 1},
        {Status: "In Progress", Days: 2},
        {Status: "Open", Days: 1},
    }, issue.StatusDurations)
    require.EqualValues(t, 4, daysBetween(*issue.Created, *issue.Resolved))
}

func TestReconstructIssue_MissingChangelog(t *testing.T) {
    issue := ReconstructIssue(rawIssue("PROJ-2", "2024-06-01T10:00:00", "2024-06-05T14:30:00", "Closed"))
    require.Empty(t, issue.StatusDurations)
}

func TestReconstructIssue_Unresolved(t *testing.T) {
    raw := rawIssue("PROJ-3", "2024-06-01T10:00:00", "", "In Progress",
        statusChange("2024-06-02T09:00:00", "Open", "In Progress"),
    )
    issue := ReconstructIssue(raw)
    require.Nil(t, issue.Resolved)
    require.Empty(t, issue.StatusDurations)
}

func TestReconstructIssue_TimestampVariants(t *testing.T) {
    // fractional seconds and offsets are ignored, short strings are absent
    require.NotNil(t, parseJiraTime("2024-06-01T10:00:00.123+0330"))
    require.NotNil(t, parseJiraTime("2024-06-01T10:00:00"))
    require.Nil(t, parseJiraTime("2024-06-01"))
    require.Nil(t, parseJiraTime(""))
    require.Nil(t, parseJiraTime("XXXX-06-01T10:00:00"))
}

func TestReconstructIssue_OptionalFieldsDegrade(t *testing.T) {
    issue := ReconstructIssue(domain.RawIssue{Key: "PROJ-4"})
    require.Nil(t, issue.Created)
    require.Nil(t, issue.Resolved)
    require.Empty(t, issue.Status)
    require.Empty(t, issue.Reporter)
    require.Empty(t, issue.Assignee)
    require.Empty(t, issue.Priority)
    require.Empty(t, issue.StatusDurations)
}

func TestStatusDurations_OutOfOrderEventsIgnored(t *testing.T) {
    // The second history predates the first boundary after sorting is
    // applied, so it must not step the walk backwards.
    raw := rawIssue("PROJ-5", "2024-06-03T00:00:00", "2024-06-10T00:00:00", "Closed",
        statusChange("2024-06-05T00:00:00", "Open", "In Progress"),
        statusChange("2024-06-01T00:00:00", "New", "Open"),
        statusChange("2024-06-08T00:00:00", "In Progress", "Closed"),
    )
    issue := ReconstructIssue(raw)
    require.Equal(t, []domain.StatusDuration{
        {Status: "Closed", Days: 2},
        {Status: "In Progress", Days: 3},
        {Status: "Open", Days: 2},
    }, issue.StatusDurations)
}

func TestStatusDurations_EventsWithoutTimestampDropped(t *testing.T) {
    raw := rawIssue("PROJ-6", "2024-06-01T00:00:00", "2024-06-04T00:00:00", "Closed",
        domain.RawHistory{Items: []domain.RawItem{{Field: "status", FromString: "Open", ToString: "Closed"}}},
        statusChange("2024-06-03T00:00:00", "Open", "Closed"),
    )
    issue := ReconstructIssue(raw)
    require.Equal(t, []domain.StatusDuration{
        {Status: "Closed", Days: 1},
        {Status: "Open", Days: 2},
    }, issue.StatusDurations)
}

func TestStatusDurations_EqualTimestampsKeepChangelogOrder(t *testing.T) {
    // Two transitions at the same instant: the walk must take them in the
    // order the changelog lists them, so Review is entered and left within
    // the same boundary.
    raw := rawIssue("PROJ-10", "2024-06-01T00:00:00", "2024-06-05T00:00:00", "Closed",
        statusChange("2024-06-03T00:00:00", "Open", "Review"),
        statusChange("2024-06-03T00:00:00", "Review", "Closed"),
    )
    issue := ReconstructIssue(raw)
    require.Equal(t, []domain.StatusDuration{
        {Status: "Closed", Days: 2},
        {Status: "Open", Days: 2},
        {Status: "Review", Days: 0},
    }, issue.StatusDurations)
}

func TestStatusDurations_NonStatusItemsIgnored(t *testing.T) {
    raw := rawIssue("PROJ-7", "2024-06-01T00:00:00", "2024-06-03T00:00:00", "Open",
        domain.RawHistory{
            Created: "2024-06-02T00:00:00",
            Items:   []domain.RawItem{{Field: "assignee", FromString: "a", ToString: "b"}},
        },
    )
    issue := ReconstructIssue(raw)
    // only the closing interval in the issue's current status remains
    require.Equal(t, []domain.StatusDuration{{Status: "Open", Days: 2}}, issue.StatusDurations)
}

func TestStatusDurations_RevisitedStatusCollapses(t *testing.T) {
    raw := rawIssue("PROJ-8", "2024-06-01T00:00:00", "2024-06-09T00:00:00", "Closed",
        statusChange("2024-06-02T00:00:00", "Open", "In Progress"),
        statusChange("2024-06-04T00:00:00", "In Progress", "Open"),
        statusChange("2024-06-07T00:00:00", "Open", "Closed"),
    )
    issue := ReconstructIssue(raw)
    // Open is visited twice: 1 day before work started plus 3 days after
    require.Equal(t, []domain.StatusDuration{
        {Status: "Closed", Days: 2},
        {Status: "In Progress", Days: 2},
        {Status: "Open", Days: 4},
    }, issue.StatusDurations)
}

func TestStatusDurations_SumMatchesLifetimeSpan(t *testing.T) {
    raw := rawIssue("PROJ-9", "2024-06-01T10:00:00", "2024-06-15T08:00:00", "Closed",
        statusChange("2024-06-02T09:00:00", "Open", "In Review"),
        statusChange("2024-06-05T23:59:59", "In Review", "In Progress"),
        statusChange("2024-06-11T00:00:01", "In Progress", "Closed"),
    )
    issue := ReconstructIssue(raw)
    var sum int64
    for _, sd := range issue.StatusDurations {
        sum += sd.Days
    }
    require.Equal(t, daysBetween(*issue.Created, *issue.Resolved), sum)
}

func TestDaysBetween_CalendarBoundaries(t *testing.T) {
    a := *parseJiraTime("2024-06-01T23:30:00")
    b := *parseJiraTime("2024-06-02T00:30:00")
    require.EqualValues(t, 1, daysBetween(a, b))
    require.EqualValues(t, 0, daysBetween(b, b))
}
