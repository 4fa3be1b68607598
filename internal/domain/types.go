package domain

import (
    "errors"
    "time"
)

// ErrInvalidProjectKey is returned when a project key contains characters
// outside letters, digits, underscore, and hyphen. Validation runs before
// any JQL string is built.
var ErrInvalidProjectKey = errors.New("invalid project key")

// Issue is the normalized form of one raw Jira record. Timestamps are nil
// when the corresponding field is absent or unparseable. StatusDurations is
// empty unless both Created and Resolved are present.
type Issue struct {
    Key             string
    Created         *time.Time
    Resolved        *time.Time
    Status          string
    Reporter        string
    Assignee        string
    Priority        string
    StatusDurations []StatusDuration
}

// StatusDuration is the total whole days an issue spent in one status,
// summed across all visits to that status.
type StatusDuration struct {
    Status string `json:"status"`
    Days   int64  `json:"days"`
}

// BinCount is one histogram bin: a label (a stringified day count or a
// category name) and how many items fell into it.
type BinCount struct {
    Bin   string `json:"bin"`
    Count int    `json:"count"`
}

// DailyStats is one day of the created/resolved trend line. Date is the
// calendar day in YYYY-MM-DD form.
type DailyStats struct {
    Date        string `json:"date"`
    Created     int    `json:"created"`
    Resolved    int    `json:"resolved"`
    CumCreated  int    `json:"cumCreated"`
    CumResolved int    `json:"cumResolved"`
}

// UserCount counts appearances of one user as reporter or assignee across a
// filtered issue set.
type UserCount struct {
    User  string `json:"user"`
    Count int    `json:"count"`
}

// Dashboard bundles the six datasets under their fixed display names.
type Dashboard struct {
    TimeToClose    []BinCount            `json:"timeToClose"`
    StatusTime     map[string][]BinCount `json:"statusTime"`
    DailyStats     []DailyStats          `json:"dailyStats"`
    TopUsers       []UserCount           `json:"topUsers"`
    InProgressTime []BinCount            `json:"inProgressTime"`
    Priorities     []BinCount            `json:"priorities"`
}
