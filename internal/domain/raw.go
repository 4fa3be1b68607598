package domain

// Raw wire shapes for Jira search responses. Only the fields the dashboard
// consumes are declared; pointers mark the optional nested objects so a
// missing path decodes to nil rather than a zero struct.

type RawIssue struct {
    Key       string        `json:"key"`
    Fields    RawFields     `json:"fields"`
    Changelog *RawChangelog `json:"changelog"`
}

type RawFields struct {
    Created        string   `json:"created"`
    ResolutionDate string   `json:"resolutiondate"`
    Status         *RawName `json:"status"`
    Priority       *RawName `json:"priority"`
    Reporter       *RawUser `json:"reporter"`
    Assignee       *RawUser `json:"assignee"`
}

type RawName struct {
    Name string `json:"name"`
}

type RawUser struct {
    DisplayName string `json:"displayName"`
}

type RawChangelog struct {
    Histories []RawHistory `json:"histories"`
}

type RawHistory struct {
    Created string    `json:"created"`
    Items   []RawItem `json:"items"`
}

type RawItem struct {
    Field      string `json:"field"`
    FromString string `json:"fromString"`
    ToString   string `json:"toString"`
}
