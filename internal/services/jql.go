package services

import (
    "fmt"
    "regexp"

    "jiralens/internal/domain"
)

// queryKind selects one of the three JQL filters backing the six datasets.
type queryKind int

const (
    queryClosed queryKind = iota
    queryAnyDate
    queryAll
)

var projectKeyRe = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// ValidateProjectKey rejects keys with characters outside letters, digits,
// underscore, and hyphen. It runs before any JQL string is built, so an
// unvalidated key never reaches a filter expression.
func ValidateProjectKey(key string) error {
    if !projectKeyRe.MatchString(key) {
        return fmt.Errorf("%w: %q", domain.ErrInvalidProjectKey, key)
    }
    return nil
}

func buildJQL(project string, kind queryKind) string {
    base := fmt.Sprintf("project = %q", project)
    switch kind {
    case queryClosed:
        return base + " AND status = Closed"
    case queryAnyDate:
        return base + " AND (created IS NOT NULL OR resolutiondate IS NOT NULL)"
    default:
        return base
    }
}
