package services

import (
    "testing"

    "jiralens/internal/domain"

    "github.com/stretchr/testify/require"
)

func TestValidateProjectKey(t *testing.T) {
    require.NoError(t, ValidateProjectKey("My-PROJ_123"))
    require.NoError(t, ValidateProjectKey("KAFKA"))

    for _, key := range []string{
        "PROJ; DROP TABLE",
        `PROJ" OR 1=1`,
        "PROJ KEY",
        "",
        "проект",
    } {
        err := ValidateProjectKey(key)
        require.ErrorIs(t, err, domain.ErrInvalidProjectKey, "key %q", key)
    }
}

func TestBuildJQL(t *testing.T) {
    require.Equal(t, `project = "KAFKA" AND status = Closed`, buildJQL("KAFKA", queryClosed))
    require.Equal(t, `project = "KAFKA" AND (created IS NOT NULL OR resolutiondate IS NOT NULL)`, buildJQL("KAFKA", queryAnyDate))
    require.Equal(t, `project = "KAFKA"`, buildJQL("KAFKA", queryAll))
}
