package config

import (
    "log"
    "os"
    "strconv"
    "time"

    "github.com/joho/godotenv"
)

type Config struct {
    AppEnv   string
    TZ       string
    HTTPAddr string

    JiraBaseURL    string
    JiraPAT        string
    JiraUsername   string
    JiraPassword   string
    JiraAPIVersion string

    DefaultProject    string
    DefaultMaxResults int

    HTTPTimeout time.Duration

    WarmEnabled bool
    WarmCron    string
}

func getenv(key, def string) string {
    v := os.Getenv(key)
    if v == "" { return def }
    return v
}

func atoi(key string, def int) int {
    v := os.Getenv(key)
    if v == "" { return def }
    i, err := strconv.Atoi(v)
    if err != nil { return def }
    return i
}

func dur(key string, def time.Duration) time.Duration {
    v := os.Getenv(key)
    if v == "" { return def }
    d, err := time.ParseDuration(v)
    if err != nil { return def }
    return d
}

func boolean(key string, def bool) bool {
    v := os.Getenv(key)
    if v == "" { return def }
    b, err := strconv.ParseBool(v)
    if err != nil { return def }
    return b
}

func Load() Config {
    // .env is optional; real deployments set the environment directly
    _ = godotenv.Load()

    cfg := Config{
        AppEnv:   getenv("APP_ENV", "dev"),
        TZ:       getenv("APP_TZ", "UTC"),
        HTTPAddr: getenv("HTTP_ADDR", ":8080"),

        JiraBaseURL:    getenv("JIRA_BASE_URL", "https://issues.apache.org/jira"),
        JiraPAT:        getenv("JIRA_PAT", ""),
        JiraUsername:   getenv("JIRA_USERNAME", ""),
        JiraPassword:   getenv("JIRA_PASSWORD", ""),
        JiraAPIVersion: getenv("JIRA_API_VERSION", "2"),

        DefaultProject:    getenv("DEFAULT_PROJECT", "KAFKA"),
        DefaultMaxResults: atoi("DEFAULT_MAX_RESULTS", 200),

        HTTPTimeout: dur("HTTP_TIMEOUT", 15*time.Second),

        WarmEnabled: boolean("WARM_ENABLED", false),
        WarmCron:    getenv("WARM_CRON", "0 * * * *"),
    }

    if loc, err := time.LoadLocation(cfg.TZ); err == nil {
        time.Local = loc
    } else {
        log.Printf("warning: cannot load TZ %s: %v", cfg.TZ, err)
    }
    return cfg
}
