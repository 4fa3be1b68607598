package jira

import (
    "bytes"
    "context"
    "encoding/json"
    "errors"
    "fmt"
    "io"
    "net/http"
    "net/url"
    "strings"
    "sync"
    "time"

    "jiralens/internal/config"
    "jiralens/internal/domain"
    "jiralens/internal/metrics"

    "github.com/rs/zerolog"
)

// Client talks to the Jira search API and owns the retrieval policy the core
// does not want to know about: auth, retries, and a process-lifetime result
// cache keyed by (jql, maxResults).
type Client struct {
    baseURL string
    token   string
    user    string
    pass    string
    http    *http.Client
    log     zerolog.Logger
    apiVer  string

    mu    sync.RWMutex
    cache map[cacheKey][]domain.RawIssue
}

type cacheKey struct {
    jql string
    max int
}

func NewClient(cfg config.Config, log zerolog.Logger) *Client {
    return &Client{
        baseURL: cfg.JiraBaseURL,
        token:   cfg.JiraPAT,
        user:    cfg.JiraUsername,
        pass:    cfg.JiraPassword,
        http:    &http.Client{Timeout: cfg.HTTPTimeout},
        log:     log,
        apiVer:  cfg.JiraAPIVersion,
        cache:   map[cacheKey][]domain.RawIssue{},
    }
}

// SearchIssues fetches up to maxResults issues matching jql, changelog
// included. Failures never cross this boundary: any transport, HTTP, or
// decode error is logged and degrades to an empty result. Successful results
// are cached for the rest of the process lifetime.
func (c *Client) SearchIssues(ctx context.Context, jql string, maxResults int) []domain.RawIssue {
    metrics.JiraSearchTotal.Inc()
    key := cacheKey{jql: jql, max: maxResults}
    c.mu.RLock()
    cached, ok := c.cache[key]
    c.mu.RUnlock()
    if ok {
        metrics.JiraCacheHits.Inc()
        return cached
    }
    issues, err := c.search(ctx, jql, maxResults)
    if err != nil {
        metrics.JiraSearchErrors.Inc()
        c.log.Error().Err(err).Str("jql", jql).Int("max", maxResults).Msg("jira search failed")
        return nil
    }
    c.mu.Lock()
    c.cache[key] = issues
    c.mu.Unlock()
    return issues
}

type searchResponse struct {
    Issues []domain.RawIssue `json:"issues"`
}

func (c *Client) search(ctx context.Context, jql string, maxResults int) ([]domain.RawIssue, error) {
    if jql == "" { return nil, errors.New("jira: empty jql") }
    var out searchResponse
    if c.apiVer == "2" {
        q := url.Values{}
        q.Set("jql", jql)
        q.Set("maxResults", fmt.Sprint(maxResults))
        q.Set("fields", "*all")
        q.Set("expand", "changelog")
        u := c.apiURL("/rest/api/2/search", q)
        if err := c.doJSON(ctx, http.MethodGet, u, nil, &out); err != nil { return nil, err }
        return out.Issues, nil
    }
    // default to v3
    body := map[string]any{"jql": jql, "maxResults": maxResults, "fields": []string{"*all"}, "expand": []string{"changelog"}}
    u := c.apiURL("/rest/api/3/search", nil)
    if err := c.doJSON(ctx, http.MethodPost, u, body, &out); err != nil { return nil, err }
    return out.Issues, nil
}

func (c *Client) apiURL(path string, q url.Values) string {
    base := strings.TrimRight(c.baseURL, "/")
    if !strings.HasPrefix(path, "/") { path = "/" + path }
    u := base + path
    if len(q) > 0 { u = u + "?" + q.Encode() }
    return u
}

func (c *Client) doJSON(ctx context.Context, method, u string, body, out any) error {
    if c.baseURL == "" { return errors.New("jira: empty baseURL") }
    var payload []byte
    if body != nil {
        b, err := json.Marshal(body)
        if err != nil { return err }
        payload = b
    }
    var lastErr error
    for attempt := 0; attempt < 3; attempt++ {
        var r io.Reader
        if payload != nil { r = bytes.NewReader(payload) }
        req, err := http.NewRequestWithContext(ctx, method, u, r)
        if err != nil { return err }
        if payload != nil { req.Header.Set("Content-Type", "application/json") }
        if c.token != "" {
            req.Header.Set("Authorization", "Bearer "+c.token)
        } else if c.user != "" && c.pass != "" {
            req.SetBasicAuth(c.user, c.pass)
        }
        resp, err := c.http.Do(req)
        if err != nil { lastErr = err } else {
            b, rerr := io.ReadAll(resp.Body)
            resp.Body.Close()
            if rerr != nil { return rerr }
            if resp.StatusCode >= 300 {
                // retry on 429/5xx
                if resp.StatusCode == 429 || resp.StatusCode >= 500 {
                    lastErr = fmt.Errorf("jira api status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(b)))
                } else {
                    return fmt.Errorf("jira api status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(b)))
                }
            } else {
                return json.Unmarshal(b, out)
            }
        }
        if attempt == 2 { break }
        // backoff
        select {
        case <-ctx.Done():
            return ctx.Err()
        case <-time.After(time.Duration(300*(1<<attempt)) * time.Millisecond):
        }
    }
    return lastErr
}
