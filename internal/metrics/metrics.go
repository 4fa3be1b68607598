package metrics

import (
    "github.com/prometheus/client_golang/prometheus"
    "github.com/prometheus/client_golang/prometheus/promauto"
)

var (
    JiraSearchTotal = promauto.NewCounter(prometheus.CounterOpts{
        Name: "jira_search_total",
        Help: "Total number of Jira search calls, cached or not",
    })

    JiraSearchErrors = promauto.NewCounter(prometheus.CounterOpts{
        Name: "jira_search_errors_total",
        Help: "Total number of Jira search calls that failed and degraded to an empty result",
    })

    JiraCacheHits = promauto.NewCounter(prometheus.CounterOpts{
        Name: "jira_cache_hits_total",
        Help: "Total number of Jira search calls served from the in-process cache",
    })

    DatasetRequests = promauto.NewCounterVec(prometheus.CounterOpts{
        Name: "dashboard_dataset_requests_total",
        Help: "Total number of dataset computations, by dataset name",
    }, []string{"dataset"})
)
