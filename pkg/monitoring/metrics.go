package monitoring

import "github.com/prometheus/client_golang/prometheus"

var (
	HttpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"path"},
	)

	HttpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path"},
	)

	SignedLinkCacheHits = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "signed_link_cache_hits_total",
			Help: "Signed URL resolutions served from cache",
		},
		[]string{"bucket"},
	)

	SignedLinksIssued = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "signed_links_issued_total",
			Help: "Signed URLs issued by the object store",
		},
		[]string{"bucket"},
	)

	SignedLinkFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "signed_link_failures_total",
			Help: "Failed signed URL issuance calls",
		},
		[]string{"bucket"},
	)
)

func init() {
	prometheus.MustRegister(
		HttpRequestsTotal,
		HttpRequestDuration,
		SignedLinkCacheHits,
		SignedLinksIssued,
		SignedLinkFailures,
	)
}
