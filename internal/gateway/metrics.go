package gateway

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/blacktop/hubcast/internal/social"
)

var (
	publishRequestsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hubcast_publish_requests_total",
		Help: "Publish requests that were well-formed and dispatched.",
	})
	platformPostsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hubcast_platform_posts_total",
		Help: "Per-platform post attempts by outcome.",
	}, []string{"platform", "outcome"})
	dispatchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "hubcast_dispatch_duration_seconds",
		Help:    "Wall-clock time of one full dispatch.",
		Buckets: prometheus.DefBuckets,
	})
)

func observeDispatch(report *social.DispatchReport, elapsed time.Duration) {
	publishRequestsTotal.Inc()
	dispatchDuration.Observe(elapsed.Seconds())
	for _, result := range report.Results {
		outcome := "failure"
		if result.Success {
			outcome = "success"
		}
		platformPostsTotal.WithLabelValues(result.Platform, outcome).Inc()
	}
}
