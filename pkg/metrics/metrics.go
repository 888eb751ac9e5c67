package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	ArticlesCreated = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "articled", Name: "articles_created_total", Help: "Number of articles created."},
	)
	ArticlesDeleted = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "articled", Name: "articles_deleted_total", Help: "Number of articles deleted."},
	)
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "articled", Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "articled", Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(ArticlesCreated)
	reg.MustRegister(ArticlesDeleted)
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
}
