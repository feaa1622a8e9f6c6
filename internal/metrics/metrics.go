package metrics

import "github.com/prometheus/client_golang/prometheus"

type Metrics struct {
	HTTPRequests   *prometheus.CounterVec
	Signups        prometheus.Counter
	Logins         prometheus.Counter
	MessagesPosted prometheus.Counter
	Follows        prometheus.Counter
	Unfollows      prometheus.Counter
	LikesToggled   prometheus.Counter
}

// NewMetrics registers the counters with the given registerer. Production
// passes prometheus.DefaultRegisterer; tests pass a private registry.
// Collectors already present in the registry are reused, so constructing
// twice against the same registerer is safe.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		HTTPRequests: registerCounterVec(reg, prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "warble_http_requests_total",
				Help: "Total number of HTTP requests by path and status",
			},
			[]string{"path", "status"},
		)),
		Signups: registerCounter(reg, prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "warble_signups_total",
				Help: "Total number of successful signups",
			},
		)),
		Logins: registerCounter(reg, prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "warble_logins_total",
				Help: "Total number of successful logins",
			},
		)),
		MessagesPosted: registerCounter(reg, prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "warble_messages_posted_total",
				Help: "Total number of warbles posted",
			},
		)),
		Follows: registerCounter(reg, prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "warble_follows_total",
				Help: "Total number of follow edges created",
			},
		)),
		Unfollows: registerCounter(reg, prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "warble_unfollows_total",
				Help: "Total number of follow edges removed",
			},
		)),
		LikesToggled: registerCounter(reg, prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "warble_likes_toggled_total",
				Help: "Total number of like toggles applied",
			},
		)),
	}
}

func registerCounterVec(reg prometheus.Registerer, c *prometheus.CounterVec) *prometheus.CounterVec {
	if err := reg.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			return are.ExistingCollector.(*prometheus.CounterVec)
		}
		panic(err)
	}
	return c
}

func registerCounter(reg prometheus.Registerer, c prometheus.Counter) prometheus.Counter {
	if err := reg.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			return are.ExistingCollector.(prometheus.Counter)
		}
		panic(err)
	}
	return c
}
