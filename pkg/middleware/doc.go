// Package middleware provides HTTP observability middleware for the
// gearrs preview server. Both middlewares have the chi signature
// func(http.Handler) http.Handler.
//
// # OpenTelemetry Middleware
//
// OpenTelemetry traces every request with a server span named after the
// matched chi route:
//
//	r.Use(middleware.OpenTelemetry(
//	    middleware.WithTracerName("my-site"),
//	    middleware.WithFilter(func(r *http.Request) bool {
//	        return r.URL.Path != "/healthz"
//	    }),
//	))
//
// # Prometheus Metrics
//
// Prometheus counts requests and observes durations and response sizes.
// Collectors are registered once per registry, so building the
// middleware several times against the same registry is safe:
//
//	reg := prometheus.NewRegistry()
//	r.Use(middleware.Prometheus(middleware.WithRegistry(reg)))
//	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
package middleware
