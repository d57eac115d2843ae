package main

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"

	"talon/internal/metrics"
)

func newMetricsServer(addr string, reg *prometheus.Registry) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler(reg))
	return &http.Server{Addr: addr, Handler: mux}
}
