package commands

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

func startPrometheus(listen string) {
	if listen == "" {
		log.Debug("prometheus exporter not enabled")
		return
	}

	log.WithField("addr", listen).Info("starting prometheus exporter")
	go func() {
		r := http.NewServeMux()
		r.Handle("/metrics", promhttp.Handler())
		if err := http.ListenAndServe(listen, r); err != nil {
			log.WithError(err).Warn("prometheus failed to listen")
		}
	}()
}
