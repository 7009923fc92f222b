package wordbreak

import (
	"encoding/json"
	"net/http"
	"runtime"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewAPIHandler makes the operations handler for a service: wordlist
// reloading, health and introspection endpoints, and Prometheus metrics.
func NewAPIHandler(svc *Service) (api http.Handler, err error) {
	mux := http.NewServeMux()

	mux.HandleFunc("/reload", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.Header().Set("Allow", http.MethodPost)
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		select {
		case svc.ReloadChan <- true:
		default:
		}
		svc.Logger.Info().Msg("wordlist reload queued")
		w.WriteHeader(http.StatusAccepted)
		if _, err := w.Write([]byte("wordlist reload queued")); err != nil {
			svc.Logger.Warn().Err(err).Msg("failed to write response")
		}
	})

	mux.HandleFunc("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.Header().Set("Allow", http.MethodGet)
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		if _, err := w.Write([]byte("OK")); err != nil {
			svc.Logger.Warn().Err(err).Msg("failed to write response")
		}
	})

	mux.HandleFunc("/info", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.Header().Set("Allow", http.MethodGet)
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		info := struct {
			Version   string `json:"version"`
			WordCount int    `json:"word_count"`
		}{
			Version:   VersionInfo(),
			WordCount: svc.WordCount(),
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(info); err != nil {
			svc.Logger.Warn().Err(err).Msg("failed to write info")
		}
	})

	mux.HandleFunc("/memory-stats", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.Header().Set("Allow", http.MethodGet)
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		var memStats runtime.MemStats
		runtime.ReadMemStats(&memStats)

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(&memStats); err != nil {
			svc.Logger.Warn().Err(err).Msg("failed to write memory stats")
		}
	})

	mux.Handle("/metrics", promhttp.Handler())

	return mux, nil
}
