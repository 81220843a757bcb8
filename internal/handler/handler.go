package handler

import "net/http"

// ConfigReporter is implemented by external clients that know whether their
// connection parameters were provided at startup.
type ConfigReporter interface {
	Configured() bool
}

// Handler carries the shared dependencies for the non-resource endpoints.
type Handler struct {
	store       ConfigReporter
	mail        ConfigReporter
	frontendURL string
}

// New creates the shared Handler.
func New(store, mail ConfigReporter, frontendURL string) *Handler {
	return &Handler{store: store, mail: mail, frontendURL: frontendURL}
}

// CORS allows the marketing frontend origin and answers preflights.
func (h *Handler) CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", h.frontendURL)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
