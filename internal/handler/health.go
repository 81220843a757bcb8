package handler

import (
	"encoding/json"
	"net/http"
)

type healthResponse struct {
	Status   string `json:"status"`
	Message  string `json:"message"`
	Docstore string `json:"docstore"`
	Mailer   string `json:"mailer"`
}

// Health handles GET /api/health. The service stays "ok" even when the
// store is down (submissions degrade to the fallback path); "degraded"
// flags missing configuration so operators notice before users do.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{
		Status:   "ok",
		Message:  "TrustAudit API",
		Docstore: configState(h.store),
		Mailer:   configState(h.mail),
	}
	if resp.Docstore != "configured" || resp.Mailer != "configured" {
		resp.Status = "degraded"
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

func configState(c ConfigReporter) string {
	if c != nil && c.Configured() {
		return "configured"
	}
	return "unconfigured"
}
