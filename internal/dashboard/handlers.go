package dashboard

import (
	"encoding/json"
	"net/http"

	"github.com/ziadkadry99/aliverse/internal/readings"
)

// statsResponse is the JSON response for the stats endpoint.
type statsResponse struct {
	readings.Stats
	Gated bool `json:"gated"`
}

func (d *Dashboard) handleStats(w http.ResponseWriter, r *http.Request) {
	st, err := d.readings.Store().Stats(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, statsResponse{Stats: st, Gated: !d.gate.Open()})
}

func (d *Dashboard) handleRecent(w http.ResponseWriter, r *http.Request) {
	list, err := d.readings.Store().List(r.Context(), readings.Filter{Limit: 10})
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if list == nil {
		list = []readings.Reading{}
	}
	if d.gate.Authorize(r) != nil {
		for i := range list {
			list[i] = list[i].Redacted()
		}
	}
	writeJSON(w, http.StatusOK, list)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
