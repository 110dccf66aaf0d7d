package analysis

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ziadkadry99/aliverse/internal/bazi"
	"github.com/ziadkadry99/aliverse/internal/calendar"
	"github.com/ziadkadry99/aliverse/internal/garage"
	"github.com/ziadkadry99/aliverse/internal/session"
)

// ChartRequest is the body of POST /api/chart. Fuel is optional; when set
// the response carries the car matrix for it.
type ChartRequest struct {
	calendar.BirthInput
	Fuel   *bazi.Element `json:"fuel,omitempty"`
	Divine bool          `json:"divine,omitempty"`
}

// RegisterRoutes mounts the stateless chart endpoints. Anything returning
// a car matrix goes through gate.
func RegisterRoutes(r chi.Router, a *Analyzer, gate session.Gate) {
	r.Post("/api/chart", handleChart(a, gate))
	r.Get("/api/matrix", handleMatrix(gate))
}

func handleChart(a *Analyzer, gate session.Gate) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ChartRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}

		divine := req.Divine || req.Fuel != nil
		if divine {
			if err := gate.Authorize(r); err != nil {
				http.Error(w, err.Error(), StatusCode(err))
				return
			}
		}

		res, err := a.Analyze(r.Context(), req.BirthInput)
		if err != nil {
			http.Error(w, err.Error(), StatusCode(err))
			return
		}
		if divine {
			if _, err := res.Divine(req.Fuel); err != nil {
				http.Error(w, err.Error(), StatusCode(err))
				return
			}
		}

		writeJSON(w, http.StatusOK, res)
	}
}

func handleMatrix(gate session.Gate) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := gate.Authorize(r); err != nil {
			http.Error(w, err.Error(), StatusCode(err))
			return
		}
		q := r.URL.Query()
		stem, err := bazi.ParseStem(q.Get("stem"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		el, err := bazi.ParseElement(q.Get("element"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		writeJSON(w, http.StatusOK, garage.Matrix(stem, el))
	}
}

// StatusCode maps domain errors onto HTTP status codes.
func StatusCode(err error) int {
	switch {
	case errors.Is(err, calendar.ErrIncompleteInput),
		errors.Is(err, calendar.ErrInvalidDate),
		errors.Is(err, calendar.ErrInvalidSlot),
		errors.Is(err, bazi.ErrUnknownSymbol):
		return http.StatusBadRequest
	case errors.Is(err, ErrFuelNotFavorable):
		return http.StatusUnprocessableEntity
	case errors.Is(err, session.ErrLocked):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
