package readings

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/ziadkadry99/aliverse/internal/analysis"
	"github.com/ziadkadry99/aliverse/internal/bazi"
	"github.com/ziadkadry99/aliverse/internal/report"
	"github.com/ziadkadry99/aliverse/internal/session"
)

// routes holds what the reading handlers share.
type routes struct {
	svc    *Service
	brand  report.Brand
	gate   session.Gate
	logger *zap.Logger
}

// RegisterRoutes mounts reading endpoints under /api/readings on the given
// router. Without the gate's unlock code, responses omit the car matrix and
// requests that would pick one are refused. A nil logger discards logs.
func RegisterRoutes(r chi.Router, svc *Service, brand report.Brand, gate session.Gate, logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}
	h := &routes{svc: svc, brand: brand, gate: gate, logger: logger}
	r.Route("/api/readings", func(r chi.Router) {
		r.Post("/", h.handleCreate)
		r.Get("/", h.handleList)
		r.Get("/{id}", h.handleGet)
		r.Delete("/{id}", h.handleDelete)
		r.Post("/{id}/matrix", h.handleDivine)
		r.Get("/{id}/report", h.handleReport)
		r.Get("/{id}/report.md", h.handleMarkdown)
		r.Get("/{id}/report.html", h.handleHTML)
		r.Get("/{id}/share", h.handleShare)
	})
}

// detail loads a reading, dropping the matrix unless the request is unlocked.
func (h *routes) detail(r *http.Request) (*Detail, error) {
	d, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		return nil, err
	}
	if h.gate.Authorize(r) != nil {
		d.Redact()
	}
	return d, nil
}

func (h *routes) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req analysis.ChartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Divine || req.Fuel != nil {
		if err := h.gate.Authorize(r); err != nil {
			writeError(w, err)
			return
		}
	}

	d, err := h.svc.Create(r.Context(), req.BirthInput, req.Fuel, req.Divine)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, d)
}

func (h *routes) handleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var filter Filter
	if v := q.Get("bucket"); v != "" {
		b, err := bazi.ParseBucket(v)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		filter.Bucket = &b
	}
	if v := q.Get("since"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			filter.Since = &t
		}
	}
	if v := q.Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.Limit = n
		}
	}
	if v := q.Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.Offset = n
		}
	}

	list, err := h.svc.Store().List(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	if list == nil {
		list = []Reading{}
	}
	if h.gate.Authorize(r) != nil {
		for i := range list {
			list[i] = list[i].Redacted()
		}
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *routes) handleGet(w http.ResponseWriter, r *http.Request) {
	d, err := h.detail(r)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (h *routes) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Store().Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *routes) handleDivine(w http.ResponseWriter, r *http.Request) {
	if err := h.gate.Authorize(r); err != nil {
		writeError(w, err)
		return
	}
	var req struct {
		Fuel *bazi.Element `json:"fuel"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	hex, err := h.svc.Divine(r.Context(), chi.URLParam(r, "id"), req.Fuel)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, hex)
}

func (h *routes) handleReport(w http.ResponseWriter, r *http.Request) {
	d, err := h.detail(r)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename*=UTF-8''%s", url.PathEscape(report.Filename(d.Result))))
	if err := report.WriteText(w, d.Result, h.brand); err != nil {
		h.logger.Warn("writing text report", zap.String("id", d.Reading.ID), zap.Error(err))
	}
}

func (h *routes) handleMarkdown(w http.ResponseWriter, r *http.Request) {
	d, err := h.detail(r)
	if err != nil {
		writeError(w, err)
		return
	}
	md, err := report.Markdown(d.Result, h.brand)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.Write([]byte(md))
}

func (h *routes) handleHTML(w http.ResponseWriter, r *http.Request) {
	d, err := h.detail(r)
	if err != nil {
		writeError(w, err)
		return
	}
	page, err := report.HTML(d.Result, h.brand)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(page))
}

func (h *routes) handleShare(w http.ResponseWriter, r *http.Request) {
	d, err := h.detail(r)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(report.Share(d.Result, h.brand)))
}

func writeError(w http.ResponseWriter, err error) {
	status := analysis.StatusCode(err)
	if errors.Is(err, ErrNotFound) {
		status = http.StatusNotFound
	}
	http.Error(w, err.Error(), status)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
