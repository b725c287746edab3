package handlers

import (
	"net/http"
	"strconv"

	"github.com/fakturio/faktury-api/internal/httpx"
	"github.com/fakturio/faktury-api/internal/services"
)

type AnalyticsHandler struct {
	Svc *services.AnalyticsService
}

func NewAnalyticsHandler(svc *services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{Svc: svc}
}

// Statistiky: GET /api/statistiky
func (h *AnalyticsHandler) Statistiky(w http.ResponseWriter, r *http.Request) {
	data, err := h.Svc.Statistiky(r.Context())
	if err != nil {
		httpx.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	httpx.OK(w, data)
}

// Firmy: GET /api/analytics/firmy
func (h *AnalyticsHandler) Firmy(w http.ResponseWriter, r *http.Request) {
	data, err := h.Svc.Firmy(r.Context())
	if err != nil {
		httpx.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	httpx.OKCount(w, data, len(data))
}

// Obchodnici: GET /api/analytics/obchodnici
func (h *AnalyticsHandler) Obchodnici(w http.ResponseWriter, r *http.Request) {
	data, err := h.Svc.Obchodnici(r.Context())
	if err != nil {
		httpx.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	httpx.OKCount(w, data, len(data))
}

// Mesacne: GET /api/analytics/mesacne
func (h *AnalyticsHandler) Mesacne(w http.ResponseWriter, r *http.Request) {
	data, err := h.Svc.Mesacne(r.Context())
	if err != nil {
		httpx.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	httpx.OKCount(w, data, len(data))
}

// Splatnost: GET /api/analytics/splatnost
func (h *AnalyticsHandler) Splatnost(w http.ResponseWriter, r *http.Request) {
	data, err := h.Svc.Splatnost(r.Context())
	if err != nil {
		httpx.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	httpx.OK(w, data)
}

// TopKlienti: GET /api/analytics/top-klienti?limit=N
func (h *AnalyticsHandler) TopKlienti(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			limit = n
		}
	}
	data, err := h.Svc.TopKlienti(r.Context(), limit)
	if err != nil {
		httpx.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	httpx.OKCount(w, data, len(data))
}
