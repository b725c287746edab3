// Package handlers maps HTTP requests onto the services and renders the
// response envelope. Every handler converts failures from its own call
// chain; there is no shared recovery layer beyond the router's panic guard.
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/fakturio/faktury-api/internal/httpx"
	"github.com/fakturio/faktury-api/internal/services"
)

type FakturyHandler struct {
	Svc *services.FakturyService
}

func NewFakturyHandler(svc *services.FakturyService) *FakturyHandler {
	return &FakturyHandler{Svc: svc}
}

func notFoundMsg(cislo string) string {
	return fmt.Sprintf("Faktúra s číslom %s nebola nájdená", cislo)
}

// decodeBody reads a JSON body into a generic map so that handlers can tell
// "field absent" from "field set to empty", which drives merge semantics.
func decodeBody(r *http.Request) (map[string]any, error) {
	body := map[string]any{}
	if r.Body == nil {
		return body, nil
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil && err != io.EOF {
		return nil, err
	}
	return body, nil
}

// List: GET /api/faktury
func (h *FakturyHandler) List(w http.ResponseWriter, r *http.Request) {
	data, err := h.Svc.List(r.Context())
	if err != nil {
		httpx.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	httpx.OKCount(w, data, len(data))
}

// Search: GET /api/faktury/search
func (h *FakturyHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := services.SearchQuery{
		Partner: r.URL.Query().Get("partner"),
		DatumOd: r.URL.Query().Get("datum_od"),
		DatumDo: r.URL.Query().Get("datum_do"),
	}
	if v := r.URL.Query().Get("zaplatene"); v != "" {
		zaplatene := v == "true" || v == "1"
		q.Zaplatene = &zaplatene
	}
	data, err := h.Svc.Search(r.Context(), q)
	if err != nil {
		httpx.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	httpx.OKCount(w, data, len(data))
}

// Get: GET /api/faktury/{cislo}
func (h *FakturyHandler) Get(w http.ResponseWriter, r *http.Request) {
	cislo := r.PathValue("cislo")
	f, err := h.Svc.Get(r.Context(), cislo)
	switch {
	case errors.Is(err, services.ErrNotFound):
		httpx.Error(w, http.StatusNotFound, notFoundMsg(cislo))
	case err != nil:
		httpx.Error(w, http.StatusInternalServerError, err.Error())
	default:
		httpx.OK(w, f)
	}
}

// Create: POST /api/faktury
func (h *FakturyHandler) Create(w http.ResponseWriter, r *http.Request) {
	body, err := decodeBody(r)
	if err != nil {
		httpx.Error(w, http.StatusBadRequest, "Neplatné JSON telo požiadavky")
		return
	}
	cislo, err := h.Svc.Create(r.Context(), body)
	switch {
	case errors.Is(err, services.ErrConflict):
		httpx.Error(w, http.StatusBadRequest, fmt.Sprintf("Faktúra s číslom %s už existuje", cislo))
	case err != nil:
		httpx.Error(w, http.StatusInternalServerError, err.Error())
	default:
		httpx.JSON(w, http.StatusOK, struct {
			Status  string `json:"status"`
			Message string `json:"message"`
			Cislo   string `json:"cislo"`
		}{"OK", "Faktúra vytvorená", cislo})
	}
}

// Update: PUT /api/faktury/{cislo}
func (h *FakturyHandler) Update(w http.ResponseWriter, r *http.Request) {
	cislo := r.PathValue("cislo")
	body, err := decodeBody(r)
	if err != nil {
		httpx.Error(w, http.StatusBadRequest, "Neplatné JSON telo požiadavky")
		return
	}
	err = h.Svc.Update(r.Context(), cislo, body)
	switch {
	case errors.Is(err, services.ErrNotFound):
		httpx.Error(w, http.StatusNotFound, notFoundMsg(cislo))
	case err != nil:
		httpx.Error(w, http.StatusInternalServerError, err.Error())
	default:
		httpx.JSON(w, http.StatusOK, struct {
			Status  string `json:"status"`
			Message string `json:"message"`
			Cislo   string `json:"cislo"`
		}{"OK", "Faktúra aktualizovaná", cislo})
	}
}

// MarkPaid: PUT /api/faktury/{cislo}/zaplatit
func (h *FakturyHandler) MarkPaid(w http.ResponseWriter, r *http.Request) {
	cislo := r.PathValue("cislo")
	body, err := decodeBody(r)
	if err != nil {
		httpx.Error(w, http.StatusBadRequest, "Neplatné JSON telo požiadavky")
		return
	}
	datum, _ := body["datum_uhrady"].(string)
	sposob, _ := body["sposob_uhrady"].(string)
	datum, err = h.Svc.MarkPaid(r.Context(), cislo, datum, sposob)
	switch {
	case errors.Is(err, services.ErrNotFound):
		httpx.Error(w, http.StatusNotFound, notFoundMsg(cislo))
	case err != nil:
		httpx.Error(w, http.StatusInternalServerError, err.Error())
	default:
		httpx.JSON(w, http.StatusOK, struct {
			Status      string `json:"status"`
			Message     string `json:"message"`
			Cislo       string `json:"cislo"`
			DatumUhrady string `json:"datum_uhrady"`
		}{"OK", "Faktúra označená ako zaplatená", cislo, datum})
	}
}

// Delete: DELETE /api/faktury/{cislo}
func (h *FakturyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	cislo := r.PathValue("cislo")
	err := h.Svc.Delete(r.Context(), cislo)
	switch {
	case errors.Is(err, services.ErrNotFound):
		httpx.Error(w, http.StatusNotFound, notFoundMsg(cislo))
	case err != nil:
		httpx.Error(w, http.StatusInternalServerError, err.Error())
	default:
		httpx.JSON(w, http.StatusOK, struct {
			Status  string `json:"status"`
			Message string `json:"message"`
			Cislo   string `json:"cislo"`
		}{"OK", "Faktúra odstránená", cislo})
	}
}
