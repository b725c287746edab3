package handlers

import (
	"net/http"

	"github.com/fakturio/faktury-api/internal/httpx"
	"github.com/fakturio/faktury-api/internal/services"
)

type SyncHandler struct {
	Svc *services.SyncService
}

func NewSyncHandler(svc *services.SyncService) *SyncHandler {
	return &SyncHandler{Svc: svc}
}

// Run: POST /api/sync/flowii. A failure partway through reports the error
// but leaves already appended rows in place; the count tells how far it got.
func (h *SyncHandler) Run(w http.ResponseWriter, r *http.Request) {
	synced, err := h.Svc.Run(r.Context())
	if err != nil {
		httpx.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	httpx.JSON(w, http.StatusOK, struct {
		Status          string `json:"status"`
		Message         string `json:"message"`
		Synchronizovane int    `json:"synchronizovane"`
	}{"OK", "Synchronizácia dokončená", synced})
}
