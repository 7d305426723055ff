package handlers

import (
	"net/http"

	"github.com/baharkarakas/store-ratings/internal/api/httpx"
	"github.com/baharkarakas/store-ratings/internal/services"
)

type OwnerHandler struct {
	Svc *services.OwnerService
}

func NewOwnerHandler(svc *services.OwnerService) *OwnerHandler {
	return &OwnerHandler{Svc: svc}
}

func (h *OwnerHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	uid, ok := caller(w, r)
	if !ok {
		return
	}
	d, err := h.Svc.Dashboard(r.Context(), uid)
	if err != nil {
		httpx.WriteServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, d)
}
