package handlers

import (
	"net/http"

	"github.com/baharkarakas/store-ratings/internal/api/httpx"
	"github.com/baharkarakas/store-ratings/internal/services"
)

type UserHandler struct {
	Svc *services.RatingService
}

func NewUserHandler(svc *services.RatingService) *UserHandler {
	return &UserHandler{Svc: svc}
}

func (h *UserHandler) ListStores(w http.ResponseWriter, r *http.Request) {
	uid, ok := caller(w, r)
	if !ok {
		return
	}
	q := r.URL.Query()
	stores, err := h.Svc.ListStores(r.Context(), uid, services.StoreQuery{
		Name:    q.Get("name"),
		Address: q.Get("address"),
		SortBy:  q.Get("sortBy"),
		Order:   q.Get("order"),
	})
	if err != nil {
		httpx.WriteServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, stores)
}

type ratingReq struct {
	StoreID ID  `json:"store_id"`
	Rating  int `json:"rating"`
}

func (h *UserHandler) SubmitRating(w http.ResponseWriter, r *http.Request) {
	uid, ok := caller(w, r)
	if !ok {
		return
	}
	var req ratingReq
	if !decode(w, r, &req) {
		return
	}
	if err := h.Svc.Submit(r.Context(), uid, int64(req.StoreID), req.Rating); err != nil {
		httpx.WriteServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, httpx.Message{Message: "Rating submitted"})
}
