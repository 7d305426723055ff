package handlers

import (
	"net/http"

	"github.com/baharkarakas/store-ratings/internal/api/httpx"
	"github.com/baharkarakas/store-ratings/internal/services"
)

type AdminHandler struct {
	Svc *services.AdminService
}

func NewAdminHandler(svc *services.AdminService) *AdminHandler {
	return &AdminHandler{Svc: svc}
}

type createUserReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Address  string `json:"address"`
	Role     string `json:"role"`
}

func (h *AdminHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserReq
	if !decode(w, r, &req) {
		return
	}
	id, err := h.Svc.CreateUser(r.Context(), services.CreateUserInput(req))
	if err != nil {
		httpx.WriteServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, httpx.Message{Message: "User created", ID: id})
}

type createStoreReq struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address"`
	OwnerID ID     `json:"owner_id"`
}

func (h *AdminHandler) CreateStore(w http.ResponseWriter, r *http.Request) {
	var req createStoreReq
	if !decode(w, r, &req) {
		return
	}
	id, err := h.Svc.CreateStore(r.Context(), services.CreateStoreInput{
		Name: req.Name, Email: req.Email, Address: req.Address, OwnerID: int64(req.OwnerID),
	})
	if err != nil {
		httpx.WriteServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, httpx.Message{Message: "Store created", ID: id})
}

func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	d, err := h.Svc.Dashboard(r.Context())
	if err != nil {
		httpx.WriteServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, d)
}

func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	users, err := h.Svc.ListUsers(r.Context(), services.UserQuery{
		Name:    q.Get("name"),
		Email:   q.Get("email"),
		Address: q.Get("address"),
		Role:    q.Get("role"),
		SortBy:  q.Get("sortBy"),
		Order:   q.Get("order"),
	})
	if err != nil {
		httpx.WriteServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, users)
}

func (h *AdminHandler) ListStores(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	stores, err := h.Svc.ListStores(r.Context(), services.StoreQuery{
		Name:    q.Get("name"),
		Email:   q.Get("email"),
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

func (h *AdminHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		httpx.WriteError(w, http.StatusNotFound, "not_found", "User not found", nil)
		return
	}
	d, err := h.Svc.UserDetail(r.Context(), id)
	if err != nil {
		httpx.WriteServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, d)
}
