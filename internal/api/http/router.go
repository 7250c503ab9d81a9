package http

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"shedstock-backend/internal/security"
	"shedstock-backend/internal/service"
)

const (
	defaultPageSize int32 = 50
	maxPageSize     int32 = 100
)

// Handlers bundles the services the HTTP surface exposes.
type Handlers struct {
	Auth           service.AuthService
	Inventory      service.InventoryService
	Reconciliation service.ReconciliationService
	Transfer       service.TransferService
	Sheds          service.ShedService
	Observations   service.ObservationService
}

// NewRouter wires every endpoint. Everything except signup and login
// sits behind the bearer-token middleware.
func NewRouter(h *Handlers, tm security.TokenManager) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/signup", h.handleSignUp).Methods(http.MethodPost)
	r.HandleFunc("/login", h.handleLogIn).Methods(http.MethodPost)

	api := r.NewRoute().Subrouter()
	api.Use(AuthMiddleware(tm))

	api.HandleFunc("/items", h.handleListItems).Methods(http.MethodGet)
	api.HandleFunc("/items", h.handleCreateItem).Methods(http.MethodPost)
	api.HandleFunc("/items/{id}", h.handleGetItem).Methods(http.MethodGet)
	api.HandleFunc("/items/{id}/adjust", h.handleAdjustStock).Methods(http.MethodPut)
	api.HandleFunc("/items/{id}", h.handleDeleteItem).Methods(http.MethodDelete)
	api.HandleFunc("/deleted-items", h.handleListDeletedItems).Methods(http.MethodGet)

	api.HandleFunc("/historical", h.handleListHistory).Methods(http.MethodGet)
	api.HandleFunc("/historical/pending", h.handleListOutstanding).Methods(http.MethodGet)
	api.HandleFunc("/historical/item/{id}", h.handleListRecordsByItem).Methods(http.MethodGet)
	api.HandleFunc("/historical/withdraw", h.handleWithdraw).Methods(http.MethodPost)
	api.HandleFunc("/historical/return", h.handleReturn).Methods(http.MethodPost)
	api.HandleFunc("/historical/delivery-note", h.handleDeliveryNote).Methods(http.MethodPost)

	api.HandleFunc("/movements", h.handleListMovements).Methods(http.MethodGet)
	api.HandleFunc("/movements", h.handleTransfer).Methods(http.MethodPost)
	api.HandleFunc("/movements/by-item/{id}", h.handleListMovementsByItem).Methods(http.MethodGet)

	api.HandleFunc("/sheds", h.handleListSheds).Methods(http.MethodGet)
	api.HandleFunc("/sheds", h.handleCreateShed).Methods(http.MethodPost)
	api.HandleFunc("/sheds/{id}", h.handleGetShed).Methods(http.MethodGet)

	api.HandleFunc("/observations/item/{id}", h.handleListObservations).Methods(http.MethodGet)
	api.HandleFunc("/observations", h.handleCreateObservation).Methods(http.MethodPost)

	api.HandleFunc("/users", h.handleListUsers).Methods(http.MethodGet)

	return r
}

func pathID(r *http.Request) (int32, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 32)
	if err != nil || id <= 0 {
		return 0, false
	}
	return int32(id), true
}

func pageParams(r *http.Request) (page, pageSize int32) {
	page = 1
	pageSize = defaultPageSize
	if v, err := strconv.ParseInt(r.URL.Query().Get("page"), 10, 32); err == nil && v >= 1 {
		page = int32(v)
	}
	if v, err := strconv.ParseInt(r.URL.Query().Get("page_size"), 10, 32); err == nil && v >= 1 {
		pageSize = int32(v)
		if pageSize > maxPageSize {
			pageSize = maxPageSize
		}
	}
	return page, pageSize
}

func queryInt32(r *http.Request, key string) int32 {
	v, err := strconv.ParseInt(r.URL.Query().Get(key), 10, 32)
	if err != nil {
		return 0
	}
	return int32(v)
}
