package http

import (
	"net/http"

	"shedstock-backend/internal/domain"
	"shedstock-backend/internal/repository"
	"shedstock-backend/internal/service"
)

type createItemRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Class       string `json:"class"`
	ShedID      int32  `json:"shed_id"`
	Quantity    int32  `json:"quantity"`
}

func (h *Handlers) handleCreateItem(w http.ResponseWriter, r *http.Request) {
	var req createItemRequest
	if !decodeBody(w, r, &req) {
		return
	}

	item, err := h.Inventory.CreateItem(r.Context(), actorFrom(r), service.CreateItemRequest{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Class:       domain.ItemClass(req.Class),
		ShedID:      req.ShedID,
		Quantity:    req.Quantity,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (h *Handlers) handleGetItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid item id"})
		return
	}
	item, err := h.Inventory.GetItem(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *Handlers) handleListItems(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pageParams(r)
	f := repository.ItemFilter{
		Name:     r.URL.Query().Get("name"),
		Category: r.URL.Query().Get("category"),
		ShedID:   queryInt32(r, "shed_id"),
	}
	items, pg, err := h.Inventory.ListItems(r.Context(), f, page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeList(w, items, pg)
}

type adjustStockRequest struct {
	Delta int32 `json:"delta"`
}

func (h *Handlers) handleAdjustStock(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid item id"})
		return
	}
	var req adjustStockRequest
	if !decodeBody(w, r, &req) {
		return
	}
	item, err := h.Inventory.AdjustStock(r.Context(), actorFrom(r), id, req.Delta)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

type deleteItemRequest struct {
	Reason string `json:"reason"`
}

func (h *Handlers) handleDeleteItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid item id"})
		return
	}
	var req deleteItemRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := h.Inventory.DeleteItem(r.Context(), actorFrom(r), id, req.Reason); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "item deleted successfully"})
}

func (h *Handlers) handleListDeletedItems(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pageParams(r)
	items, pg, err := h.Inventory.ListDeletedItems(r.Context(),
		r.URL.Query().Get("name"), r.URL.Query().Get("category"), page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeList(w, items, pg)
}
