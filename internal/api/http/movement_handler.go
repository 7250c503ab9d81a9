package http

import (
	"net/http"
)

type transferRequest struct {
	ItemID     int32 `json:"item_id"`
	FromShedID int32 `json:"from_shed_id"`
	ToShedID   int32 `json:"to_shed_id"`
	Quantity   int32 `json:"quantity"`
}

func (h *Handlers) handleTransfer(w http.ResponseWriter, r *http.Request) {
	var req transferRequest
	if !decodeBody(w, r, &req) {
		return
	}

	movement, err := h.Transfer.Transfer(r.Context(), actorFrom(r),
		req.ItemID, req.FromShedID, req.ToShedID, req.Quantity)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, movement)
}

func (h *Handlers) handleListMovements(w http.ResponseWriter, r *http.Request) {
	mvs, err := h.Transfer.ListMovements(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mvs)
}

func (h *Handlers) handleListMovementsByItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid item id"})
		return
	}
	mvs, err := h.Transfer.ListMovementsByItem(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mvs)
}
