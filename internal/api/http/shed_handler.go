package http

import (
	"net/http"
)

type createShedRequest struct {
	Name string `json:"name"`
}

func (h *Handlers) handleCreateShed(w http.ResponseWriter, r *http.Request) {
	var req createShedRequest
	if !decodeBody(w, r, &req) {
		return
	}
	shed, err := h.Sheds.CreateShed(r.Context(), req.Name)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, shed)
}

func (h *Handlers) handleGetShed(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid shed id"})
		return
	}
	shed, err := h.Sheds.GetShed(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, shed)
}

func (h *Handlers) handleListSheds(w http.ResponseWriter, r *http.Request) {
	sheds, err := h.Sheds.ListSheds(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sheds)
}

type createObservationRequest struct {
	ItemID      int32  `json:"item_id"`
	Description string `json:"description"`
}

func (h *Handlers) handleCreateObservation(w http.ResponseWriter, r *http.Request) {
	var req createObservationRequest
	if !decodeBody(w, r, &req) {
		return
	}
	obs, err := h.Observations.CreateObservation(r.Context(), actorFrom(r), req.ItemID, req.Description)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, obs)
}

func (h *Handlers) handleListObservations(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid item id"})
		return
	}
	obs, err := h.Observations.ListByItem(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, obs)
}
