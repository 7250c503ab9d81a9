package http

import (
	"net/http"

	"shedstock-backend/internal/domain"
	"shedstock-backend/internal/repository"
	"shedstock-backend/internal/service"
)

type withdrawRequest struct {
	ItemID  int32  `json:"item_id"`
	Amount  int32  `json:"amount"`
	Place   string `json:"place"`
	TakenBy string `json:"taken_by"`
}

func (h *Handlers) handleWithdraw(w http.ResponseWriter, r *http.Request) {
	var req withdrawRequest
	if !decodeBody(w, r, &req) {
		return
	}

	rec, err := h.Reconciliation.Withdraw(r.Context(), actorFrom(r), service.WithdrawRequest{
		ItemID:  req.ItemID,
		Amount:  req.Amount,
		Place:   req.Place,
		TakenBy: req.TakenBy,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

type returnRequest struct {
	ItemID     int32  `json:"item_id"`
	Amount     int32  `json:"amount"`
	Place      string `json:"place"`
	ReturnedBy string `json:"returned_by"`
}

func (h *Handlers) handleReturn(w http.ResponseWriter, r *http.Request) {
	var req returnRequest
	if !decodeBody(w, r, &req) {
		return
	}

	rec, err := h.Reconciliation.Return(r.Context(), actorFrom(r), service.ReturnRequest{
		ItemID:     req.ItemID,
		Amount:     req.Amount,
		Place:      req.Place,
		ReturnedBy: req.ReturnedBy,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

func (h *Handlers) handleListHistory(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pageParams(r)
	q := r.URL.Query()
	f := domain.HistoryFilter{
		ItemName: q.Get("item_name"),
		UserName: q.Get("user_name"),
		TakenBy:  q.Get("person_who_took"),
		Place:    q.Get("place"),
		Action:   domain.StockAction(q.Get("action")),
		Category: q.Get("item_category"),
		ShedID:   queryInt32(r, "shed_id"),
		Month:    int(queryInt32(r, "month")),
		Year:     int(queryInt32(r, "year")),
	}

	recs, pg, err := h.Reconciliation.ListHistory(r.Context(), f, page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeList(w, recs, pg)
}

func (h *Handlers) handleListOutstanding(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pageParams(r)
	f := repository.PendingFilter{
		TakenBy: r.URL.Query().Get("person_who_took"),
		Place:   r.URL.Query().Get("place"),
	}

	recs, pg, err := h.Reconciliation.ListOutstanding(r.Context(), f, page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeList(w, recs, pg)
}

func (h *Handlers) handleListRecordsByItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid item id"})
		return
	}
	recs, err := h.Reconciliation.ListByItem(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, recs)
}

type deliveryNoteRequest struct {
	RecordIDs []int32 `json:"record_ids"`
}

func (h *Handlers) handleDeliveryNote(w http.ResponseWriter, r *http.Request) {
	var req deliveryNoteRequest
	if !decodeBody(w, r, &req) {
		return
	}
	note, err := h.Reconciliation.DeliveryNote(r.Context(), req.RecordIDs)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, note)
}
