package http

import (
	"net/http"

	"financeiro/internal/core"
	"financeiro/internal/services"
)

type createExpenseRequest struct {
	Description   string      `json:"description"`
	Planned       amountField `json:"planned"`
	Actual        amountField `json:"actual"`
	Date          string      `json:"date"`
	Category      string      `json:"category"`
	Subcategory   string      `json:"subcategory"`
	PaymentTypeID int64       `json:"payment_type_id"`
	Installments  int         `json:"installments"`
	Settled       bool        `json:"settled"`
}

type createExpenseResponse struct {
	Installments int    `json:"installments"`
	GroupID      string `json:"group_id,omitempty"`
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	var req createExpenseRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorPayload{Error: "invalid request body"})
		return
	}

	in := services.CreateExpenseInput{
		Description:   req.Description,
		Category:      req.Category,
		Subcategory:   req.Subcategory,
		PaymentTypeID: req.PaymentTypeID,
		Installments:  req.Installments,
		Settled:       req.Settled,
	}

	if req.Planned.IsSet() {
		cents, err := req.Planned.Cents()
		if err != nil {
			writeError(w, r, err)
			return
		}
		in.Planned = core.Money{Cents: cents}
	}
	if req.Actual.IsSet() {
		cents, err := req.Actual.Cents()
		if err != nil {
			writeError(w, r, err)
			return
		}
		in.Actual = core.Money{Cents: cents}
		in.HasActual = true
	}

	date, err := core.ParseDate(req.Date)
	if err != nil {
		writeError(w, r, err)
		return
	}
	in.Date = date

	res, err := s.ledger.CreateExpense(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}

	s.summaryCache.Clear()
	writeJSON(w, http.StatusCreated, createExpenseResponse{
		Installments: res.Installments,
		GroupID:      res.GroupID,
	})
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorPayload{Error: err.Error()})
		return
	}

	scope := core.DeleteScope(r.URL.Query().Get("scope"))
	deleted, err := s.ledger.DeleteExpense(r.Context(), id, scope)
	if err != nil {
		writeError(w, r, err)
		return
	}

	s.summaryCache.Clear()
	writeJSON(w, http.StatusOK, map[string]int64{"deleted": deleted})
}

type updateRequest struct {
	Settled *bool       `json:"settled"`
	Actual  amountField `json:"actual"`
}

type updateResponse struct {
	Settled      bool  `json:"settled"`
	ActualCents  int64 `json:"actual_cents"`
	PlannedCents int64 `json:"planned_cents"`
}

func (req updateRequest) toPatch() (services.UpdatePatch, error) {
	patch := services.UpdatePatch{Settled: req.Settled}
	if req.Actual.IsSet() {
		cents, err := req.Actual.Cents()
		if err != nil {
			return services.UpdatePatch{}, err
		}
		patch.Actual = &core.Money{Cents: cents}
	}
	return patch, nil
}

func (s *Server) handleUpdateExpense(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorPayload{Error: err.Error()})
		return
	}

	var req updateRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorPayload{Error: "invalid request body"})
		return
	}
	patch, err := req.toPatch()
	if err != nil {
		writeError(w, r, err)
		return
	}

	applyToGroup := r.URL.Query().Get("group") == "1"
	res, err := s.ledger.UpdateExpense(r.Context(), id, patch, applyToGroup)
	if err != nil {
		writeError(w, r, err)
		return
	}

	s.summaryCache.Clear()
	writeJSON(w, http.StatusOK, updateResponse{
		Settled:      res.Settled,
		ActualCents:  res.Actual.Cents,
		PlannedCents: res.Planned.Cents,
	})
}
