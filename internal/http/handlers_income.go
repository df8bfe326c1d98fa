package http

import (
	"net/http"

	"financeiro/internal/core"
	"financeiro/internal/services"
)

type createIncomeRequest struct {
	Description string      `json:"description"`
	Planned     amountField `json:"planned"`
	Actual      amountField `json:"actual"`
	Date        string      `json:"date"`
	Category    string      `json:"category"`
	Settled     bool        `json:"settled"`
}

func (s *Server) handleCreateIncome(w http.ResponseWriter, r *http.Request) {
	var req createIncomeRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorPayload{Error: "invalid request body"})
		return
	}

	in := services.CreateIncomeInput{
		Description: req.Description,
		Category:    req.Category,
		Settled:     req.Settled,
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

	id, err := s.ledger.CreateIncome(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}

	s.summaryCache.Clear()
	writeJSON(w, http.StatusCreated, map[string]int64{"id": id})
}

func (s *Server) handleDeleteIncome(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorPayload{Error: err.Error()})
		return
	}

	if err := s.ledger.DeleteIncome(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}

	s.summaryCache.Clear()
	writeJSON(w, http.StatusOK, map[string]int64{"deleted": 1})
}

func (s *Server) handleUpdateIncome(w http.ResponseWriter, r *http.Request) {
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

	res, err := s.ledger.UpdateIncome(r.Context(), id, patch)
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
