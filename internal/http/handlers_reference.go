package http

import (
	"net/http"

	"financeiro/internal/core"
)

type categoryPayload struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := s.reference.ListCategories(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	out := make([]categoryPayload, len(categories))
	for i, c := range categories {
		out[i] = categoryPayload{ID: c.ID, Name: c.Name, Description: c.Description}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryPayload
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorPayload{Error: "invalid request body"})
		return
	}
	id, err := s.reference.CreateCategory(r.Context(), core.Category{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]int64{"id": id})
}

func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorPayload{Error: err.Error()})
		return
	}
	if err := s.reference.DeleteCategory(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"deleted": 1})
}

type subcategoryPayload struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	CategoryID  int64  `json:"category_id"`
}

func (s *Server) handleListSubcategories(w http.ResponseWriter, r *http.Request) {
	categoryID, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorPayload{Error: err.Error()})
		return
	}
	subcategories, err := s.reference.ListSubcategories(r.Context(), categoryID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	out := make([]subcategoryPayload, len(subcategories))
	for i, sc := range subcategories {
		out[i] = subcategoryPayload{
			ID: sc.ID, Name: sc.Name, Description: sc.Description, CategoryID: sc.CategoryID,
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateSubcategory(w http.ResponseWriter, r *http.Request) {
	var req subcategoryPayload
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorPayload{Error: "invalid request body"})
		return
	}
	id, err := s.reference.CreateSubcategory(r.Context(), core.Subcategory{
		Name:        req.Name,
		Description: req.Description,
		CategoryID:  req.CategoryID,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]int64{"id": id})
}

func (s *Server) handleDeleteSubcategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorPayload{Error: err.Error()})
		return
	}
	if err := s.reference.DeleteSubcategory(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"deleted": 1})
}

type paymentTypePayload struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Active      bool   `json:"active"`
}

func (s *Server) handleListPaymentTypes(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active") == "1"
	paymentTypes, err := s.reference.ListPaymentTypes(r.Context(), activeOnly)
	if err != nil {
		writeError(w, r, err)
		return
	}
	out := make([]paymentTypePayload, len(paymentTypes))
	for i, p := range paymentTypes {
		out[i] = paymentTypePayload{
			ID: p.ID, Name: p.Name, Description: p.Description, Active: p.Active,
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreatePaymentType(w http.ResponseWriter, r *http.Request) {
	var req paymentTypePayload
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorPayload{Error: "invalid request body"})
		return
	}
	id, err := s.reference.CreatePaymentType(r.Context(), core.PaymentType{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]int64{"id": id})
}

func (s *Server) handleDeletePaymentType(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorPayload{Error: err.Error()})
		return
	}
	if err := s.reference.DeletePaymentType(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"deleted": 1})
}

func (s *Server) handleTogglePaymentType(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorPayload{Error: err.Error()})
		return
	}
	p, err := s.reference.TogglePaymentType(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, paymentTypePayload{
		ID: p.ID, Name: p.Name, Description: p.Description, Active: p.Active,
	})
}
