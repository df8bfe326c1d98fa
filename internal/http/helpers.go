package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"financeiro/internal/core"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

type errorPayload struct {
	Error string `json:"error"`
}

// badRequestError marks malformed request input (bad path ids, bad
// query parameters) as distinct from domain validation failures.
type badRequestError struct{ msg string }

func (e *badRequestError) Error() string { return e.msg }

func badRequest(msg string) error { return &badRequestError{msg: msg} }

// writeError maps domain errors onto HTTP statuses: malformed requests
// are 400, validation errors 422, missing records 404, blocked deletes
// 409, the rest 500.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var br *badRequestError
	var status int
	switch {
	case errors.As(err, &br):
		status = http.StatusBadRequest
	case core.IsValidation(err):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, core.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, core.ErrPaymentTypeInUse), errors.Is(err, core.ErrCategoryInUse):
		status = http.StatusConflict
	default:
		status = http.StatusInternalServerError
		slog.ErrorContext(r.Context(), "Request failed",
			"method", r.Method, "url", r.URL.Path, "error", err)
	}
	writeJSON(w, status, errorPayload{Error: err.Error()})
}

func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid id in path")
	}
	return id, nil
}

func decodeBody(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// parseAmount accepts an amount either as a decimal string ("150,75")
// or as a JSON number of reais.
type amountField struct {
	raw json.RawMessage
}

func (a *amountField) UnmarshalJSON(data []byte) error {
	a.raw = append(a.raw[:0], data...)
	return nil
}

func (a amountField) IsSet() bool { return len(a.raw) > 0 && string(a.raw) != "null" }

func (a amountField) Cents() (int64, error) {
	var s string
	if err := json.Unmarshal(a.raw, &s); err == nil {
		return core.ParseDecimalToCents(s)
	}
	var f float64
	if err := json.Unmarshal(a.raw, &f); err != nil {
		return 0, core.ErrInvalidAmount
	}
	return core.ParseDecimalToCents(strconv.FormatFloat(f, 'f', -1, 64))
}
