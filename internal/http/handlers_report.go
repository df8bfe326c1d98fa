package http

import (
	"net/http"
	"strconv"

	"financeiro/internal/core"
	"financeiro/internal/report"
)

type categoryAmountPayload struct {
	Category    string `json:"category"`
	AmountCents int64  `json:"amount_cents"`
	Amount      string `json:"amount"`
}

type transactionPayload struct {
	Description string `json:"description"`
	AmountCents int64  `json:"amount_cents"`
	Amount      string `json:"amount"`
	Date        string `json:"date"`
	Category    string `json:"category"`
	Subcategory string `json:"subcategory,omitempty"`
	Settled     bool   `json:"settled"`
}

type summaryPayload struct {
	TotalIncomeCents  int64                   `json:"total_income_cents"`
	TotalIncome       string                  `json:"total_income"`
	TotalExpenseCents int64                   `json:"total_expense_cents"`
	TotalExpense      string                  `json:"total_expense"`
	BalanceCents      int64                   `json:"balance_cents"`
	Balance           string                  `json:"balance"`
	IncomeByCategory  []categoryAmountPayload `json:"income_by_category"`
	ExpenseByCategory []categoryAmountPayload `json:"expense_by_category"`
	RecentIncomes     []transactionPayload    `json:"recent_incomes"`
	RecentExpenses    []transactionPayload    `json:"recent_expenses"`
}

// filterFromQuery builds the summary filter from query parameters:
// category, subcategory, date_from, date_to (YYYY-MM-DD, inclusive),
// payment_type_id and status (settled|pending).
func filterFromQuery(r *http.Request) (core.Filter, error) {
	q := r.URL.Query()
	f := core.Filter{
		Category:    q.Get("category"),
		Subcategory: q.Get("subcategory"),
		Status:      core.SettlementStatus(q.Get("status")),
	}

	if raw := q.Get("date_from"); raw != "" {
		d, err := core.ParseDate(raw)
		if err != nil {
			return core.Filter{}, err
		}
		f.DateFrom = d
	}
	if raw := q.Get("date_to"); raw != "" {
		d, err := core.ParseDate(raw)
		if err != nil {
			return core.Filter{}, err
		}
		f.DateTo = d
	}
	if raw := q.Get("payment_type_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			return core.Filter{}, badRequest("invalid payment_type_id")
		}
		f.PaymentTypeID = id
	}
	return f, f.Validate()
}

func (s *Server) summaryFor(r *http.Request) (core.Summary, error) {
	f, err := filterFromQuery(r)
	if err != nil {
		return core.Summary{}, err
	}

	key := r.URL.Query().Encode()
	if cached, ok := s.summaryCache.Get(key); ok {
		return cached, nil
	}

	summary, err := s.ledger.Summary(r.Context(), f)
	if err != nil {
		return core.Summary{}, err
	}
	s.summaryCache.Set(key, summary)
	return summary, nil
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := s.summaryFor(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toSummaryPayload(summary))
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	summary, err := s.summaryFor(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="resumo-financeiro.xlsx"`)
	if err := report.WriteSummaryXLSX(w, summary); err != nil {
		// Headers are already out; the truncated body is all we can
		// signal with.
		writeError(w, r, err)
	}
}

func toSummaryPayload(s core.Summary) summaryPayload {
	p := summaryPayload{
		TotalIncomeCents:  s.TotalIncome.Cents,
		TotalIncome:       report.FormatBRL(s.TotalIncome),
		TotalExpenseCents: s.TotalExpense.Cents,
		TotalExpense:      report.FormatBRL(s.TotalExpense),
		BalanceCents:      s.Balance.Cents,
		Balance:           report.FormatBRL(s.Balance),
		IncomeByCategory:  make([]categoryAmountPayload, 0, len(s.IncomeByCategory)),
		ExpenseByCategory: make([]categoryAmountPayload, 0, len(s.ExpenseByCategory)),
		RecentIncomes:     make([]transactionPayload, 0, len(s.RecentIncomes)),
		RecentExpenses:    make([]transactionPayload, 0, len(s.RecentExpenses)),
	}

	for _, c := range s.IncomeByCategory {
		p.IncomeByCategory = append(p.IncomeByCategory, categoryAmountPayload{
			Category: c.Name, AmountCents: c.Amount.Cents, Amount: report.FormatBRL(c.Amount),
		})
	}
	for _, c := range s.ExpenseByCategory {
		p.ExpenseByCategory = append(p.ExpenseByCategory, categoryAmountPayload{
			Category: c.Name, AmountCents: c.Amount.Cents, Amount: report.FormatBRL(c.Amount),
		})
	}
	for _, tx := range s.RecentIncomes {
		p.RecentIncomes = append(p.RecentIncomes, toTransactionPayload(tx))
	}
	for _, tx := range s.RecentExpenses {
		p.RecentExpenses = append(p.RecentExpenses, toTransactionPayload(tx))
	}
	return p
}

func toTransactionPayload(tx core.TransactionView) transactionPayload {
	return transactionPayload{
		Description: tx.Description,
		AmountCents: tx.Amount.Cents,
		Amount:      report.FormatBRL(tx.Amount),
		Date:        tx.Date.FormatBR(),
		Category:    tx.Category,
		Subcategory: tx.Subcategory,
		Settled:     tx.Settled,
	}
}
