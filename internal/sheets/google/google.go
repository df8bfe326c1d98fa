// Package google mirrors monthly ledger snapshots to a Google Sheets
// spreadsheet, one sheet tab per month.
package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"financeiro/internal/core"
	ports "financeiro/internal/sheets"
)

type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetBase     string
}

var _ ports.Exporter = (*Client)(nil)

// NewFromEnv creates a Sheets client from the environment.
// Required: GOOGLE_SPREADSHEET_ID.
// Credentials: GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE,
// or GOOGLE_APPLICATION_CREDENTIALS.
// Optional: GOOGLE_SHEET_NAME, the tab name base (default "Financeiro");
// tabs are named "<base> YYYY-MM".
func NewFromEnv(ctx context.Context) (*Client, error) {
	spreadsheetID := strings.TrimSpace(os.Getenv("GOOGLE_SPREADSHEET_ID"))
	if spreadsheetID == "" {
		return nil, errors.New("missing GOOGLE_SPREADSHEET_ID")
	}

	sheetBase := strings.TrimSpace(os.Getenv("GOOGLE_SHEET_NAME"))
	if sheetBase == "" {
		sheetBase = "Financeiro"
	}

	svc, err := newSheetsService(ctx)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	return &Client{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		sheetBase:     sheetBase,
	}, nil
}

func newSheetsService(ctx context.Context) (*gsheet.Service, error) {
	serviceAccountJSON := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"))
	serviceAccountFile := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE"))
	if serviceAccountJSON == "" && serviceAccountFile == "" {
		serviceAccountFile = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	var credentialsJSON []byte
	var err error
	switch {
	case serviceAccountJSON != "":
		credentialsJSON = []byte(serviceAccountJSON)
	case serviceAccountFile != "":
		credentialsJSON, err = os.ReadFile(serviceAccountFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}

	service, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return service, nil
}

func (c *Client) sheetName(year, month int) string {
	return fmt.Sprintf("%s %04d-%02d", c.sheetBase, year, month)
}

// ExportMonth clears the month's tab and rewrites it: a header row, the
// income rows, then the expense rows. The tab must already exist in the
// spreadsheet.
func (c *Client) ExportMonth(ctx context.Context, year, month int, incomes []core.Income, expenses []core.Expense) error {
	sheet := c.sheetName(year, month)
	rng := fmt.Sprintf("%s!A1:H", sheet)

	if _, err := c.svc.Spreadsheets.Values.Clear(c.spreadsheetID, rng, &gsheet.ClearValuesRequest{}).
		Context(ctx).Do(); err != nil {
		return fmt.Errorf("clear range %s: %w", rng, err)
	}

	values := [][]any{
		{"Tipo", "Data", "Descrição", "Categoria", "Subcategoria", "Previsto", "Realizado", "Efetivado"},
	}
	for _, in := range incomes {
		values = append(values, []any{
			"Receita", in.Date.FormatBR(), in.Description, in.Category, "",
			in.Planned.Reais(), in.Actual.Reais(), settledCell(in.Settled),
		})
	}
	for _, e := range expenses {
		values = append(values, []any{
			"Despesa", e.Date.FormatBR(), e.Description, e.Category, e.Subcategory,
			e.Planned.Reais(), e.Actual.Reais(), settledCell(e.Settled),
		})
	}

	vr := &gsheet.ValueRange{Values: values}
	_, err := c.svc.Spreadsheets.Values.Update(c.spreadsheetID, rng, vr).
		ValueInputOption("USER_ENTERED").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("write range %s: %w", rng, err)
	}

	slog.InfoContext(ctx, "Exported month to spreadsheet",
		"sheet", sheet,
		"incomes", len(incomes),
		"expenses", len(expenses))
	return nil
}

func settledCell(settled bool) string {
	if settled {
		return "Sim"
	}
	return "Não"
}
