// Package google exports the contract report to a shared Google Sheet so
// the agency can read the monthly totals without opening the tool.
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

	"github.com/VBWEBcorp/Gestion-clients-vbweb/internal/sheets"
)

type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetName     string
}

var _ sheets.SnapshotWriter = (*Client)(nil)

// New creates a Sheets client for the given spreadsheet using Service
// Account credentials from the environment (GOOGLE_SERVICE_ACCOUNT_JSON,
// GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS).
func New(ctx context.Context, spreadsheetID, sheetName string) (*Client, error) {
	if strings.TrimSpace(spreadsheetID) == "" {
		return nil, errors.New("missing spreadsheet id")
	}
	if strings.TrimSpace(sheetName) == "" {
		return nil, errors.New("missing sheet name")
	}

	svc, err := newSheetsService(ctx)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	return &Client{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		sheetName:     sheetName,
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

// WriteSnapshot overwrites the report sheet with the summary block followed
// by one row per record. The sheet is cleared first so deleted records do
// not leave stale rows behind.
func (c *Client) WriteSnapshot(ctx context.Context, snap sheets.Snapshot) error {
	if c.svc == nil {
		return errors.New("sheets service not initialized")
	}

	clearRange := fmt.Sprintf("%s!A:J", c.sheetName)
	_, err := c.svc.Spreadsheets.Values.Clear(c.spreadsheetID, clearRange, &gsheet.ClearValuesRequest{}).
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("clear sheet %s: %w", c.sheetName, err)
	}

	values := [][]any{
		{"Généré le", snap.GeneratedAt.UTC().Format("2006-01-02 15:04")},
		{"Total HT", snap.Summary.TotalHT.StringFixed(2)},
		{"Total TTC", snap.Summary.TotalTTC.StringFixed(2), fmt.Sprintf("TVA %s%%", snap.Settings.VATRate.String())},
		{"Après impôts", snap.Summary.TotalAfterTax.StringFixed(2), fmt.Sprintf("Impôts %s%%", snap.Settings.TaxRate.String())},
		{},
		{"Interlocuteur", "Entreprise", "Email", "Prestation", "Montant HT", "Fréquence", "Statut", "Début", "Fin"},
	}
	for _, r := range snap.Records {
		values = append(values, []any{
			r.Leader, r.Company, r.Email, r.Service,
			r.AmountHT.StringFixed(2), string(r.Frequency), string(r.Status),
			r.StartDate.ISO(), r.EndDate.ISO(),
		})
	}

	writeRange := fmt.Sprintf("%s!A1", c.sheetName)
	vr := &gsheet.ValueRange{Values: values}
	_, err = c.svc.Spreadsheets.Values.Update(c.spreadsheetID, writeRange, vr).
		ValueInputOption("USER_ENTERED").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("write snapshot to %s: %w", c.sheetName, err)
	}

	slog.InfoContext(ctx, "Report snapshot exported",
		"sheet", c.sheetName,
		"records", len(snap.Records),
		"total_ht", snap.Summary.TotalHT.StringFixed(2))

	return nil
}
