// Package sheets reads CRM leads out of the shared Google Sheet the intake
// form writes to. The form ran bilingual for a while, so each field is
// looked up under both header spellings.
package sheets

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"
)

type LeadRow struct {
	Name  string
	Phone string
	Email string
}

var headerAliases = map[string][]string{
	"name":  {"Name/নাম", "Name"},
	"phone": {"WhatsApp Number/নাম্বার", "Phone"},
	"email": {"Email/ইমেল", "Email"},
}

type Client struct {
	CredentialsFile string
	SpreadsheetID   string
	ReadRange       string
}

func NewClient(credentialsFile, spreadsheetID, readRange string) *Client {
	if readRange == "" {
		readRange = "Sheet1"
	}
	return &Client{
		CredentialsFile: credentialsFile,
		SpreadsheetID:   spreadsheetID,
		ReadRange:       readRange,
	}
}

// Fetch downloads the sheet and maps its header row onto lead fields. Rows
// shorter than the header are padded with empty cells.
func (cl *Client) Fetch(ctx context.Context) ([]LeadRow, error) {
	if cl.SpreadsheetID == "" {
		return nil, errors.New("SHEETS_SPREADSHEET_ID not set")
	}
	if _, err := os.Stat(cl.CredentialsFile); err != nil {
		return nil, fmt.Errorf("%s missing", cl.CredentialsFile)
	}

	svc, err := sheetsapi.NewService(ctx, option.WithCredentialsFile(cl.CredentialsFile))
	if err != nil {
		return nil, err
	}

	resp, err := svc.Spreadsheets.Values.Get(cl.SpreadsheetID, cl.ReadRange).Context(ctx).Do()
	if err != nil {
		return nil, err
	}
	if len(resp.Values) < 2 {
		return nil, nil
	}

	headers := make([]string, len(resp.Values[0]))
	for i, v := range resp.Values[0] {
		headers[i] = strings.TrimSpace(fmt.Sprint(v))
	}

	var rows []LeadRow
	for _, raw := range resp.Values[1:] {
		record := map[string]string{}
		for i, h := range headers {
			if i < len(raw) {
				record[h] = strings.TrimSpace(fmt.Sprint(raw[i]))
			}
		}
		rows = append(rows, LeadRow{
			Name:  pick(record, headerAliases["name"]),
			Phone: pick(record, headerAliases["phone"]),
			Email: pick(record, headerAliases["email"]),
		})
	}
	return rows, nil
}

func pick(record map[string]string, keys []string) string {
	for _, k := range keys {
		if v := record[k]; v != "" {
			return v
		}
	}
	return ""
}
