// internal/export/csv.go
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	"starpoint/internal/domain"

	"github.com/shopspring/decimal"
)

// utf8BOM lets spreadsheet tools detect the encoding.
const utf8BOM = "\ufeff"

var (
	summaryHeader = []string{"Usuario", "Monto_cargas", "Monto_descargas", "Puntos_cargas", "Puntos_descargas", "Puntos_actuales", "Ultimo_movimiento"}
	streamHeader  = []string{"id", "usuario", "monto", "fecha", "puntos"}
)

// writeTable renders rows as ;-separated CSV prefixed with a BOM.
func writeTable(header []string, rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(utf8BOM)

	w := csv.NewWriter(&buf)
	w.Comma = ';'
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}
	if err := w.WriteAll(rows); err != nil {
		return nil, fmt.Errorf("failed to write CSV rows: %w", err)
	}
	return buf.Bytes(), nil
}

// formatNumber renders exactly two decimals with a decimal comma.
func formatNumber(d decimal.Decimal) string {
	return strings.Replace(d.StringFixed(2), ".", ",", 1)
}

func formatOptionalNumber(d decimal.NullDecimal) string {
	if !d.Valid {
		return ""
	}
	return formatNumber(d.Decimal)
}

func formatTime(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return ""
	}
	return t.In(loc).Format(domain.DisplayLayout)
}

func summaryTable(summary []domain.UserSummary, loc *time.Location) ([]byte, error) {
	rows := make([][]string, 0, len(summary))
	for _, s := range summary {
		rows = append(rows, []string{
			s.User,
			formatNumber(s.DepositAmount),
			formatNumber(s.WithdrawalAmount),
			formatNumber(s.DepositPoints),
			formatNumber(s.WithdrawalPoints),
			formatNumber(s.Balance),
			formatTime(s.LastActivity, loc),
		})
	}
	return writeTable(summaryHeader, rows)
}

func depositsTable(deposits []domain.Deposit, loc *time.Location) ([]byte, error) {
	rows := make([][]string, 0, len(deposits))
	for _, d := range deposits {
		rows = append(rows, []string{
			strconv.FormatInt(d.ID, 10),
			d.User,
			formatNumber(d.Amount),
			formatTime(d.OccurredAt, loc),
			formatNumber(d.Points),
		})
	}
	return writeTable(streamHeader, rows)
}

func withdrawalsTable(withdrawals []domain.Withdrawal, loc *time.Location) ([]byte, error) {
	rows := make([][]string, 0, len(withdrawals))
	for _, w := range withdrawals {
		rows = append(rows, []string{
			strconv.FormatInt(w.ID, 10),
			w.User,
			formatOptionalNumber(w.Amount),
			formatTime(w.NotifiedAt, loc),
			formatOptionalNumber(w.Points),
		})
	}
	return writeTable(streamHeader, rows)
}
