// cmd/starpoint/render.go
package main

import (
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"starpoint/internal/domain"
	"starpoint/internal/util"
)

var (
	headerStyle   = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle     = lipgloss.NewStyle().Padding(0, 1)
	negativeStyle = cellStyle.Foreground(lipgloss.Color("9")) // red
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}

func renderHistory(movements []domain.Movement) string {
	t := newTable("Fecha", "Tipo", "Monto", "Puntos")
	for _, m := range movements {
		kind := "Carga"
		if m.Kind == domain.MovementWithdrawal {
			kind = "Retiro"
		}
		t.Row(m.Date, kind, m.AmountText, m.Points.StringFixed(2))
	}
	return t.String()
}

func renderSummary(summary []domain.UserSummary, zone string) string {
	loc, err := time.LoadLocation(zone)
	if err != nil {
		loc = time.Local
	}

	t := newTable("Usuario", "Cargas", "Descargas", "Puntos", "Último movimiento")
	negatives := make(map[int]bool)
	for i, s := range summary {
		last := util.NotAvailable
		if !s.LastActivity.IsZero() {
			last = s.LastActivity.In(loc).Format(domain.DisplayLayout)
		}
		t.Row(s.User,
			util.FormatThousands(s.DepositAmount),
			util.FormatThousands(s.WithdrawalAmount),
			s.Balance.StringFixed(2),
			last)
		negatives[i] = s.Balance.IsNegative()
	}
	t.StyleFunc(func(row, col int) lipgloss.Style {
		switch {
		case row == table.HeaderRow:
			return headerStyle
		case col == 3 && negatives[row]:
			return negativeStyle
		}
		return cellStyle
	})
	return t.String()
}
