package report

import (
	"bytes"
	"encoding/csv"
	"io"
	"strconv"

	"github.com/Fouxth/Bookielocal/betcalc"
	"github.com/Fouxth/Bookielocal/models"
)

// WriteSummaryCSV renders a summary as three CSV blocks separated by blank lines:
// totals, per-agent rows and risky numbers. actual may be nil when no result is posted.
func WriteSummaryCSV(w io.Writer, s betcalc.Summary, actual *models.Money) error {
	cw := csv.NewWriter(w)

	round := s.Round
	if round == "" {
		round = "all"
	}
	rows := [][]string{
		{"key", "round", "tickets", "gross", "expected_payout", "profit", "actual_payout"},
		{s.Key, round, strconv.Itoa(s.TicketCount), s.Gross.StringFixed(2), s.ExpectedPayout.StringFixed(2), s.Profit.StringFixed(2), moneyOrEmpty(actual)},
		{},
		{"agent_id", "agent_name", "tickets", "gross", "expected_payout", "profit"},
	}
	for _, a := range s.Agents {
		rows = append(rows, []string{
			strconv.FormatUint(uint64(a.AgentID), 10),
			a.AgentName,
			strconv.Itoa(a.TicketCount),
			a.Gross.StringFixed(2),
			a.ExpectedPayout.StringFixed(2),
			a.Profit.StringFixed(2),
		})
	}
	rows = append(rows, []string{}, []string{"category", "combo", "sold_amount"})
	for _, r := range s.RiskyNumbers {
		rows = append(rows, []string{string(r.Category), r.Combo, r.SoldAmount.StringFixed(2)})
	}

	if err := cw.WriteAll(rows); err != nil {
		return err
	}
	return cw.Error()
}

func SummaryCSV(s betcalc.Summary, actual *models.Money) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteSummaryCSV(&buf, s, actual); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func moneyOrEmpty(m *models.Money) string {
	if m == nil {
		return ""
	}
	return m.StringFixed(2)
}
