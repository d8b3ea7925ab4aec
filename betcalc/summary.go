package betcalc

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/Fouxth/Bookielocal/models"
)

const UnknownAgentName = "Unknown"

type AgentSummary struct {
	AgentID        uint         `json:"agent_id"`
	AgentName      string       `json:"agent_name"`
	Gross          models.Money `json:"gross"`
	ExpectedPayout models.Money `json:"expected_payout"`
	Profit         models.Money `json:"profit"`
	TicketCount    int          `json:"ticket_count"`
}

// Summary is the dashboard read-model for one date or draw period (and optional round).
type Summary struct {
	Key            string         `json:"key"`
	Round          string         `json:"round,omitempty"`
	Gross          models.Money   `json:"gross"`
	ExpectedPayout models.Money   `json:"expected_payout"`
	Profit         models.Money   `json:"profit"`
	TicketCount    int            `json:"ticket_count"`
	Agents         []AgentSummary `json:"agents"`
	RiskyNumbers   []RiskyNumber  `json:"risky_numbers"`
}

// MatchesKey reports whether a ticket dated date belongs to key: either the exact date,
// or a draw period anchor whose window contains the date.
func MatchesKey(date, key string) bool {
	if date == key {
		return true
	}
	if !IsPeriodAnchor(key) {
		return false
	}
	ok, err := PeriodContains(key, date)
	return err == nil && ok
}

// FilterTickets drops deleted tickets and keeps those matching key and, when set, round.
func FilterTickets(tickets []models.Ticket, key, round string) []models.Ticket {
	out := make([]models.Ticket, 0, len(tickets))
	for _, t := range tickets {
		if t.Deleted || !MatchesKey(t.Date, key) {
			continue
		}
		if round != "" && t.Round != round {
			continue
		}
		out = append(out, t)
	}
	return out
}

// EntryExpectedPayout is the worst case for one entry: every covered combo wins.
// SoldAmount equals unitPrice × quantity for each combo.
func EntryExpectedPayout(e models.Entry) models.Money {
	payout := decimal.Zero
	for _, pc := range e.PerComboTotals {
		payout = payout.Add(pc.PayoutRate.Mul(pc.SoldAmount))
	}
	return payout
}

func TicketExpectedPayout(t models.Ticket) models.Money {
	payout := decimal.Zero
	for _, e := range t.Entries {
		payout = payout.Add(EntryExpectedPayout(e))
	}
	return payout
}

// ComputeSummary aggregates gross sales, worst-case payout and profit over the tickets
// matching key/round, overall and per agent, plus the risky numbers of that set.
func ComputeSummary(tickets []models.Ticket, settings models.Setting, agents []models.Agent, key, round string) Summary {
	names := make(map[uint]string, len(agents))
	for _, a := range agents {
		names[a.AgentID] = a.Name
	}

	filtered := FilterTickets(tickets, key, round)
	s := Summary{
		Key:            key,
		Round:          round,
		Gross:          decimal.Zero,
		ExpectedPayout: decimal.Zero,
		TicketCount:    len(filtered),
	}
	byAgent := make(map[uint]*AgentSummary)
	for _, t := range filtered {
		expected := TicketExpectedPayout(t)
		s.Gross = s.Gross.Add(t.BillTotal)
		s.ExpectedPayout = s.ExpectedPayout.Add(expected)

		as, ok := byAgent[t.AgentID]
		if !ok {
			name, found := names[t.AgentID]
			if !found {
				name = UnknownAgentName
			}
			as = &AgentSummary{AgentID: t.AgentID, AgentName: name, Gross: decimal.Zero, ExpectedPayout: decimal.Zero}
			byAgent[t.AgentID] = as
		}
		as.Gross = as.Gross.Add(t.BillTotal)
		as.ExpectedPayout = as.ExpectedPayout.Add(expected)
		as.TicketCount++
	}
	s.Profit = s.Gross.Sub(s.ExpectedPayout)

	s.Agents = make([]AgentSummary, 0, len(byAgent))
	for _, as := range byAgent {
		as.Profit = as.Gross.Sub(as.ExpectedPayout)
		s.Agents = append(s.Agents, *as)
	}
	sort.Slice(s.Agents, func(i, j int) bool {
		if c := s.Agents[i].Gross.Cmp(s.Agents[j].Gross); c != 0 {
			return c > 0
		}
		return s.Agents[i].AgentID < s.Agents[j].AgentID
	})

	s.RiskyNumbers = FindRiskyNumbers(filtered, settings.RiskyThreshold)
	return s
}
