package betcalc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Fouxth/Bookielocal/models"
)

func TestComputeSummary(t *testing.T) {
	agents := []models.Agent{{AgentID: 1, Name: "ป้าแดง"}, {AgentID: 2, Name: "Somchai"}}
	deleted := ticket("gone", 1, "2024-03-10", mustEntry(models.Cat3Top, "999", 1000, 1))
	deleted.Deleted = true
	round2 := ticket("r2", 2, "2024-03-10", mustEntry(models.Cat2Top, "45", 10, 1))
	round2.Round = "2"

	tickets := []models.Ticket{
		ticket("a", 1, "2024-03-10", mustEntry(models.Cat3Top, "123", 100, 1)), // 100, payout 80000
		ticket("b", 2, "2024-03-16", mustEntry(models.Cat3Tod, "123", 10, 1)),  // 10, payout 6*130*10
		ticket("c", 3, "2024-03-17", mustEntry(models.Cat2Down, "45", 400, 1)), // unknown agent
		ticket("outside", 1, "2024-03-18", mustEntry(models.Cat3Top, "123", 100, 1)),
		deleted,
		round2,
	}

	s := ComputeSummary(tickets, testSettings(), agents, "2024-03-16", "")
	assert.Equal(t, 4, s.TicketCount)
	assert.True(t, s.Gross.Equal(d(100+10+400+10)))
	wantExpected := d(80000 + 7800 + 36000 + 900)
	assert.True(t, s.ExpectedPayout.Equal(wantExpected), "got %s", s.ExpectedPayout)
	assert.True(t, s.Profit.Equal(s.Gross.Sub(wantExpected)))

	require.Len(t, s.Agents, 3)
	assert.Equal(t, uint(3), s.Agents[0].AgentID)
	assert.Equal(t, UnknownAgentName, s.Agents[0].AgentName)
	assert.Equal(t, "ป้าแดง", s.Agents[1].AgentName)
	assert.Equal(t, "Somchai", s.Agents[2].AgentName)
	assert.Equal(t, 2, s.Agents[2].TicketCount)
	assert.True(t, s.Agents[1].Profit.Equal(d(100-80000)))

	require.Len(t, s.RiskyNumbers, 1)
	assert.Equal(t, "45", s.RiskyNumbers[0].Combo)
}

func TestComputeSummary_RoundAndExactDate(t *testing.T) {
	r1 := ticket("a", 1, "2024-03-10", mustEntry(models.Cat2Top, "12", 10, 1))
	r1.Round = "1"
	r2 := ticket("b", 1, "2024-03-10", mustEntry(models.Cat2Top, "12", 20, 1))
	r2.Round = "2"
	other := ticket("c", 1, "2024-03-11", mustEntry(models.Cat2Top, "12", 40, 1))
	other.Round = "1"

	s := ComputeSummary([]models.Ticket{r1, r2, other}, testSettings(), nil, "2024-03-10", "1")
	assert.Equal(t, 1, s.TicketCount)
	assert.True(t, s.Gross.Equal(d(10)))

	s = ComputeSummary([]models.Ticket{r1, r2, other}, testSettings(), nil, "2024-03-10", "")
	assert.Equal(t, 2, s.TicketCount)

	empty := ComputeSummary(nil, testSettings(), nil, "2024-03-10", "")
	assert.True(t, empty.Gross.IsZero())
	assert.NotNil(t, empty.Agents)
	assert.NotNil(t, empty.RiskyNumbers)
}

func TestEntryExpectedPayout(t *testing.T) {
	e := mustEntry(models.Cat2Tod, "12", 10, 2)
	// two combos, each 20 at risk at 90x
	assert.True(t, EntryExpectedPayout(e).Equal(d(3600)))
}
