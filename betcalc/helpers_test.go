package betcalc

import (
	"github.com/shopspring/decimal"

	"github.com/Fouxth/Bookielocal/models"
)

func d(v int64) models.Money { return decimal.NewFromInt(v) }

func testSettings() models.Setting {
	return models.Setting{
		Payouts: map[models.Category]models.Money{
			models.Cat3Top:  d(800),
			models.Cat3Down: d(150),
			models.Cat3Tod:  d(130),
			models.Cat3Back: d(130),
			models.Cat2Top:  d(90),
			models.Cat2Down: d(90),
			models.Cat2Tod:  d(90),
			models.Cat2Back: d(90),
		},
		Ceilings: models.Ceilings{
			PerComboMax:  d(1000),
			PerNumberMax: d(500),
		},
		RiskyThreshold: d(300),
	}
}

func mustEntry(cat models.Category, raw string, price int64, qty int) models.Entry {
	e, err := ComputeEntry(models.Entry{Category: cat, Raw: raw, UnitPrice: d(price), Quantity: qty}, testSettings(), nil)
	if err != nil {
		panic(err)
	}
	return e
}

func ticket(id string, agent uint, date string, entries ...models.Entry) models.Ticket {
	t := models.Ticket{ID: id, AgentID: agent, Date: date, Entries: entries}
	t.BillTotal = TicketTotal(t)
	return t
}
