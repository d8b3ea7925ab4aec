package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Fouxth/Bookielocal/betcalc"
	"github.com/Fouxth/Bookielocal/database"
	"github.com/Fouxth/Bookielocal/metrics"
	"github.com/Fouxth/Bookielocal/models"
)

type TicketFailure struct {
	TicketID string `json:"ticket_id"`
	Error    string `json:"error"`
}

type RecomputeResult struct {
	Total   int             `json:"total"`
	Changed int             `json:"changed"`
	Failed  []TicketFailure `json:"failed"`
}

type recomputed struct {
	ticket  models.Ticket
	changed bool
	err     error
}

// RecomputeAll re-prices every ticket, deleted ones included, against the current settings
// and blocked numbers. Tickets are loaded FOR UPDATE inside the write transaction, so an edit
// committed meanwhile either lands before the load or waits for the recompute to finish.
// Tickets are computed in parallel on an ants pool; one that fails to compute is reported and
// left as is.
func RecomputeAll(ctx context.Context, db *gorm.DB, workers int) (res RecomputeResult, err error) {
	defer func() { metrics.RecordRecompute(err == nil) }()

	settings, err := database.LoadSettings(db)
	if err != nil {
		return res, err
	}
	blocked, err := database.LoadBlocked(db)
	if err != nil {
		return res, err
	}
	idx := betcalc.IndexBlocked(blocked)

	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var tickets []models.Ticket
		locked := tx.Clauses(clause.Locking{Strength: "UPDATE"})
		if err := WithEntries(locked).Order("created_at ASC").Find(&tickets).Error; err != nil {
			return fmt.Errorf("load tickets: %w", err)
		}

		out, err := recomputeParallel(tickets, settings, idx, workers)
		if err != nil {
			return err
		}

		res = RecomputeResult{Total: len(tickets), Failed: make([]TicketFailure, 0)}
		for i, r := range out {
			if r.err != nil {
				res.Failed = append(res.Failed, TicketFailure{TicketID: tickets[i].ID, Error: r.err.Error()})
				continue
			}
			if !r.changed {
				continue
			}
			if err := SaveComputed(tx, r.ticket); err != nil {
				return fmt.Errorf("write recomputed tickets: %w", err)
			}
			res.Changed++
		}
		return nil
	})
	if err != nil {
		return RecomputeResult{}, err
	}

	logrus.WithFields(logrus.Fields{
		"total":   res.Total,
		"changed": res.Changed,
		"failed":  len(res.Failed),
	}).Info("recompute finished")
	return res, nil
}

func recomputeParallel(tickets []models.Ticket, settings models.Setting, idx betcalc.BlockedIndex, workers int) ([]recomputed, error) {
	if workers <= 0 {
		workers = 1
	}
	pool, err := ants.NewPool(workers)
	if err != nil {
		return nil, fmt.Errorf("start recompute pool: %w", err)
	}
	defer pool.Release()

	out := make([]recomputed, len(tickets))
	var wg sync.WaitGroup
	for i := range tickets {
		i := i
		wg.Add(1)
		task := func() {
			defer wg.Done()
			t, err := betcalc.RecomputeTicketIndexed(tickets[i], settings, idx)
			out[i] = recomputed{ticket: t, err: err, changed: err == nil && ticketChanged(tickets[i], t)}
		}
		if err := pool.Submit(task); err != nil {
			wg.Done()
			out[i] = recomputed{err: err}
		}
	}
	wg.Wait()
	return out, nil
}

// SaveComputed writes the derived columns of a ticket and its entries. The ticket's
// modified_at moves forward, which marks a settled period for re-settlement.
func SaveComputed(tx *gorm.DB, t models.Ticket) error {
	for i := range t.Entries {
		e := t.Entries[i]
		err := tx.Model(&e).Select("expanded", "per_combo_totals", "total").Updates(&e).Error
		if err != nil {
			return fmt.Errorf("update entry %s: %w", e.ID, err)
		}
	}
	err := tx.Model(&models.Ticket{}).Where("id = ?", t.ID).Update("bill_total", t.BillTotal).Error
	if err != nil {
		return fmt.Errorf("update ticket %s: %w", t.ID, err)
	}
	return nil
}

func ticketChanged(before, after models.Ticket) bool {
	if !before.BillTotal.Equal(after.BillTotal) || len(before.Entries) != len(after.Entries) {
		return true
	}
	for i := range before.Entries {
		if entryChanged(before.Entries[i], after.Entries[i]) {
			return true
		}
	}
	return false
}

func entryChanged(before, after models.Entry) bool {
	if !before.Total.Equal(after.Total) || len(before.PerComboTotals) != len(after.PerComboTotals) {
		return true
	}
	for i, pc := range before.PerComboTotals {
		next := after.PerComboTotals[i]
		if pc.Combo != next.Combo || !pc.PayoutRate.Equal(next.PayoutRate) || !pc.SoldAmount.Equal(next.SoldAmount) {
			return true
		}
	}
	return false
}
