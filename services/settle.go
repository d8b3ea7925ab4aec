package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Fouxth/Bookielocal/betcalc"
	"github.com/Fouxth/Bookielocal/database"
	"github.com/Fouxth/Bookielocal/metrics"
	"github.com/Fouxth/Bookielocal/models"
	"github.com/Fouxth/Bookielocal/report"
)

var (
	ErrInvalidPeriod = errors.New("draw period must be a YYYY-MM-01 or YYYY-MM-16 date")
	ErrNoResult      = errors.New("no result posted for draw period")
)

// FindResult loads the posted result of a draw period.
func FindResult(db *gorm.DB, period string) (models.LotteryResult, error) {
	var result models.LotteryResult
	err := db.Where("draw_period = ?", period).First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return result, fmt.Errorf("%w %s", ErrNoResult, period)
	}
	return result, err
}

// Settle closes a draw period against its posted result: gross, expected payout, actual
// payout and profit (gross minus actual). The settlement row is upserted, so settling a
// corrected result again overwrites the previous figures. When archiver is non-nil the
// period summary is uploaded as CSV; an upload failure does not fail the settlement.
func Settle(ctx context.Context, db *gorm.DB, period string, archiver report.Archiver) (st models.Settlement, err error) {
	defer func() { metrics.RecordSettlement(err == nil) }()

	if !betcalc.IsPeriodAnchor(period) {
		return st, ErrInvalidPeriod
	}
	db = db.WithContext(ctx)
	// taken before loading so a ticket edited mid-settlement is newer than the settlement
	settledAt := time.Now()

	result, err := FindResult(db, period)
	if err != nil {
		return st, err
	}
	settings, err := database.LoadSettings(db)
	if err != nil {
		return st, err
	}
	agents, err := LoadAgents(db)
	if err != nil {
		return st, err
	}
	tickets, err := TicketsForKey(db, period, "")
	if err != nil {
		return st, err
	}

	summary := betcalc.ComputeSummary(tickets, settings, agents, period, "")
	actual := betcalc.ComputeActualPayout(betcalc.FilterTickets(tickets, period, ""), result)

	st = models.Settlement{
		DrawPeriod:     period,
		TicketCount:    summary.TicketCount,
		Gross:          summary.Gross,
		ExpectedPayout: summary.ExpectedPayout,
		ActualPayout:   actual,
		Profit:         summary.Gross.Sub(actual),
		SettledAt:      settledAt,
	}

	if archiver != nil {
		body, err := report.SummaryCSV(summary, &actual)
		if err == nil {
			st.ArchiveKey, err = archiver.Archive(ctx, period, body)
		}
		if err != nil {
			logrus.WithError(err).WithField("period", period).Warn("settlement archive failed")
		}
	}

	err = db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "draw_period"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"ticket_count", "gross", "expected_payout", "actual_payout", "profit", "archive_key", "settled_at",
		}),
	}).Create(&st).Error
	if err != nil {
		return st, fmt.Errorf("save settlement %s: %w", period, err)
	}

	logrus.WithFields(logrus.Fields{
		"period":        period,
		"tickets":       st.TicketCount,
		"gross":         st.Gross.String(),
		"actual_payout": st.ActualPayout.String(),
		"profit":        st.Profit.String(),
	}).Info("period settled")
	return st, nil
}

// PendingPeriods lists periods whose settlement is missing or stale: the result was corrected
// after the last settlement, or a ticket of the period was written since. Ticket creates,
// edits, deletes, restores and recomputes all move tickets.modified_at forward.
func PendingPeriods(db *gorm.DB) ([]string, error) {
	var periods []string
	err := db.Table("lottery_results AS r").
		Joins("LEFT JOIN settlements AS s ON s.draw_period = r.draw_period").
		Where("s.settlement_id IS NULL OR r.updated_at > s.settled_at OR EXISTS (?)",
			db.Table("tickets AS t").Select("1").
				Where("t.draw_period = r.draw_period AND t.modified_at > s.settled_at")).
		Order("r.draw_period ASC").
		Pluck("r.draw_period", &periods).Error
	if err != nil {
		return nil, fmt.Errorf("find pending settlements: %w", err)
	}
	return periods, nil
}

// SettlePending settles every pending period and returns how many succeeded.
// A failing period is logged and the sweep moves on.
func SettlePending(ctx context.Context, db *gorm.DB, archiver report.Archiver) (int, error) {
	periods, err := PendingPeriods(db.WithContext(ctx))
	if err != nil {
		return 0, err
	}
	settled := 0
	for _, p := range periods {
		if _, err := Settle(ctx, db, p, archiver); err != nil {
			logrus.WithError(err).WithField("period", p).Error("settle failed")
			continue
		}
		settled++
	}
	return settled, nil
}
