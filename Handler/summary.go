package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/Fouxth/Bookielocal/betcalc"
	"github.com/Fouxth/Bookielocal/database"
	"github.com/Fouxth/Bookielocal/metrics"
	"github.com/Fouxth/Bookielocal/models"
	"github.com/Fouxth/Bookielocal/report"
	"github.com/Fouxth/Bookielocal/services"
)

// SummaryPayload is what /summary returns and what the cache stores.
// ActualPayout is set only once the period's result is posted; it replaces the expected
// payout for reporting and is never added to it.
type SummaryPayload struct {
	Summary      betcalc.Summary `json:"summary"`
	DrawPeriod   string          `json:"draw_period"`
	ActualPayout *models.Money   `json:"actual_payout,omitempty"`
	ActualProfit *models.Money   `json:"actual_profit,omitempty"`
}

func summaryKey(c *gin.Context) (key, round, period string, ok bool) {
	key = c.Query("key")
	round = c.Query("round")
	if key == "" {
		key = time.Now().Format(betcalc.DateLayout)
	}
	period, err := betcalc.PeriodFor(key)
	if err != nil {
		Fail(c, http.StatusBadRequest, "key must be a date (YYYY-MM-DD) or a draw period")
		return "", "", "", false
	}
	if betcalc.IsPeriodAnchor(key) {
		period = key
	}
	return key, round, period, true
}

func buildSummary(db *gorm.DB, key, round, period string) (SummaryPayload, error) {
	start := time.Now()
	defer func() { metrics.ObserveSummary(time.Since(start)) }()

	tickets, err := services.TicketsForKey(db, key, round)
	if err != nil {
		return SummaryPayload{}, err
	}
	settings, err := database.LoadSettings(db)
	if err != nil {
		return SummaryPayload{}, err
	}
	agents, err := services.LoadAgents(db)
	if err != nil {
		return SummaryPayload{}, err
	}

	p := SummaryPayload{
		Summary:    betcalc.ComputeSummary(tickets, settings, agents, key, round),
		DrawPeriod: period,
	}
	result, err := services.FindResult(db, period)
	switch {
	case err == nil:
		actual := betcalc.ComputeActualPayout(betcalc.FilterTickets(tickets, key, round), result)
		profit := p.Summary.Gross.Sub(actual)
		p.ActualPayout = &actual
		p.ActualProfit = &profit
	case !errors.Is(err, services.ErrNoResult):
		return SummaryPayload{}, err
	}
	return p, nil
}

// ---------- สรุปยอดรายวัน / รายงวด ----------
/*
GET /summary?key=2024-03-16&round=evening
key = วันที่ (YYYY-MM-DD) หรือ งวด (วันที่ 1 / 16)
*/
func GetSummary(c *gin.Context, d *Deps) {
	key, round, period, ok := summaryKey(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	var p SummaryPayload
	hit, err := d.Cache.Get(ctx, "summary", key, round, &p)
	if err != nil {
		logrus.WithError(err).Warn("summary cache read failed")
	}
	if !hit {
		p, err = buildSummary(d.DB, key, round, period)
		if err != nil {
			RespondError(c, err)
			return
		}
		if err := d.Cache.Set(ctx, "summary", key, round, p); err != nil {
			logrus.WithError(err).Warn("summary cache write failed")
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"status":        "success",
		"cached":        hit,
		"summary":       p.Summary,
		"draw_period":   p.DrawPeriod,
		"actual_payout": p.ActualPayout,
		"actual_profit": p.ActualProfit,
	})
}

// GET /summary/export?key=&round= (CSV)
func ExportSummary(c *gin.Context, db *gorm.DB) {
	key, round, period, ok := summaryKey(c)
	if !ok {
		return
	}
	p, err := buildSummary(db, key, round, period)
	if err != nil {
		RespondError(c, err)
		return
	}
	body, err := report.SummaryCSV(p.Summary, p.ActualPayout)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="summary-%s.csv"`, key))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", body)
}

// ---------- เลขเสี่ยง ----------
func GetRisky(c *gin.Context, d *Deps) {
	key, round, _, ok := summaryKey(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	var risky []betcalc.RiskyNumber
	hit, err := d.Cache.Get(ctx, "risky", key, round, &risky)
	if err != nil {
		logrus.WithError(err).Warn("risky cache read failed")
	}
	if !hit {
		tickets, err := services.TicketsForKey(d.DB, key, round)
		if err != nil {
			RespondError(c, err)
			return
		}
		settings, err := database.LoadSettings(d.DB)
		if err != nil {
			RespondError(c, err)
			return
		}
		risky = betcalc.FindRiskyNumbers(betcalc.FilterTickets(tickets, key, round), settings.RiskyThreshold)
		if err := d.Cache.Set(ctx, "risky", key, round, risky); err != nil {
			logrus.WithError(err).Warn("risky cache write failed")
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "key": key, "risky_numbers": risky})
}

// ---------- ยอดรวมต่อเลข (เฉพาะวันที่ระบุ) ----------
func GetNumberTotals(c *gin.Context, db *gorm.DB) {
	date := c.Query("date")
	if _, err := time.Parse(betcalc.DateLayout, date); err != nil {
		Fail(c, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}

	var tickets []models.Ticket
	err := services.WithEntries(db).Where("date = ? AND deleted = ?", date, false).Find(&tickets).Error
	if err != nil {
		RespondError(c, err)
		return
	}
	settings, err := database.LoadSettings(db)
	if err != nil {
		RespondError(c, err)
		return
	}

	totals := betcalc.SortedNumberTotals(betcalc.NumberTotals(tickets, date, settings.Ceilings.PerNumberMax))
	c.JSON(http.StatusOK, gin.H{
		"status":         "success",
		"date":           date,
		"per_number_max": settings.Ceilings.PerNumberMax,
		"numbers":        totals,
	})
}

// GET /period?date=2024-03-18
func GetPeriod(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		date = time.Now().Format(betcalc.DateLayout)
	}
	period, err := betcalc.PeriodFor(date)
	if err != nil {
		Fail(c, http.StatusBadRequest, err.Error())
		return
	}
	from, to, err := betcalc.PeriodRange(period)
	if err != nil {
		Fail(c, http.StatusBadRequest, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "date": date, "draw_period": period, "from": from, "to": to})
}
