package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Fouxth/Bookielocal/betcalc"
	"github.com/Fouxth/Bookielocal/database"
	"github.com/Fouxth/Bookielocal/metrics"
	"github.com/Fouxth/Bookielocal/models"
	"github.com/Fouxth/Bookielocal/services"
)

// ---------- Request Models ----------
type EntryInput struct {
	Category  string          `json:"category"   binding:"required"`
	Raw       string          `json:"raw"        binding:"required"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  *int            `json:"quantity"` // ไม่ส่งมา = 1
}

func (in EntryInput) toEntry() models.Entry {
	qty := 1
	if in.Quantity != nil {
		qty = *in.Quantity
	}
	return models.Entry{
		Category:  models.Category(strings.TrimSpace(in.Category)),
		Raw:       strings.TrimSpace(in.Raw),
		UnitPrice: in.UnitPrice,
		Quantity:  qty,
	}
}

type PreviewRequest struct {
	EntryInput
	Date string `json:"date"` // ว่าง = วันนี้
}

// computeEntries prices every input against live settings, then folds duplicates that
// share a unit price.
func computeEntries(inputs []EntryInput, settings models.Setting, blocked []models.BlockedNumber) ([]models.Entry, error) {
	idx := betcalc.IndexBlocked(blocked)
	computed := make([]models.Entry, 0, len(inputs))
	for i, in := range inputs {
		e, err := betcalc.ComputeEntryIndexed(in.toEntry(), settings, idx)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i+1, err)
		}
		metrics.RecordEntryComputed(string(e.Category))
		computed = append(computed, e)
	}

	merged := betcalc.MergeSamePriceEntries(computed)
	for i := range merged {
		merged[i].ID = uuid.NewString()
		merged[i].Seq = i + 1
	}
	return merged, nil
}

// ceilingWarnings checks each entry against the period's sales plus the entries before it
// in the same ticket.
func ceilingWarnings(existing []models.Ticket, entries []models.Entry, settings models.Setting) []betcalc.CeilingViolation {
	warnings := make([]betcalc.CeilingViolation, 0)
	var pending models.Ticket
	for _, e := range entries {
		tickets := append(existing[:len(existing):len(existing)], pending)
		if v := betcalc.CheckCeilingViolation(tickets, e, settings); v != nil {
			metrics.RecordCeilingWarning()
			warnings = append(warnings, *v)
		}
		pending.Entries = append(pending.Entries, e)
	}
	return warnings
}

// ---------- Preview เลขก่อนบันทึก ----------
/*
POST /entries/preview
Body:

	{
	  "category": "3tod",
	  "raw": "123",
	  "unit_price": "10",
	  "quantity": 1,
	  "date": "2024-03-10"
	}
*/
func PreviewEntry(c *gin.Context, db *gorm.DB) {
	var req PreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, http.StatusBadRequest, "invalid request")
		return
	}
	if req.Date == "" {
		req.Date = time.Now().Format(betcalc.DateLayout)
	}
	period, err := betcalc.PeriodFor(req.Date)
	if err != nil {
		Fail(c, http.StatusBadRequest, err.Error())
		return
	}

	settings, err := database.LoadSettings(db)
	if err != nil {
		RespondError(c, err)
		return
	}
	blocked, err := database.LoadBlocked(db)
	if err != nil {
		RespondError(c, err)
		return
	}
	entry, err := betcalc.ComputeEntry(req.toEntry(), settings, blocked)
	if err != nil {
		RespondError(c, err)
		return
	}
	metrics.RecordEntryComputed(string(entry.Category))

	existing, err := services.TicketsForKey(db, period, "")
	if err != nil {
		RespondError(c, err)
		return
	}
	var warning *betcalc.CeilingViolation
	if ws := ceilingWarnings(existing, []models.Entry{entry}, settings); len(ws) > 0 {
		warning = &ws[0]
	}

	c.JSON(http.StatusOK, gin.H{
		"status":          "success",
		"draw_period":     period,
		"entry":           entry,
		"combo_count":     len(entry.Expanded),
		"expected_payout": betcalc.EntryExpectedPayout(entry),
		"ceiling_warning": warning,
	})
}
