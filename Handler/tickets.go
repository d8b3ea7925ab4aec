package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Fouxth/Bookielocal/betcalc"
	"github.com/Fouxth/Bookielocal/database"
	"github.com/Fouxth/Bookielocal/models"
	"github.com/Fouxth/Bookielocal/services"
)

type TicketRequest struct {
	AgentID uint         `json:"agent_id" binding:"required"`
	Date    string       `json:"date"     binding:"required"`
	Round   string       `json:"round"`
	Note    string       `json:"note"`
	Entries []EntryInput `json:"entries"  binding:"required,min=1,dive"`
}

var (
	errAgentNotFound   = errors.New("agent not found or inactive")
	errCeilingExceeded = errors.New("entries exceed the per-combo ceiling")
	errTicketDeleted   = errors.New("ticket is deleted, restore it first")
	errInvalidDate     = errors.New("date must be YYYY-MM-DD")
)

// buildTicket validates the request and prices its entries inside tx. The ticket with the
// given id is left out of the ceiling check so an edit is not counted twice.
func buildTicket(tx *gorm.DB, req TicketRequest, id string, strict bool) (models.Ticket, []betcalc.CeilingViolation, error) {
	period, err := betcalc.PeriodFor(req.Date)
	if err != nil {
		return models.Ticket{}, nil, fmt.Errorf("%w (got %q)", errInvalidDate, req.Date)
	}

	// ตรวจว่ามีเจ้ามือย่อยนี้จริง
	var agent models.Agent
	if err := tx.First(&agent, "agent_id = ?", req.AgentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Ticket{}, nil, errAgentNotFound
		}
		return models.Ticket{}, nil, err
	}
	if !agent.Active {
		return models.Ticket{}, nil, errAgentNotFound
	}

	settings, err := database.LoadSettings(tx)
	if err != nil {
		return models.Ticket{}, nil, err
	}
	blocked, err := database.LoadBlocked(tx)
	if err != nil {
		return models.Ticket{}, nil, err
	}
	entries, err := computeEntries(req.Entries, settings, blocked)
	if err != nil {
		return models.Ticket{}, nil, err
	}

	existing, err := services.TicketsForKey(tx, period, "")
	if err != nil {
		return models.Ticket{}, nil, err
	}
	others := existing[:0]
	for _, t := range existing {
		if t.ID != id {
			others = append(others, t)
		}
	}
	warnings := ceilingWarnings(others, entries, settings)
	if strict && len(warnings) > 0 {
		return models.Ticket{}, warnings, errCeilingExceeded
	}

	for i := range entries {
		entries[i].TicketID = id
	}
	t := models.Ticket{
		ID:         id,
		AgentID:    req.AgentID,
		Date:       req.Date,
		Round:      req.Round,
		DrawPeriod: period,
		Note:       req.Note,
		Entries:    entries,
	}
	t.BillTotal = betcalc.TicketTotal(t)
	return t, warnings, nil
}

func respondTicketError(c *gin.Context, err error, warnings []betcalc.CeilingViolation) {
	switch {
	case errors.Is(err, errAgentNotFound):
		Fail(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, errCeilingExceeded):
		c.JSON(http.StatusConflict, gin.H{"status": "error", "message": err.Error(), "warnings": warnings})
	case errors.Is(err, errTicketDeleted):
		Fail(c, http.StatusConflict, err.Error())
	case errors.Is(err, errInvalidDate):
		Fail(c, http.StatusBadRequest, err.Error())
	default:
		RespondError(c, err)
	}
}

// ---------- บันทึกบิลใหม่ (INSERT ทั้งบิล) ----------
/*
POST /tickets?strict_ceiling=true
Body:

	{
	  "agent_id": 1,
	  "date": "2024-03-10",
	  "round": "evening",
	  "entries": [
	    {"category": "3top", "raw": "123", "unit_price": "10", "quantity": 2},
	    {"category": "2tod", "raw": "45", "unit_price": "5"}
	  ]
	}
*/
func CreateTicket(c *gin.Context, d *Deps) {
	var req TicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, http.StatusBadRequest, "invalid request")
		return
	}
	strict, _ := strconv.ParseBool(c.Query("strict_ceiling"))

	var (
		ticket   models.Ticket
		warnings []betcalc.CeilingViolation
	)
	// ---------- เริ่ม Transaction ----------
	err := d.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		ticket, warnings, err = buildTicket(tx, req, uuid.NewString(), strict)
		if err != nil {
			return err
		}
		return tx.Create(&ticket).Error
	})
	if err != nil {
		respondTicketError(c, err, warnings)
		return
	}
	d.Invalidate(c.Request.Context())

	logrus.WithFields(logrus.Fields{
		"ticket_id":  ticket.ID,
		"agent_id":   ticket.AgentID,
		"bill_total": ticket.BillTotal.String(),
		"warnings":   len(warnings),
	}).Info("ticket created")
	c.JSON(http.StatusCreated, gin.H{"status": "success", "ticket": ticket, "warnings": warnings})
}

// ---------- แก้ไขบิล (แทนที่รายการทั้งหมด + คำนวณใหม่) ----------
func UpdateTicket(c *gin.Context, d *Deps) {
	id := c.Param("id")
	var req TicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, http.StatusBadRequest, "invalid request")
		return
	}
	strict, _ := strconv.ParseBool(c.Query("strict_ceiling"))

	var (
		ticket   models.Ticket
		warnings []betcalc.CeilingViolation
	)
	err := d.DB.Transaction(func(tx *gorm.DB) error {
		// ล็อกบิลไว้ก่อน กันชนกับการคำนวณใหม่ทั้งระบบ
		var current models.Ticket
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&current, "id = ?", id).Error; err != nil {
			return err
		}
		if current.Deleted {
			return errTicketDeleted
		}

		var err error
		ticket, warnings, err = buildTicket(tx, req, id, strict)
		if err != nil {
			return err
		}
		ticket.CreatedAt = current.CreatedAt

		if err := tx.Where("ticket_id = ?", id).Delete(&models.Entry{}).Error; err != nil {
			return err
		}
		header := ticket
		header.Entries = nil
		err = tx.Model(&header).
			Select("agent_id", "date", "round", "draw_period", "note", "bill_total", "modified_at").
			Updates(&header).Error
		if err != nil {
			return err
		}
		return tx.Create(&ticket.Entries).Error
	})
	if err != nil {
		respondTicketError(c, err, warnings)
		return
	}
	d.Invalidate(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"status": "success", "ticket": ticket, "warnings": warnings})
}

// ---------- ดูบิล ----------
func GetTicket(c *gin.Context, db *gorm.DB) {
	var t models.Ticket
	if err := services.WithEntries(db).First(&t, "id = ?", c.Param("id")).Error; err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "ticket": t})
}

/*
GET /tickets?date=2024-03-10&period=2024-03-16&round=evening&agent_id=1&include_deleted=true
*/
func ListTickets(c *gin.Context, db *gorm.DB) {
	q := services.WithEntries(db)
	if date := c.Query("date"); date != "" {
		q = q.Where("date = ?", date)
	}
	if period := c.Query("period"); period != "" {
		if !betcalc.IsPeriodAnchor(period) {
			RespondError(c, services.ErrInvalidPeriod)
			return
		}
		q = q.Where("draw_period = ?", period)
	}
	if round := c.Query("round"); round != "" {
		q = q.Where("round = ?", round)
	}
	if agent := c.Query("agent_id"); agent != "" {
		agentID, err := strconv.ParseUint(agent, 10, 64)
		if err != nil {
			Fail(c, http.StatusBadRequest, "invalid agent_id")
			return
		}
		q = q.Where("agent_id = ?", agentID)
	}
	if inc, _ := strconv.ParseBool(c.Query("include_deleted")); !inc {
		q = q.Where("deleted = ?", false)
	}

	tickets := make([]models.Ticket, 0)
	if err := q.Order("created_at DESC").Find(&tickets).Error; err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "count": len(tickets), "tickets": tickets})
}

// ---------- ลบบิล (soft delete) / กู้คืน ----------
func DeleteTicket(c *gin.Context, d *Deps) {
	setDeleted(c, d, true)
}

func RestoreTicket(c *gin.Context, d *Deps) {
	setDeleted(c, d, false)
}

func setDeleted(c *gin.Context, d *Deps, deleted bool) {
	var t models.Ticket
	if err := d.DB.First(&t, "id = ?", c.Param("id")).Error; err != nil {
		RespondError(c, err)
		return
	}
	if err := d.DB.Model(&t).Update("deleted", deleted).Error; err != nil {
		RespondError(c, err)
		return
	}
	d.Invalidate(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"status": "success", "id": t.ID, "deleted": deleted})
}
