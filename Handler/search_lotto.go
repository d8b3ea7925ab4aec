package handlers

import (
	"net/http"
	"regexp"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Fouxth/Bookielocal/betcalc"
	"github.com/Fouxth/Bookielocal/models"
)

var isBetDigits = regexp.MustCompile(`^\d{1,3}$`).MatchString

// EntryHit is one entry whose raw number matched a search, with its ticket context.
type EntryHit struct {
	TicketID string          `json:"ticket_id"`
	AgentID  uint            `json:"agent_id"`
	Date     string          `json:"date"`
	Round    string          `json:"round"`
	Category models.Category `json:"category"`
	Raw      string          `json:"raw"`
	Quantity int             `json:"quantity"`
	Total    models.Money    `json:"total"`
}

// GET /entries/search?number=12[&category=2top][&period=2024-03-16][&limit=200]
// ค้นหาเลขที่ถูกแทง (ตรงตัวหรือมีเลขนี้อยู่) ในบิลที่ยังไม่ถูกลบ
func SearchEntriesByNumber(c *gin.Context, db *gorm.DB) {
	numberQuery := c.Query("number")
	category := c.Query("category")
	period := c.Query("period")

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "200"))
	if limit <= 0 || limit > 1000 {
		limit = 200
	}

	if !isBetDigits(numberQuery) {
		Fail(c, http.StatusBadRequest, "number ต้องเป็นตัวเลข 1-3 หลัก")
		return
	}
	if category != "" && !models.Category(category).Valid() {
		RespondError(c, betcalc.ErrUnknownCategory)
		return
	}
	if period != "" && !betcalc.IsPeriodAnchor(period) {
		Fail(c, http.StatusBadRequest, "period ต้องเป็นวันที่ 1 หรือ 16")
		return
	}

	tx := db.Table("entries AS e").
		Select("e.ticket_id, t.agent_id, t.date, t.round, e.category, e.raw, e.quantity, e.total").
		Joins("JOIN tickets AS t ON t.id = e.ticket_id").
		Where("t.deleted = ?", false).
		Where("e.raw LIKE ?", "%"+numberQuery+"%")

	// ส่ง ?category= / ?period= มาเมื่อไหร่ค่อยกรอง
	if category != "" {
		tx = tx.Where("e.category = ?", category)
	}
	if period != "" {
		tx = tx.Where("t.draw_period = ?", period)
	}

	items := make([]EntryHit, 0)
	if err := tx.Order("t.date DESC, e.seq ASC").Limit(limit).Scan(&items).Error; err != nil {
		RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"count":  len(items),
		"data":   items,
	})
}
