package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	base "github.com/Fouxth/Bookielocal/Handler"
	"github.com/Fouxth/Bookielocal/betcalc"
	"github.com/Fouxth/Bookielocal/database"
	"github.com/Fouxth/Bookielocal/models"
)

type BlockedRequest struct {
	Number         string          `json:"number"          binding:"required"`
	Category       string          `json:"category"        binding:"required"`
	PayoutOverride decimal.Decimal `json:"payout_override"`
	Enabled        *bool           `json:"enabled"`
	Note           string          `json:"note"`
}

func (r BlockedRequest) toModel() (models.BlockedNumber, error) {
	b := models.BlockedNumber{
		Number:         strings.TrimSpace(r.Number),
		Category:       models.Category(strings.TrimSpace(r.Category)),
		PayoutOverride: r.PayoutOverride,
		Enabled:        true,
		Note:           r.Note,
	}
	if r.Enabled != nil {
		b.Enabled = *r.Enabled
	}
	if err := betcalc.Validate(b.Number, b.Category); err != nil {
		return b, err
	}
	if b.PayoutOverride.IsNegative() {
		return b, betcalc.ErrInvalidAmount
	}
	return b, nil
}

// GET /admin/blocked เลขอั้นทั้งหมด
func ListBlocked(c *gin.Context, db *gorm.DB) {
	blocked, err := database.LoadBlocked(db)
	if err != nil {
		base.RespondError(c, err)
		return
	}
	if blocked == nil {
		blocked = []models.BlockedNumber{}
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "blocked": blocked})
}

/*
POST /admin/blocked
Body:

	{ "number": "123", "category": "3top", "payout_override": "400", "note": "อั้นงวดนี้" }
*/
func CreateBlocked(c *gin.Context, d *base.Deps) {
	var req BlockedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		base.Fail(c, http.StatusBadRequest, "invalid request")
		return
	}
	b, err := req.toModel()
	if err != nil {
		base.RespondError(c, err)
		return
	}
	if err := d.DB.Create(&b).Error; err != nil {
		base.RespondError(c, err)
		return
	}
	recomputeAndRespond(c, d, gin.H{"blocked": b})
}

func UpdateBlocked(c *gin.Context, d *base.Deps) {
	var current models.BlockedNumber
	if err := d.DB.First(&current, "blocked_id = ?", c.Param("id")).Error; err != nil {
		base.RespondError(c, err)
		return
	}
	var req BlockedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		base.Fail(c, http.StatusBadRequest, "invalid request")
		return
	}
	b, err := req.toModel()
	if err != nil {
		base.RespondError(c, err)
		return
	}
	b.BlockedID = current.BlockedID
	if err := d.DB.Save(&b).Error; err != nil {
		base.RespondError(c, err)
		return
	}
	recomputeAndRespond(c, d, gin.H{"blocked": b})
}

func DeleteBlocked(c *gin.Context, d *base.Deps) {
	res := d.DB.Delete(&models.BlockedNumber{}, "blocked_id = ?", c.Param("id"))
	if res.Error != nil {
		base.RespondError(c, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		base.Fail(c, http.StatusNotFound, "blocked number not found")
		return
	}
	recomputeAndRespond(c, d, gin.H{"deleted": c.Param("id")})
}
