package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Fouxth/Bookielocal/betcalc"
	"github.com/Fouxth/Bookielocal/models"
	"github.com/Fouxth/Bookielocal/services"
)

type ResultRequest struct {
	DrawPeriod string `json:"draw_period" binding:"required"`
	FirstPrize string `json:"first_prize" binding:"required,len=6,number"`
	ThreeTop   string `json:"three_top"   binding:"omitempty,len=3,number"`
	ThreeDown  string `json:"three_down"  binding:"omitempty,len=3,number"`
	TwoDown    string `json:"two_down"    binding:"omitempty,len=2,number"`
	ThreeTod1  string `json:"three_tod1"  binding:"omitempty,len=3,number"`
	ThreeTod2  string `json:"three_tod2"  binding:"omitempty,len=3,number"`
	ThreeTod3  string `json:"three_tod3"  binding:"omitempty,len=3,number"`
	ThreeTod4  string `json:"three_tod4"  binding:"omitempty,len=3,number"`
}

// ---------- ประกาศผล / แก้ผล (upsert ตามงวด) แล้วปิดยอดงวด ----------
/*
POST /results
Body:

	{
	  "draw_period": "2024-03-16",
	  "first_prize": "456123",
	  "two_down": "45",
	  "three_tod3": "321",
	  "three_tod4": "789"
	}
*/
func PostResult(c *gin.Context, d *Deps) {
	var req ResultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, http.StatusBadRequest, "invalid request")
		return
	}
	if !betcalc.IsPeriodAnchor(req.DrawPeriod) {
		RespondError(c, services.ErrInvalidPeriod)
		return
	}

	result := models.LotteryResult{
		DrawPeriod: req.DrawPeriod,
		FirstPrize: req.FirstPrize,
		ThreeTop:   req.ThreeTop,
		ThreeDown:  req.ThreeDown,
		TwoDown:    req.TwoDown,
		ThreeTod1:  req.ThreeTod1,
		ThreeTod2:  req.ThreeTod2,
		ThreeTod3:  req.ThreeTod3,
		ThreeTod4:  req.ThreeTod4,
	}
	err := d.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "draw_period"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"first_prize", "three_top", "three_down", "two_down",
			"three_tod1", "three_tod2", "three_tod3", "three_tod4", "updated_at",
		}),
	}).Create(&result).Error
	if err != nil {
		RespondError(c, err)
		return
	}
	d.Invalidate(c.Request.Context())

	resp := gin.H{"status": "success", "result": result}
	st, err := services.Settle(c.Request.Context(), d.DB, req.DrawPeriod, d.Archiver)
	if err != nil {
		// ผลบันทึกแล้ว รอบ cron จะปิดยอดให้ใหม่
		logrus.WithError(err).WithField("period", req.DrawPeriod).Warn("settle after result failed")
		resp["settlement_error"] = err.Error()
	} else {
		resp["settlement"] = st
	}
	c.JSON(http.StatusCreated, resp)
}

func GetResult(c *gin.Context, db *gorm.DB) {
	result, err := services.FindResult(db, c.Param("period"))
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"result":  result,
		"two_top": result.EffectiveTwoTop(),
		"winning": betcalc.WinningCombos(result),
	})
}

// GET /results/:period/payout ยอดจ่ายจริงของงวด
func GetResultPayout(c *gin.Context, db *gorm.DB) {
	period := c.Param("period")
	if !betcalc.IsPeriodAnchor(period) {
		RespondError(c, services.ErrInvalidPeriod)
		return
	}
	result, err := services.FindResult(db, period)
	if err != nil {
		RespondError(c, err)
		return
	}
	tickets, err := services.TicketsForKey(db, period, "")
	if err != nil {
		RespondError(c, err)
		return
	}

	type winner struct {
		TicketID string          `json:"ticket_id"`
		AgentID  uint            `json:"agent_id"`
		Category models.Category `json:"category"`
		Raw      string          `json:"raw"`
		Payout   models.Money    `json:"payout"`
	}
	winners := make([]winner, 0)
	for _, t := range tickets {
		for _, e := range t.Entries {
			if p := betcalc.EntryActualPayout(e, result); p.IsPositive() {
				winners = append(winners, winner{TicketID: t.ID, AgentID: t.AgentID, Category: e.Category, Raw: e.Raw, Payout: p})
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":        "success",
		"draw_period":   period,
		"actual_payout": betcalc.ComputeActualPayout(tickets, result),
		"winners":       winners,
	})
}
