package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	base "github.com/Fouxth/Bookielocal/Handler"
	"github.com/Fouxth/Bookielocal/database"
	"github.com/Fouxth/Bookielocal/models"
	"github.com/Fouxth/Bookielocal/services"
)

type SettingsRequest struct {
	Payouts        map[models.Category]decimal.Decimal `json:"payouts"         binding:"required"`
	PerComboMax    decimal.Decimal                     `json:"per_combo_max"`
	PerNumberMax   decimal.Decimal                     `json:"per_number_max"`
	RiskyThreshold decimal.Decimal                     `json:"risky_threshold"`
}

func (r SettingsRequest) validate() error {
	for _, cat := range models.Categories {
		rate, ok := r.Payouts[cat]
		if !ok {
			return fmt.Errorf("payout rate for %s is required", cat)
		}
		if rate.IsNegative() {
			return fmt.Errorf("payout rate for %s must not be negative", cat)
		}
	}
	for cat := range r.Payouts {
		if !cat.Valid() {
			return fmt.Errorf("unknown category %q", cat)
		}
	}
	if r.PerComboMax.IsNegative() || r.PerNumberMax.IsNegative() || r.RiskyThreshold.IsNegative() {
		return fmt.Errorf("ceilings and risky threshold must not be negative")
	}
	return nil
}

// GET /admin/settings
func GetSettings(c *gin.Context, db *gorm.DB) {
	s, err := database.LoadSettings(db)
	if err != nil {
		base.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "settings": s})
}

// ---------- แก้อัตราจ่าย / เพดาน แล้วคำนวณบิลทั้งหมดใหม่ ----------
/*
PUT /admin/settings
Body:

	{
	  "payouts": {"3top": "800", "3down": "150", "3tod": "130", "3back": "130",
	              "2top": "90", "2down": "90", "2tod": "90", "2back": "90"},
	  "per_combo_max": "10000",
	  "per_number_max": "20000",
	  "risky_threshold": "5000"
	}
*/
func UpdateSettings(c *gin.Context, d *base.Deps) {
	var req SettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		base.Fail(c, http.StatusBadRequest, "invalid request")
		return
	}
	if err := req.validate(); err != nil {
		base.Fail(c, http.StatusBadRequest, err.Error())
		return
	}

	s, err := database.LoadSettings(d.DB)
	if err != nil {
		base.RespondError(c, err)
		return
	}
	s.Payouts = req.Payouts
	s.Ceilings = models.Ceilings{PerComboMax: req.PerComboMax, PerNumberMax: req.PerNumberMax}
	s.RiskyThreshold = req.RiskyThreshold
	if err := d.DB.Save(&s).Error; err != nil {
		base.RespondError(c, err)
		return
	}
	logrus.Info("settings updated, recomputing tickets")

	recomputeAndRespond(c, d, gin.H{"settings": s})
}

// recomputeAndRespond re-prices every ticket after a settings or blocked-number change
// and adds the outcome to resp.
func recomputeAndRespond(c *gin.Context, d *base.Deps, resp gin.H) {
	ctx := c.Request.Context()
	res, err := services.RecomputeAll(ctx, d.DB, d.RecomputeWorkers)
	d.Invalidate(ctx)
	if err != nil {
		base.RespondError(c, err)
		return
	}
	resp["status"] = "success"
	resp["recompute"] = res
	c.JSON(http.StatusOK, resp)
}
