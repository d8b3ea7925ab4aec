package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	base "github.com/Fouxth/Bookielocal/Handler"
	"github.com/Fouxth/Bookielocal/models"
	"github.com/Fouxth/Bookielocal/services"
)

// POST /admin/recompute คำนวณบิลทั้งหมดใหม่ตามค่าปัจจุบัน
func Recompute(c *gin.Context, d *base.Deps) {
	recomputeAndRespond(c, d, gin.H{})
}

// POST /admin/settle/:period ปิดยอดงวดทันที (ไม่ต้องรอ cron)
func SettlePeriod(c *gin.Context, d *base.Deps) {
	st, err := services.Settle(c.Request.Context(), d.DB, c.Param("period"), d.Archiver)
	if err != nil {
		base.RespondError(c, err)
		return
	}
	d.Invalidate(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"status": "success", "settlement": st})
}

// GET /admin/settlements
func ListSettlements(c *gin.Context, db *gorm.DB) {
	settlements := make([]models.Settlement, 0)
	if err := db.Order("draw_period DESC").Find(&settlements).Error; err != nil {
		base.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "settlements": settlements})
}
