package routers

import (
	handlers "github.com/Fouxth/Bookielocal/Handler"
	admin "github.com/Fouxth/Bookielocal/Handler/admin"
	"github.com/Fouxth/Bookielocal/metrics"

	"github.com/gin-gonic/gin"
)

// SetupRouter ฟังก์ชันสำหรับตั้งค่า routes ของแอป
func SetupRouter(r *gin.Engine, d *handlers.Deps) {
	db := d.DB

	r.GET("/health", func(c *gin.Context) { handlers.Health(c, db) })
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	// คีย์เลข: ดูราคาก่อนบันทึก
	r.POST("/entries/preview", func(c *gin.Context) {
		handlers.PreviewEntry(c, db)
	})
	r.GET("/entries/search", func(c *gin.Context) {
		handlers.SearchEntriesByNumber(c, db)
	})

	// บิล
	r.POST("/tickets", func(c *gin.Context) { handlers.CreateTicket(c, d) })
	r.GET("/tickets", func(c *gin.Context) { handlers.ListTickets(c, db) })
	r.GET("/tickets/:id", func(c *gin.Context) { handlers.GetTicket(c, db) })
	r.PUT("/tickets/:id", func(c *gin.Context) { handlers.UpdateTicket(c, d) })
	r.DELETE("/tickets/:id", func(c *gin.Context) { handlers.DeleteTicket(c, d) })
	r.POST("/tickets/:id/restore", func(c *gin.Context) { handlers.RestoreTicket(c, d) })

	// รายงาน
	r.GET("/summary", func(c *gin.Context) {
		handlers.GetSummary(c, d)
	})
	r.GET("/summary/export", func(c *gin.Context) {
		handlers.ExportSummary(c, db)
	})
	r.GET("/risky", func(c *gin.Context) {
		handlers.GetRisky(c, d)
	})
	r.GET("/number-totals", func(c *gin.Context) {
		handlers.GetNumberTotals(c, db)
	})
	r.GET("/period", handlers.GetPeriod)

	// ผลรางวัล
	r.POST("/results", func(c *gin.Context) { handlers.PostResult(c, d) }) // ประกาศผล + ปิดยอด
	r.GET("/results/:period", func(c *gin.Context) { handlers.GetResult(c, db) })
	r.GET("/results/:period/payout", func(c *gin.Context) { handlers.GetResultPayout(c, db) })

	// แอดมิน
	a := r.Group("/admin")
	a.GET("/settings", func(c *gin.Context) { admin.GetSettings(c, db) })
	a.PUT("/settings", func(c *gin.Context) { admin.UpdateSettings(c, d) })

	a.GET("/blocked", func(c *gin.Context) { admin.ListBlocked(c, db) })
	a.POST("/blocked", func(c *gin.Context) { admin.CreateBlocked(c, d) })
	a.PUT("/blocked/:id", func(c *gin.Context) { admin.UpdateBlocked(c, d) })
	a.DELETE("/blocked/:id", func(c *gin.Context) { admin.DeleteBlocked(c, d) })

	a.GET("/agents", func(c *gin.Context) { admin.ListAgents(c, db) })
	a.POST("/agents", func(c *gin.Context) { admin.CreateAgent(c, db) })
	a.PUT("/agents/:id", func(c *gin.Context) { admin.UpdateAgent(c, d) })

	a.POST("/recompute", func(c *gin.Context) { admin.Recompute(c, d) })
	a.POST("/settle/:period", func(c *gin.Context) { admin.SettlePeriod(c, d) })
	a.GET("/settlements", func(c *gin.Context) { admin.ListSettlements(c, db) })
	a.POST("/purge-deleted", func(c *gin.Context) { admin.PurgeDeletedTickets(c, d) })
}
