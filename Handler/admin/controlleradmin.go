package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	base "github.com/Fouxth/Bookielocal/Handler"
	"github.com/Fouxth/Bookielocal/betcalc"
)

// PurgeDeletedTickets ลบบิลที่ถูก soft delete ออกจริง (พร้อมรายการเลข) ก่อนวันที่กำหนด
/*
POST /admin/purge-deleted
Body:

	{ "before": "2024-03-01" }
*/
func PurgeDeletedTickets(c *gin.Context, d *base.Deps) {
	var requestBody struct {
		Before string `json:"before" binding:"required"`
	}
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		base.Fail(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if _, err := betcalc.PeriodFor(requestBody.Before); err != nil {
		base.Fail(c, http.StatusBadRequest, "before must be YYYY-MM-DD")
		return
	}

	log := logrus.WithField("before", requestBody.Before)
	log.Warn("⚠️ purging deleted tickets, starting transaction")

	// เริ่ม Transaction
	tx := d.DB.Begin()
	if tx.Error != nil {
		log.WithError(tx.Error).Error("begin transaction failed")
		base.Fail(c, http.StatusInternalServerError, "Could not start database transaction")
		return
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	// ลบ detail ก่อน master
	stale := tx.Table("tickets").Select("id").Where("deleted = ? AND date < ?", true, requestBody.Before)
	res := tx.Exec("DELETE FROM entries WHERE ticket_id IN (?)", stale)
	if res.Error != nil {
		log.WithError(res.Error).Error("clearing entries failed")
		tx.Rollback()
		base.Fail(c, http.StatusInternalServerError, "Failed to clear data from table: entries")
		return
	}
	entries := res.RowsAffected

	res = tx.Exec("DELETE FROM tickets WHERE deleted = ? AND date < ?", true, requestBody.Before)
	if res.Error != nil {
		log.WithError(res.Error).Error("clearing tickets failed")
		tx.Rollback()
		base.Fail(c, http.StatusInternalServerError, "Failed to clear data from table: tickets")
		return
	}
	tickets := res.RowsAffected

	if err := tx.Commit().Error; err != nil {
		log.WithError(err).Error("commit failed")
		base.Fail(c, http.StatusInternalServerError, "Could not commit transaction")
		return
	}
	d.Invalidate(c.Request.Context())

	log.WithFields(logrus.Fields{"tickets": tickets, "entries": entries}).Info("✅ deleted tickets purged")
	c.JSON(http.StatusOK, gin.H{
		"status":         "success",
		"tickets_purged": tickets,
		"entries_purged": entries,
	})
}
