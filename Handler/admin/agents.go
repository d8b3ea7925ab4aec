package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	base "github.com/Fouxth/Bookielocal/Handler"
	"github.com/Fouxth/Bookielocal/models"
	"github.com/Fouxth/Bookielocal/services"
)

type AgentRequest struct {
	Name   string `json:"name"   binding:"required"`
	Phone  string `json:"phone"`
	Active *bool  `json:"active"`
}

// GET /admin/agents
func ListAgents(c *gin.Context, db *gorm.DB) {
	agents, err := services.LoadAgents(db)
	if err != nil {
		base.RespondError(c, err)
		return
	}
	if agents == nil {
		agents = []models.Agent{}
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "agents": agents})
}

func CreateAgent(c *gin.Context, db *gorm.DB) {
	var req AgentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		base.Fail(c, http.StatusBadRequest, "invalid request")
		return
	}
	agent := models.Agent{Name: req.Name, Phone: req.Phone, Active: true}
	if req.Active != nil {
		agent.Active = *req.Active
	}
	if err := db.Create(&agent).Error; err != nil {
		base.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": "success", "agent": agent})
}

// PUT /admin/agents/:id เปลี่ยนชื่อ / เบอร์ / ปิดการใช้งาน
func UpdateAgent(c *gin.Context, d *base.Deps) {
	var agent models.Agent
	if err := d.DB.First(&agent, "agent_id = ?", c.Param("id")).Error; err != nil {
		base.RespondError(c, err)
		return
	}
	var req AgentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		base.Fail(c, http.StatusBadRequest, "invalid request")
		return
	}
	agent.Name = req.Name
	agent.Phone = req.Phone
	if req.Active != nil {
		agent.Active = *req.Active
	}
	if err := d.DB.Save(&agent).Error; err != nil {
		base.RespondError(c, err)
		return
	}
	// ชื่อเจ้ามือย่อยอยู่ในสรุปยอด
	d.Invalidate(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"status": "success", "agent": agent})
}
