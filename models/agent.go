package models

import "time"

// ตาราง Agents (คนเดินโพย / เจ้ามือย่อย)
type Agent struct {
	AgentID   uint      `json:"agent_id"   gorm:"column:agent_id;primaryKey;autoIncrement"`
	Name      string    `json:"name"       gorm:"column:name;type:varchar(255);not null"`
	Phone     string    `json:"phone"      gorm:"column:phone;type:varchar(32)"`
	Active    bool      `json:"active"     gorm:"column:active;not null;default:true"`
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at;autoCreateTime"`
}

func (Agent) TableName() string { return "agents" }
