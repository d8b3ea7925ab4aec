package models

import "time"

// ตาราง Tickets (บิล)
type Ticket struct {
	ID         string    `json:"id"          gorm:"column:id;primaryKey;type:varchar(36)"`
	AgentID    uint      `json:"agent_id"    gorm:"column:agent_id;not null;index:idx_tickets_agent"`
	Date       string    `json:"date"        gorm:"column:date;type:char(10);not null;index:idx_tickets_date_round,priority:1"`
	Round      string    `json:"round"       gorm:"column:round;type:varchar(16);not null;default:'';index:idx_tickets_date_round,priority:2"`
	DrawPeriod string    `json:"draw_period" gorm:"column:draw_period;type:char(10);not null;index"`
	BillTotal  Money     `json:"bill_total"  gorm:"column:bill_total;type:decimal(14,2);not null;default:0"`
	Note       string    `json:"note"        gorm:"column:note;type:varchar(255)"`
	Deleted    bool      `json:"deleted"     gorm:"column:deleted;not null;default:false;index"`
	CreatedAt  time.Time `json:"created_at"  gorm:"column:created_at;autoCreateTime"`
	ModifiedAt time.Time `json:"modified_at" gorm:"column:modified_at;autoUpdateTime"`

	// relations
	Entries []Entry `json:"entries" gorm:"foreignKey:TicketID;references:ID;constraint:OnUpdate:RESTRICT,OnDelete:CASCADE"`
	Agent   *Agent  `json:"-"       gorm:"foreignKey:AgentID;references:AgentID;constraint:OnUpdate:RESTRICT,OnDelete:RESTRICT"`
}

func (Ticket) TableName() string { return "tickets" }
