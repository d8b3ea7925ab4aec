package models

import "time"

// ตาราง Settlements
type Settlement struct {
	SettlementID   uint      `json:"settlement_id"   gorm:"column:settlement_id;primaryKey;autoIncrement"`
	DrawPeriod     string    `json:"draw_period"     gorm:"column:draw_period;type:char(10);not null;uniqueIndex"`
	TicketCount    int       `json:"ticket_count"    gorm:"column:ticket_count;not null;default:0"`
	Gross          Money     `json:"gross"           gorm:"column:gross;type:decimal(16,2);not null;default:0"`
	ExpectedPayout Money     `json:"expected_payout" gorm:"column:expected_payout;type:decimal(18,2);not null;default:0"`
	ActualPayout   Money     `json:"actual_payout"   gorm:"column:actual_payout;type:decimal(18,2);not null;default:0"`
	Profit         Money     `json:"profit"          gorm:"column:profit;type:decimal(18,2);not null;default:0"`
	ArchiveKey     string    `json:"archive_key"     gorm:"column:archive_key;type:varchar(255)"`
	SettledAt      time.Time `json:"settled_at"      gorm:"column:settled_at;not null"`
}

func (Settlement) TableName() string { return "settlements" }
