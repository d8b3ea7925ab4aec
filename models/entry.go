package models

import "github.com/shopspring/decimal"

// Money is the monetary type used across the ledger.
type Money = decimal.Decimal

// ตาราง Entries
// expanded, per_combo_totals และ total คำนวณใหม่ทุกครั้ง
type Entry struct {
	ID        string   `json:"id"         gorm:"column:id;primaryKey;type:varchar(36)"`
	TicketID  string   `json:"ticket_id"  gorm:"column:ticket_id;type:varchar(36);not null;index"`
	Seq       int      `json:"seq"        gorm:"column:seq;not null;default:0"`
	Category  Category `json:"category"   gorm:"column:category;type:varchar(8);not null"`
	Raw       string   `json:"raw"        gorm:"column:raw;type:varchar(3);not null"`
	UnitPrice Money    `json:"unit_price" gorm:"column:unit_price;type:decimal(12,2);not null"`
	Quantity  int      `json:"quantity"   gorm:"column:quantity;not null;default:1"`

	// derived
	Expanded       []string        `json:"expanded"         gorm:"column:expanded;type:json;serializer:json"`
	PerComboTotals []PerComboTotal `json:"per_combo_totals" gorm:"column:per_combo_totals;type:json;serializer:json"`
	Total          Money           `json:"total"            gorm:"column:total;type:decimal(14,2);not null;default:0"`
}

func (Entry) TableName() string { return "entries" }

// PerComboTotal is the exposure of one concrete combo of an entry.
// SoldAmount is always the full stake: each combo is an independent winning outcome.
type PerComboTotal struct {
	Combo      string `json:"combo"`
	UnitPrice  Money  `json:"unit_price"`
	Quantity   int    `json:"quantity"`
	SoldAmount Money  `json:"sold_amount"`
	PayoutRate Money  `json:"payout_rate"`
}

// Stake returns unitPrice × quantity.
func (e Entry) Stake() Money {
	return e.UnitPrice.Mul(decimal.NewFromInt(int64(e.Quantity)))
}
