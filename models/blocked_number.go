package models

// ตาราง Blocked numbers (เลขอั้น)
// อัตราจ่ายพิเศษต่อ (ประเภท, เลข)
type BlockedNumber struct {
	BlockedID      uint     `json:"blocked_id"      gorm:"column:blocked_id;primaryKey;autoIncrement"`
	Number         string   `json:"number"          gorm:"column:number;type:varchar(3);not null;index:idx_blocked_cat_number,priority:2"`
	Category       Category `json:"category"        gorm:"column:category;type:varchar(8);not null;index:idx_blocked_cat_number,priority:1"`
	PayoutOverride Money    `json:"payout_override" gorm:"column:payout_override;type:decimal(12,2);not null"`
	Enabled        bool     `json:"enabled"         gorm:"column:enabled;not null;default:true"`
	Note           string   `json:"note"            gorm:"column:note;type:varchar(255)"`
}

func (BlockedNumber) TableName() string { return "blocked_numbers" }
