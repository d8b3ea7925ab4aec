package models

import "time"

// ตาราง Settings (มีแถวเดียว)
type Setting struct {
	SettingID      uint               `json:"-"               gorm:"column:setting_id;primaryKey;autoIncrement"`
	Payouts        map[Category]Money `json:"payouts"         gorm:"column:payouts;type:json;serializer:json;not null"`
	Ceilings       Ceilings           `json:"ceilings"        gorm:"embedded"`
	RiskyThreshold Money              `json:"risky_threshold" gorm:"column:risky_threshold;type:decimal(14,2);not null;default:0"`
	UpdatedAt      time.Time          `json:"updated_at"      gorm:"column:updated_at;autoUpdateTime"`
}

type Ceilings struct {
	PerComboMax  Money `json:"per_combo_max"  gorm:"column:per_combo_max;type:decimal(14,2);not null;default:0"`
	PerNumberMax Money `json:"per_number_max" gorm:"column:per_number_max;type:decimal(14,2);not null;default:0"`
}

func (Setting) TableName() string { return "settings" }

// PayoutFor returns the default payout rate of a category.
func (s Setting) PayoutFor(c Category) (Money, bool) {
	rate, ok := s.Payouts[c]
	return rate, ok
}
