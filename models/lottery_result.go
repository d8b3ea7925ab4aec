package models

import "time"

// ตาราง Lottery results
type LotteryResult struct {
	ResultID   uint      `json:"result_id"   gorm:"column:result_id;primaryKey;autoIncrement"`
	DrawPeriod string    `json:"draw_period" gorm:"column:draw_period;type:char(10);not null;uniqueIndex"`
	FirstPrize string    `json:"first_prize" gorm:"column:first_prize;type:char(6);not null"`
	ThreeTop   string    `json:"three_top"   gorm:"column:three_top;type:char(3)"`
	ThreeDown  string    `json:"three_down"  gorm:"column:three_down;type:char(3)"`
	TwoDown    string    `json:"two_down"    gorm:"column:two_down;type:char(2)"`
	ThreeTod1  string    `json:"three_tod1"  gorm:"column:three_tod1;type:char(3)"`
	ThreeTod2  string    `json:"three_tod2"  gorm:"column:three_tod2;type:char(3)"`
	ThreeTod3  string    `json:"three_tod3"  gorm:"column:three_tod3;type:char(3)"`
	ThreeTod4  string    `json:"three_tod4"  gorm:"column:three_tod4;type:char(3)"`
	CreatedAt  time.Time `json:"created_at"  gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time `json:"updated_at"  gorm:"column:updated_at;autoUpdateTime"`
}

func (LotteryResult) TableName() string { return "lottery_results" }

// EffectiveThreeTop is ThreeTop, or the last 3 digits of FirstPrize when not given separately.
func (r LotteryResult) EffectiveThreeTop() string {
	if r.ThreeTop != "" {
		return r.ThreeTop
	}
	if len(r.FirstPrize) >= 3 {
		return r.FirstPrize[len(r.FirstPrize)-3:]
	}
	return ""
}

// EffectiveTwoTop is the last 2 digits of the 3-top number.
func (r LotteryResult) EffectiveTwoTop() string {
	top := r.EffectiveThreeTop()
	if len(top) >= 2 {
		return top[len(top)-2:]
	}
	return ""
}
