package database

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/Fouxth/Bookielocal/models"
)

// Migrate creates or alters every table used by the ledger.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Agent{},
		&models.Ticket{},
		&models.Entry{},
		&models.BlockedNumber{},
		&models.Setting{},
		&models.LotteryResult{},
		&models.Settlement{},
	)
}

// DefaultSetting is seeded when the settings table is empty (อัตราจ่ายมาตรฐาน).
func DefaultSetting() models.Setting {
	rate := func(v int64) models.Money { return decimal.NewFromInt(v) }
	return models.Setting{
		Payouts: map[models.Category]models.Money{
			models.Cat3Top:  rate(800),
			models.Cat3Down: rate(150),
			models.Cat3Tod:  rate(130),
			models.Cat3Back: rate(130),
			models.Cat2Top:  rate(90),
			models.Cat2Down: rate(90),
			models.Cat2Tod:  rate(90),
			models.Cat2Back: rate(90),
		},
		Ceilings: models.Ceilings{
			PerComboMax:  rate(10000),
			PerNumberMax: rate(20000),
		},
		RiskyThreshold: rate(5000),
	}
}

// EnsureSettings inserts DefaultSetting when no settings row exists yet.
func EnsureSettings(db *gorm.DB) error {
	var s models.Setting
	err := db.Order("setting_id ASC").First(&s).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("load settings: %w", err)
	}
	s = DefaultSetting()
	if err := db.Create(&s).Error; err != nil {
		return fmt.Errorf("seed settings: %w", err)
	}
	logrus.Info("✅ seeded default settings")
	return nil
}

// LoadSettings returns the single settings row. Every computation calls this again; the
// value is never cached.
func LoadSettings(db *gorm.DB) (models.Setting, error) {
	var s models.Setting
	if err := db.Order("setting_id ASC").First(&s).Error; err != nil {
		return models.Setting{}, fmt.Errorf("load settings: %w", err)
	}
	return s, nil
}

// LoadBlocked returns every blocked number; disabled ones are filtered by the calculator.
func LoadBlocked(db *gorm.DB) ([]models.BlockedNumber, error) {
	var blocked []models.BlockedNumber
	if err := db.Order("blocked_id ASC").Find(&blocked).Error; err != nil {
		return nil, fmt.Errorf("load blocked numbers: %w", err)
	}
	return blocked, nil
}
