package services

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{Conn: sqlDB, SkipInitializeWithVersion: true}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

const settingsPayouts = `{"3top":"800","3down":"150","3tod":"130","3back":"130","2top":"90","2down":"90","2tod":"90","2back":"90"}`

func expectSettings(mock sqlmock.Sqlmock) {
	mock.ExpectQuery("SELECT \\* FROM `settings`").WillReturnRows(
		sqlmock.NewRows([]string{"setting_id", "payouts", "per_combo_max", "per_number_max", "risky_threshold", "updated_at"}).
			AddRow(1, settingsPayouts, "1000", "500", "300", time.Now()),
	)
}

func blockedRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"blocked_id", "number", "category", "payout_override", "enabled", "note"})
}

func ticketRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "agent_id", "date", "round", "draw_period", "bill_total", "note", "deleted", "created_at", "modified_at"})
}

func entryRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "ticket_id", "seq", "category", "raw", "unit_price", "quantity", "expanded", "per_combo_totals", "total"})
}

type fakeArchiver struct {
	period string
	body   []byte
}

func (f *fakeArchiver) Archive(_ context.Context, period string, body []byte) (string, error) {
	f.period = period
	f.body = body
	return "settlements/" + period + "/summary.csv", nil
}
