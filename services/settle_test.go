package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resultRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"result_id", "draw_period", "first_prize", "three_top", "three_down", "two_down",
		"three_tod1", "three_tod2", "three_tod3", "three_tod4", "created_at", "updated_at"})
}

func TestSettle_InvalidPeriod(t *testing.T) {
	db, _ := newMockDB(t)
	_, err := Settle(context.Background(), db, "2024-03-10", nil)
	assert.ErrorIs(t, err, ErrInvalidPeriod)
}

func TestSettle_NoResult(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery("SELECT \\* FROM `lottery_results` WHERE draw_period = \\?").WillReturnRows(resultRows())

	_, err := Settle(context.Background(), db, "2024-03-16", nil)
	assert.True(t, errors.Is(err, ErrNoResult))
}

func TestSettle(t *testing.T) {
	db, mock := newMockDB(t)
	now := time.Now()

	mock.ExpectQuery("SELECT \\* FROM `lottery_results`").WillReturnRows(resultRows().
		AddRow(1, "2024-03-16", "456123", "", "", "45", "", "", "", "", now, now))
	expectSettings(mock)
	mock.ExpectQuery("SELECT \\* FROM `agents`").WillReturnRows(
		sqlmock.NewRows([]string{"agent_id", "name", "phone", "active", "created_at"}).AddRow(7, "Somchai", "", true, now))
	mock.ExpectQuery("SELECT \\* FROM `tickets` WHERE deleted = \\? AND draw_period = \\?").
		WithArgs(false, "2024-03-16").
		WillReturnRows(ticketRows().AddRow("t1", 7, "2024-03-10", "", "2024-03-16", "10", "", false, now, now))
	mock.ExpectQuery("SELECT \\* FROM `entries`").WillReturnRows(entryRows().
		AddRow("e1", "t1", 1, "3top", "123", "10", 1, `["123"]`,
			`[{"combo":"123","unit_price":"10","quantity":1,"sold_amount":"10","payout_rate":"800"}]`, "10"))
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `settlements`.*ON DUPLICATE KEY UPDATE").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	archiver := &fakeArchiver{}
	before := time.Now()
	st, err := Settle(context.Background(), db, "2024-03-16", archiver)
	require.NoError(t, err)
	assert.False(t, st.SettledAt.Before(before))

	assert.Equal(t, 1, st.TicketCount)
	assert.True(t, st.Gross.Equal(decimal.NewFromInt(10)))
	assert.True(t, st.ExpectedPayout.Equal(decimal.NewFromInt(8000)))
	assert.True(t, st.ActualPayout.Equal(decimal.NewFromInt(8000)))
	assert.True(t, st.Profit.Equal(decimal.NewFromInt(-7990)))
	assert.Equal(t, "settlements/2024-03-16/summary.csv", st.ArchiveKey)
	assert.Equal(t, "2024-03-16", archiver.period)
	assert.True(t, strings.Contains(string(archiver.body), "Somchai"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPendingPeriods(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery("FROM lottery_results AS r LEFT JOIN settlements AS s ON s.draw_period = r.draw_period " +
		"WHERE .*r.updated_at > s.settled_at " +
		"OR EXISTS \\(SELECT 1 FROM tickets AS t WHERE .*t.modified_at > s.settled_at").
		WillReturnRows(sqlmock.NewRows([]string{"draw_period"}).AddRow("2024-03-01").AddRow("2024-03-16"))

	periods, err := PendingPeriods(db)
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-03-01", "2024-03-16"}, periods)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTicketsForKey_DateVsPeriod(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery("WHERE deleted = \\? AND date = \\? AND round = \\?").
		WithArgs(false, "2024-03-10", "evening").
		WillReturnRows(ticketRows())
	mock.ExpectQuery("WHERE deleted = \\? AND draw_period = \\?").
		WithArgs(false, "2024-03-01").
		WillReturnRows(ticketRows())

	_, err := TicketsForKey(db, "2024-03-10", "evening")
	require.NoError(t, err)
	_, err = TicketsForKey(db, "2024-03-01", "")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduler_StartStop(t *testing.T) {
	s := NewScheduler(nil, nil)
	assert.Error(t, s.Start("not a spec"))

	s = NewScheduler(nil, nil)
	require.NoError(t, s.Start("@every 1h"))
	s.Stop()
}
