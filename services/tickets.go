package services

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/Fouxth/Bookielocal/betcalc"
	"github.com/Fouxth/Bookielocal/models"
)

// WithEntries preloads a ticket's entries in entry order.
func WithEntries(db *gorm.DB) *gorm.DB {
	return db.Preload("Entries", func(db *gorm.DB) *gorm.DB {
		return db.Order("seq ASC")
	})
}

// TicketsForKey loads the live tickets behind a summary key. A draw period anchor selects
// the whole period; any other value is treated as an exact date. An empty round means all rounds.
func TicketsForKey(db *gorm.DB, key, round string) ([]models.Ticket, error) {
	q := WithEntries(db).Where("deleted = ?", false)
	if betcalc.IsPeriodAnchor(key) {
		q = q.Where("draw_period = ?", key)
	} else {
		q = q.Where("date = ?", key)
	}
	if round != "" {
		q = q.Where("round = ?", round)
	}

	var tickets []models.Ticket
	if err := q.Order("created_at ASC").Find(&tickets).Error; err != nil {
		return nil, fmt.Errorf("load tickets for %s: %w", key, err)
	}
	return tickets, nil
}

func LoadAgents(db *gorm.DB) ([]models.Agent, error) {
	var agents []models.Agent
	if err := db.Order("agent_id ASC").Find(&agents).Error; err != nil {
		return nil, fmt.Errorf("load agents: %w", err)
	}
	return agents, nil
}
