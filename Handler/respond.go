package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/Fouxth/Bookielocal/betcalc"
	"github.com/Fouxth/Bookielocal/cache"
	"github.com/Fouxth/Bookielocal/metrics"
	"github.com/Fouxth/Bookielocal/report"
	"github.com/Fouxth/Bookielocal/services"
)

// Deps carries what the write and reporting handlers need besides the database.
// Cache and Archiver are optional.
type Deps struct {
	DB               *gorm.DB
	Cache            *cache.SummaryCache
	Archiver         report.Archiver
	RecomputeWorkers int
}

// Invalidate drops every cached summary after a write.
func (d *Deps) Invalidate(ctx context.Context) {
	d.Cache.Invalidate(ctx)
}

func Fail(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"status": "error", "message": message})
}

// RespondError maps an error from the calculator or the services onto the response envelope.
func RespondError(c *gin.Context, err error) {
	var cfgErr *betcalc.ConfigError
	switch {
	case betcalc.IsValidation(err):
		metrics.RecordValidationError(ValidationKind(err))
		Fail(c, http.StatusBadRequest, err.Error())
	case errors.As(err, &cfgErr):
		logrus.WithError(err).Error("settings incomplete")
		Fail(c, http.StatusInternalServerError, err.Error())
	case errors.Is(err, gorm.ErrRecordNotFound), errors.Is(err, services.ErrNoResult):
		Fail(c, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrInvalidPeriod):
		Fail(c, http.StatusBadRequest, err.Error())
	default:
		logrus.WithError(err).WithField("path", c.FullPath()).Error("request failed")
		Fail(c, http.StatusInternalServerError, err.Error())
	}
}

// ValidationKind names the validation failure for metrics.
func ValidationKind(err error) string {
	switch {
	case errors.Is(err, betcalc.ErrInvalidFormat):
		return "format"
	case errors.Is(err, betcalc.ErrInvalidLength):
		return "length"
	case errors.Is(err, betcalc.ErrUnknownCategory):
		return "category"
	case errors.Is(err, betcalc.ErrInvalidAmount):
		return "amount"
	}
	return "unknown"
}

// Health pings the database.
func Health(c *gin.Context, db *gorm.DB) {
	sqlDB, err := db.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		Fail(c, http.StatusServiceUnavailable, "database unavailable")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}
