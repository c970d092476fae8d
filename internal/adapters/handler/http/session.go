package http

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-habit-tracker/internal/adapters/handler/http/middleware"
	"github.com/comitanigiacomo/kanso-habit-tracker/internal/core/calendar"
	"github.com/comitanigiacomo/kanso-habit-tracker/internal/core/domain"
)

// session freezes "today" for the request. It writes the error response itself
// when no user is in the context.
func session(c *gin.Context, clock domain.Clock) (domain.Session, bool) {
	username, ok := middleware.GetUsername(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return domain.Session{}, false
	}
	return domain.NewSession(username, clock()), true
}

func writeLedgerError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrHabitNameEmpty),
		errors.Is(err, domain.ErrHabitNameTooLong),
		errors.Is(err, domain.ErrInvalidDate),
		errors.Is(err, calendar.ErrOffsetOutOfRange):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrHabitNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "habit not found"})
	case errors.Is(err, domain.ErrPersistenceFailure):
		log.Printf("[LEDGER] %v", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "changes could not be saved"})
	case errors.Is(err, domain.ErrDataCorruption):
		log.Printf("[LEDGER] %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "stored data is unreadable"})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
