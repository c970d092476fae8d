package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-habit-tracker/internal/core/domain"
	"github.com/comitanigiacomo/kanso-habit-tracker/internal/core/services"
)

type DashboardHandler struct {
	svc   *services.DashboardService
	clock domain.Clock
}

func NewDashboardHandler(svc *services.DashboardService, clock domain.Clock) *DashboardHandler {
	if clock == nil {
		clock = domain.SystemClock
	}
	return &DashboardHandler{svc: svc, clock: clock}
}

func (h *DashboardHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/dashboard", h.Dashboard)
	r.GET("/habits/report", h.Report)
}

// Dashboard accepts one calendar offset per habit as offset[<habit>]=n and a
// plain offset=n for every other habit.
func (h *DashboardHandler) Dashboard(c *gin.Context) {
	sess, ok := session(c, h.clock)
	if !ok {
		return
	}

	raw := c.QueryMap("offset")
	offsets := make(map[string]int, len(raw))
	for name, v := range raw {
		n, err := strconv.Atoi(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "offset must be an integer"})
			return
		}
		offsets[name] = n
	}

	defaultOffset := 0
	if v := c.Query("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "offset must be an integer"})
			return
		}
		defaultOffset = n
	}

	dash, err := h.svc.Snapshot(c.Request.Context(), sess, offsets, defaultOffset)
	if err != nil {
		writeLedgerError(c, err)
		return
	}

	c.JSON(http.StatusOK, dash)
}

func (h *DashboardHandler) Report(c *gin.Context) {
	sess, ok := session(c, h.clock)
	if !ok {
		return
	}

	name := c.Query("name")
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name query parameter is required"})
		return
	}

	offset := 0
	if v := c.Query("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "offset must be an integer"})
			return
		}
		offset = n
	}

	report, warnings, err := h.svc.Report(c.Request.Context(), sess, name, offset)
	if err != nil {
		writeLedgerError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"report":   report,
		"warnings": warnings,
	})
}
