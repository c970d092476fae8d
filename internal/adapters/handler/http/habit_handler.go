package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-habit-tracker/internal/core/domain"
	"github.com/comitanigiacomo/kanso-habit-tracker/internal/core/services"
)

type HabitHandler struct {
	svc   *services.LedgerService
	clock domain.Clock
}

func NewHabitHandler(svc *services.LedgerService, clock domain.Clock) *HabitHandler {
	if clock == nil {
		clock = domain.SystemClock
	}
	return &HabitHandler{
		svc:   svc,
		clock: clock,
	}
}

type addHabitRequest struct {
	Name string `json:"name" binding:"required"`
}

type toggleRequest struct {
	Name string `json:"name" binding:"required"`
	// Date defaults to today when empty.
	Date string `json:"date"`
	Done *bool  `json:"done" binding:"required"`
}

func (h *HabitHandler) RegisterRoutes(router *gin.RouterGroup) {
	habits := router.Group("/habits")
	{
		habits.GET("", h.List)
		habits.POST("", h.Add)
		habits.DELETE("", h.Remove)
		habits.PUT("/days", h.Toggle)
	}
}

func (h *HabitHandler) List(c *gin.Context) {
	sess, ok := session(c, h.clock)
	if !ok {
		return
	}

	names, err := h.svc.Habits(c.Request.Context(), sess)
	if err != nil {
		writeLedgerError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"habits": names})
}

func (h *HabitHandler) Add(c *gin.Context) {
	sess, ok := session(c, h.clock)
	if !ok {
		return
	}

	var req addHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	out, err := h.svc.AddHabit(c.Request.Context(), sess, req.Name)
	if err != nil {
		writeLedgerError(c, err)
		return
	}

	if out.Changed {
		c.JSON(http.StatusCreated, out)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *HabitHandler) Remove(c *gin.Context) {
	sess, ok := session(c, h.clock)
	if !ok {
		return
	}

	name := c.Query("name")
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name query parameter is required"})
		return
	}

	out, err := h.svc.RemoveHabit(c.Request.Context(), sess, name)
	if err != nil {
		writeLedgerError(c, err)
		return
	}

	if out.Changed {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *HabitHandler) Toggle(c *gin.Context) {
	sess, ok := session(c, h.clock)
	if !ok {
		return
	}

	var req toggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name and done are required"})
		return
	}

	day := sess.Today
	if req.Date != "" {
		d, err := domain.ParseDateInput(req.Date)
		if err != nil {
			writeLedgerError(c, err)
			return
		}
		day = d
	}

	out, err := h.svc.Toggle(c.Request.Context(), sess, req.Name, day, *req.Done)
	if err != nil {
		writeLedgerError(c, err)
		return
	}

	c.JSON(http.StatusOK, out)
}
