package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/castellanimarco/trainflow-engine/internal/adapters/handler/http/middleware"
	"github.com/castellanimarco/trainflow-engine/internal/core/domain"
	"github.com/castellanimarco/trainflow-engine/internal/core/services"
	"github.com/gin-gonic/gin"
)

type ScheduleHandler struct {
	schedules *services.ScheduleService
	programs  *services.ProgramService
}

func NewScheduleHandler(schedules *services.ScheduleService, programs *services.ProgramService) *ScheduleHandler {
	return &ScheduleHandler{
		schedules: schedules,
		programs:  programs,
	}
}

func (h *ScheduleHandler) RegisterRoutes(router *gin.RouterGroup) {
	schedule := router.Group("/schedule")
	{
		schedule.GET("/:day", h.ForDay)
	}
}

// ForDay resolves the schedule for one day. The week defaults to the user's
// live program week; an explicit ?week=N overrides it.
func (h *ScheduleHandler) ForDay(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	day := strings.ToLower(c.Param("day"))
	if !domain.IsDayName(day) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid day, use monday..sunday"})
		return
	}

	var week int
	if weekStr := c.Query("week"); weekStr != "" {
		parsed, err := strconv.Atoi(weekStr)
		if err != nil || parsed < 1 || parsed > domain.ProgramWeeks {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid week, use 1..8"})
			return
		}
		week = parsed
	} else {
		current, err := h.programs.CurrentWeek(c.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, domain.ErrUserNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
				return
			}
			_ = c.Error(err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}
		week = current
	}

	resolved, err := h.schedules.ResolveForDay(c.Request.Context(), userID, day, week)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"day":      day,
		"week":     week,
		"schedule": resolved,
	})
}
