package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/castellanimarco/trainflow-engine/internal/adapters/handler/http/middleware"
	"github.com/castellanimarco/trainflow-engine/internal/core/domain"
	"github.com/castellanimarco/trainflow-engine/internal/core/services"
	"github.com/gin-gonic/gin"
)

type ProgressHandler struct {
	svc *services.ProgressService
}

func NewProgressHandler(svc *services.ProgressService) *ProgressHandler {
	return &ProgressHandler{
		svc: svc,
	}
}

type recordTaskRequest struct {
	Week      int    `json:"week" binding:"required"`
	TaskKey   string `json:"task_key" binding:"required"`
	Completed *bool  `json:"completed" binding:"required"`
}

func (h *ProgressHandler) RegisterRoutes(router *gin.RouterGroup) {
	progress := router.Group("/progress")
	{
		progress.POST("/tasks", h.RecordTask)
		progress.GET("/:week", h.GetWeek)
	}
}

func (h *ProgressHandler) RecordTask(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	var req recordTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.svc.RecordCompletion(c.Request.Context(), userID, req.Week, req.TaskKey, *req.Completed)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidWeek), errors.Is(err, domain.ErrEmptyTaskKey):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			_ = c.Error(err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *ProgressHandler) GetWeek(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	week, err := strconv.Atoi(c.Param("week"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid week, use 1..8"})
		return
	}

	progress, err := h.svc.GetProgress(c.Request.Context(), userID, week)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidWeek) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, progress)
}
