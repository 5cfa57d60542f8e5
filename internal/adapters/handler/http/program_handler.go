package http

import (
	"errors"
	"net/http"

	"github.com/castellanimarco/trainflow-engine/internal/adapters/handler/http/middleware"
	"github.com/castellanimarco/trainflow-engine/internal/core/domain"
	"github.com/castellanimarco/trainflow-engine/internal/core/services"
	"github.com/gin-gonic/gin"
)

type ProgramHandler struct {
	svc *services.ProgramService
}

func NewProgramHandler(svc *services.ProgramService) *ProgramHandler {
	return &ProgramHandler{
		svc: svc,
	}
}

func (h *ProgramHandler) RegisterRoutes(router *gin.RouterGroup) {
	program := router.Group("/program")
	{
		program.POST("", h.Generate)
		program.POST("/regenerate", h.Regenerate)
		program.GET("/week", h.CurrentWeek)
	}
}

func (h *ProgramHandler) Generate(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	user, err := h.svc.Generate(c.Request.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAlreadyEnrolled):
			c.JSON(http.StatusConflict, gin.H{"error": "program already generated, use regenerate"})
		case errors.Is(err, domain.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		default:
			_ = c.Error(err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user_id":    user.ID,
		"start_date": user.StartDate,
	})
}

func (h *ProgramHandler) Regenerate(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	user, err := h.svc.Regenerate(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user_id":    user.ID,
		"start_date": user.StartDate,
	})
}

func (h *ProgramHandler) CurrentWeek(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	week, err := h.svc.CurrentWeek(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"week": week})
}
