package provider

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/HarshaPerabathula/backend-hcl-wellness/internal/handler"
	"github.com/HarshaPerabathula/backend-hcl-wellness/internal/middleware"
	"github.com/HarshaPerabathula/backend-hcl-wellness/internal/model"
	"github.com/HarshaPerabathula/backend-hcl-wellness/internal/service/goal"
)

// Handler serves the provider surface: goal lifecycle and patient roster.
type Handler struct {
	goalSvc *goal.Service
}

func NewHandler(goalSvc *goal.Service) *Handler {
	return &Handler{goalSvc: goalSvc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	providers := r.Group("/providers")
	{
		providers.POST("/assign-goals", h.AssignGoal)
		providers.GET("/patients", h.Patients)
		providers.GET("/patients/:id/goals", h.PatientGoals)
		providers.PUT("/goals/:id/modify", h.ModifyGoal)
		providers.DELETE("/goals/:id", h.DeleteGoal)
	}
}

func (h *Handler) AssignGoal(c *gin.Context) {
	claims := middleware.Claims(c)

	var req model.AssignGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	assigned, err := h.goalSvc.Assign(c.Request.Context(), claims.AccountID, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewMessageResponse("goal assigned successfully", assigned))
}

func (h *Handler) Patients(c *gin.Context) {
	claims := middleware.Claims(c)

	patients, err := h.goalSvc.AssignedPatients(c.Request.Context(), claims.AccountID)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(patients))
}

func (h *Handler) PatientGoals(c *gin.Context) {
	claims := middleware.Claims(c)

	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid patient ID"))
		return
	}

	goals, err := h.goalSvc.PatientGoals(c.Request.Context(), claims.AccountID, patientID)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(goals))
}

func (h *Handler) ModifyGoal(c *gin.Context) {
	claims := middleware.Claims(c)

	goalID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid goal ID"))
		return
	}

	var req model.ModifyGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	modified, err := h.goalSvc.Modify(c.Request.Context(), goalID, claims.AccountID, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewMessageResponse("goal modified successfully", modified))
}

func (h *Handler) DeleteGoal(c *gin.Context) {
	claims := middleware.Claims(c)

	goalID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid goal ID"))
		return
	}

	if err := h.goalSvc.Delete(c.Request.Context(), goalID, claims.AccountID); err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewMessageResponse("goal and associated progress deleted", nil))
}
