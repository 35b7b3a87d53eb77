package patient

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/HarshaPerabathula/backend-hcl-wellness/internal/handler"
	"github.com/HarshaPerabathula/backend-hcl-wellness/internal/middleware"
	"github.com/HarshaPerabathula/backend-hcl-wellness/internal/model"
	"github.com/HarshaPerabathula/backend-hcl-wellness/internal/service/goal"
	"github.com/HarshaPerabathula/backend-hcl-wellness/internal/service/healthmetrics"
	"github.com/HarshaPerabathula/backend-hcl-wellness/internal/service/progress"
	"github.com/HarshaPerabathula/backend-hcl-wellness/internal/service/tip"
)

const dashboardUpcomingCare = 3

// Handler serves the patient self-service surface: progress logging, goals,
// health metrics and the dashboard.
type Handler struct {
	progressSvc *progress.Service
	goalSvc     *goal.Service
	careSvc     CareReader
	tipSvc      *tip.Service
	metricsSvc  *healthmetrics.Service
}

// CareReader is the slice of the care scheduler the dashboard needs.
type CareReader interface {
	Upcoming(ctx context.Context, patientID uuid.UUID, limit int) ([]*model.PreventiveCare, error)
}

func NewHandler(
	progressSvc *progress.Service,
	goalSvc *goal.Service,
	careSvc CareReader,
	tipSvc *tip.Service,
	metricsSvc *healthmetrics.Service,
) *Handler {
	return &Handler{
		progressSvc: progressSvc,
		goalSvc:     goalSvc,
		careSvc:     careSvc,
		tipSvc:      tipSvc,
		metricsSvc:  metricsSvc,
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	patients := r.Group("/patients")
	{
		patients.POST("/log-progress", h.LogProgress)
		patients.GET("/active-goals", h.ActiveGoals)
		patients.GET("/dashboard", h.Dashboard)
		patients.GET("/progress-history", h.ProgressHistory)
		patients.GET("/streaks", h.Streaks)
		patients.POST("/health-metrics", h.RecordMetrics)
		patients.GET("/health-metrics", h.ListMetrics)
	}
}

func (h *Handler) LogProgress(c *gin.Context) {
	claims := middleware.Claims(c)

	var req model.LogProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	rec, err := h.progressSvc.LogProgress(c.Request.Context(), claims.AccountID, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewMessageResponse("progress logged successfully", rec))
}

func (h *Handler) ActiveGoals(c *gin.Context) {
	claims := middleware.Claims(c)

	goals, err := h.goalSvc.ActiveGoals(c.Request.Context(), claims.AccountID)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(goals))
}

func (h *Handler) Dashboard(c *gin.Context) {
	claims := middleware.Claims(c)
	ctx := c.Request.Context()

	activeGoals, err := h.goalSvc.ActiveGoals(ctx, claims.AccountID)
	if err != nil {
		handler.Error(c, err)
		return
	}

	todayProgress, err := h.progressSvc.TodayProgress(ctx, claims.AccountID)
	if err != nil {
		handler.Error(c, err)
		return
	}

	upcoming, err := h.careSvc.Upcoming(ctx, claims.AccountID, dashboardUpcomingCare)
	if err != nil {
		handler.Error(c, err)
		return
	}

	randomTip, err := h.tipSvc.RandomActive(ctx)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(&model.Dashboard{
		ActiveGoals:   len(activeGoals),
		TodayProgress: todayProgress,
		UpcomingCare:  upcoming,
		HealthTip:     randomTip,
	}))
}

func (h *Handler) ProgressHistory(c *gin.Context) {
	claims := middleware.Claims(c)

	var goalID *uuid.UUID
	if raw := c.Query("goal_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid goal ID"))
			return
		}
		goalID = &id
	}

	from, ok := parseDateQuery(c, "start_date")
	if !ok {
		return
	}
	to, ok := parseDateQuery(c, "end_date")
	if !ok {
		return
	}

	history, err := h.progressSvc.History(c.Request.Context(), claims.AccountID, goalID, from, to)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(history))
}

func (h *Handler) Streaks(c *gin.Context) {
	claims := middleware.Claims(c)

	streaks, err := h.goalSvc.Streaks(c.Request.Context(), claims.AccountID)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(streaks))
}

func (h *Handler) RecordMetrics(c *gin.Context) {
	claims := middleware.Claims(c)

	var req model.RecordMetricsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	rec, err := h.metricsSvc.Record(c.Request.Context(), claims.AccountID, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewMessageResponse("health metrics recorded", rec))
}

func (h *Handler) ListMetrics(c *gin.Context) {
	claims := middleware.Claims(c)

	from, ok := parseDateQuery(c, "start_date")
	if !ok {
		return
	}
	to, ok := parseDateQuery(c, "end_date")
	if !ok {
		return
	}

	records, err := h.metricsSvc.List(c.Request.Context(), claims.AccountID, from, to)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(records))
}

func parseDateQuery(c *gin.Context, name string) (*time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid "+name))
		return nil, false
	}
	return &t, true
}
