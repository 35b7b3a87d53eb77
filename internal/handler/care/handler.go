package care

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/HarshaPerabathula/backend-hcl-wellness/internal/handler"
	"github.com/HarshaPerabathula/backend-hcl-wellness/internal/middleware"
	"github.com/HarshaPerabathula/backend-hcl-wellness/internal/model"
	"github.com/HarshaPerabathula/backend-hcl-wellness/internal/service/care"
)

// Handler serves the preventive care surface for patients, plus the
// completion endpoint shared with providers.
type Handler struct {
	careSvc *care.Service
}

func NewHandler(careSvc *care.Service) *Handler {
	return &Handler{careSvc: careSvc}
}

// RegisterRoutes mounts patient-facing care routes. Complete is registered
// separately because both roles may call it.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	pc := r.Group("/preventive-care")
	{
		pc.GET("/schedule", h.Schedule)
		pc.POST("/book", h.Book)
		pc.GET("/overdue", h.Overdue)
		pc.PUT("/reschedule", h.Reschedule)
	}
}

// RegisterSharedRoutes mounts routes available to both patients and providers.
func (h *Handler) RegisterSharedRoutes(r *gin.RouterGroup) {
	r.PUT("/preventive-care/:id/complete", h.Complete)
}

func (h *Handler) Schedule(c *gin.Context) {
	claims := middleware.Claims(c)

	items, err := h.careSvc.Schedule(c.Request.Context(), claims.AccountID)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(items))
}

func (h *Handler) Book(c *gin.Context) {
	claims := middleware.Claims(c)

	var req model.BookCareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	booked, err := h.careSvc.Book(c.Request.Context(), claims.AccountID, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewMessageResponse("checkup booked successfully", booked))
}

func (h *Handler) Overdue(c *gin.Context) {
	claims := middleware.Claims(c)

	items, err := h.careSvc.ListOverdue(c.Request.Context(), claims.AccountID)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(items))
}

func (h *Handler) Complete(c *gin.Context) {
	claims := middleware.Claims(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid checkup ID"))
		return
	}

	// Body is optional, completion date defaults to now.
	var req model.CompleteCareRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
			return
		}
	}

	completed, err := h.careSvc.Complete(c.Request.Context(), id, claims.AccountID, claims.Role, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewMessageResponse("checkup marked as completed", completed))
}

func (h *Handler) Reschedule(c *gin.Context) {
	claims := middleware.Claims(c)

	var req model.RescheduleCareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	rescheduled, err := h.careSvc.Reschedule(c.Request.Context(), claims.AccountID, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewMessageResponse("appointment rescheduled", rescheduled))
}
