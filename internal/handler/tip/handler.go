package tip

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/HarshaPerabathula/backend-hcl-wellness/internal/handler"
	"github.com/HarshaPerabathula/backend-hcl-wellness/internal/middleware"
	"github.com/HarshaPerabathula/backend-hcl-wellness/internal/model"
	"github.com/HarshaPerabathula/backend-hcl-wellness/internal/service/tip"
)

type Handler struct {
	tipSvc *tip.Service
}

func NewHandler(tipSvc *tip.Service) *Handler {
	return &Handler{tipSvc: tipSvc}
}

// RegisterRoutes mounts the read side, available to any authenticated account.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/tips", h.List)
}

// RegisterProviderRoutes mounts the write side for providers.
func (h *Handler) RegisterProviderRoutes(r *gin.RouterGroup) {
	r.POST("/tips", h.Create)
}

func (h *Handler) List(c *gin.Context) {
	var category *model.TipCategory
	if raw := c.Query("category"); raw != "" {
		cat := model.TipCategory(raw)
		category = &cat
	}

	tips, err := h.tipSvc.ListActive(c.Request.Context(), category)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(tips))
}

func (h *Handler) Create(c *gin.Context) {
	claims := middleware.Claims(c)

	var req model.CreateTipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	created, err := h.tipSvc.Create(c.Request.Context(), claims.AccountID, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewMessageResponse("tip created", created))
}
