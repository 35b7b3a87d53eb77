package account

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/HarshaPerabathula/backend-hcl-wellness/internal/handler"
	"github.com/HarshaPerabathula/backend-hcl-wellness/internal/middleware"
	"github.com/HarshaPerabathula/backend-hcl-wellness/internal/model"
	"github.com/HarshaPerabathula/backend-hcl-wellness/internal/service/account"
)

type Handler struct {
	service *account.Service
}

func NewHandler(service *account.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	users := r.Group("/users")
	{
		users.GET("/profile", h.GetProfile)
		users.PUT("/profile", h.UpdateProfile)
		users.GET("/consent-status", h.ConsentStatus)
		users.POST("/give-consent", h.GiveConsent)
	}
}

func (h *Handler) GetProfile(c *gin.Context) {
	claims := middleware.Claims(c)

	profile, err := h.service.Profile(c.Request.Context(), claims.AccountID)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(profile))
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	claims := middleware.Claims(c)

	var req model.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	profile, err := h.service.UpdateProfile(c.Request.Context(), claims.AccountID, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewMessageResponse("profile updated successfully", profile))
}

func (h *Handler) ConsentStatus(c *gin.Context) {
	claims := middleware.Claims(c)

	given, err := h.service.ConsentStatus(c.Request.Context(), claims.AccountID)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"consent_given": given}))
}

func (h *Handler) GiveConsent(c *gin.Context) {
	claims := middleware.Claims(c)

	if err := h.service.GiveConsent(c.Request.Context(), claims.AccountID); err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewMessageResponse("consent given successfully", nil))
}
