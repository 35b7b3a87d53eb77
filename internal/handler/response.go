package handler

import (
	"github.com/gin-gonic/gin"

	apperrors "github.com/HarshaPerabathula/backend-hcl-wellness/pkg/errors"
)

type Response struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func NewSuccessResponse(data interface{}) *Response {
	return &Response{
		Status: "success",
		Data:   data,
	}
}

func NewMessageResponse(message string, data interface{}) *Response {
	return &Response{
		Status:  "success",
		Message: message,
		Data:    data,
	}
}

func NewErrorResponse(message string) *Response {
	return &Response{
		Status:  "error",
		Message: message,
	}
}

// Error writes the HTTP response for a service error, mapping the AppError
// taxonomy onto status codes. Unknown errors surface as a generic 500.
func Error(c *gin.Context, err error) {
	appErr := apperrors.From(err)
	_ = c.Error(err)
	c.AbortWithStatusJSON(appErr.StatusCode(), NewErrorResponse(appErr.Message))
}
