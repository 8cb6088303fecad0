package utils

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
)

// StandardResponse represents the standard API response structure
type StandardResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Success sends a standardized success response
func Success(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, StandardResponse{
		Status:  "success",
		Message: message,
		Data:    data,
	})
}

// SuccessWithPagination sends a paginated success response
func SuccessWithPagination(c *gin.Context, message string, data interface{}, p *Pagination) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": message,
		"data":    data,
		"pagination": gin.H{
			"total":       p.Total,
			"page":        p.Page,
			"per_page":    p.Limit,
			"total_pages": p.LastPage,
		},
	})
}

// Error sends a standardized error response
func Error(c *gin.Context, statusCode int, message string, err interface{}) {
	response := StandardResponse{
		Status:  "error",
		Message: message,
	}
	if err != nil {
		response.Data = gin.H{"error": err}
	}
	c.JSON(statusCode, response)
}

// BadRequest sends a 400 Bad Request response
func BadRequest(c *gin.Context, message string, err interface{}) {
	Error(c, http.StatusBadRequest, message, err)
}

// Unauthorized sends a 401 Unauthorized response
func Unauthorized(c *gin.Context, message string) {
	Error(c, http.StatusUnauthorized, message, nil)
}

// Forbidden sends a 403 Forbidden response
func Forbidden(c *gin.Context, message string) {
	Error(c, http.StatusForbidden, message, nil)
}

// InternalServerError sends a 500 Internal Server Error response
func InternalServerError(c *gin.Context, message string, err interface{}) {
	Error(c, http.StatusInternalServerError, message, err)
}

// RespondError reports err with the status of the AppError it wraps.
// Internal errors are reported without their details.
func RespondError(c *gin.Context, err error) {
	appErr := GetAppError(err)
	if appErr == nil {
		InternalServerError(c, ErrInternalServer, nil)
		return
	}
	var detail interface{}
	if appErr.Err != nil {
		detail = appErr.Err.Error()
	}
	Error(c, appErr.Code, appErr.Message, detail)
}

// IsFormRequest reports whether the request was posted by an HTML form
func IsFormRequest(c *gin.Context) bool {
	ct := c.ContentType()
	return strings.HasPrefix(ct, "application/x-www-form-urlencoded") || strings.HasPrefix(ct, "multipart/form-data")
}

// RedirectWithError sends the browser back to path carrying the error
// message as the "error" query parameter
func RedirectWithError(c *gin.Context, path string, err error) {
	msg := ErrInternalServer
	if appErr := GetAppError(err); appErr != nil {
		msg = appErr.Error()
	}
	c.Redirect(http.StatusSeeOther, path+"?error="+url.QueryEscape(msg))
}

// WriteFailed reports a failed write either as a redirect for form posts
// or as a JSON error for API clients
func WriteFailed(c *gin.Context, redirectPath string, err error) {
	if IsFormRequest(c) && redirectPath != "" {
		RedirectWithError(c, redirectPath, err)
		return
	}
	RespondError(c, err)
}

// WriteSucceeded reports a successful write as a redirect for form posts
// or as a JSON body for API clients
func WriteSucceeded(c *gin.Context, redirectPath string, status int, message string, data interface{}) {
	if IsFormRequest(c) && redirectPath != "" {
		c.Redirect(http.StatusSeeOther, redirectPath)
		return
	}
	c.JSON(status, StandardResponse{
		Status:  "success",
		Message: message,
		Data:    data,
	})
}
