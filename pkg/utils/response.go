package utils

import (
	"github.com/gin-gonic/gin"
)

// ErrorResponse sends a standard error JSON response
func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error":   message,
	})
}

// FieldErrorResponse sends an error response that also lists the offending fields
func FieldErrorResponse(c *gin.Context, statusCode int, message string, fields interface{}) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error":   message,
		"fields":  fields,
	})
}

// AbortWithError sends an error response and stops the handler chain
func AbortWithError(c *gin.Context, statusCode int, message string) {
	ErrorResponse(c, statusCode, message)
	c.Abort()
}
