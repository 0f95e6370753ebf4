package respond

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// OK serializes payload as the body of a successful call.
func OK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

// Attachment sends data as a download named fileName.
func Attachment(c *gin.Context, fileName, mimeType string, data []byte) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	c.Data(http.StatusOK, mimeType, data)
}
