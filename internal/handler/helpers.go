package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/kutuphane/locallibrary/pkg/logger"
)

// renderNotFound is the uniform response for identifiers that do not
// resolve to a record.
func renderNotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{
		"error": "The requested resource could not be found",
	})
}

// renderServerError hides store failures behind a generic message.
// Error detail is echoed only outside release mode.
func renderServerError(c *gin.Context, err error) {
	logger.Log.Error("Request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
		zap.Error(err),
	)

	body := gin.H{
		"error": "The server encountered a problem and could not process your request",
	}
	if gin.Mode() != gin.ReleaseMode {
		body["detail"] = err.Error()
	}
	c.JSON(http.StatusInternalServerError, body)
}
