package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kutuphane/locallibrary/internal/service"
	"github.com/kutuphane/locallibrary/internal/session"
)

type DashboardHandler struct {
	dashboard *service.DashboardService
	sessions  *session.Manager
}

func NewDashboardHandler(dashboard *service.DashboardService, sessions *session.Manager) *DashboardHandler {
	return &DashboardHandler{
		dashboard: dashboard,
		sessions:  sessions,
	}
}

// Home renders the catalog dashboard counts.
// GET /catalog
func (h *DashboardHandler) Home(c *gin.Context) {
	counts, err := h.dashboard.Counts()
	if err != nil {
		renderServerError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"title":   "Local Library Home",
		"data":    counts,
		"notices": h.sessions.PopNotices(c.Request.Context()),
	})
}
