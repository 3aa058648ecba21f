package notification

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	Service Service
}

func NewHandler(s Service) *Handler {
	return &Handler{Service: s}
}

// ListLogs godoc
// @Summary Organizer notifications sent for new RSVPs
// @Tags Notifications
// @Produce json
// @Security BearerAuth
// @Param limit query int false "max entries (default 50)"
// @Success 200 {array} NotificationLog
// @Failure 500 {object} map[string]string
// @Router /api/v1/admin/notifications [get]
func (h *Handler) ListLogs(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	logs, err := h.Service.RecentLogs(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch notification logs"})
		return
	}
	c.JSON(http.StatusOK, logs)
}
