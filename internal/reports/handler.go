package reports

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sharath018/potluck-rsvp-backend/internal/apperr"
	"github.com/sharath018/potluck-rsvp-backend/middleware"
)

type Handler struct {
	service ReportService
}

func NewHandler(svc ReportService) *Handler {
	return &Handler{service: svc}
}

// Export godoc
// @Summary Download all sign-ups
// @Description One row per guest and item. CSV is semicolon separated.
// @Tags Reports
// @Produce octet-stream
// @Security BearerAuth
// @Param format query string false "csv, excel or pdf" default(csv)
// @Param date_range query string false "all, daily, weekly, monthly or custom" default(all)
// @Param start_date query string false "YYYY-MM-DD, custom range only"
// @Param end_date query string false "YYYY-MM-DD, custom range only"
// @Success 200 {file} file
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/v1/admin/export [get]
func (h *Handler) Export(c *gin.Context) {
	req := ExportRequest{
		Format:    c.DefaultQuery("format", FormatCSV),
		DateRange: c.DefaultQuery("date_range", DateRangeAll),
		StartDate: c.Query("start_date"),
		EndDate:   c.Query("end_date"),
	}

	file, err := h.service.Export(c.Request.Context(), req, middleware.ActorFromContext(c))
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	c.Data(http.StatusOK, file.ContentType, file.Data)
}
