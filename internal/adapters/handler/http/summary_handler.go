package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/studylog-engine/internal/adapters/handler/http/middleware"
	"github.com/comitanigiacomo/studylog-engine/internal/core/domain"
	"github.com/comitanigiacomo/studylog-engine/internal/core/services"
)

type SummaryHandler struct {
	summary *services.SummaryService
	export  *services.ExportService
}

func NewSummaryHandler(summary *services.SummaryService, export *services.ExportService) *SummaryHandler {
	return &SummaryHandler{summary: summary, export: export}
}

func (h *SummaryHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/summary", h.GetSummary)
	r.GET("/export", h.Export)
}

// dateRange reads the optional from/to query bounds in either date format.
func dateRange(c *gin.Context) (from, to domain.Date, err error) {
	if raw := strings.TrimSpace(c.Query("from")); raw != "" {
		if from, err = domain.ParseAny(raw); err != nil {
			return
		}
	}
	if raw := strings.TrimSpace(c.Query("to")); raw != "" {
		if to, err = domain.ParseAny(raw); err != nil {
			return
		}
	}
	return
}

// GetSummary godoc
// @Summary  Minutes per project and task, with streaks
// @Tags     summary
// @Produce  json
// @Param    from query string false "First day (inclusive)"
// @Param    to   query string false "Last day (inclusive)"
// @Success  200 {object} domain.Summary
// @Failure  400 {object} errorResponse
// @Failure  422 {object} errorResponse
// @Security BearerAuth
// @Router   /summary [get]
func (h *SummaryHandler) GetSummary(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	from, to, err := dateRange(c)
	if err != nil {
		handleError(c, err)
		return
	}

	summary, err := h.summary.GetSummary(c.Request.Context(), domain.SummaryInput{
		UserID: userID,
		From:   from,
		To:     to,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// Export godoc
// @Summary  Download the log as CSV or XLSX
// @Tags     summary
// @Produce  text/csv
// @Produce  application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param    format query string false "csv (default) or xlsx"
// @Param    from   query string false "First day (inclusive)"
// @Param    to     query string false "Last day (inclusive)"
// @Success  200 {file} file
// @Failure  400 {object} errorResponse
// @Security BearerAuth
// @Router   /export [get]
func (h *SummaryHandler) Export(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	format, err := services.ParseExportFormat(c.Query("format"))
	if err != nil {
		handleError(c, err)
		return
	}

	from, to, err := dateRange(c)
	if err != nil {
		handleError(c, err)
		return
	}

	file, err := h.export.Export(c.Request.Context(), services.ExportInput{
		UserID:   userID,
		Format:   format,
		From:     from,
		To:       to,
		Location: middleware.GetLocation(c),
	})
	if err != nil {
		handleError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+file.Filename+`"`)
	c.Data(http.StatusOK, file.ContentType, file.Data)
}
