package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/studylog-engine/internal/adapters/handler/http/middleware"
	"github.com/comitanigiacomo/studylog-engine/internal/core/domain"
)

// DatesHandler exposes the date normalizer so clients validate input the
// same way the server stores it.
type DatesHandler struct{}

func NewDatesHandler() *DatesHandler {
	return &DatesHandler{}
}

type normalizeRequest struct {
	Text string `json:"text"`
}

type dateResponse struct {
	Date    string `json:"date"`
	Display string `json:"display"`
}

func newDateResponse(d domain.Date) dateResponse {
	return dateResponse{Date: d.String(), Display: d.Display()}
}

func (h *DatesHandler) RegisterRoutes(router *gin.RouterGroup) {
	dates := router.Group("/dates")
	{
		dates.POST("/normalize", h.Normalize)
		dates.GET("/today", h.Today)
	}
}

// Normalize godoc
// @Summary  Parse dd/mm/yyyy (or YYYY-MM-DD) text
// @Tags     dates
// @Accept   json
// @Produce  json
// @Param    body body normalizeRequest true "Text to parse"
// @Success  200 {object} dateResponse
// @Failure  422 {object} errorResponse
// @Router   /dates/normalize [post]
func (h *DatesHandler) Normalize(c *gin.Context) {
	var req normalizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	date, err := domain.ParseAny(req.Text)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, newDateResponse(date))
}

// Today godoc
// @Summary  Today's calendar day in the caller's zone
// @Tags     dates
// @Produce  json
// @Param    X-Timezone header string false "IANA zone, UTC when missing"
// @Success  200 {object} dateResponse
// @Router   /dates/today [get]
func (h *DatesHandler) Today(c *gin.Context) {
	c.JSON(http.StatusOK, newDateResponse(domain.Today(middleware.GetLocation(c))))
}
