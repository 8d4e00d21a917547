package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/studylog-engine/internal/adapters/handler/http/middleware"
	"github.com/comitanigiacomo/studylog-engine/internal/core/services"
)

type EntryHandler struct {
	svc *services.EntryService
}

func NewEntryHandler(svc *services.EntryService) *EntryHandler {
	return &EntryHandler{
		svc: svc,
	}
}

type createEntryRequest struct {
	Task    string `json:"task" binding:"required"`
	Project string `json:"project"`
	Minutes int    `json:"minutes"`
	// Date accepts dd/mm/yyyy or YYYY-MM-DD; empty means today.
	Date  string `json:"date"`
	Notes string `json:"notes"`
}

type updateEntryRequest struct {
	Task    string `json:"task" binding:"required"`
	Project string `json:"project"`
	Minutes int    `json:"minutes"`
	Date    string `json:"date"`
	Notes   string `json:"notes"`
	Version int    `json:"version" binding:"required"`
}

func (h *EntryHandler) RegisterRoutes(router *gin.RouterGroup) {
	entries := router.Group("/entries")
	{
		entries.POST("", h.Create)
		entries.GET("", h.List)
		entries.GET("/:id", h.Get)
		entries.PUT("/:id", h.Update)
		entries.DELETE("/:id", h.Delete)
	}
}

// Create godoc
// @Summary  Log a study session
// @Tags     entries
// @Accept   json
// @Produce  json
// @Param    X-Timezone header string false "IANA zone used when date is empty"
// @Param    entry body createEntryRequest true "Entry"
// @Success  201 {object} domain.LogEntry
// @Failure  400 {object} errorResponse
// @Failure  422 {object} errorResponse
// @Security BearerAuth
// @Router   /entries [post]
func (h *EntryHandler) Create(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req createEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	input := services.CreateEntryInput{
		UserID:   userID,
		Task:     req.Task,
		Project:  req.Project,
		Minutes:  req.Minutes,
		Date:     req.Date,
		Notes:    req.Notes,
		Location: middleware.GetLocation(c),
	}

	entry, err := h.svc.Create(c.Request.Context(), input)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, entry)
}

// List godoc
// @Summary  Most recent entries
// @Tags     entries
// @Produce  json
// @Param    limit query int false "At most this many rows (capped by the table limit)"
// @Success  200 {array} domain.LogEntry
// @Security BearerAuth
// @Router   /entries [get]
func (h *EntryHandler) List(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = n
	}

	list, err := h.svc.List(c.Request.Context(), userID, limit)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, list)
}

// Get godoc
// @Summary  One entry
// @Tags     entries
// @Produce  json
// @Param    id path string true "Entry ID"
// @Success  200 {object} domain.LogEntry
// @Failure  403 {object} errorResponse
// @Failure  404 {object} errorResponse
// @Security BearerAuth
// @Router   /entries/{id} [get]
func (h *EntryHandler) Get(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	entry, err := h.svc.GetByID(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, entry)
}

// Update godoc
// @Summary  Edit an entry
// @Tags     entries
// @Accept   json
// @Produce  json
// @Param    id path string true "Entry ID"
// @Param    entry body updateEntryRequest true "Entry with the version last read"
// @Success  200 {object} domain.LogEntry
// @Failure  409 {object} errorResponse
// @Failure  422 {object} errorResponse
// @Security BearerAuth
// @Router   /entries/{id} [put]
func (h *EntryHandler) Update(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	id := c.Param("id")
	var req updateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	input := services.UpdateEntryInput{
		ID:       id,
		UserID:   userID,
		Task:     req.Task,
		Project:  req.Project,
		Minutes:  req.Minutes,
		Date:     req.Date,
		Notes:    req.Notes,
		Version:  req.Version,
		Location: middleware.GetLocation(c),
	}

	entry, err := h.svc.Update(c.Request.Context(), input)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, entry)
}

// Delete godoc
// @Summary  Remove an entry
// @Tags     entries
// @Param    id path string true "Entry ID"
// @Success  204
// @Failure  403 {object} errorResponse
// @Failure  404 {object} errorResponse
// @Security BearerAuth
// @Router   /entries/{id} [delete]
func (h *EntryHandler) Delete(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), c.Param("id"), userID); err != nil {
		handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
