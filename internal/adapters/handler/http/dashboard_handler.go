package http

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/studylog-engine/internal/adapters/handler/http/middleware"
	"github.com/comitanigiacomo/studylog-engine/internal/core/domain"
	"github.com/comitanigiacomo/studylog-engine/internal/core/services"
	"github.com/comitanigiacomo/studylog-engine/internal/core/view"
)

type DashboardHandler struct {
	auth    *services.AuthService
	entries *services.EntryService
	ui      view.Copy
}

func NewDashboardHandler(auth *services.AuthService, entries *services.EntryService, ui view.Copy) *DashboardHandler {
	return &DashboardHandler{auth: auth, entries: entries, ui: ui}
}

// RegisterRoutes mounts the dashboard on a group that uses OptionalAuth,
// since signed-out callers get a view too.
func (h *DashboardHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/dashboard", h.Get)
}

// Get godoc
// @Summary  Dashboard view model
// @Tags     dashboard
// @Produce  json
// @Param    notes    query bool false "Include the notes column"
// @Param    expanded query bool false "Show every project lane"
// @Success  200 {object} view.Dashboard
// @Router   /dashboard [get]
func (h *DashboardHandler) Get(c *gin.Context) {
	state := view.State{
		ShowNotes:        queryBool(c, "notes"),
		ExpandedProjects: queryBool(c, "expanded"),
	}

	if userID, ok := middleware.GetUserID(c); ok {
		ctx := c.Request.Context()

		user, err := h.auth.CurrentUser(ctx, userID)
		switch {
		case err == nil:
			state.User = user
			state.Entries, state.LoadErr = h.entries.List(ctx, userID, 0)
			if state.LoadErr != nil {
				log.Printf("[ERROR] Dashboard entries for user %s failed: %v", userID, state.LoadErr)
			}
		case errors.Is(err, domain.ErrUserNotFound):
			// Account deleted under a live token, render signed out.
		default:
			handleError(c, err)
			return
		}
	}

	c.JSON(http.StatusOK, view.Render(state, h.ui))
}

func queryBool(c *gin.Context, key string) bool {
	v, err := strconv.ParseBool(c.Query(key))
	return err == nil && v
}
