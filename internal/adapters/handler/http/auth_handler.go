package http

import (
	"errors"
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/studylog-engine/internal/adapters/handler/http/middleware"
	"github.com/comitanigiacomo/studylog-engine/internal/core/domain"
	"github.com/comitanigiacomo/studylog-engine/internal/core/services"
)

type AuthHandler struct {
	service     *services.AuthService
	oauth       *services.OAuthService
	frontendURL string
}

// NewAuthHandler wires password accounts. oauth may be nil when Google
// sign-in is not configured; its routes then answer 503.
func NewAuthHandler(service *services.AuthService, oauth *services.OAuthService, frontendURL string) *AuthHandler {
	return &AuthHandler{
		service:     service,
		oauth:       oauth,
		frontendURL: frontendURL,
	}
}

type registerRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type userResponse struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	Provider      string `json:"provider,omitempty"`
	CurrentStreak int    `json:"current_streak"`
	LongestStreak int    `json:"longest_streak"`
}

type tokenResponse struct {
	Token     string       `json:"token"`
	TokenType string       `json:"token_type"`
	User      userResponse `json:"user"`
}

func newUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:            u.ID,
		Email:         u.Email,
		Provider:      u.Provider,
		CurrentStreak: u.CurrentStreak,
		LongestStreak: u.LongestStreak,
	}
}

func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup) {
	authGroup := router.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
		authGroup.GET("/oauth/google", h.BeginOAuth)
		authGroup.GET("/oauth/google/callback", h.OAuthCallback)
	}
}

// RegisterProtectedRoutes mounts the routes that need a session.
func (h *AuthHandler) RegisterProtectedRoutes(router *gin.RouterGroup) {
	router.POST("/auth/logout", h.Logout)
	router.GET("/me", h.Me)
}

// Register godoc
// @Summary  Create a password account
// @Tags     auth
// @Accept   json
// @Produce  json
// @Param    body body registerRequest true "Credentials"
// @Success  201 {object} userResponse
// @Failure  400 {object} errorResponse
// @Failure  409 {object} errorResponse
// @Router   /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input := services.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
	}

	user, err := h.service.Register(c.Request.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmailAlreadyExists):
			c.JSON(http.StatusConflict, gin.H{"error": "email already exists"})
		case errors.Is(err, domain.ErrInvalidEmail):
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid email format"})
		case errors.Is(err, domain.ErrPasswordTooShort):
			c.JSON(http.StatusBadRequest, gin.H{"error": "password too short"})
		default:
			_ = c.Error(err)
			log.Printf("[ERROR] Register failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
		return
	}

	c.JSON(http.StatusCreated, newUserResponse(user))
}

// Login godoc
// @Summary  Exchange email and password for a session token
// @Tags     auth
// @Accept   json
// @Produce  json
// @Param    body body loginRequest true "Credentials"
// @Success  200 {object} tokenResponse
// @Failure  401 {object} errorResponse
// @Router   /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, token, err := h.service.Login(c.Request.Context(), services.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, tokenResponse{Token: token, TokenType: "Bearer", User: newUserResponse(user)})
}

// Logout godoc
// @Summary  Revoke the current session token
// @Tags     auth
// @Success  204
// @Security BearerAuth
// @Router   /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	token, ok := middleware.GetToken(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	if err := h.service.Logout(c.Request.Context(), token); err != nil {
		handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Me godoc
// @Summary  The signed-in user
// @Tags     auth
// @Produce  json
// @Success  200 {object} userResponse
// @Security BearerAuth
// @Router   /me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	user, err := h.service.CurrentUser(c.Request.Context(), userID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, newUserResponse(user))
}

// BeginOAuth godoc
// @Summary  Start Google sign-in
// @Tags     auth
// @Param    mode query string false "json returns the URL instead of redirecting"
// @Success  302
// @Success  200 {object} map[string]string
// @Failure  503 {object} errorResponse
// @Router   /auth/oauth/google [get]
func (h *AuthHandler) BeginOAuth(c *gin.Context) {
	if h.oauth == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "google sign-in is not configured"})
		return
	}

	authURL, err := h.oauth.Begin(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}

	if c.Query("mode") == "json" {
		c.JSON(http.StatusOK, gin.H{"url": authURL})
		return
	}
	c.Redirect(http.StatusFound, authURL)
}

// OAuthCallback godoc
// @Summary  Google redirects here after consent
// @Tags     auth
// @Param    state query string true "State from BeginOAuth"
// @Param    code  query string true "Authorization code"
// @Success  302
// @Success  200 {object} tokenResponse
// @Failure  400 {object} errorResponse
// @Failure  502 {object} errorResponse
// @Router   /auth/oauth/google/callback [get]
func (h *AuthHandler) OAuthCallback(c *gin.Context) {
	if h.oauth == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "google sign-in is not configured"})
		return
	}

	if providerErr := c.Query("error"); providerErr != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "sign-in was not completed", "reason": providerErr})
		return
	}

	result, err := h.oauth.Complete(c.Request.Context(), c.Query("state"), c.Query("code"))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrOAuthStateNotFound):
			c.JSON(http.StatusBadRequest, gin.H{"error": "sign-in request expired, please try again"})
		case errors.Is(err, services.ErrOAuthEmailMissing):
			c.JSON(http.StatusForbidden, gin.H{"error": "a verified email address is required"})
		case errors.Is(err, services.ErrOAuthExchange), errors.Is(err, services.ErrOAuthUserInfo):
			log.Printf("[AUTH] OAuth callback failed: %v", err)
			c.JSON(http.StatusBadGateway, gin.H{"error": "identity provider error"})
		default:
			handleError(c, err)
		}
		return
	}

	if h.frontendURL != "" {
		fragment := url.Values{}
		fragment.Set("access_token", result.Token)
		fragment.Set("token_type", "Bearer")
		c.Redirect(http.StatusFound, strings.TrimRight(h.frontendURL, "#")+"#"+fragment.Encode())
		return
	}

	c.JSON(http.StatusOK, tokenResponse{Token: result.Token, TokenType: "Bearer", User: newUserResponse(result.User)})
}
