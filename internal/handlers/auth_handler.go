package handlers

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"taskhub/internal/models"
	"taskhub/internal/services"
	"taskhub/internal/utils"
)

type AuthHandler struct {
	userService services.UserService
	authService services.AuthService
	refreshTTL  time.Duration
}

func NewAuthHandler(userService services.UserService, authService services.AuthService, refreshTTL time.Duration) *AuthHandler {
	return &AuthHandler{userService: userService, authService: authService, refreshTTL: refreshTTL}
}

// issueTokens signs an access JWT and stores a fresh opaque refresh
// token on the user row.
func (h *AuthHandler) issueTokens(c *gin.Context, user *models.User) (access, refresh string, err error) {
	access, err = h.authService.GenerateAccessToken(user)
	if err != nil {
		return "", "", err
	}
	refresh, err = utils.NewRefreshToken(32)
	if err != nil {
		return "", "", err
	}
	exp := time.Now().Add(h.refreshTTL)
	if err := h.userService.UpdateRefresh(c.Request.Context(), user.ID, refresh, exp); err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

// @Summary      Register
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        body  body      models.RegisterRequest  true  "Registration data"
// @Success      201   {object}  map[string]interface{}
// @Failure      400   {object}  map[string]interface{}
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if errs := validateRegister(&req); len(errs) > 0 {
		respondValidation(c, errs)
		return
	}

	user, err := h.userService.Register(c.Request.Context(), &req)
	if err != nil {
		log.Printf("[auth][register][err] email=%q: %v", req.Email, err)
		serviceError(c, err)
		return
	}

	access, refresh, err := h.issueTokens(c, user)
	if err != nil {
		log.Printf("[auth][register][err] tokens for userID=%s: %v", user.ID, err)
		respondError(c, http.StatusInternalServerError, "Failed to generate tokens")
		return
	}
	log.Printf("[auth][register][ok] userID=%s", user.ID)
	respondData(c, http.StatusCreated, gin.H{
		"user":         user,
		"token":        access,
		"refreshToken": refresh,
	})
}

// @Summary      Login
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        body  body      models.LoginRequest  true  "Credentials"
// @Success      200   {object}  map[string]interface{}
// @Failure      401   {object}  map[string]interface{}
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if errs := validateLogin(&req); len(errs) > 0 {
		respondValidation(c, errs)
		return
	}

	user, err := h.userService.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		log.Printf("[auth][login][deny] email=%q: %v", req.Email, err)
		serviceError(c, err)
		return
	}

	access, refresh, err := h.issueTokens(c, user)
	if err != nil {
		log.Printf("[auth][login][err] tokens for userID=%s: %v", user.ID, err)
		respondError(c, http.StatusInternalServerError, "Failed to generate tokens")
		return
	}
	log.Printf("[auth][login][ok] userID=%s", user.ID)
	respondData(c, http.StatusOK, gin.H{
		"user":         user,
		"token":        access,
		"refreshToken": refresh,
	})
}

// @Summary      Refresh tokens
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        body  body      object  true  "refreshToken"
// @Success      200   {object}  map[string]interface{}
// @Failure      401   {object}  map[string]interface{}
// @Router       /api/auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refreshToken" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "refreshToken is required")
		return
	}

	old := strings.TrimSpace(req.RefreshToken)
	user, err := h.userService.GetByRefreshToken(c.Request.Context(), old)
	if err != nil || user == nil || user.RefreshToken == nil || user.RefreshExpiresAt == nil ||
		user.RefreshRevoked || user.RefreshExpiresAt.Before(time.Now()) {
		respondError(c, http.StatusUnauthorized, "Invalid refresh token")
		return
	}

	access, refresh, err := h.issueTokens(c, user)
	if err != nil {
		log.Printf("[auth][refresh][err] rotate for userID=%s: %v", user.ID, err)
		respondError(c, http.StatusInternalServerError, "Failed to generate tokens")
		return
	}
	log.Printf("[auth][refresh][ok] userID=%s", user.ID)
	respondData(c, http.StatusOK, gin.H{
		"token":        access,
		"refreshToken": refresh,
	})
}

// @Summary      Logout
// @Tags         Auth
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Security     BearerAuth
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	uid := currentUserID(c)
	if err := h.userService.ClearRefresh(c.Request.Context(), uid); err != nil {
		log.Printf("[auth][logout][err] userID=%s: %v", uid, err)
		respondError(c, http.StatusInternalServerError, "Failed to log out")
		return
	}
	respondDataMessage(c, http.StatusOK, gin.H{}, "Logged out")
}

// @Summary      Current user
// @Tags         Auth
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Security     BearerAuth
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	uid := currentUserID(c)
	user, err := h.userService.GetByID(c.Request.Context(), uid)
	if err != nil {
		serviceError(c, err)
		return
	}
	if user == nil {
		serviceError(c, models.ErrUserNotFound)
		return
	}
	respondData(c, http.StatusOK, user)
}
