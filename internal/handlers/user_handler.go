package handlers

import (
	"log"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin"

	"taskhub/internal/models"
	"taskhub/internal/services"
)

type UserHandler struct {
	userService services.UserService
}

func NewUserHandler(userService services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// @Summary      Get profile
// @Tags         Users
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Security     BearerAuth
// @Router       /api/users/profile [get]
func (h *UserHandler) GetProfile(c *gin.Context) {
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

type updateProfileRequest struct {
	Name           *string `json:"name"`
	Email          *string `json:"email"`
	TelegramChatID *int64  `json:"telegramChatId"`
	NotifyTelegram *bool   `json:"notifyTelegram"`
}

// @Summary      Update profile
// @Description  Partial update of name/email and notification settings
// @Tags         Users
// @Accept       json
// @Produce      json
// @Param        body  body      updateProfileRequest  true  "Fields to change"
// @Success      200   {object}  map[string]interface{}
// @Failure      400   {object}  map[string]interface{}
// @Security     BearerAuth
// @Router       /api/users/profile [put]
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	uid := currentUserID(c)

	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	var errs []models.FieldError
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if n := utf8.RuneCountInString(name); n < 2 || n > 50 {
			errs = append(errs, models.FieldError{Field: "name", Message: "Name must be between 2 and 50 characters"})
		}
	}
	if req.Email != nil {
		errs = append(errs, validateEmailField(*req.Email, true)...)
	}
	if len(errs) > 0 {
		respondValidation(c, errs)
		return
	}

	user, err := h.userService.UpdateProfile(c.Request.Context(), uid, services.ProfileUpdate{
		Name:           req.Name,
		Email:          req.Email,
		TelegramChatID: req.TelegramChatID,
		NotifyTelegram: req.NotifyTelegram,
	})
	if err != nil {
		log.Printf("[user][profile][err] userID=%s: %v", uid, err)
		serviceError(c, err)
		return
	}
	respondDataMessage(c, http.StatusOK, user, "Profile updated successfully")
}

type updatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// @Summary      Change password
// @Tags         Users
// @Accept       json
// @Produce      json
// @Param        body  body      updatePasswordRequest  true  "Current and new password"
// @Success      200   {object}  map[string]interface{}
// @Failure      401   {object}  map[string]interface{}
// @Security     BearerAuth
// @Router       /api/users/password [put]
func (h *UserHandler) UpdatePassword(c *gin.Context) {
	uid := currentUserID(c)

	var req updatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	var errs []models.FieldError
	if req.CurrentPassword == "" {
		errs = append(errs, models.FieldError{Field: "currentPassword", Message: "Current password is required"})
	}
	if len(req.NewPassword) < 6 {
		errs = append(errs, models.FieldError{Field: "newPassword", Message: "Password must be at least 6 characters"})
	}
	if len(errs) > 0 {
		respondValidation(c, errs)
		return
	}

	if err := h.userService.UpdatePassword(c.Request.Context(), uid, req.CurrentPassword, req.NewPassword); err != nil {
		log.Printf("[user][password][err] userID=%s: %v", uid, err)
		serviceError(c, err)
		return
	}
	respondDataMessage(c, http.StatusOK, gin.H{}, "Password updated successfully")
}
