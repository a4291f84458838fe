package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/project-tracker-api/internal/dto"
	apierrors "github.com/yukikurage/project-tracker-api/internal/errors"
	"github.com/yukikurage/project-tracker-api/internal/middleware"
	"github.com/yukikurage/project-tracker-api/internal/models"
	"github.com/yukikurage/project-tracker-api/internal/services"
	"github.com/yukikurage/project-tracker-api/internal/utils"
)

// UserHandler coordinates admin user-management HTTP handlers.
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// ListUsers returns all users sorted by username.
func (h *UserHandler) ListUsers(c *gin.Context) {
	principal, exists := middleware.GetCurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	params := utils.GetPaginationParams(c)

	users, total, err := h.userService.ListUsers(principal, params)
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users": dto.ToUserDTOs(users),
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// EditUser updates a user's profile, identity, and role fields.
func (h *UserHandler) EditUser(c *gin.Context) {
	principal, exists := middleware.GetCurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	targetID, ok := parseUserID(c)
	if !ok {
		return
	}

	type EditUserRequest struct {
		Email     *string      `json:"email" binding:"omitempty,email,max=150"`
		Username  *string      `json:"username" binding:"omitempty,min=3,max=150"`
		Role      *models.Role `json:"role" binding:"omitempty,oneof=user admin"`
		FirstName *string      `json:"first_name" binding:"omitempty,max=150"`
		LastName  *string      `json:"last_name" binding:"omitempty,max=150"`
		Phone     *string      `json:"phone" binding:"omitempty,max=20"`
	}

	var req EditUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequestWithDetails(c, "Invalid request body", err.Error())
		return
	}

	user, err := h.userService.EditUser(principal, targetID, services.EditUserInput{
		Email:     req.Email,
		Username:  req.Username,
		Role:      req.Role,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
	})
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// DeleteUser removes a user and everything they own.
func (h *UserHandler) DeleteUser(c *gin.Context) {
	principal, exists := middleware.GetCurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	targetID, ok := parseUserID(c)
	if !ok {
		return
	}

	if err := h.userService.DeleteUser(principal, targetID); err != nil {
		if errors.Is(err, services.ErrSelfAction) {
			apierrors.SelfActionWarning(c, "You cannot delete your own account.")
			return
		}
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "User deleted successfully.",
	})
}

// ToggleRole flips a user's role between user and admin.
func (h *UserHandler) ToggleRole(c *gin.Context) {
	principal, exists := middleware.GetCurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	targetID, ok := parseUserID(c)
	if !ok {
		return
	}

	user, err := h.userService.ToggleRole(principal, targetID)
	if err != nil {
		if errors.Is(err, services.ErrSelfAction) {
			apierrors.SelfActionWarning(c, "You cannot change your own role.")
			return
		}
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

func parseUserID(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid user ID")
		return 0, false
	}
	return id, true
}

func respondUserError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrForbidden):
		apierrors.Forbidden(c, "")
	case errors.Is(err, services.ErrEmailTaken),
		errors.Is(err, services.ErrUsernameTaken):
		apierrors.Conflict(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
