package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/sodo-hospital/admin-api/internal/constants"
	"github.com/sodo-hospital/admin-api/internal/dto"
	apierrors "github.com/sodo-hospital/admin-api/internal/errors"
	"github.com/sodo-hospital/admin-api/internal/middleware"
	"github.com/sodo-hospital/admin-api/internal/services"
)

// UserHandler coordinates user and session HTTP handlers.
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// CreateUser registers a staff member.
func (h *UserHandler) CreateUser(c *gin.Context) {
	type CreateUserRequest struct {
		Name            string `json:"name" binding:"required"`
		Email           string `json:"email" binding:"required,email"`
		AvatarURL       string `json:"avatar_url"`
		TokenIdentifier string `json:"token_identifier" binding:"required"`
	}

	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.userService.CreateUser(services.CreateUserInput{
		Name:            req.Name,
		Email:           req.Email,
		AvatarURL:       req.AvatarURL,
		TokenIdentifier: req.TokenIdentifier,
	})
	if err != nil {
		if errors.Is(err, services.ErrUserAlreadyExists) {
			apierrors.Conflict(c, err.Error())
			return
		}
		apierrors.InternalError(c, "Failed to create user")
		return
	}

	c.JSON(http.StatusCreated, dto.ToUserDTO(*user))
}

// ListUsers returns every staff member.
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.userService.ListUsers()
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch users")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users": dto.ToUserDTOs(users),
	})
}

// GetUser returns one staff member by id.
func (h *UserHandler) GetUser(c *gin.Context) {
	userID, ok := parseID(c)
	if !ok {
		return
	}

	user, err := h.userService.GetUser(userID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			apierrors.NotFound(c, "User not found")
			return
		}
		apierrors.InternalError(c, "Failed to fetch user")
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// Identify resolves a token identifier to a user and starts a session.
func (h *UserHandler) Identify(c *gin.Context) {
	type IdentifyRequest struct {
		TokenIdentifier string `json:"token_identifier" binding:"required"`
	}

	var req IdentifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.userService.Identify(req.TokenIdentifier)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			apierrors.Unauthorized(c, "Unknown token identifier")
			return
		}
		apierrors.InternalError(c, "Failed to identify user")
		return
	}

	session := sessions.Default(c)
	session.Set(constants.ContextKeyUserID, user.ID)
	if err := session.Save(); err != nil {
		apierrors.InternalError(c, "Failed to save session")
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// Me returns the user behind the current session.
func (h *UserHandler) Me(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	user, err := h.userService.GetUser(userID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			apierrors.Unauthorized(c, "Session user no longer exists")
			return
		}
		apierrors.InternalError(c, "Failed to fetch user")
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// Logout clears the session.
func (h *UserHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		apierrors.InternalError(c, "Failed to logout")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Logged out successfully",
	})
}
