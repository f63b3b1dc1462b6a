package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sodo-hospital/admin-api/internal/constants"
	apierrors "github.com/sodo-hospital/admin-api/internal/errors"
	"github.com/sodo-hospital/admin-api/internal/services"
)

// ChatHandler proxies dashboard chat conversations to the assistant backend.
type ChatHandler struct {
	chatService *services.ChatService
}

// NewChatHandler creates a new ChatHandler. chatService may be nil when no
// API key is configured; the endpoint then answers 503.
func NewChatHandler(chatService *services.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

// Chat sends the conversation to the assistant and returns its reply.
func (h *ChatHandler) Chat(c *gin.Context) {
	if h.chatService == nil {
		apierrors.ServiceUnavailable(c, "Chat assistant is not configured. Please set OPENAI_API_KEY.")
		return
	}

	type ChatRequest struct {
		Messages []services.ChatMessage `json:"messages" binding:"required,min=1,dive"`
	}

	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}
	if len(req.Messages) > constants.MaxChatMessages {
		apierrors.BadRequest(c, "Conversation is too long")
		return
	}

	reply, err := h.chatService.Complete(c.Request.Context(), req.Messages)
	if err != nil {
		if errors.Is(err, services.ErrChatUnavailable) {
			apierrors.ServiceUnavailable(c, "")
			return
		}
		apierrors.InternalError(c, "Failed to generate a reply")
		return
	}

	c.JSON(http.StatusOK, gin.H{"reply": reply})
}
