package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	nport "github.com/oy2/quicktalk/internal/infrastructure/notify/port"
	"github.com/oy2/quicktalk/internal/pkg/chat/application/usecase"
	repository "github.com/oy2/quicktalk/internal/pkg/chat/persistence/repository/port"
)

// CreateConversationController handles opening a conversation with another
// user. Calling it again for the same pair returns the existing thread.
type CreateConversationController struct {
	UC *usecase.CreateConversationUseCase
}

func NewCreateConversationController(users repository.UserRepository, convs repository.ConversationRepository, notifier nport.Publisher) *CreateConversationController {
	return &CreateConversationController{UC: usecase.NewCreateConversationUseCase(users, convs, notifier)}
}

type createConversationRequest struct {
	ReceiverID int64 `json:"receiver_id" binding:"required"`
}

func (h *CreateConversationController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createConversationRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"status": "error", "message": "receiver_id is required"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		out, err := h.UC.Execute(ctx, CurrentUserID(c), req.ReceiverID)
		if err != nil {
			respondError(c, err)
			return
		}

		status := http.StatusOK
		if out.Created {
			status = http.StatusCreated
		}
		c.JSON(status, gin.H{
			"status":       "success",
			"conversation": conversationJSON(out.Conversation, out.Participants),
		})
	}
}
