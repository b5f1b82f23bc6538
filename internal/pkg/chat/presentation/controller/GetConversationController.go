package controller

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oy2/quicktalk/internal/pkg/chat/application/usecase"
	repository "github.com/oy2/quicktalk/internal/pkg/chat/persistence/repository/port"
)

// GetConversationController handles fetching a single conversation.
type GetConversationController struct {
	UC *usecase.GetConversationUseCase
}

func NewGetConversationController(convs repository.ConversationRepository) *GetConversationController {
	return &GetConversationController{UC: usecase.NewGetConversationUseCase(convs)}
}

func (h *GetConversationController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		conversationID, err := strconv.ParseInt(c.Param("conversationId"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "conversationId must be an integer"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		detail, err := h.UC.Execute(ctx, CurrentUserID(c), conversationID)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":       "success",
			"conversation": conversationJSON(detail.Conversation, detail.Participants),
		})
	}
}
