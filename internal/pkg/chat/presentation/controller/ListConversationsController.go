package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oy2/quicktalk/internal/pkg/chat/application/usecase"
	repository "github.com/oy2/quicktalk/internal/pkg/chat/persistence/repository/port"
)

// ListConversationsController handles the conversation overview endpoint.
type ListConversationsController struct {
	UC *usecase.ListConversationsUseCase
}

func NewListConversationsController(convs repository.ConversationRepository, msgs repository.MessageRepository) *ListConversationsController {
	return &ListConversationsController{UC: usecase.NewListConversationsUseCase(convs, msgs)}
}

func (h *ListConversationsController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		summaries, err := h.UC.Execute(ctx, CurrentUserID(c))
		if err != nil {
			respondError(c, err)
			return
		}

		out := make([]gin.H, 0, len(summaries))
		for _, s := range summaries {
			entry := conversationJSON(s.Conversation, s.Participants)
			entry["unread"] = s.Unread
			if s.LastMessage != nil {
				entry["last_message"] = messageJSON(*s.LastMessage)
			} else {
				entry["last_message"] = nil
			}
			out = append(out, entry)
		}

		c.JSON(http.StatusOK, gin.H{
			"status":        "success",
			"conversations": out,
		})
	}
}
