package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oy2/quicktalk/internal/pkg/chat/application/usecase"
	repository "github.com/oy2/quicktalk/internal/pkg/chat/persistence/repository/port"
)

// ListUsersController handles the contact-listing endpoint (one controller
// per endpoint).
type ListUsersController struct {
	UC *usecase.ListUsersUseCase
}

func NewListUsersController(users repository.UserRepository) *ListUsersController {
	return &ListUsersController{UC: usecase.NewListUsersUseCase(users)}
}

func (h *ListUsersController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		users, err := h.UC.Execute(ctx, CurrentUserID(c))
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status": "success",
			"users":  users,
		})
	}
}
