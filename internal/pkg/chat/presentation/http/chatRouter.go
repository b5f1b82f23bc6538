package http

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	qport "github.com/oy2/quicktalk/internal/infrastructure/queue/port"
	"github.com/oy2/quicktalk/internal/infrastructure/realtime"
	"github.com/oy2/quicktalk/internal/pkg/chat/application/task"
	"github.com/oy2/quicktalk/internal/pkg/chat/persistence/repository/adapter"
	"github.com/oy2/quicktalk/internal/pkg/chat/presentation/controller"
)

// RegisterRoutes registers chat-related HTTP endpoints under the given
// router group. It constructs per-endpoint controllers and binds them
// directly to routes.
func RegisterRoutes(g *gin.RouterGroup, pool *pgxpool.Pool, client qport.Client, router *realtime.Router) {
	users := adapter.NewPgUserRepository(pool)
	convs := adapter.NewPgConversationRepository(pool)
	msgs := adapter.NewPgMessageRepository(pool)
	notifier := task.NewAsyncPublisher(client)

	listUsersCtl := controller.NewListUsersController(users)
	listConvsCtl := controller.NewListConversationsController(convs, msgs)
	getConvCtl := controller.NewGetConversationController(convs)
	listMsgsCtl := controller.NewListMessagesController(convs, msgs)
	createConvCtl := controller.NewCreateConversationController(users, convs, notifier)
	sendMsgCtl := controller.NewSendMessageController(convs, msgs, notifier)
	socketCtl := controller.NewNotificationSocketController(router)

	auth := g.Group("", RequireUser())

	auth.GET("/users", listUsersCtl.Handle())
	auth.GET("/conversations", listConvsCtl.Handle())
	auth.GET("/conversation/:conversationId", getConvCtl.Handle())
	auth.POST("/conversation", createConvCtl.Handle())
	auth.GET("/messages/:conversationId", listMsgsCtl.Handle())
	auth.POST("/message", sendMsgCtl.Handle())
	auth.GET("/notifications/ws", socketCtl.Handle())
}
