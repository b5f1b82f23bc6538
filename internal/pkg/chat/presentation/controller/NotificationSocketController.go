package controller

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/oy2/quicktalk/internal/infrastructure/realtime"
)

// NotificationSocketController upgrades clients to a websocket carrying
// their private new-message notifications. The socket is receive-only from
// the client's perspective; inbound frames only keep the connection alive.
type NotificationSocketController struct {
	router *realtime.Router
}

func NewNotificationSocketController(router *realtime.Router) *NotificationSocketController {
	return &NotificationSocketController{router: router}
}

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Identity comes from the upstream auth layer, not the origin.
		return true
	},
}

const readTimeout = 60 * time.Second

func (ctl *NotificationSocketController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := strconv.FormatInt(CurrentUserID(c), 10)

		ws, err := wsUpgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			// Upgrade already wrote the response.
			return
		}

		conn := realtime.NewConnection(userID, ws)
		ctl.router.Attach(conn)
		defer func() {
			ctl.router.Detach(conn)
			conn.Close(websocket.CloseNormalClosure, "session closed")
		}()

		ws.SetReadLimit(1 << 16)
		_ = ws.SetReadDeadline(time.Now().Add(readTimeout))
		ws.SetPongHandler(func(string) error {
			return ws.SetReadDeadline(time.Now().Add(readTimeout))
		})

		if payload, err := json.Marshal(gin.H{"type": "connected"}); err == nil {
			_ = conn.Send(payload)
		}

		// Drain inbound frames until the client goes away; any client
		// traffic besides ping/pong is ignored.
		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				return
			}
			_ = ws.SetReadDeadline(time.Now().Add(readTimeout))
		}
	}
}
