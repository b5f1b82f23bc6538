package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	qport "github.com/oy2/quicktalk/internal/infrastructure/queue/port"
	"github.com/oy2/quicktalk/internal/infrastructure/realtime"
	httpHandler "github.com/oy2/quicktalk/internal/pkg/chat/presentation/http"
)

// RegisterRoutes mounts all version 1 API routes under /api/v1
func RegisterRoutes(r *gin.Engine, pool *pgxpool.Pool, client qport.Client, router *realtime.Router) {
	v1 := r.Group("/api/v1")
	httpHandler.RegisterRoutes(v1, pool, client, router)
}
