package controller

import (
	"net/http"

	apperrors "github.com/adiprakosa/kasirpos/internal/errors"
	"github.com/adiprakosa/kasirpos/internal/middleware"
	ws "github.com/adiprakosa/kasirpos/internal/websocket"
	"github.com/gorilla/websocket"
	"github.com/gin-gonic/gin"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Registers and dashboards run on the store LAN
		return true
	},
}

type OrderFeedController struct {
	hub *ws.Hub
}

func NewOrderFeedController(hub *ws.Hub) *OrderFeedController {
	return &OrderFeedController{hub: hub}
}

// Connect upgrades to a websocket and subscribes to created orders
// GET /api/v1/ws/orders
func (ctrl *OrderFeedController) Connect(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error("Failed to upgrade to WebSocket", err)
		return
	}

	client := &ws.Client{
		Hub:    ctrl.hub,
		Conn:   &ws.Conn{Conn: conn},
		UserID: userID,
		Send:   make(chan []byte, 256),
	}

	ctrl.hub.Register(client)

	go client.WritePump()
	go client.ReadPump()

	log.Info("Order feed connection established", map[string]interface{}{
		"user_id": userID,
	})
}
