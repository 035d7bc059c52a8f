package events

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	jwtsvc "squareinvoice/internal/pkg/jwt"
	"squareinvoice/internal/pkg/response"
)

type Handler struct {
	hub *Hub
	jwt *jwtsvc.Service
}

func NewHandler(hub *Hub, jwt *jwtsvc.Service) *Handler {
	return &Handler{hub: hub, jwt: jwt}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/admin/events", h.Stream)
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Stream upgrades the connection and keeps it registered until the client
// disconnects. Browsers cannot set headers on websocket dials, so the token
// travels in the query string.
func (h *Handler) Stream(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		response.Error(c, http.StatusUnauthorized, "VALIDATION_ERROR", "Missing token.")
		return
	}
	if _, err := h.jwt.ValidateToken(token); err != nil {
		response.Error(c, http.StatusUnauthorized, "VALIDATION_ERROR", "Invalid token.")
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	clientID := uuid.NewString()
	h.hub.Register(clientID, conn)
	defer h.hub.Unregister(clientID)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
