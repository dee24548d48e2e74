package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"catering-backend/auth"
	"catering-backend/logging"
	"catering-backend/realtime"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Cross-origin policy is enforced by the CORS layer; the websocket
	// handshake itself accepts any origin.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// serveWS upgrades the connection and joins the caller to its channels.
// Admin tokens join the admin channel, customer tokens their own channel.
// Tokens arrive as a query parameter because browsers cannot set websocket
// headers.
func (s *Server) serveWS(c *gin.Context) {
	token := bearerToken(c)
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
		return
	}
	claims, err := s.tokens.Validate(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}

	var channel string
	switch claims.Role {
	case auth.RoleAdmin:
		channel = realtime.AdminChannel
	case auth.RoleCustomer:
		channel = realtime.CustomerChannel(claims.CustomerID)
	default:
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logging.L().Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	sub := s.hub.Register(conn, channel)

	// Drain the connection until the client goes away. Inbound messages are
	// ignored; the socket is push-only.
	go func() {
		defer func() {
			sub.Close()
			conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
