package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"inventory-server/auth"
	"inventory-server/ws"
)

// WSHandler owns the live audit feed. Each authenticated user keeps at most
// one connection; new audit entries are pushed as they are recorded.
type WSHandler struct {
	mgr *ws.Manager
}

func NewWSHandler(mgr *ws.Manager) *WSHandler {
	return &WSHandler{mgr: mgr}
}

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

// HandleAuditFeed upgrades to websocket and streams audit entries to the
// caller. The feed is push-only; inbound frames are drained and discarded so
// close handshakes still work.
// GET /ws/audit (token via Authorization header or ?token= query param)
func (h *WSHandler) HandleAuditFeed(c *gin.Context) {
	userID := auth.UserFromContext(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		slog.Error("websocket upgrade failed", "user_id", userID, "error", err)
		return
	}
	h.mgr.Register(userID, conn)
	slog.Info("audit feed opened", "user_id", userID)

	defer func() {
		h.mgr.Unregister(userID)
		slog.Info("audit feed closed", "user_id", userID)
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				slog.Debug("audit feed read error", "user_id", userID, "error", err)
			}
			return
		}
	}
}

// GetConnectedUsers GET /api/v1/ws/connected
func (h *WSHandler) GetConnectedUsers(c *gin.Context) {
	users := h.mgr.List()
	c.JSON(http.StatusOK, gin.H{"users": users, "count": len(users)})
}
