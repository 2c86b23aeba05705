package notifier

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/neighborly/forum/internal/utils"
	"github.com/neighborly/forum/pkg/logger"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4 * 1024
	sendQueueSize  = 64
)

// Hub is the process-wide fan-out registry. Every connected client
// receives every event; there is no per-user filtering and no replay.
// Delivery is best-effort: a client whose send queue is full loses the
// event, other clients and the publisher are unaffected.
type Hub struct {
	broker  Broker
	clients map[*client]struct{}
	mu      sync.RWMutex
}

type client struct {
	conn     *websocket.Conn
	send     chan []byte
	username string
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // add origin check in production
	},
}

func NewHub(broker Broker) *Hub {
	return &Hub{
		broker:  broker,
		clients: make(map[*client]struct{}),
	}
}

// Run consumes the broker subscription and broadcasts each payload to
// every connected client. Blocks until the broker channel closes.
func (h *Hub) Run() error {
	events, err := h.broker.Subscribe()
	if err != nil {
		return err
	}

	for payload := range events {
		h.broadcast(payload)
	}
	return nil
}

func (h *Hub) broadcast(payload []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.clients {
		select {
		case c.send <- payload:
		default:
			// Slow consumer: drop the event for this client only.
			logger.Log.Warn("Dropping event for slow websocket client",
				zap.String("username", c.username),
			)
		}
	}
}

// ClientCount reports the current number of subscribers.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// HandleWebSocket upgrades an authenticated request and ties the
// subscription to the connection lifetime.
func (h *Hub) HandleWebSocket(c *gin.Context) {
	claimsValue, exists := c.Get("claims")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}
	claims := claimsValue.(*utils.Claims)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Log.Warn("Failed to upgrade websocket connection",
			zap.Error(err),
		)
		return
	}

	cl := &client{
		conn:     conn,
		send:     make(chan []byte, sendQueueSize),
		username: claims.Username,
	}

	h.subscribe(cl)

	go cl.writePump()
	cl.readPump(h)
}

func (h *Hub) subscribe(cl *client) {
	h.mu.Lock()
	h.clients[cl] = struct{}{}
	total := len(h.clients)
	h.mu.Unlock()

	logger.Log.Info("Websocket client connected",
		zap.String("username", cl.username),
		zap.Int("total", total),
	)
}

func (h *Hub) unsubscribe(cl *client) {
	h.mu.Lock()
	_, exists := h.clients[cl]
	if exists {
		delete(h.clients, cl)
		close(cl.send)
	}
	total := len(h.clients)
	h.mu.Unlock()

	if exists {
		cl.conn.Close()
		logger.Log.Info("Websocket client disconnected",
			zap.String("username", cl.username),
			zap.Int("remaining", total),
		)
	}
}

// readPump drains inbound frames. Clients never send commands on this
// socket, reading only detects disconnects and answers pings.
func (c *client) readPump(h *Hub) {
	defer h.unsubscribe(c)

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Log.Debug("Websocket read error",
					zap.String("username", c.username),
					zap.Error(err),
				)
			}
			return
		}
	}
}

func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case payload, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
