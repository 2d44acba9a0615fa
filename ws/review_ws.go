package ws

import (
	"log"
	"net/http"
	"strconv"
	"sync"
	"time"

	"grestaurants/pkg/metrics"
	"grestaurants/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
	queueSize  = 64
)

// ReviewHub fans review events out to websocket subscribers of each restaurant.
type ReviewHub struct {
	clients    map[uint]map[*client]bool // restaurantID -> subscribers
	broadcast  chan services.ReviewEvent
	register   chan *client
	unregister chan *client
	mu         sync.Mutex
	done       chan struct{}
}

type client struct {
	conn         *websocket.Conn
	restaurantID uint
	send         chan services.ReviewEvent
}

func NewReviewHub() *ReviewHub {
	return &ReviewHub{
		clients:    make(map[uint]map[*client]bool),
		broadcast:  make(chan services.ReviewEvent, queueSize),
		register:   make(chan *client),
		unregister: make(chan *client),
		done:       make(chan struct{}),
	}
}

// Run serves register/unregister/broadcast until Stop is called.
func (h *ReviewHub) Run() {
	for {
		select {
		case cl := <-h.register:
			h.mu.Lock()
			if h.clients[cl.restaurantID] == nil {
				h.clients[cl.restaurantID] = make(map[*client]bool)
			}
			h.clients[cl.restaurantID][cl] = true
			h.mu.Unlock()
			metrics.LiveSubscribers.Inc()

		case cl := <-h.unregister:
			h.mu.Lock()
			h.drop(cl)
			h.mu.Unlock()

		case ev := <-h.broadcast:
			h.mu.Lock()
			for cl := range h.clients[ev.RestaurantID] {
				select {
				case cl.send <- ev:
				default:
					// slow reader
					h.drop(cl)
				}
			}
			h.mu.Unlock()

		case <-h.done:
			h.mu.Lock()
			for _, set := range h.clients {
				for cl := range set {
					h.drop(cl)
				}
			}
			h.mu.Unlock()
			return
		}
	}
}

func (h *ReviewHub) Stop() { close(h.done) }

// drop must be called with mu held.
func (h *ReviewHub) drop(cl *client) {
	set := h.clients[cl.restaurantID]
	if _, ok := set[cl]; !ok {
		return
	}
	delete(set, cl)
	if len(set) == 0 {
		delete(h.clients, cl.restaurantID)
	}
	close(cl.send)
	metrics.LiveSubscribers.Dec()
}

// Subscribers reports how many connections follow a restaurant.
func (h *ReviewHub) Subscribers(restaurantID uint) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients[restaurantID])
}

// Publish never blocks; events are dropped when the queue is full.
func (h *ReviewHub) Publish(ev services.ReviewEvent) {
	select {
	case h.broadcast <- ev:
	default:
		log.Printf("ws review feed full, dropping %s event for restaurant %d", ev.Type, ev.RestaurantID)
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WS route: /ws/restaurants/:id/reviews
func (h *ReviewHub) HandleWebSocket(c *gin.Context) {
	n, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || n == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid restaurant id"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("ws upgrade error: %v", err)
		return
	}

	cl := &client{conn: conn, restaurantID: uint(n), send: make(chan services.ReviewEvent, queueSize)}
	select {
	case h.register <- cl:
	case <-h.done:
		conn.Close()
		return
	}

	go h.writeEvents(cl)
	go h.readUntilClosed(cl)
}

func (h *ReviewHub) writeEvents(cl *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		cl.conn.Close()
	}()

	for {
		select {
		case ev, ok := <-cl.send:
			cl.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				cl.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := cl.conn.WriteJSON(ev); err != nil {
				log.Printf("ws write error: %v", err)
				return
			}
		case <-ticker.C:
			cl.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := cl.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// the feed is one-way; reads only detect the close
func (h *ReviewHub) readUntilClosed(cl *client) {
	defer func() {
		select {
		case h.unregister <- cl:
		case <-h.done:
		}
	}()

	cl.conn.SetReadDeadline(time.Now().Add(pongWait))
	cl.conn.SetPongHandler(func(string) error {
		cl.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		if _, _, err := cl.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("ws read error: %v", err)
			}
			return
		}
	}
}
