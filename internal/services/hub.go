package services

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"activity-hub/internal/events"
	"activity-hub/internal/view"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	sendBufferSize = 64
)

// Hub keeps the websocket connections of the attached activity page,
// broadcasts view directives out and dispatches inbound page events onto
// the bus. It implements view.Broadcaster.
type Hub struct {
	bus *events.Bus

	clients    map[string]*client
	broadcast  chan view.Directive
	register   chan *client
	unregister chan *client
}

type client struct {
	id   string
	conn *websocket.Conn
	send chan view.Directive
}

// NewHub creates a hub dispatching page events onto bus
func NewHub(bus *events.Bus) *Hub {
	return &Hub{
		bus:        bus,
		clients:    make(map[string]*client),
		broadcast:  make(chan view.Directive, sendBufferSize),
		register:   make(chan *client),
		unregister: make(chan *client),
	}
}

// Run processes registrations and broadcasts. Intended as `go hub.Run()`.
func (h *Hub) Run() {
	for {
		select {
		case c := <-h.register:
			h.clients[c.id] = c
			log.Info().Str("client", c.id).Int("clients", len(h.clients)).Msg("page connected")

		case c := <-h.unregister:
			if _, ok := h.clients[c.id]; ok {
				delete(h.clients, c.id)
				close(c.send)
				log.Info().Str("client", c.id).Int("clients", len(h.clients)).Msg("page disconnected")
			}

		case d := <-h.broadcast:
			for id, c := range h.clients {
				select {
				case c.send <- d:
				default:
					// slow consumer, drop it
					delete(h.clients, id)
					close(c.send)
					log.Warn().Str("client", id).Msg("dropping slow page connection")
				}
			}
		}
	}
}

// Broadcast queues a directive for every attached connection
func (h *Hub) Broadcast(d view.Directive) {
	h.broadcast <- d
}

// HandleConnection registers a websocket connection and pumps it until it
// closes. Blocks for the lifetime of the connection.
func (h *Hub) HandleConnection(conn *websocket.Conn) {
	c := &client{
		id:   uuid.NewString(),
		conn: conn,
		send: make(chan view.Directive, sendBufferSize),
	}
	h.register <- c

	go c.writePump()
	c.readPump(h)
}

func (c *client) readPump(h *Hub) {
	defer func() {
		h.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn().Err(err).Str("client", c.id).Msg("websocket read error")
			}
			return
		}

		var ev events.Event
		if err := json.Unmarshal(data, &ev); err != nil {
			log.Warn().Err(err).Str("client", c.id).Msg("ignoring malformed page event")
			continue
		}
		if ev.Kind == "" {
			continue
		}
		h.bus.Dispatch(ev)
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
		case d, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(d); err != nil {
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
