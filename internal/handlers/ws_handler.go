package handlers

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"activity-hub/internal/activity"
	"activity-hub/internal/services"
)

// WebSocketHandler upgrades page connections and attaches them to the hub
type WebSocketHandler struct {
	hub        *services.Hub
	controller *activity.Controller
	upgrader   websocket.Upgrader
}

// NewWebSocketHandler creates a new websocket handler
func NewWebSocketHandler(hub *services.Hub, controller *activity.Controller) *WebSocketHandler {
	return &WebSocketHandler{
		hub:        hub,
		controller: controller,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// activity pages are served from the same box
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// ServeWS handles the websocket endpoint
// GET /ws?activity={name}
func (wh *WebSocketHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := wh.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	// A page announcing an activity name (re-)initializes the layer for it.
	if name := r.URL.Query().Get("activity"); name != "" {
		wh.controller.Init(r.Context(), name)
	}

	wh.hub.HandleConnection(conn)
}
