package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
)

// SetupRoutes wires all HTTP and websocket routes
func SetupRoutes(
	wsHandler *WebSocketHandler,
	rosterHandler *RosterHandler,
	settingsHandler *SettingsHandler,
	dataHandler *ActivityDataHandler,
	soundHandler *SoundHandler,
) *mux.Router {
	router := mux.NewRouter()

	// WebSocket endpoint for attached pages
	router.HandleFunc("/ws", wsHandler.ServeWS)

	// API routes
	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/roster", rosterHandler.GetRoster).Methods("GET")
	api.HandleFunc("/settings", settingsHandler.GetSettings).Methods("GET")
	api.HandleFunc("/settings", settingsHandler.UpdateSettings).Methods("PUT", "POST")
	api.HandleFunc("/activity/{name}/data", dataHandler.ListKeys).Methods("GET")
	api.HandleFunc("/activity/{name}/data/{key}", dataHandler.GetData).Methods("GET")
	api.HandleFunc("/activity/{name}/data/{key}", dataHandler.PutData).Methods("PUT", "POST")
	api.HandleFunc("/activity/{name}/data/{key}", dataHandler.DeleteData).Methods("DELETE")

	// Sound assets
	router.HandleFunc("/sounds/{name}", soundHandler.GetSound).Methods("GET")

	// Liveness
	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	}).Methods("GET")

	return router
}
