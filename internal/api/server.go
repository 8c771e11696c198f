// Package api exposes the progression store over HTTP and pushes
// achievement events to connected clients over WebSocket.
package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/wegmarke/wegmarke/internal/config"
	"github.com/wegmarke/wegmarke/internal/logger"
	"github.com/wegmarke/wegmarke/internal/quest"
)

// Server wires the progression store to the HTTP surface.
type Server struct {
	store    *quest.Store
	router   *mux.Router
	hub      *Hub
	upgrader websocket.Upgrader
}

// NewServer builds the server, registers routes, starts the hub, and
// subscribes the hub to the store's achievement events.
func NewServer(store *quest.Store, cfg *config.ServerConfig) *Server {
	hub := NewHub()

	s := &Server{
		store:  store,
		router: mux.NewRouter(),
		hub:    hub,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" {
					return true
				}
				return cfg.IsOriginAllowed(origin)
			},
		},
	}

	s.setupRoutes()
	go hub.Run()

	store.OnAchievementUnlocked(func() {
		hub.Broadcast("achievement_unlocked", map[string]any{
			"completedQuests": store.CompletedQuestCount(),
		})
	})

	return s
}

// Router returns the HTTP handler for the server.
func (s *Server) Router() http.Handler {
	return s.router
}

func (s *Server) setupRoutes() {
	api := s.router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/areas", s.handleGetAreas).Methods("GET")
	api.HandleFunc("/areas/{areaId}", s.handleGetArea).Methods("GET")
	api.HandleFunc("/markers", s.handleGetMarkers).Methods("GET")
	api.HandleFunc("/stats", s.handleGetStats).Methods("GET")
	api.HandleFunc("/areas/{areaId}/main/complete", s.handleCompleteMain).Methods("POST")
	api.HandleFunc("/areas/{areaId}/quests/{questId}/complete", s.handleCompleteSub).Methods("POST")
	api.HandleFunc("/areas/{areaId}/quests/{questId}/solve", s.handleSolve).Methods("POST")
	api.HandleFunc("/achievements/ack", s.handleAckAchievements).Methods("POST")

	s.router.HandleFunc("/ws", s.handleWebSocket)
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Warning("WebSocket upgrade failed", "error", err)
		return
	}

	client := &Client{
		hub:  s.hub,
		conn: conn,
		send: make(chan []byte, 256),
	}
	client.hub.register <- client

	go client.writePump()
	go client.readPump()
}
