package handlers

import (
	"log"
	"net/http"

	"github.com/campuscup/intramurals/live"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// В продакшене здесь должна быть проверка Origin.
		return true
	},
}

type WebSocketHandler struct {
	hub *live.Hub
}

func NewWebSocketHandler(hub *live.Hub) *WebSocketHandler {
	return &WebSocketHandler{hub: hub}
}

// ServeWs подписывает клиента на события подсчёта сезона.
// Подключение: GET /ws/seasons/{year}.
func (h *WebSocketHandler) ServeWs(w http.ResponseWriter, r *http.Request) {
	year := chi.URLParam(r, "year")
	if year == "" {
		http.Error(w, "Missing year", http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// upgrader сам отвечает клиенту HTTP-ошибкой.
		log.Printf("live: failed to upgrade connection for season %s: %v", year, err)
		return
	}

	client := &live.Client{
		Hub:  h.hub,
		Conn: conn,
		Send: make(chan []byte, 256),
		Room: "season_" + year,
	}
	client.Hub.Register <- client

	go client.WritePump()
	go client.ReadPump()
}
