package handler

import (
	"encoding/json"
	"net/http"

	gorillaws "github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	ws "conflive/internal/infrastructure/websocket"
	"conflive/internal/usecase"
	"conflive/pkg/errors"
	"conflive/pkg/logger"
)

type WebSocketHandler struct {
	wsManager          *ws.Manager
	translationUseCase *usecase.LiveTranslationUseCase
}

var upgrader = gorillaws.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // You should restrict this in production
	},
}

func NewWebSocketHandler(wsManager *ws.Manager, translationUseCase *usecase.LiveTranslationUseCase) *WebSocketHandler {
	return &WebSocketHandler{
		wsManager:          wsManager,
		translationUseCase: translationUseCase,
	}
}

// HandleSessionState upgrades the connection and streams state snapshots of
// one translation session to the client, one JSON message per applied event.
func (h *WebSocketHandler) HandleSessionState(c echo.Context) error {
	session, err := h.translationUseCase.GetSession(c.Param("id"))
	if err != nil {
		return err
	}

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return errors.Internal("Failed to upgrade connection", err)
	}

	client := &ws.Client{
		SessionID: session.ID,
		Conn:      conn,
		Send:      make(chan []byte, 256),
	}

	h.wsManager.Register <- client

	go client.ReadPump(h.wsManager)
	go client.WritePump()

	subID, states := session.Subscribe()
	go func() {
		defer session.Unsubscribe(subID)
		for state := range states {
			payload, err := json.Marshal(state)
			if err != nil {
				logger.Error("Failed to encode session state: %v", err)
				continue
			}
			if !h.wsManager.SendToClient(client, payload) {
				return
			}
		}
		// Session closed; drop the watcher.
		h.wsManager.Unregister <- client
	}()

	// Initial snapshot so the client does not wait for the next event.
	if payload, err := json.Marshal(session.State()); err == nil {
		h.wsManager.SendToClient(client, payload)
	}

	return nil
}
