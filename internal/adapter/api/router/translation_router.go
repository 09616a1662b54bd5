package router

import (
	"github.com/labstack/echo/v4"

	"conflive/internal/adapter/api/handler"
)

// SetupTranslationRouter wires the live-translation session endpoints and
// the per-session state WebSocket.
func SetupTranslationRouter(e *echo.Echo, translationHandler *handler.TranslationHandler, wsHandler *handler.WebSocketHandler) {
	group := e.Group("/v1/translation")

	group.GET("/room-page", translationHandler.GetRoomPage)

	group.POST("/sessions", translationHandler.CreateSession)
	group.GET("/sessions/:id", translationHandler.GetSession)
	group.DELETE("/sessions/:id", translationHandler.CloseSession)

	group.POST("/sessions/:id/connect", translationHandler.ConnectStream)
	group.POST("/sessions/:id/disconnect", translationHandler.DisconnectStream)
	group.POST("/sessions/:id/language", translationHandler.ChangeLanguage)
	group.POST("/sessions/:id/sheet", translationHandler.SetLanguageSheet)

	e.GET("/ws/translation/:id", wsHandler.HandleSessionState)
}
