package router

import (
	"github.com/labstack/echo/v4"

	"conflive/internal/adapter/api/handler"
)

func Setup(
	e *echo.Echo,
	healthHandler *handler.HealthHandler,
	contentHandler *handler.ContentHandler,
	translationHandler *handler.TranslationHandler,
	wsHandler *handler.WebSocketHandler,
) {
	SetupHealthRouter(e, healthHandler)
	SetupContentRouter(e, contentHandler)
	SetupTranslationRouter(e, translationHandler, wsHandler)
}
