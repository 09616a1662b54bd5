package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"conflive/internal/usecase"
)

type HealthHandler struct {
	translationUseCase *usecase.LiveTranslationUseCase
}

func NewHealthHandler(translationUseCase *usecase.LiveTranslationUseCase) *HealthHandler {
	return &HealthHandler{
		translationUseCase: translationUseCase,
	}
}

func (h *HealthHandler) CheckHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":        "Server is running",
		"time":          time.Now().Format(time.RFC3339),
		"live_sessions": h.translationUseCase.SessionCount(),
	})
}
