package handler

import (
	"github.com/labstack/echo/v4"

	"conflive/internal/usecase"
	"conflive/pkg/response"
)

type TranslationHandler struct {
	translationUseCase *usecase.LiveTranslationUseCase
}

func NewTranslationHandler(translationUseCase *usecase.LiveTranslationUseCase) *TranslationHandler {
	return &TranslationHandler{
		translationUseCase: translationUseCase,
	}
}

type createSessionRequest struct {
	PreferredLocale string `json:"preferred_locale"`
}

type changeLanguageRequest struct {
	LangCode string `json:"lang_code" validate:"required"`
}

type languageSheetRequest struct {
	Visible bool `json:"visible"`
}

type sessionResponse struct {
	SessionID string               `json:"session_id"`
	State     usecase.SessionState `json:"state"`
}

// CreateSession starts a live-translation session for the calling client and
// kicks off its initial load.
func (h *TranslationHandler) CreateSession(c echo.Context) error {
	var req createSessionRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	session, err := h.translationUseCase.CreateSession(c.Request().Context(), c.RealIP(), req.PreferredLocale)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, sessionResponse{
		SessionID: session.ID,
		State:     session.State(),
	})
}

// GetSession returns the current state snapshot of a session.
func (h *TranslationHandler) GetSession(c echo.Context) error {
	session, err := h.translationUseCase.GetSession(c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, sessionResponse{
		SessionID: session.ID,
		State:     session.State(),
	})
}

func (h *TranslationHandler) CloseSession(c echo.Context) error {
	if err := h.translationUseCase.CloseSession(c.Param("id")); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]string{"status": "closed"})
}

func (h *TranslationHandler) ConnectStream(c echo.Context) error {
	session, err := h.translationUseCase.GetSession(c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	session.ConnectStream()
	return response.Success(c, map[string]string{"status": "connecting"})
}

func (h *TranslationHandler) DisconnectStream(c echo.Context) error {
	session, err := h.translationUseCase.GetSession(c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	session.DisconnectStream()
	return response.Success(c, map[string]string{"status": "disconnected"})
}

// ChangeLanguage switches the session's target language. The chat timeline
// is cleared and the stream reconnected by the coordinator.
func (h *TranslationHandler) ChangeLanguage(c echo.Context) error {
	var req changeLanguageRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	if err := h.translationUseCase.ChangeLanguage(c.RealIP(), c.Param("id"), req.LangCode); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]string{"selected_lang_code": req.LangCode})
}

func (h *TranslationHandler) SetLanguageSheet(c echo.Context) error {
	var req languageSheetRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	session, err := h.translationUseCase.GetSession(c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	if req.Visible {
		session.ShowLanguageSheet()
	} else {
		session.HideLanguageSheet()
	}
	return response.Success(c, map[string]bool{"visible": req.Visible})
}

// GetRoomPage returns the external chat web page URL for the configured room.
func (h *TranslationHandler) GetRoomPage(c echo.Context) error {
	return response.Success(c, map[string]string{"url": h.translationUseCase.RoomPageURL()})
}
