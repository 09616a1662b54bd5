package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"conflive/internal/usecase"
	"conflive/pkg/response"
)

type ContentHandler struct {
	contentUseCase *usecase.ContentUseCase
	defaultLocale  string
}

func NewContentHandler(contentUseCase *usecase.ContentUseCase, defaultLocale string) *ContentHandler {
	return &ContentHandler{
		contentUseCase: contentUseCase,
		defaultLocale:  defaultLocale,
	}
}

func (h *ContentHandler) locale(c echo.Context) string {
	if locale := c.QueryParam("locale"); locale != "" {
		return locale
	}
	return h.defaultLocale
}

func (h *ContentHandler) GetSchedules(c echo.Context) error {
	day := 0
	if raw := c.QueryParam("day"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err == nil {
			day = parsed
		}
	}

	sessions, err := h.contentUseCase.GetSchedules(c.Request().Context(), day, h.locale(c))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, sessions)
}

func (h *ContentHandler) GetSpeakers(c echo.Context) error {
	speakers, err := h.contentUseCase.GetSpeakers(c.Request().Context(), h.locale(c))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, speakers)
}

func (h *ContentHandler) GetSponsors(c echo.Context) error {
	sponsors, err := h.contentUseCase.GetSponsors(c.Request().Context())
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, sponsors)
}

func (h *ContentHandler) GetStaffs(c echo.Context) error {
	staffs, err := h.contentUseCase.GetStaffs(c.Request().Context())
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, staffs)
}

func (h *ContentHandler) GetLinks(c echo.Context) error {
	links, err := h.contentUseCase.GetLinks(c.Request().Context())
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, links)
}
