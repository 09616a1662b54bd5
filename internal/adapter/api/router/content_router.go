package router

import (
	"github.com/labstack/echo/v4"

	"conflive/internal/adapter/api/handler"
)

// SetupContentRouter wires the conference-content endpoints.
func SetupContentRouter(e *echo.Echo, contentHandler *handler.ContentHandler) {
	v1 := e.Group("/v1")

	v1.GET("/schedules", contentHandler.GetSchedules) // GET /v1/schedules?day=1&locale=zh-TW
	v1.GET("/speakers", contentHandler.GetSpeakers)
	v1.GET("/sponsors", contentHandler.GetSponsors)
	v1.GET("/staffs", contentHandler.GetStaffs)
	v1.GET("/links", contentHandler.GetLinks)
}
