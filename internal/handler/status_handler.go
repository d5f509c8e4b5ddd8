package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Status godoc
// @Summary Server status
// @Tags status
// @Produce json
// @Success 200 {object} errors.SuccessResponse
// @Router /status [get]
func Status(c echo.Context) error {
	return respond(c, http.StatusOK, "SERVER_STATUS", "Server is running", map[string]string{"status": "OK"})
}
