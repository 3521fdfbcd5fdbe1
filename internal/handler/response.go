package handler

import (
	"github.com/labstack/echo/v4"
)

// envelope is the JSON response shape every endpoint uses:
// {success, message, data?, error?}.
type envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func respond(c echo.Context, status int, message string, data interface{}) error {
	return c.JSON(status, envelope{Success: true, Message: message, Data: data})
}

func respondError(c echo.Context, status int, message string, err error) error {
	e := envelope{Success: false, Message: message}
	if err != nil {
		e.Error = err.Error()
	}
	return c.JSON(status, e)
}
