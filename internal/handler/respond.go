package handler

import "github.com/labstack/echo/v4"

// Every endpoint answers with the same envelope:
// {success, data?, message?}

func respondData(c echo.Context, status int, data interface{}) error {
	return c.JSON(status, echo.Map{
		"success": true,
		"data":    data,
	})
}

func respondMessage(c echo.Context, status int, message string) error {
	return c.JSON(status, echo.Map{
		"success": true,
		"message": message,
	})
}

func respondError(c echo.Context, status int, message string) error {
	return c.JSON(status, echo.Map{
		"success": false,
		"message": message,
	})
}
