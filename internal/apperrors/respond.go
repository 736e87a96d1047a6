package apperrors

import "github.com/gin-gonic/gin"

// Respond writes err as {"error": message}. The cause of internal errors is
// attached to the gin context for the request logger and never sent to the client.
func Respond(c *gin.Context, err error) {
	appErr := From(err)
	if appErr.Code == CodeInternal || appErr.Code == CodeUnknown {
		_ = c.Error(err)
	}
	c.JSON(appErr.Code.HTTPStatus(), gin.H{"error": appErr.Message})
}
