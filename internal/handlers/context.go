package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rental-backoffice/internal/middleware"
)

// callerID resolves the authenticated user's id, aborting with 401 when
// claims are missing. Every owner-scoped handler starts here.
func callerID(c *gin.Context) (string, bool) {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, apiResponse{
			Success: false,
			Message: "Missing claims",
		})
		return "", false
	}
	return claims.UserID, true
}
