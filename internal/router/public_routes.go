package router

import (
	"github.com/tsuiketsu/tsuika-api-sub000/internal/handlers"

	"github.com/gin-gonic/gin"
)

// PublicRoutes defines the anonymous share link resolution route. It is
// registered outside the auth middleware.
func PublicRoutes(rg *gin.RouterGroup, publicHandler *handlers.PublicHandler) {
	rg.POST("/share/:token", publicHandler.ResolveShareLink)
}
