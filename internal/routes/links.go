package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/myth3x/mythex-snapshare/internal/handlers"
	"github.com/myth3x/mythex-snapshare/internal/middleware"
)

// RegisterLinkRoutes mounts the public short-link redirect. Shared links
// live at the domain root (myth3x.pics/<code>); /s/<code> is kept as an
// unambiguous alias.
func RegisterLinkRoutes(r *gin.Engine) {
	resolve := []gin.HandlerFunc{
		middleware.ResolveRateLimit(),
		middleware.OptionalAuthMiddleware(),
		handlers.ResolveShortLink,
	}

	r.GET("/s/:code", resolve...)
	r.GET("/:code", resolve...)
}
