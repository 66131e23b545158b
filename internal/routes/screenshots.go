package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/myth3x/mythex-snapshare/internal/handlers"
	"github.com/myth3x/mythex-snapshare/internal/middleware"
)

func RegisterScreenshotRoutes(rg *gin.RouterGroup) {
	shots := rg.Group("/screenshots")
	shots.Use(middleware.AuthMiddleware())

	shots.POST("", middleware.UploadRateLimit(), handlers.UploadScreenshot)
	shots.GET("", handlers.ListScreenshots)
	shots.PATCH("/:id/visibility", handlers.UpdateVisibility)
	shots.DELETE("/:id", handlers.DeleteScreenshot)
}
