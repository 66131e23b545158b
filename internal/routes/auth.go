package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/myth3x/mythex-snapshare/internal/handlers"
	"github.com/myth3x/mythex-snapshare/internal/middleware"
)

func RegisterAuthRoutes(rg *gin.RouterGroup) {
	rg.POST("/register", handlers.Register)
	rg.POST("/login", handlers.Login)
	rg.GET("/me", middleware.AuthMiddleware(), handlers.Me)
}
