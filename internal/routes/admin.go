package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/myth3x/mythex-snapshare/internal/handlers"
	"github.com/myth3x/mythex-snapshare/internal/middleware"
)

func RegisterAdminRoutes(rg *gin.RouterGroup) {
	admin := rg.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.AdminOnly())

	admin.GET("/users", handlers.AdminListUsers)
	admin.POST("/users", handlers.AdminCreateUser)
	admin.DELETE("/users/:id", handlers.AdminDeleteUser)
	admin.GET("/stats", handlers.AdminGetStats)
}
