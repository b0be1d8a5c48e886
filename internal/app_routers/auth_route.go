package approuters

import (
	"github.com/Sheikh-Faraz/Link-Up-Remodel-Backend/internal/configuration"
	"github.com/Sheikh-Faraz/Link-Up-Remodel-Backend/internal/mw"

	"github.com/gin-gonic/gin"
)

func AuthRouters(router *gin.Engine, container *configuration.Container) {
	authRoute := router.Group("/api/auth")
	{
		authRoute.POST("/signup", container.AuthHandler.Signup)
		authRoute.POST("/login", container.AuthHandler.Login)
		authRoute.POST("/google", container.AuthHandler.GoogleLogin)
		authRoute.POST("/logout", container.AuthHandler.Logout)

		authed := authRoute.Group("")
		authed.Use(mw.Auth(container.Config.Auth.JWTSecret, container.UserService))
		authed.GET("/check", container.AuthHandler.Check)
	}
}
