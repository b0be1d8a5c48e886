package approuters

import (
	"github.com/Sheikh-Faraz/Link-Up-Remodel-Backend/internal/configuration"
	"github.com/Sheikh-Faraz/Link-Up-Remodel-Backend/internal/mw"

	"github.com/gin-gonic/gin"
)

func ActionsRouters(router *gin.Engine, container *configuration.Container) {
	actions := router.Group("/api/actions")
	actions.Use(mw.Auth(container.Config.Auth.JWTSecret, container.UserService))
	{
		actions.GET("/users", container.UserHandler.Sidebar)
		actions.GET("/UserInfo", container.UserHandler.Me)
		actions.POST("/add-contact", container.UserHandler.AddContact)

		actions.GET("/messages/:receiverId", container.MessageHandler.List)
		actions.POST("/send-message", container.MessageHandler.Send)

		actions.PATCH("/:id/edit", container.MessageHandler.Edit)
		actions.DELETE("/:id", container.MessageHandler.Delete)
		actions.PATCH("/:id/restore-message", container.MessageHandler.Restore)
		actions.POST("/:id/react", container.MessageHandler.React)
		actions.POST("/seen", container.MessageHandler.MarkSeen)

		actions.PATCH("/update-profile", container.UserHandler.UpdateProfile)
		actions.PATCH("/block/:id", container.UserHandler.Block)
		actions.PATCH("/unblock/:id", container.UserHandler.Unblock)

		actions.DELETE("/delete/:id", container.UserHandler.DeleteForMe)
		actions.DELETE("/clearChat/:id", container.MessageHandler.ClearChat)
		actions.GET("/hidden", container.UserHandler.Hidden)
		actions.PATCH("/restore/:id", container.UserHandler.Restore)
	}
}
