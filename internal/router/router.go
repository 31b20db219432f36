package router

import (
	"Lee_Channel/internal/handler"
	"Lee_Channel/internal/middleware"
	"Lee_Channel/internal/service"

	"github.com/gin-gonic/gin"
)

func InitRouter(authSvc *service.AuthService, channelSvc *service.ChannelService) *gin.Engine {
	r := gin.Default()

	auth := handler.NewAuthHandler(authSvc)
	channel := handler.NewChannelHandler(channelSvc)

	userGroup := r.Group("/api/user")
	{
		userGroup.POST("/register", auth.Register)
		userGroup.POST("/login", auth.Login)
	}

	authed := r.Group("/api")
	authed.Use(middleware.AuthMiddleware(authSvc))
	{
		authed.GET("/user/me", auth.Me)
		authed.POST("/user/logout", auth.Logout)

		authed.POST("/channels", channel.Create)
		authed.GET("/channels/:id", channel.Get)
		authed.PATCH("/channels/:id", channel.Patch)
		authed.DELETE("/channels/:id", channel.Delete)

		authed.GET("/channels/:id/members", channel.ListMembers)
		authed.POST("/channels/:id/members", channel.AddMember)
		authed.GET("/channels/:id/members/:user_id", channel.GetMember)
		authed.DELETE("/channels/:id/members/:user_id", channel.RemoveMember)
		authed.PATCH("/channels/:id/members/:user_id", channel.SetMemberRole)
	}

	return r
}
