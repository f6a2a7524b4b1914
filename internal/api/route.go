package api

import (
	"BlogPress/internal/api/middleware"
	"BlogPress/internal/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

func newEngine() *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.AuditMiddleware())
	r.Use(middleware.CORSMiddleware())
	logger.SetupGin(r)

	return r
}

func ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"Code":    200,
		"Message": "pong",
		"Data":    nil,
	})
}

// SetupEngagementRouter 互动服务路由
func SetupEngagementRouter(group *HandlersGroup) *gin.Engine {
	r := newEngine()

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", ping)

		blogGroup := apiGroup.Group("/blogs")
		{
			// 无需登录即可访问的接口
			blogGroup.GET("/:blog_id/counts", group.EngagementHandler.GetCounts)
			blogGroup.GET("/:blog_id/comments", group.EngagementHandler.GetCommentTree)

			authOptGroup := blogGroup.Group("")
			authOptGroup.Use(middleware.AuthOptionalMiddleware())
			{
				authOptGroup.POST("/:blog_id/views", group.EngagementHandler.RecordView)
			}

			authGroup := blogGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.POST("/:blog_id/likes", group.EngagementHandler.LikeBlog)
				authGroup.DELETE("/:blog_id/likes", group.EngagementHandler.UnlikeBlog)
				authGroup.POST("/:blog_id/likes/toggle", group.EngagementHandler.ToggleLike)
				authGroup.GET("/:blog_id/likes/me", group.EngagementHandler.GetLikeStatus)
				authGroup.POST("/:blog_id/comments", group.EngagementHandler.AddComment)
			}
		}

		commentGroup := apiGroup.Group("/comments")
		{
			commentGroup.Use(middleware.AuthMiddleware())
			{
				commentGroup.PUT("/:comment_id", group.EngagementHandler.UpdateComment)
				commentGroup.DELETE("/:comment_id", group.EngagementHandler.DeleteComment)
			}
		}
	}

	return r
}

// SetupNotificationRouter 通知服务路由
func SetupNotificationRouter(group *HandlersGroup) *gin.Engine {
	r := newEngine()

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", ping)

		notificationGroup := apiGroup.Group("/notifications")
		{
			// 服务间投递接口
			notificationGroup.POST("/blog-created", group.NotificationHandler.BlogCreated)
			notificationGroup.POST("/milestone", group.NotificationHandler.Milestone)
			notificationGroup.POST("/user-registered", group.NotificationHandler.UserRegistered)

			authGroup := notificationGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.GET("/inbox", group.NotificationHandler.GetInbox)
				authGroup.GET("/inbox/unread-count", group.NotificationHandler.GetUnreadCount)
			}
		}
	}

	return r
}
