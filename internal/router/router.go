package router

import (
	"AiBeiTongServer/internal/handler"
	"AiBeiTongServer/internal/middleware"
	"AiBeiTongServer/pkg/util"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// Handlers 路由依赖的全部处理器
type Handlers struct {
	Auth        *handler.AuthHandler
	User        *handler.UserHandler
	Friend      *handler.FriendHandler
	Content     *handler.ContentHandler
	Interaction *handler.InteractionHandler
	Message     *handler.MessageHandler
	Job         *handler.JobHandler
	AI          *handler.AIHandler
}

// InitRouter 初始化路由。
// 中间件顺序: recovery -> trace -> clientIP -> 日志 -> 指标 -> CORS -> IP限流
func InitRouter(h *Handlers, redisClient redis.UniversalClient, limiter *middleware.RateLimiter) *gin.Engine {
	r := gin.New()

	r.Use(
		middleware.GinRecovery(true),
		util.TraceLogger(),
		middleware.ClientIPMiddleware(),
		middleware.GinLogger(),
		middleware.PrometheusMiddleware(),
		middleware.CorsMiddleware(),
		middleware.IPRateLimitMiddleware(limiter),
	)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/metrics", middleware.MetricsHandler())

	v1 := r.Group("/api/v1")

	// 无需登录的接口
	public := v1.Group("/public")
	{
		public.POST("/register", h.Auth.Register)
		public.POST("/login", h.Auth.Login)
	}

	// 需要登录的接口
	auth := v1.Group("/auth")
	auth.Use(
		middleware.JWTAuthMiddleware(redisClient),
		middleware.UserRateLimitMiddleware(limiter),
	)
	{
		auth.POST("/logout", h.Auth.Logout)

		// 用户
		auth.GET("/user/me", h.User.GetMe)
		auth.GET("/user/search", h.User.SearchUsers)
		auth.GET("/user/:uuid", h.User.GetUser)
		auth.PUT("/user/profile", h.User.UpdateProfile)
		auth.PUT("/user/privacy", h.User.UpdatePrivacy)
		auth.POST("/user/avatar", h.User.UploadAvatar)
		auth.POST("/user/background", h.User.UploadBackground)

		// 好友
		auth.POST("/friend/request", h.Friend.SendFriendRequest)
		auth.POST("/friend/request/:uuid/accept", h.Friend.AcceptFriendRequest)
		auth.POST("/friend/request/:uuid/reject", h.Friend.RejectFriendRequest)
		auth.GET("/friend/requests", h.Friend.GetPendingRequests)
		auth.GET("/friend/contacts", h.Friend.GetContacts)
		auth.DELETE("/friend/:uuid", h.Friend.RemoveContact)
		auth.GET("/friend/status/:uuid", h.Friend.CheckFriendStatus)
		auth.POST("/friend/block/:uuid", h.Friend.Block)
		auth.DELETE("/friend/block/:uuid", h.Friend.Unblock)
		auth.GET("/friend/blocked", h.Friend.GetBlockedUsers)

		// 帖子
		auth.POST("/post", h.Content.CreatePost)
		auth.GET("/post", h.Content.ListPosts)
		auth.GET("/post/:uuid", h.Content.GetPost)
		auth.DELETE("/post/:uuid", h.Content.DeletePost)
		auth.GET("/post/user/:uuid", h.Content.ListUserPosts)
		auth.POST("/post/:uuid/comment", h.Content.AddComment)
		auth.DELETE("/comment/:uuid", h.Content.DeleteComment)
		auth.POST("/post/:uuid/like", h.Content.ToggleLike)
		auth.GET("/news", h.Content.ListNews)

		// 互动
		auth.POST("/favorite", h.Interaction.ToggleFavorite)
		auth.GET("/favorite", h.Interaction.GetFavorites)
		auth.POST("/pin", h.Interaction.TogglePin)

		// 消息
		auth.POST("/message", h.Message.SendMessage)
		auth.GET("/message/conversations", h.Message.GetConversations)
		auth.GET("/message/with/:peer", h.Message.GetMessages)
		auth.POST("/message/:uuid/recall", h.Message.RecallMessage)
		auth.DELETE("/message/:uuid", h.Message.DeleteMessage)

		// 职位
		auth.GET("/job", h.Job.ListJobs)
		auth.GET("/job/:uuid", h.Job.GetJob)
		auth.POST("/job", h.Job.CreateJob)
		auth.POST("/job/:uuid/apply", h.Job.ApplyJob)

		// AI
		auth.POST("/ai/bio", h.AI.GenerateBio)
		auth.POST("/ai/job-description", h.AI.GenerateJobDescription)
		auth.POST("/ai/resume-analysis", h.AI.AnalyzeResume)
	}

	return r
}
