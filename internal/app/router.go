package app

import (
	"learnify_backend/docs"
	"learnify_backend/internal/config"
	"learnify_backend/internal/middleware"
	"learnify_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 公共路由（无需登录）
	a.registerPublicRoutes(router, c, cfg)

	// 社区：列表可游客访问，交互需登录
	a.registerCommunityRoutes(router, c, cfg)

	// 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		authGroup.GET("/auth/profile", c.auth.GetProfile)
		authGroup.PUT("/auth/profile", c.auth.UpdateProfile)

		authGroup.GET("/users/stats", c.user.GetStats)
		authGroup.POST("/users/avatar", c.user.UploadAvatar)

		authGroup.POST("/challenges", c.challenge.CreateChallenge)
		authGroup.POST("/challenges/proof", c.challenge.UploadProof)
		authGroup.POST("/challenges/:id/complete", c.challenge.CompleteChallenge)
		authGroup.GET("/challenges/user/completed", c.challenge.GetMyChallenges)

		authGroup.POST("/projects", c.project.CreateProject)
		authGroup.POST("/projects/:id/submit", c.project.SubmitProject)

		authGroup.POST("/quizzes", c.quiz.CreateQuiz)
		authGroup.POST("/quizzes/:id/submit", c.quiz.SubmitQuiz)

		authGroup.GET("/skills", c.skill.GetSkills)
		authGroup.POST("/skills", c.skill.CreateSkill)
		authGroup.PUT("/skills/:id", c.skill.UpdateSkill)

		authGroup.GET("/ai/recommendations", c.ai.GetRecommendations)
		authGroup.POST("/ai/chat", c.ai.Chat)
		authGroup.POST("/ai/study-plan", c.ai.GenerateStudyPlan)
	}
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/auth/register", c.auth.Register)
		public.POST("/auth/login", c.auth.Login)

		public.GET("/users/leaderboard", c.user.GetLeaderboard)

		public.GET("/challenges", c.challenge.GetChallenges)
		public.GET("/challenges/:id", c.challenge.GetChallenge)

		public.GET("/projects", c.project.GetProjects)
		public.GET("/projects/:id", c.project.GetProject)

		public.GET("/quizzes", c.quiz.GetQuizzes)
		public.GET("/quizzes/:id", c.quiz.GetQuiz)
	}
}

func (a *App) registerCommunityRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	community := router.Group("/api/community")
	{
		// 列表类：可选认证，登录用户可见自己的点赞状态
		community.GET("/posts", middleware.TryAuthMiddleware(cfg), c.community.GetPosts)
		community.GET("/posts/:id", middleware.TryAuthMiddleware(cfg), c.community.GetPost)

		// 交互类：强制认证
		authorized := community.Group("/")
		authorized.Use(middleware.AuthMiddleware(cfg))
		{
			authorized.POST("/posts", c.community.CreatePost)
			authorized.POST("/posts/:id/replies", c.community.AddReply)
			authorized.PUT("/posts/:id/solved", c.community.ToggleSolved)
			authorized.POST("/:type/:id/upvote", c.community.ToggleUpvote)
		}
	}
}
