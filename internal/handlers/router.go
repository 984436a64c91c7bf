package handlers

import (
	"net/http"

	"tira/backend/internal/config"
	"tira/backend/internal/middleware"
	"tira/backend/internal/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// NewRouter assembles the gin engine: middleware chain, one handler per
// aggregate, and the route table.
func NewRouter(cfg *config.Config, db *gorm.DB, log *zap.SugaredLogger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(log))
	router.Use(cors.Default())
	if cfg.RateLimit.Enabled {
		rl := middleware.NewRateLimiter(
			float64(cfg.RateLimit.RequestsPerMin)/60.0,
			cfg.RateLimit.BurstSize,
		)
		router.Use(rl.Middleware())
	}
	router.Use(middleware.ErrorHandler(log))

	userHandler := NewUserHandler(db, services.NewUserService())
	teamHandler := NewTeamHandler(db, services.NewTeamService())
	taskHandler := NewTaskHandler(db, services.NewTaskService())
	tagHandler := NewTagHandler(db, services.NewTagService())
	commentHandler := NewCommentHandler(db, services.NewCommentService())
	activityHandler := NewActivityHandler(db, services.NewActivityService())

	users := router.Group("/users")
	{
		users.GET("", userHandler.ListUsers)
		users.POST("", userHandler.CreateUser)
		users.PATCH("/:user_id", userHandler.UpdateUser)
		users.DELETE("/:user_id", userHandler.DeleteUser)
		users.GET("/:user_id/activity", activityHandler.GetUserActivity)
	}

	teams := router.Group("/teams")
	{
		teams.POST("", teamHandler.CreateTeam)
		teams.GET("/user/:user_id", teamHandler.GetUserTeams)
		teams.PATCH("/:team_id", teamHandler.UpdateTeam)
		teams.POST("/:team_id/members", teamHandler.AddMember)
		teams.DELETE("/:team_id/members/:user_id", teamHandler.RemoveMember)
		teams.GET("/:team_id/members", teamHandler.ListMembers)
		teams.DELETE("/:team_id", teamHandler.DeleteTeam)
	}

	tasks := router.Group("/tasks")
	{
		tasks.GET("", taskHandler.ListTasks)
		tasks.GET("/:task_id", taskHandler.GetTask)
		tasks.POST("", taskHandler.CreateTask)
		tasks.PATCH("/:task_id", taskHandler.UpdateTask)
		tasks.DELETE("/:task_id", taskHandler.DeleteTask)
	}

	tags := router.Group("/tags")
	{
		tags.POST("/teams/:team_id", tagHandler.CreateTag)
		tags.GET("/teams/:team_id", tagHandler.GetTagsByTeam)
		tags.GET("/teams/:team_id/:tag_id", tagHandler.GetTag)
		tags.PATCH("/teams/:team_id/:tag_id", tagHandler.UpdateTag)
		tags.DELETE("/teams/:team_id/:tag_id", tagHandler.DeleteTag)
		tags.GET("/teams/:team_id/:tag_id/tasks", tagHandler.GetTasksByTag)
		tags.POST("/tasks/:task_id", tagHandler.AddTagToTask)
		tags.GET("/tasks/:task_id", tagHandler.GetTagsByTask)
		tags.DELETE("/tasks/:task_id/:tag_id", tagHandler.RemoveTagFromTask)
	}

	comments := router.Group("/comments")
	{
		comments.GET("", commentHandler.ListComments)
		comments.POST("/tasks/:task_id", commentHandler.CreateComment)
		comments.PATCH("/:comment_id", commentHandler.UpdateComment)
		comments.DELETE("/:comment_id", commentHandler.DeleteComment)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error":  "Route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	return router
}
