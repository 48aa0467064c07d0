package router

import (
	"log/slog"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"jobboard/internal/apiclient"
	"jobboard/internal/config"
	"jobboard/internal/handlers"
	"jobboard/internal/metrics"
	"jobboard/internal/middleware"
	"jobboard/internal/services"
	"jobboard/internal/session"
	"jobboard/internal/webui"
)

type Deps struct {
	Config      *config.Config
	Log         *slog.Logger
	JobService  *services.JobService
	AuthService *services.AuthService
	Sessions    *session.Manager
	Metrics     *metrics.Provider
}

// New wires the full engine: API routes first, then the API client that
// dispatches into this same engine, then the web routes built on that client.
func New(deps Deps) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(deps.Log))
	engine.Use(deps.Metrics.Middleware())
	engine.SetHTMLTemplate(webui.Templates())

	engine.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}

	jobAPI := handlers.NewJobHandler(deps.JobService, deps.Log)
	authAPI := handlers.NewAuthHandler(deps.AuthService, deps.Log)

	api := engine.Group("/api")
	api.Use(cors.New(corsConfig))
	{
		api.GET("", handlers.Ping)
		api.POST("/auth/login", authAPI.Login)

		authed := api.Group("", middleware.Auth(deps.AuthService))
		{
			authed.POST("/auth/logout", authAPI.Logout)
			authed.GET("/jobs", jobAPI.Index)
			authed.POST("/jobs", jobAPI.Store)
			authed.GET("/jobs/:id", jobAPI.Show)
			authed.PUT("/jobs/:id", jobAPI.Update)
		}
	}

	client := apiclient.New(deps.Config.JobAPI.BaseURL, deps.Config.App.URL, engine, deps.Log)

	webAuth := webui.NewAuthHandler(client, deps.Log)
	webJobs := webui.NewJobHandler(client, deps.Log)

	web := engine.Group("", deps.Sessions.Middleware())
	{
		web.GET("/", func(c *gin.Context) {
			c.Redirect(http.StatusFound, "/jobs")
		})

		web.GET("/login", webAuth.ShowLogin)
		web.POST("/login", webAuth.Login)
		web.POST("/logout", webAuth.Logout)

		web.GET("/jobs", webJobs.Index)
		web.GET("/jobs/create", webJobs.Create)
		web.POST("/jobs", webJobs.Store)
		web.GET("/jobs/:id/edit", webJobs.Edit)
		web.PUT("/jobs/:id", webJobs.Update)
		// Browser forms can't send PUT, the edit form posts with a _method
		// override field instead.
		web.POST("/jobs/:id", webJobs.Update)
	}

	return engine
}
