package app

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/noah-isme/yoga-studio-admin/api/swagger"
	"github.com/noah-isme/yoga-studio-admin/internal/handler"
	"github.com/noah-isme/yoga-studio-admin/internal/middleware"
	"github.com/noah-isme/yoga-studio-admin/pkg/config"
	"github.com/noah-isme/yoga-studio-admin/pkg/logger"
	corsmiddleware "github.com/noah-isme/yoga-studio-admin/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/yoga-studio-admin/pkg/middleware/requestid"
)

// Router builds the HTTP API. Health checks, metrics and docs sit outside the API
// prefix; everything else is behind the administrator token when auth is on.
func (a *App) Router() *gin.Engine {
	if a.Config.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(a.Logger))
	r.Use(corsmiddleware.New(a.Config.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(a.Metrics))

	adminHandler := handler.NewAdminHandler(a.Admin)
	metricsHandler := handler.NewMetricsHandler(a.Metrics.Handler())

	r.GET("/health", adminHandler.Health)
	r.GET("/ready", adminHandler.Ready)
	r.GET("/metrics", metricsHandler.Prometheus)

	if a.Config.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(a.Config.APIPrefix)
	api.POST("/auth/login", handler.NewAuthHandler(a.Auth).Login)

	secured := api.Group("")
	if a.Config.Auth.Enabled {
		secured.Use(middleware.JWT(a.Auth))
	}

	teacherHandler := handler.NewTeacherHandler(a.Teachers)
	secured.GET("/teachers", teacherHandler.List)
	secured.POST("/teachers", teacherHandler.Create)
	secured.GET("/teachers/:id", teacherHandler.Get)

	courseHandler := handler.NewCourseHandler(a.Courses)
	instanceHandler := handler.NewInstanceHandler(a.Instances)
	secured.GET("/courses", courseHandler.List)
	secured.GET("/courses/search", courseHandler.Search)
	secured.POST("/courses", courseHandler.Create)
	secured.GET("/courses/:id", courseHandler.Get)
	secured.PUT("/courses/:id", courseHandler.Update)
	secured.DELETE("/courses/:id", courseHandler.Delete)
	secured.GET("/courses/:id/instances", instanceHandler.ListByCourse)
	secured.POST("/courses/:id/instances", instanceHandler.Create)

	secured.GET("/instances", instanceHandler.ListByDate)
	secured.GET("/instances/:id", instanceHandler.Get)
	secured.PUT("/instances/:id", instanceHandler.Update)
	secured.DELETE("/instances/:id", instanceHandler.Delete)

	syncHandler := handler.NewSyncHandler(a.Sync)
	secured.POST("/sync", syncHandler.Start)
	secured.GET("/sync/:id", syncHandler.Status)
	secured.DELETE("/sync", syncHandler.Reset)

	secured.GET("/exports/timetable", handler.NewExportHandler(a.Exports).Timetable)
	secured.POST("/admin/reset", adminHandler.Reset)

	return r
}
