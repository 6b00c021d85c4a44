package handler

import (
	"context"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/peakyminds/challenge-seo/src/service"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterConfig struct {
	PageService      *service.PageService
	ChallengeService *service.ChallengeService
	Renderer         *service.Renderer
	AllowOrigins     []string
}

func RegisterRoutes(ctx context.Context, router *gin.Engine, config RouterConfig) error {
	if err := RegisterValidators(); err != nil {
		return err
	}

	SetMiddlewares(ctx, router)

	router.GET("/health", handleHealthCheck)

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	pageHandler := NewPageHandler(config.PageService, config.Renderer)
	pathsHandler := NewPathsHandler(config.ChallengeService)

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = config.AllowOrigins
	corsConfig.AllowMethods = []string{"GET", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "X-Requested-With"}

	v1 := router.Group("/api/v1")
	v1.Use(cors.New(corsConfig))
	{
		v1.GET("/health", handleHealthCheck)
		v1.GET("/paths", pathsHandler.ListPaths)
	}

	router.GET("/:slug", pageHandler.GetPage)

	return nil
}
