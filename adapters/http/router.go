package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/khoahotran/portfolio-builder/internal/metrics"
	"github.com/khoahotran/portfolio-builder/pkg/auth"
	"github.com/khoahotran/portfolio-builder/pkg/logger"
)

type Handlers struct {
	Auth      *AuthHandler
	Portfolio *PortfolioHandler
	Media     *MediaHandler
}

// NewRouter mounts the API. Media routes are skipped when no uploader is configured.
func NewRouter(serviceName string, h Handlers, jwtSvc *auth.JWTService, log logger.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), otelgin.Middleware(serviceName), metrics.GinMiddleware(), ErrorMiddleware(log))

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	{
		admin := api.Group("/admin")
		{
			admin.POST("/auth/login", h.Auth.Login)

			adminPrivate := admin.Group("/")
			adminPrivate.Use(AuthMiddleware(jwtSvc, log))
			{
				portfolio := adminPrivate.Group("/portfolio")
				{
					portfolio.POST("", h.Portfolio.GeneratePortfolio)
					portfolio.POST("/content", h.Portfolio.GenerateContent)
					portfolio.POST("/import", h.Portfolio.ImportResume)
				}
				if h.Media != nil {
					adminPrivate.POST("/media", h.Media.UploadMedia)
				}
			}
		}

		api.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "UP"}) })
		api.GET("/portfolios/:ownerID", h.Portfolio.GetPublicPortfolio)
	}

	return router
}
