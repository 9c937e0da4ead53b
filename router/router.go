package router

import (
	"net/http"

	"billsmith/api"
	"billsmith/config"
	_ "billsmith/docs"
	"billsmith/middleware"
	"billsmith/service"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// AppName 服务名称
const AppName = "BillSmith"

// SetupRouter 设置路由
func SetupRouter(cfg *config.Config, storage service.StorageProvider) *gin.Engine {
	// 设置运行模式
	gin.SetMode(cfg.Server.Mode)

	r := gin.New()
	r.MaxMultipartMemory = 32 << 20
	r.Use(middleware.ZapLogger(), middleware.ZapRecovery())
	r.Use(middleware.CORS(cfg.Server.CORSOrigins))

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "BillSmith API",
			"docs":    "/swagger/index.html",
		})
	})

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "healthy",
			"app":    AppName,
			"port":   cfg.Server.Port,
		})
	})

	// Swagger 文档
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")
	v1.Use(middleware.OptionalAuth(cfg.Auth))
	{
		categoryHandler := api.NewCategoryHandler()
		categories := v1.Group("/categories")
		{
			categories.GET("", categoryHandler.List)
			categories.POST("", categoryHandler.Create)
			categories.GET("/:id", categoryHandler.Get)
			categories.PATCH("/:id", categoryHandler.Update)
			categories.DELETE("/:id", categoryHandler.Delete)
		}

		billHandler := api.NewBillHandler(cfg, storage)
		bills := v1.Group("/bills")
		{
			bills.GET("", billHandler.List)
			bills.POST("/upload", middleware.UploadRateLimit(cfg.Upload), billHandler.Upload)
			bills.POST("/mock", billHandler.Mock)
			bills.GET("/due", billHandler.Due)
			bills.GET("/export/csv", billHandler.ExportCSV)
			bills.GET("/export/excel", billHandler.ExportExcel)
			bills.GET("/:id", billHandler.Get)
			bills.PATCH("/:id", billHandler.Update)
			bills.DELETE("/:id", billHandler.Delete)
			bills.GET("/:id/file", billHandler.File)
		}

		analyticsHandler := api.NewAnalyticsHandler()
		analytics := v1.Group("/analytics")
		{
			analytics.GET("/dashboard/:category_id", analyticsHandler.Dashboard)
			analytics.GET("/spending/summary", analyticsHandler.SpendingSummary)
			analytics.GET("/trends/monthly", analyticsHandler.MonthlyTrends)
			analytics.GET("/categories/performance", analyticsHandler.CategoryPerformance)
		}
	}

	return r
}
