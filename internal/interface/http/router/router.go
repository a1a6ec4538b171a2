// Package router 组装中间件和路由
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/xiebiao/bookreview/internal/interface/http/handler"
	"github.com/xiebiao/bookreview/internal/interface/http/middleware"
	"github.com/xiebiao/bookreview/pkg/metrics"
)

// Handlers 路由依赖的处理器和认证中间件
type Handlers struct {
	User   *handler.UserHandler
	Book   *handler.BookHandler
	Review *handler.ReviewHandler
	Auth   *middleware.AuthMiddleware
}

// Options 可选功能，零值表示全部关闭
type Options struct {
	Mode         string // debug | release | test
	AllowOrigins []string
	Limiter      middleware.Limiter // nil不限流
	MetricsPath  string             // 为空不暴露指标
	Swagger      bool
}

// New 创建Gin引擎
//
//	/ping                                      存活检查
//	/metrics                                   Prometheus
//	/swagger/*any                              API文档
//	/api/v1/user/{register,login,refresh}      公开
//	/api/v1/user/logout                        需登录
//	/api/v1/bookstore/books/search             公开
//	/api/v1/bookstore/books/...                需登录
func New(h Handlers, opts Options) *gin.Engine {
	if opts.Mode != "" {
		gin.SetMode(opts.Mode)
	}

	r := gin.New()
	r.Use(middleware.Recovery(), middleware.Logger())
	if opts.MetricsPath != "" {
		r.Use(middleware.Metrics())
		r.GET(opts.MetricsPath, gin.WrapH(metrics.Handler()))
	}
	r.Use(middleware.CORS(opts.AllowOrigins))

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	if opts.Swagger {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	v1 := r.Group("/api/v1")
	if opts.Limiter != nil {
		v1.Use(middleware.RateLimit(opts.Limiter))
	}

	requireAuth := h.Auth.RequireAuth()

	users := v1.Group("/user")
	{
		users.POST("/register", h.User.Register)
		users.POST("/login", h.User.Login)
		users.POST("/refresh", h.User.Refresh)
		users.POST("/logout", requireAuth, h.User.Logout)
	}

	books := v1.Group("/bookstore/books")
	{
		books.GET("/search", h.Book.SearchBooks)

		books.POST("", requireAuth, h.Book.CreateBook)
		books.POST("/bulk", requireAuth, h.Book.BulkCreateBooks)
		books.GET("", requireAuth, h.Book.ListBooks)
		books.GET("/:id", requireAuth, h.Book.GetBook)

		books.POST("/:id/review", requireAuth, h.Review.SubmitReview)
		books.PUT("/:id/review/:reviewId", requireAuth, h.Review.UpdateReview)
		books.DELETE("/:id/review/:reviewId", requireAuth, h.Review.DeleteReview)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Page not found"})
	})

	return r
}
