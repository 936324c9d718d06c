package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/xiebiao/bookcatalog/internal/infrastructure/config"
	"github.com/xiebiao/bookcatalog/internal/interface/http/handler"
	"github.com/xiebiao/bookcatalog/internal/interface/http/middleware"
	"github.com/xiebiao/bookcatalog/internal/interface/http/views"
	"github.com/xiebiao/bookcatalog/pkg/response"
)

// New 创建gin引擎并注册全部路由
//
// 中间件顺序:Recovery → Tracing → Logger → Metrics
// Tracing在Logger之前,日志中才能带trace_id
func New(cfg *config.Config, log *zap.Logger, bookHandler *handler.BookHandler) (*gin.Engine, error) {
	switch cfg.Server.Mode {
	case gin.ReleaseMode, gin.TestMode, gin.DebugMode:
		gin.SetMode(cfg.Server.Mode)
	}

	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(
		middleware.Recovery(),
		middleware.Tracing(cfg.Tracing.ServiceName),
		middleware.Logger(log),
		middleware.Metrics(),
	)

	if err := views.Register(r); err != nil {
		return nil, err
	}

	registerRoutes(r, bookHandler)
	return r, nil
}

// registerRoutes 注册路由
func registerRoutes(r *gin.Engine, h *handler.BookHandler) {
	// 首页跳转到图书列表
	r.GET("/", func(c *gin.Context) {
		response.Redirect(c, "/books")
	})

	// 健康检查
	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})

	// Prometheus指标
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	books := r.Group("/books")
	{
		books.GET("", h.List)
		books.GET("/new", h.NewForm)
		books.POST("/new", h.Create)
		books.GET("/:id", h.Show)
		books.POST("/:id", h.Update)
		books.GET("/:id/update-book", h.EditForm)
		books.GET("/:id/delete", h.DeleteForm)
		books.POST("/:id/delete", h.Delete)
	}

	// 未匹配的路由和方法统一渲染404页面
	r.NoRoute(response.NotFound)
	r.NoMethod(response.NotFound)
}
