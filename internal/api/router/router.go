package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/eeuunnjjiinn/planner/config"
	"github.com/eeuunnjjiinn/planner/internal/api/handler"
	"github.com/eeuunnjjiinn/planner/internal/api/middleware"
	"github.com/eeuunnjjiinn/planner/internal/dto"
	"github.com/eeuunnjjiinn/planner/pkg/jwt"
	"github.com/eeuunnjjiinn/planner/pkg/redis"
)

// maxBodyBytes 全局请求体上限：本应用没有任何大请求体场景
const maxBodyBytes = 1 << 20 // 1MB

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	// 自定义校验规则注入 gin 的 binding 引擎
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := dto.RegisterValidations(v); err != nil {
			logger.Fatal("注册校验规则失败", zap.Error(err))
		}
	}

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(maxBodyBytes))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ── 页面路由（跳转网关） ──
	r.GET("/login", h.Pages.Login)
	r.GET("/home", h.Pages.Protected)
	r.GET("/planner", h.Pages.Protected)
	r.GET("/subjects", h.Pages.Protected)
	if cfg.Server.StaticDir != "" {
		r.Static("/assets", cfg.Server.StaticDir+"/assets")
	}
	r.NoRoute(h.Pages.NoRoute)

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 认证模块（无需认证；登录注册做限流防爆破）
		auth := v1.Group("/auth")
		auth.Use(middleware.RateLimit(rdb, 10, time.Minute))
		{
			auth.POST("/register", h.Auth.Register)
			auth.POST("/login", h.Auth.Login)
		}

		// 需要认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb, cfg.Auth.Cookie.Name))
		{
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.Me)

			// 周历事件模块
			events := authorized.Group("/events")
			{
				events.GET("/week", h.Event.GetWeek)
				events.POST("", h.Event.Create)
				events.DELETE("/:id", h.Event.Delete)
			}

			// 日待办模块
			todos := authorized.Group("/todos")
			{
				todos.GET("", h.Todo.GetDay)
				todos.POST("", h.Todo.Create)
				todos.PATCH("/:id/done", h.Todo.Toggle)
				todos.DELETE("/:id", h.Todo.Delete)
			}

			// 考试/作业模块
			assessments := authorized.Group("/assessments")
			{
				assessments.GET("/upcoming", h.Assessment.ListUpcoming)
				assessments.POST("", h.Assessment.Create)
				assessments.PUT("/:id", h.Assessment.Update)
				assessments.DELETE("/:id", h.Assessment.Delete)
			}

			// 科目/时间表模块
			subjects := authorized.Group("/subjects")
			{
				subjects.GET("", h.Subject.List)
				subjects.GET("/timetable", h.Subject.Timetable)
				subjects.POST("", h.Subject.Create)
				subjects.PUT("/:id", h.Subject.Update)
				subjects.DELETE("/:id", h.Subject.Delete)
			}

			// 变更订阅（SSE）
			authorized.GET("/watch/:collection", h.Watch.Stream)

			// 导出模块
			export := authorized.Group("/export")
			{
				export.GET("/week", h.Export.ExportWeek)
				export.GET("/calendar", h.Export.ExportCalendar)
			}
		}
	}

	return r
}
