package handler

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/eeuunnjjiinn/planner/config"
	"github.com/eeuunnjjiinn/planner/internal/api/middleware"
	"github.com/eeuunnjjiinn/planner/pkg/jwt"
	"github.com/eeuunnjjiinn/planner/pkg/response"
)

// PagesHandler 页面路由处理器
//
// 四个页面：/login /home /planner /subjects。
// 已登录访问 /login 跳 /home；未登录访问其余页面跳 /login；
// 未知路径按登录态跳 /home 或 /login。
// static_dir 配置了前端构建产物时返回页面本体，否则仅做跳转网关。
type PagesHandler struct {
	cfg    *config.Config
	authed func(c *gin.Context) bool
}

// NewPagesHandler 创建 PagesHandler
func NewPagesHandler(cfg *config.Config, jwtMgr *jwt.Manager) *PagesHandler {
	return &PagesHandler{
		cfg:    cfg,
		authed: middleware.SessionCookie(jwtMgr, &cfg.Auth.Cookie),
	}
}

// Login 登录页
// GET /login
func (h *PagesHandler) Login(c *gin.Context) {
	if h.authed(c) {
		c.Redirect(http.StatusFound, "/home")
		return
	}
	h.servePage(c)
}

// Protected 受保护页面（/home /planner /subjects）
func (h *PagesHandler) Protected(c *gin.Context) {
	if !h.authed(c) {
		c.Redirect(http.StatusFound, "/login")
		return
	}
	h.servePage(c)
}

// NoRoute 未知路径：按登录态落到 /home 或 /login
func (h *PagesHandler) NoRoute(c *gin.Context) {
	// API 路径的 404 不做页面跳转
	if strings.HasPrefix(c.Request.URL.Path, "/api/") {
		response.NotFound(c, 10404, "接口不存在")
		return
	}
	if h.authed(c) {
		c.Redirect(http.StatusFound, "/home")
		return
	}
	c.Redirect(http.StatusFound, "/login")
}

// servePage 返回单页应用入口；未配置 static_dir 时返回占位文本
func (h *PagesHandler) servePage(c *gin.Context) {
	dir := h.cfg.Server.StaticDir
	if dir == "" {
		c.String(http.StatusOK, "todo-planner API server\n")
		return
	}
	c.File(filepath.Join(dir, "index.html"))
}
