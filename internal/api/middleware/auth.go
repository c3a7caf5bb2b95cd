package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/eeuunnjjiinn/planner/config"
	"github.com/eeuunnjjiinn/planner/pkg/jwt"
	"github.com/eeuunnjjiinn/planner/pkg/redis"
	"github.com/eeuunnjjiinn/planner/pkg/response"
)

// JWTAuth JWT 认证中间件
// 先查 Authorization: Bearer <token>，没有再查会话 Cookie
// （浏览器页面与 SSE 订阅走 Cookie，API 客户端走 Header）
// rdb 可用时校验 Token 黑名单，nil 时跳过
func JWTAuth(jwtMgr *jwt.Manager, rdb *redis.Client, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c, cookieName)
		if token == "" {
			response.Unauthorized(c, 10002, "缺少认证凭据")
			c.Abort()
			return
		}

		claims, err := jwtMgr.ParseToken(token)
		if err != nil {
			response.Unauthorized(c, 10002, "Token 无效或已过期")
			c.Abort()
			return
		}

		if claims.TokenType != "access" {
			response.Unauthorized(c, 10002, "Token 类型无效")
			c.Abort()
			return
		}

		// 登出后的 Token 在黑名单中直至自然过期
		if rdb != nil {
			blacklisted, err := rdb.IsBlacklisted(c.Request.Context(), claims.ID)
			if err == nil && blacklisted {
				response.Unauthorized(c, 10002, "Token 已失效")
				c.Abort()
				return
			}
		}

		// 将用户信息注入上下文
		c.Set("user_id", claims.UserID)
		c.Set("email", claims.Email)
		c.Set("claims", claims)

		c.Next()
	}
}

// extractToken 按 Header → Cookie 的顺序提取 Token
func extractToken(c *gin.Context, cookieName string) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
		return ""
	}

	if cookieName != "" {
		if v, err := c.Cookie(cookieName); err == nil {
			return v
		}
	}
	return ""
}

// SessionCookie 读取会话 Cookie 并返回其中的 Token，页面路由判定登录态用
// 与 JWTAuth 不同：不产生 401，仅报告 Cookie 是否携带有效 Access Token
func SessionCookie(jwtMgr *jwt.Manager, cfg *config.CookieConfig) func(c *gin.Context) bool {
	return func(c *gin.Context) bool {
		v, err := c.Cookie(cfg.Name)
		if err != nil || v == "" {
			return false
		}
		claims, err := jwtMgr.ParseToken(v)
		if err != nil {
			return false
		}
		return claims.TokenType == "access"
	}
}
