// Package handle 提供 HTTP 请求处理器实现.
package handle

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/sharevault/pkg/internal/crypto"
	"github.com/yeisme/sharevault/pkg/internal/service"
	"github.com/yeisme/sharevault/pkg/log"
	"github.com/yeisme/sharevault/pkg/rule"
)

// checkUser 提取请求者身份：Header 优先 -> query 参数 -> 非发布模式下的测试默认值.
func checkUser(c *gin.Context) (string, error) {
	user := c.GetHeader("X-User")
	if user == "" {
		user = c.Query("user")
	}

	if user == "" && gin.Mode() != gin.ReleaseMode {
		user = "test-user@example.com"
	}

	user = strings.TrimSpace(user)

	// 使用 validator 验证用户名格式为 email
	if err := rule.ValidateVar(user, "required,email"); err != nil {
		return "", err
	}

	return user, nil
}

// checkSession 提取会话标识，承载文件夹解锁状态.
// Header 优先 -> cookie -> 非发布模式下的测试默认值.
func checkSession(c *gin.Context) string {
	session := c.GetHeader("X-Session")
	if session == "" {
		if v, err := c.Cookie("sharevault_session"); err == nil {
			session = v
		}
	}

	if session == "" && gin.Mode() != gin.ReleaseMode {
		session = "test-session"
	}

	return strings.TrimSpace(session)
}

// renderError 把 service 层的哨兵错误映射为 HTTP 状态.
// NotFound 与 Forbidden 同样渲染 404，对未授权调用方不泄露实体是否存在.
func renderError(c *gin.Context, err error) {
	l := log.Logger()

	switch {
	case errors.Is(err, service.ErrNotFound), errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, service.ErrDuplicateName):
		c.JSON(http.StatusConflict, gin.H{"error": "duplicate name"})
	case errors.Is(err, service.ErrInvalidState):
		c.JSON(http.StatusConflict, gin.H{"error": "invalid state"})
	case errors.Is(err, service.ErrInvalidArgument):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrExpired):
		c.JSON(http.StatusGone, gin.H{"error": "link expired"})
	case errors.Is(err, service.ErrLimitExceeded):
		c.JSON(http.StatusGone, gin.H{"error": "link exhausted"})
	case errors.Is(err, service.ErrStorageUnavailable):
		l.Error().Err(err).Msg("storage unavailable")
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "storage unavailable"})
	case errors.Is(err, crypto.ErrAuthenticationFailed):
		l.Error().Err(err).Msg("decrypt failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	default:
		l.Error().Err(err).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// uintParam 解析路径参数为 uint.
func uintParam(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})

		return 0, false
	}

	return uint(v), true
}
