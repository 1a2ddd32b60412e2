package handle

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/sharevault/pkg/internal/service"
	"github.com/yeisme/sharevault/pkg/internal/types"
	"github.com/yeisme/sharevault/pkg/metrics"
)

// CreateShare 为文件签发分享链接.
func CreateShare(c *gin.Context) {
	user, err := checkUser(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing user"})
		return
	}

	var req types.CreateShareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	svc := service.NewShareService(c.Request.Context())

	link, token, err := svc.Create(c.Request.Context(), user, req.FileID, req.AccessLimit)
	if err != nil {
		renderError(c, err)
		return
	}

	c.JSON(http.StatusCreated, types.CreateShareResponse{
		Share: service.ShareInfo(link),
		Token: token,
	})
}

// ListShares 列出请求者的分享链接.
func ListShares(c *gin.Context) {
	user, err := checkUser(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing user"})
		return
	}

	svc := service.NewShareService(c.Request.Context())

	resp, err := svc.List(c.Request.Context(), user)
	if err != nil {
		renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// RevokeShare 提前作废分享链接.
func RevokeShare(c *gin.Context) {
	user, err := checkUser(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing user"})
		return
	}

	key := c.Param("key")

	svc := service.NewShareService(c.Request.Context())

	if err := svc.Revoke(c.Request.Context(), user, key); err != nil {
		renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"revoked": true})
}

// ResolvePublicShare 公开兑换分享链接，无需身份，消耗一次兑换额度.
func ResolvePublicShare(c *gin.Context) {
	key := c.Param("key")

	svc := service.NewShareService(c.Request.Context())

	data, link, err := svc.ResolvePublic(c.Request.Context(), key)
	if err != nil {
		metrics.ShareResolveCounter.WithLabelValues("rejected").Inc()
		renderError(c, err)

		return
	}

	metrics.ShareResolveCounter.WithLabelValues("served").Inc()

	c.Header("Content-Disposition", `attachment; filename="`+link.DisplayName+`"`)
	c.Data(http.StatusOK, link.ContentType, data)
}

// ResolveShareByToken 所有者令牌路径：令牌 + 身份双重校验，不消耗额度.
func ResolveShareByToken(c *gin.Context) {
	user, err := checkUser(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing user"})
		return
	}

	token := c.Param("token")

	svc := service.NewShareService(c.Request.Context())

	data, link, err := svc.ResolveByToken(c.Request.Context(), token, user)
	if err != nil {
		renderError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+link.DisplayName+`"`)
	c.Data(http.StatusOK, link.ContentType, data)
}
