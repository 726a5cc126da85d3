package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/manu-acho/wamngo-sub000/internal/logger"
	"github.com/manu-acho/wamngo-sub000/internal/logic"
	"github.com/manu-acho/wamngo-sub000/internal/model"
	"github.com/manu-acho/wamngo-sub000/internal/wallet"
	"gorm.io/gorm"
)

const adminContextKey = "admin_context"

// AdminContext 管理员请求上下文，由守卫中间件写入 gin 上下文
type AdminContext struct {
	WalletAddress string          `json:"wallet_address"`
	Role          model.AdminRole `json:"role"`
	Permissions   map[string]bool `json:"permissions"`
}

// AdminGuard 管理端守卫
// 从 x-wallet-address 或 Authorization: Bearer 头解析钱包地址，
// 查出生效角色后放行。头部的钱包地址值被原样信任，不做签名校验
// （真实认证由部署边界解决），仅做格式校验与 EIP-55 归一化，
// 避免大小写变体绕过角色表。
type AdminGuard struct {
	adminLogic *logic.AdminLogic
}

// NewAdminGuard 创建管理端守卫
func NewAdminGuard(db *gorm.DB) *AdminGuard {
	return &AdminGuard{adminLogic: logic.NewAdminLogic(db)}
}

// RequireAdmin 要求调用者持有任一生效管理员角色
func (g *AdminGuard) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, ok := g.resolve(c)
		if !ok {
			return
		}
		c.Set(adminContextKey, ctx)
		c.Next()
	}
}

// RequirePermission 额外要求权限表中对应开关为真，super_admin 直接放行
func (g *AdminGuard) RequirePermission(permission string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, ok := g.resolve(c)
		if !ok {
			return
		}
		if ctx.Role != model.AdminRoleSuperAdmin && !ctx.Permissions[permission] {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "missing permission: " + permission})
			return
		}
		c.Set(adminContextKey, ctx)
		c.Next()
	}
}

// resolve 解析请求头并查角色，失败时已写好响应并中止请求
func (g *AdminGuard) resolve(c *gin.Context) (*AdminContext, bool) {
	addr := extractWalletAddress(c)
	if addr == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "wallet address is required"})
		return nil, false
	}

	normalized, err := wallet.Normalize(addr)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid wallet address"})
		return nil, false
	}

	role, err := g.adminLogic.GetActiveRole(normalized)
	if err != nil {
		if errors.Is(err, logic.ErrRoleNotFound) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "not an admin"})
			return nil, false
		}
		logger.Error("Admin role lookup failed for %s: %v", normalized, err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return nil, false
	}

	return &AdminContext{
		WalletAddress: role.WalletAddress,
		Role:          role.Role,
		Permissions:   role.Permissions,
	}, true
}

// extractWalletAddress 依次尝试 x-wallet-address 头与 Bearer 令牌
func extractWalletAddress(c *gin.Context) string {
	if addr := strings.TrimSpace(c.GetHeader("x-wallet-address")); addr != "" {
		return addr
	}
	auth := c.GetHeader("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
	}
	return ""
}

// GetAdminContext 从 gin 上下文取出守卫写入的管理员上下文
func GetAdminContext(c *gin.Context) *AdminContext {
	if v, ok := c.Get(adminContextKey); ok {
		if ctx, ok := v.(*AdminContext); ok {
			return ctx
		}
	}
	return nil
}
