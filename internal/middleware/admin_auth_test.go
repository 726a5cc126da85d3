package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/manu-acho/wamngo-sub000/internal/database"
	"github.com/manu-acho/wamngo-sub000/internal/model"
	"github.com/manu-acho/wamngo-sub000/internal/wallet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	moderatorAddress  = "0x8ba1f109551bd432803012645ac136ddd64dba72"
	superAdminAddress = "0xd8da6bf26964af9d7eed9e03e53415d37aa96045"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

// grantRole 直接写入角色表，地址按守卫的归一化规则存储
func grantRole(t *testing.T, db *gorm.DB, addr string, role model.AdminRole, permissions map[string]bool) {
	t.Helper()

	normalized, err := wallet.Normalize(addr)
	require.NoError(t, err)
	require.NoError(t, db.Create(&model.AdminRoleModel{
		WalletAddress: normalized,
		Role:          role,
		Permissions:   permissions,
		Active:        true,
	}).Error)
}

func newGuardedRouter(guarded gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.GET("/admin/ping", guarded, func(c *gin.Context) {
		ctx := GetAdminContext(c)
		c.JSON(http.StatusOK, gin.H{"wallet": ctx.WalletAddress, "role": ctx.Role})
	})
	return r
}

func doGet(r *gin.Engine, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireAdminWithoutHeader(t *testing.T) {
	guard := NewAdminGuard(newTestDB(t))
	r := newGuardedRouter(guard.RequireAdmin())

	w := doGet(r, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAdminInvalidAddress(t *testing.T) {
	guard := NewAdminGuard(newTestDB(t))
	r := newGuardedRouter(guard.RequireAdmin())

	w := doGet(r, map[string]string{"x-wallet-address": "0xnot-a-real-address"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAdminUnknownWallet(t *testing.T) {
	guard := NewAdminGuard(newTestDB(t))
	r := newGuardedRouter(guard.RequireAdmin())

	w := doGet(r, map[string]string{"x-wallet-address": moderatorAddress})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireAdminWithRole(t *testing.T) {
	db := newTestDB(t)
	grantRole(t, db, moderatorAddress, model.AdminRoleModerator, nil)
	guard := NewAdminGuard(db)
	r := newGuardedRouter(guard.RequireAdmin())

	w := doGet(r, map[string]string{"x-wallet-address": moderatorAddress})
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "moderator")
}

func TestRequireAdminNormalizesCaseVariants(t *testing.T) {
	db := newTestDB(t)
	grantRole(t, db, moderatorAddress, model.AdminRoleModerator, nil)
	guard := NewAdminGuard(db)
	r := newGuardedRouter(guard.RequireAdmin())

	// 全大写写法落到同一条角色记录上
	upper := "0x" + strings.ToUpper(moderatorAddress[2:])
	w := doGet(r, map[string]string{"x-wallet-address": upper})
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestRequireAdminAcceptsBearerToken(t *testing.T) {
	db := newTestDB(t)
	grantRole(t, db, moderatorAddress, model.AdminRoleModerator, nil)
	guard := NewAdminGuard(db)
	r := newGuardedRouter(guard.RequireAdmin())

	w := doGet(r, map[string]string{"Authorization": "Bearer " + moderatorAddress})
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestRequirePermission(t *testing.T) {
	db := newTestDB(t)
	grantRole(t, db, moderatorAddress, model.AdminRoleModerator, map[string]bool{"edit_proposals": true})
	guard := NewAdminGuard(db)

	allowed := newGuardedRouter(guard.RequirePermission("edit_proposals"))
	w := doGet(allowed, map[string]string{"x-wallet-address": moderatorAddress})
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	denied := newGuardedRouter(guard.RequirePermission("delete_proposals"))
	w = doGet(denied, map[string]string{"x-wallet-address": moderatorAddress})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequirePermissionSuperAdminBypass(t *testing.T) {
	db := newTestDB(t)
	grantRole(t, db, superAdminAddress, model.AdminRoleSuperAdmin, nil)
	guard := NewAdminGuard(db)
	r := newGuardedRouter(guard.RequirePermission("anything_at_all"))

	w := doGet(r, map[string]string{"x-wallet-address": superAdminAddress})
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}
