package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/manu-acho/wamngo-sub000/internal/cache"
	"github.com/manu-acho/wamngo-sub000/internal/logic"
	"github.com/manu-acho/wamngo-sub000/internal/middleware"
	"github.com/manu-acho/wamngo-sub000/internal/model"
	"github.com/manu-acho/wamngo-sub000/internal/wallet"
	"gorm.io/gorm"
)

// AdminHandler 后台管理接口
// 所有路由都挂在管理端守卫之后，处理函数内可直接取 AdminContext。
type AdminHandler struct {
	adminLogic      *logic.AdminLogic
	governanceLogic *logic.GovernanceLogic
	projectLogic    *logic.ProjectLogic
	partnerLogic    *logic.PartnerLogic
	contactLogic    *logic.ContactLogic
	cache           *cache.Cache
}

func NewAdminHandler(db *gorm.DB, c *cache.Cache) *AdminHandler {
	return &AdminHandler{
		adminLogic:      logic.NewAdminLogic(db),
		governanceLogic: logic.NewGovernanceLogic(db),
		projectLogic:    logic.NewProjectLogic(db),
		partnerLogic:    logic.NewPartnerLogic(db),
		contactLogic:    logic.NewContactLogic(db),
		cache:           c,
	}
}

// GetProposal 管理端查看提案（软删除行也返回，供审计）
func (h *AdminHandler) GetProposal(c *gin.Context) {
	id, ok := parseId(c)
	if !ok {
		return
	}

	proposal, err := h.governanceLogic.GetProposal(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"proposal": proposal})
}

// UpdateProposal 管理端编辑提案
func (h *AdminHandler) UpdateProposal(c *gin.Context) {
	id, ok := parseId(c)
	if !ok {
		return
	}

	// 只允许更新特定字段
	var req struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
		Category    *string `json:"category"`
		Status      *string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := make(map[string]interface{})
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}
	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no fields to update"})
		return
	}

	admin := middleware.GetAdminContext(c)
	if err := h.adminLogic.UpdateProposal(id, updates, admin.WalletAddress); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "proposal updated"})
}

// DeleteProposal 管理端软删除提案
func (h *AdminHandler) DeleteProposal(c *gin.Context) {
	h.softDelete(c, h.adminLogic.DeleteProposal)
}

// GetProject 管理端查看项目
func (h *AdminHandler) GetProject(c *gin.Context) {
	id, ok := parseId(c)
	if !ok {
		return
	}

	project, err := h.projectLogic.GetProject(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"project": project})
}

// UpdateProject 管理端编辑项目
func (h *AdminHandler) UpdateProject(c *gin.Context) {
	id, ok := parseId(c)
	if !ok {
		return
	}

	var req struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
		Category    *string `json:"category"`
		Status      *string `json:"status"`
		FundingGoal *int64  `json:"fundingGoal"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := make(map[string]interface{})
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}
	if req.FundingGoal != nil {
		updates["funding_goal"] = *req.FundingGoal
	}
	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no fields to update"})
		return
	}

	admin := middleware.GetAdminContext(c)
	if err := h.adminLogic.UpdateProject(id, updates, admin.WalletAddress); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "project updated"})
}

// DeleteProject 管理端软删除项目
func (h *AdminHandler) DeleteProject(c *gin.Context) {
	h.softDelete(c, h.adminLogic.DeleteProject)
}

// GetPartner 管理端查看合作伙伴
func (h *AdminHandler) GetPartner(c *gin.Context) {
	id, ok := parseId(c)
	if !ok {
		return
	}

	partner, err := h.partnerLogic.GetPartner(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"partner": partner})
}

// UpdatePartner 管理端编辑合作伙伴
func (h *AdminHandler) UpdatePartner(c *gin.Context) {
	id, ok := parseId(c)
	if !ok {
		return
	}

	var req struct {
		Name             *string `json:"name"`
		ShortDescription *string `json:"shortDescription"`
		Description      *string `json:"description"`
		LogoURL          *string `json:"logoUrl"`
		WebsiteURL       *string `json:"websiteUrl"`
		Status           *string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.ShortDescription != nil {
		updates["short_description"] = *req.ShortDescription
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.LogoURL != nil {
		updates["logo_url"] = *req.LogoURL
	}
	if req.WebsiteURL != nil {
		updates["website_url"] = *req.WebsiteURL
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}
	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no fields to update"})
		return
	}

	admin := middleware.GetAdminContext(c)
	if err := h.adminLogic.UpdatePartner(id, updates, admin.WalletAddress); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "partner updated"})
}

// DeletePartner 管理端软删除合作伙伴
func (h *AdminHandler) DeletePartner(c *gin.Context) {
	h.softDelete(c, h.adminLogic.DeletePartner)
}

// ReviewSubmission 审核项目提交
func (h *AdminHandler) ReviewSubmission(c *gin.Context) {
	id, ok := parseId(c)
	if !ok {
		return
	}

	var req struct {
		Status      string `json:"status" binding:"required"`
		ReviewNotes string `json:"reviewNotes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	admin := middleware.GetAdminContext(c)
	submission, err := h.projectLogic.ReviewSubmission(id, model.SubmissionStatus(req.Status), req.ReviewNotes, admin.WalletAddress)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"submission": submission})
}

// ReviewApplication 审核合作申请
func (h *AdminHandler) ReviewApplication(c *gin.Context) {
	id, ok := parseId(c)
	if !ok {
		return
	}

	var req struct {
		Status      string `json:"status" binding:"required"`
		ReviewNotes string `json:"reviewNotes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	admin := middleware.GetAdminContext(c)
	application, err := h.partnerLogic.ReviewApplication(id, model.ApplicationStatus(req.Status), req.ReviewNotes, admin.WalletAddress)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"application": application})
}

// GetApplications 获取合作申请列表
func (h *AdminHandler) GetApplications(c *gin.Context) {
	status := c.Query("status")
	page, pageSize := pageParams(c)

	applications, total, err := h.partnerLogic.GetApplications(status, page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"applications": applications,
		"total":        total,
		"page":         page,
		"page_size":    pageSize,
	})
}

// GetDashboard 后台看板统计（读穿缓存）
func (h *AdminHandler) GetDashboard(c *gin.Context) {
	const cacheKey = "admin:dashboard"

	var cached map[string]interface{}
	if h.cache.GetJSON(c.Request.Context(), cacheKey, &cached) {
		c.JSON(http.StatusOK, gin.H{"data": cached})
		return
	}

	stats, err := h.adminLogic.GetDashboardStats()
	if err != nil {
		respondError(c, err)
		return
	}

	h.cache.SetJSON(c.Request.Context(), cacheKey, stats)
	c.JSON(http.StatusOK, gin.H{"data": stats})
}

// GetAuditLog 查询审计日志
func (h *AdminHandler) GetAuditLog(c *gin.Context) {
	adminWallet := c.Query("admin")
	if adminWallet != "" {
		normalized, err := wallet.Normalize(adminWallet)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid wallet address"})
			return
		}
		adminWallet = normalized
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	actions, err := h.adminLogic.GetAuditLog(adminWallet, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"actions": actions})
}

// GetRoles 获取管理员角色列表
func (h *AdminHandler) GetRoles(c *gin.Context) {
	roles, err := h.adminLogic.GetRoles()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"roles": roles})
}

// CreateRole 授予管理员角色（仅 super_admin）
func (h *AdminHandler) CreateRole(c *gin.Context) {
	var req struct {
		WalletAddress string          `json:"walletAddress" binding:"required"`
		Role          string          `json:"role" binding:"required"`
		Permissions   map[string]bool `json:"permissions"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	addr, err := wallet.Normalize(req.WalletAddress)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid wallet address"})
		return
	}

	admin := middleware.GetAdminContext(c)
	role, err := h.adminLogic.GrantRole(admin.WalletAddress, admin.Role, addr, model.AdminRole(req.Role), req.Permissions)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"role": role})
}

// GetContactSubmissions 获取联系表单列表
func (h *AdminHandler) GetContactSubmissions(c *gin.Context) {
	status := c.Query("status")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	submissions, err := h.contactLogic.GetSubmissions(status, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"submissions": submissions})
}

// softDelete 软删除的公共流程：解析ID与原因后调用对应逻辑
func (h *AdminHandler) softDelete(c *gin.Context, del func(id int64, adminWallet, reason string) error) {
	id, ok := parseId(c)
	if !ok {
		return
	}

	var req struct {
		Reason string `json:"reason"`
	}
	// DELETE 请求体可以为空
	_ = c.ShouldBindJSON(&req)
	if req.Reason == "" {
		req.Reason = c.Query("reason")
	}

	admin := middleware.GetAdminContext(c)
	if err := del(id, admin.WalletAddress, req.Reason); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

// parseId 解析路径中的数字ID，失败时已写好400响应
func parseId(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}
