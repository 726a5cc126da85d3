package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/manu-acho/wamngo-sub000/internal/logic"
	"github.com/manu-acho/wamngo-sub000/internal/mailer"
	"github.com/manu-acho/wamngo-sub000/internal/model"
	"github.com/manu-acho/wamngo-sub000/internal/wallet"
	"gorm.io/gorm"
)

type ProjectHandler struct {
	projectLogic *logic.ProjectLogic
	mailer       *mailer.Mailer
}

func NewProjectHandler(db *gorm.DB, m *mailer.Mailer) *ProjectHandler {
	return &ProjectHandler{
		projectLogic: logic.NewProjectLogic(db),
		mailer:       m,
	}
}

// GetProjects 获取项目列表
func (h *ProjectHandler) GetProjects(c *gin.Context) {
	status := c.Query("status")
	category := c.Query("category")
	page, pageSize := pageParams(c)

	projects, total, err := h.projectLogic.GetProjects(status, category, page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"projects":  projects,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

// GetProject 获取项目详情
func (h *ProjectHandler) GetProject(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project id"})
		return
	}

	project, err := h.projectLogic.GetProject(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"project": project})
}

// CreateSubmission 提交项目提案
func (h *ProjectHandler) CreateSubmission(c *gin.Context) {
	var req struct {
		Title           string `json:"title" binding:"required"`
		Description     string `json:"description"`
		Category        string `json:"category"`
		FundingGoal     int64  `json:"fundingGoal"`
		SubmitterWallet string `json:"submitterWallet"`
		SubmitterEmail  string `json:"submitterEmail"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	submission := model.ProjectSubmissionModel{
		Title:           req.Title,
		Description:     req.Description,
		Category:        req.Category,
		FundingGoal:     req.FundingGoal,
		SubmitterWallet: wallet.Canonical(req.SubmitterWallet),
		SubmitterEmail:  req.SubmitterEmail,
	}
	if err := h.projectLogic.CreateSubmission(&submission); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.mailer.NotifyProjectSubmission(submission.Title, submission.SubmitterWallet)

	c.JSON(http.StatusCreated, gin.H{"submission": submission})
}

// GetSubmissions 获取项目提交列表
func (h *ProjectHandler) GetSubmissions(c *gin.Context) {
	status := c.Query("status")
	page, pageSize := pageParams(c)

	submissions, total, err := h.projectLogic.GetSubmissions(status, page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"submissions": submissions,
		"total":       total,
		"page":        page,
		"page_size":   pageSize,
	})
}

// GetProjectUpdates 获取项目进展更新
func (h *ProjectHandler) GetProjectUpdates(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project id"})
		return
	}

	updates, err := h.projectLogic.GetProjectUpdates(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"updates": updates})
}

// AddProjectUpdate 追加项目进展更新
func (h *ProjectHandler) AddProjectUpdate(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project id"})
		return
	}

	var req struct {
		Title        string `json:"title" binding:"required"`
		Body         string `json:"body"`
		AuthorWallet string `json:"authorWallet"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	update := model.ProjectUpdateModel{
		ProjectId:    id,
		Title:        req.Title,
		Body:         req.Body,
		AuthorWallet: req.AuthorWallet,
	}
	if err := h.projectLogic.AddProjectUpdate(&update); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"update": update})
}
