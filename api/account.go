package api

import (
	"strconv"

	"accounting/database"
	"accounting/middleware"
	"accounting/models"

	"github.com/gin-gonic/gin"
)

// AccountHandler 账本处理器
type AccountHandler struct{}

// NewAccountHandler 创建账本处理器
func NewAccountHandler() *AccountHandler {
	return &AccountHandler{}
}

// CreateAccountRequest 创建账本请求
type CreateAccountRequest struct {
	Name string `json:"name" binding:"required,max=50" example:"旅行账本"`
	Icon string `json:"icon" example:"travel"`
}

// UpdateAccountRequest 更新账本请求
type UpdateAccountRequest struct {
	Name string `json:"name" binding:"omitempty,max=50" example:"旅行账本"`
	Icon string `json:"icon" example:"travel"`
}

// List 获取账本列表
// @Summary 获取账本列表
// @Description 获取当前用户的所有账本
// @Tags 账本
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=[]models.Account} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/accounts [get]
func (h *AccountHandler) List(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var accounts []models.Account
	if err := database.DB.Where("user_id = ?", userID).Order("id ASC").Find(&accounts).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询账本失败"))
		return
	}

	Success(c, accounts)
}

// Create 创建账本
// @Summary 创建账本
// @Description 创建一个新账本
// @Tags 账本
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateAccountRequest true "账本信息"
// @Success 200 {object} Response{data=models.Account} "创建成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/accounts [post]
func (h *AccountHandler) Create(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	account := models.Account{
		UserID: userID,
		Name:   req.Name,
		Icon:   req.Icon,
	}

	if err := database.DB.Create(&account).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "创建账本失败"))
		return
	}

	SuccessWithMessage(c, "创建成功", account)
}

// Update 更新账本
// @Summary 更新账本
// @Description 更新账本名称或图标
// @Tags 账本
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "账本ID"
// @Param request body UpdateAccountRequest true "更新的账本信息"
// @Success 200 {object} Response{data=models.Account} "更新成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Failure 404 {object} Response "账本不存在"
// @Router /api/v1/accounts/{id} [put]
func (h *AccountHandler) Update(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}

	var account models.Account
	if err := database.DB.Where("id = ? AND user_id = ?", id, userID).First(&account).Error; err != nil {
		NotFound(c, "账本不存在")
		return
	}

	var req UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	if req.Name != "" {
		account.Name = req.Name
	}
	if req.Icon != "" {
		account.Icon = req.Icon
	}

	if err := database.DB.Save(&account).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "更新账本失败"))
		return
	}

	SuccessWithMessage(c, "更新成功", account)
}

// Delete 删除账本
// @Summary 删除账本
// @Description 删除账本及其全部记录，默认账本不可删除
// @Tags 账本
// @Produce json
// @Security BearerAuth
// @Param id path int true "账本ID"
// @Success 200 {object} Response "删除成功"
// @Failure 401 {object} Response "未授权"
// @Failure 403 {object} Response "默认账本不可删除"
// @Failure 404 {object} Response "账本不存在"
// @Router /api/v1/accounts/{id} [delete]
func (h *AccountHandler) Delete(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}

	var account models.Account
	if err := database.DB.Where("id = ? AND user_id = ?", id, userID).First(&account).Error; err != nil {
		NotFound(c, "账本不存在")
		return
	}

	if account.IsDefault {
		Forbidden(c, "默认账本不可删除")
		return
	}

	// 账本内记录随账本一并删除
	if err := database.DB.Where("account_id = ? AND user_id = ?", account.ID, userID).
		Delete(&models.Record{}).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "删除账本失败"))
		return
	}
	if err := database.DB.Delete(&account).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "删除账本失败"))
		return
	}

	SuccessWithMessage(c, "删除成功", nil)
}
