package api

import (
	"strconv"

	"accounting/database"
	"accounting/models"

	"github.com/gin-gonic/gin"
)

// CategoryHandler 收支类别处理器
type CategoryHandler struct{}

// NewCategoryHandler 创建收支类别处理器
func NewCategoryHandler() *CategoryHandler {
	return &CategoryHandler{}
}

// CreateCategoryRequest 创建类别请求
type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required,max=50" example:"宠物"`
	Type int    `json:"type" binding:"oneof=0 1" example:"0"` // 0=支出，1=收入
	Icon string `json:"icon" example:"pet"`
	Sort int    `json:"sort" example:"100"`
}

// UpdateCategoryRequest 更新类别请求
type UpdateCategoryRequest struct {
	Name string `json:"name" binding:"omitempty,max=50" example:"宠物"`
	Icon string `json:"icon" example:"pet"`
	Sort *int   `json:"sort" example:"100"`
}

// List 获取类别列表
// @Summary 获取类别列表
// @Description 获取收支类别列表，按排序值升序返回，可按类型筛选
// @Tags 收支类别
// @Produce json
// @Security BearerAuth
// @Param type query int false "类型筛选：0=支出，1=收入"
// @Success 200 {object} Response{data=[]models.Category} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/categories [get]
func (h *CategoryHandler) List(c *gin.Context) {
	query := database.DB.Model(&models.Category{})

	if typeStr := c.Query("type"); typeStr != "" {
		categoryType, err := strconv.Atoi(typeStr)
		if err != nil || (categoryType != models.RecordTypeExpense && categoryType != models.RecordTypeIncome) {
			BadRequest(c, "类型参数错误")
			return
		}
		query = query.Where("type = ?", categoryType)
	}

	var categories []models.Category
	if err := query.Order("sort ASC, id ASC").Find(&categories).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询类别失败"))
		return
	}

	Success(c, categories)
}

// Create 创建类别
// @Summary 创建自定义类别
// @Description 创建一个自定义收支类别，名称在同类型下唯一
// @Tags 收支类别
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateCategoryRequest true "类别信息"
// @Success 200 {object} Response{data=models.Category} "创建成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/categories [post]
func (h *CategoryHandler) Create(c *gin.Context) {
	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	// 同类型下名称唯一
	var count int64
	database.DB.Model(&models.Category{}).Where("name = ? AND type = ?", req.Name, req.Type).Count(&count)
	if count > 0 {
		BadRequest(c, "同类型下已存在同名类别")
		return
	}

	category := models.Category{
		Name: req.Name,
		Type: req.Type,
		Icon: req.Icon,
		Sort: req.Sort,
	}

	if err := database.DB.Create(&category).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "创建类别失败"))
		return
	}

	SuccessWithMessage(c, "创建成功", category)
}

// Update 更新类别
// @Summary 更新类别
// @Description 更新类别的名称、图标或排序，系统默认类别不允许改名
// @Tags 收支类别
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "类别ID"
// @Param request body UpdateCategoryRequest true "更新的类别信息"
// @Success 200 {object} Response{data=models.Category} "更新成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Failure 404 {object} Response "类别不存在"
// @Router /api/v1/categories/{id} [put]
func (h *CategoryHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}

	var category models.Category
	if err := database.DB.First(&category, id).Error; err != nil {
		NotFound(c, "类别不存在")
		return
	}

	var req UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	if req.Name != "" && req.Name != category.Name {
		if category.IsDefault {
			Forbidden(c, "系统默认类别不允许改名")
			return
		}
		var count int64
		database.DB.Model(&models.Category{}).
			Where("name = ? AND type = ? AND id <> ?", req.Name, category.Type, category.ID).
			Count(&count)
		if count > 0 {
			BadRequest(c, "同类型下已存在同名类别")
			return
		}
		category.Name = req.Name
	}
	if req.Icon != "" {
		category.Icon = req.Icon
	}
	if req.Sort != nil {
		category.Sort = *req.Sort
	}

	if err := database.DB.Save(&category).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "更新类别失败"))
		return
	}

	SuccessWithMessage(c, "更新成功", category)
}

// Delete 删除类别
// @Summary 删除类别
// @Description 删除自定义类别，引用该类别的记录保留并转为未分类；系统默认类别不可删除
// @Tags 收支类别
// @Produce json
// @Security BearerAuth
// @Param id path int true "类别ID"
// @Success 200 {object} Response "删除成功"
// @Failure 401 {object} Response "未授权"
// @Failure 403 {object} Response "默认类别不可删除"
// @Failure 404 {object} Response "类别不存在"
// @Router /api/v1/categories/{id} [delete]
func (h *CategoryHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}

	var category models.Category
	if err := database.DB.First(&category, id).Error; err != nil {
		NotFound(c, "类别不存在")
		return
	}

	if category.IsDefault {
		Forbidden(c, "系统默认类别不可删除")
		return
	}

	// 引用记录置空后删除类别，历史记录仍计入总额
	if err := database.DB.Model(&models.Record{}).
		Where("category_id = ?", category.ID).
		Update("category_id", nil).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "删除类别失败"))
		return
	}
	if err := database.DB.Delete(&category).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "删除类别失败"))
		return
	}

	SuccessWithMessage(c, "删除成功", nil)
}
