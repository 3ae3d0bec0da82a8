package api

import (
	"strconv"
	"time"

	"accounting/database"
	"accounting/middleware"
	"accounting/models"

	"github.com/gin-gonic/gin"
)

// RecordHandler 收支记录处理器
type RecordHandler struct{}

// NewRecordHandler 创建收支记录处理器
func NewRecordHandler() *RecordHandler {
	return &RecordHandler{}
}

// CreateRecordRequest 创建记录请求
type CreateRecordRequest struct {
	Amount     float64 `json:"amount" binding:"required,gt=0" example:"35.5"`
	Type       int     `json:"type" binding:"oneof=0 1" example:"0"` // 0=支出，1=收入
	CategoryID *uint   `json:"category_id" example:"1"`
	AccountID  uint    `json:"account_id" binding:"required" example:"1"`
	Date       string  `json:"date" binding:"required" example:"2024-01-15"`
	Note       string  `json:"note" example:"午饭"`
}

// UpdateRecordRequest 更新记录请求
type UpdateRecordRequest struct {
	Amount     *float64 `json:"amount" binding:"omitempty,gt=0" example:"35.5"`
	Type       *int     `json:"type" binding:"omitempty,oneof=0 1" example:"0"`
	CategoryID *uint    `json:"category_id" example:"1"`
	AccountID  *uint    `json:"account_id" example:"1"`
	Date       string   `json:"date" example:"2024-01-15"`
	Note       *string  `json:"note" example:"午饭"`
}

// RecordListRequest 记录列表请求
type RecordListRequest struct {
	Page       int    `form:"page" example:"1"`
	PageSize   int    `form:"page_size" example:"10"`
	AccountID  uint   `form:"account_id" example:"1"`
	CategoryID uint   `form:"category_id" example:"1"`
	Type       *int   `form:"type" binding:"omitempty,oneof=0 1" example:"0"`
	Keyword    string `form:"keyword" example:"午饭"`
	StartDate  string `form:"start_date" example:"2024-01-01"`
	EndDate    string `form:"end_date" example:"2024-12-31"`
}

// validateCategory 校验类别存在且收支类型匹配
func validateCategory(categoryID uint, recordType int) (bool, string) {
	var cat models.Category
	if err := database.DB.First(&cat, categoryID).Error; err != nil {
		return false, "类别不存在"
	}
	if cat.Type != recordType {
		return false, "类别与收支类型不匹配"
	}
	return true, ""
}

// validateAccount 校验账本存在且归属当前用户
func validateAccount(accountID, userID uint) bool {
	var account models.Account
	return database.DB.Where("id = ? AND user_id = ?", accountID, userID).First(&account).Error == nil
}

// Create 创建收支记录
// @Summary 创建收支记录
// @Description 创建一条新的收入或支出记录，日期按天存储
// @Tags 收支记录
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateRecordRequest true "记录信息"
// @Success 200 {object} Response{data=models.Record} "创建成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/records [post]
func (h *RecordHandler) Create(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req CreateRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	if !validateAccount(req.AccountID, userID) {
		BadRequest(c, "账本不存在")
		return
	}
	if req.CategoryID != nil {
		if ok, msg := validateCategory(*req.CategoryID, req.Type); !ok {
			BadRequest(c, msg)
			return
		}
	}

	// 解析日期并截断到天
	date, err := time.ParseInLocation("2006-01-02", req.Date, time.Local)
	if err != nil {
		BadRequest(c, "日期格式错误，应为: 2006-01-02")
		return
	}

	record := models.Record{
		UserID:     userID,
		Amount:     req.Amount,
		Type:       req.Type,
		CategoryID: req.CategoryID,
		AccountID:  req.AccountID,
		Date:       date,
		Note:       req.Note,
	}

	if err := database.DB.Create(&record).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "创建记录失败"))
		return
	}

	SuccessWithMessage(c, "创建成功", record)
}

// List 获取收支记录列表
// @Summary 获取收支记录列表
// @Description 获取当前用户的收支记录列表，支持分页和筛选
// @Tags 收支记录
// @Produce json
// @Security BearerAuth
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(10)
// @Param account_id query int false "账本筛选"
// @Param category_id query int false "类别筛选"
// @Param type query int false "类型筛选：0=支出，1=收入"
// @Param keyword query string false "备注模糊搜索"
// @Param start_date query string false "开始日期 (2024-01-01)"
// @Param end_date query string false "结束日期 (2024-12-31)"
// @Success 200 {object} Response{data=PageResponse{list=[]models.Record}} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/records [get]
func (h *RecordHandler) List(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req RecordListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	// 默认分页参数
	if req.Page <= 0 {
		req.Page = 1
	}
	if req.PageSize <= 0 {
		req.PageSize = 10
	}
	if req.PageSize > 100 {
		req.PageSize = 100
	}

	query := database.DB.Model(&models.Record{}).Where("user_id = ?", userID)

	if req.AccountID > 0 {
		query = query.Where("account_id = ?", req.AccountID)
	}
	if req.CategoryID > 0 {
		query = query.Where("category_id = ?", req.CategoryID)
	}
	if req.Type != nil {
		query = query.Where("type = ?", *req.Type)
	}
	if req.Keyword != "" {
		query = query.Where("note LIKE ?", "%"+req.Keyword+"%")
	}

	// 日期范围筛选
	if req.StartDate != "" {
		if startDate, err := time.ParseInLocation("2006-01-02", req.StartDate, time.Local); err == nil {
			query = query.Where("date >= ?", startDate)
		}
	}
	if req.EndDate != "" {
		if endDate, err := time.ParseInLocation("2006-01-02", req.EndDate, time.Local); err == nil {
			// 包含结束日期当天
			endDate = endDate.Add(24*time.Hour - time.Second)
			query = query.Where("date <= ?", endDate)
		}
	}

	// 获取总数
	var total int64
	query.Count(&total)

	// 获取列表
	var records []models.Record
	offset := (req.Page - 1) * req.PageSize
	if err := query.Order("date DESC, created_at DESC").Offset(offset).Limit(req.PageSize).Find(&records).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询失败"))
		return
	}

	Success(c, PageResponse{
		Total:    total,
		Page:     req.Page,
		PageSize: req.PageSize,
		List:     records,
	})
}

// Get 获取单条记录
// @Summary 获取单条收支记录
// @Description 根据ID获取记录详情
// @Tags 收支记录
// @Produce json
// @Security BearerAuth
// @Param id path int true "记录ID"
// @Success 200 {object} Response{data=models.Record} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Failure 404 {object} Response "记录不存在"
// @Router /api/v1/records/{id} [get]
func (h *RecordHandler) Get(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}

	var record models.Record
	if err := database.DB.Where("id = ? AND user_id = ?", id, userID).First(&record).Error; err != nil {
		NotFound(c, "记录不存在")
		return
	}

	Success(c, record)
}

// Update 更新记录
// @Summary 更新收支记录
// @Description 更新指定的收支记录，未提供的字段保持不变
// @Tags 收支记录
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "记录ID"
// @Param request body UpdateRecordRequest true "更新的记录信息"
// @Success 200 {object} Response{data=models.Record} "更新成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Failure 404 {object} Response "记录不存在"
// @Router /api/v1/records/{id} [put]
func (h *RecordHandler) Update(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}

	var record models.Record
	if err := database.DB.Where("id = ? AND user_id = ?", id, userID).First(&record).Error; err != nil {
		NotFound(c, "记录不存在")
		return
	}

	var req UpdateRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	if req.Amount != nil {
		record.Amount = *req.Amount
	}
	if req.Type != nil {
		record.Type = *req.Type
	}
	if req.AccountID != nil {
		if !validateAccount(*req.AccountID, userID) {
			BadRequest(c, "账本不存在")
			return
		}
		record.AccountID = *req.AccountID
	}
	if req.CategoryID != nil {
		if ok, msg := validateCategory(*req.CategoryID, record.Type); !ok {
			BadRequest(c, msg)
			return
		}
		record.CategoryID = req.CategoryID
	}
	if req.Date != "" {
		date, err := time.ParseInLocation("2006-01-02", req.Date, time.Local)
		if err != nil {
			BadRequest(c, "日期格式错误，应为: 2006-01-02")
			return
		}
		record.Date = date
	}
	if req.Note != nil {
		record.Note = *req.Note
	}

	if err := database.DB.Save(&record).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "更新记录失败"))
		return
	}

	SuccessWithMessage(c, "更新成功", record)
}

// Delete 删除记录
// @Summary 删除收支记录
// @Description 删除指定的收支记录
// @Tags 收支记录
// @Produce json
// @Security BearerAuth
// @Param id path int true "记录ID"
// @Success 200 {object} Response "删除成功"
// @Failure 401 {object} Response "未授权"
// @Failure 404 {object} Response "记录不存在"
// @Router /api/v1/records/{id} [delete]
func (h *RecordHandler) Delete(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}

	var record models.Record
	if err := database.DB.Where("id = ? AND user_id = ?", id, userID).First(&record).Error; err != nil {
		NotFound(c, "记录不存在")
		return
	}

	if err := database.DB.Delete(&record).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "删除记录失败"))
		return
	}

	SuccessWithMessage(c, "删除成功", nil)
}
