package api

import (
	"accounting/database"
	"accounting/models"
	"accounting/service"

	"github.com/gin-gonic/gin"
)

// ParseHandler 智能记账解析处理器
type ParseHandler struct {
	parser *service.Parser
}

// NewParseHandler 创建智能记账解析处理器
func NewParseHandler() *ParseHandler {
	return &ParseHandler{parser: service.NewParser(service.DefaultVocabulary())}
}

// ParseRequest 自然语言解析请求
type ParseRequest struct {
	Text string `json:"text" binding:"required,max=500" example:"昨天打车35元"`
}

// ParseResponse 自然语言解析响应
type ParseResponse struct {
	Amount       *float64 `json:"amount"`
	Type         int      `json:"type"` // 0=支出，1=收入
	CategoryID   *uint    `json:"category_id"`
	CategoryName string   `json:"category_name"`
	Date         string   `json:"date"`
	Note         string   `json:"note"`
	Confidence   int      `json:"confidence"`
	Valid        bool     `json:"valid"`
}

// Parse 解析自然语言记账描述
// @Summary 解析自然语言记账描述
// @Description 从一句话中提取金额、收支类型、类别、日期和备注，任何输入都返回结构化结果
// @Tags 智能记账
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ParseRequest true "记账描述"
// @Success 200 {object} Response{data=ParseResponse} "解析成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/records/parse [post]
func (h *ParseHandler) Parse(c *gin.Context) {
	var req ParseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	result := h.parser.Parse(req.Text)

	recordType := models.RecordTypeExpense
	if !result.IsExpense {
		recordType = models.RecordTypeIncome
	}

	resp := ParseResponse{
		Amount:       result.Amount,
		Type:         recordType,
		CategoryName: result.CategoryName,
		Date:         result.Date.Format("2006-01-02"),
		Note:         result.Note,
		Confidence:   result.Confidence,
		Valid:        result.IsValid(),
	}

	// 解析出的类别名映射到库中类别，找不到时仅返回名称
	if result.CategoryName != "" {
		var category models.Category
		if err := database.DB.Where("name = ? AND type = ?", result.CategoryName, recordType).
			First(&category).Error; err == nil {
			resp.CategoryID = &category.ID
		}
	}

	Success(c, resp)
}

// Examples 获取示例句子
// @Summary 获取记账示例句子
// @Description 返回一组可以被解析器识别的示例输入
// @Tags 智能记账
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=[]string} "获取成功"
// @Router /api/v1/records/parse/examples [get]
func (h *ParseHandler) Examples(c *gin.Context) {
	Success(c, h.parser.Examples())
}
