package api

import (
	"time"

	"accounting/database"
	"accounting/middleware"
	"accounting/models"
	"accounting/service"

	"github.com/gin-gonic/gin"
)

// StatisticsHandler 统计处理器
type StatisticsHandler struct{}

// NewStatisticsHandler 创建统计处理器
func NewStatisticsHandler() *StatisticsHandler {
	return &StatisticsHandler{}
}

// StatisticsRequest 统计查询请求
type StatisticsRequest struct {
	Range     int  `form:"range" binding:"oneof=0 1 2" example:"0"` // 0=月，1=年，2=全部
	Year      int  `form:"year" example:"2024"`
	Month     int  `form:"month" binding:"omitempty,min=1,max=12" example:"6"`
	AccountID uint `form:"account_id" example:"1"`
	Type      *int `form:"type" binding:"omitempty,oneof=0 1" example:"0"`
}

// SummaryResponse 汇总统计响应
type SummaryResponse struct {
	service.AggregateResult
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// TrendResponse 趋势统计响应
type TrendResponse struct {
	Buckets []service.TrendBucket `json:"buckets"`
}

// NavigationResponse 周期导航响应
type NavigationResponse struct {
	CanGoNext bool `json:"can_go_next"`
	PrevYear  int  `json:"prev_year"`
	PrevMonth int  `json:"prev_month"`
	NextYear  int  `json:"next_year"`
	NextMonth int  `json:"next_month"`
}

// resolveRequest 填充默认锚点并计算统计窗口
func (r *StatisticsRequest) resolveRequest(now time.Time) (int, time.Month, service.Period) {
	year := r.Year
	month := time.Month(r.Month)
	if year == 0 {
		year = now.Year()
	}
	if month == 0 {
		month = now.Month()
	}
	return year, month, service.ResolvePeriod(r.Range, year, month)
}

// loadRecords 查询窗口内当前用户的记录
func loadRecords(userID uint, period service.Period, accountID uint) ([]models.Record, error) {
	query := database.DB.Where("user_id = ?", userID).
		Where("date >= ? AND date <= ?", period.Start, period.End)
	if accountID > 0 {
		query = query.Where("account_id = ?", accountID)
	}

	var records []models.Record
	err := query.Order("date ASC").Find(&records).Error
	return records, err
}

// Summary 汇总统计
// @Summary 汇总统计
// @Description 按月/年/全部窗口统计收支总额、类别占比和日均值
// @Tags 统计
// @Produce json
// @Security BearerAuth
// @Param range query int false "统计范围：0=月，1=年，2=全部" default(0)
// @Param year query int false "年份，缺省为当前年"
// @Param month query int false "月份 1-12，缺省为当前月"
// @Param account_id query int false "账本筛选"
// @Param type query int false "类型筛选：0=支出，1=收入"
// @Success 200 {object} Response{data=SummaryResponse} "获取成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/statistics/summary [get]
func (h *StatisticsHandler) Summary(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req StatisticsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	_, _, period := req.resolveRequest(time.Now())

	records, err := loadRecords(userID, period, req.AccountID)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "查询统计数据失败"))
		return
	}

	var categories []models.Category
	if err := database.DB.Order("sort ASC, id ASC").Find(&categories).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询统计数据失败"))
		return
	}

	opts := service.AggregateOptions{Type: req.Type}
	if req.AccountID > 0 {
		accountID := req.AccountID
		opts.AccountID = &accountID
	}

	result := service.Aggregate(records, categories, req.Range, period.Start, period.End, opts)

	Success(c, SummaryResponse{
		AggregateResult: result,
		StartDate:       period.Start.Format("2006-01-02"),
		EndDate:         period.End.Format("2006-01-02"),
	})
}

// Trend 趋势统计
// @Summary 趋势统计
// @Description 按统计范围返回收支趋势：月视图按周分桶，年视图按12个月分桶，全部视图按有数据的年份分桶
// @Tags 统计
// @Produce json
// @Security BearerAuth
// @Param range query int false "统计范围：0=月，1=年，2=全部" default(0)
// @Param year query int false "年份，缺省为当前年"
// @Param month query int false "月份 1-12，缺省为当前月"
// @Param account_id query int false "账本筛选"
// @Success 200 {object} Response{data=TrendResponse} "获取成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/statistics/trend [get]
func (h *StatisticsHandler) Trend(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req StatisticsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	year, month, period := req.resolveRequest(time.Now())

	records, err := loadRecords(userID, period, req.AccountID)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "查询统计数据失败"))
		return
	}

	buckets := service.BucketTrend(records, req.Range, year, month)
	Success(c, TrendResponse{Buckets: buckets})
}

// Navigation 周期导航
// @Summary 周期导航
// @Description 返回当前锚点能否前进到下一周期，以及前后周期的锚点
// @Tags 统计
// @Produce json
// @Security BearerAuth
// @Param range query int false "统计范围：0=月，1=年，2=全部" default(0)
// @Param year query int false "年份，缺省为当前年"
// @Param month query int false "月份 1-12，缺省为当前月"
// @Success 200 {object} Response{data=NavigationResponse} "获取成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/statistics/navigation [get]
func (h *StatisticsHandler) Navigation(c *gin.Context) {
	var req StatisticsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	now := time.Now()
	year, month, _ := req.resolveRequest(now)

	prevYear, prevMonth := service.PreviousAnchor(req.Range, year, month)
	nextYear, nextMonth, _ := service.NextAnchor(req.Range, year, month, now)

	Success(c, NavigationResponse{
		CanGoNext: service.CanGoNext(req.Range, year, month, now),
		PrevYear:  prevYear,
		PrevMonth: int(prevMonth),
		NextYear:  nextYear,
		NextMonth: int(nextMonth),
	})
}
