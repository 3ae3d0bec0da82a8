package service

import (
	"sort"
	"time"

	"accounting/models"
)

// CategoryStatistic 单个类别在窗口内的统计
type CategoryStatistic struct {
	CategoryID   uint    `json:"category_id"`
	CategoryName string  `json:"category_name"`
	TotalAmount  float64 `json:"total_amount"`
	RecordCount  int     `json:"record_count"`
	Percentage   float64 `json:"percentage"` // 占同类型合计的百分比，0-100
}

// AggregateResult 窗口统计结果
type AggregateResult struct {
	TotalIncome          float64             `json:"total_income"`
	TotalExpense         float64             `json:"total_expense"`
	RecordCount          int                 `json:"record_count"`
	ExpenseCategoryStats []CategoryStatistic `json:"expense_category_stats"`
	IncomeCategoryStats  []CategoryStatistic `json:"income_category_stats"`
	DailyAverageExpense  float64             `json:"daily_average_expense"`
	DailyAverageIncome   float64             `json:"daily_average_income"`
	ActiveExpensePeriods int                 `json:"active_expense_periods"`
	ActiveIncomePeriods  int                 `json:"active_income_periods"`
}

// AggregateOptions 统计过滤条件
type AggregateOptions struct {
	AccountID *uint // 账本过滤，nil 表示全部账本
	Type      *int  // 收支类型过滤，nil 表示不限
}

// catAcc 单类别累加器
type catAcc struct {
	total float64
	count int
}

// Aggregate 对窗口内的记录做汇总统计
//
// 纯内存计算，不触发任何 I/O。records 可以未按窗口过滤，超出
// [start, end] 的记录会被忽略。类别统计只包含窗口内有记录的类别，
// 按金额降序；类别已被删除（CategoryID 为 NULL）的记录计入总额，
// 不计入类别统计。
//
// 活跃时段（active periods）按范围类型取记录日期的 天/月/年 去重计数，
// 日均（月均、年均）= 同类型合计 / 活跃时段数，无活跃时段时为 0。
func Aggregate(records []models.Record, categories []models.Category, rangeType int, start, end time.Time, opts AggregateOptions) AggregateResult {
	var result AggregateResult

	expenseByCat := make(map[uint]*catAcc)
	incomeByCat := make(map[uint]*catAcc)
	expensePeriods := make(map[int]struct{})
	incomePeriods := make(map[int]struct{})

	for i := range records {
		r := &records[i]
		if r.Date.Before(start) || r.Date.After(end) {
			continue
		}
		if opts.AccountID != nil && r.AccountID != *opts.AccountID {
			continue
		}
		if opts.Type != nil && r.Type != *opts.Type {
			continue
		}

		result.RecordCount++
		key := periodKey(rangeType, r.Date)

		byCat := incomeByCat
		if r.Type == models.RecordTypeExpense {
			byCat = expenseByCat
			result.TotalExpense += r.Amount
			expensePeriods[key] = struct{}{}
		} else {
			result.TotalIncome += r.Amount
			incomePeriods[key] = struct{}{}
		}
		if r.CategoryID != nil {
			acc := byCat[*r.CategoryID]
			if acc == nil {
				acc = &catAcc{}
				byCat[*r.CategoryID] = acc
			}
			acc.total += r.Amount
			acc.count++
		}
	}

	result.ActiveExpensePeriods = len(expensePeriods)
	result.ActiveIncomePeriods = len(incomePeriods)
	if result.ActiveExpensePeriods > 0 {
		result.DailyAverageExpense = result.TotalExpense / float64(result.ActiveExpensePeriods)
	}
	if result.ActiveIncomePeriods > 0 {
		result.DailyAverageIncome = result.TotalIncome / float64(result.ActiveIncomePeriods)
	}

	result.ExpenseCategoryStats = buildCategoryStats(expenseByCat, categories, models.RecordTypeExpense)
	result.IncomeCategoryStats = buildCategoryStats(incomeByCat, categories, models.RecordTypeIncome)

	return result
}

// periodKey 记录所属子时段的去重键：月视图按天，年视图按月，全部视图按年
func periodKey(rangeType int, date time.Time) int {
	switch rangeType {
	case RangeMonth:
		return date.Year()*10000 + int(date.Month())*100 + date.Day()
	case RangeYear:
		return date.Year()*100 + int(date.Month())
	default:
		return date.Year()
	}
}

// buildCategoryStats 生成某一收支类型的类别统计
//
// 只保留金额大于 0 的类别，按金额降序；遍历顺序跟随类别表的展示
// 顺序，金额相同时排序稳定。百分比以入榜类别的金额合计为基数，
// 各项之和约等于 100；合计为 0 时百分比为 0。
func buildCategoryStats(byCat map[uint]*catAcc, categories []models.Category, recordType int) []CategoryStatistic {
	stats := make([]CategoryStatistic, 0, len(byCat))
	var kindTotal float64

	for _, cat := range categories {
		if cat.Type != recordType {
			continue
		}
		acc := byCat[cat.ID]
		if acc == nil || acc.total <= 0 {
			continue
		}
		stats = append(stats, CategoryStatistic{
			CategoryID:   cat.ID,
			CategoryName: cat.Name,
			TotalAmount:  acc.total,
			RecordCount:  acc.count,
		})
		kindTotal += acc.total
	}

	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].TotalAmount > stats[j].TotalAmount
	})

	if kindTotal > 0 {
		for i := range stats {
			stats[i].Percentage = stats[i].TotalAmount / kindTotal * 100
		}
	}

	return stats
}
