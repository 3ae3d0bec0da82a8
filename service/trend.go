package service

import (
	"fmt"
	"sort"
	"time"

	"accounting/models"
)

// TrendBucket 趋势图中的一个子时段
type TrendBucket struct {
	Label   string  `json:"label"`
	Expense float64 `json:"expense"`
	Income  float64 `json:"income"`
}

// BucketTrend 将记录按子时段分桶求和
//
// RangeMonth: 按 7 天一周分桶，第 i 周覆盖 [(i-1)*7+1, min(i*7, 当月天数)] 日，
//             标签"第i周"，月末不足 7 天的桶照常输出；
// RangeYear:  固定 12 个月桶，1月…12月，无记录的月份输出零值；
// RangeAll:   按数据中出现的年份分桶，升序，无记录的年份不输出。
//
// 仅统计落在锚点窗口内的记录；输出始终按时间升序，与输入顺序无关。
func BucketTrend(records []models.Record, rangeType int, year int, month time.Month) []TrendBucket {
	switch rangeType {
	case RangeMonth:
		return bucketByWeek(records, year, month)
	case RangeYear:
		return bucketByMonth(records, year)
	default:
		return bucketByYear(records)
	}
}

func bucketByWeek(records []models.Record, year int, month time.Month) []TrendBucket {
	days := DaysInMonth(year, month)
	expenseByDay := make(map[int]float64)
	incomeByDay := make(map[int]float64)

	for i := range records {
		r := &records[i]
		if r.Date.Year() != year || r.Date.Month() != month {
			continue
		}
		day := r.Date.Day()
		if r.Type == models.RecordTypeExpense {
			expenseByDay[day] += r.Amount
		} else {
			incomeByDay[day] += r.Amount
		}
	}

	weeks := (days + 6) / 7
	buckets := make([]TrendBucket, 0, weeks)
	for week := 1; week <= weeks; week++ {
		startDay := (week-1)*7 + 1
		endDay := week * 7
		if endDay > days {
			endDay = days
		}
		b := TrendBucket{Label: fmt.Sprintf("第%d周", week)}
		for day := startDay; day <= endDay; day++ {
			b.Expense += expenseByDay[day]
			b.Income += incomeByDay[day]
		}
		buckets = append(buckets, b)
	}
	return buckets
}

func bucketByMonth(records []models.Record, year int) []TrendBucket {
	expenseByMonth := make(map[time.Month]float64)
	incomeByMonth := make(map[time.Month]float64)

	for i := range records {
		r := &records[i]
		if r.Date.Year() != year {
			continue
		}
		if r.Type == models.RecordTypeExpense {
			expenseByMonth[r.Date.Month()] += r.Amount
		} else {
			incomeByMonth[r.Date.Month()] += r.Amount
		}
	}

	buckets := make([]TrendBucket, 0, 12)
	for m := time.January; m <= time.December; m++ {
		buckets = append(buckets, TrendBucket{
			Label:   fmt.Sprintf("%d月", int(m)),
			Expense: expenseByMonth[m],
			Income:  incomeByMonth[m],
		})
	}
	return buckets
}

func bucketByYear(records []models.Record) []TrendBucket {
	expenseByYear := make(map[int]float64)
	incomeByYear := make(map[int]float64)

	for i := range records {
		r := &records[i]
		if r.Type == models.RecordTypeExpense {
			expenseByYear[r.Date.Year()] += r.Amount
		} else {
			incomeByYear[r.Date.Year()] += r.Amount
		}
	}

	years := make([]int, 0, len(expenseByYear)+len(incomeByYear))
	seen := make(map[int]struct{})
	for y := range expenseByYear {
		if _, ok := seen[y]; !ok {
			seen[y] = struct{}{}
			years = append(years, y)
		}
	}
	for y := range incomeByYear {
		if _, ok := seen[y]; !ok {
			seen[y] = struct{}{}
			years = append(years, y)
		}
	}
	sort.Ints(years)

	buckets := make([]TrendBucket, 0, len(years))
	for _, y := range years {
		buckets = append(buckets, TrendBucket{
			Label:   fmt.Sprintf("%d年", y),
			Expense: expenseByYear[y],
			Income:  incomeByYear[y],
		})
	}
	return buckets
}
