package service

import "time"

// 统计时间范围类型
const (
	// RangeMonth 按月统计
	RangeMonth = 0
	// RangeYear 按年统计
	RangeYear = 1
	// RangeAll 全部统计
	RangeAll = 2
)

// allTimeEnd 全部统计的窗口上界，取一个足够远的时间点
var allTimeEnd = time.Date(9999, 12, 31, 23, 59, 59, int(999*time.Millisecond), time.Local)

// Period 一个具体的统计窗口
//
// Start/End 均为闭区间端点，End 为当期最后一天的 23:59:59.999。
// BucketCount 为趋势图的分桶数量；RangeAll 的分桶由数据中出现的年份决定，
// 此处为 0。
type Period struct {
	Start       time.Time
	End         time.Time
	BucketCount int
}

// ResolvePeriod 将 (范围类型, 锚点年月) 解析为具体的统计窗口
//
// RangeMonth: 当月 1 日至最后一天，按 7 天一周分桶；
// RangeYear:  当年 1 月 1 日至 12 月 31 日，固定 12 个月桶；
// RangeAll:   从纪元零点起的全部时间。
func ResolvePeriod(rangeType int, year int, month time.Month) Period {
	switch rangeType {
	case RangeMonth:
		start := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
		end := start.AddDate(0, 1, 0).Add(-time.Millisecond)
		days := end.Day()
		return Period{Start: start, End: end, BucketCount: (days + 6) / 7}
	case RangeYear:
		start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.Local)
		end := time.Date(year+1, time.January, 1, 0, 0, 0, 0, time.Local).Add(-time.Millisecond)
		return Period{Start: start, End: end, BucketCount: 12}
	default:
		return Period{Start: time.Unix(0, 0), End: allTimeEnd, BucketCount: 0}
	}
}

// DaysInMonth 指定年月的天数
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month, 1, 0, 0, 0, 0, time.Local).AddDate(0, 1, -1).Day()
}

// CanGoNext 是否允许切换到下一个时间段
//
// 不允许查看未来的时间段：锚点已到当前月（年）时返回 false。
// RangeAll 不支持切换。
func CanGoNext(rangeType int, year int, month time.Month, now time.Time) bool {
	switch rangeType {
	case RangeMonth:
		return year < now.Year() || (year == now.Year() && month < now.Month())
	case RangeYear:
		return year < now.Year()
	default:
		return false
	}
}

// NextAnchor 前进一个时间段
//
// 越过当前日历时间时不前进，原样返回锚点并报告 moved=false。
func NextAnchor(rangeType int, year int, month time.Month, now time.Time) (int, time.Month, bool) {
	if !CanGoNext(rangeType, year, month, now) {
		return year, month, false
	}
	switch rangeType {
	case RangeMonth:
		if month == time.December {
			return year + 1, time.January, true
		}
		return year, month + 1, true
	case RangeYear:
		return year + 1, month, true
	}
	return year, month, false
}

// PreviousAnchor 后退一个时间段，无下界限制
//
// RangeAll 不支持切换，原样返回。
func PreviousAnchor(rangeType int, year int, month time.Month) (int, time.Month) {
	switch rangeType {
	case RangeMonth:
		if month == time.January {
			return year - 1, time.December
		}
		return year, month - 1
	case RangeYear:
		return year - 1, month
	}
	return year, month
}
